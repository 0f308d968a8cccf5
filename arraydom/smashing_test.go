package arraydom_test

import (
	"testing"

	"github.com/katalvlaran/relnum/arraydom"
	"github.com/katalvlaran/relnum/domain"
	"github.com/katalvlaran/relnum/interval"
	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/octagon"
	"github.com/katalvlaran/relnum/variable"
)

func rng(lo, hi int64) interval.Interval {
	return interval.Range(numeric.RatFromInt64(lo), numeric.RatFromInt64(hi))
}

func newSmashing(f *variable.Factory) arraydom.SmashingOps[*octagon.Value] {
	return arraydom.SmashingOps[*octagon.Value]{Base: octagon.Ops{}, Factory: f}
}

func TestSmashingArrayInitThenLoad(t *testing.T) {
	f := variable.NewFactory()
	arr := f.Fresh("a", variable.ArrayOf(variable.Int(32)))
	lhs := f.Fresh("x", variable.Int(32))
	o := newSmashing(f)

	s := o.Top()
	s = o.ArrayInit(s, arr, 4, 0, 39, domain.ArrayInitValue{Interval: rng(7, 7)})
	s = o.ArrayLoad(s, lhs, arr, 4, 0)

	iv := o.At(s, lhs)
	got, ok := iv.IsSingleton()
	if !ok || got.Int64() != 7 {
		t.Fatalf("expected x == 7 after loading an array initialised to 7, got %s", iv)
	}
}

// TestSmashingStrongStoreOverwrites checks spec.md §4.3's strong-update
// rule: a store known to target a singleton index replaces the summary
// outright.
func TestSmashingStrongStoreOverwrites(t *testing.T) {
	f := variable.NewFactory()
	arr := f.Fresh("a", variable.ArrayOf(variable.Int(32)))
	lhs := f.Fresh("x", variable.Int(32))
	o := newSmashing(f)

	s := o.Top()
	s = o.ArrayInit(s, arr, 4, 0, 39, domain.ArrayInitValue{Interval: rng(1, 1)})
	s = o.ArrayStore(s, arr, 4, 4, domain.ArrayInitValue{Interval: rng(9, 9)}, true)
	s = o.ArrayLoad(s, lhs, arr, 4, 0)

	iv := o.At(s, lhs)
	got, ok := iv.IsSingleton()
	if !ok || got.Int64() != 9 {
		t.Fatalf("expected the strong store's value 9 to replace the summary, got %s", iv)
	}
}

// TestSmashingWeakStoreJoinsWithOld checks the weak-update rule: a store
// that cannot prove its index unique must join with the prior summary
// rather than overwrite it.
func TestSmashingWeakStoreJoinsWithOld(t *testing.T) {
	f := variable.NewFactory()
	arr := f.Fresh("a", variable.ArrayOf(variable.Int(32)))
	lhs := f.Fresh("x", variable.Int(32))
	o := newSmashing(f)

	s := o.Top()
	s = o.ArrayInit(s, arr, 4, 0, 39, domain.ArrayInitValue{Interval: rng(1, 1)})
	s = o.ArrayStore(s, arr, 4, 4, domain.ArrayInitValue{Interval: rng(9, 9)}, false)
	s = o.ArrayLoad(s, lhs, arr, 4, 0)

	iv := o.At(s, lhs)
	if !iv.Contains(numeric.RatFromInt64(1)) || !iv.Contains(numeric.RatFromInt64(9)) {
		t.Fatalf("expected a weak store to widen the summary to contain both 1 and 9, got %s", iv)
	}
}

// TestSmashingLoadDoesNotAliasSummary checks that loading twice and
// mutating the array between loads does not retroactively change the
// first load's result — the alias-avoidance sequence spec.md §4.3
// prescribes (expand, assign, forget) must give lhs an independent copy.
func TestSmashingLoadDoesNotAliasSummary(t *testing.T) {
	f := variable.NewFactory()
	arr := f.Fresh("a", variable.ArrayOf(variable.Int(32)))
	first := f.Fresh("first", variable.Int(32))
	o := newSmashing(f)

	s := o.Top()
	s = o.ArrayInit(s, arr, 4, 0, 39, domain.ArrayInitValue{Interval: rng(3, 3)})
	s = o.ArrayLoad(s, first, arr, 4, 0)
	s = o.ArrayStore(s, arr, 4, 4, domain.ArrayInitValue{Interval: rng(99, 99)}, true)

	iv := o.At(s, first)
	got, ok := iv.IsSingleton()
	if !ok || got.Int64() != 3 {
		t.Fatalf("first's value should stay 3 after a later store into the array, got %s", iv)
	}
}

func TestSmashingArrayAssignCopiesSummary(t *testing.T) {
	f := variable.NewFactory()
	a := f.Fresh("a", variable.ArrayOf(variable.Int(32)))
	b := f.Fresh("b", variable.ArrayOf(variable.Int(32)))
	lhs := f.Fresh("x", variable.Int(32))
	o := newSmashing(f)

	s := o.Top()
	s = o.ArrayInit(s, a, 4, 0, 39, domain.ArrayInitValue{Interval: rng(5, 5)})
	s = o.ArrayAssign(s, b, a)
	s = o.ArrayLoad(s, lhs, b, 4, 8)

	iv := o.At(s, lhs)
	got, ok := iv.IsSingleton()
	if !ok || got.Int64() != 5 {
		t.Fatalf("b should read a's summary after ArrayAssign, got %s", iv)
	}
}

var _ domain.Domain[*arraydom.Smashing[*octagon.Value]] = arraydom.SmashingOps[*octagon.Value]{}
