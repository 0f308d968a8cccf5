package arraydom_test

import (
	"testing"

	"github.com/katalvlaran/relnum/arraydom"
	"github.com/katalvlaran/relnum/domain"
	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/octagon"
	"github.com/katalvlaran/relnum/variable"
)

func newExpansion(f *variable.Factory, warns *[]string) arraydom.ExpansionOps[*octagon.Value] {
	idx := arraydom.NewCellIndex(f)
	return arraydom.ExpansionOps[*octagon.Value]{
		Base:    octagon.Ops{},
		Index:   idx,
		Factory: f,
		Warn: func(format string, args ...any) {
			*warns = append(*warns, format)
		},
	}
}

func TestExpansionStoreThenLoadExactCell(t *testing.T) {
	f := variable.NewFactory()
	arr := f.Fresh("a", variable.ArrayOf(variable.Int(32)))
	lhs := f.Fresh("x", variable.Int(32))
	var warns []string
	o := newExpansion(f, &warns)

	e := o.Top()
	e = o.ArrayStore(e, arr, 4, 0, domain.ArrayInitValue{Interval: rng(11, 11)}, true)
	e = o.ArrayLoad(e, lhs, arr, 4, 0)

	iv := o.At(e, lhs)
	got, ok := iv.IsSingleton()
	if !ok || got.Int64() != 11 {
		t.Fatalf("expected x == 11 after an exact-cell load, got %s", iv)
	}
	if len(warns) != 0 {
		t.Fatalf("an exact-cell load should not warn, got %v", warns)
	}
}

// TestExpansionArrayInitMaterialisesEachElement checks that array_init
// expands into one store per element so that every initialised offset
// reads back independently.
func TestExpansionArrayInitMaterialisesEachElement(t *testing.T) {
	f := variable.NewFactory()
	arr := f.Fresh("a", variable.ArrayOf(variable.Int(32)))
	x0 := f.Fresh("x0", variable.Int(32))
	x1 := f.Fresh("x1", variable.Int(32))
	var warns []string
	o := newExpansion(f, &warns)

	e := o.Top()
	e = o.ArrayInit(e, arr, 4, 0, 7, domain.ArrayInitValue{Interval: rng(0, 0)})
	e = o.ArrayLoad(e, x0, arr, 4, 0)
	e = o.ArrayLoad(e, x1, arr, 4, 4)

	v0, ok0 := o.At(e, x0).IsSingleton()
	v1, ok1 := o.At(e, x1).IsSingleton()
	if !ok0 || v0.Int64() != 0 || !ok1 || v1.Int64() != 0 {
		t.Fatalf("both initialised elements should read back as 0, got x0=%s x1=%s", o.At(e, x0), o.At(e, x1))
	}
}

// TestExpansionWideStoreKillsOverlappingCells checks the overlap
// invariant of spec.md §8: a store that overlaps, but does not exactly
// match, an existing cell must forget that cell rather than leave two
// overlapping cells both alive.
func TestExpansionWideStoreKillsOverlappingCells(t *testing.T) {
	f := variable.NewFactory()
	arr := f.Fresh("a", variable.ArrayOf(variable.Int(32)))
	lo := f.Fresh("lo", variable.Int(32))
	hi := f.Fresh("hi", variable.Int(32))
	reread := f.Fresh("reread", variable.Int(32))
	var warns []string
	o := newExpansion(f, &warns)

	e := o.Top()
	e = o.ArrayStore(e, arr, 4, 0, domain.ArrayInitValue{Interval: rng(1, 1)}, true)
	e = o.ArrayStore(e, arr, 4, 4, domain.ArrayInitValue{Interval: rng(2, 2)}, true)
	e = o.ArrayStore(e, arr, 4, 8, domain.ArrayInitValue{Interval: rng(3, 3)}, true)

	// A single 8-byte store at offset 0 overlaps, but does not exactly
	// match, the two 4-byte cells at offsets 0 and 4; both must be killed.
	e = o.ArrayStore(e, arr, 8, 0, domain.ArrayInitValue{Interval: rng(99, 99)}, true)

	e = o.ArrayLoad(e, lo, arr, 8, 0)
	loV, loOK := o.At(e, lo).IsSingleton()
	if !loOK || loV.Int64() != 99 {
		t.Fatalf("the wide store's exact-match reload should read 99, got %s", o.At(e, lo))
	}

	e = o.ArrayLoad(e, hi, arr, 4, 8)
	hiV, hiOK := o.At(e, hi).IsSingleton()
	if !hiOK || hiV.Int64() != 3 {
		t.Fatalf("the untouched cell at offset 8 should still read 3, got %s", o.At(e, hi))
	}

	// Re-reading at the old 4-byte granularity now overlaps the new
	// 8-byte cell without exactly matching it, so it must warn and
	// forget reread rather than report a stale value.
	before := len(warns)
	e = o.ArrayLoad(e, reread, arr, 4, 0)
	if len(warns) != before+1 {
		t.Fatalf("expected exactly one overlap warning from the stale-granularity reload, got %d new warnings", len(warns)-before)
	}
	if !o.At(e, reread).IsTop() {
		t.Fatalf("the stale-granularity reload should forget reread, got %s", o.At(e, reread))
	}
}

func TestExpansionWeakStoreOnSameCellJoinsWithOld(t *testing.T) {
	f := variable.NewFactory()
	arr := f.Fresh("a", variable.ArrayOf(variable.Int(32)))
	lhs := f.Fresh("x", variable.Int(32))
	var warns []string
	o := newExpansion(f, &warns)

	e := o.Top()
	e = o.ArrayStore(e, arr, 4, 0, domain.ArrayInitValue{Interval: rng(2, 2)}, true)
	e = o.ArrayStore(e, arr, 4, 0, domain.ArrayInitValue{Interval: rng(8, 8)}, false)
	e = o.ArrayLoad(e, lhs, arr, 4, 0)

	iv := o.At(e, lhs)
	if !iv.Contains(numeric.RatFromInt64(2)) || !iv.Contains(numeric.RatFromInt64(8)) {
		t.Fatalf("a weak store at the same exact cell should join with the old value, got %s", iv)
	}
}

// TestExpansionArrayAssignSharesCells checks that ArrayAssign makes the
// two arrays share the same cell scalars rather than copy their values,
// per spec.md §4.4: a later store through one array's cell is visible
// through the other's alias of that same cell.
func TestExpansionArrayAssignSharesCells(t *testing.T) {
	f := variable.NewFactory()
	a := f.Fresh("a", variable.ArrayOf(variable.Int(32)))
	b := f.Fresh("b", variable.ArrayOf(variable.Int(32)))
	lhs := f.Fresh("x", variable.Int(32))
	var warns []string
	o := newExpansion(f, &warns)

	e := o.Top()
	e = o.ArrayStore(e, a, 4, 0, domain.ArrayInitValue{Interval: rng(4, 4)}, true)
	e = o.ArrayAssign(e, b, a)
	e = o.ArrayStore(e, a, 4, 0, domain.ArrayInitValue{Interval: rng(6, 6)}, true)
	e = o.ArrayLoad(e, lhs, b, 4, 0)

	got, ok := o.At(e, lhs).IsSingleton()
	if !ok || got.Int64() != 6 {
		t.Fatalf("b should observe a's later store through the shared cell scalar, got %s", o.At(e, lhs))
	}
}

func TestExpansionCellIndexGivesStableScalarAcrossBranches(t *testing.T) {
	f := variable.NewFactory()
	arr := f.Fresh("a", variable.ArrayOf(variable.Int(32)))
	lhsLeft := f.Fresh("xl", variable.Int(32))
	lhsRight := f.Fresh("xr", variable.Int(32))
	var warns []string
	o := newExpansion(f, &warns)

	base := o.Top()
	left := o.ArrayStore(base, arr, 4, 0, domain.ArrayInitValue{Interval: rng(1, 1)}, true)
	right := o.ArrayStore(base, arr, 4, 0, domain.ArrayInitValue{Interval: rng(5, 5)}, true)
	joined := o.Join(left, right)

	joined = o.ArrayLoad(joined, lhsLeft, arr, 4, 0)
	joined2 := o.ArrayLoad(o.Join(left, right), lhsRight, arr, 4, 0)

	iv1 := o.At(joined, lhsLeft)
	iv2 := o.At(joined2, lhsRight)
	if !iv1.Contains(numeric.RatFromInt64(1)) || !iv1.Contains(numeric.RatFromInt64(5)) {
		t.Fatalf("joining two branches that each independently materialised the same cell should merge their values, got %s", iv1)
	}
	if !iv2.Contains(numeric.RatFromInt64(1)) || !iv2.Contains(numeric.RatFromInt64(5)) {
		t.Fatalf("expected the same result from an independently re-joined pair, got %s", iv2)
	}
}

var _ domain.Domain[*arraydom.Expansion[*octagon.Value]] = arraydom.ExpansionOps[*octagon.Value]{}
