package octagon_test

import (
	"testing"

	"github.com/katalvlaran/relnum/linear"
	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/octagon"
	"github.com/katalvlaran/relnum/variable"
)

// TestSetDoesNotMutateSharedSnapshot checks the copy-on-write wrapper state
// machine of spec.md §4.2: deriving b from a via Set must never change what
// a itself reports, even though both initially share the same norm.
func TestSetDoesNotMutateSharedSnapshot(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))

	a := octagon.Top().Set(x, rng(0, 0))
	b := a.Set(x, rng(5, 5))

	av, aok := a.At(x).IsSingleton()
	if !aok || av.Int64() != 0 {
		t.Fatalf("a should still read x == 0 after deriving b, got %s", a.At(x))
	}
	bv, bok := b.At(x).IsSingleton()
	if !bok || bv.Int64() != 5 {
		t.Fatalf("b should read x == 5, got %s", b.At(x))
	}
}

// TestForgetDoesNotMutateOriginal mirrors the isolation check for Forget.
func TestForgetDoesNotMutateOriginal(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))

	a := octagon.Top().Set(x, rng(3, 3))
	b := a.Forget(x)

	if !b.At(x).IsTop() {
		t.Fatalf("b should have forgotten x, got %s", b.At(x))
	}
	av, ok := a.At(x).IsSingleton()
	if !ok || av.Int64() != 3 {
		t.Fatalf("a should be unaffected by forgetting x on b, got %s", a.At(x))
	}
}

// TestAssignDoesNotMutateOriginal mirrors the isolation check for Assign.
func TestAssignDoesNotMutateOriginal(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))
	y := f.Fresh("y", variable.Int(64))

	a := octagon.Top().Set(x, rng(0, 0)).Set(y, rng(1, 1))
	b := a.Assign(x, linear.Var(y))

	av, aok := a.At(x).IsSingleton()
	if !aok || av.Int64() != 0 {
		t.Fatalf("a's x should be unaffected by b's assign, got %s", a.At(x))
	}
	bv, bok := b.At(x).IsSingleton()
	if !bok || bv.Int64() != 1 {
		t.Fatalf("b's x should now equal y == 1, got %s", b.At(x))
	}
}

func TestMultipleDerivationsFromSameBaseAreIndependent(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))

	base := octagon.Top().Set(x, rng(0, 10))
	left := base.Set(x, rng(0, 2))
	right := base.Set(x, rng(8, 10))

	if !base.At(x).Contains(numeric.RatFromInt64(5)) {
		t.Fatalf("base should be untouched by either derived branch, got %s", base.At(x))
	}
	if left.At(x).Contains(numeric.RatFromInt64(8)) {
		t.Fatalf("left branch leaked right branch's range: %s", left.At(x))
	}
	if right.At(x).Contains(numeric.RatFromInt64(0)) {
		t.Fatalf("right branch leaked left branch's range: %s", right.At(x))
	}
}

// TestEntailAndIntersect checks spec.md §6's entail/intersect pair against
// an interval where the expected answers differ, with every constraint kept
// a margin away from v's actual bound: x in [0,5] entails the looser
// x <= 10, does not entail the tighter x <= 3, and intersects with x >= 4.
func TestEntailAndIntersect(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))

	v := octagon.Top().Set(x, rng(0, 5))
	le3 := linear.NewConstraint(linear.Var(x).AddConst(numeric.RatFromInt64(-3)), linear.LE)
	le10 := linear.NewConstraint(linear.Var(x).AddConst(numeric.RatFromInt64(-10)), linear.LE)
	ge4 := linear.NewConstraint(linear.Var(x).AddConst(numeric.RatFromInt64(-4)), linear.GE)

	if v.Entail(le3) {
		t.Fatal("x in [0,5] should not entail the strictly tighter x <= 3")
	}
	if !v.Entail(le10) {
		t.Fatal("x in [0,5] should entail the looser x <= 10")
	}
	if !v.Intersect(ge4) {
		t.Fatal("x in [0,5] should intersect with x >= 4")
	}
}
