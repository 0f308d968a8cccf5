package octagon_test

import (
	"testing"

	"github.com/katalvlaran/relnum/linear"
	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/octagon"
	"github.com/katalvlaran/relnum/variable"
)

// TestAssignSumStaysSound checks x := y + z against concrete enumeration:
// every (y, z) pair in the bounded ranges set up must satisfy the octagon's
// reported interval for x afterwards.
func TestAssignSumStaysSound(t *testing.T) {
	f := variable.NewFactory()
	y := f.Fresh("y", variable.Int(64))
	z := f.Fresh("z", variable.Int(64))
	x := f.Fresh("x", variable.Int(64))

	v := octagon.Top().Set(y, rng(0, 3)).Set(z, rng(0, 2))
	e := linear.Var(y).AddTerm(z, numeric.RatOne())
	v = v.Assign(x, e)

	xiv := v.At(x)
	for yi := int64(0); yi <= 3; yi++ {
		for zi := int64(0); zi <= 2; zi++ {
			sum := numeric.RatFromInt64(yi + zi)
			if !xiv.Contains(sum) {
				t.Fatalf("x interval %s does not contain sound sum %d+%d=%d", xiv, yi, zi, yi+zi)
			}
		}
	}
}

// TestAssignDiffStaysSound mirrors TestAssignSumStaysSound for x := y - z,
// the octagon's other native shape.
func TestAssignDiffStaysSound(t *testing.T) {
	f := variable.NewFactory()
	y := f.Fresh("y", variable.Int(64))
	z := f.Fresh("z", variable.Int(64))
	x := f.Fresh("x", variable.Int(64))

	v := octagon.Top().Set(y, rng(0, 5)).Set(z, rng(0, 5))
	e := linear.Var(y).AddTerm(z, numeric.RatFromInt64(-1))
	v = v.Assign(x, e)

	xiv := v.At(x)
	for yi := int64(0); yi <= 5; yi++ {
		for zi := int64(0); zi <= 5; zi++ {
			diff := numeric.RatFromInt64(yi - zi)
			if !xiv.Contains(diff) {
				t.Fatalf("x interval %s does not contain sound diff %d-%d=%d", xiv, yi, zi, yi-zi)
			}
		}
	}
}

// TestAssumeLETightensInterval checks that assuming x - y <= 0 over
// independent starting ranges narrows x's reported upper bound to y's.
func TestAssumeLETightensInterval(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))
	y := f.Fresh("y", variable.Int(64))

	v := octagon.Top().Set(x, rng(0, 10)).Set(y, rng(0, 3))
	c := linear.NewConstraint(linear.Var(x).AddTerm(y, numeric.RatFromInt64(-1)), linear.LE)
	v = v.Assume(c)

	xiv := v.At(x)
	if !xiv.Hi.IsFinite() || xiv.Hi.Value().Int64() > 3 {
		t.Fatalf("expected x <= 3 after assume(x - y <= 0) with y in [0,3], got %s", xiv)
	}
}

func TestAssumeInfeasibleYieldsBottom(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))

	v := octagon.Top().Set(x, rng(0, 2))
	c := linear.NewConstraint(linear.Var(x).AddConst(numeric.RatFromInt64(-5)), linear.GE) // x - 5 >= 0 => x >= 5
	v = v.Assume(c)

	if !v.IsBottom() {
		t.Fatalf("expected x in [0,2] assumed x>=5 to collapse to bottom, got %s", v.At(x))
	}
}

func TestForgetDropsVariable(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))
	v := octagon.Top().Set(x, rng(0, 10)).Forget(x)
	if !v.At(x).IsTop() {
		t.Fatalf("forgotten variable should read back as top, got %s", v.At(x))
	}
}

func TestRenameRoundTrip(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))
	y := f.Fresh("y", variable.Int(64))
	v := octagon.Top().Set(x, rng(1, 1)).Rename([]*variable.Variable{x}, []*variable.Variable{y})

	if !v.At(x).IsTop() {
		t.Fatal("old name should no longer be bound after rename")
	}
	lo, ok := v.At(y).IsSingleton()
	if !ok || lo.Int64() != 1 {
		t.Fatalf("renamed variable should carry the original singleton, got %s", v.At(y))
	}
}

func TestExpandCopiesConstraints(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))
	y := f.Fresh("y", variable.Int(64))
	v := octagon.Top().Set(x, rng(2, 2)).Expand(x, y)

	xv, xok := v.At(x).IsSingleton()
	yv, yok := v.At(y).IsSingleton()
	if !xok || !yok || xv.Int64() != 2 || yv.Int64() != 2 {
		t.Fatalf("expand should give y the same singleton as x: x=%s y=%s", v.At(x), v.At(y))
	}
}

func TestExpandOntoExistingVariablePanics(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))
	y := f.Fresh("y", variable.Int(64))
	v := octagon.Top().Set(x, rng(0, 0)).Set(y, rng(1, 1))

	defer func() {
		if recover() == nil {
			t.Fatal("expected Expand onto an already-bound variable to panic")
		}
	}()
	v.Expand(x, y)
}

// TestLinearConstraintSystemRoundTrip checks ToLinearConstraintSystem +
// AssumeSystem against a fresh top value reproduce an equally tight x
// interval (spec.md §6's round-trip property).
func TestLinearConstraintSystemRoundTrip(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))
	y := f.Fresh("y", variable.Int(64))

	v := octagon.Top().Set(x, rng(0, 10)).Set(y, rng(0, 10))
	c := linear.NewConstraint(linear.Var(x).AddTerm(y, numeric.RatFromInt64(-1)), linear.LE)
	v = v.Assume(c)

	cs := v.ToLinearConstraintSystem()
	reconstructed := octagon.Top().AssumeSystem(cs)

	if !octagon.Leq(v, reconstructed) || !octagon.Leq(reconstructed, v) {
		t.Fatalf("round trip through ToLinearConstraintSystem/AssumeSystem changed the value")
	}
}

func TestAssumeDisequationTrimsSingletonResidual(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))
	y := f.Fresh("y", variable.Int(64))

	v := octagon.Top().Set(x, rng(0, 2)).Set(y, rng(2, 2))
	e := linear.Var(x).AddTerm(y, numeric.RatFromInt64(-1)) // x - y != 0 => x != 2
	c := linear.NewConstraint(e, linear.NE)
	v = v.Assume(c)

	if v.At(x).Contains(numeric.RatFromInt64(2)) {
		t.Fatalf("x != y with y == 2 should exclude x == 2, got %s", v.At(x))
	}
	if !v.At(x).Contains(numeric.RatFromInt64(0)) || !v.At(x).Contains(numeric.RatFromInt64(1)) {
		t.Fatalf("disequation should not have trimmed other values, got %s", v.At(x))
	}
}
