package linear_test

import (
	"testing"

	"github.com/katalvlaran/relnum/interval"
	"github.com/katalvlaran/relnum/linear"
	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/variable"
)

func topEnv(*variable.Variable) interval.Interval { return interval.Top() }

func TestDecompose_TwoVarDifference(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))
	y := f.Fresh("y", variable.Int(64))

	// x - y - 5 <= 0
	e := linear.NewExpr()
	e.AddTerm(x, numeric.RatOne())
	e.AddTerm(y, numeric.NegRat(numeric.RatOne()))
	e.AddConst(numeric.RatFromInt64(-5))

	diffs := linear.DecomposeLinLeq(e, topEnv)
	found := false
	for _, d := range diffs {
		if d.Shape == linear.ShapeDiff && d.X == x && d.Y == y {
			if d.Bound.Int64() != 5 {
				t.Fatalf("expected bound 5, got %s", d.Bound)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a ShapeDiff constraint between x and y, got %+v", diffs)
	}
}

func TestDecompose_BoundWithResidual(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))
	z := f.Fresh("z", variable.Int(64))

	env := func(v *variable.Variable) interval.Interval {
		if v == z {
			return interval.Range(numeric.RatFromInt64(0), numeric.RatFromInt64(10))
		}
		return interval.Top()
	}

	// x + 2*z - 3 <= 0  (2*z is not unit-coefficient, so z is residualized)
	e := linear.NewExpr()
	e.AddTerm(x, numeric.RatOne())
	e.AddTerm(z, numeric.RatFromInt64(2))
	e.AddConst(numeric.RatFromInt64(-3))

	diffs := linear.DecomposeLinLeq(e, env)
	found := false
	for _, d := range diffs {
		if d.Shape == linear.ShapeBound && d.X == x {
			// x <= 3 - 2*z.Lo = 3 - 0 = 3
			if d.Bound.Int64() != 3 {
				t.Fatalf("expected bound 3, got %s", d.Bound)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a ShapeBound constraint on x, got %+v", diffs)
	}
}
