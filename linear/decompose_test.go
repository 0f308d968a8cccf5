package linear_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/relnum/interval"
	"github.com/katalvlaran/relnum/linear"
	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/variable"
)

// findBound returns the first ShapeBound result in cs for variable x, or
// fails the test if none exists.
func findBound(t *testing.T, cs []linear.DiffCst, x *variable.Variable) linear.DiffCst {
	t.Helper()
	for _, c := range cs {
		if c.Shape == linear.ShapeBound && c.X == x {
			return c
		}
	}
	t.Fatalf("no ShapeBound result for %s in %+v", x.Name, cs)
	return linear.DiffCst{}
}

// findPair returns the first ShapeDiff/ShapeSum result pairing x and y
// (in either order), or fails the test if none exists.
func findPair(t *testing.T, cs []linear.DiffCst, x, y *variable.Variable) linear.DiffCst {
	t.Helper()
	for _, c := range cs {
		if (c.Shape == linear.ShapeDiff || c.Shape == linear.ShapeSum) &&
			((c.X == x && c.Y == y) || (c.X == y && c.Y == x)) {
			return c
		}
	}
	t.Fatalf("no two-variable result pairing %s and %s in %+v", x.Name, y.Name, cs)
	return linear.DiffCst{}
}

func rat(n int64) numeric.Rational { return numeric.RatFromInt64(n) }

func TestDecomposeLinLeqTable(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))
	y := f.Fresh("y", variable.Int(64))
	z := f.Fresh("z", variable.Int(64))

	// z stands in for a variable whose current envelope has real width,
	// exercising the residual-absorption path rather than a degenerate
	// singleton.
	zWide := interval.Range(rat(0), rat(10))
	env := func(v *variable.Variable) interval.Interval {
		if v == z {
			return zWide
		}
		return interval.Top()
	}

	cases := []struct {
		name      string
		expr      func() *linear.Expr
		checkBound *struct {
			x     *variable.Variable
			signX int8
			bound numeric.Rational
		}
		checkPair *struct {
			x, y   *variable.Variable
			shape  linear.DiffShape
			bound  numeric.Rational
		}
	}{
		{
			// x - 5 <= 0  =>  x <= 5
			name: "single bound, positive coefficient",
			expr: func() *linear.Expr { return linear.Var(x).AddConst(rat(-5)) },
			checkBound: &struct {
				x     *variable.Variable
				signX int8
				bound numeric.Rational
			}{x, 1, rat(5)},
		},
		{
			// -x - 5 <= 0  =>  -x <= 5  (x >= -5)
			name: "single bound, negative coefficient",
			expr: func() *linear.Expr { return linear.Var(x).AddTerm(x, rat(-2)).AddConst(rat(-5)) },
			checkBound: &struct {
				x     *variable.Variable
				signX int8
				bound numeric.Rational
			}{x, -1, rat(5)},
		},
		{
			// x - y + 2 <= 0  =>  x - y <= -2
			name: "difference of two unit-coefficient variables",
			expr: func() *linear.Expr { return linear.Var(x).AddTerm(y, rat(-1)).AddConst(rat(2)) },
			checkPair: &struct {
				x, y  *variable.Variable
				shape linear.DiffShape
				bound numeric.Rational
			}{x, y, linear.ShapeDiff, rat(-2)},
		},
		{
			// x + y - 3 <= 0  =>  x + y <= 3
			name: "sum of two unit-coefficient variables",
			expr: func() *linear.Expr { return linear.Var(x).AddTerm(y, rat(1)).AddConst(rat(-3)) },
			checkPair: &struct {
				x, y  *variable.Variable
				shape linear.DiffShape
				bound numeric.Rational
			}{x, y, linear.ShapeSum, rat(3)},
		},
		{
			// x + 2*z - 1 <= 0, z in [0,10]  =>  x <= 1 - 2*min(z) = 1.
			// Using the residual's upper bound instead of its lower bound
			// would derive x <= -19, which is unsound: z could actually be
			// 0, in which case x is only bound by 1.
			name: "non-unit coefficient absorbed via residual's lower bound",
			expr: func() *linear.Expr { return linear.Var(x).AddTerm(z, rat(2)).AddConst(rat(-1)) },
			checkBound: &struct {
				x     *variable.Variable
				signX int8
				bound numeric.Rational
			}{x, 1, rat(1)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := linear.DecomposeLinLeq(tc.expr(), env)
			if tc.checkBound != nil {
				got := findBound(t, out, tc.checkBound.x)
				require.Equal(t, tc.checkBound.signX, got.SignX)
				require.True(t, numeric.EqualRat(tc.checkBound.bound, got.Bound),
					"bound %s, want %s", got.Bound, tc.checkBound.bound)
			}
			if tc.checkPair != nil {
				got := findPair(t, out, tc.checkPair.x, tc.checkPair.y)
				require.Equal(t, tc.checkPair.shape, got.Shape)
				require.True(t, numeric.EqualRat(tc.checkPair.bound, got.Bound),
					"bound %s, want %s", got.Bound, tc.checkPair.bound)
			}
		})
	}
}

// TestDecomposeLinLeqDropsUnboundedResidual checks that a term whose
// residual envelope is unbounded below yields no ShapeBound result at all,
// rather than fabricating a vacuous +inf-derived bound.
func TestDecomposeLinLeqDropsUnboundedResidual(t *testing.T) {
	f := variable.NewFactory()
	x := f.Fresh("x", variable.Int(64))
	w := f.Fresh("w", variable.Int(64))

	env := func(v *variable.Variable) interval.Interval {
		if v == w {
			return interval.Top() // unbounded both ways
		}
		return interval.Top()
	}

	expr := linear.Var(x).AddTerm(w, rat(1)).AddConst(rat(-1))
	out := linear.DecomposeLinLeq(expr, env)
	for _, c := range out {
		if c.Shape == linear.ShapeBound && c.X == x {
			t.Fatalf("expected no sound bound on x given w's unbounded residual, got %+v", c)
		}
	}
}
