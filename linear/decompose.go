package linear

import (
	"github.com/katalvlaran/relnum/interval"
	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/variable"
)

// DiffShape classifies a DiffCst's left-hand side.
type DiffShape int

const (
	// ShapeBound is ±x ≤ c (an interval bound, one variable).
	ShapeBound DiffShape = iota
	// ShapeDiff is x − y ≤ c (two variables, opposite signs).
	ShapeDiff
	// ShapeSum is x + y ≤ c or −x − y ≤ c (two variables, same sign).
	ShapeSum
)

// DiffCst is an octagon-representable atomic constraint: SignX·X [+ SignY·Y]
// ≤ Bound, derived from a general linear inequality by over-approximating
// every other term with its interval envelope, the same decoding strategy
// crab's split_oct.hpp uses for diffcsts_of_lin_leq.
type DiffCst struct {
	Shape DiffShape
	X     *variable.Variable
	SignX int8 // +1 or -1
	Y     *variable.Variable // nil unless Shape != ShapeBound
	SignY int8
	Bound numeric.Rational
}

// Envelope supplies the current interval approximation of a variable, used
// to over-approximate terms that are not kept symbolic during
// decomposition.
type Envelope func(*variable.Variable) interval.Interval

// scaleInterval returns coeff·iv using interval endpoint arithmetic: for a
// positive coefficient endpoints are scaled directly; for a negative one
// they are scaled and swapped.
func scaleInterval(coeff numeric.Rational, iv interval.Interval) interval.Interval {
	if iv.IsBottom() {
		return iv
	}
	if coeff.Sign() == 0 {
		return interval.FromInt64(0)
	}
	return interval.Interval{
		Lo: scaleBound(coeff, iv.Lo, iv.Hi, true),
		Hi: scaleBound(coeff, iv.Lo, iv.Hi, false),
	}
}

// scaleBound scales one endpoint of [lo,hi] by coeff. wantLo selects which
// resulting endpoint (lower or upper) is being computed; a negative
// coefficient swaps which source endpoint feeds it.
func scaleBound(coeff numeric.Rational, lo, hi interval.Bound, wantLo bool) interval.Bound {
	pos := coeff.Sign() > 0
	src := lo
	if pos != wantLo {
		src = hi
	}
	if !src.IsFinite() {
		return interval.Infinite()
	}
	return interval.Finite(numeric.MulRat(coeff, src.Value()))
}

// sumEnvelope returns the interval over-approximation of the sum of terms
// not in skip, i.e. Σ_{v∉skip} coeff(v)·env(v), plus the expression's
// constant.
func sumEnvelope(e *Expr, env Envelope, skip map[*variable.Variable]bool) interval.Interval {
	acc := interval.FromInt64(0)
	acc.Lo = interval.Finite(e.Const())
	acc.Hi = interval.Finite(e.Const())
	for _, v := range e.Vars() {
		if skip[v] {
			continue
		}
		term := scaleInterval(e.Coeff(v), env(v))
		acc = addIntervals(acc, term)
	}
	return acc
}

func addIntervals(a, b interval.Interval) interval.Interval {
	if a.IsBottom() || b.IsBottom() {
		return interval.Bottom()
	}
	lo := interval.Infinite()
	if a.Lo.IsFinite() && b.Lo.IsFinite() {
		lo = interval.Finite(numeric.AddRat(a.Lo.Value(), b.Lo.Value()))
	}
	hi := interval.Infinite()
	if a.Hi.IsFinite() && b.Hi.IsFinite() {
		hi = interval.Finite(numeric.AddRat(a.Hi.Value(), b.Hi.Value()))
	}
	return interval.Interval{Lo: lo, Hi: hi}
}

// isUnitCoeff reports whether c is exactly +1 or -1, returning the sign.
func isUnitCoeff(c numeric.Rational) (sign int8, ok bool) {
	if numeric.EqualRat(c, numeric.RatOne()) {
		return 1, true
	}
	if numeric.EqualRat(c, numeric.NegRat(numeric.RatOne())) {
		return -1, true
	}
	return 0, false
}

// DecomposeLinLeq decomposes the constraint e ≤ 0 into every
// octagon-representable atomic constraint derivable by keeping at most two
// unit-coefficient variables symbolic and over-approximating the remainder
// with env. Each returned DiffCst is independently sound (implied by e ≤ 0);
// the caller installs all of them as edges and lets closure combine them.
//
// Complexity: O(n³) in the number of non-zero terms of e (each of the O(n²)
// pairs sums an O(n) residual envelope), which is small in practice (this models a single program statement's operands).
func DecomposeLinLeq(e *Expr, env Envelope) []DiffCst {
	vars := e.Vars()
	var out []DiffCst

	// Single-variable bounds: x ≤ c or -x ≤ c, residualizing everything else.
	for _, x := range vars {
		sx, ok := isUnitCoeff(e.Coeff(x))
		if !ok {
			continue
		}
		skip := map[*variable.Variable]bool{x: true}
		res := sumEnvelope(e, env, skip)
		if res.IsBottom() || !res.Lo.IsFinite() {
			continue
		}
		// sx·x + res ≤ 0  ⇒  sx·x ≤ -res for whatever the residual's actual
		// value is; since that value is only known to lie in res, the only
		// bound sound for every point of res is the one reached at res's
		// own lower bound (where -res is largest).
		bound := numeric.NegRat(res.Lo.Value())
		out = append(out, DiffCst{Shape: ShapeBound, X: x, SignX: sx, Bound: bound})
	}

	// Two-variable difference/sum edges, residualizing everything else.
	for i := 0; i < len(vars); i++ {
		sx, ok := isUnitCoeff(e.Coeff(vars[i]))
		if !ok {
			continue
		}
		for j := i + 1; j < len(vars); j++ {
			sy, ok := isUnitCoeff(e.Coeff(vars[j]))
			if !ok {
				continue
			}
			skip := map[*variable.Variable]bool{vars[i]: true, vars[j]: true}
			res := sumEnvelope(e, env, skip)
			if res.IsBottom() || !res.Lo.IsFinite() {
				continue
			}
			bound := numeric.NegRat(res.Lo.Value())
			shape := ShapeSum
			if sx != sy {
				shape = ShapeDiff
			}
			out = append(out, DiffCst{Shape: shape, X: vars[i], SignX: sx, Y: vars[j], SignY: sy, Bound: bound})
		}
	}

	return out
}
