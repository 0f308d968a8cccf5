package interval

import "github.com/katalvlaran/relnum/numeric"

// Bound is one endpoint of an Interval: either a finite rational or an
// infinite bound (direction carried by which field of Interval it occupies
// and by the finite flag here).
type Bound struct {
	finite bool
	val    numeric.Rational
}

// Finite builds a finite Bound equal to v.
func Finite(v numeric.Rational) Bound { return Bound{finite: true, val: v} }

// FiniteInt builds a finite integral Bound.
func FiniteInt(n int64) Bound { return Finite(numeric.RatFromInt64(n)) }

// Infinite builds an infinite Bound (the caller's field position determines
// sign: Interval.Lo == Infinite() means -∞, Interval.Hi == Infinite() means
// +∞).
func Infinite() Bound { return Bound{} }

// IsFinite reports whether b carries a concrete value.
func (b Bound) IsFinite() bool { return b.finite }

// Value returns the finite value of b. Panics if !b.IsFinite().
func (b Bound) Value() numeric.Rational {
	if !b.finite {
		panic("interval: Value called on infinite Bound")
	}
	return b.val
}

// String renders b for diagnostics; sign must be supplied by the caller
// since Bound itself does not know which side of an Interval it is on.
func (b Bound) String(negSide bool) string {
	if !b.finite {
		if negSide {
			return "-inf"
		}
		return "+inf"
	}
	return b.val.String()
}

// loLessEq compares two lower bounds, where an infinite Bound always means
// -inf: reports a <= b (a is at least as permissive as b).
func loLessEq(a, b Bound) bool {
	if !a.finite {
		return true // -inf is <= everything
	}
	if !b.finite {
		return false // finite a is never <= -inf
	}
	return numeric.CmpRat(a.val, b.val) <= 0
}

// hiGreaterEq compares two upper bounds, where an infinite Bound always
// means +inf: reports a >= b (a is at least as permissive as b).
func hiGreaterEq(a, b Bound) bool {
	if !a.finite {
		return true // +inf is >= everything
	}
	if !b.finite {
		return false // finite a is never >= +inf
	}
	return numeric.CmpRat(a.val, b.val) >= 0
}
