package interval

import "github.com/katalvlaran/relnum/numeric"

// Interval is [Lo, Hi] over the extended rationals, or the empty (bottom)
// interval when Empty is set. Top is represented as Lo, Hi both Infinite().
type Interval struct {
	Lo, Hi Bound
	Empty  bool
}

// Top returns (-inf, +inf).
func Top() Interval { return Interval{Lo: Infinite(), Hi: Infinite()} }

// Bottom returns the empty interval.
func Bottom() Interval { return Interval{Empty: true} }

// FromInt64 returns the singleton interval [n, n].
func FromInt64(n int64) Interval {
	b := FiniteInt(n)
	return Interval{Lo: b, Hi: b}
}

// Range returns [lo, hi]. If lo > hi the result is Bottom().
func Range(lo, hi numeric.Rational) Interval {
	iv := Interval{Lo: Finite(lo), Hi: Finite(hi)}
	if numeric.CmpRat(lo, hi) > 0 {
		return Bottom()
	}
	return iv
}

// IsTop reports whether iv is unconstrained.
func (iv Interval) IsTop() bool {
	return !iv.Empty && !iv.Lo.IsFinite() && !iv.Hi.IsFinite()
}

// IsBottom reports whether iv is the empty interval.
func (iv Interval) IsBottom() bool { return iv.Empty }

// IsSingleton reports whether iv contains exactly one value, returning it.
func (iv Interval) IsSingleton() (numeric.Rational, bool) {
	if iv.Empty || !iv.Lo.IsFinite() || !iv.Hi.IsFinite() {
		return numeric.Rational{}, false
	}
	if numeric.EqualRat(iv.Lo.Value(), iv.Hi.Value()) {
		return iv.Lo.Value(), true
	}
	return numeric.Rational{}, false
}

// Contains reports whether v ∈ iv.
func (iv Interval) Contains(v numeric.Rational) bool {
	if iv.Empty {
		return false
	}
	if iv.Lo.IsFinite() && numeric.CmpRat(v, iv.Lo.Value()) < 0 {
		return false
	}
	if iv.Hi.IsFinite() && numeric.CmpRat(v, iv.Hi.Value()) > 0 {
		return false
	}
	return true
}

// Leq reports a ⊑ b (a is contained in b as a sound over-approximation
// ordering: a is tighter than or equal to b).
func Leq(a, b Interval) bool {
	if a.Empty {
		return true
	}
	if b.Empty {
		return false
	}
	return loLessEq(b.Lo, a.Lo) && hiGreaterEq(b.Hi, a.Hi)
}

// Join (⊔) returns the smallest interval containing both a and b.
func Join(a, b Interval) Interval {
	if a.Empty {
		return b
	}
	if b.Empty {
		return a
	}
	lo := a.Lo
	if !loLessEq(a.Lo, b.Lo) {
		lo = b.Lo
	}
	hi := a.Hi
	if !hiGreaterEq(a.Hi, b.Hi) {
		hi = b.Hi
	}
	return Interval{Lo: lo, Hi: hi}
}

// Meet (⊓) returns the intersection of a and b, or Bottom() if disjoint.
func Meet(a, b Interval) Interval {
	if a.Empty || b.Empty {
		return Bottom()
	}
	lo := a.Lo
	if loLessEq(a.Lo, b.Lo) {
		lo = b.Lo
	}
	hi := a.Hi
	if hiGreaterEq(a.Hi, b.Hi) {
		hi = b.Hi
	}
	if lo.IsFinite() && hi.IsFinite() && numeric.CmpRat(lo.Value(), hi.Value()) > 0 {
		return Bottom()
	}
	return Interval{Lo: lo, Hi: hi}
}

// Widen is the standard interval widening: a bound that shrank/held is kept,
// a bound that grew is immediately set to infinity. a is the previous
// iterate, b is the new one.
func Widen(a, b Interval) Interval {
	if a.Empty {
		return b
	}
	if b.Empty {
		return a
	}
	lo := a.Lo
	if !loLessEq(a.Lo, b.Lo) {
		// b's lower bound decreased past a's: unstable, drop to -inf.
		lo = Infinite()
	}
	hi := a.Hi
	if !hiGreaterEq(a.Hi, b.Hi) {
		hi = Infinite()
	}
	return Interval{Lo: lo, Hi: hi}
}

// WidenThresholds is Widen, except a growing bound jumps to the tightest
// threshold that still soundly contains the new bound instead of jumping
// straight to infinity.
func WidenThresholds(a, b Interval, thresholds []int64) Interval {
	if a.Empty {
		return b
	}
	if b.Empty {
		return a
	}
	lo := a.Lo
	if !loLessEq(a.Lo, b.Lo) {
		lo = bestLowerThreshold(b.Lo, thresholds)
	}
	hi := a.Hi
	if !hiGreaterEq(a.Hi, b.Hi) {
		hi = bestUpperThreshold(b.Hi, thresholds)
	}
	return Interval{Lo: lo, Hi: hi}
}

// bestLowerThreshold returns the largest threshold <= need, or Infinite()
// (-inf) if none qualifies.
func bestLowerThreshold(need Bound, thresholds []int64) Bound {
	best := Infinite()
	haveBest := false
	for _, t := range thresholds {
		tb := FiniteInt(t)
		if !loLessEq(tb, need) {
			continue // threshold is > need, not low enough to contain it
		}
		if !haveBest || !loLessEq(tb, best) {
			best = tb
			haveBest = true
		}
	}
	return best
}

// bestUpperThreshold returns the smallest threshold >= need, or Infinite()
// (+inf) if none qualifies.
func bestUpperThreshold(need Bound, thresholds []int64) Bound {
	best := Infinite()
	haveBest := false
	for _, t := range thresholds {
		tb := FiniteInt(t)
		if !hiGreaterEq(tb, need) {
			continue
		}
		if !haveBest || !hiGreaterEq(tb, best) {
			best = tb
			haveBest = true
		}
	}
	return best
}

// Narrow tightens a previously-widened interval a using the freshly
// computed b, but never loses soundness: only a bound that is infinite in a
// and finite in b is narrowed.
func Narrow(a, b Interval) Interval {
	if a.Empty || b.Empty {
		return a
	}
	lo := a.Lo
	if !a.Lo.IsFinite() && b.Lo.IsFinite() {
		lo = b.Lo
	}
	hi := a.Hi
	if !a.Hi.IsFinite() && b.Hi.IsFinite() {
		hi = b.Hi
	}
	return Interval{Lo: lo, Hi: hi}
}

// Trim removes the singleton {k} from iv when k sits exactly at one
// endpoint, tightening that endpoint by one; otherwise iv is returned
// unchanged. Used to handle disequations x != k: the tightening is only
// sound when k sits at a boundary, so interior values of k leave iv alone.
func Trim(iv Interval, k numeric.Rational) Interval {
	if iv.Empty {
		return iv
	}
	out := iv
	if iv.Lo.IsFinite() && numeric.EqualRat(iv.Lo.Value(), k) {
		out.Lo = Finite(numeric.AddRat(k, numeric.RatOne()))
	}
	if iv.Hi.IsFinite() && numeric.EqualRat(iv.Hi.Value(), k) {
		out.Hi = Finite(numeric.SubRat(k, numeric.RatOne()))
	}
	if out.Lo.IsFinite() && out.Hi.IsFinite() && numeric.CmpRat(out.Lo.Value(), out.Hi.Value()) > 0 {
		out.Empty = true
	}
	return out
}

// String renders iv for diagnostics.
func (iv Interval) String() string {
	if iv.Empty {
		return "[]"
	}
	return "[" + iv.Lo.String(true) + ", " + iv.Hi.String(false) + "]"
}
