package numeric

import (
	"math/big"
)

// Weight is an edge weight drawn from the extended integers Z ∪ {+∞}: a
// totally-ordered commutative monoid under (Add, Min), which is exactly
// the algebraic structure the weighted-graph layer's closure needs. The
// zero Weight is 0, not +∞; use Inf() for the absent-edge sentinel.
type Weight struct {
	inf bool
	v   *big.Int // nil iff inf; otherwise non-nil
}

// Zero is the additive identity (weight 0).
func Zero() Weight { return Weight{v: big.NewInt(0)} }

// Inf is the absorbing element standing for "no edge" / "no path yet".
func Inf() Weight { return Weight{inf: true} }

// FromInt64 builds a finite Weight from an int64.
func FromInt64(n int64) Weight { return Weight{v: big.NewInt(n)} }

// FromBigInt builds a finite Weight from a *big.Int, copying it.
func FromBigInt(n *big.Int) Weight { return Weight{v: new(big.Int).Set(n)} }

// IsInf reports whether w is the +∞ sentinel.
func (w Weight) IsInf() bool { return w.inf }

// Int64 returns the finite value of w as an int64. Calling it on Inf() is a
// programmer error (callers must check IsInf first) and panics, matching
// the teacher's convention that contract violations abort rather than
// silently misbehave.
func (w Weight) Int64() int64 {
	if w.inf {
		panic("numeric: Int64 called on Inf weight")
	}
	return w.v.Int64()
}

// BigInt returns the finite value of w. Panics on Inf(), see Int64.
func (w Weight) BigInt() *big.Int {
	if w.inf {
		panic("numeric: BigInt called on Inf weight")
	}
	return new(big.Int).Set(w.v)
}

// Add returns a+b under the Z∪{+∞} monoid: +∞ absorbs any finite addend.
//
// Complexity: O(len(a)+len(b)) big.Int digits.
func Add(a, b Weight) Weight {
	if a.inf || b.inf {
		return Inf()
	}
	return Weight{v: new(big.Int).Add(a.v, b.v)}
}

// Min returns the smaller of a and b, with +∞ the identity for Min
// (Min(a, Inf()) == a).
func Min(a, b Weight) Weight {
	if a.inf {
		return b
	}
	if b.inf {
		return a
	}
	if a.v.Cmp(b.v) <= 0 {
		return a
	}
	return b
}

// Neg returns -w. Panics on Inf() (negating "no edge" is meaningless).
func Neg(w Weight) Weight {
	if w.inf {
		panic("numeric: Neg called on Inf weight")
	}
	return Weight{v: new(big.Int).Neg(w.v)}
}

// Cmp returns -1, 0, +1 as a<b, a==b, a>b, treating Inf() as greater than
// every finite value and equal only to itself.
func Cmp(a, b Weight) int {
	if a.inf && b.inf {
		return 0
	}
	if a.inf {
		return 1
	}
	if b.inf {
		return -1
	}
	return a.v.Cmp(b.v)
}

// Less reports a < b.
func Less(a, b Weight) bool { return Cmp(a, b) < 0 }

// Equal reports a == b.
func Equal(a, b Weight) bool { return Cmp(a, b) == 0 }

// String renders w for diagnostics ("+Inf" or the decimal value).
func (w Weight) String() string {
	if w.inf {
		return "+Inf"
	}
	return w.v.String()
}
