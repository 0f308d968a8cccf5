package numeric

import "math/big"

// Rational is an arbitrary-precision rational, used for linear-constraint
// coefficients and constants.
type Rational struct {
	r *big.Rat
}

// RatFromInt64 builds a Rational equal to n.
func RatFromInt64(n int64) Rational { return Rational{r: big.NewRat(n, 1)} }

// RatFromFrac builds a Rational equal to num/den. Panics if den == 0.
func RatFromFrac(num, den int64) Rational { return Rational{r: big.NewRat(num, den)} }

// RatZero is the additive identity.
func RatZero() Rational { return RatFromInt64(0) }

// RatOne is the multiplicative identity.
func RatOne() Rational { return RatFromInt64(1) }

// IsInt reports whether r is an integer value.
func (r Rational) IsInt() bool { return r.r.IsInt() }

// Int64 truncates r toward zero into an int64. Callers should check IsInt
// first when exactness matters.
func (r Rational) Int64() int64 {
	q := new(big.Int).Quo(r.r.Num(), r.r.Denom())
	return q.Int64()
}

// Sign returns -1, 0, or +1.
func (r Rational) Sign() int { return r.r.Sign() }

// AddRat returns a+b.
func AddRat(a, b Rational) Rational { return Rational{r: new(big.Rat).Add(a.r, b.r)} }

// SubRat returns a-b.
func SubRat(a, b Rational) Rational { return Rational{r: new(big.Rat).Sub(a.r, b.r)} }

// MulRat returns a*b.
func MulRat(a, b Rational) Rational { return Rational{r: new(big.Rat).Mul(a.r, b.r)} }

// NegRat returns -a.
func NegRat(a Rational) Rational { return Rational{r: new(big.Rat).Neg(a.r)} }

// CmpRat returns -1, 0, +1 as a<b, a==b, a>b.
func CmpRat(a, b Rational) int { return a.r.Cmp(b.r) }

// EqualRat reports a == b.
func EqualRat(a, b Rational) bool { return a.r.Cmp(b.r) == 0 }

// String renders r for diagnostics.
func (r Rational) String() string { return r.r.RatString() }

// ToWeight converts an integral Rational to a Weight, rounding toward zero.
// Used when installing a linear-constraint bound as a graph edge weight,
// which requires an (extended) integer.
func (r Rational) ToWeight() Weight {
	q := new(big.Int).Quo(r.r.Num(), r.r.Denom())
	return FromBigInt(q)
}

// WeightToRat converts a finite Weight to a Rational. Panics on Inf(); use
// w.IsInf() to guard, matching Weight.Int64's contract.
func WeightToRat(w Weight) Rational {
	return Rational{r: new(big.Rat).SetInt(w.BigInt())}
}
