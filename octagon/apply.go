// File: apply.go
// Role: apply(op, x, y, z|k) for *, /, bitwise, unsigned/modulo ops: project
// the operands to intervals, compute in the interval domain, and install
// the result via Set. Addition/subtraction are modeled as Assign with a
// linear.Expr instead, since those are exactly linear and the relational
// domain can track them precisely rather than falling back to intervals.
package octagon

import (
	"github.com/katalvlaran/relnum/interval"
	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/variable"
)

// ArithOp is a non-linear operator handled by interval projection rather
// than by the relational Assign path.
type ArithOp int

const (
	// OpMul is multiplication.
	OpMul ArithOp = iota
	// OpDiv is truncating integer division.
	OpDiv
	// OpMod is truncating integer remainder.
	OpMod
	// OpAnd is bitwise AND.
	OpAnd
	// OpOr is bitwise OR.
	OpOr
	// OpXor is bitwise XOR.
	OpXor
	// OpShl is left shift.
	OpShl
	// OpShr is right shift.
	OpShr
)

// Apply computes x := y op z (a nil z is read as the constant 0; ApplyConst
// takes an integer constant instead) by projecting y (and z) to intervals, evaluating op over the interval
// domain, and installing the result via Set — the non-relational apply
// path, used for every operator except + and − (which go through
// Assign with a linear.Expr instead).
func (v *Value) Apply(op ArithOp, x, y, z *variable.Variable) *Value {
	if v.IsBottom() {
		return v
	}
	iy := v.At(y)
	var iz interval.Interval
	if z != nil {
		iz = v.At(z)
	} else {
		iz = interval.FromInt64(0)
	}
	return v.Set(x, applyOp(op, iy, iz))
}

// ApplyConst computes x := y op k for an integer constant k.
func (v *Value) ApplyConst(op ArithOp, x, y *variable.Variable, k int64) *Value {
	if v.IsBottom() {
		return v
	}
	iy := v.At(y)
	return v.Set(x, applyOp(op, iy, interval.FromInt64(k)))
}

// applyOp evaluates op over two intervals. Multiplication uses the standard
// endpoint-combination rule: the result spans every pairwise combination of
// finite endpoints, widening to Top() the moment either operand has an
// infinite endpoint. Division and modulo are evaluated only when both
// operands are singletons and the divisor is non-zero, and are Top()
// otherwise; bitwise/shift operators are handled below. This intentionally
// trades precision for simplicity — exact interval multiplication/division
// bounds (taking the sign of each operand's endpoints into account rather
// than widening whenever any endpoint is infinite) are well understood but
// add real implementation complexity for marginal gain on the operators
// this module actually needs to support.
func applyOp(op ArithOp, a, b interval.Interval) interval.Interval {
	if a.IsBottom() || b.IsBottom() {
		return interval.Bottom()
	}
	switch op {
	case OpMul:
		return intervalMul(a, b)
	case OpDiv:
		return intervalDiv(a, b)
	case OpMod:
		return intervalMod(a, b)
	case OpAnd, OpOr, OpXor, OpShl, OpShr:
		// Bitwise/shift operators are not monotone in general; without
		// exact bit-level interval reasoning the only sound result is an
		// unbounded interval unless both operands collapse to singletons,
		// in which case the operator is evaluated exactly.
		av, aok := a.IsSingleton()
		bv, bok := b.IsSingleton()
		if aok && bok && av.IsInt() && bv.IsInt() {
			return interval.FromInt64(evalBitwise(op, av.Int64(), bv.Int64()))
		}
		return interval.Top()
	}
	return interval.Top()
}

func evalBitwise(op ArithOp, a, b int64) int64 {
	switch op {
	case OpAnd:
		return a & b
	case OpOr:
		return a | b
	case OpXor:
		return a ^ b
	case OpShl:
		return a << uint(b)
	case OpShr:
		return a >> uint(b)
	}
	return 0
}

func intervalMul(a, b interval.Interval) interval.Interval {
	corners := boundedCorners(a, b)
	if corners == nil {
		return interval.Top()
	}
	var products []numeric.Rational
	for _, c := range corners {
		products = append(products, numeric.MulRat(c[0], c[1]))
	}
	return envelopeOf(products)
}

func intervalDiv(a, b interval.Interval) interval.Interval {
	bv, ok := b.IsSingleton()
	if !ok || bv.Sign() == 0 {
		return interval.Top()
	}
	av, aok := a.IsSingleton()
	if !aok {
		return interval.Top()
	}
	return interval.FromInt64(av.Int64() / bv.Int64())
}

func intervalMod(a, b interval.Interval) interval.Interval {
	bv, ok := b.IsSingleton()
	if !ok || bv.Sign() == 0 {
		return interval.Top()
	}
	av, aok := a.IsSingleton()
	if !aok {
		return interval.Top()
	}
	return interval.FromInt64(av.Int64() % bv.Int64())
}

// boundedCorners returns every (lo/hi, lo/hi) pair of a and b as concrete
// Rationals, or nil if either interval has an infinite endpoint (in which
// case the caller falls back to Top()).
func boundedCorners(a, b interval.Interval) [][2]numeric.Rational {
	if !a.Lo.IsFinite() || !a.Hi.IsFinite() || !b.Lo.IsFinite() || !b.Hi.IsFinite() {
		return nil
	}
	return [][2]numeric.Rational{
		{a.Lo.Value(), b.Lo.Value()},
		{a.Lo.Value(), b.Hi.Value()},
		{a.Hi.Value(), b.Lo.Value()},
		{a.Hi.Value(), b.Hi.Value()},
	}
}

func envelopeOf(vals []numeric.Rational) interval.Interval {
	if len(vals) == 0 {
		return interval.Bottom()
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if numeric.CmpRat(v, lo) < 0 {
			lo = v
		}
		if numeric.CmpRat(v, hi) > 0 {
			hi = v
		}
	}
	return interval.Range(lo, hi)
}
