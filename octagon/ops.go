// File: ops.go
// Role: Ops is the stateless witness satisfying domain.Domain[*Value] and
// domain.Checker[*Value], so octagon plugs into any generic fixpoint
// driver written against package domain without that driver ever
// importing octagon directly.
package octagon

import (
	"github.com/katalvlaran/relnum/domain"
	"github.com/katalvlaran/relnum/interval"
	"github.com/katalvlaran/relnum/linear"
	"github.com/katalvlaran/relnum/variable"
)

// Ops is the zero-size witness type; every method delegates to the package's
// free functions and *Value methods defined elsewhere in this package.
type Ops struct{}

var (
	_ domain.Domain[*Value]  = Ops{}
	_ domain.Checker[*Value] = Ops{}
)

func (Ops) Top() *Value    { return Top() }
func (Ops) Bottom() *Value { return Bottom() }

func (Ops) IsTop(v *Value) bool    { return v.IsTop() }
func (Ops) IsBottom(v *Value) bool { return v.IsBottom() }

func (Ops) Leq(a, b *Value) bool    { return Leq(a, b) }
func (Ops) Join(a, b *Value) *Value { return Join(a, b) }
func (Ops) Meet(a, b *Value) *Value { return Meet(a, b) }
func (Ops) Widen(a, b *Value) *Value { return Widen(a, b) }
func (Ops) WidenThresholds(a, b *Value, thresholds []int64) *Value {
	return WidenThresholds(a, b, thresholds)
}
func (Ops) Narrow(a, b *Value) *Value { return Narrow(a, b) }

func (Ops) Forget(v *Value, vars ...*variable.Variable) *Value  { return v.Forget(vars...) }
func (Ops) Project(v *Value, vars ...*variable.Variable) *Value { return v.Project(vars...) }
func (Ops) Rename(v *Value, from, to []*variable.Variable) *Value {
	return v.Rename(from, to)
}
func (Ops) Expand(v *Value, x, y *variable.Variable) *Value { return v.Expand(x, y) }

func (Ops) Assign(v *Value, x *variable.Variable, e *linear.Expr) *Value { return v.Assign(x, e) }
func (Ops) Set(v *Value, x *variable.Variable, i interval.Interval) *Value {
	return v.Set(x, i)
}
func (Ops) At(v *Value, x *variable.Variable) interval.Interval { return v.At(x) }

func (Ops) Assume(v *Value, c *linear.Constraint) *Value { return v.Assume(*c) }
func (Ops) AssumeSystem(v *Value, cs *linear.ConstraintSystem) *Value {
	return v.AssumeSystem(cs)
}

func (Ops) ToLinearConstraintSystem(v *Value) *linear.ConstraintSystem {
	return v.ToLinearConstraintSystem()
}

func (Ops) Entail(v *Value, c *linear.Constraint) bool    { return v.Entail(*c) }
func (Ops) Intersect(v *Value, c *linear.Constraint) bool { return v.Intersect(*c) }
