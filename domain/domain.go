package domain

import (
	"github.com/katalvlaran/relnum/interval"
	"github.com/katalvlaran/relnum/linear"
	"github.com/katalvlaran/relnum/variable"
)

// Warn is a caller-supplied imprecision-reporting sink, used instead of
// logging to a package-global. In this module only arraydom.ExpansionOps
// takes one (its Warn field): an ArrayInit range over the element cap is
// reported through Warn with a human-readable message and report-relevant
// arguments, and the operation continues soundly rather than returning an
// error. The octagon domain takes no Warn.
type Warn func(format string, args ...any)

// ArrayInitValue is the value an array cell is initialised/stored with: a
// concrete scalar or a may-be-anything top marker, matching an array
// functor's store/init operations.
type ArrayInitValue struct {
	Interval  interval.Interval
	IsUnknown bool
}

// Domain is the trait every relational/numerical abstract domain in this
// module satisfies, implemented by a stateless witness type over its own
// opaque value type V (e.g. octagon.Ops implements Domain[*octagon.Value]).
type Domain[V any] interface {
	Top() V
	Bottom() V
	IsTop(v V) bool
	IsBottom(v V) bool
	Leq(a, b V) bool
	Join(a, b V) V
	Meet(a, b V) V
	Widen(a, b V) V
	WidenThresholds(a, b V, thresholds []int64) V
	Narrow(a, b V) V
	Forget(v V, vars ...*variable.Variable) V
	Project(v V, vars ...*variable.Variable) V
	Rename(v V, from, to []*variable.Variable) V
	Expand(v V, x, y *variable.Variable) V
	Assign(v V, x *variable.Variable, e *linear.Expr) V
	Set(v V, x *variable.Variable, i interval.Interval) V
	At(v V, x *variable.Variable) interval.Interval
	Assume(v V, c *linear.Constraint) V
	AssumeSystem(v V, cs *linear.ConstraintSystem) V
	ToLinearConstraintSystem(v V) *linear.ConstraintSystem
}

// Checker is the satisfiability sub-interface: Entail/Intersect are computed
// by copying the state and meeting with the negation/assertion of c
// respectively, never by an exact decision procedure.
type Checker[V any] interface {
	Entail(v V, c *linear.Constraint) bool
	Intersect(v V, c *linear.Constraint) bool
}

// ArrayDomain is the array-transfer sub-interface implemented by the
// smashing and expansion functors over any base Domain.
type ArrayDomain[V any] interface {
	ArrayInit(v V, arr *variable.Variable, elemSize, lb, ub int64, val ArrayInitValue) V
	ArrayLoad(v V, lhs, arr *variable.Variable, elemSize, index int64) V
	ArrayStore(v V, arr *variable.Variable, elemSize, index int64, val ArrayInitValue, isSingleton bool) V
	ArrayAssign(v V, lhs, rhs *variable.Variable) V
}
