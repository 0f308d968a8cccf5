// File: smashing.go
// Role: the array-smashing functor and its witness SmashingOps[V], which
// implements domain.Domain[*Smashing[V]] and
// domain.ArrayDomain[*Smashing[V]] by delegating to a base domain.Domain[V].
//
// Design note: smashing needs exactly one scalar per array variable, with
// no need for it to be distinguishable from the array variable's own
// identity the way an expansion cell's offset-keyed scalar must be. This
// implementation therefore uses the array *variable.Variable itself as
// the base domain's key for its summary — Domain[V]'s methods never
// interpret Kind, only pointer identity, so this is safe, and it
// sidesteps the cross-branch identity problem a freshly-minted summary
// variable would otherwise have: two independent branches that each
// first-touch array `a` must resolve to the *same* scalar at their join,
// and `a` itself is already a single, analysis-wide, stable identity
// (a *variable.Factory never reissues a pointer), so no extra table is
// needed here the way CellIndex is needed for array-expansion's
// finer-grained, offset-keyed cells.
package arraydom

import (
	"github.com/katalvlaran/relnum/domain"
	"github.com/katalvlaran/relnum/interval"
	"github.com/katalvlaran/relnum/linear"
	"github.com/katalvlaran/relnum/variable"
)

// Smashing is the array-smashing functor's value: a base domain value in
// which every array variable's own identity doubles as its summary scalar.
type Smashing[V any] struct {
	base V
}

// NewSmashing wraps base under the array-smashing functor.
func NewSmashing[V any](base V) *Smashing[V] { return &Smashing[V]{base: base} }

func (s *Smashing[V]) withBase(nb V) *Smashing[V] { return &Smashing[V]{base: nb} }

// SmashingOps is the witness for the array-smashing functor over a base
// domain.Domain[V]. Factory mints the ephemeral temporary ArrayLoad uses to
// avoid aliasing lhs to the summary; the temporary is
// forgotten before any value carrying it is returned, so it needs no
// cross-branch-stable identity and Factory need not be shared with any
// other table in this package.
type SmashingOps[V any] struct {
	Base    domain.Domain[V]
	Factory *variable.Factory
}

func (o SmashingOps[V]) setScalar(base V, x *variable.Variable, val domain.ArrayInitValue) V {
	if val.IsUnknown {
		return o.Base.Set(base, x, interval.Top())
	}
	return o.Base.Set(base, x, val.Interval)
}

func (o SmashingOps[V]) Top() *Smashing[V]    { return NewSmashing(o.Base.Top()) }
func (o SmashingOps[V]) Bottom() *Smashing[V] { return NewSmashing(o.Base.Bottom()) }

func (o SmashingOps[V]) IsTop(s *Smashing[V]) bool    { return o.Base.IsTop(s.base) }
func (o SmashingOps[V]) IsBottom(s *Smashing[V]) bool { return o.Base.IsBottom(s.base) }

func (o SmashingOps[V]) Leq(a, b *Smashing[V]) bool { return o.Base.Leq(a.base, b.base) }
func (o SmashingOps[V]) Join(a, b *Smashing[V]) *Smashing[V] {
	return NewSmashing(o.Base.Join(a.base, b.base))
}
func (o SmashingOps[V]) Meet(a, b *Smashing[V]) *Smashing[V] {
	return NewSmashing(o.Base.Meet(a.base, b.base))
}
func (o SmashingOps[V]) Widen(a, b *Smashing[V]) *Smashing[V] {
	return NewSmashing(o.Base.Widen(a.base, b.base))
}
func (o SmashingOps[V]) WidenThresholds(a, b *Smashing[V], thresholds []int64) *Smashing[V] {
	return NewSmashing(o.Base.WidenThresholds(a.base, b.base, thresholds))
}
func (o SmashingOps[V]) Narrow(a, b *Smashing[V]) *Smashing[V] {
	return NewSmashing(o.Base.Narrow(a.base, b.base))
}

func (o SmashingOps[V]) Forget(s *Smashing[V], vars ...*variable.Variable) *Smashing[V] {
	return s.withBase(o.Base.Forget(s.base, vars...))
}
func (o SmashingOps[V]) Project(s *Smashing[V], vars ...*variable.Variable) *Smashing[V] {
	return s.withBase(o.Base.Project(s.base, vars...))
}
func (o SmashingOps[V]) Rename(s *Smashing[V], from, to []*variable.Variable) *Smashing[V] {
	return s.withBase(o.Base.Rename(s.base, from, to))
}
func (o SmashingOps[V]) Expand(s *Smashing[V], x, y *variable.Variable) *Smashing[V] {
	return s.withBase(o.Base.Expand(s.base, x, y))
}

func (o SmashingOps[V]) Assign(s *Smashing[V], x *variable.Variable, e *linear.Expr) *Smashing[V] {
	return s.withBase(o.Base.Assign(s.base, x, e))
}
func (o SmashingOps[V]) Set(s *Smashing[V], x *variable.Variable, iv interval.Interval) *Smashing[V] {
	return s.withBase(o.Base.Set(s.base, x, iv))
}
func (o SmashingOps[V]) At(s *Smashing[V], x *variable.Variable) interval.Interval {
	return o.Base.At(s.base, x)
}
func (o SmashingOps[V]) Assume(s *Smashing[V], c *linear.Constraint) *Smashing[V] {
	return s.withBase(o.Base.Assume(s.base, c))
}
func (o SmashingOps[V]) AssumeSystem(s *Smashing[V], cs *linear.ConstraintSystem) *Smashing[V] {
	return s.withBase(o.Base.AssumeSystem(s.base, cs))
}
func (o SmashingOps[V]) ToLinearConstraintSystem(s *Smashing[V]) *linear.ConstraintSystem {
	return o.Base.ToLinearConstraintSystem(s.base)
}

// ArrayInit strong-assigns arr's summary from val. elemSize,
// lb, ub are accepted to satisfy domain.ArrayDomain's signature but unused:
// smashing collapses the whole array to one cell regardless of range, so
// the initialised range is irrelevant to it.
func (o SmashingOps[V]) ArrayInit(s *Smashing[V], arr *variable.Variable, elemSize, lb, ub int64, val domain.ArrayInitValue) *Smashing[V] {
	_, _, _ = elemSize, lb, ub
	return s.withBase(o.setScalar(s.base, arr, val))
}

// ArrayLoad materialises a fresh temporary copy of arr's summary by
// expanding it, assigns lhs from the temporary, then forgets the
// temporary, which avoids aliasing lhs to the summary itself: a direct
// `lhs := arr` assign would leave a
// persistent relational edge between lhs and the summary, so a later weak
// store into the array (which changes the summary) would retroactively
// change what lhs is believed to hold, which is unsound.
func (o SmashingOps[V]) ArrayLoad(s *Smashing[V], lhs, arr *variable.Variable, elemSize, index int64) *Smashing[V] {
	_, _ = elemSize, index
	temp := o.Factory.Fresh(arr.Name+"!tmp", elemKindOf(arr.Kind))
	b := o.Base.Expand(s.base, arr, temp)
	b = o.Base.Assign(b, lhs, linear.Var(temp))
	b = o.Base.Forget(b, temp)
	return s.withBase(b)
}

// ArrayStore strong-updates the summary from val when isSingleton is true
// (the caller has proven index uniquely identifies the written cell);
// otherwise it weak-updates: the summary becomes the join of its prior
// state and the state after the strong update.
func (o SmashingOps[V]) ArrayStore(s *Smashing[V], arr *variable.Variable, elemSize, index int64, val domain.ArrayInitValue, isSingleton bool) *Smashing[V] {
	_, _ = elemSize, index
	strong := o.setScalar(s.base, arr, val)
	if isSingleton {
		return s.withBase(strong)
	}
	return s.withBase(o.Base.Join(s.base, strong))
}

// ArrayAssign assigns lhs's summary from rhs's summary — a typed
// assignment between the two arrays' summary scalars.
func (o SmashingOps[V]) ArrayAssign(s *Smashing[V], lhs, rhs *variable.Variable) *Smashing[V] {
	return s.withBase(o.Base.Assign(s.base, lhs, linear.Var(rhs)))
}

var _ domain.Domain[*Smashing[int]] = SmashingOps[int]{}
