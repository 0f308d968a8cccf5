// File: expansion.go
// Role: the array-expansion functor and its witness ExpansionOps[V]:
// per-array-variable offset->cell maps, overlap-aware load/store, and lazy
// cell materialisation, delegating scalar-level work to a base
// domain.Domain[V].
package arraydom

import (
	"sort"

	"github.com/katalvlaran/relnum/domain"
	"github.com/katalvlaran/relnum/interval"
	"github.com/katalvlaran/relnum/linear"
	"github.com/katalvlaran/relnum/variable"
)

// maxInitElements caps how many per-element ArrayStore calls ArrayInit will
// expand an initialisation range into before giving up and warning instead.
const maxInitElements = 512

// ExpansionOps is the witness for the array-expansion functor over a base
// domain.Domain[V]. Index must be one CellIndex shared by every value this
// witness ever constructs within one analysis — Top/Bottom need it to seed
// a usable Expansion since domain.Domain's Top/Bottom take no arguments of
// their own to carry it through otherwise. Warn receives the one
// imprecision message this functor produces (an ArrayInit range too large
// to expand); it may be nil, in which case
// warnings are silently dropped — the operation still degrades soundly
// either way. Factory mints the ephemeral temporaries ArrayLoad's
// alias-avoidance sequence needs.
type ExpansionOps[V any] struct {
	Base    domain.Domain[V]
	Index   *CellIndex
	Warn    domain.Warn
	Factory *variable.Factory
}

func (o ExpansionOps[V]) warnf(format string, args ...any) {
	if o.Warn != nil {
		o.Warn(format, args...)
	}
}

// sortedInsert inserts c into cs, kept sorted by offset: overlapping scans
// a sorted offset index as two half-ranges around the query point.
func sortedInsert(cs []cell, c cell) []cell {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].offset >= c.offset })
	cs = append(cs, cell{})
	copy(cs[i+1:], cs[i:])
	cs[i] = c
	return cs
}

// overlapping returns every cell of arr in e whose byte range intersects
// [offset, offset+size). Cells are kept sorted by offset; walking right
// from the query's insertion point can stop the
// instant a cell starts at or past offset+size, since every cell after it
// starts no earlier. Walking left cannot use the symmetric shortcut in
// general — an earlier, larger cell can still reach into the query range
// even after a closer one has fallen short — so the left half is scanned
// in full; cell counts per array are small in practice, so this stays
// cheap without risking a missed overlap.
func (e *Expansion[V]) overlapping(arr *variable.Variable, offset, size int64) []cell {
	cs := e.cells[arr]
	i := sort.Search(len(cs), func(i int) bool { return cs[i].offset >= offset })
	var out []cell
	for j := i - 1; j >= 0; j-- {
		if cs[j].overlaps(offset, size) {
			out = append(out, cs[j])
		}
	}
	for j := i; j < len(cs); j++ {
		if !cs[j].overlaps(offset, size) {
			break
		}
		out = append(out, cs[j])
	}
	return out
}

// getOrCreateCell returns arr's cell at exactly [offset, offset+size) in e,
// creating and inserting it (with a freshly-indexed scalar, unconstrained
// in the base domain) if it does not yet exist in this value.
func (e *Expansion[V]) getOrCreateCell(arr *variable.Variable, offset, size int64) cell {
	for _, c := range e.cells[arr] {
		if c.exact(offset, size) {
			return c
		}
	}
	c := cell{offset: offset, size: size, scalar: e.index.scalarFor(arr, offset, size)}
	e.cells[arr] = sortedInsert(e.cells[arr], c)
	return c
}

// removeCell deletes c from arr's cell set in e, if present.
func (e *Expansion[V]) removeCell(arr *variable.Variable, c cell) {
	cs := e.cells[arr]
	for i, x := range cs {
		if x.exact(c.offset, c.size) {
			e.cells[arr] = append(cs[:i], cs[i+1:]...)
			return
		}
	}
}

// mergeCells returns the union, by (array, offset, size) key, of a's and
// b's materialised cells — the right shape for Join/Meet/Widen/Narrow: a
// cell materialised on only one side is, on the other side, implicitly
// unconstrained (Top) at the base-domain level, so including it in the
// merged result changes nothing about soundness and only improves the
// chance that later operations have a cell already on hand.
func mergeCells[V any](a, b *Expansion[V]) map[*variable.Variable][]cell {
	out := make(map[*variable.Variable][]cell, len(a.cells))
	for arr, cs := range a.cells {
		ncs := make([]cell, len(cs))
		copy(ncs, cs)
		out[arr] = ncs
	}
	for arr, cs := range b.cells {
		for _, c := range cs {
			found := false
			for _, x := range out[arr] {
				if x.exact(c.offset, c.size) {
					found = true
					break
				}
			}
			if !found {
				out[arr] = sortedInsert(out[arr], c)
			}
		}
	}
	return out
}

func (o ExpansionOps[V]) combine(a, b *Expansion[V], base V) *Expansion[V] {
	return &Expansion[V]{base: base, cells: mergeCells(a, b), index: a.index}
}

func (o ExpansionOps[V]) Top() *Expansion[V]    { return NewExpansion(o.Base.Top(), o.Index) }
func (o ExpansionOps[V]) Bottom() *Expansion[V] { return NewExpansion(o.Base.Bottom(), o.Index) }

func (o ExpansionOps[V]) IsTop(e *Expansion[V]) bool    { return o.Base.IsTop(e.base) }
func (o ExpansionOps[V]) IsBottom(e *Expansion[V]) bool { return o.Base.IsBottom(e.base) }

func (o ExpansionOps[V]) Leq(a, b *Expansion[V]) bool { return o.Base.Leq(a.base, b.base) }
func (o ExpansionOps[V]) Join(a, b *Expansion[V]) *Expansion[V] {
	return o.combine(a, b, o.Base.Join(a.base, b.base))
}
func (o ExpansionOps[V]) Meet(a, b *Expansion[V]) *Expansion[V] {
	return o.combine(a, b, o.Base.Meet(a.base, b.base))
}
func (o ExpansionOps[V]) Widen(a, b *Expansion[V]) *Expansion[V] {
	return o.combine(a, b, o.Base.Widen(a.base, b.base))
}
func (o ExpansionOps[V]) WidenThresholds(a, b *Expansion[V], thresholds []int64) *Expansion[V] {
	return o.combine(a, b, o.Base.WidenThresholds(a.base, b.base, thresholds))
}
func (o ExpansionOps[V]) Narrow(a, b *Expansion[V]) *Expansion[V] {
	return o.combine(a, b, o.Base.Narrow(a.base, b.base))
}

// resolve expands any array variable in vars into the scalars of every
// cell it currently has materialised in e, and passes any non-array
// variable through unchanged.
func (e *Expansion[V]) resolve(vars ...*variable.Variable) []*variable.Variable {
	var out []*variable.Variable
	for _, x := range vars {
		if x.Kind.IsArray() {
			for _, c := range e.cells[x] {
				out = append(out, c.scalar)
			}
			continue
		}
		out = append(out, x)
	}
	return out
}

// Forget forgets every scalar of every array variable in vars (removing
// their cells entirely) plus every non-array variable named directly.
func (o ExpansionOps[V]) Forget(e *Expansion[V], vars ...*variable.Variable) *Expansion[V] {
	ne := e.clone()
	targets := ne.resolve(vars...)
	for _, x := range vars {
		if x.Kind.IsArray() {
			delete(ne.cells, x)
		}
	}
	ne.base = o.Base.Forget(ne.base, targets...)
	return ne
}

// Project keeps only vars (array variables keep their currently-
// materialised cells; every other array's cells are dropped), forgetting
// every other variable and cell scalar in the base domain.
func (o ExpansionOps[V]) Project(e *Expansion[V], vars ...*variable.Variable) *Expansion[V] {
	ne := e.clone()
	keepArr := map[*variable.Variable]bool{}
	var keepScalars []*variable.Variable
	for _, x := range vars {
		if x.Kind.IsArray() {
			keepArr[x] = true
			keepScalars = append(keepScalars, e.resolve(x)...)
		} else {
			keepScalars = append(keepScalars, x)
		}
	}
	for arr := range ne.cells {
		if !keepArr[arr] {
			delete(ne.cells, arr)
		}
	}
	ne.base = o.Base.Project(ne.base, keepScalars...)
	return ne
}

// Rename renames from[i]->to[i]. For an array variable, its materialised
// cell set moves to the new key (the cells' own scalars, and the
// CellIndex's (array, offset, size) identity, are keyed by the *old*
// pointer and are intentionally left alone: CellIndex is a record of
// "what has this array been called at some point", not a live rename
// target); for any other variable the rename is forwarded to the base
// domain unchanged.
func (o ExpansionOps[V]) Rename(e *Expansion[V], from, to []*variable.Variable) *Expansion[V] {
	ne := e.clone()
	var plainFrom, plainTo []*variable.Variable
	for i, fx := range from {
		tx := to[i]
		if fx.Kind.IsArray() {
			if cs, ok := ne.cells[fx]; ok {
				ne.cells[tx] = cs
				delete(ne.cells, fx)
			}
			continue
		}
		plainFrom = append(plainFrom, fx)
		plainTo = append(plainTo, tx)
	}
	ne.base = o.Base.Rename(ne.base, plainFrom, plainTo)
	return ne
}

// Expand copies x onto y. For an array variable this materialises every
// one of x's current cells afresh under y at the same (offset, size),
// each with its own independent scalar (via Base.Expand), so y starts as
// an independent copy of x's current contents rather than sharing cells
// (contrast ArrayAssign, which deliberately does share). Non-array
// variables are forwarded to the base domain unchanged.
func (o ExpansionOps[V]) Expand(e *Expansion[V], x, y *variable.Variable) *Expansion[V] {
	ne := e.clone()
	if !x.Kind.IsArray() {
		ne.base = o.Base.Expand(ne.base, x, y)
		return ne
	}
	if !y.Kind.IsArray() {
		panic(ErrNotArray)
	}
	for _, c := range e.cells[x] {
		yc := ne.getOrCreateCell(y, c.offset, c.size)
		ne.base = o.Base.Expand(ne.base, c.scalar, yc.scalar)
	}
	return ne
}

func (o ExpansionOps[V]) Assign(e *Expansion[V], x *variable.Variable, expr *linear.Expr) *Expansion[V] {
	return e.withBase(o.Base.Assign(e.base, x, expr))
}
func (o ExpansionOps[V]) Set(e *Expansion[V], x *variable.Variable, iv interval.Interval) *Expansion[V] {
	return e.withBase(o.Base.Set(e.base, x, iv))
}
func (o ExpansionOps[V]) At(e *Expansion[V], x *variable.Variable) interval.Interval {
	return o.Base.At(e.base, x)
}
func (o ExpansionOps[V]) Assume(e *Expansion[V], c *linear.Constraint) *Expansion[V] {
	return e.withBase(o.Base.Assume(e.base, c))
}
func (o ExpansionOps[V]) AssumeSystem(e *Expansion[V], cs *linear.ConstraintSystem) *Expansion[V] {
	return e.withBase(o.Base.AssumeSystem(e.base, cs))
}
func (o ExpansionOps[V]) ToLinearConstraintSystem(e *Expansion[V]) *linear.ConstraintSystem {
	return o.Base.ToLinearConstraintSystem(e.base)
}

func (o ExpansionOps[V]) setScalar(base V, x *variable.Variable, val domain.ArrayInitValue) V {
	if val.IsUnknown {
		return o.Base.Set(base, x, interval.Top())
	}
	return o.Base.Set(base, x, val.Interval)
}

// ArrayInit expands into a sequence of strong ArrayStore calls, one per
// element, when the initialised range divides evenly into elemSize-sized
// elements and the element count does not exceed maxInitElements; outside
// that, it emits an imprecision warning and leaves e unchanged.
func (o ExpansionOps[V]) ArrayInit(e *Expansion[V], arr *variable.Variable, elemSize, lb, ub int64, val domain.ArrayInitValue) *Expansion[V] {
	if elemSize <= 0 || (ub-lb+1)%elemSize != 0 {
		o.warnf("arraydom: array_init(%s) range [%d,%d] does not divide evenly into element size %d, dropped", arr.Name, lb, ub, elemSize)
		return e
	}
	n := (ub - lb + 1) / elemSize
	if n > maxInitElements {
		o.warnf("arraydom: array_init(%s) spans %d elements, over the %d cap, dropped", arr.Name, n, maxInitElements)
		return e
	}
	cur := e
	for k := int64(0); k < n; k++ {
		cur = o.ArrayStore(cur, arr, elemSize, lb+k*elemSize, val, true)
	}
	return cur
}

// ArrayLoad requires i and elemSize to already be concrete (the
// domain.ArrayDomain signature takes them as int64, not as a variable to
// project, so that precondition is enforced by the type signature itself
// rather than checked here). If any cell overlapping
// [offset, offset+size) is not exactly that range, the load is
// approximated by forgetting lhs and a warning is emitted; otherwise the exact cell
// is materialised (lazily, if it has never been written) and lhs is
// assigned from a fresh decoupled copy of its scalar, by the same
// expand-assign-forget sequence array-smashing's ArrayLoad uses and for
// the same aliasing reason (see smashing.go).
func (o ExpansionOps[V]) ArrayLoad(e *Expansion[V], lhs, arr *variable.Variable, elemSize, index int64) *Expansion[V] {
	offset, size := index, elemSize
	ne := e.clone()
	for _, c := range ne.overlapping(arr, offset, size) {
		if !c.exact(offset, size) {
			o.warnf("arraydom: load from %s[%d,%d) overlaps non-exact cell [%d,%d), lhs forgotten", arr.Name, offset, offset+size, c.offset, c.offset+c.size)
			ne.base = o.Base.Forget(ne.base, lhs)
			return ne
		}
	}
	c := ne.getOrCreateCell(arr, offset, size)
	temp := o.Factory.Fresh(c.scalar.Name+"!tmp", c.scalar.Kind)
	b := o.Base.Expand(ne.base, c.scalar, temp)
	b = o.Base.Assign(b, lhs, linear.Var(temp))
	ne.base = o.Base.Forget(b, temp)
	return ne
}

// ArrayStore requires index and elemSize to already be concrete, for the
// same reason ArrayLoad does. It computes the overlap set for
// [offset, offset+size); every overlapping cell that is not exactly that
// range is forgotten and dropped (kill-on-overwrite: a store at a size the
// existing cell set can't prove is aligned with invalidates anything it
// might clobber, rather than leaving stale, over-precise cells behind).
// When isSingleton is true the exact cell is then strong-assigned from
// val; otherwise (the caller could not prove index uniquely identifies
// this cell) the exact cell is weak-updated — joined with the post-state
// of the same strong assignment — generalising array-smashing's
// strong/weak rule to the per-cell case.
func (o ExpansionOps[V]) ArrayStore(e *Expansion[V], arr *variable.Variable, elemSize, index int64, val domain.ArrayInitValue, isSingleton bool) *Expansion[V] {
	offset, size := index, elemSize
	ne := e.clone()
	for _, c := range ne.overlapping(arr, offset, size) {
		if c.exact(offset, size) {
			continue
		}
		ne.base = o.Base.Forget(ne.base, c.scalar)
		ne.removeCell(arr, c)
	}
	c := ne.getOrCreateCell(arr, offset, size)
	strong := o.setScalar(ne.base, c.scalar, val)
	if isSingleton {
		ne.base = strong
	} else {
		ne.base = o.Base.Join(ne.base, strong)
	}
	return ne
}

// ArrayAssign copies lhs's offset-map from rhs: both arrays now share the
// same cells' scalars in the base domain, so the underlying scalar
// variables retain their own relational semantics rather than being copied.
func (o ExpansionOps[V]) ArrayAssign(e *Expansion[V], lhs, rhs *variable.Variable) *Expansion[V] {
	ne := e.clone()
	cs := make([]cell, len(ne.cells[rhs]))
	copy(cs, ne.cells[rhs])
	ne.cells[lhs] = cs
	return ne
}

var _ domain.Domain[*Expansion[int]] = ExpansionOps[int]{}
