// File: types.go
// Role: cell identity and the array-expansion functor's per-analysis-
// context CellIndex table, plus the Expansion value shape itself. Smashing's
// value shape lives in smashing.go next to the design note explaining why
// it needs no analogous table.
package arraydom

import (
	"fmt"

	"github.com/katalvlaran/relnum/variable"
)

// elemKindOf returns the element Kind of an array-typed Kind, panicking
// (contract violation) if k does not describe an array.
func elemKindOf(k variable.Kind) variable.Kind {
	if !k.IsArray() {
		panic(ErrNotArray)
	}
	return *k.Elem
}

// cell is one materialised byte range of an array and the scalar variable
// in the base domain that currently stands for its contents.
type cell struct {
	offset, size int64
	scalar       *variable.Variable
}

// overlaps reports whether c's byte range intersects [offset, offset+size).
func (c cell) overlaps(offset, size int64) bool {
	return c.offset < offset+size && offset < c.offset+c.size
}

// exact reports whether c is precisely the [offset, offset+size) range.
func (c cell) exact(offset, size int64) bool {
	return c.offset == offset && c.size == size
}

// cellKey identifies one cell across every state derived from one analysis.
type cellKey struct {
	arr          *variable.Variable
	offset, size int64
}

// CellIndex is the array-expansion functor's per-analysis-context table
// mapping (array, offset, size) to a stable scalar variable, threaded
// explicitly through the domain rather than kept as process-wide global
// state, so that concurrent analyses never share or race on it.
// One CellIndex must be shared by every Expansion value derived
// from a single analysis; it grows monotonically and is never cloned.
//
// A single scalar per (array, offset, size) is required — unlike
// smashing's array-is-its-own-summary trick (see smashing.go) — because
// two different cells of the same array are genuinely different base-
// domain variables, and two branches that each first materialise the same
// cell must still agree on which base-domain variable it is once their
// states are joined.
type CellIndex struct {
	factory *variable.Factory
	table   map[cellKey]*variable.Variable
}

// NewCellIndex returns an empty CellIndex minting scalar variables from f.
func NewCellIndex(f *variable.Factory) *CellIndex {
	return &CellIndex{factory: f, table: map[cellKey]*variable.Variable{}}
}

// scalarFor returns the stable scalar variable for (arr, offset, size),
// minting it on first reference.
//
// Complexity: O(1) amortised.
func (ci *CellIndex) scalarFor(arr *variable.Variable, offset, size int64) *variable.Variable {
	k := cellKey{arr: arr, offset: offset, size: size}
	if v, ok := ci.table[k]; ok {
		return v
	}
	name := fmt.Sprintf("%s@[%d,%d)", arr.Name, offset, offset+size)
	v := ci.factory.Fresh(name, elemKindOf(arr.Kind))
	ci.table[k] = v
	return v
}

// Expansion is the array-expansion functor's value: a base domain value,
// a shared CellIndex, and the set of cells each array variable currently
// has materialised in *this* state. Which cells exist varies by
// control-flow path, so this set is per-value, not per-analysis, unlike
// Smashing's single always-present summary.
type Expansion[V any] struct {
	base  V
	cells map[*variable.Variable][]cell
	index *CellIndex
}

// NewExpansion wraps base under a fresh array-expansion functor with no
// materialised cells yet, sharing idx with every other Expansion value in
// the same analysis.
func NewExpansion[V any](base V, idx *CellIndex) *Expansion[V] {
	return &Expansion[V]{base: base, cells: map[*variable.Variable][]cell{}, index: idx}
}

// clone returns a shallow-independent copy of e: the cells map and its
// slices are copied so mutating the clone's cell set never observably
// mutates e, matching the copy-on-write discipline every wrapper in this
// module follows. The index pointer is shared.
func (e *Expansion[V]) clone() *Expansion[V] {
	nc := make(map[*variable.Variable][]cell, len(e.cells))
	for arr, cs := range e.cells {
		ncs := make([]cell, len(cs))
		copy(ncs, cs)
		nc[arr] = ncs
	}
	return &Expansion[V]{base: e.base, cells: nc, index: e.index}
}

// withBase returns a clone of e with base replaced by nb and the same
// cell set.
func (e *Expansion[V]) withBase(nb V) *Expansion[V] {
	ne := e.clone()
	ne.base = nb
	return ne
}
