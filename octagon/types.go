// File: types.go
// Role: the Domain snapshot (graph, potential, variable<->vertex-pair maps,
// unstable set) and the Value copy-on-write wrapper's state machine
// (base/norm).
package octagon

import (
	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/variable"
	"github.com/katalvlaran/relnum/wgraph"
)

// vertexKind distinguishes the positive/negative half of a variable's
// vertex pair. Derived from the vertex id's parity (even = pos, odd = neg)
// rather than carried as a separate tag, matching wgraph.NewVertexPair's
// `neg = pos + 1` invariant.
type vertexKind int8

const (
	posKind vertexKind = iota
	negKind
)

func vertexSign(v wgraph.VertexID) vertexKind {
	if v%2 == 0 {
		return posKind
	}
	return negKind
}

// mirror returns the dual vertex used by normalize's coherent-mirror step:
// mirror(pos) = pos+1 (its own neg), mirror(neg) = neg-1 (its own pos).
func mirror(v wgraph.VertexID) wgraph.VertexID {
	if vertexSign(v) == posKind {
		return v + 1
	}
	return v - 1
}

// pair is the (pos, neg) vertex ids bound to one *variable.Variable.
type pair struct {
	pos, neg wgraph.VertexID
}

// Domain is one concrete octagon state: a closed (or about-to-be-closed)
// weighted graph over variable vertex pairs, a feasibility potential, the
// variable<->vertex-pair maps, and the set of vertices left unstable by the
// last widening. Bottom is represented by isBottom=true with every other
// field zeroed; top is an empty Domain with isBottom=false.
type Domain struct {
	g        *wgraph.Graph
	pot      wgraph.Potential
	vars     map[*variable.Variable]pair
	rev      map[wgraph.VertexID]*variable.Variable
	unstable map[wgraph.VertexID]bool
	isBottom bool
}

// newTop returns an empty, non-bottom Domain (the octagon ⊤ element: no
// variables, no constraints).
func newTop() *Domain {
	return &Domain{
		g:        wgraph.NewGraph(),
		pot:      wgraph.Potential{},
		vars:     map[*variable.Variable]pair{},
		rev:      map[wgraph.VertexID]*variable.Variable{},
		unstable: map[wgraph.VertexID]bool{},
	}
}

// newBottom returns the bottom Domain (the infeasible/unreachable state).
func newBottom() *Domain {
	return &Domain{isBottom: true}
}

// clone deep-copies d, used by Value.lock() to give a shared norm its own
// storage before mutation (copy-on-write).
func (d *Domain) clone() *Domain {
	if d.isBottom {
		return newBottom()
	}
	ng := wgraph.CloneShape(d.g.Verts())
	for _, i := range d.g.Verts() {
		for _, e := range d.g.ESuccs(i) {
			ng.SetEdge(i, e.Weight, e.Vertex)
		}
	}
	npot := make(wgraph.Potential, len(d.pot))
	for k, v := range d.pot {
		npot[k] = v
	}
	nvars := make(map[*variable.Variable]pair, len(d.vars))
	for k, v := range d.vars {
		nvars[k] = v
	}
	nrev := make(map[wgraph.VertexID]*variable.Variable, len(d.rev))
	for k, v := range d.rev {
		nrev[k] = v
	}
	nunstable := make(map[wgraph.VertexID]bool, len(d.unstable))
	for k, v := range d.unstable {
		nunstable[k] = v
	}
	return &Domain{g: ng, pot: npot, vars: nvars, rev: nrev, unstable: nunstable}
}

// pairOf returns x's vertex pair, allocating one lazily on first reference.
func (d *Domain) pairOf(x *variable.Variable) pair {
	if p, ok := d.vars[x]; ok {
		return p
	}
	pos, neg := d.g.NewVertexPair()
	p := pair{pos: pos, neg: neg}
	d.vars[x] = p
	d.rev[pos] = x
	d.rev[neg] = x
	d.pot[pos] = numeric.Zero()
	d.pot[neg] = numeric.Zero()
	return p
}

// lookupPair returns x's vertex pair without allocating, and whether x is
// currently bound.
func (d *Domain) lookupPair(x *variable.Variable) (pair, bool) {
	p, ok := d.vars[x]
	return p, ok
}

// Value is the copy-on-write wrapper presented to callers: norm is the
// current normalised snapshot, shared by reference until a mutation forces
// a clone; base is the normalised right operand recorded by the Widen or
// WidenThresholds call that produced this Value, and nil otherwise. Widen
// and WidenThresholds read their left operand from norm, not from base.
type Value struct {
	norm *Domain
	base *Domain
}

// Top returns a fresh ⊤ value (no constraints).
func Top() *Value { return &Value{norm: newTop()} }

// Bottom returns a fresh ⊥ value (unreachable state).
func Bottom() *Value { return &Value{norm: newBottom()} }

// IsBottom reports whether v is the bottom element.
func (v *Value) IsBottom() bool { return v.norm.isBottom }

// IsTop reports whether v currently carries no constraints at all (a
// sufficient, not necessary, syntactic check: a semantically-top value
// built through a longer derivation may carry redundant +∞ edges already
// elided by normalize, but an explicitly-widened-away value can also reach
// this state).
func (v *Value) IsTop() bool {
	if v.norm.isBottom {
		return false
	}
	return len(v.norm.vars) == 0
}

// lock gives the receiver a uniquely-owned norm, transitioning any shared
// state to uniquely-owned by cloning, and drops base. Go has no
// reference-counting primitive to detect sharing directly, so this
// implementation takes the conservative, always-correct choice of cloning
// on every mutating call rather than tracking sharing by hand.
func (v *Value) lock() *Value {
	nv := &Value{norm: v.norm.clone()}
	return nv
}

// snapshotBase returns the recorded base if there is one, otherwise norm.
// Widen and WidenThresholds do not call it.
func (v *Value) snapshotBase() *Domain {
	if v.base != nil {
		return v.base
	}
	return v.norm
}

// withNewBase returns a new Value whose norm is newNorm and whose base is
// oldNorm; Widen passes its normalised right operand as oldNorm.
func withNewBase(oldNorm, newNorm *Domain) *Value {
	return &Value{norm: newNorm, base: oldNorm}
}
