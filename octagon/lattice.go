// File: lattice.go
// Role: the lattice operations (Leq, Join, Meet, Widen, WidenThresholds,
// Narrow) at the Value level. Every operation normalizes
// its operand(s) first, compares/combines by *variable.Variable* identity
// (never by raw vertex id, since two independently-built Domains do not
// share a vertex numbering), and works on exclusively-owned clones so the
// copy-on-write contract in types.go holds automatically.
package octagon

import (
	"sort"

	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/variable"
	"github.com/katalvlaran/relnum/wgraph"
)

// normalized returns a freshly cloned, normalized Domain for v, without
// mutating v itself — the form read-only lattice/query operations need.
func (v *Value) normalized() *Domain {
	d := v.norm.clone()
	normalizeDomain(d)
	return d
}

// edgeValFor returns the weight of the edge between x (in vertexKind kx)
// and y (in vertexKind ky) inside d, or numeric.Inf() if either variable is
// unbound in d (meaning d carries no constraint relating them).
func edgeValFor(d *Domain, x *variable.Variable, kx vertexKind, y *variable.Variable, ky vertexKind) numeric.Weight {
	px, ok := d.lookupPair(x)
	if !ok {
		return numeric.Inf()
	}
	py, ok := d.lookupPair(y)
	if !ok {
		return numeric.Inf()
	}
	vi := px.pos
	if kx == negKind {
		vi = px.neg
	}
	vj := py.pos
	if ky == negKind {
		vj = py.neg
	}
	return d.g.EdgeVal(vi, vj)
}

func sortedVars(m map[*variable.Variable]pair) []*variable.Variable {
	out := make([]*variable.Variable, 0, len(m))
	for x := range m {
		out = append(out, x)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func intersectVars(a, b map[*variable.Variable]pair) []*variable.Variable {
	var out []*variable.Variable
	for x := range a {
		if _, ok := b[x]; ok {
			out = append(out, x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func unionVars(a, b map[*variable.Variable]pair) []*variable.Variable {
	seen := map[*variable.Variable]bool{}
	var out []*variable.Variable
	for x := range a {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	for x := range b {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

var bothKinds = [2]vertexKind{posKind, negKind}

// Leq reports a ⊑ b: every constraint b carries must already be implied by
// a. A pairwise edge-weight comparison is sufficient here (rather than a
// separate triangle-walk consistency check) since both sides are
// pre-closed by normalize before the comparison.
func Leq(a, b *Value) bool {
	if a.IsBottom() {
		return true
	}
	if b.IsBottom() {
		return false
	}
	da, db := a.normalized(), b.normalized()
	for _, x := range sortedVars(db.vars) {
		for _, y := range sortedVars(db.vars) {
			for _, kx := range bothKinds {
				for _, ky := range bothKinds {
					if x == y && kx == ky {
						continue
					}
					wb := edgeValFor(db, x, kx, y, ky)
					if wb.IsInf() {
						continue
					}
					wa := edgeValFor(da, x, kx, y, ky)
					if wa.IsInf() || numeric.Less(wb, wa) {
						return false
					}
				}
			}
		}
	}
	return true
}

// buildAligned allocates a fresh Domain with exactly vars bound (in
// deterministic order) and fills every directed vertex-pair edge using
// combine(edgeValFor(da,...), edgeValFor(db,...)).
func buildAligned(da, db *Domain, vars []*variable.Variable, combine func(wa, wb numeric.Weight) numeric.Weight) *Domain {
	nd := newTop()
	for _, x := range vars {
		nd.pairOf(x)
	}
	for _, x := range vars {
		for _, y := range vars {
			for _, kx := range bothKinds {
				for _, ky := range bothKinds {
					if x == y && kx == ky {
						continue
					}
					wa := edgeValFor(da, x, kx, y, ky)
					wb := edgeValFor(db, x, kx, y, ky)
					w := combine(wa, wb)
					if w.IsInf() {
						continue
					}
					pi := nd.vars[x]
					pj := nd.vars[y]
					vi := pi.pos
					if kx == negKind {
						vi = pi.neg
					}
					vj := pj.pos
					if ky == negKind {
						vj = pj.neg
					}
					nd.g.SetEdge(vi, w, vj)
				}
			}
		}
	}
	return nd
}

// selectOrBottom runs Bellman-Ford potential selection on nd's graph,
// installing the result or flipping nd to bottom on a negative cycle.
// Returns whether nd is feasible.
func selectOrBottom(nd *Domain) bool {
	pot, ok := wgraph.SelectPotentials(nd.g)
	if !ok {
		*nd = *newBottom()
		return false
	}
	nd.pot = pot
	return true
}

func weightMax(a, b numeric.Weight) numeric.Weight {
	if numeric.Less(a, b) {
		return b
	}
	return a
}

func joinCombine(a, b numeric.Weight) numeric.Weight {
	if a.IsInf() || b.IsInf() {
		return numeric.Inf()
	}
	return weightMax(a, b)
}

func meetCombine(a, b numeric.Weight) numeric.Weight {
	return numeric.Min(a, b)
}

// Join computes a ⊔ b, restricted to variables common to both sides (a
// variable only one side tracks is implicitly Top on the other, so
// dropping it from the result changes nothing about soundness). The
// deferred-meet precision step some octagon implementations perform before
// taking the element-wise max is not implemented here — this yields a
// sound but weaker join.
func Join(a, b *Value) *Value {
	if a.IsBottom() {
		return b
	}
	if b.IsBottom() {
		return a
	}
	da, db := a.normalized(), b.normalized()
	vars := intersectVars(da.vars, db.vars)
	nd := buildAligned(da, db, vars, joinCombine)
	if !selectOrBottom(nd) {
		return &Value{norm: nd}
	}
	normalizeDomain(nd)
	gcUnconstrained(nd)
	return &Value{norm: nd}
}

// Meet computes a ⊓ b: the union of both sides' variables, element-wise
// min of every edge. Infeasible potentials collapse the result to bottom.
func Meet(a, b *Value) *Value {
	if a.IsBottom() || b.IsBottom() {
		return Bottom()
	}
	da, db := a.normalized(), b.normalized()
	vars := unionVars(da.vars, db.vars)
	nd := buildAligned(da, db, vars, meetCombine)
	if !selectOrBottom(nd) {
		return &Value{norm: nd}
	}
	normalizeDomain(nd)
	return &Value{norm: nd}
}

// Widen computes a ∇ b for common variables: an edge survives only if
// present on both sides with b's weight no looser than a's (the earlier
// iterate's), and then carries b's weight; any other edge is dropped and both its endpoints are marked
// unstable for the next normalize to restabilize around.
func Widen(a, b *Value) *Value {
	if a.IsBottom() {
		return b
	}
	if b.IsBottom() {
		return a
	}
	da, db := a.normalized(), b.normalized()
	vars := intersectVars(da.vars, db.vars)
	nd := newTop()
	for _, x := range vars {
		nd.pairOf(x)
	}
	for _, x := range vars {
		for _, y := range vars {
			for _, kx := range bothKinds {
				for _, ky := range bothKinds {
					if x == y && kx == ky {
						continue
					}
					wa := edgeValFor(da, x, kx, y, ky)
					wb := edgeValFor(db, x, kx, y, ky)
					pi, pj := nd.vars[x], nd.vars[y]
					vi, vj := pi.pos, pj.pos
					if kx == negKind {
						vi = pi.neg
					}
					if ky == negKind {
						vj = pj.neg
					}
					if wa.IsInf() || wb.IsInf() || numeric.Less(wa, wb) {
						nd.unstable[vi] = true
						nd.unstable[vj] = true
						continue
					}
					nd.g.SetEdge(vi, wb, vj)
				}
			}
		}
	}
	if !selectOrBottom(nd) {
		return &Value{norm: nd}
	}
	return withNewBase(db, nd)
}

// WidenThresholds behaves like Widen except a dropped edge jumps to the
// tightest threshold still sound for b's value instead of straight to
// infinity. Thresholds are doubled before comparison since self-pair
// edges encode 2·bound.
func WidenThresholds(a, b *Value, thresholds []int64) *Value {
	if a.IsBottom() {
		return b
	}
	if b.IsBottom() {
		return a
	}
	da, db := a.normalized(), b.normalized()
	vars := intersectVars(da.vars, db.vars)
	nd := newTop()
	for _, x := range vars {
		nd.pairOf(x)
	}
	doubled := make([]int64, len(thresholds))
	for i, t := range thresholds {
		doubled[i] = 2 * t
	}
	for _, x := range vars {
		for _, y := range vars {
			for _, kx := range bothKinds {
				for _, ky := range bothKinds {
					if x == y && kx == ky {
						continue
					}
					wa := edgeValFor(da, x, kx, y, ky)
					wb := edgeValFor(db, x, kx, y, ky)
					pi, pj := nd.vars[x], nd.vars[y]
					vi, vj := pi.pos, pj.pos
					if kx == negKind {
						vi = pi.neg
					}
					if ky == negKind {
						vj = pj.neg
					}
					if wa.IsInf() || wb.IsInf() {
						nd.unstable[vi] = true
						nd.unstable[vj] = true
						continue
					}
					if numeric.Less(wa, wb) {
						if t, ok := bestThresholdAbove(wb, doubled); ok {
							nd.g.SetEdge(vi, t, vj)
						}
						nd.unstable[vi] = true
						nd.unstable[vj] = true
						continue
					}
					nd.g.SetEdge(vi, wb, vj)
				}
			}
		}
	}
	if !selectOrBottom(nd) {
		return &Value{norm: nd}
	}
	return withNewBase(db, nd)
}

// bestThresholdAbove returns the smallest doubled threshold >= need, if any.
func bestThresholdAbove(need numeric.Weight, doubled []int64) (numeric.Weight, bool) {
	var best numeric.Weight
	found := false
	for _, t := range doubled {
		w := numeric.FromInt64(t)
		if numeric.Less(w, need) {
			continue
		}
		if !found || numeric.Less(w, best) {
			best, found = w, true
		}
	}
	return best, found
}

// Narrow is a safe no-op: a is already closed and at least as precise as
// any further narrowing against b could make it.
func Narrow(a, b *Value) *Value { return a }

// gcUnconstrained drops variables whose vertex pair has no incident edges
// at all, keeping a Join result from accumulating dead variable bookkeeping
// that carries no actual constraint.
func gcUnconstrained(d *Domain) {
	for x, p := range d.vars {
		if len(d.g.Succs(p.pos)) == 0 && len(d.g.Preds(p.pos)) == 0 &&
			len(d.g.Succs(p.neg)) == 0 && len(d.g.Preds(p.neg)) == 0 {
			d.g.Forget(p.pos)
			d.g.Forget(p.neg)
			delete(d.vars, x)
			delete(d.rev, p.pos)
			delete(d.rev, p.neg)
			delete(d.pot, p.pos)
			delete(d.pot, p.neg)
		}
	}
}
