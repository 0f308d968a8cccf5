// File: lattice.go
// Role: graph-level lattice operations (join/meet/widen) over the shared
// edge set of two graphs assumed to carry the same vertex catalog, as used
// by the octagon domain's Join/Meet/Widen.
package wgraph

import "github.com/katalvlaran/relnum/numeric"

// Join returns a new graph whose edge i->j is numericMax(a.EdgeVal(i,j),
// b.EdgeVal(i,j)) for every vertex pair reachable from either input's alive
// set (an edge absent from one side is Inf, which absorbs under max, so the
// result has no such edge). The result
// is not closed; callers close it via CloseJohnson before relying on it.
//
// Complexity: O(V^2).
func Join(a, b *Graph) *Graph {
	out := NewGraph()
	verts := unionVerts(a, b)
	allocateVerts(out, verts)
	for _, i := range verts {
		for _, j := range verts {
			if i == j {
				continue
			}
			wa := a.EdgeVal(i, j)
			wb := b.EdgeVal(i, j)
			w := numericMax(wa, wb)
			if !w.IsInf() {
				out.SetEdge(i, w, j)
			}
		}
	}
	return out
}

// Meet returns a new graph whose edge i->j is numeric.Min(a.EdgeVal(i,j),
// b.EdgeVal(i,j)). The result is not closed nor checked for feasibility;
// callers must run SelectPotentials (or RepairPotential per new edge) and
// treat a negative cycle as bottom.
//
// Complexity: O(V^2).
func Meet(a, b *Graph) *Graph {
	out := NewGraph()
	verts := unionVerts(a, b)
	allocateVerts(out, verts)
	for _, i := range verts {
		for _, j := range verts {
			if i == j {
				continue
			}
			w := numeric.Min(a.EdgeVal(i, j), b.EdgeVal(i, j))
			if !w.IsInf() {
				out.SetEdge(i, w, j)
			}
		}
	}
	return out
}

// Widen returns a new graph implementing the standard DBM widening: an
// edge i->j survives only if it is present in both a and b with b's weight
// no looser than a's (b.EdgeVal(i,j) <= a.EdgeVal(i,j) is required for
// widen's soundness since b is iterate N+1 and a is iterate N — the loop
// body can only weaken or preserve a bound across iterations for widen to
// converge). Any edge violating this, or missing from b, is dropped
// (becomes Inf), which is what forces termination.
//
// Complexity: O(V^2).
func Widen(a, b *Graph) *Graph {
	out := NewGraph()
	verts := unionVerts(a, b)
	allocateVerts(out, verts)
	for _, i := range verts {
		for _, j := range verts {
			if i == j {
				continue
			}
			wa, okA := a.Lookup(i, j)
			wb, okB := b.Lookup(i, j)
			if !okA || !okB {
				continue
			}
			if numeric.Less(wa, wb) {
				continue // b relaxed past a: drop to force termination
			}
			out.SetEdge(i, wb, j)
		}
	}
	return out
}

func unionVerts(a, b *Graph) []VertexID {
	seen := map[VertexID]bool{}
	var out []VertexID
	for _, v := range a.Verts() {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range b.Verts() {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sortVertexIDs(out)
	return out
}

// allocateVerts marks exactly verts as alive in out and advances nextID past
// the highest id, bypassing the allocator's normal one-at-a-time id
// generation. Safe because out is freshly built and never observed before
// this call returns; ids in the gaps are intentionally left dead, not
// retired, since Meet/Join/Widen results are throwaway scratch graphs,
// never grown via NewVertex afterward.
func allocateVerts(out *Graph, verts []VertexID) {
	for _, v := range verts {
		out.alive[v] = true
		out.ensureAdj(v)
		if out.nextID <= v {
			out.nextID = v + 1
		}
	}
}

// CloneShape returns a fresh Graph with exactly verts alive and no edges,
// for callers (octagon's COW clone) that then copy edges in themselves.
// Shares allocateVerts' semantics: ids outside verts are left dead.
//
// Complexity: O(V).
func CloneShape(verts []VertexID) *Graph {
	out := NewGraph()
	allocateVerts(out, verts)
	return out
}

func numericMax(a, b numeric.Weight) numeric.Weight {
	if numeric.Less(a, b) {
		return b
	}
	return a
}
