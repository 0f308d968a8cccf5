// File: closure.go
// Role: the closure family — Johnson all-pairs shortest paths via a
// potential-reduced Dijkstra per source (grounded on dijkstra.Dijkstra's
// min-heap runner), incremental closure after meet/assign/widen, delta
// application, and potential repair/selection.
package wgraph

import (
	"container/heap"

	"github.com/katalvlaran/relnum/numeric"
)

// Potential is a feasibility certificate: for every edge i->j,
// Potential[i] + w(i,j) - Potential[j] >= 0.
type Potential map[VertexID]numeric.Weight

// DeltaEdge is one tightened edge emitted by a closure operation, applied
// later by ApplyDelta.
type DeltaEdge struct {
	From, To VertexID
	Weight   numeric.Weight
}

// Delta is an ordered list of edge tightenings.
type Delta []DeltaEdge

// pqItem is one entry of the Dijkstra min-heap used by CloseJohnson,
// mirroring dijkstra.nodePQ's lazy-decrease-key shape.
type pqItem struct {
	v    VertexID
	dist numeric.Weight
}

type nodePQ []pqItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return numeric.Less(pq[i].dist, pq[j].dist) }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// dijkstraFrom runs one Dijkstra search from src using weights reduced by
// pot (w'(i,j) = pot[i]+w(i,j)-pot[j], guaranteed non-negative since pot is
// feasible), returning true shortest-path distances from src to every
// vertex it can reach.
func dijkstraFrom(g *Graph, pot Potential, src VertexID) map[VertexID]numeric.Weight {
	dist := map[VertexID]numeric.Weight{src: numeric.Zero()}
	visited := map[VertexID]bool{}
	pq := &nodePQ{{v: src, dist: numeric.Zero()}}
	heap.Init(pq)

	for pq.Len() > 0 {
		it := heap.Pop(pq).(pqItem)
		if visited[it.v] {
			continue
		}
		visited[it.v] = true
		for _, e := range g.ESuccs(it.v) {
			if e.Weight.IsInf() || visited[e.Vertex] {
				continue
			}
			reduced := numeric.Add(numeric.Add(pot[it.v], e.Weight), numeric.Neg(pot[e.Vertex]))
			cand := numeric.Add(it.dist, reduced)
			cur, ok := dist[e.Vertex]
			if !ok || numeric.Less(cand, cur) {
				dist[e.Vertex] = cand
				heap.Push(pq, pqItem{v: e.Vertex, dist: cand})
			}
		}
	}

	// Undo the reduction: true_dist(src,v) = reduced_dist + pot[v] - pot[src].
	out := make(map[VertexID]numeric.Weight, len(dist))
	for v, d := range dist {
		out[v] = numeric.Add(numeric.Add(d, pot[v]), numeric.Neg(pot[src]))
	}
	return out
}

// CloseJohnson computes all-pairs shortest paths over g using pot as the
// Johnson reweighting, returning the edges that must tighten to reach
// closure. It does not mutate g; call ApplyDelta with the result.
//
// Complexity: O(V (V+E) log V), one Dijkstra per vertex.
func CloseJohnson(g *Graph, pot Potential) Delta {
	var delta Delta
	for _, src := range g.Verts() {
		dist := dijkstraFrom(g, pot, src)
		for dst, d := range dist {
			if dst == src {
				continue
			}
			if cur := g.EdgeVal(src, dst); d.IsInf() || numeric.Less(d, cur) {
				delta = append(delta, DeltaEdge{From: src, To: dst, Weight: d})
			}
		}
	}
	return delta
}

// CloseAfterMeet relaxes only paths through edges newly introduced by a
// meet of two graphs A and B (a "chromatic Dijkstra": only edges touched by
// the meet are reseeded, not the whole graph): it runs a Johnson search
// seeded from every endpoint of an edge that
// differs between the meet result and max(A valid region, B valid region).
// Since a meet result already equals the element-wise min of A and B, it is
// sound (if conservative) to reseed from every vertex incident to an edge
// where g's weight is strictly tighter than both inputs would give alone;
// callers pass that vertex set as seeds.
//
// Complexity: O(|seeds| (V+E) log V).
func CloseAfterMeet(g *Graph, pot Potential, seeds []VertexID) Delta {
	var delta Delta
	seen := make(map[VertexID]bool, len(seeds))
	for _, src := range seeds {
		if seen[src] {
			continue
		}
		seen[src] = true
		dist := dijkstraFrom(g, pot, src)
		for dst, d := range dist {
			if dst == src {
				continue
			}
			if cur := g.EdgeVal(src, dst); d.IsInf() || numeric.Less(d, cur) {
				delta = append(delta, DeltaEdge{From: src, To: dst, Weight: d})
			}
		}
	}
	return delta
}

// CloseAfterAssign relaxes only paths passing through v (the vertex whose
// incident edges were just rewritten by an assignment). This is
// CloseAfterMeet seeded with v and its direct predecessors only: paths out
// of v and paths that enter v through a direct predecessor are searched,
// while a path reaching v from a vertex that is not a direct predecessor
// gets no edge of its own from this call.
//
// Complexity: O(deg(v) (V+E) log V).
func CloseAfterAssign(g *Graph, pot Potential, v VertexID) Delta {
	seeds := append([]VertexID{v}, g.Preds(v)...)
	return CloseAfterMeet(g, pot, seeds)
}

// CloseAfterWiden is the restabilize variant: it revisits only vertices in
// unstable, adding both endpoints of every edge it tightens back into the
// unstable set (it does not change potentials itself) so the caller's next
// normalize() call drains a complete frontier rather than stopping one
// relaxation short.
//
// Complexity: O(|unstable| (V+E) log V).
func CloseAfterWiden(g *Graph, pot Potential, unstable map[VertexID]bool) Delta {
	seeds := make([]VertexID, 0, len(unstable))
	for v := range unstable {
		seeds = append(seeds, v)
	}
	sortVertexIDs(seeds)
	var delta Delta
	for _, src := range seeds {
		dist := dijkstraFrom(g, pot, src)
		for dst, d := range dist {
			if dst == src {
				continue
			}
			cur := g.EdgeVal(src, dst)
			if d.IsInf() || numeric.Less(d, cur) {
				delta = append(delta, DeltaEdge{From: src, To: dst, Weight: d})
				// Both endpoints of a tightened edge may enable further
				// tightenings elsewhere; keep them unstable for the caller.
				unstable[src] = true
				unstable[dst] = true
			}
		}
	}
	return delta
}

// ApplyDelta installs every edge in delta using Min (so a delta is always
// safe to apply even if some entries are stale), repairing potentials as it
// goes. If check is true and any insertion leaves the potential infeasible,
// ApplyDelta stops and returns false (the caller must set its abstract
// value to bottom).
//
// Complexity: O(|delta|) amortised repairs, each O(V+E) worst case.
func ApplyDelta(g *Graph, pot Potential, delta Delta, check bool) bool {
	for _, e := range delta {
		g.UpdateEdge(e.From, e.Weight, e.To, numeric.Min)
		if check {
			if !RepairPotential(g, pot, e.From, e.To) {
				return false
			}
		}
	}
	return true
}

// RepairPotential reweighs pot after inserting/tightening edge i->j,
// propagating any resulting potential decrease to affected successors via
// an SPFA-style bounded relaxation (a queue-based Bellman-Ford variant, the
// same shape as a single-source shortest-path sweep but tolerant of the
// negative edges potentials themselves can carry). Returns false if the
// relaxation fails to terminate within a generous iteration bound, which
// certifies a negative cycle: the abstract value is then bottom.
//
// Complexity: O(V*E) worst case, O(1) amortised in practice since only a
// small neighbourhood destabilises per edge insertion.
func RepairPotential(g *Graph, pot Potential, i, j VertexID) bool {
	w := g.EdgeVal(i, j)
	if w.IsInf() {
		return true
	}
	curJ, ok := pot[j]
	if !ok {
		curJ = numeric.Zero()
	}
	curI, ok := pot[i]
	if !ok {
		curI = numeric.Zero()
	}
	need := numeric.Add(curI, w)
	if !numeric.Less(need, curJ) {
		return true // already feasible: pot[j] <= need
	}

	newPot := map[VertexID]numeric.Weight{j: need}
	queue := []VertexID{j}
	inQueue := map[VertexID]bool{j: true}
	verts := g.Verts()
	maxIterations := (len(verts) + 1) * (len(verts) + 1)
	iterations := 0

	for len(queue) > 0 {
		iterations++
		if iterations > maxIterations {
			return false
		}
		v := queue[0]
		queue = queue[1:]
		inQueue[v] = false
		pv := newPot[v]

		for _, e := range g.ESuccs(v) {
			if e.Weight.IsInf() {
				continue
			}
			cand := numeric.Add(pv, e.Weight)
			cur, has := newPot[e.Vertex]
			if !has {
				if existing, ok := pot[e.Vertex]; ok {
					cur = existing
				} else {
					cur = numeric.Zero()
				}
			}
			if numeric.Less(cand, cur) {
				newPot[e.Vertex] = cand
				if !inQueue[e.Vertex] {
					queue = append(queue, e.Vertex)
					inQueue[e.Vertex] = true
				}
			}
		}
	}

	for v, p := range newPot {
		pot[v] = p
	}
	return true
}

// SelectPotentials runs Bellman-Ford from a virtual zero-weight source to
// every vertex of g, returning a feasible Potential or (nil, false) if g
// contains a negative cycle (the owning abstract value is then bottom).
// Used to rebuild a potential from scratch after a meet.
//
// Complexity: O(V*E).
func SelectPotentials(g *Graph) (Potential, bool) {
	verts := g.Verts()
	pot := make(Potential, len(verts))
	for _, v := range verts {
		pot[v] = numeric.Zero()
	}

	for iter := 0; iter < len(verts); iter++ {
		changed := false
		for _, u := range verts {
			for _, e := range g.ESuccs(u) {
				if e.Weight.IsInf() {
					continue
				}
				cand := numeric.Add(pot[u], e.Weight)
				if numeric.Less(cand, pot[e.Vertex]) {
					pot[e.Vertex] = cand
					changed = true
				}
			}
		}
		if !changed {
			return pot, true
		}
	}

	for _, u := range verts {
		for _, e := range g.ESuccs(u) {
			if e.Weight.IsInf() {
				continue
			}
			if numeric.Less(numeric.Add(pot[u], e.Weight), pot[e.Vertex]) {
				return nil, false
			}
		}
	}
	return pot, true
}
