// File: api.go
// Role: vertex lifecycle (allocate/retire) and basic queries.
package wgraph

import "github.com/katalvlaran/relnum/numeric"

func (g *Graph) ensureAdj(v VertexID) {
	if _, ok := g.adj[v]; !ok {
		g.adj[v] = make(map[VertexID]numeric.Weight)
	}
	if _, ok := g.radj[v]; !ok {
		g.radj[v] = make(map[VertexID]numeric.Weight)
	}
}

// NewVertex allocates a fresh VertexID, reusing a retired one if available.
//
// Complexity: O(1).
func (g *Graph) NewVertex() VertexID {
	g.muVert.Lock()
	defer g.muVert.Unlock()

	var id VertexID
	if n := len(g.retired); n > 0 {
		id = g.retired[n-1]
		g.retired = g.retired[:n-1]
	} else {
		id = g.nextID
		g.nextID++
	}
	g.alive[id] = true

	g.muEdge.Lock()
	g.ensureAdj(id)
	g.muEdge.Unlock()

	return id
}

// NewVertexPair allocates two fresh ids (pos, pos+1) atomically, satisfying
// the octagon domain's `neg = pos + 1` invariant by construction. Unlike
// NewVertex, pair ids are never drawn from the singly-retired free list:
// reusing a single retired id for one half of a pair could collide its
// partner with a still-live vertex, so pairs always come from fresh,
// contiguous ids instead.
//
// Complexity: O(1).
func (g *Graph) NewVertexPair() (pos, neg VertexID) {
	g.muVert.Lock()
	pos = g.nextID
	neg = g.nextID + 1
	g.nextID += 2
	g.alive[pos] = true
	g.alive[neg] = true
	g.muVert.Unlock()

	g.muEdge.Lock()
	g.ensureAdj(pos)
	g.ensureAdj(neg)
	g.muEdge.Unlock()

	return pos, neg
}

// Forget removes every edge incident to id and marks it retired, making it
// eligible for reuse by a future NewVertex. It does not renumber any other
// vertex.
//
// Complexity: O(deg(id)).
func (g *Graph) Forget(id VertexID) {
	g.muVert.Lock()
	if !g.alive[id] {
		g.muVert.Unlock()
		return
	}
	delete(g.alive, id)
	g.retired = append(g.retired, id)
	g.muVert.Unlock()

	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	for w := range g.adj[id] {
		delete(g.radj[w], id)
	}
	for u := range g.radj[id] {
		delete(g.adj[u], id)
	}
	delete(g.adj, id)
	delete(g.radj, id)
}

// IsAlive reports whether id is currently allocated.
func (g *Graph) IsAlive(id VertexID) bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	return g.alive[id]
}

// Verts returns every currently alive vertex id, in ascending order.
//
// Complexity: O(V^2) worst case (insertion sort).
func (g *Graph) Verts() []VertexID {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	out := make([]VertexID, 0, len(g.alive))
	for id, ok := range g.alive {
		if ok {
			out = append(out, id)
		}
	}
	sortVertexIDs(out)
	return out
}

func sortVertexIDs(ids []VertexID) {
	// Simple insertion sort: vertex counts in this domain are small
	// (one pair per program variable), so O(n^2) is not a concern and we
	// avoid pulling in sort.Slice's closure allocation on a hot path.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}
