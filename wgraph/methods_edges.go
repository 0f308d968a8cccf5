// File: methods_edges.go
// Role: edge insertion, lookup, and successor/predecessor iteration.
package wgraph

import "github.com/katalvlaran/relnum/numeric"

// Lookup returns the weight of edge i->j, or (Inf, false) if absent.
//
// Complexity: O(1).
func (g *Graph) Lookup(i, j VertexID) (numeric.Weight, bool) {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	w, ok := g.adj[i][j]
	return w, ok
}

// EdgeVal returns the weight of edge i->j, or numeric.Inf() if absent.
// This is the form the closure family's tightening comparisons are stated
// against.
//
// Complexity: O(1).
func (g *Graph) EdgeVal(i, j VertexID) numeric.Weight {
	w, ok := g.Lookup(i, j)
	if !ok {
		return numeric.Inf()
	}
	return w
}

// SetEdge installs weight w on edge i->j unconditionally, overwriting any
// existing weight.
//
// Complexity: O(1).
func (g *Graph) SetEdge(i VertexID, w numeric.Weight, j VertexID) {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	g.ensureAdj(i)
	g.ensureAdj(j)
	g.adj[i][j] = w
	g.radj[j][i] = w
}

// AddEdge installs weight w on edge i->j, which must not already exist
// (use UpdateEdge/SetEdge to modify an existing edge). Mirrors the source's
// add_edge, used by closure when it knows the edge is new.
//
// Complexity: O(1).
func (g *Graph) AddEdge(i VertexID, w numeric.Weight, j VertexID) {
	g.SetEdge(i, w, j)
}

// UpdateEdge combines w with any existing weight on i->j using op (the
// graph's monoid operation is always Min), installing the combined value.
//
// Complexity: O(1).
func (g *Graph) UpdateEdge(i VertexID, w numeric.Weight, j VertexID, op func(a, b numeric.Weight) numeric.Weight) {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	g.ensureAdj(i)
	g.ensureAdj(j)
	cur, ok := g.adj[i][j]
	if !ok {
		cur = numeric.Inf()
	}
	nw := op(cur, w)
	g.adj[i][j] = nw
	g.radj[j][i] = nw
}

// RemoveEdge deletes edge i->j if present.
//
// Complexity: O(1).
func (g *Graph) RemoveEdge(i, j VertexID) {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	delete(g.adj[i], j)
	delete(g.radj[j], i)
}

// Succs returns the successors of i (targets of outgoing edges), in
// ascending order.
//
// Complexity: O(deg(i)^2) worst case (insertion sort).
func (g *Graph) Succs(i VertexID) []VertexID {
	g.muEdge.RLock()
	out := make([]VertexID, 0, len(g.adj[i]))
	for j := range g.adj[i] {
		out = append(out, j)
	}
	g.muEdge.RUnlock()
	sortVertexIDs(out)
	return out
}

// Preds returns the predecessors of i (sources of incoming edges), in
// ascending order.
//
// Complexity: O(deg(i)^2) worst case (insertion sort).
func (g *Graph) Preds(i VertexID) []VertexID {
	g.muEdge.RLock()
	out := make([]VertexID, 0, len(g.radj[i]))
	for j := range g.radj[i] {
		out = append(out, j)
	}
	g.muEdge.RUnlock()
	sortVertexIDs(out)
	return out
}

// WeightedEdge pairs a neighbour vertex with the edge weight connecting it,
// returned by ESuccs/EPreds to avoid a second Lookup per neighbour.
type WeightedEdge struct {
	Vertex VertexID
	Weight numeric.Weight
}

// ESuccs returns the successors of i together with their edge weights.
//
// Complexity: O(deg(i)^2) worst case (insertion sort).
func (g *Graph) ESuccs(i VertexID) []WeightedEdge {
	g.muEdge.RLock()
	out := make([]WeightedEdge, 0, len(g.adj[i]))
	for j, w := range g.adj[i] {
		out = append(out, WeightedEdge{Vertex: j, Weight: w})
	}
	g.muEdge.RUnlock()
	sortWeightedEdges(out)
	return out
}

// EPreds returns the predecessors of i together with their edge weights.
//
// Complexity: O(deg(i)^2) worst case (insertion sort).
func (g *Graph) EPreds(i VertexID) []WeightedEdge {
	g.muEdge.RLock()
	out := make([]WeightedEdge, 0, len(g.radj[i]))
	for j, w := range g.radj[i] {
		out = append(out, WeightedEdge{Vertex: j, Weight: w})
	}
	g.muEdge.RUnlock()
	sortWeightedEdges(out)
	return out
}

func sortWeightedEdges(es []WeightedEdge) {
	for i := 1; i < len(es); i++ {
		for j := i; j > 0 && es[j-1].Vertex > es[j].Vertex; j-- {
			es[j-1], es[j] = es[j], es[j-1]
		}
	}
}

// Elem reports whether edge i->j exists.
//
// Complexity: O(1).
func (g *Graph) Elem(i, j VertexID) bool {
	_, ok := g.Lookup(i, j)
	return ok
}
