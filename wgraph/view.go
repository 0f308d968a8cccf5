// File: view.go
// Role: non-mutating, non-copying views over a Graph — a permuted view
// (vertex renaming) and a split view (hides intra-pair self-loops from
// relational queries). Modeled on core.UnweightedView/InducedSubgraph,
// except these views translate indices on read rather than copying storage,
// since closure runs these queries in hot loops.
package wgraph

import "github.com/katalvlaran/relnum/numeric"

// Perm presents g under a vertex renaming: queries against vertex x in the
// permuted space are translated to g.query(toBase(x)) and results are
// translated back with toPerm. Neither mapping is validated beyond panic-on-
// misuse; callers own consistency (this is an internal algorithm helper,
// not a public safety boundary).
type Perm struct {
	g       *Graph
	toBase  func(VertexID) VertexID
	toPerm  func(VertexID) VertexID
}

// NewPerm builds a permuted view of g using the given forward/inverse maps.
func NewPerm(g *Graph, toBase, toPerm func(VertexID) VertexID) *Perm {
	return &Perm{g: g, toBase: toBase, toPerm: toPerm}
}

// EdgeVal returns the weight of i->j in permuted-vertex space.
func (p *Perm) EdgeVal(i, j VertexID) numeric.Weight {
	return p.g.EdgeVal(p.toBase(i), p.toBase(j))
}

// Succs returns the successors of i in permuted-vertex space.
func (p *Perm) Succs(i VertexID) []VertexID {
	base := p.g.Succs(p.toBase(i))
	out := make([]VertexID, len(base))
	for k, b := range base {
		out[k] = p.toPerm(b)
	}
	sortVertexIDs(out)
	return out
}

// ESuccs returns the weighted successors of i in permuted-vertex space.
func (p *Perm) ESuccs(i VertexID) []WeightedEdge {
	base := p.g.ESuccs(p.toBase(i))
	out := make([]WeightedEdge, len(base))
	for k, e := range base {
		out[k] = WeightedEdge{Vertex: p.toPerm(e.Vertex), Weight: e.Weight}
	}
	return out
}

// EPreds returns the weighted predecessors of i in permuted-vertex space.
func (p *Perm) EPreds(i VertexID) []WeightedEdge {
	base := p.g.EPreds(p.toBase(i))
	out := make([]WeightedEdge, len(base))
	for k, e := range base {
		out[k] = WeightedEdge{Vertex: p.toPerm(e.Vertex), Weight: e.Weight}
	}
	return out
}

// SplitView presents g with every intra-pair edge (an edge between a vertex
// and its own pair-mate, i.e. floor(i/2) == floor(j/2)) hidden, so relational
// closure never treats a self-pair interval bound as a transitive hop.
type SplitView struct {
	g *Graph
}

// NewSplitView wraps g.
func NewSplitView(g *Graph) *SplitView { return &SplitView{g: g} }

func samePair(i, j VertexID) bool { return i/2 == j/2 }

// EdgeVal returns the weight of i->j, or Inf if i and j are pair-mates.
func (s *SplitView) EdgeVal(i, j VertexID) numeric.Weight {
	if samePair(i, j) {
		return numeric.Inf()
	}
	return s.g.EdgeVal(i, j)
}

// Succs returns the successors of i excluding i's own pair-mate.
func (s *SplitView) Succs(i VertexID) []VertexID {
	all := s.g.Succs(i)
	out := all[:0:0]
	for _, j := range all {
		if !samePair(i, j) {
			out = append(out, j)
		}
	}
	return out
}

// ESuccs returns the weighted successors of i excluding i's own pair-mate.
func (s *SplitView) ESuccs(i VertexID) []WeightedEdge {
	all := s.g.ESuccs(i)
	out := all[:0:0]
	for _, e := range all {
		if !samePair(i, e.Vertex) {
			out = append(out, e)
		}
	}
	return out
}

// Verts delegates to the underlying graph (the split view only masks edges,
// not vertices).
func (s *SplitView) Verts() []VertexID { return s.g.Verts() }
