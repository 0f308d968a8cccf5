// File: types.go
// Role: Graph, VertexID, and the sentinel errors for the wgraph package.
// Concurrency: muVert guards vertex allocation/retirement; muEdge guards
// edges and the adjacency indices, mirroring core.Graph's split-lock
// discipline. NewVertex takes muEdge while holding muVert; every other
// method holds at most one of the two at a time.
package wgraph

import (
	"sync"

	"github.com/katalvlaran/relnum/numeric"
)

// VertexID is a dense non-negative vertex identifier, stable within one
// Graph instance until Forget retires it.
type VertexID int32

// Graph is a weighted directed graph: a dense set of vertices and a
// sparse set of mutable-weight edges drawn from the numeric.Weight monoid.
//
// Absent edges are logically +∞ (numeric.Inf()); Lookup/EdgeVal report this
// rather than a Go error, since "no edge" is an ordinary graph state, not a
// fault.
type Graph struct {
	muVert sync.RWMutex // guards nextID, alive, retired
	muEdge sync.RWMutex // guards adj, radj

	nextID  VertexID
	alive   map[VertexID]bool
	retired []VertexID // singly-retired ids available to NewVertex

	// adj[i][j] = weight of edge i->j. radj is the transpose, kept in sync,
	// used for Preds/EPreds without a linear scan.
	adj  map[VertexID]map[VertexID]numeric.Weight
	radj map[VertexID]map[VertexID]numeric.Weight
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		alive: make(map[VertexID]bool),
		adj:   make(map[VertexID]map[VertexID]numeric.Weight),
		radj:  make(map[VertexID]map[VertexID]numeric.Weight),
	}
}
