// Package wgraph implements the weighted directed graph layer underlying
// the octagon domain: dense vertex allocation with retirement/reuse,
// mutable edge weights over the numeric.Weight monoid, successor/
// predecessor iteration, a permuted view and a split view (hiding
// self-loops), and the closure family (Johnson all-pairs, incremental
// closure after meet/assign/widen, delta application, potential
// repair/selection).
//
// The storage discipline follows core.Graph: two separate sync.RWMutex
// locks (one for the vertex catalog, one for edges/adjacency) so readers
// never block on each other, even though the analyser that drives this
// package is single-threaded in practice. Closure, both from scratch
// (CloseJohnson) and incremental, is grounded on dijkstra.Dijkstra's
// potential-reduced min-heap search, run once per source vertex; there is
// no dense Floyd-Warshall pass.
package wgraph
