// Package octagon implements the Split Octagon relational numerical
// abstract domain: conjunctions of constraints of the form ±x ± y ≤ c and
// ±x ≤ c, represented as an incrementally-closed weighted graph over a pair
// of vertices per program variable (wgraph.Graph, package wgraph).
//
// A Value is a copy-on-write wrapper around a Domain snapshot; Domain owns
// the graph, the potential vector, the variable-to-vertex-pair map, and the
// unstable set, with each variable's (pos, neg) pair allocated by
// wgraph.Graph.NewVertexPair. Transfer operations are methods on *Value;
// Leq, Join, Meet, Widen, WidenThresholds and Narrow are package functions;
// the Ops witness type implements domain.Domain[*Value] /
// domain.Checker[*Value] on top of both.
package octagon
