package wgraph

import "errors"

// ErrVertexNotFound indicates an operation referenced a vertex id that is
// not currently alive (never allocated, or already Forget-ed).
var ErrVertexNotFound = errors.New("wgraph: vertex not found")

// ErrNegativeCycle indicates select_potentials/repair_potential detected a
// negative cycle: the constraint graph has no feasible potential and the
// owning abstract value must transition to bottom.
var ErrNegativeCycle = errors.New("wgraph: negative cycle detected")
