// File: normalize.go
// Role: the octagon's normalize() step: install coherent
// mirror edges for octagonal symmetry, then drain the unstable set (or run
// a full Johnson closure) and apply the resulting delta, checking
// feasibility. Every entry point always operates on a Domain that is
// exclusively owned by its caller (see Value.lock in types.go), so
// normalize never needs to clone for isolation — it mutates d in place.
package octagon

import (
	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/wgraph"
)

// maxRestabilizePasses bounds close-after-widen restabilization passes; a
// pass that finds nothing new terminates early, so this only guards against
// a pathological oscillation and is set well above any realistic variable
// count seen in a single program.
const maxRestabilizePasses = 64

// normalizeDomain mutates d into its normal form: coherent-mirror edges
// installed, then closed. Sets d.isBottom if a negative cycle is found.
func normalizeDomain(d *Domain) {
	if d.isBottom {
		return
	}
	installMirrorEdges(d)

	if len(d.unstable) > 0 {
		restabilize(d)
	} else {
		delta := wgraph.CloseJohnson(d.g, d.pot)
		if !wgraph.ApplyDelta(d.g, d.pot, delta, true) {
			*d = *newBottom()
			return
		}
	}
	d.unstable = map[wgraph.VertexID]bool{}
}

// installMirrorEdges enforces the octagon's symmetry invariant: every
// relational edge (v,w) implies the dual edge (mirror(w),mirror(v)) with at
// least the same weight. Uses wgraph.UpdateEdge with Min so re-running this
// step is idempotent.
func installMirrorEdges(d *Domain) {
	sv := wgraph.NewSplitView(d.g)
	for _, v := range sv.Verts() {
		for _, e := range sv.ESuccs(v) {
			mv, mw := mirror(e.Vertex), mirror(v)
			d.g.UpdateEdge(mv, e.Weight, mw, numeric.Min)
		}
	}
}

// restabilize drains d.unstable by repeatedly running close_after_widen
// until a pass produces no further tightenings; every tightened edge's
// endpoints re-enter unstable for the next pass to consider.
func restabilize(d *Domain) {
	for pass := 0; pass < maxRestabilizePasses; pass++ {
		if len(d.unstable) == 0 {
			return
		}
		delta := wgraph.CloseAfterWiden(d.g, d.pot, d.unstable)
		if !wgraph.ApplyDelta(d.g, d.pot, delta, true) {
			*d = *newBottom()
			return
		}
		if len(delta) == 0 {
			return
		}
	}
}
