// File: checker.go
// Role: the checker sub-interface (Entail, Intersect) and the render-back-
// to-linear-constraints output path.
package octagon

import (
	"github.com/katalvlaran/relnum/linear"
	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/variable"
	"github.com/katalvlaran/relnum/wgraph"
)

// Entail reports whether v implies c: true iff meeting v with c's negation
// is infeasible. When c's constant and coefficients are integers and every
// variable in it is integer-kinded, the negation of e ≤ 0 is taken as e ≥ 1
// (and of e ≥ 0 as e ≤ -1), which is exact over the integers. Otherwise the
// non-strict negation from linear.Negate is used, and Entail on an LE/GE
// constraint can miss an entailment that holds exactly at the boundary. EQ
// is checked through its NE negation, which Assume only refutes when the
// residual is a singleton — this domain never claims to compute the best
// possible transformer, only a sound one.
func (v *Value) Entail(c linear.Constraint) bool {
	n := c.Negate()
	integral := c.Expr.Const().IsInt()
	for _, x := range c.Expr.Vars() {
		integral = integral && x.Kind.Base == variable.KindInt && c.Expr.Coeff(x).IsInt()
	}
	if integral && c.Kind == linear.LE {
		n = linear.NewConstraint(c.Expr.Clone().AddConst(numeric.RatFromInt64(-1)), linear.GE)
	} else if integral && c.Kind == linear.GE {
		n = linear.NewConstraint(c.Expr.Clone().AddConst(numeric.RatOne()), linear.LE)
	}
	return v.Assume(n).IsBottom()
}

// Intersect reports whether v is compatible with c: true iff meeting v with
// c is feasible.
func (v *Value) Intersect(c linear.Constraint) bool {
	return !v.Assume(c).IsBottom()
}

// IsUnsat reports whether asserting c against v would be infeasible.
// Implemented directly via Assume rather than a closed-graph reverse-path
// shortcut that would avoid building the post-assume state; both are
// sound, and this one is simpler to get right.
func (v *Value) IsUnsat(c linear.Constraint) bool {
	return v.Assume(c).IsBottom()
}

// ToLinearConstraintSystem renders v's current closed graph as a
// conjunction of linear constraints: one bound constraint per finite
// self-pair edge, one difference/sum constraint per finite relational edge.
func (v *Value) ToLinearConstraintSystem() *linear.ConstraintSystem {
	sys := linear.NewSystem()
	if v.IsBottom() {
		// An unsatisfiable system: 0 <= -1.
		sys.Add(linear.NewConstraint(linear.Constant(numeric.RatFromInt64(-1)), linear.LE))
		return sys
	}
	d := v.norm

	for _, x := range sortedVars(d.vars) {
		iv := atDomain(d, x)
		if iv.Lo.IsFinite() {
			e := linear.NewExpr()
			e.AddTerm(x, numeric.RatFromInt64(-1))
			e.AddConst(iv.Lo.Value())
			sys.Add(linear.NewConstraint(e, linear.LE)) // -x + lo <= 0  i.e. x >= lo
		}
		if iv.Hi.IsFinite() {
			e := linear.NewExpr()
			e.AddTerm(x, numeric.RatOne())
			e.AddConst(numeric.NegRat(iv.Hi.Value()))
			sys.Add(linear.NewConstraint(e, linear.LE)) // x - hi <= 0 i.e. x <= hi
		}
	}

	sv := wgraph.NewSplitView(d.g)
	for _, u := range sv.Verts() {
		for _, edge := range sv.ESuccs(u) {
			vtx := edge.Vertex
			x, xok := d.rev[vtx]   // dst variable
			y, yok := d.rev[u]     // src variable
			if !xok || !yok || x == y {
				continue
			}
			signX := int8(1)
			if vertexSign(vtx) == negKind {
				signX = -1
			}
			signY := int8(-1)
			if vertexSign(u) == negKind {
				signY = 1
			}
			e := linear.NewExpr()
			e.AddTerm(x, numeric.RatFromInt64(int64(signX)))
			e.AddTerm(y, numeric.RatFromInt64(int64(signY)))
			e.AddConst(numeric.NegRat(numeric.WeightToRat(edge.Weight)))
			sys.Add(linear.NewConstraint(e, linear.LE))
		}
	}
	return sys
}
