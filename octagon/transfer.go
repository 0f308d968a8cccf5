// File: transfer.go
// Role: the transfer functions: set, assign, apply,
// assume/assume-system, forget/project/rename/expand, interval projection,
// and linear-constraint-system round-trip.
package octagon

import (
	"github.com/katalvlaran/relnum/interval"
	"github.com/katalvlaran/relnum/linear"
	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/variable"
	"github.com/katalvlaran/relnum/wgraph"
)

// atDomain reads x's current interval from its self-pair edges: the p→n
// edge encodes 2x ≥ −w (x ≥ −w/2), n→p encodes x ≤ w/2.
func atDomain(d *Domain, x *variable.Variable) interval.Interval {
	p, ok := d.lookupPair(x)
	if !ok {
		return interval.Top()
	}
	lo := interval.Infinite()
	if w, ok := d.g.Lookup(p.pos, p.neg); ok && !w.IsInf() {
		lo = interval.Finite(numeric.RatFromFrac(-w.Int64(), 2))
	}
	hi := interval.Infinite()
	if w, ok := d.g.Lookup(p.neg, p.pos); ok && !w.IsInf() {
		hi = interval.Finite(numeric.RatFromFrac(w.Int64(), 2))
	}
	return interval.Interval{Lo: lo, Hi: hi}
}

// At returns x's current interval, or Top() if x has never been bound.
func (v *Value) At(x *variable.Variable) interval.Interval {
	if v.IsBottom() {
		return interval.Bottom()
	}
	return atDomain(v.norm, x)
}

// setInterval installs iv as x's self-pair bounds, discarding any prior
// binding of x entirely: x is forgotten first, then its fresh interval
// bounds are installed from scratch.
func setInterval(d *Domain, x *variable.Variable, iv interval.Interval) {
	forgetVar(d, x)
	if iv.IsBottom() {
		*d = *newBottom()
		return
	}
	p := d.pairOf(x)
	if iv.Lo.IsFinite() {
		d.g.SetEdge(p.pos, doubledWeight(numeric.NegRat(iv.Lo.Value())), p.neg)
	}
	if iv.Hi.IsFinite() {
		d.g.SetEdge(p.neg, doubledWeight(iv.Hi.Value()), p.pos)
	}
}

// doubledWeight converts a rational bound into the doubled-integer Weight
// self-pair edges encode (a p→n weight w means 2xᵢ ≥ −w). Truncates toward
// zero; callers in this package only ever pass integral bounds (all
// Assign/Assume derivations work over integer-kinded variables), so this
// is exact in practice.
func doubledWeight(r numeric.Rational) numeric.Weight {
	return numeric.AddRat(r, r).ToWeight()
}

func forgetVar(d *Domain, x *variable.Variable) {
	p, ok := d.lookupPair(x)
	if !ok {
		return
	}
	d.g.Forget(p.pos)
	d.g.Forget(p.neg)
	delete(d.vars, x)
	delete(d.rev, p.pos)
	delete(d.rev, p.neg)
	delete(d.pot, p.pos)
	delete(d.pot, p.neg)
}

// Set installs iv as x's interval, discarding any relational information x
// previously carried.
func (v *Value) Set(x *variable.Variable, iv interval.Interval) *Value {
	nv := v.lock()
	if nv.norm.isBottom {
		return nv
	}
	setInterval(nv.norm, x, iv)
	return nv
}

// Forget removes every one of vars from the value entirely.
func (v *Value) Forget(vars ...*variable.Variable) *Value {
	nv := v.lock()
	if nv.norm.isBottom {
		return nv
	}
	for _, x := range vars {
		forgetVar(nv.norm, x)
	}
	return nv
}

// Project keeps only vars, forgetting every other currently-bound variable.
func (v *Value) Project(vars ...*variable.Variable) *Value {
	nv := v.lock()
	if nv.norm.isBottom {
		return nv
	}
	keep := make(map[*variable.Variable]bool, len(vars))
	for _, x := range vars {
		keep[x] = true
	}
	for x := range nv.norm.vars {
		if !keep[x] {
			forgetVar(nv.norm, x)
		}
	}
	return nv
}

// Rename rebuilds the variable→vertex-pair map with from[i] replaced by
// to[i]; edges are unchanged, since the underlying vertex pair keeps its
// identity — only the variable name attached to it changes.
func (v *Value) Rename(from, to []*variable.Variable) *Value {
	nv := v.lock()
	if nv.norm.isBottom {
		return nv
	}
	d := nv.norm
	for i, fx := range from {
		p, ok := d.vars[fx]
		if !ok {
			continue
		}
		delete(d.vars, fx)
		tx := to[i]
		d.vars[tx] = p
		d.rev[p.pos] = tx
		d.rev[p.neg] = tx
	}
	return nv
}

// Expand copies every edge incident to x's vertex pair onto a fresh pair
// bound to y, including the potential; panics (a caller contract
// violation) if y already has a binding.
func (v *Value) Expand(x, y *variable.Variable) *Value {
	nv := v.lock()
	d := nv.norm
	if d.isBottom {
		return nv
	}
	if _, ok := d.vars[y]; ok {
		panic(ErrExpandTargetExists)
	}
	px, ok := d.vars[x]
	if !ok {
		return nv
	}
	py := d.pairOf(y)
	d.pot[py.pos] = d.pot[px.pos]
	d.pot[py.neg] = d.pot[px.neg]

	// Present x's pair under y's vertex ids without copying the underlying
	// storage, so the edges incident to px read back already translated to
	// where they need to land on py.
	toBase := func(v wgraph.VertexID) wgraph.VertexID {
		switch v {
		case py.pos:
			return px.pos
		case py.neg:
			return px.neg
		default:
			return v
		}
	}
	toPerm := func(v wgraph.VertexID) wgraph.VertexID {
		switch v {
		case px.pos:
			return py.pos
		case px.neg:
			return py.neg
		default:
			return v
		}
	}
	perm := wgraph.NewPerm(d.g, toBase, toPerm)
	for _, dst := range []wgraph.VertexID{py.pos, py.neg} {
		for _, e := range perm.ESuccs(dst) {
			d.g.SetEdge(dst, e.Weight, e.Vertex)
		}
		for _, e := range perm.EPreds(dst) {
			d.g.SetEdge(e.Vertex, e.Weight, dst)
		}
	}
	return nv
}

// Assign installs x := e. Constant e is forwarded to Set. If x itself occurs
// in e, x's current vertex pair is first renamed to a stand-in variable that
// e then refers to, and the stand-in is forgotten once the assignment is
// done. Otherwise x's vertex pair is retired and replaced with a fresh one
// bound by the difference/sum/bound edges DecomposeLinLeq derives from both
// `x - e ≤ 0` and `e - x ≤ 0`; potentials are then recomputed with
// SelectPotentials and the graph is closed incrementally via
// CloseAfterAssign rather than seeding potentials from e's pre-state value.
func (v *Value) Assign(x *variable.Variable, e *linear.Expr) *Value {
	if e.IsConstant() {
		iv := interval.Range(e.Const(), e.Const())
		return v.Set(x, iv)
	}
	if e.Coeff(x).Sign() != 0 {
		old := &variable.Variable{Name: x.Name, Kind: x.Kind}
		sub := linear.Constant(e.Const())
		for _, y := range e.Vars() {
			z := y
			if y == x {
				z = old
			}
			sub.AddTerm(z, e.Coeff(y))
		}
		return v.Rename([]*variable.Variable{x}, []*variable.Variable{old}).Assign(x, sub).Forget(old)
	}
	nv := v.lock()
	d := nv.norm
	if d.isBottom {
		return nv
	}
	normalizeDomain(d)
	if d.isBottom {
		return nv
	}

	env := func(y *variable.Variable) interval.Interval { return atDomain(d, y) }
	xMinusE := linear.Var(x)
	for _, y := range e.Vars() {
		xMinusE.AddTerm(y, numeric.NegRat(e.Coeff(y)))
	}
	xMinusE.AddConst(numeric.NegRat(e.Const()))

	eMinusX := linear.NewExpr()
	eMinusX.AddTerm(x, numeric.RatFromInt64(-1))
	for _, y := range e.Vars() {
		eMinusX.AddTerm(y, e.Coeff(y))
	}
	eMinusX.AddConst(e.Const())

	upper := linear.DecomposeLinLeq(xMinusE, env)
	lower := linear.DecomposeLinLeq(eMinusX, env)

	forgetVar(d, x)
	p := d.pairOf(x)

	install := func(csts []linear.DiffCst) {
		for _, c := range csts {
			if c.X != x && c.Y != x {
				continue
			}
			installDiffCst(d, c)
		}
	}
	install(upper)
	install(lower)

	installMirrorEdges(d)
	if !selectOrBottom(d) {
		return nv
	}
	delta := append(wgraph.CloseAfterAssign(d.g, d.pot, p.pos), wgraph.CloseAfterAssign(d.g, d.pot, p.neg)...)
	if !wgraph.ApplyDelta(d.g, d.pot, delta, true) {
		*d = *newBottom()
	}
	return nv
}

// installDiffCst installs one DecomposeLinLeq result as a wgraph edge,
// following the octagon's standard sign convention: a positive SignX
// targets the neg->pos edge (an upper bound on x), a negative SignX
// targets pos->neg (a lower bound on x), and similarly for the two-
// variable difference/sum shapes via their src/dst vertex choice below.
func installDiffCst(d *Domain, c linear.DiffCst) {
	w := c.Bound.ToWeight()
	switch c.Shape {
	case linear.ShapeBound:
		p := d.pairOf(c.X)
		doubled := numeric.Add(w, w)
		if c.SignX > 0 {
			d.g.UpdateEdge(p.neg, doubled, p.pos, numeric.Min)
		} else {
			d.g.UpdateEdge(p.pos, doubled, p.neg, numeric.Min)
		}
	case linear.ShapeDiff, linear.ShapeSum:
		px, py := d.pairOf(c.X), d.pairOf(c.Y)
		srcKindNeg := c.SignY > 0 // use Y's neg vertex when SignY>0
		dstKindNeg := c.SignX < 0 // use X's neg vertex when SignX<0
		srcV := py.pos
		if srcKindNeg {
			srcV = py.neg
		}
		dstV := px.pos
		if dstKindNeg {
			dstV = px.neg
		}
		d.g.UpdateEdge(srcV, w, dstV, numeric.Min)
	}
}

// AssumeSystem installs every constraint of cs via Assume, stopping early
// (leaving the bottom value) if any constraint makes the state infeasible.
func (v *Value) AssumeSystem(cs *linear.ConstraintSystem) *Value {
	cur := v
	for _, c := range cs.Constraints {
		cur = cur.Assume(c)
		if cur.IsBottom() {
			return cur
		}
	}
	return cur
}

// Assume installs constraint c. EQ installs both ≤ and ≥ halves; LE/GE
// decompose via DecomposeLinLeq; NE trims the pivot interval that the
// residual collapses to a singleton on.
func (v *Value) Assume(c linear.Constraint) *Value {
	nv := v.lock()
	d := nv.norm
	if d.isBottom {
		return nv
	}
	normalizeDomain(d)
	if d.isBottom {
		return nv
	}

	env := func(y *variable.Variable) interval.Interval { return atDomain(d, y) }

	switch c.Kind {
	case linear.LE:
		for _, dc := range linear.DecomposeLinLeq(c.Expr, env) {
			installDiffCst(d, dc)
		}
	case linear.GE:
		neg := negateExprForGE(c.Expr)
		for _, dc := range linear.DecomposeLinLeq(neg, env) {
			installDiffCst(d, dc)
		}
	case linear.EQ:
		for _, dc := range linear.DecomposeLinLeq(c.Expr, env) {
			installDiffCst(d, dc)
		}
		neg := negateExprForGE(c.Expr)
		for _, dc := range linear.DecomposeLinLeq(neg, env) {
			installDiffCst(d, dc)
		}
	case linear.NE:
		assumeDisequation(d, c.Expr, env)
	}
	if d.isBottom {
		return nv
	}

	installMirrorEdges(d)
	if !selectOrBottom(d) {
		return nv
	}
	delta := wgraph.CloseJohnson(d.g, d.pot)
	if !wgraph.ApplyDelta(d.g, d.pot, delta, true) {
		*d = *newBottom()
	}
	return nv
}

// negateExprForGE turns `e ≥ 0` into the equivalent `≤ 0` form `-e ≤ 0`.
func negateExprForGE(e *linear.Expr) *linear.Expr {
	out := linear.NewExpr()
	for _, v := range e.Vars() {
		out.AddTerm(v, numeric.NegRat(e.Coeff(v)))
	}
	out.AddConst(numeric.NegRat(e.Const()))
	return out
}

// assumeDisequation trims a pivot variable's interval against e == 0: for
// each pivot variable with a unit (±1) coefficient, compute the residual
// value from every other term (requiring each to currently be a singleton —
// otherwise the residual is not itself a singleton and there is nothing
// sound to trim); if so, exclude the implied forbidden value from the
// pivot's interval by tightening its self-pair bound edges, leaving its
// relational edges in place (an emptied interval makes d bottom).
// Non-unit pivot coefficients are skipped: trimming them
// would require dividing a Rational, which this module's numeric package
// does not expose.
func assumeDisequation(d *Domain, e *linear.Expr, env linear.Envelope) {
	for _, y := range e.Vars() {
		sign, ok := unitSign(e.Coeff(y))
		if !ok {
			continue
		}
		residual := e.Const()
		singleton := true
		for _, z := range e.Vars() {
			if z == y {
				continue
			}
			zc := e.Coeff(z)
			if zc.Sign() == 0 {
				continue
			}
			val, isSingle := env(z).IsSingleton()
			if !isSingle {
				singleton = false
				break
			}
			residual = numeric.AddRat(residual, numeric.MulRat(zc, val))
		}
		if !singleton {
			continue
		}
		k := residual
		if sign > 0 {
			k = numeric.NegRat(residual)
		}
		trimmed := interval.Trim(env(y), k)
		if trimmed.IsBottom() {
			*d = *newBottom()
			return
		}
		p := d.pairOf(y)
		if trimmed.Lo.IsFinite() {
			d.g.UpdateEdge(p.pos, doubledWeight(numeric.NegRat(trimmed.Lo.Value())), p.neg, numeric.Min)
		}
		if trimmed.Hi.IsFinite() {
			d.g.UpdateEdge(p.neg, doubledWeight(trimmed.Hi.Value()), p.pos, numeric.Min)
		}
	}
}

func unitSign(c numeric.Rational) (int8, bool) {
	if numeric.EqualRat(c, numeric.RatOne()) {
		return 1, true
	}
	if numeric.EqualRat(c, numeric.NegRat(numeric.RatOne())) {
		return -1, true
	}
	return 0, false
}
