package linear

import (
	"sort"
	"strings"

	"github.com/katalvlaran/relnum/numeric"
	"github.com/katalvlaran/relnum/variable"
)

// Kind is the comparison operator of a Constraint: Σ αᵢxᵢ + c ⊕ 0.
type Kind int

const (
	// EQ is equality: Σ αᵢxᵢ + c = 0.
	EQ Kind = iota
	// LE is "at most": Σ αᵢxᵢ + c ≤ 0.
	LE
	// GE is "at least": Σ αᵢxᵢ + c ≥ 0.
	GE
	// NE is disequation: Σ αᵢxᵢ + c ≠ 0.
	NE
)

// Expr is a sum of (coefficient, variable) terms plus a constant.
type Expr struct {
	terms map[*variable.Variable]numeric.Rational
	cst   numeric.Rational
}

// NewExpr returns the zero expression (constant 0, no terms).
func NewExpr() *Expr {
	return &Expr{terms: make(map[*variable.Variable]numeric.Rational), cst: numeric.RatZero()}
}

// Constant returns the expression equal to the constant c.
func Constant(c numeric.Rational) *Expr {
	e := NewExpr()
	e.cst = c
	return e
}

// Var returns the expression equal to 1·v.
func Var(v *variable.Variable) *Expr {
	e := NewExpr()
	e.AddTerm(v, numeric.RatOne())
	return e
}

// AddTerm adds coeff·v to e in place and returns e (builder style).
func (e *Expr) AddTerm(v *variable.Variable, coeff numeric.Rational) *Expr {
	if existing, ok := e.terms[v]; ok {
		e.terms[v] = numeric.AddRat(existing, coeff)
	} else {
		e.terms[v] = coeff
	}
	return e
}

// AddConst adds c to e's constant in place and returns e.
func (e *Expr) AddConst(c numeric.Rational) *Expr {
	e.cst = numeric.AddRat(e.cst, c)
	return e
}

// Coeff returns the coefficient of v in e (zero if absent).
func (e *Expr) Coeff(v *variable.Variable) numeric.Rational {
	if c, ok := e.terms[v]; ok {
		return c
	}
	return numeric.RatZero()
}

// Const returns e's constant term.
func (e *Expr) Const() numeric.Rational { return e.cst }

// Vars returns the variables with a non-zero coefficient in e, ordered
// deterministically by Variable.ID so that decomposition and printing are
// reproducible.
func (e *Expr) Vars() []*variable.Variable {
	out := make([]*variable.Variable, 0, len(e.terms))
	for v, c := range e.terms {
		if c.Sign() != 0 {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// NumTerms returns the number of non-zero terms in e.
func (e *Expr) NumTerms() int { return len(e.Vars()) }

// IsConstant reports whether e has no variable terms.
func (e *Expr) IsConstant() bool { return e.NumTerms() == 0 }

// Clone returns a deep copy of e.
func (e *Expr) Clone() *Expr {
	out := NewExpr()
	out.cst = e.cst
	for v, c := range e.terms {
		out.terms[v] = c
	}
	return out
}

// String renders e for diagnostics.
func (e *Expr) String() string {
	var sb strings.Builder
	first := true
	for _, v := range e.Vars() {
		if !first {
			sb.WriteString(" + ")
		}
		first = false
		sb.WriteString(e.Coeff(v).String())
		sb.WriteString("*")
		sb.WriteString(v.Name)
	}
	if e.cst.Sign() != 0 || first {
		if !first {
			sb.WriteString(" + ")
		}
		sb.WriteString(e.cst.String())
	}
	return sb.String()
}

// Constraint is ⟨Expr⟩ ⊕ 0 for ⊕ ∈ {=, ≤, ≥, ≠}.
type Constraint struct {
	Expr *Expr
	Kind Kind
}

// NewConstraint builds a Constraint e ⊕ 0.
func NewConstraint(e *Expr, k Kind) Constraint { return Constraint{Expr: e, Kind: k} }

// Negate returns a sound over-approximation of the logical negation of c
// (used by Checker.Entail, which tests unsatisfiability of the negation).
// EQ/NE are exact. LE/GE are not: not(e <= 0) == e > 0, which this module's
// closed-rational constraints cannot express strictly, so Negate relaxes it
// to the non-strict e >= 0 — a superset of the true negation, keeping
// Entail sound (it may under-approximate entailment at the boundary, never
// over-approximate it; see octagon.Value.Entail's doc comment).
func (c Constraint) Negate() Constraint {
	switch c.Kind {
	case LE:
		return Constraint{Expr: c.Expr, Kind: GE}
	case GE:
		return Constraint{Expr: c.Expr, Kind: LE}
	case EQ:
		return Constraint{Expr: c.Expr, Kind: NE}
	case NE:
		return Constraint{Expr: c.Expr, Kind: EQ}
	}
	panic("linear: unknown Kind")
}

// String renders c for diagnostics.
func (c Constraint) String() string {
	sym := map[Kind]string{EQ: "=", LE: "<=", GE: ">=", NE: "!="}[c.Kind]
	return c.Expr.String() + " " + sym + " 0"
}

// ConstraintSystem is a conjunction of Constraints.
type ConstraintSystem struct {
	Constraints []Constraint
}

// NewSystem builds a ConstraintSystem from the given constraints.
func NewSystem(cs ...Constraint) *ConstraintSystem {
	return &ConstraintSystem{Constraints: cs}
}

// Add appends c to the system and returns the system (builder style).
func (s *ConstraintSystem) Add(c Constraint) *ConstraintSystem {
	s.Constraints = append(s.Constraints, c)
	return s
}
