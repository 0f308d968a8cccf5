package variable

import (
	"fmt"
	"sync/atomic"
)

// Kind classifies the element type of a Variable: int(bitwidth), bool,
// real, ptr, or array-of-{int,bool,real,ptr}.
type Kind struct {
	// Base is the scalar kind. For ArrayOf, Elem describes the element.
	Base Base
	// Bits is the integer bit-width; meaningful only when Base == KindInt
	// (or Base == KindArray with Elem.Base == KindInt).
	Bits int
	// Elem is non-nil only when Base == KindArray.
	Elem *Kind
}

// Base is the scalar family a Kind belongs to.
type Base int

const (
	// KindInt is a bounded integer of Kind.Bits width.
	KindInt Base = iota
	// KindBool is a boolean scalar.
	KindBool
	// KindReal is an arbitrary-precision rational scalar.
	KindReal
	// KindPtr is a pointer scalar (tracked only nominally by these domains).
	KindPtr
	// KindArray marks Kind.Elem as the array's element kind.
	KindArray
)

// Int returns the Kind for a signed integer of the given bit width.
func Int(bits int) Kind { return Kind{Base: KindInt, Bits: bits} }

// Bool returns the boolean Kind.
func Bool() Kind { return Kind{Base: KindBool} }

// Real returns the arbitrary-precision rational Kind.
func Real() Kind { return Kind{Base: KindReal} }

// Ptr returns the pointer Kind.
func Ptr() Kind { return Kind{Base: KindPtr} }

// ArrayOf returns the Kind describing an array of elem.
func ArrayOf(elem Kind) Kind { return Kind{Base: KindArray, Elem: &elem} }

// IsArray reports whether k describes an array.
func (k Kind) IsArray() bool { return k.Base == KindArray }

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	switch k.Base {
	case KindInt:
		return fmt.Sprintf("int%d", k.Bits)
	case KindBool:
		return "bool"
	case KindReal:
		return "real"
	case KindPtr:
		return "ptr"
	case KindArray:
		return "array<" + k.Elem.String() + ">"
	default:
		return "?"
	}
}

// Variable is a stable program-variable identity. Two Variables are the
// same variable iff they are the same pointer; Name is diagnostic only and
// is never used for identity or lookup.
type Variable struct {
	// id is the injective index assigned by the Factory that minted this
	// Variable; used only to make Variable totally orderable for
	// deterministic iteration (e.g. rename/expand bookkeeping).
	id   uint64
	Name string
	Kind Kind
}

// ID returns the Factory-assigned injective index of v, for deterministic
// ordering of variable-keyed maps (iteration order of a Go map is not
// stable, but sorting by ID is).
func (v *Variable) ID() uint64 { return v.id }

// Factory mints Variables with injective identity. A single Factory MUST be
// shared read-only by every domain value derived from one analysis; minting
// is the only mutating operation, so concurrent callers only need the
// Factory itself to be safe.
type Factory struct {
	next uint64
}

// NewFactory returns an empty Factory.
func NewFactory() *Factory { return &Factory{} }

// Fresh mints a new Variable of the given name and kind. The returned
// pointer is the Variable's identity for the rest of the analysis.
//
// Complexity: O(1).
func (f *Factory) Fresh(name string, kind Kind) *Variable {
	id := atomic.AddUint64(&f.next, 1) - 1
	return &Variable{id: id, Name: name, Kind: kind}
}
