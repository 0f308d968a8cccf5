// Package domain lifts the module's generic abstract-domain trait into real
// Go interfaces: every concrete domain (octagon.Value, the array functors in
// arraydom) is worked through a stateless "operations" witness that
// implements Domain[V] for its own value type V, rather than V implementing
// the methods itself — this matches the spec's description of the trait as
// a set of free operations over an opaque state type, not a method set on
// that type.
package domain
