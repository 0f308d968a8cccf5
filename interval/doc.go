// Package interval implements the extended-rational interval lattice
// ([lo, hi] with lo, hi ∈ Q ∪ {±∞}) used for projecting self-pair edges of
// the octagon domain, for the array functors' offset/size reasoning, and
// for interval over-approximation of unbounded terms during linear
// constraint decomposition.
//
// The representation follows honnef.co/go/tools' value-range-propagation
// Interval type in spirit: a Bound is a value struct holding a finiteness
// flag and a rational, and a non-finite Bound stands for infinity (its
// side of the interval says which sign).
package interval
