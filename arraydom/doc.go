// Package arraydom implements the two classic array functors from the
// abstract-interpretation literature: array-smashing (one summary scalar
// per array variable, strong update only when the caller asserts the write
// index is a singleton) and array-expansion (an offset->cell map per array
// variable, cells materialised lazily, overlap-aware stores and loads).
//
// Both functors wrap an arbitrary base numerical domain D satisfying
// domain.Domain[V] (e.g. octagon.Value via octagon.Ops) and additionally
// implement domain.ArrayDomain[V]; they never interpret array contents
// themselves. Their value is entirely in the micro-protocol they enforce
// on the underlying numerical domain's scalar variables — which one
// currently stands for which array cell — not in doing any I/O.
package arraydom
