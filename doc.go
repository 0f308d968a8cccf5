// Package relnum is a relational numerical abstract-domain library for
// static analysis: weighted difference-bound graphs, a split octagon
// domain over them, and array-smashing/array-expansion functors lifting
// any scalar domain to arrays.
//
// What is relnum?
//
//	A thread-safe, minimal-dependency library that brings together:
//		• wgraph  — a weighted graph layer purpose-built for difference-bound
//		            constraints: vertex pairs, permuted/split views, Johnson
//		            and incremental closures
//		• octagon — the split octagon domain (±x±y≤c constraints) over wgraph,
//		            with a copy-on-write value wrapper
//		• arraydom — array-smashing and array-expansion functors, generic
//		            over any domain.Domain[V]
//		• domain  — the abstract-domain trait these pieces satisfy
//
// Under the hood:
//
//	variable/ — stable variable identity and element-type tags
//	numeric/  — extended-integer weights and exact rational arithmetic
//	interval/ — bounded/unbounded intervals over rationals
//	linear/   — linear expressions, constraints, and the decomposition of
//	            a general inequality into octagon-representable difference
//	            constraints
//	wgraph/   — the weighted graph layer
//	octagon/  — the split octagon domain
//	domain/   — the abstract-domain trait
//	arraydom/ — array-smashing and array-expansion functors
//
// A value of octagon.Value tracks, for every pair of tracked variables,
// the tightest known bound on their sum and their difference; joining,
// widening and asserting new constraints keep that graph closed under
// shortest paths so that later queries stay sound without re-deriving
// anything.
package relnum
