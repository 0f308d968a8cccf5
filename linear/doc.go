// Package linear implements the linear-expression/constraint surface shared
// by every domain in this module: a sum of (coefficient, variable) terms
// plus a constant, a comparison kind, and the decomposition of a general
// linear inequality into the difference/sum/interval-bound constraints the
// octagon domain can actually represent, following the decoding strategy
// crab's split_oct.hpp uses for diffcsts_of_lin_leq.
package linear
