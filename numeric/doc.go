// Package numeric provides the two number representations the rest of this
// module builds on: Weight, a saturating extended integer used as graph
// edge weights (with a dedicated "+∞" value standing for an absent edge),
// and Rational, an arbitrary-precision rational used for linear-constraint
// coefficients and constants.
//
// Both wrap math/big rather than a fixed-width type because the program
// variables an analysis tracks can exceed any fixed-width integer; this
// mirrors honnef.co/go/tools' own value-range-propagation package, which
// represents interval bounds as *big.Int for the same reason.
package numeric
