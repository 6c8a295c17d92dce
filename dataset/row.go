package dataset

import "github.com/bruneli/scalaopt-sub001/vecmat"

// AugmentedRow is one row (a, b, index) of the augmented system [A | b]
// that QR factorizes: a holds the row's coefficients in A, b its entry
// in the right-hand side, and index its original row position (stable
// even after a DataSet has been filtered or concatenated).
type AugmentedRow struct {
	A     vecmat.Vec
	B     float64
	Index int64
}

// Sample is one observation (x, y) of a regression data set, as
// consumed by Levenberg-Marquardt: phi(params, X) is expected to
// approximate Y.
type Sample struct {
	X     vecmat.Vec
	Y     float64
	Index int64
}
