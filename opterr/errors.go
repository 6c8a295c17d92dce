// Package opterr defines the single error taxonomy surfaced by every
// solver in scalaopt-sub001: the linear-algebra substrate, the line
// searches, the unconstrained minimizers, Levenberg-Marquardt, and the
// simplex LP solver all return errors from this package instead of
// defining their own.
package opterr

import (
	"errors"
	"fmt"
)

// ErrZeroDimensional signifies a solver was called with an input of length 0.
var ErrZeroDimensional = errors.New("opterr: zero dimensional input")

// ErrEmptyDataSet signifies a data set driven computation (QR, Levenberg-Marquardt)
// was given an empty data set. Its value is an InvalidArgument, so it
// matches both a direct comparison and a type assertion to InvalidArgument.
var ErrEmptyDataSet error = InvalidArgument{Reason: "data set has no rows"}

// MaxIter signifies that an outer or inner iteration cap was reached without
// convergence.
type MaxIter struct {
	// Where names the loop that exhausted its budget, e.g.
	// "NelderMead.Minimize", "linesearch.zoom", "simplex.phase1".
	Where string
	Limit int
}

func (e MaxIter) Error() string {
	return fmt.Sprintf("opterr: %s did not converge within %d iterations", e.Where, e.Limit)
}

// InvalidArgument signifies a dimension mismatch, a non-positive tolerance,
// an empty data set, or any other precondition violation caught before any
// numerical work is attempted.
type InvalidArgument struct {
	Reason string
}

func (e InvalidArgument) Error() string {
	return "opterr: invalid argument: " + e.Reason
}

// RankDeficient signifies that a pivoted QR factorization found a pivot
// magnitude below the rank threshold.
type RankDeficient struct {
	Column int
	Pivot  float64
	Tol    float64
}

func (e RankDeficient) Error() string {
	return fmt.Sprintf("opterr: rank deficient at column %d: |pivot|=%g < tol=%g", e.Column, e.Pivot, e.Tol)
}

// Infeasible signifies that the phase-1 simplex optimum was strictly
// positive, i.e. no point satisfies every constraint.
type Infeasible struct {
	Phase1Objective float64
}

func (e Infeasible) Error() string {
	return fmt.Sprintf("opterr: infeasible (phase-1 objective %g > 0)", e.Phase1Objective)
}

// Unbounded signifies that simplex pivot selection found no finite ratio,
// i.e. the objective can be improved without limit.
type Unbounded struct {
	EnteringColumn int
}

func (e Unbounded) Error() string {
	return fmt.Sprintf("opterr: unbounded (no finite ratio entering column %d)", e.EnteringColumn)
}

// NonLinearConstraint signifies that a constraint claimed to be linear
// failed the affine probe at {0, e1, ..., en}.
type NonLinearConstraint struct {
	Index int
}

func (e NonLinearConstraint) Error() string {
	return fmt.Sprintf("opterr: constraint %d is not linear", e.Index)
}

// NumericalBlowup signifies that a NaN or Inf was encountered during an
// inner step of a solver.
type NumericalBlowup struct {
	Where string
}

func (e NumericalBlowup) Error() string {
	return "opterr: numerical blowup (NaN/Inf) in " + e.Where
}
