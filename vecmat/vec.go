// Package vecmat provides the dense vector and matrix substrate used
// throughout scalaopt-sub001: QR, the line searches, the unconstrained
// minimizers, Levenberg-Marquardt, and the simplex tableau all build on
// the types in this package.
//
// Unlike gonum's mat.Dense, whose methods mutate a receiver in place to
// avoid allocation, Vec and Mat are immutable value types: every
// arithmetic operator returns a new value rather than mutating its
// receiver, matching the immutable-vector style of the Scala library
// this package is a port of.
package vecmat

import (
	"math"

	"github.com/bruneli/scalaopt-sub001/opterr"
)

// Vec is a fixed-length ordered sequence of doubles.
type Vec []float64

// NewVec returns a Vec of the given data, copied so the caller's slice
// and the returned Vec do not alias.
func NewVec(data []float64) Vec {
	v := make(Vec, len(data))
	copy(v, data)
	return v
}

// Zeros returns a Vec of n zeros.
func Zeros(n int) Vec {
	return make(Vec, n)
}

// Dim returns the number of elements in v.
func (v Vec) Dim() int {
	return len(v)
}

// At returns the i-th element of v.
func (v Vec) At(i int) float64 {
	return v[i]
}

// With returns a copy of v with index i set to x, leaving v unmodified.
func (v Vec) With(i int, x float64) Vec {
	out := v.clone()
	out[i] = x
	return out
}

func (v Vec) clone() Vec {
	out := make(Vec, len(v))
	copy(out, v)
	return out
}

func sameShape(a, b Vec) error {
	if len(a) != len(b) {
		return opterr.InvalidArgument{Reason: "vector shapes do not match"}
	}
	return nil
}

// Add returns a + b.
func (a Vec) Add(b Vec) (Vec, error) {
	if err := sameShape(a, b); err != nil {
		return nil, err
	}
	out := make(Vec, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out, nil
}

// Sub returns a - b.
func (a Vec) Sub(b Vec) (Vec, error) {
	if err := sameShape(a, b); err != nil {
		return nil, err
	}
	out := make(Vec, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out, nil
}

// MulElem returns the elementwise product of a and b.
func (a Vec) MulElem(b Vec) (Vec, error) {
	if err := sameShape(a, b); err != nil {
		return nil, err
	}
	out := make(Vec, len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out, nil
}

// Scale returns c * v.
func (v Vec) Scale(c float64) Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = c * v[i]
	}
	return out
}

// Div returns v / c elementwise. Div signals InvalidArgument if c is zero.
func (v Vec) Div(c float64) (Vec, error) {
	if c == 0 {
		return nil, opterr.InvalidArgument{Reason: "division by zero scalar"}
	}
	return v.Scale(1 / c), nil
}

// Neg returns -v.
func (v Vec) Neg() Vec {
	return v.Scale(-1)
}

// Dot returns the inner product a.b.
func (a Vec) Dot(b Vec) (float64, error) {
	if err := sameShape(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}

// Outer returns the |u| x |v| outer product matrix u * v^T.
func (u Vec) Outer(v Vec) Mat {
	m := NewMat(len(u), len(v))
	for i := range u {
		for j := range v {
			m.data[i*m.cols+j] = u[i] * v[j]
		}
	}
	return m
}

// Norm2 returns the squared Euclidean norm v.v.
func (v Vec) Norm2() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return sum
}

// Norm returns the Euclidean (l2) norm of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.Norm2())
}

// NormInf returns the infinity norm (max absolute element) of v. It
// returns 0 for an empty vector.
func (v Vec) NormInf() float64 {
	var m float64
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}

// Slice returns the elements [i, j) of v as a new Vec.
func (v Vec) Slice(i, j int) Vec {
	out := make(Vec, j-i)
	copy(out, v[i:j])
	return out
}

// Raw returns the backing []float64 of v. Callers must not mutate the
// result; it is exposed only for interop with numerical kernels that
// need a plain slice (finite differences, BLAS-like loops).
func (v Vec) Raw() []float64 {
	return []float64(v)
}

// HasNaNOrInf reports whether any element of v is NaN or +-Inf.
func (v Vec) HasNaNOrInf() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return true
		}
	}
	return false
}
