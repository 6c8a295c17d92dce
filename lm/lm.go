// Package lm implements Levenberg-Marquardt nonlinear least squares:
// given a regression function phi(p, x) meant to approximate y over a
// data set of (x, y) samples, Fit repeatedly forms the damped normal
// system via QR on an augmented Jacobian and adjusts the damping factor
// by whether the trial step reduces the squared residual norm.
package lm

import (
	"math"

	"github.com/bruneli/scalaopt-sub001/dataset"
	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/qr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// RegressionFunc evaluates the model phi(p, x).
type RegressionFunc func(p, x vecmat.Vec) float64

// JacobianFunc evaluates d(phi)/d(p) for every sample's x, as an m x n
// matrix (m samples, n parameters). A nil JacobianFunc tells Fit to
// approximate it by forward differences.
type JacobianFunc func(phi RegressionFunc, p vecmat.Vec, xs []vecmat.Vec, eps float64) vecmat.Mat

// Config holds Levenberg-Marquardt's tuning parameters.
type Config struct {
	Tol     float64
	MaxIter int
	Eps     float64
	Lambda0 float64
}

// DefaultConfig returns tol=1e-8, maxIter=200, eps=1e-6, lambda0=1e-3
// per §4.8.
func DefaultConfig() Config {
	return Config{Tol: 1e-8, MaxIter: 200, Eps: 1e-6, Lambda0: 1e-3}
}

// Status reports how a Fit run ended.
type Status int

const (
	NotStarted Status = iota
	Converged
	MaxIterationsReached
)

// Result is the outcome of a Levenberg-Marquardt fit.
type Result struct {
	P        vecmat.Vec
	Residual float64 // ||r(P)||
	Status   Status
	Iters    int
}

// ForwardDifferenceJacobian approximates the Jacobian of phi at p over
// xs by forward differences with step eps; it is the default used when
// Fit is not given an analytic JacobianFunc.
func ForwardDifferenceJacobian(phi RegressionFunc, p vecmat.Vec, xs []vecmat.Vec, eps float64) vecmat.Mat {
	m, n := len(xs), p.Dim()
	J := vecmat.NewMat(m, n)
	base := make([]float64, m)
	for i, x := range xs {
		base[i] = phi(p, x)
	}
	for j := 0; j < n; j++ {
		pj := p.With(j, p.At(j)+eps)
		for i, x := range xs {
			J = J.With(i, j, (phi(pj, x)-base[i])/eps)
		}
	}
	return J
}

// Fit runs Levenberg-Marquardt from p0 over data. jac may be nil, in
// which case ForwardDifferenceJacobian is used.
func Fit(phi RegressionFunc, jac JacobianFunc, data dataset.DataSet[dataset.Sample], p0 vecmat.Vec, cfg Config) (Result, error) {
	samples := data.Collect()
	m := len(samples)
	n := p0.Dim()
	if m == 0 {
		return Result{}, opterr.ErrEmptyDataSet
	}
	if n == 0 {
		return Result{}, opterr.ErrZeroDimensional
	}
	if jac == nil {
		jac = ForwardDifferenceJacobian
	}

	xs := make([]vecmat.Vec, m)
	ys := make([]float64, m)
	for i, s := range samples {
		xs[i] = s.X
		ys[i] = s.Y
	}

	residuals := func(p vecmat.Vec) []float64 {
		r := make([]float64, m)
		for i, x := range xs {
			r[i] = phi(p, x) - ys[i]
		}
		return r
	}
	sumSquares := func(r []float64) float64 {
		var s float64
		for _, ri := range r {
			s += ri * ri
		}
		return s
	}

	lambda := cfg.Lambda0
	if lambda == 0 {
		lambda = DefaultConfig().Lambda0
	}

	p := p0
	r := residuals(p)
	normR2 := sumSquares(r)

	for iter := 0; iter < cfg.MaxIter; iter++ {
		if math.Sqrt(normR2) < cfg.Tol {
			return Result{P: p, Residual: math.Sqrt(normR2), Status: Converged, Iters: iter}, nil
		}

		J := jac(phi, p, xs, cfg.Eps)
		D := diagSqrtJtJ(J)

		rows := make([]dataset.AugmentedRow, 0, m+n)
		for i := 0; i < m; i++ {
			rows = append(rows, dataset.AugmentedRow{A: J.Row(i), B: -r[i], Index: int64(len(rows))})
		}
		sqrtLambda := math.Sqrt(lambda)
		for j := 0; j < n; j++ {
			a := vecmat.Zeros(n).With(j, sqrtLambda*D[j])
			rows = append(rows, dataset.AugmentedRow{A: a, B: 0, Index: int64(len(rows))})
		}

		res, err := qr.Decompose(dataset.FromSlice(rows), n, true, 1e-14)
		if err != nil {
			// A degenerate damped system at this lambda: increase damping
			// and retry rather than failing the whole fit.
			lambda *= 10
			continue
		}
		delta := res.Solution
		if delta.HasNaNOrInf() {
			return Result{}, opterr.NumericalBlowup{Where: "lm.Fit"}
		}

		pTrial, err := p.Add(delta)
		if err != nil {
			return Result{}, err
		}
		if pTrial.HasNaNOrInf() {
			return Result{}, opterr.NumericalBlowup{Where: "lm.Fit"}
		}
		rTrial := residuals(pTrial)
		normRTrial2 := sumSquares(rTrial)
		if math.IsNaN(normRTrial2) || math.IsInf(normRTrial2, 0) {
			return Result{}, opterr.NumericalBlowup{Where: "lm.Fit"}
		}

		if normRTrial2 < normR2 {
			converged := delta.Norm() < cfg.Tol*(p.Norm()+cfg.Tol)
			p, r, normR2 = pTrial, rTrial, normRTrial2
			lambda /= 10
			if converged {
				return Result{P: p, Residual: math.Sqrt(normR2), Status: Converged, Iters: iter}, nil
			}
		} else {
			lambda *= 10
		}
	}

	return Result{P: p, Residual: math.Sqrt(normR2), Status: MaxIterationsReached, Iters: cfg.MaxIter},
		opterr.MaxIter{Where: "lm.Fit", Limit: cfg.MaxIter}
}

// diagSqrtJtJ returns sqrt(diag(J^T*J)), the per-parameter damping scale D.
func diagSqrtJtJ(J vecmat.Mat) []float64 {
	_, n := J.Dims()
	d := make([]float64, n)
	for j := 0; j < n; j++ {
		col := J.Col(j)
		d[j] = math.Sqrt(col.Norm2())
	}
	return d
}
