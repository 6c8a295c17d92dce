package optimize

import (
	"github.com/bruneli/scalaopt-sub001/linesearch"
	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// degenerateRho is the bounded-large-scalar substitute used when
// y.s == 0 (Nocedal & Wright's "take a large value" guard).
const degenerateRho = 1000.0

// skipUpdateThreshold below which the curvature y.s is considered too
// small relative to ||y||*||s|| to trust the BFGS update; skipping it
// (rather than applying a degenerate one) is Nocedal & Wright's
// recommended safeguard, not present in the original degenerate-rho-only
// source.
const skipUpdateThreshold = 1e-10

// BFGS is the quasi-Newton minimizer with inverse-Hessian rank-two
// updates. It satisfies GradientAwareMinimizer.
type BFGS struct {
	Config Config
}

// NewBFGS returns a BFGS minimizer with cfg.
func NewBFGS(cfg Config) BFGS {
	return BFGS{Config: cfg}
}

// MinimizeWithGradient runs BFGS from x0, starting from H0 = I.
func (b BFGS) MinimizeWithGradient(f Objective, gradFn GradientFunc, x0 vecmat.Vec) (Result, error) {
	n := x0.Dim()
	if n == 0 {
		return Result{}, opterr.ErrZeroDimensional
	}
	grad := gradientOf(f, gradFn, b.Config.Eps)
	fg := func(x vecmat.Vec) (float64, vecmat.Vec) { return f(x), grad(x) }
	wolfe := b.Config.WolfeConfig()

	H := vecmat.Identity(n)
	x := x0
	g := grad(x)

	for iter := 0; iter < b.Config.MaxIter; iter++ {
		if g.Norm() < b.Config.Tol {
			return Result{X: x, F: f(x), Gradient: g, Status: Converged, Iters: iter}, nil
		}

		Hg, err := H.MulVec(g)
		if err != nil {
			return Result{}, err
		}
		d := Hg.Neg()
		if err := checkFinite(d, "BFGS.MinimizeWithGradient"); err != nil {
			return Result{}, err
		}

		p := linesearch.Point{F: fg, X: x, Fx: f(x), GradX: g, D: d}
		next, err := linesearch.SearchPoint(p, wolfe)
		if err != nil {
			return Result{}, err
		}
		if err := checkFinite(next.X, "BFGS.MinimizeWithGradient"); err != nil {
			return Result{}, err
		}
		if err := checkFinite(next.GradX, "BFGS.MinimizeWithGradient"); err != nil {
			return Result{}, err
		}

		s, err := next.X.Sub(x)
		if err != nil {
			return Result{}, err
		}
		y, err := next.GradX.Sub(g)
		if err != nil {
			return Result{}, err
		}

		ys, err := y.Dot(s)
		if err != nil {
			return Result{}, err
		}

		if ys == 0 {
			// Degenerate curvature: use the bounded-large-scalar guard but
			// still perform the update, per the original source.
			H, err = updateInverseHessian(H, s, y, degenerateRho)
		} else if ys > skipUpdateThreshold*s.Norm()*y.Norm() {
			H, err = updateInverseHessian(H, s, y, 1/ys)
		}
		// else: skip the update this iteration, keeping H positive definite.
		if err != nil {
			return Result{}, err
		}

		x = next.X
		g = next.GradX
	}

	return Result{X: x, F: f(x), Gradient: g, Status: MaxIterationsReached, Iters: b.Config.MaxIter}, opterr.MaxIter{Where: "BFGS.MinimizeWithGradient", Limit: b.Config.MaxIter}
}

// updateInverseHessian applies the BFGS rank-two update
// H' = (I - rho*s*y^T) * H * (I - rho*y*s^T) + rho*s*s^T.
func updateInverseHessian(H vecmat.Mat, s, y vecmat.Vec, rho float64) (vecmat.Mat, error) {
	n, _ := H.Dims()
	I := vecmat.Identity(n)

	left, err := I.Sub(s.Outer(y).Scale(rho))
	if err != nil {
		return vecmat.Mat{}, err
	}
	right, err := I.Sub(y.Outer(s).Scale(rho))
	if err != nil {
		return vecmat.Mat{}, err
	}

	mid, err := left.Mul(H)
	if err != nil {
		return vecmat.Mat{}, err
	}
	updated, err := mid.Mul(right)
	if err != nil {
		return vecmat.Mat{}, err
	}
	return updated.AddScaledVec(rho, s, s)
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
