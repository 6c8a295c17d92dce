package optimize

import (
	"math"

	"github.com/bruneli/scalaopt-sub001/linesearch"
	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// NewtonCG is the line-search inexact-Newton minimizer: at each outer
// step the Newton equation Hessian(x)*p = -grad(x) is solved
// approximately by an inner conjugate-gradient loop, then the resulting
// direction is taken into a strong-Wolfe line search. It satisfies
// GradientAwareMinimizer.
type NewtonCG struct {
	Config Config
	Hv     HessianVectorProduct
}

// NewNewtonCG returns a NewtonCG minimizer using hv for Hessian-vector
// products.
func NewNewtonCG(cfg Config, hv HessianVectorProduct) NewtonCG {
	return NewtonCG{Config: cfg, Hv: hv}
}

// MinimizeWithGradient runs Line-Search Newton-CG from x0.
func (n NewtonCG) MinimizeWithGradient(f Objective, gradFn GradientFunc, x0 vecmat.Vec) (Result, error) {
	if x0.Dim() == 0 {
		return Result{}, opterr.ErrZeroDimensional
	}
	grad := gradientOf(f, gradFn, n.Config.Eps)
	fg := func(x vecmat.Vec) (float64, vecmat.Vec) { return f(x), grad(x) }
	wolfe := n.Config.WolfeConfig()

	x := x0
	g := grad(x)

	for iter := 0; iter < n.Config.MaxIter; iter++ {
		if g.Norm() < n.Config.Tol {
			return Result{X: x, F: f(x), Gradient: g, Status: Converged, Iters: iter}, nil
		}

		d := innerCG(g, func(v vecmat.Vec) vecmat.Vec { return n.Hv(x, v) })
		if err := checkFinite(d, "NewtonCG.MinimizeWithGradient"); err != nil {
			return Result{}, err
		}

		p := linesearch.Point{F: fg, X: x, Fx: f(x), GradX: g, D: d}
		next, err := linesearch.SearchPoint(p, wolfe)
		if err != nil {
			return Result{}, err
		}
		if err := checkFinite(next.X, "NewtonCG.MinimizeWithGradient"); err != nil {
			return Result{}, err
		}
		if err := checkFinite(next.GradX, "NewtonCG.MinimizeWithGradient"); err != nil {
			return Result{}, err
		}
		x = next.X
		g = next.GradX
	}

	return Result{X: x, F: f(x), Gradient: g, Status: MaxIterationsReached, Iters: n.Config.MaxIter}, opterr.MaxIter{Where: "NewtonCG.MinimizeWithGradient", Limit: n.Config.MaxIter}
}

// innerCG approximately solves H*p = -grad by conjugate gradient,
// stopping early (returning the steepest-descent direction on the first
// step, or the accumulated iterate otherwise) on non-positive
// curvature, per §4.6.
func innerCG(grad vecmat.Vec, hv func(vecmat.Vec) vecmat.Vec) vecmat.Vec {
	n := grad.Dim()
	z := vecmat.Zeros(n)
	r := grad
	d := r.Neg()
	epsK := math.Min(0.5, math.Sqrt(r.Norm())) * r.Norm()

	for j := 0; ; j++ {
		Hd := hv(d)
		dHd, _ := d.Dot(Hd)
		if dHd <= 0 {
			if j == 0 {
				return grad.Neg()
			}
			return z
		}
		rDotR := r.Norm2()
		alpha := rDotR / dHd
		zNext, _ := z.Add(d.Scale(alpha))
		rNext, _ := r.Add(Hd.Scale(alpha))

		if rNext.Norm() < epsK {
			return zNext
		}

		betaCG := rNext.Norm2() / rDotR
		dNext, _ := rNext.Neg().Add(d.Scale(betaCG))

		z, r, d = zNext, rNext, dNext
		if j > n+10 {
			// Safety valve: should converge in at most n CG steps for an
			// exact quadratic model; guard against a noisy Hv breaking that.
			return z
		}
	}
}
