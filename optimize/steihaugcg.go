package optimize

import (
	"math"

	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// SteihaugCG is the trust-region minimizer using Steihaug-Toint's
// truncated conjugate gradient as the inner step solver. It satisfies
// GradientAwareMinimizer.
type SteihaugCG struct {
	Config Config
	Hv     HessianVectorProduct

	// Delta0 and DeltaMax are the initial and maximum trust-region radii
	// (defaults 1 and 1e5 per §4.6). Eta is the minimum ratio of actual
	// to predicted reduction required to accept a step (default 0.2).
	Delta0, DeltaMax, Eta float64
}

// NewSteihaugCG returns a SteihaugCG minimizer with the §4.6 defaults:
// Delta0=1, DeltaMax=1e5, Eta=0.2.
func NewSteihaugCG(cfg Config, hv HessianVectorProduct) SteihaugCG {
	return SteihaugCG{Config: cfg, Hv: hv, Delta0: 1, DeltaMax: 1e5, Eta: 0.2}
}

// MinimizeWithGradient runs the Steihaug trust-region method from x0.
func (s SteihaugCG) MinimizeWithGradient(f Objective, gradFn GradientFunc, x0 vecmat.Vec) (Result, error) {
	if x0.Dim() == 0 {
		return Result{}, opterr.ErrZeroDimensional
	}
	grad := gradientOf(f, gradFn, s.Config.Eps)

	x := x0
	g := grad(x)
	delta := s.Delta0
	if delta == 0 {
		delta = 1
	}
	deltaMax := s.DeltaMax
	if deltaMax == 0 {
		deltaMax = 1e5
	}
	eta := s.Eta

	for iter := 0; iter < s.Config.MaxIter; iter++ {
		if g.Norm() < s.Config.Tol {
			return Result{X: x, F: f(x), Gradient: g, Status: Converged, Iters: iter}, nil
		}

		hv := func(v vecmat.Vec) vecmat.Vec { return s.Hv(x, v) }
		p, onBoundary := steihaugStep(g, hv, delta)
		if err := checkFinite(p, "SteihaugCG.MinimizeWithGradient"); err != nil {
			return Result{}, err
		}

		predRed := predictedReduction(g, hv, p)
		fx := f(x)
		xTrial, _ := x.Add(p)
		if err := checkFinite(xTrial, "SteihaugCG.MinimizeWithGradient"); err != nil {
			return Result{}, err
		}
		actualRed := fx - f(xTrial)

		var rho float64
		if predRed != 0 {
			rho = actualRed / predRed
		}

		switch {
		case rho < 0.25:
			delta = delta / 4
		case rho > 0.75 && onBoundary:
			delta = math.Min(2*delta, deltaMax)
		}

		if rho > eta {
			x = xTrial
			g = grad(x)
		}
	}

	return Result{X: x, F: f(x), Gradient: g, Status: MaxIterationsReached, Iters: s.Config.MaxIter}, opterr.MaxIter{Where: "SteihaugCG.MinimizeWithGradient", Limit: s.Config.MaxIter}
}

// predictedReduction evaluates m(0) - m(p) for the quadratic model
// m(p) = f(x) + grad.p + 0.5*p^T*H*p.
func predictedReduction(grad vecmat.Vec, hv func(vecmat.Vec) vecmat.Vec, p vecmat.Vec) float64 {
	gp, _ := grad.Dot(p)
	Hp := hv(p)
	pHp, _ := p.Dot(Hp)
	return -(gp + 0.5*pHp)
}

// steihaugStep runs the Steihaug-Toint truncated CG iteration, stopping
// either on convergence of the inner residual, on non-positive
// curvature, or when the iterate would leave the trust region of radius
// delta -- in the latter two cases the step is truncated to the
// boundary of the region.
func steihaugStep(g vecmat.Vec, hv func(vecmat.Vec) vecmat.Vec, delta float64) (p vecmat.Vec, onBoundary bool) {
	n := g.Dim()
	z := vecmat.Zeros(n)
	r := g
	d := r.Neg()
	epsK := math.Min(0.5, math.Sqrt(r.Norm())) * r.Norm()

	if r.Norm() < epsK {
		return z, false
	}

	for j := 0; j < n+10; j++ {
		Hd := hv(d)
		dHd, _ := d.Dot(Hd)
		if dHd <= 0 {
			tau := boundaryTau(z, d, delta)
			step, _ := z.Add(d.Scale(tau))
			return step, true
		}

		rDotR := r.Norm2()
		alpha := rDotR / dHd
		zNext, _ := z.Add(d.Scale(alpha))
		if zNext.Norm() >= delta {
			tau := boundaryTau(z, d, delta)
			step, _ := z.Add(d.Scale(tau))
			return step, true
		}

		rNext, _ := r.Add(Hd.Scale(alpha))
		if rNext.Norm() < epsK {
			return zNext, false
		}

		beta := rNext.Norm2() / rDotR
		dNext, _ := rNext.Neg().Add(d.Scale(beta))
		z, r, d = zNext, rNext, dNext
	}
	return z, false
}

// boundaryTau solves ||z + tau*d|| = delta for the non-negative root tau.
func boundaryTau(z, d vecmat.Vec, delta float64) float64 {
	a := d.Norm2()
	zd, _ := z.Dot(d)
	b := 2 * zd
	c := z.Norm2() - delta*delta
	disc := b*b - 4*a*c
	if disc < 0 {
		disc = 0
	}
	return (-b + math.Sqrt(disc)) / (2 * a)
}
