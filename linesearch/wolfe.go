package linesearch

import (
	"math"

	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// WolfeConfig configures the strong-Wolfe step-length search.
type WolfeConfig struct {
	MaxIterLine int
	MaxIterZoom int
	C1          float64 // sufficient-decrease (Armijo) constant
	C2          float64 // curvature constant
	C3          float64 // bracket growth factor
}

// DefaultWolfeConfig returns the §4.3.2 literals: c1=1e-4, c2=0.9, c3=2.
func DefaultWolfeConfig() WolfeConfig {
	return WolfeConfig{MaxIterLine: 50, MaxIterZoom: 30, C1: 1e-4, C2: 0.9, C3: 2.0}
}

// FuncGrad evaluates an objective and its gradient at x.
type FuncGrad func(x vecmat.Vec) (f float64, grad vecmat.Vec)

// Point is the LineSearchPoint threaded through a gradient-aware
// minimizer: F is the objective/gradient evaluator, X the current
// position, Fx and GradX the objective and gradient at X, D the search
// direction, and D2FxD an optional curvature value d^T*H*d along D. No
// minimizer in this module reads D2FxD; SearchPoint returns it as NaN.
type Point struct {
	F     FuncGrad
	X     vecmat.Vec
	Fx    float64
	GradX vecmat.Vec
	D     vecmat.Vec
	D2FxD float64
}

// Search performs a strong-Wolfe line search on the scalar restriction
// phi(alpha) = f(x + alpha*d) given phi and its derivative dphi, both
// evaluated at alpha=0 internally. It returns the accepted step length.
func Search(phi, dphi func(alpha float64) float64, cfg WolfeConfig) (float64, error) {
	phi0 := phi(0)
	dphi0 := dphi(0)
	if dphi0 >= 0 {
		return 0, opterr.InvalidArgument{Reason: "search direction is not a descent direction"}
	}

	prevA, prevPhi := 0.0, phi0
	a1 := 1.0

	for iter := 0; iter < cfg.MaxIterLine; iter++ {
		phi1 := phi(a1)
		if phi1 > phi0+cfg.C1*a1*dphi0 || (iter > 0 && phi1 >= prevPhi) {
			return zoom(prevA, a1, phi0, dphi0, phi, dphi, cfg)
		}
		dphi1 := dphi(a1)
		if math.Abs(dphi1) <= -cfg.C2*dphi0 {
			return a1, nil
		}
		if dphi1 >= 0 {
			return zoom(a1, prevA, phi0, dphi0, phi, dphi, cfg)
		}
		prevA, prevPhi = a1, phi1
		a1 *= cfg.C3
	}
	return 0, opterr.MaxIter{Where: "linesearch.Search", Limit: cfg.MaxIterLine}
}

// zoom narrows [alo, ahi] (Nocedal & Wright, Algorithm 3.6) until a
// step satisfying the strong Wolfe conditions is found. The interpolant
// is quadratic (using the two endpoint function values and the lo
// derivative); it falls back to bisection whenever the quadratic model
// degenerates or lands the trial outside the safeguard interval.
func zoom(alo, ahi, phi0, dphi0 float64, phi, dphi func(float64) float64, cfg WolfeConfig) (float64, error) {
	philo := phi(alo)
	dphilo := dphi(alo)

	for iter := 0; iter < cfg.MaxIterZoom; iter++ {
		phihi := phi(ahi)

		trial := quadraticMinimizer(alo, philo, dphilo, ahi, phihi)
		lo2, hi2 := alo, ahi
		if lo2 > hi2 {
			lo2, hi2 = hi2, lo2
		}
		width := hi2 - lo2
		safeLo := lo2 + 0.1*width
		safeHi := lo2 + 0.9*width
		if math.IsNaN(trial) || trial < safeLo || trial > safeHi {
			trial = 0.5 * (alo + ahi)
		}

		phiTrial := phi(trial)
		if phiTrial > phi0+cfg.C1*trial*dphi0 || phiTrial >= philo {
			ahi = trial
			continue
		}

		dphiTrial := dphi(trial)
		if math.Abs(dphiTrial) <= -cfg.C2*dphi0 {
			return trial, nil
		}
		if dphiTrial*(ahi-alo) >= 0 {
			ahi = alo
		}
		alo = trial
		philo = phiTrial
		dphilo = dphiTrial
	}
	return 0, opterr.MaxIter{Where: "linesearch.zoom", Limit: cfg.MaxIterZoom}
}

// quadraticMinimizer returns the minimizer of the quadratic interpolating
// phi(alo)=philo, phi'(alo)=dphilo, phi(ahi)=phihi, or NaN if the model
// is degenerate (denominator too close to zero).
func quadraticMinimizer(alo, philo, dphilo, ahi, phihi float64) float64 {
	d := ahi - alo
	denom := 2 * (phihi - philo - dphilo*d)
	if math.Abs(denom) < 1e-15 {
		return math.NaN()
	}
	return alo - dphilo*d*d/denom
}

// SearchPoint runs Search starting from p and returns the updated Point
// at the accepted step, re-evaluating F there so the caller (BFGS, CG,
// Newton-CG) can reuse the fresh (x, f, grad) without a redundant call.
func SearchPoint(p Point, cfg WolfeConfig) (Point, error) {
	phi := func(alpha float64) float64 {
		f, _ := p.F(stepTo(p.X, p.D, alpha))
		return f
	}
	dphi := func(alpha float64) float64 {
		_, grad := p.F(stepTo(p.X, p.D, alpha))
		dot, _ := grad.Dot(p.D)
		return dot
	}

	alpha, err := Search(phi, dphi, cfg)
	if err != nil {
		return Point{}, err
	}

	xNew := stepTo(p.X, p.D, alpha)
	f, grad := p.F(xNew)
	return Point{
		F:     p.F,
		X:     xNew,
		Fx:    f,
		GradX: grad,
		D:     p.D,
		D2FxD: math.NaN(),
	}, nil
}

func stepTo(x, d vecmat.Vec, alpha float64) vecmat.Vec {
	out, _ := x.Add(d.Scale(alpha))
	return out
}
