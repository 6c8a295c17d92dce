package optimize

import (
	"math"

	"github.com/bruneli/scalaopt-sub001/linesearch"
	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// BetaRule selects the formula used to update the CG search direction.
type BetaRule int

const (
	FletcherReeves BetaRule = iota
	PolakRibiere
	PolakRibierePlus
)

// CG is the nonlinear conjugate-gradient minimizer. It satisfies
// GradientAwareMinimizer.
type CG struct {
	Config Config
	Beta   BetaRule
}

// NewCG returns a CG minimizer using the PR+ beta rule, the default
// per §4.6.
func NewCG(cfg Config) CG {
	return CG{Config: cfg, Beta: PolakRibierePlus}
}

// MinimizeWithGradient runs nonlinear CG from x0.
func (cg CG) MinimizeWithGradient(f Objective, gradFn GradientFunc, x0 vecmat.Vec) (Result, error) {
	if x0.Dim() == 0 {
		return Result{}, opterr.ErrZeroDimensional
	}
	grad := gradientOf(f, gradFn, cg.Config.Eps)
	fg := func(x vecmat.Vec) (float64, vecmat.Vec) { return f(x), grad(x) }

	g0 := grad(x0)
	p := linesearch.Point{F: fg, X: x0, Fx: f(x0), GradX: g0, D: g0.Neg()}
	wolfe := cg.Config.WolfeConfig()

	for iter := 0; iter < cg.Config.MaxIter; iter++ {
		if p.GradX.Norm() < cg.Config.Tol {
			return Result{X: p.X, F: p.Fx, Gradient: p.GradX, Status: Converged, Iters: iter}, nil
		}

		next, err := linesearch.SearchPoint(p, wolfe)
		if err != nil {
			return Result{}, err
		}
		if err := checkFinite(next.X, "CG.MinimizeWithGradient"); err != nil {
			return Result{}, err
		}
		if err := checkFinite(next.GradX, "CG.MinimizeWithGradient"); err != nil {
			return Result{}, err
		}

		beta := cg.beta(p.GradX, next.GradX)
		dNext, err := next.GradX.Neg().Add(p.D.Scale(beta))
		if err != nil {
			return Result{}, err
		}
		next.D = dNext
		p = next
	}

	return Result{X: p.X, F: p.Fx, Gradient: p.GradX, Status: MaxIterationsReached, Iters: cg.Config.MaxIter}, opterr.MaxIter{Where: "CG.MinimizeWithGradient", Limit: cg.Config.MaxIter}
}

func (cg CG) beta(gPrev, gNext vecmat.Vec) float64 {
	switch cg.Beta {
	case FletcherReeves:
		return gNext.Norm2() / gPrev.Norm2()
	case PolakRibiere, PolakRibierePlus:
		diff, _ := gNext.Sub(gPrev)
		dot, _ := gNext.Dot(diff)
		pr := dot / gPrev.Norm2()
		if cg.Beta == PolakRibierePlus {
			return math.Max(0, pr)
		}
		return pr
	default:
		return 0
	}
}
