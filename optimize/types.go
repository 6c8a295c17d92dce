// Package optimize implements the unconstrained minimizers: Nelder-Mead,
// Powell, nonlinear Conjugate Gradient (Fletcher-Reeves / Polak-Ribiere /
// PR+), BFGS, Line-Search Newton-CG, and Steihaug trust-region CG. Every
// minimizer consumes an objective (and, where relevant, a gradient or
// Hessian-vector product) and returns a Result: either a converged point
// or a typed failure from opterr.
package optimize

import (
	"github.com/bruneli/scalaopt-sub001/linesearch"
	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// Status reports how a minimizer run ended.
type Status int

const (
	// NotStarted is the zero value; no run has been made with it.
	NotStarted Status = iota
	Converged
	MaxIterationsReached
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "Converged"
	case MaxIterationsReached:
		return "MaxIterationsReached"
	default:
		return "NotStarted"
	}
}

// Result is the outcome of a minimizer run.
type Result struct {
	X        vecmat.Vec
	F        float64
	Gradient vecmat.Vec // nil when the minimizer is derivative-free
	Status   Status
	Iters    int
}

// Config holds the universal convergence/iteration-budget fields shared
// by every minimizer, plus the finite-difference step eps used when a
// caller supplies an objective without an analytic gradient.
type Config struct {
	Tol     float64
	MaxIter int
	Eps     float64
}

// DefaultConfig returns tol=1e-8, maxIter=1000, eps=1e-6.
func DefaultConfig() Config {
	return Config{Tol: 1e-8, MaxIter: 1000, Eps: 1e-6}
}

// GoldenConfig returns the golden-section sub-configuration derived
// from c, used by Powell's per-direction line search.
func (c Config) GoldenConfig() linesearch.GoldenConfig {
	return linesearch.GoldenConfig{H: 0.01, Tol: c.Tol, MaxIter: 100}
}

// WolfeConfig returns the strong-Wolfe sub-configuration derived from
// c, used by CG, Newton-CG, and BFGS.
func (c Config) WolfeConfig() linesearch.WolfeConfig {
	return linesearch.DefaultWolfeConfig()
}

// Objective is a scalar function of a vector argument.
type Objective func(x vecmat.Vec) float64

// GradientFunc is the gradient of an Objective.
type GradientFunc func(x vecmat.Vec) vecmat.Vec

// HessianVectorProduct computes Hessian(x)*v without forming the
// Hessian explicitly, used by Newton-CG and Steihaug's inner loop.
type HessianVectorProduct func(x, v vecmat.Vec) vecmat.Vec

// Minimizer is the capability every derivative-free method satisfies.
type Minimizer interface {
	Minimize(f Objective, x0 vecmat.Vec) (Result, error)
}

// GradientAwareMinimizer is the capability satisfied by methods that
// consume (and report) a gradient.
type GradientAwareMinimizer interface {
	MinimizeWithGradient(f Objective, grad GradientFunc, x0 vecmat.Vec) (Result, error)
}

// checkFinite signals NumericalBlowup if v holds a NaN or +-Inf element,
// the sign that an inner step (a line search, a Hessian-vector product, a
// CG recursion) has diverged rather than merely failed to converge.
func checkFinite(v vecmat.Vec, where string) error {
	if v.HasNaNOrInf() {
		return opterr.NumericalBlowup{Where: where}
	}
	return nil
}
