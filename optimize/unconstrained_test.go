package optimize

import (
	"math"
	"testing"

	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// quadraticBowl is f(x) = 0.5 * ||x||^2, the standard convergence smoke
// test: gradient x, Hessian I.
func quadraticBowl(x vecmat.Vec) float64 {
	return 0.5 * x.Norm2()
}

func quadraticBowlGrad(x vecmat.Vec) vecmat.Vec {
	return x
}

func quadraticBowlHv(_, v vecmat.Vec) vecmat.Vec {
	return v
}

// linearMonotone is f(x) = x0 + x1, unbounded below: every minimizer
// assuming a bounded minimum must fail with MaxIter.
func linearMonotone(x vecmat.Vec) float64 {
	return x.At(0) + x.At(1)
}

func linearMonotoneGrad(x vecmat.Vec) vecmat.Vec {
	return vecmat.NewVec([]float64{1, 1})
}

func testConfig() Config {
	return Config{Tol: 1e-6, MaxIter: 200, Eps: 1e-6}
}

// blowupGrad is a gradient that is always +Inf, standing in for a model
// whose derivative genuinely diverges at the current iterate.
func blowupGrad(x vecmat.Vec) vecmat.Vec {
	g := make(vecmat.Vec, x.Dim())
	for i := range g {
		g[i] = math.Inf(1)
	}
	return g
}

func TestNelderMeadQuadraticBowl(t *testing.T) {
	res, err := NewNelderMead(testConfig()).Minimize(quadraticBowl, vecmat.NewVec([]float64{3, -2}))
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if res.X.Norm() > 1e-3 {
		t.Errorf("||x|| = %v, want near 0", res.X.Norm())
	}
}

func TestNelderMeadLinearMonotoneFails(t *testing.T) {
	cfg := Config{Tol: 1e-10, MaxIter: 50, Eps: 1e-6}
	_, err := NewNelderMead(cfg).Minimize(linearMonotone, vecmat.NewVec([]float64{0, 0}))
	if err == nil {
		t.Fatalf("expected MaxIter failure on an unbounded objective")
	}
}

func TestPowellQuadraticBowl(t *testing.T) {
	res, err := NewPowell(testConfig()).Minimize(quadraticBowl, vecmat.NewVec([]float64{5, 5}))
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if res.X.Norm() > 1e-2 {
		t.Errorf("||x|| = %v, want near 0", res.X.Norm())
	}
}

func TestCGQuadraticBowl(t *testing.T) {
	for _, rule := range []BetaRule{FletcherReeves, PolakRibiere, PolakRibierePlus} {
		cg := NewCG(testConfig())
		cg.Beta = rule
		res, err := cg.MinimizeWithGradient(quadraticBowl, quadraticBowlGrad, vecmat.NewVec([]float64{4, -3}))
		if err != nil {
			t.Fatalf("rule %v: MinimizeWithGradient: %v", rule, err)
		}
		if res.X.Norm() > 1e-3 {
			t.Errorf("rule %v: ||x|| = %v, want near 0", rule, res.X.Norm())
		}
	}
}

func TestCGNumericalBlowup(t *testing.T) {
	_, err := NewCG(testConfig()).MinimizeWithGradient(quadraticBowl, blowupGrad, vecmat.NewVec([]float64{1, 1}))
	if _, ok := err.(opterr.NumericalBlowup); !ok {
		t.Fatalf("err = %v (%T), want opterr.NumericalBlowup", err, err)
	}
}

func TestBFGSQuadraticBowl(t *testing.T) {
	res, err := NewBFGS(testConfig()).MinimizeWithGradient(quadraticBowl, quadraticBowlGrad, vecmat.NewVec([]float64{1, 2, 3}))
	if err != nil {
		t.Fatalf("MinimizeWithGradient: %v", err)
	}
	if res.X.Norm() > 1e-3 {
		t.Errorf("||x|| = %v, want near 0", res.X.Norm())
	}
}

func TestBFGSLinearMonotoneFails(t *testing.T) {
	cfg := Config{Tol: 1e-10, MaxIter: 50, Eps: 1e-6}
	_, err := NewBFGS(cfg).MinimizeWithGradient(linearMonotone, linearMonotoneGrad, vecmat.NewVec([]float64{0, 0}))
	if err == nil {
		t.Fatalf("expected MaxIter failure on an unbounded objective")
	}
}

func TestBFGSNumericalBlowup(t *testing.T) {
	_, err := NewBFGS(testConfig()).MinimizeWithGradient(quadraticBowl, blowupGrad, vecmat.NewVec([]float64{1, 1}))
	if _, ok := err.(opterr.NumericalBlowup); !ok {
		t.Fatalf("err = %v (%T), want opterr.NumericalBlowup", err, err)
	}
}

func TestNewtonCGQuadraticBowl(t *testing.T) {
	ncg := NewNewtonCG(testConfig(), quadraticBowlHv)
	res, err := ncg.MinimizeWithGradient(quadraticBowl, quadraticBowlGrad, vecmat.NewVec([]float64{2, 2}))
	if err != nil {
		t.Fatalf("MinimizeWithGradient: %v", err)
	}
	if res.X.Norm() > 1e-3 {
		t.Errorf("||x|| = %v, want near 0", res.X.Norm())
	}
}

func TestNewtonCGNumericalBlowup(t *testing.T) {
	ncg := NewNewtonCG(testConfig(), quadraticBowlHv)
	_, err := ncg.MinimizeWithGradient(quadraticBowl, blowupGrad, vecmat.NewVec([]float64{1, 1}))
	if _, ok := err.(opterr.NumericalBlowup); !ok {
		t.Fatalf("err = %v (%T), want opterr.NumericalBlowup", err, err)
	}
}

func TestSteihaugCGQuadraticBowl(t *testing.T) {
	scg := NewSteihaugCG(testConfig(), quadraticBowlHv)
	res, err := scg.MinimizeWithGradient(quadraticBowl, quadraticBowlGrad, vecmat.NewVec([]float64{10, -10}))
	if err != nil {
		t.Fatalf("MinimizeWithGradient: %v", err)
	}
	if res.X.Norm() > 1e-2 {
		t.Errorf("||x|| = %v, want near 0", res.X.Norm())
	}
}

func TestSteihaugCGNumericalBlowup(t *testing.T) {
	scg := NewSteihaugCG(testConfig(), quadraticBowlHv)
	_, err := scg.MinimizeWithGradient(quadraticBowl, blowupGrad, vecmat.NewVec([]float64{1, 1}))
	if _, ok := err.(opterr.NumericalBlowup); !ok {
		t.Fatalf("err = %v (%T), want opterr.NumericalBlowup", err, err)
	}
}

func TestForwardDifferenceGradientMatchesAnalytic(t *testing.T) {
	x := vecmat.NewVec([]float64{1, 2, 3})
	approx := ForwardDifferenceGradient(quadraticBowl, x, 1e-6)
	exact := quadraticBowlGrad(x)
	if !vecmat.ApproxEqual(approx, exact, 1e-3) {
		t.Errorf("ForwardDifferenceGradient = %v, want approx %v", approx, exact)
	}
}

func TestBFGSWithoutAnalyticGradient(t *testing.T) {
	res, err := NewBFGS(testConfig()).MinimizeWithGradient(quadraticBowl, nil, vecmat.NewVec([]float64{2, -1}))
	if err != nil {
		t.Fatalf("MinimizeWithGradient: %v", err)
	}
	if res.X.Norm() > 1e-2 {
		t.Errorf("||x|| = %v, want near 0", res.X.Norm())
	}
}

func TestNelderMeadZeroDimensional(t *testing.T) {
	_, err := NewNelderMead(testConfig()).Minimize(quadraticBowl, vecmat.Zeros(0))
	if err == nil {
		t.Fatalf("expected an error for a zero-dimensional start point")
	}
}

func TestPowellRosenbrock(t *testing.T) {
	rosenbrock := func(x vecmat.Vec) float64 {
		a := 1 - x.At(0)
		b := x.At(1) - x.At(0)*x.At(0)
		return a*a + 100*b*b
	}
	cfg := Config{Tol: 1e-6, MaxIter: 500, Eps: 1e-6}
	res, err := NewPowell(cfg).Minimize(rosenbrock, vecmat.NewVec([]float64{-1.2, 1}))
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	want := vecmat.NewVec([]float64{1, 1})
	if !vecmat.ApproxEqual(res.X, want, 1e-2) {
		t.Errorf("X = %v, want approx %v", res.X, want)
	}
}

func TestBFGSRosenbrock(t *testing.T) {
	rosenbrock := func(x vecmat.Vec) float64 {
		a := 1 - x.At(0)
		b := x.At(1) - x.At(0)*x.At(0)
		return a*a + 100*b*b
	}
	rosenbrockGrad := func(x vecmat.Vec) vecmat.Vec {
		x0, x1 := x.At(0), x.At(1)
		dx0 := -2*(1-x0) - 400*x0*(x1-x0*x0)
		dx1 := 200 * (x1 - x0*x0)
		return vecmat.NewVec([]float64{dx0, dx1})
	}
	cfg := Config{Tol: 1e-8, MaxIter: 500, Eps: 1e-6}
	res, err := NewBFGS(cfg).MinimizeWithGradient(rosenbrock, rosenbrockGrad, vecmat.NewVec([]float64{-1.2, 1}))
	if err != nil {
		t.Fatalf("MinimizeWithGradient: %v", err)
	}
	want := vecmat.NewVec([]float64{1, 1})
	if !vecmat.ApproxEqual(res.X, want, 1e-3) {
		t.Errorf("X = %v, want approx %v", res.X, want)
	}
}
