package linesearch

import (
	"math"
	"testing"

	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// quadraticBowl is f(x) = 0.5 * sum(x_i^2), with gradient x itself.
func quadraticBowl(x vecmat.Vec) (float64, vecmat.Vec) {
	return 0.5 * x.Norm2(), x
}

func TestSearchQuadraticBowl(t *testing.T) {
	x0 := vecmat.NewVec([]float64{3, -4})
	d := x0.Neg() // steepest descent direction

	phi := func(alpha float64) float64 {
		f, _ := quadraticBowl(stepTo(x0, d, alpha))
		return f
	}
	dphi := func(alpha float64) float64 {
		_, g := quadraticBowl(stepTo(x0, d, alpha))
		dot, _ := g.Dot(d)
		return dot
	}

	alpha, err := Search(phi, dphi, DefaultWolfeConfig())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if alpha <= 0 {
		t.Errorf("alpha = %v, want > 0", alpha)
	}
	// A steepest-descent direction on a quadratic bowl should land well
	// inside the Wolfe conditions near alpha=1.
	xNew := stepTo(x0, d, alpha)
	if xNew.Norm() >= x0.Norm() {
		t.Errorf("||xNew|| = %v, ||x0|| = %v: line search did not decrease distance to the minimum", xNew.Norm(), x0.Norm())
	}
}

func TestSearchPointQuadraticBowl(t *testing.T) {
	x0 := vecmat.NewVec([]float64{1, 2, -3})
	f0, g0 := quadraticBowl(x0)
	p := Point{F: quadraticBowl, X: x0, Fx: f0, GradX: g0, D: g0.Neg(), D2FxD: math.NaN()}

	next, err := SearchPoint(p, DefaultWolfeConfig())
	if err != nil {
		t.Fatalf("SearchPoint: %v", err)
	}
	if next.Fx >= p.Fx {
		t.Errorf("Fx did not decrease: %v -> %v", p.Fx, next.Fx)
	}
	if next.GradX.Norm() >= p.GradX.Norm() {
		t.Errorf("||grad|| did not decrease: %v -> %v", p.GradX.Norm(), next.GradX.Norm())
	}
}

func TestSearchRejectsAscentDirection(t *testing.T) {
	x0 := vecmat.NewVec([]float64{1})
	phi := func(alpha float64) float64 {
		f, _ := quadraticBowl(stepTo(x0, vecmat.NewVec([]float64{1}), alpha))
		return f
	}
	dphi := func(alpha float64) float64 {
		_, g := quadraticBowl(stepTo(x0, vecmat.NewVec([]float64{1}), alpha))
		dot, _ := g.Dot(vecmat.NewVec([]float64{1}))
		return dot
	}
	_, err := Search(phi, dphi, DefaultWolfeConfig())
	if err == nil {
		t.Fatalf("Search should reject a non-descent direction")
	}
}
