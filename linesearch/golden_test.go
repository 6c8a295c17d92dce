package linesearch

import (
	"math"
	"testing"
)

func TestBracketQuadratic(t *testing.T) {
	f := func(x float64) float64 { return x * x }
	a, b, err := Bracket(f, 4.0, DefaultGoldenConfig())
	if err != nil {
		t.Fatalf("Bracket: %v", err)
	}
	if !(a < 0 && b > 0) {
		t.Errorf("Bracket(x^2, 4.0) = (%v, %v), want a<0<b", a, b)
	}
}

func TestMinimizeQuadratic(t *testing.T) {
	f := func(x float64) float64 { return x * x }
	a, b, err := Bracket(f, 4.0, DefaultGoldenConfig())
	if err != nil {
		t.Fatalf("Bracket: %v", err)
	}
	xMin, _ := Minimize(f, a, b, DefaultGoldenConfig())
	if math.Abs(xMin) >= 1e-5 {
		t.Errorf("Minimize(x^2) = %v, want |x| < 1e-5", xMin)
	}
}

func TestBracketAndMinimizeShiftedParabola(t *testing.T) {
	f := func(x float64) float64 { d := x - 3; return d*d + 1 }
	xMin, fMin, err := BracketAndMinimize(f, -10, DefaultGoldenConfig())
	if err != nil {
		t.Fatalf("BracketAndMinimize: %v", err)
	}
	if math.Abs(xMin-3) > 1e-4 {
		t.Errorf("xMin = %v, want approx 3", xMin)
	}
	if math.Abs(fMin-1) > 1e-4 {
		t.Errorf("fMin = %v, want approx 1", fMin)
	}
}

func TestBracketMonotoneFails(t *testing.T) {
	f := func(x float64) float64 { return -x }
	_, _, err := Bracket(f, 0, GoldenConfig{H: 0.1, Tol: 1e-9, MaxIter: 20})
	if err == nil {
		t.Fatalf("Bracket on a monotone function should fail with MaxIter")
	}
}
