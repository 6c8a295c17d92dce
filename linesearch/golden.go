// Package linesearch provides the one-dimensional search primitives
// shared by every minimizer in the optimize package: golden-section
// bracketing and minimization for derivative-free directions, and a
// strong-Wolfe step-length search for gradient-aware ones.
package linesearch

import (
	"math"

	"github.com/bruneli/scalaopt-sub001/opterr"
)

const goldenRatio = 1.618033988749895 // phi = (1 + sqrt(5)) / 2
const goldenSection = 0.6180339887498949 // r = (sqrt(5) - 1) / 2

// GoldenConfig configures golden-section bracketing and minimization.
type GoldenConfig struct {
	H       float64 // initial step used while bracketing
	Tol     float64 // terminal interval width
	MaxIter int     // maximum bracket extensions
}

// DefaultGoldenConfig returns h=0.01, tol=1e-9, maxIter=100. Powell's
// per-direction search (optimize.Config.GoldenConfig) uses the same h
// and maxIter with the minimizer's own Tol.
func DefaultGoldenConfig() GoldenConfig {
	return GoldenConfig{H: 0.01, Tol: 1e-9, MaxIter: 100}
}

// Bracket finds an interval (a, b) containing a local minimum of f near
// x1, extending geometrically in the downhill direction by phi*h at
// each step until f increases. It fails with opterr.MaxIter after
// cfg.MaxIter extensions without success.
func Bracket(f func(float64) float64, x1 float64, cfg GoldenConfig) (a, b float64, err error) {
	h := cfg.H
	if h == 0 {
		h = DefaultGoldenConfig().H
	}

	x0 := x1
	f0 := f(x0)
	step := h
	x2 := x1 + step
	f2 := f(x2)
	if f2 > f0 {
		// Downhill direction is actually the other way.
		step = -step
		x2 = x1 + step
		f2 = f(x2)
	}
	// xPrev is the point behind x1 along the search direction: once f
	// increases at x2, the minimum lies between xPrev and x2.
	xPrev := x1 - step

	for i := 0; i < cfg.MaxIter; i++ {
		if f2 > f0 {
			lo, hi := xPrev, x2
			if lo > hi {
				lo, hi = hi, lo
			}
			return lo, hi, nil
		}
		xPrev = x1
		x1, f0 = x2, f2
		step *= goldenRatio
		x2 = x1 + step
		f2 = f(x2)
	}
	return 0, 0, opterr.MaxIter{Where: "linesearch.Bracket", Limit: cfg.MaxIter}
}

// Minimize contracts [a, b] using the golden section ratio for exactly
// ceil(ln(tol/|b-a|) / ln(r)) iterations (at least one), returning the minimizing
// point and its function value.
func Minimize(f func(float64) float64, a, b float64, cfg GoldenConfig) (xMin, fMin float64) {
	tol := cfg.Tol
	if tol == 0 {
		tol = DefaultGoldenConfig().Tol
	}
	width := math.Abs(b - a)
	if width == 0 {
		return a, f(a)
	}

	n := int(math.Ceil(math.Log(tol/width) / math.Log(goldenSection)))
	if n < 1 {
		n = 1
	}

	r := goldenSection
	c1 := b - r*(b-a)
	c2 := a + r*(b-a)
	f1 := f(c1)
	f2 := f(c2)

	for i := 0; i < n; i++ {
		if f1 < f2 {
			b = c2
			c2, f2 = c1, f1
			c1 = b - r*(b-a)
			f1 = f(c1)
		} else {
			a = c1
			c1, f1 = c2, f2
			c2 = a + r*(b-a)
			f2 = f(c2)
		}
	}

	if f1 < f2 {
		return c1, f1
	}
	return c2, f2
}

// BracketAndMinimize is the composition Bracket then Minimize, the
// usual entry point for a derivative-free direction search (Powell).
func BracketAndMinimize(f func(float64) float64, x0 float64, cfg GoldenConfig) (xMin, fMin float64, err error) {
	a, b, err := Bracket(f, x0, cfg)
	if err != nil {
		return 0, 0, err
	}
	xMin, fMin = Minimize(f, a, b, cfg)
	return xMin, fMin, nil
}
