package optimize

import (
	"math"
	"sort"

	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

const (
	nmReflect  = 2.0
	nmExpand   = 1.0
	nmContract = 0.5
	nmShrink   = 0.5
	nmRelDelta = 0.05
	nmAbsDelta = 2.5e-4
)

// vertex is one point of the Nelder-Mead simplex.
type vertex struct {
	x vecmat.Vec
	f float64
}

// NelderMead is a derivative-free simplex minimizer. It satisfies
// Minimizer.
type NelderMead struct {
	Config Config
}

// NewNelderMead returns a NelderMead minimizer with cfg.
func NewNelderMead(cfg Config) NelderMead {
	return NelderMead{Config: cfg}
}

// Minimize runs Nelder-Mead from x0. The iteration cap is maxIter*(n+1)
// per §4.4.
func (nm NelderMead) Minimize(f Objective, x0 vecmat.Vec) (Result, error) {
	n := x0.Dim()
	if n == 0 {
		return Result{}, opterr.ErrZeroDimensional
	}

	verts := initSimplex(f, x0)
	sortVerts(verts)

	maxIter := nm.Config.MaxIter * (n + 1)
	iters := 0
	for ; iters < maxIter; iters++ {
		vmin := verts[0]
		vmax := verts[n]
		centroid := centroidExcluding(verts, n)
		m, _ := centroid.Sub(vmax.x)

		if m.Norm()/math.Sqrt(float64(n+1)) < nm.Config.Tol {
			return Result{X: vmin.x, F: vmin.f, Status: Converged, Iters: iters}, nil
		}

		reflected := vertexAt(f, vmax.x, m, nmReflect)
		switch {
		case reflected.f < vmin.f:
			expanded := vertexAt(f, vmax.x, m, nmReflect+nmExpand)
			if expanded.f < reflected.f {
				verts = replaceWorst(verts, expanded)
			} else {
				verts = replaceWorst(verts, reflected)
			}
		case reflected.f <= vmax.f:
			verts = replaceWorst(verts, reflected)
		default:
			contracted := vertexAt(f, vmax.x, m, nmContract)
			if contracted.f <= vmax.f {
				verts = replaceWorst(verts, contracted)
			} else {
				verts = shrinkTowards(f, verts, vmin.x)
			}
		}
	}

	return Result{X: verts[0].x, F: verts[0].f, Status: MaxIterationsReached, Iters: iters}, opterr.MaxIter{Where: "NelderMead.Minimize", Limit: maxIter}
}

func initSimplex(f Objective, x0 vecmat.Vec) []vertex {
	n := x0.Dim()
	verts := make([]vertex, n+1)
	verts[0] = vertex{x: x0, f: f(x0)}
	for i := 0; i < n; i++ {
		shift := x0.At(i) * nmRelDelta
		if x0.At(i) == 0 {
			shift = nmAbsDelta
		}
		xi := x0.With(i, x0.At(i)+shift)
		verts[i+1] = vertex{x: xi, f: f(xi)}
	}
	return verts
}

func sortVerts(verts []vertex) {
	sort.Slice(verts, func(i, j int) bool { return verts[i].f < verts[j].f })
}

func centroidExcluding(verts []vertex, worstIdx int) vecmat.Vec {
	n := verts[0].x.Dim()
	sum := vecmat.Zeros(n)
	count := 0
	for i, v := range verts {
		if i == worstIdx {
			continue
		}
		sum, _ = sum.Add(v.x)
		count++
	}
	return sum.Scale(1 / float64(count))
}

func vertexAt(f Objective, vmax, m vecmat.Vec, coeff float64) vertex {
	x, _ := vmax.Add(m.Scale(coeff))
	return vertex{x: x, f: f(x)}
}

// replaceWorst drops the last (worst) vertex, inserts the replacement
// in sorted position, and returns the re-sorted slice.
func replaceWorst(verts []vertex, replacement vertex) []vertex {
	verts[len(verts)-1] = replacement
	sortVerts(verts)
	return verts
}

func shrinkTowards(f Objective, verts []vertex, vmin vecmat.Vec) []vertex {
	for i := range verts {
		shrunk, _ := verts[i].x.Sub(vmin)
		shrunk = shrunk.Scale(nmShrink)
		x, _ := vmin.Add(shrunk)
		verts[i] = vertex{x: x, f: f(x)}
	}
	sortVerts(verts)
	return verts
}
