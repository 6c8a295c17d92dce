package optimize

import (
	"github.com/bruneli/scalaopt-sub001/linesearch"
	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// Powell is a derivative-free direction-set minimizer. It satisfies
// Minimizer.
type Powell struct {
	Config Config
}

// NewPowell returns a Powell minimizer with cfg.
func NewPowell(cfg Config) Powell {
	return Powell{Config: cfg}
}

// singularityShrinkFactor bounds how much the direction set's determinant
// magnitude may shrink when a direction is replaced; below this ratio the
// replacement is considered to be collapsing the set toward a lower-
// dimensional subspace.
const singularityShrinkFactor = 1e-4

// Minimize runs Powell's method from x0, replacing at each outer
// iteration the direction of largest decrease with the net travel
// direction, Powell's classical safeguard against the direction set
// collapsing into a lower-dimensional subspace. The replacement is
// additionally guarded by tracking the direction matrix's determinant
// magnitude, so the direction set stays linearly independent across
// iterations: if swapping in the net travel direction would shrink |det|
// by more than singularityShrinkFactor, the swap is skipped for that
// iteration and the oldest direction is dropped instead (Press et al.,
// Numerical Recipes' fallback for this exact situation).
func (p Powell) Minimize(f Objective, x0 vecmat.Vec) (Result, error) {
	n := x0.Dim()
	if n == 0 {
		return Result{}, opterr.ErrZeroDimensional
	}

	directions := identityDirections(n)
	detCur := directionDeterminant(directions)
	oldest := 0
	x := x0
	golden := p.Config.GoldenConfig()

	for iter := 0; iter < p.Config.MaxIter; iter++ {
		x0k := x
		xPrev := x
		iMax := 0
		maxDecrease := 0.0

		for i := 0; i < n; i++ {
			fPrev := f(xPrev)
			xNext, err := lineMinimize(f, xPrev, directions[i], golden)
			if err != nil {
				return Result{}, err
			}
			decrease := fPrev - f(xNext)
			if decrease > maxDecrease {
				maxDecrease = decrease
				iMax = i
			}
			xPrev = xNext
		}

		newDirection, err := xPrev.Sub(x0k)
		if err != nil {
			return Result{}, err
		}
		xNext, err := lineMinimize(f, xPrev, newDirection, golden)
		if err != nil {
			return Result{}, err
		}

		if newDirection.Norm() > 1e-12 {
			replace := iMax
			trial := append(append([]vecmat.Vec{}, directions...))
			trial[replace] = newDirection
			detTrial := directionDeterminant(trial)

			if detCur == 0 || absFloat(detTrial) >= singularityShrinkFactor*absFloat(detCur) {
				directions[replace] = newDirection
				detCur = detTrial
			} else {
				directions[oldest] = newDirection
				detCur = directionDeterminant(directions)
				oldest = (oldest + 1) % n
			}
		}

		step, err := xNext.Sub(x)
		if err != nil {
			return Result{}, err
		}
		x = xNext
		if step.Norm() < p.Config.Tol {
			return Result{X: x, F: f(x), Status: Converged, Iters: iter}, nil
		}
	}

	return Result{X: x, F: f(x), Status: MaxIterationsReached, Iters: p.Config.MaxIter}, opterr.MaxIter{Where: "Powell.Minimize", Limit: p.Config.MaxIter}
}

// directionDeterminant returns the determinant of the n x n matrix whose
// rows are dirs, via Gaussian elimination with partial pivoting.
func directionDeterminant(dirs []vecmat.Vec) float64 {
	n := len(dirs)
	a := make([][]float64, n)
	for i, d := range dirs {
		row := make([]float64, n)
		copy(row, d)
		a[i] = row
	}

	det := 1.0
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if absFloat(a[r][col]) > absFloat(a[pivot][col]) {
				pivot = r
			}
		}
		if a[pivot][col] == 0 {
			return 0
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
			det = -det
		}
		det *= a[col][col]
		for r := col + 1; r < n; r++ {
			factor := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
		}
	}
	return det
}

func identityDirections(n int) []vecmat.Vec {
	dirs := make([]vecmat.Vec, n)
	for i := range dirs {
		dirs[i] = vecmat.Zeros(n).With(i, 1)
	}
	return dirs
}

func lineMinimize(f Objective, x, d vecmat.Vec, golden linesearch.GoldenConfig) (vecmat.Vec, error) {
	phi := func(alpha float64) float64 {
		xNew, _ := x.Add(d.Scale(alpha))
		return f(xNew)
	}
	alpha, _, err := linesearch.BracketAndMinimize(phi, 0, golden)
	if err != nil {
		return nil, err
	}
	return x.Add(d.Scale(alpha))
}
