package simplex

import (
	"math"

	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// linearizeTol bounds the affine-fit probe's mismatch tolerance.
const linearizeTol = 1e-9

// Linearize recovers a linear Constraint from a general closure
// g: R^n -> R by probing it at {0, e1, ..., en}. The probes fix an
// affine candidate c0 + coeffs.x; a further probe at the sum of every
// unit vector confirms g actually agrees with that candidate there.
// Disagreement beyond linearizeTol means g is not affine, and
// Linearize reports opterr.NonLinearConstraint{Index: index}.
func Linearize(n int, g func(vecmat.Vec) float64, op Op, rhs float64, index int) (Constraint, error) {
	c0 := g(vecmat.Zeros(n))
	coeffs := make(vecmat.Vec, n)
	for j := 0; j < n; j++ {
		coeffs[j] = g(vecmat.Zeros(n).With(j, 1)) - c0
	}

	probe := vecmat.Zeros(n)
	predicted := c0
	for j := 0; j < n; j++ {
		probe = probe.With(j, 1)
		predicted += coeffs[j]
	}
	if math.Abs(g(probe)-predicted) > linearizeTol {
		return Constraint{}, opterr.NonLinearConstraint{Index: index}
	}

	return Constraint{Coeffs: coeffs, Op: op, Rhs: rhs - c0}, nil
}

// SubjectToFunc linearizes g via Linearize and, on success, appends the
// resulting Constraint to p. g is evaluated n+2 times, n the dimension
// of p.Objective, to probe and verify the affine fit. On failure p is
// returned unchanged alongside the opterr.NonLinearConstraint error.
func (p *Problem) SubjectToFunc(g func(vecmat.Vec) float64, op Op, rhs float64) (*Problem, error) {
	c, err := Linearize(p.Objective.Dim(), g, op, rhs, len(p.Constraints))
	if err != nil {
		return p, err
	}
	p.Constraints = append(p.Constraints, c)
	return p, nil
}
