package simplex

import (
	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// Dual builds the symmetric LP dual of p: "maximize c.x subject to A.x <=
// b, x >= 0" becomes "minimize b.y subject to A^T.y >= c, y >= 0" (every
// inequality constraint of the primal becomes a dual variable, and every
// primal variable bound becomes a dual constraint). p must already be in
// that standard form: a maximization with every constraint LE. Use this
// directly when the dual variables (shadow prices) are themselves the
// quantity of interest, or via SolveDual to recover the primal decision
// vector.
func Dual(p *Problem) (*Problem, error) {
	if p.Minimize {
		return nil, opterr.InvalidArgument{Reason: "Dual requires a maximization problem in standard form"}
	}
	n := p.Objective.Dim()
	m := len(p.Constraints)
	for _, c := range p.Constraints {
		if c.Op != LE {
			return nil, opterr.InvalidArgument{Reason: "Dual requires every constraint to be LE"}
		}
	}

	b := make(vecmat.Vec, m)
	for i, c := range p.Constraints {
		b[i] = c.Rhs
	}

	dual := Min(b)
	dual.Constraints = make([]Constraint, n)
	for j := 0; j < n; j++ {
		col := make(vecmat.Vec, m)
		for i, c := range p.Constraints {
			col[i] = c.Coeffs.At(j)
		}
		dual.Constraints[j] = Constraint{Coeffs: col, Op: GE, Rhs: p.Objective.At(j)}
	}
	return dual, nil
}

// SolveDual solves p by building and pivoting its dual (per Dual) and
// recovering the primal decision vector from complementary slackness: at
// a dual optimum, the reduced cost of the surplus (excess) column
// introduced for dual constraint j equals the primal optimal x_j. The
// primal path (SolveWith) uses the more direct decisionVector mapping
// instead, and the two must agree up to the solver's tolerance on any
// problem where both apply.
func SolveDual(p *Problem) (Result, error) {
	dual, err := Dual(p)
	if err != nil {
		return Result{}, err
	}

	t, status, err := solveTableau(dual)
	if err != nil {
		return Result{Status: status}, err
	}

	n := p.Objective.Dim()
	x := make(vecmat.Vec, n)
	rc := t.reducedCosts(phase2Cost(t.meta))
	for j := 0; j < n; j++ {
		if col := t.excessCol[j]; col >= 0 {
			x[j] = rc[col]
		}
	}

	return Result{X: x, Objective: objectiveOf(p, x), Status: status}, nil
}
