package simplex

import (
	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// Method selects the pivot engine a Problem is solved with. StandardSimplex
// is presently the only one.
type Method int

const StandardSimplex Method = 0

// Solve runs the two-phase tableau simplex method on p and is equivalent to
// p.SolveWith(StandardSimplex).
func (p *Problem) Solve() (Result, error) {
	return p.SolveWith(StandardSimplex)
}

// SolveWith runs method on p. maxPivots bounds the pivot count at m*n, with
// m the number of constraint rows and n the number of tableau columns after
// canonicalization, guaranteeing termination even under cycling.
func (p *Problem) SolveWith(method Method) (Result, error) {
	n := p.Objective.Dim()
	if n == 0 {
		return Result{}, opterr.ErrZeroDimensional
	}
	for _, c := range p.Constraints {
		if c.Coeffs.Dim() != n {
			return Result{}, opterr.InvalidArgument{Reason: "constraint coefficient length does not match objective"}
		}
	}

	if p.negSplit {
		return p.solveSplit(n)
	}

	t, status, err := solveTableau(p)
	if err != nil {
		return Result{Status: status}, err
	}

	x := t.decisionVector(n)
	return Result{X: x, Objective: objectiveOf(p, x), Status: status}, nil
}

// solveTableau runs the two-phase method on p and returns the final
// tableau alongside its terminal Status, so callers that need more than
// the decision vector (Dual's complementary-slackness recovery) can read
// the basis and reduced costs directly.
func solveTableau(p *Problem) (*tableau, Status, error) {
	t := canonicalize(p)
	m := len(t.b)
	maxPivots := m * len(t.meta)
	if maxPivots == 0 {
		maxPivots = 1
	}

	p1Cost := phase1Cost(t.meta)
	hasArtificial := false
	artificial := make(map[int]bool, len(t.meta))
	for j, mcol := range t.meta {
		if mcol.isArtificial {
			hasArtificial = true
			artificial[j] = true
		}
	}

	if hasArtificial {
		status := t.runPhase(p1Cost, nil, maxPivots)
		if status == MaxIterationsReached {
			return t, MaxIterationsReached, opterr.MaxIter{Where: "simplex.phase1", Limit: maxPivots}
		}
		if obj := t.objectiveValue(p1Cost); obj > 1e-7 {
			return t, Infeasible, opterr.Infeasible{Phase1Objective: obj}
		}
		// Drive any artificial column still basic at zero level out of the
		// basis before dropping phase-1 bookkeeping, so phase-2 pivoting
		// never reintroduces it.
		t.expelBasicArtificials(artificial)
	}

	p2Cost := phase2Cost(t.meta)
	status := t.runPhase(p2Cost, artificial, maxPivots)

	switch status {
	case Optimal:
		return t, Optimal, nil
	case Unbounded:
		return t, Unbounded, opterr.Unbounded{EnteringColumn: -1}
	default:
		return t, MaxIterationsReached, opterr.MaxIter{Where: "simplex.phase2", Limit: maxPivots}
	}
}

// decisionVector reads off the first n tableau columns (the user's original
// decision variables, before slack/excess/artificial columns were appended)
// from the current basis: basic columns take their row's right-hand side,
// non-basic columns are zero. This is the canonical mapping from the final
// basis back to the user's decision-variable vector.
func (t *tableau) decisionVector(n int) vecmat.Vec {
	x := make(vecmat.Vec, n)
	for row, col := range t.basis {
		if col < n {
			x[col] = t.b[row]
		}
	}
	return x
}

// expelBasicArtificials pivots any artificial column still basic (necessarily
// at value 0, since phase 1 reached optimality) out of the basis, replacing
// it with the first structural or slack column that has a nonzero
// coefficient in that row. A row with no such column is redundant and is
// left with its artificial column basic at 0; phase 2 excludes artificial
// columns from entering, so this does not affect the phase-2 optimum.
func (t *tableau) expelBasicArtificials(artificial map[int]bool) {
	for row, col := range t.basis {
		if !artificial[col] {
			continue
		}
		for j := range t.meta {
			if artificial[j] || t.A[row][j] == 0 {
				continue
			}
			t.pivot(row, j)
			break
		}
	}
}

func objectiveOf(p *Problem, x vecmat.Vec) float64 {
	v, _ := p.Objective.Dot(x)
	return v
}

// solveSplit solves p under the x = x+ - x- splitting trick: a 2n-variable
// problem with x+ and x- each constrained >= 0 by the tableau's implicit
// bound, then recombines the two halves of the solution.
func (p *Problem) solveSplit(n int) (Result, error) {
	split := &Problem{Minimize: p.Minimize, Objective: splitVec(p.Objective)}
	for _, c := range p.Constraints {
		split.Constraints = append(split.Constraints, Constraint{
			Coeffs: splitVec(c.Coeffs),
			Op:     c.Op,
			Rhs:    c.Rhs,
		})
	}

	res, err := split.SolveWith(StandardSimplex)
	if err != nil {
		return res, err
	}

	x := make(vecmat.Vec, n)
	for i := 0; i < n; i++ {
		x[i] = res.X[i] - res.X[n+i]
	}
	return Result{X: x, Objective: objectiveOf(p, x), Status: Optimal}, nil
}

// splitVec returns [v, -v], doubling v's dimension so that a column j < n
// carries x+_j's coefficient and column n+j carries x-_j's (negated)
// coefficient.
func splitVec(v vecmat.Vec) vecmat.Vec {
	n := v.Dim()
	out := make(vecmat.Vec, 2*n)
	for i := 0; i < n; i++ {
		out[i] = v.At(i)
		out[n+i] = -v.At(i)
	}
	return out
}
