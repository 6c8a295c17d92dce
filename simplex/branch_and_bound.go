package simplex

import (
	"math"

	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// BranchAndBound solves p by relaxing every Binary/Discrete-kind variable
// (per p.Kinds) to continuous (Binary ones to the interval [0, 1]),
// solving the LP relaxation, and branching
// on the most significant fractional integral variable it finds into a
// floor and a ceiling sub-problem, recursing depth-first until every
// integral variable is integral (and every Binary variable is in {0,1})
// or a branch's relaxation is infeasible. tol bounds both the
// integrality check and the pruning comparison against the best integral
// objective found so far.
func BranchAndBound(p *Problem, tol float64) (Result, error) {
	n := p.Objective.Dim()
	integral := make([]bool, n)
	binary := make([]bool, n)
	for j := 0; j < n; j++ {
		if p.Kinds == nil || j >= len(p.Kinds) {
			continue
		}
		switch p.Kinds[j] {
		case Binary:
			integral[j] = true
			binary[j] = true
		case Discrete:
			integral[j] = true
		}
	}

	// Binary variables are relaxed to the interval [0, 1].
	var bounds []Constraint
	for j := 0; j < n; j++ {
		if binary[j] {
			bounds = append(bounds, Constraint{Coeffs: unit(n, j), Op: LE, Rhs: 1})
		}
	}

	type node struct {
		extra []Constraint
	}

	best := Result{}
	haveBest := false
	stack := []node{{}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		relaxed := &Problem{
			Minimize:    p.Minimize,
			Objective:   p.Objective,
			Constraints: append(append(append([]Constraint{}, p.Constraints...), bounds...), cur.extra...),
		}
		res, err := relaxed.SolveWith(StandardSimplex)
		if err != nil {
			continue // infeasible, unbounded, or exhausted sub-branch: prune
		}

		if haveBest {
			if p.Minimize && res.Objective >= best.Objective-tol {
				continue
			}
			if !p.Minimize && res.Objective <= best.Objective+tol {
				continue
			}
		}

		branchVar := -1
		for j := 0; j < n; j++ {
			if !integral[j] {
				continue
			}
			v := res.X[j]
			frac := v - math.Floor(v)
			if frac > tol && frac < 1-tol {
				branchVar = j
				break
			}
			if binary[j] && v > 1+tol {
				branchVar = j
				break
			}
		}

		if branchVar == -1 {
			best = res
			haveBest = true
			continue
		}

		v := res.X[branchVar]
		e := unit(n, branchVar)
		floorBranch := Constraint{Coeffs: e, Op: LE, Rhs: math.Floor(v)}
		ceilBranch := Constraint{Coeffs: e, Op: GE, Rhs: math.Ceil(v)}
		if binary[branchVar] {
			ceilBranch.Rhs = 1
		}

		stack = append(stack, node{extra: append(append([]Constraint{}, cur.extra...), floorBranch)})
		stack = append(stack, node{extra: append(append([]Constraint{}, cur.extra...), ceilBranch)})
	}

	if !haveBest {
		return Result{Status: Infeasible}, opterr.Infeasible{}
	}
	return best, nil
}

func unit(n, j int) vecmat.Vec {
	v := make(vecmat.Vec, n)
	v[j] = 1
	return v
}
