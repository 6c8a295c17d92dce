package simplex

import "github.com/bruneli/scalaopt-sub001/vecmat"

// canonicalize builds the initial tableau for p: every <= constraint
// gets a slack column (+1, naturally basic); every >= constraint gets
// an excess column (-1) plus an artificial column (+1, basic); every =
// constraint gets an artificial column (+1, basic). Rows with a
// negative right-hand side do not occur here, since canonicalize first
// flips them through withPositiveRhs.
func canonicalize(p *Problem) *tableau {
	m := len(p.Constraints)
	n := p.Objective.Dim()

	rows, b, ops := withPositiveRhs(p)

	extra := 0
	for _, op := range ops {
		switch op {
		case LE:
			extra++
		case GE:
			extra += 2
		case EQ:
			extra++
		}
	}
	totalCols := n + extra

	A := make([][]float64, m)
	meta := make([]colMeta, totalCols)
	basis := make([]int, m)

	for i := range A {
		A[i] = make([]float64, totalCols)
		copy(A[i], rows[i])
	}

	excessCol := make([]int, m)
	for i := range excessCol {
		excessCol[i] = -1
	}

	col := n
	for i, op := range ops {
		switch op {
		case LE:
			A[i][col] = 1
			meta[col] = colMeta{isSlack: true}
			basis[i] = col
			col++
		case GE:
			A[i][col] = -1
			meta[col] = colMeta{isSlack: true}
			excessCol[i] = col
			col++
			A[i][col] = 1
			meta[col] = colMeta{isArtificial: true}
			basis[i] = col
			col++
		case EQ:
			A[i][col] = 1
			meta[col] = colMeta{isArtificial: true}
			basis[i] = col
			col++
		}
	}

	cost2 := make([]float64, totalCols)
	sign := 1.0
	if !p.Minimize {
		sign = -1.0
	}
	for j := 0; j < n; j++ {
		cost2[j] = sign * p.Objective.At(j)
	}
	for j := range meta {
		meta[j].phase2Cost = cost2[j]
	}

	return &tableau{A: A, b: b, basis: basis, meta: meta, excessCol: excessCol}
}

// withPositiveRhs returns the constraint rows with b >= 0, flipping the
// sign of any row (and its operator) whose right-hand side started
// negative.
func withPositiveRhs(p *Problem) (rows [][]float64, b []float64, ops []Op) {
	m := len(p.Constraints)
	n := p.Objective.Dim()
	rows = make([][]float64, m)
	b = make([]float64, m)
	ops = make([]Op, m)

	for i, c := range p.Constraints {
		coeffs := make(vecmat.Vec, n)
		copy(coeffs, c.Coeffs)
		rhs := c.Rhs
		op := c.Op
		if rhs < 0 {
			coeffs = coeffs.Neg()
			rhs = -rhs
			switch op {
			case LE:
				op = GE
			case GE:
				op = LE
			}
		}
		rows[i] = coeffs
		b[i] = rhs
		ops[i] = op
	}
	return rows, b, ops
}

// phase1Cost returns the cost vector minimizing the sum of artificial
// variables.
func phase1Cost(meta []colMeta) []float64 {
	cost := make([]float64, len(meta))
	for j, mcol := range meta {
		if mcol.isArtificial {
			cost[j] = 1
		}
	}
	return cost
}

func phase2Cost(meta []colMeta) []float64 {
	cost := make([]float64, len(meta))
	for j, mcol := range meta {
		cost[j] = mcol.phase2Cost
	}
	return cost
}
