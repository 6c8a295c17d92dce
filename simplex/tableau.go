package simplex

import (
	"math"

	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// column mirrors the data model's per-variable bookkeeping: its cost
// under each phase, its constraint coefficients, and its basic/slack/
// artificial flags. It is reconstructed from the tableau's plain matrix
// form (below) on demand for reporting; the pivot engine itself works
// directly on the matrix for speed.
type column struct {
	phase1Cost   float64
	phase2Cost   float64
	constrains   vecmat.Vec
	index        int
	isSlack      bool
	isArtificial bool
	isBasic      bool
	row          int
}

// tableau is the mutable pivot state: A is the (rows x cols) constraint
// matrix in the current basis, b its right-hand side, basis[i] the
// column currently basic in row i, and meta the static per-column flags
// established at canonicalization.
type tableau struct {
	A     [][]float64
	b     []float64
	basis []int
	meta  []colMeta
	// excessCol[i] is the column index of row i's GE surplus variable, or
	// -1 if row i is not a GE constraint. Used by Dual's complementary-
	// slackness recovery of the primal solution (see dual.go).
	excessCol []int
}

type colMeta struct {
	isSlack      bool
	isArtificial bool
	phase2Cost   float64
}

const pivotEps = 1e-9

// pivot performs Gauss-Jordan elimination making column pivotCol the
// unit basic column of row pivotRow.
func (t *tableau) pivot(pivotRow, pivotCol int) {
	pv := t.A[pivotRow][pivotCol]
	row := t.A[pivotRow]
	for j := range row {
		row[j] /= pv
	}
	t.b[pivotRow] /= pv

	for i, r := range t.A {
		if i == pivotRow {
			continue
		}
		factor := r[pivotCol]
		if factor == 0 {
			continue
		}
		for j := range r {
			r[j] -= factor * row[j]
		}
		t.b[i] -= factor * t.b[pivotRow]
	}
	t.basis[pivotRow] = pivotCol
}

// reducedCosts computes cost[j] - cB . A[:,j] for every column j under
// the given cost vector (phase1 or phase2).
func (t *tableau) reducedCosts(cost []float64) []float64 {
	m := len(t.basis)
	n := len(cost)
	cB := make([]float64, m)
	for i, col := range t.basis {
		cB[i] = cost[col]
	}
	rc := make([]float64, n)
	for j := 0; j < n; j++ {
		var z float64
		for i := 0; i < m; i++ {
			if cB[i] == 0 {
				continue
			}
			z += cB[i] * t.A[i][j]
		}
		rc[j] = cost[j] - z
	}
	return rc
}

// runPhase pivots cost to optimality over the columns not in excluded,
// using Dantzig's most-negative-reduced-cost rule with Bland's-rule
// tie-breaks on column and basic-row index for finite termination. It
// returns Optimal, Unbounded, or MaxIterationsReached.
func (t *tableau) runPhase(cost []float64, excluded map[int]bool, maxPivots int) Status {
	for iter := 0; iter < maxPivots; iter++ {
		rc := t.reducedCosts(cost)

		entering := -1
		for j := range rc {
			if excluded[j] || rc[j] >= -pivotEps {
				continue
			}
			if entering == -1 || rc[j] < rc[entering]-pivotEps {
				entering = j
			} else if math.Abs(rc[j]-rc[entering]) <= pivotEps && j < entering {
				entering = j
			}
		}
		if entering == -1 {
			return Optimal
		}

		leaving := -1
		bestRatio := math.Inf(1)
		for i := range t.b {
			aij := t.A[i][entering]
			if aij <= pivotEps {
				continue
			}
			ratio := t.b[i] / aij
			if ratio < bestRatio-pivotEps {
				bestRatio = ratio
				leaving = i
			} else if math.Abs(ratio-bestRatio) <= pivotEps && leaving != -1 && t.basis[i] < t.basis[leaving] {
				leaving = i
			}
		}
		if leaving == -1 {
			return Unbounded
		}
		t.pivot(leaving, entering)
	}
	return MaxIterationsReached
}

// objectiveValue returns cB . b under the given cost vector.
func (t *tableau) objectiveValue(cost []float64) float64 {
	var v float64
	for i, col := range t.basis {
		v += cost[col] * t.b[i]
	}
	return v
}

// columns reconstructs the column data-model view of the tableau: each
// column's cost under both phases, its constraint coefficients, its
// column index, and its slack/artificial/basic status. Used by Report.
func (t *tableau) columns(phase1Cost []float64) []column {
	n := len(t.meta)
	basicRow := make([]int, n)
	for i := range basicRow {
		basicRow[i] = -1
	}
	for i, col := range t.basis {
		basicRow[col] = i
	}

	out := make([]column, n)
	for j := 0; j < n; j++ {
		constrains := make(vecmat.Vec, len(t.b))
		for i := range t.A {
			constrains[i] = t.A[i][j]
		}
		out[j] = column{
			phase1Cost:   phase1Cost[j],
			phase2Cost:   t.meta[j].phase2Cost,
			constrains:   constrains,
			index:        j,
			isSlack:      t.meta[j].isSlack,
			isArtificial: t.meta[j].isArtificial,
			isBasic:      basicRow[j] >= 0,
			row:          basicRow[j],
		}
	}
	return out
}
