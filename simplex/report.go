package simplex

import "github.com/bruneli/scalaopt-sub001/vecmat"

// ColumnReport exposes one tableau column's final bookkeeping: its cost
// under each phase, its constraint coefficients, and whether it ended up
// basic, slack, or artificial. It mirrors the data model's per-column
// view for callers that want to inspect the basis beyond the plain
// decision vector, e.g. to confirm which slack columns remained basic at
// the optimum.
type ColumnReport struct {
	Phase1Cost   float64
	Phase2Cost   float64
	Constraints  vecmat.Vec
	Index        int
	IsSlack      bool
	IsArtificial bool
	IsBasic      bool
	Row          int // basic row index, or -1 if not basic
}

// Report solves p with the standard simplex method and returns the final
// tableau's per-column view, reconstructed by tableau.columns.
func (p *Problem) Report() ([]ColumnReport, error) {
	t, _, err := solveTableau(p)
	if err != nil {
		return nil, err
	}

	cols := t.columns(phase1Cost(t.meta))
	out := make([]ColumnReport, len(cols))
	for i, c := range cols {
		out[i] = ColumnReport{
			Phase1Cost:   c.phase1Cost,
			Phase2Cost:   c.phase2Cost,
			Constraints:  c.constrains,
			Index:        c.index,
			IsSlack:      c.isSlack,
			IsArtificial: c.isArtificial,
			IsBasic:      c.isBasic,
			Row:          c.row,
		}
	}
	return out, nil
}
