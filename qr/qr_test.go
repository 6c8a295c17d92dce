package qr

import (
	"math"
	"testing"

	"github.com/bruneli/scalaopt-sub001/dataset"
	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

func augmented(a [][]float64, b []float64) dataset.DataSet[dataset.AugmentedRow] {
	rows := make([]dataset.AugmentedRow, len(a))
	for i := range a {
		rows[i] = dataset.AugmentedRow{A: vecmat.NewVec(a[i]), B: b[i], Index: int64(i)}
	}
	return dataset.FromSlice(rows)
}

func TestDecomposeNoPivoting(t *testing.T) {
	A := [][]float64{{2, 3, 1}, {3, 8, 1}, {4, 2, 9}}
	b := []float64{2, 1, 0.5}

	res, err := Decompose(augmented(A, b), 3, false, 1e-12)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	want := vecmat.NewVec([]float64{2.5, -0.7, -0.9})
	if !vecmat.ApproxEqual(res.Solution, want, 1e-5) {
		t.Errorf("Solution = %v, want %v", res.Solution, want)
	}
	for i := range res.Ipvt {
		if res.Ipvt[i] != i {
			t.Errorf("Ipvt = %v, want identity", res.Ipvt)
			break
		}
	}
}

func TestDecomposeWithPivoting(t *testing.T) {
	A := [][]float64{{2, 3, 1}, {3, 8, 1}, {4, 2, 9}}
	b := []float64{2, 1, 0.5}

	res, err := Decompose(augmented(A, b), 3, true, 1e-12)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	want := vecmat.NewVec([]float64{2.5, -0.7, -0.9})
	if !vecmat.ApproxEqual(res.Solution, want, 1e-5) {
		t.Errorf("Solution = %v, want %v", res.Solution, want)
	}
	wantIpvt := []int{2, 1, 0}
	for i := range wantIpvt {
		if res.Ipvt[i] != wantIpvt[i] {
			t.Errorf("Ipvt = %v, want %v", res.Ipvt, wantIpvt)
			break
		}
	}
}

func TestDecomposeEmptyDataSet(t *testing.T) {
	empty := dataset.FromSlice([]dataset.AugmentedRow{})
	_, err := Decompose(empty, 2, false, 1e-12)
	if err != opterr.ErrEmptyDataSet {
		t.Errorf("err = %v, want ErrEmptyDataSet", err)
	}
}

func TestDecomposeFewerRowsThanColumns(t *testing.T) {
	A := [][]float64{{1, 2, 3}}
	b := []float64{1}
	_, err := Decompose(augmented(A, b), 3, false, 1e-12)
	if _, ok := err.(opterr.InvalidArgument); !ok {
		t.Errorf("err = %v (%T), want opterr.InvalidArgument", err, err)
	}
}

func TestDecomposeRankDeficient(t *testing.T) {
	// Second column is twice the first: rank 1 over a 2-column request.
	A := [][]float64{{1, 2}, {2, 4}, {3, 6}}
	b := []float64{1, 2, 3}
	_, err := Decompose(augmented(A, b), 2, false, 1e-9)
	if _, ok := err.(opterr.RankDeficient); !ok {
		t.Errorf("err = %v (%T), want opterr.RankDeficient", err, err)
	}
}

func TestDecomposeOverdetermined(t *testing.T) {
	// A well-conditioned 4x2 least-squares fit of y = a + b*x.
	xs := []float64{0, 1, 2, 3}
	ys := []float64{1.1, 2.9, 5.05, 6.9}
	A := make([][]float64, len(xs))
	for i, x := range xs {
		A[i] = []float64{1, x}
	}
	res, err := Decompose(augmented(A, ys), 2, false, 1e-12)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	// Residual should be small for an approximately-linear fit.
	a, bCoef := res.Solution[0], res.Solution[1]
	var sse float64
	for i, x := range xs {
		r := ys[i] - (a + bCoef*x)
		sse += r * r
	}
	if sse > 0.1 {
		t.Errorf("sum of squared residuals = %v, want < 0.1", sse)
	}
	if math.IsNaN(sse) {
		t.Errorf("sse is NaN")
	}
}
