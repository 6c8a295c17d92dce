package vecmat

import "testing"

func TestMatMul(t *testing.T) {
	a, _ := NewMatFromRows([]Vec{{1, 2}, {3, 4}})
	b, _ := NewMatFromRows([]Vec{{5, 6}, {7, 8}})

	got, err := a.Mul(b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	want, _ := NewMatFromRows([]Vec{{19, 22}, {43, 50}})
	if !MatApproxEqual(got, want, 1e-12) {
		t.Errorf("Mul() = %v, want %v", got, want)
	}
}

func TestMatMulVec(t *testing.T) {
	a, _ := NewMatFromRows([]Vec{{1, 0}, {0, 1}, {2, 2}})
	v := NewVec([]float64{3, 4})
	got, err := a.MulVec(v)
	if err != nil {
		t.Fatalf("MulVec: %v", err)
	}
	want := NewVec([]float64{3, 4, 14})
	if !ApproxEqual(got, want, 1e-12) {
		t.Errorf("MulVec() = %v, want %v", got, want)
	}
}

func TestMatTranspose(t *testing.T) {
	a, _ := NewMatFromRows([]Vec{{1, 2, 3}, {4, 5, 6}})
	tr := a.T()
	r, c := tr.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("T() dims = (%d, %d), want (3, 2)", r, c)
	}
	if tr.At(2, 1) != 6 {
		t.Errorf("T().At(2, 1) = %v, want 6", tr.At(2, 1))
	}
}

func TestMatSwapCols(t *testing.T) {
	a, _ := NewMatFromRows([]Vec{{1, 2, 3}, {4, 5, 6}})
	got := a.SwapCols(0, 2)
	want, _ := NewMatFromRows([]Vec{{3, 2, 1}, {6, 5, 4}})
	if !MatApproxEqual(got, want, 1e-12) {
		t.Errorf("SwapCols(0, 2) = %v, want %v", got, want)
	}
	// original must be unmodified.
	if a.At(0, 0) != 1 {
		t.Errorf("SwapCols mutated receiver")
	}
}

func TestIdentity(t *testing.T) {
	id := Identity(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if id.At(i, j) != want {
				t.Errorf("Identity(3).At(%d, %d) = %v, want %v", i, j, id.At(i, j), want)
			}
		}
	}
}

func TestMatShapeMismatch(t *testing.T) {
	a := NewMat(2, 2)
	b := NewMat(3, 3)
	if _, err := a.Add(b); err == nil {
		t.Errorf("Add with mismatched shapes should error")
	}
	if _, err := a.Mul(b); err == nil {
		t.Errorf("Mul with incompatible dims should error")
	}
}
