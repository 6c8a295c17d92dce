package vecmat

import "testing"

func TestVecArithmetic(t *testing.T) {
	a := NewVec([]float64{1, 2, 3})
	b := NewVec([]float64{4, 5, 6})

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !ApproxEqual(sum, NewVec([]float64{5, 7, 9}), 1e-12) {
		t.Errorf("Add(%v, %v) = %v", a, b, sum)
	}

	diff, err := b.Sub(a)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if !ApproxEqual(diff, NewVec([]float64{3, 3, 3}), 1e-12) {
		t.Errorf("Sub(%v, %v) = %v", b, a, diff)
	}

	dot, err := a.Dot(b)
	if err != nil {
		t.Fatalf("Dot: %v", err)
	}
	if dot != 32 {
		t.Errorf("Dot(%v, %v) = %v, want 32", a, b, dot)
	}

	if got := a.Scale(2); !ApproxEqual(got, NewVec([]float64{2, 4, 6}), 1e-12) {
		t.Errorf("Scale(2) = %v", got)
	}

	if _, err := a.Div(0); err == nil {
		t.Errorf("Div(0) should signal InvalidArgument")
	}
}

func TestVecShapeMismatch(t *testing.T) {
	a := NewVec([]float64{1, 2})
	b := NewVec([]float64{1, 2, 3})
	if _, err := a.Add(b); err == nil {
		t.Errorf("Add with mismatched shapes should error")
	}
}

func TestVecNorm(t *testing.T) {
	v := NewVec([]float64{3, 4})
	if got := v.Norm(); got != 5 {
		t.Errorf("Norm() = %v, want 5", got)
	}
	if got := v.Norm2(); got != 25 {
		t.Errorf("Norm2() = %v, want 25", got)
	}
}

func TestVecOuter(t *testing.T) {
	u := NewVec([]float64{1, 2})
	v := NewVec([]float64{3, 4, 5})
	m := u.Outer(v)
	r, c := m.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("Outer dims = (%d, %d), want (2, 3)", r, c)
	}
	want := [][]float64{{3, 4, 5}, {6, 8, 10}}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(i, j) != want[i][j] {
				t.Errorf("Outer()[%d][%d] = %v, want %v", i, j, m.At(i, j), want[i][j])
			}
		}
	}
}

func TestVecImmutable(t *testing.T) {
	a := NewVec([]float64{1, 2, 3})
	b := a.With(0, 99)
	if a[0] != 1 {
		t.Errorf("With mutated receiver: a[0] = %v, want 1", a[0])
	}
	if b[0] != 99 {
		t.Errorf("With(0, 99)[0] = %v, want 99", b[0])
	}
}
