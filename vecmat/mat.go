package vecmat

import (
	"math"

	"github.com/bruneli/scalaopt-sub001/opterr"
)

// Mat is a dense, row-major r x c matrix of doubles.
type Mat struct {
	rows, cols int
	data       []float64
}

// NewMat returns a new r x c matrix of zeros.
func NewMat(r, c int) Mat {
	return Mat{rows: r, cols: c, data: make([]float64, r*c)}
}

// NewMatFromRows builds a matrix from a slice of equal-length rows.
func NewMatFromRows(rows []Vec) (Mat, error) {
	if len(rows) == 0 {
		return Mat{}, opterr.InvalidArgument{Reason: "no rows supplied"}
	}
	c := len(rows[0])
	m := NewMat(len(rows), c)
	for i, row := range rows {
		if len(row) != c {
			return Mat{}, opterr.InvalidArgument{Reason: "ragged rows"}
		}
		copy(m.data[i*c:(i+1)*c], row)
	}
	return m, nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) Mat {
	m := NewMat(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Dims returns the number of rows and columns of m.
func (m Mat) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// At returns the element at row i, column j.
func (m Mat) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

// With returns a copy of m with element (i, j) set to x.
func (m Mat) With(i, j int, x float64) Mat {
	out := m.clone()
	out.data[i*m.cols+j] = x
	return out
}

func (m Mat) clone() Mat {
	out := NewMat(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// Row returns row i as a Vec.
func (m Mat) Row(i int) Vec {
	out := make(Vec, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out
}

// Col returns column j as a Vec.
func (m Mat) Col(j int) Vec {
	out := make(Vec, m.rows)
	for i := 0; i < m.rows; i++ {
		out[i] = m.data[i*m.cols+j]
	}
	return out
}

// WithRow returns a copy of m with row i replaced by v.
func (m Mat) WithRow(i int, v Vec) (Mat, error) {
	if len(v) != m.cols {
		return Mat{}, opterr.InvalidArgument{Reason: "row length does not match matrix column count"}
	}
	out := m.clone()
	copy(out.data[i*m.cols:(i+1)*m.cols], v)
	return out, nil
}

// WithCol returns a copy of m with column j replaced by v.
func (m Mat) WithCol(j int, v Vec) (Mat, error) {
	if len(v) != m.rows {
		return Mat{}, opterr.InvalidArgument{Reason: "column length does not match matrix row count"}
	}
	out := m.clone()
	for i := 0; i < m.rows; i++ {
		out.data[i*m.cols+j] = v[i]
	}
	return out, nil
}

// SwapCols returns a copy of m with columns i and j exchanged.
func (m Mat) SwapCols(i, j int) Mat {
	out := m.clone()
	if i == j {
		return out
	}
	for r := 0; r < m.rows; r++ {
		idx := r * m.cols
		out.data[idx+i], out.data[idx+j] = out.data[idx+j], out.data[idx+i]
	}
	return out
}

func sameMatShape(a, b Mat) error {
	if a.rows != b.rows || a.cols != b.cols {
		return opterr.InvalidArgument{Reason: "matrix shapes do not match"}
	}
	return nil
}

// Add returns a + b elementwise.
func (a Mat) Add(b Mat) (Mat, error) {
	if err := sameMatShape(a, b); err != nil {
		return Mat{}, err
	}
	out := NewMat(a.rows, a.cols)
	for i := range a.data {
		out.data[i] = a.data[i] + b.data[i]
	}
	return out, nil
}

// Sub returns a - b elementwise.
func (a Mat) Sub(b Mat) (Mat, error) {
	if err := sameMatShape(a, b); err != nil {
		return Mat{}, err
	}
	out := NewMat(a.rows, a.cols)
	for i := range a.data {
		out.data[i] = a.data[i] - b.data[i]
	}
	return out, nil
}

// Scale returns c * m.
func (m Mat) Scale(c float64) Mat {
	out := NewMat(m.rows, m.cols)
	for i := range m.data {
		out.data[i] = c * m.data[i]
	}
	return out
}

// Neg returns -m.
func (m Mat) Neg() Mat {
	return m.Scale(-1)
}

// Mul returns the matrix product a * b.
func (a Mat) Mul(b Mat) (Mat, error) {
	if a.cols != b.rows {
		return Mat{}, opterr.InvalidArgument{Reason: "incompatible dimensions for matrix product"}
	}
	out := NewMat(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		for k := 0; k < a.cols; k++ {
			aik := a.data[i*a.cols+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.cols; j++ {
				out.data[i*out.cols+j] += aik * b.data[k*b.cols+j]
			}
		}
	}
	return out, nil
}

// MulVec returns the matrix-vector product m * v.
func (m Mat) MulVec(v Vec) (Vec, error) {
	if m.cols != len(v) {
		return nil, opterr.InvalidArgument{Reason: "incompatible dimensions for matrix-vector product"}
	}
	out := make(Vec, m.rows)
	for i := 0; i < m.rows; i++ {
		var sum float64
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = sum
	}
	return out, nil
}

// T returns the transpose of m.
func (m Mat) T() Mat {
	out := NewMat(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*out.cols+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// FrobeniusNorm returns the Frobenius (elementwise l2) norm of m.
func (m Mat) FrobeniusNorm() float64 {
	var sum float64
	for _, x := range m.data {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// InfNorm returns the max absolute row sum of m, i.e. ||m||_inf.
func (m Mat) InfNorm() float64 {
	var best float64
	for i := 0; i < m.rows; i++ {
		var sum float64
		for j := 0; j < m.cols; j++ {
			sum += math.Abs(m.data[i*m.cols+j])
		}
		if sum > best {
			best = sum
		}
	}
	return best
}

// AddScaledVec returns m with rank-one update m + alpha * u * v^T.
func (m Mat) AddScaledVec(alpha float64, u, v Vec) (Mat, error) {
	if len(u) != m.rows || len(v) != m.cols {
		return Mat{}, opterr.InvalidArgument{Reason: "rank-one update dimensions do not match"}
	}
	out := m.clone()
	for i := 0; i < m.rows; i++ {
		ui := alpha * u[i]
		if ui == 0 {
			continue
		}
		row := out.data[i*m.cols : (i+1)*m.cols]
		for j, vj := range v {
			row[j] += ui * vj
		}
	}
	return out, nil
}
