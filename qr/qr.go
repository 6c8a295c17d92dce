// Package qr implements Householder QR factorization with optional
// column pivoting over a dataset.DataSet of dataset.AugmentedRow,
// yielding R, Q^T*b, the pivot permutation, and the least-squares
// solution.
//
// The Householder step is expressed through dataset.Aggregate (to find
// the column of maximum remaining norm when pivoting, and to compute
// each reflector's norm) and dataset.DataSet.Map (to apply a reflector,
// or a column swap, to every row). Decompose accepts any DataSet, but it
// first copies the rows into a single-partition dataset.FromSlice, so
// these folds run sequentially even for a dataset.Partitioned input.
package qr

import (
	"math"

	"github.com/bruneli/scalaopt-sub001/dataset"
	"github.com/bruneli/scalaopt-sub001/opterr"
	"github.com/bruneli/scalaopt-sub001/vecmat"
)

// Result is the outcome of a QR factorization of an augmented system
// [A | b], A being m x n with m >= n.
type Result struct {
	R        vecmat.Mat // n x n upper triangular
	QtB      vecmat.Vec // Q^T * b, size n
	Ipvt     []int      // column permutation; identity when pivoting is disabled
	Solution vecmat.Vec // least-squares solution, size n
}

// Decompose factorizes the augmented data set rows = [A | b] (A has m
// rows and n columns, m >= n) via Householder reflections, optionally
// with column pivoting, and solves R*x = Q^T*b for the least-squares
// solution.
//
// Decompose returns opterr.ErrEmptyDataSet (an opterr.InvalidArgument) if
// the data set is empty, opterr.InvalidArgument if it has fewer rows than
// n, and opterr.RankDeficient if any pivot magnitude
// falls below tol * ||A||_inf.
func Decompose(rows dataset.DataSet[dataset.AugmentedRow], n int, pivoting bool, tol float64) (Result, error) {
	m := rows.Size()
	if m == 0 {
		return Result{}, opterr.ErrEmptyDataSet
	}
	if m < n {
		return Result{}, opterr.InvalidArgument{Reason: "fewer rows than columns: m < n"}
	}

	work := reindex(rows.Collect())
	ds := dataset.FromSlice(work)

	normA := infNormOf(work)

	ipvt := make([]int, n)
	for i := range ipvt {
		ipvt[i] = i
	}

	for k := 0; k < n; k++ {
		if pivoting {
			best, bestNorm := k, -1.0
			for j := k; j < n; j++ {
				colNorm2 := dataset.Aggregate(ds, 0.0,
					func(acc float64, r dataset.AugmentedRow) float64 {
						if int(r.Index) < k {
							return acc
						}
						return acc + r.A[j]*r.A[j]
					},
					func(a, b float64) float64 { return a + b })
				if colNorm2 > bestNorm {
					bestNorm = colNorm2
					best = j
				}
			}
			if best != k {
				ipvt[k], ipvt[best] = ipvt[best], ipvt[k]
				ds = ds.Map(func(r dataset.AugmentedRow) dataset.AugmentedRow {
					r.A[k], r.A[best] = r.A[best], r.A[k]
					return r
				})
			}
		}

		colNorm2 := dataset.Aggregate(ds, 0.0,
			func(acc float64, r dataset.AugmentedRow) float64 {
				if int(r.Index) < k {
					return acc
				}
				return acc + r.A[k]*r.A[k]
			},
			func(a, b float64) float64 { return a + b })
		norm := math.Sqrt(colNorm2)
		if norm == 0 {
			return Result{}, opterr.RankDeficient{Column: k, Pivot: 0, Tol: tol * normA}
		}

		akk := valueAt(ds, k, k)
		alpha := -math.Copysign(norm, akk)

		if math.Abs(alpha) < tol*normA {
			return Result{}, opterr.RankDeficient{Column: k, Pivot: alpha, Tol: tol * normA}
		}

		// v holds the Householder vector, nonzero only on rows >= k.
		v := make(map[int]float64, m-k)
		v[k] = akk - alpha
		vNorm2 := v[k] * v[k]
		for _, r := range ds.Collect() {
			idx := int(r.Index)
			if idx <= k {
				continue
			}
			v[idx] = r.A[k]
			vNorm2 += r.A[k] * r.A[k]
		}
		if vNorm2 == 0 {
			// Column already aligned with e_k; nothing to reflect.
			continue
		}
		beta := 2.0 / vNorm2
		ds = applyReflector(ds, v, beta, k, n)
	}

	rows2 := ds.Collect()
	R := vecmat.NewMat(n, n)
	qtB := vecmat.Zeros(n)
	for _, r := range rows2 {
		i := int(r.Index)
		if i >= n {
			continue
		}
		for j := i; j < n; j++ {
			R = R.With(i, j, r.A[j])
		}
		qtB[i] = r.B
	}

	x, err := backSubstitute(R, qtB)
	if err != nil {
		return Result{}, err
	}
	solution := vecmat.Zeros(n)
	for i, xi := range x {
		solution[ipvt[i]] = xi
	}

	return Result{R: R, QtB: qtB, Ipvt: ipvt, Solution: solution}, nil
}

// applyReflector applies the Householder reflection defined by v and
// beta (over columns k..n-1 and the b column) to every row with
// Index >= k, as a single stateless Map.
func applyReflector(ds dataset.DataSet[dataset.AugmentedRow], v map[int]float64, beta float64, k, n int) dataset.DataSet[dataset.AugmentedRow] {
	rows := ds.Collect()
	// dot_j = sum_i v[i] * rows[i].A[j] for i >= k, one term per column
	// j in [k, n) plus the b column; this is the only place the
	// reflector genuinely needs all rows at once, so it is computed with
	// a plain reduction rather than forced through Map (which is
	// defined to be stateless per element).
	dotCols := make([]float64, n)
	var dotB float64
	for _, r := range rows {
		idx := int(r.Index)
		if idx < k {
			continue
		}
		vi := v[idx]
		if vi == 0 {
			continue
		}
		for j := k; j < n; j++ {
			dotCols[j] += vi * r.A[j]
		}
		dotB += vi * r.B
	}
	return ds.Map(func(r dataset.AugmentedRow) dataset.AugmentedRow {
		idx := int(r.Index)
		if idx < k {
			return r
		}
		vi := v[idx]
		if vi == 0 {
			return r
		}
		out := r.A.Slice(0, len(r.A))
		for j := k; j < n; j++ {
			out[j] -= beta * vi * dotCols[j]
		}
		r.A = out
		r.B -= beta * vi * dotB
		return r
	})
}

func reindex(rows []dataset.AugmentedRow) []dataset.AugmentedRow {
	out := make([]dataset.AugmentedRow, len(rows))
	for i, r := range rows {
		r.Index = int64(i)
		a := make(vecmat.Vec, len(r.A))
		copy(a, r.A)
		r.A = a
		out[i] = r
	}
	return out
}

func infNormOf(rows []dataset.AugmentedRow) float64 {
	var best float64
	for _, r := range rows {
		var sum float64
		for _, x := range r.A {
			sum += math.Abs(x)
		}
		if sum > best {
			best = sum
		}
	}
	return best
}

func valueAt(ds dataset.DataSet[dataset.AugmentedRow], rowIdx, col int) float64 {
	for _, r := range ds.Collect() {
		if int(r.Index) == rowIdx {
			return r.A[col]
		}
	}
	return 0
}

// backSubstitute solves the n x n upper-triangular system R*x = b.
func backSubstitute(R vecmat.Mat, b vecmat.Vec) (vecmat.Vec, error) {
	n := len(b)
	x := vecmat.Zeros(n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= R.At(i, j) * x[j]
		}
		if R.At(i, i) == 0 {
			return nil, opterr.RankDeficient{Column: i, Pivot: 0, Tol: 0}
		}
		x[i] = sum / R.At(i, i)
	}
	return x, nil
}
