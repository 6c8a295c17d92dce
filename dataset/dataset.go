// Package dataset provides the lazy, possibly-partitioned sequence
// abstraction that QR and Levenberg-Marquardt fold over: map, filter,
// zipWithIndex, aggregate(zero)(seqOp, combOp), collect, size, reduce,
// and concatenation.
//
// Two implementations are provided. FromSlice returns a single-partition
// sequential DataSet, which satisfies the contract trivially. Partitioned
// splits its input across n partitions and runs
// Aggregate's per-partition seqOp concurrently via golang.org/x/sync/errgroup,
// folding the partial results back together with the caller-supplied
// (required associative, and for determinism also commutative) combOp.
package dataset

// DataSet is a lazy, possibly-partitioned sequence of T. Implementations
// must not share mutable state between iterations or across aggregations,
// and must iterate each partition in a deterministic order.
type DataSet[T any] interface {
	// Map returns a new DataSet with f applied to every element. f must
	// be a pure, stateless per-element transform.
	Map(f func(T) T) DataSet[T]
	// Filter returns a new DataSet containing only elements for which
	// pred returns true.
	Filter(pred func(T) bool) DataSet[T]
	// Collect materializes every element into a single slice, preserving
	// the original index order.
	Collect() []T
	// Size returns the number of elements, without materializing them if
	// avoidable.
	Size() int
	// Reduce folds the data set with f, a commutative-in-practice binary
	// operator. It returns (zero value, false) for an empty data set.
	Reduce(f func(a, b T) T) (T, bool)
	// Concat returns a DataSet containing the elements of d followed by
	// the elements of other, preserving d's index ordering followed by
	// other's.
	Concat(other DataSet[T]) DataSet[T]
	// partitions exposes the underlying partitioning so that the
	// package-level Aggregate function can run seqOp per partition. It is
	// unexported: only the two implementations in this package may back
	// a DataSet.
	partitions() [][]T
}

// Indexed pairs a value with its position in the original sequence, the
// result of ZipWithIndex.
type Indexed[T any] struct {
	Value T
	Index int64
}

// ZipWithIndex returns a new DataSet pairing every element of d with its
// stable position in iteration order.
func ZipWithIndex[T any](d DataSet[T]) DataSet[Indexed[T]] {
	elems := d.Collect()
	out := make([]Indexed[T], len(elems))
	for i, v := range elems {
		out[i] = Indexed[T]{Value: v, Index: int64(i)}
	}
	return FromSlice(out)
}
