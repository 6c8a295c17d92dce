package dataset

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// partitionedDataSet splits its elements across a fixed number of
// partitions. Map and Filter run each partition concurrently via
// errgroup.Group; Aggregate (package-level function in aggregate.go) runs seqOp
// per partition concurrently and folds the partial results together
// with combOp once every partition has finished.
type partitionedDataSet[T any] struct {
	parts [][]T
}

// Partitioned splits elems into up to n roughly equal contiguous
// partitions (preserving index order within and across partitions) and
// returns a DataSet that executes Map, Filter, and Aggregate across
// those partitions concurrently. n <= 0 is treated as 1.
func Partitioned[T any](elems []T, n int) DataSet[T] {
	if n <= 0 {
		n = 1
	}
	if n > len(elems) && len(elems) > 0 {
		n = len(elems)
	}
	if len(elems) == 0 {
		return partitionedDataSet[T]{parts: [][]T{{}}}
	}
	parts := make([][]T, n)
	base := len(elems) / n
	rem := len(elems) % n
	start := 0
	for i := 0; i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		p := make([]T, size)
		copy(p, elems[start:start+size])
		parts[i] = p
		start += size
	}
	return partitionedDataSet[T]{parts: parts}
}

func (d partitionedDataSet[T]) Map(f func(T) T) DataSet[T] {
	out := make([][]T, len(d.parts))
	g, _ := errgroup.WithContext(context.Background())
	for i, part := range d.parts {
		i, part := i, part
		g.Go(func() error {
			mapped := make([]T, len(part))
			for j, v := range part {
				mapped[j] = f(v)
			}
			out[i] = mapped
			return nil
		})
	}
	// Map's closure is pure and cannot fail, so the error is always nil.
	_ = g.Wait()
	return partitionedDataSet[T]{parts: out}
}

func (d partitionedDataSet[T]) Filter(pred func(T) bool) DataSet[T] {
	out := make([][]T, len(d.parts))
	g, _ := errgroup.WithContext(context.Background())
	for i, part := range d.parts {
		i, part := i, part
		g.Go(func() error {
			filtered := make([]T, 0, len(part))
			for _, v := range part {
				if pred(v) {
					filtered = append(filtered, v)
				}
			}
			out[i] = filtered
			return nil
		})
	}
	_ = g.Wait()
	return partitionedDataSet[T]{parts: out}
}

func (d partitionedDataSet[T]) Collect() []T {
	n := 0
	for _, p := range d.parts {
		n += len(p)
	}
	out := make([]T, 0, n)
	for _, p := range d.parts {
		out = append(out, p...)
	}
	return out
}

func (d partitionedDataSet[T]) Size() int {
	n := 0
	for _, p := range d.parts {
		n += len(p)
	}
	return n
}

func (d partitionedDataSet[T]) Reduce(f func(a, b T) T) (T, bool) {
	var zero T
	all := d.Collect()
	if len(all) == 0 {
		return zero, false
	}
	acc := all[0]
	for _, v := range all[1:] {
		acc = f(acc, v)
	}
	return acc, true
}

func (d partitionedDataSet[T]) Concat(other DataSet[T]) DataSet[T] {
	return partitionedDataSet[T]{parts: append(append([][]T{}, d.parts...), other.partitions()...)}
}

func (d partitionedDataSet[T]) partitions() [][]T {
	return d.parts
}
