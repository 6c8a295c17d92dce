package dataset

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Aggregate folds a DataSet[T] down to a single value of (possibly
// different) type U: zero is the identity element, seqOp folds one
// partition's elements into an accumulator of type U, and combOp merges
// two partial accumulators. combOp must be associative (and, for
// bit-identical results across differently-partitioned DataSets,
// commutative too); Aggregate runs seqOp once per partition concurrently
// via errgroup and then folds the partial results together with combOp
// in partition order, giving a fixed reduction tree for any given
// partitioning.
//
// Aggregate cannot be a DataSet method because Go interface methods
// cannot introduce a second type parameter.
func Aggregate[T, U any](d DataSet[T], zero U, seqOp func(acc U, v T) U, combOp func(a, b U) U) U {
	parts := d.partitions()
	partials := make([]U, len(parts))
	g, _ := errgroup.WithContext(context.Background())
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			acc := zero
			for _, v := range part {
				acc = seqOp(acc, v)
			}
			partials[i] = acc
			return nil
		})
	}
	_ = g.Wait()

	acc := zero
	for _, p := range partials {
		acc = combOp(acc, p)
	}
	return acc
}
