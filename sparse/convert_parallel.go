// SPDX-License-Identifier: MIT

package sparse

import (
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/spartensor/dense"
)

// ToSparseParallel is the data-parallel variant of ToSparse.
//
// The flat range is split into contiguous chunks, one per worker
// (WithWorkers, default GOMAXPROCS). Each worker scans its chunk into a
// private buffer; nothing is shared while workers run. After the single
// barrier (errgroup.Wait) the buffers are concatenated in chunk order, so the
// result equals ToSparse entry for entry.
//
// Sources smaller than WithParallelCutoff, or a single worker, take the serial path.
//
// Errors: as ToSparse.
// Complexity: O(size/workers + rank*nnz) wall time, O(rank*nnz) space.
func ToSparseParallel[T dense.Scalar](src Source[T], opts ...Option) (*Tensor[T], error) {
	shape, err := checkSource(src)
	if err != nil {
		return nil, sparseErrorf(opToSparseParallel, err)
	}
	o := gatherOptions(opts...)

	size := src.Size()
	strides := dense.Strides(shape)
	workers := o.workers
	if workers > size {
		workers = size
	}
	if workers <= 1 || size < o.parallelCutoff {
		c := scanRange(src, strides, 0, size)
		return finish(opToSparseParallel, newTensor(shape, c.values, c.indices), o)
	}

	span := (size + workers - 1) / workers
	parts := make([]chunk[T], workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * span
		hi := min(lo+span, size)
		g.Go(func() error {
			parts[w] = scanRange(src, strides, lo, hi)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, sparseErrorf(opToSparseParallel, err)
	}

	o.logger.Debug().
		Int("size", size).
		Int("workers", workers).
		Int("span", span).
		Msg("sparse: parallel scan merged")

	return finish(opToSparseParallel, merge(shape, parts), o)
}

// merge concatenates worker buffers in chunk order into one Tensor.
func merge[T dense.Scalar](shape []int, parts []chunk[T]) *Tensor[T] {
	nnz := 0
	for _, p := range parts {
		nnz += len(p.values)
	}
	values := make([]T, 0, nnz)
	indices := emptyIndices(len(shape), nnz)
	for _, p := range parts {
		values = append(values, p.values...)
		for d := range indices {
			indices[d] = append(indices[d], p.indices[d]...)
		}
	}

	return newTensor(shape, values, indices)
}
