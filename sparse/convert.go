// SPDX-License-Identifier: MIT

// Package sparse - Converter: dense → sparse and sparse → dense.
//
// Determinism:
//   - ToSparse scans the flat range 0..size-1 (row-major, last axis fastest);
//     entry order equals scan order and is part of the contract.
//   - ToDense writes entries in stored order into a zero-filled array.
//
// Round trip: ToDense(ToSparse(x)) equals x exactly; only exact zeros are elided.

package sparse

import (
	"fmt"

	"github.com/katalvlaran/spartensor/dense"
)

const (
	opToSparse         = "ToSparse"
	opToSparseParallel = "ToSparseParallel"
	opToDense          = "ToDense"
)

// Source is the read side of a dense collaborator: shape, rank, element count
// and row-major flat access. *dense.Array satisfies it.
// AtFlat must be safe for concurrent readers when used with ToSparseParallel.
type Source[T dense.Scalar] interface {
	Shape() []int
	Rank() int
	Size() int
	AtFlat(i int) T
}

// ToSparse converts a dense source into a Tensor by a single row-major scan.
// MAIN DESCRIPTION:
//   - Keep every exactly-non-zero element with its decomposed multi-index.
//
// Implementation:
//   - Stage 1: validate the source (non-nil, rank >= 1, Size == Volume(Shape)).
//   - Stage 2: derive strides; scan 0..size-1; decompose kept positions by
//     successive division/modulo, most significant axis first.
//
// Errors:
//   - ErrNilOperand, ErrEmptyShape, ErrInternalConsistency (inconsistent source).
//
// Complexity:
//   - Time O(size + rank*nnz), Space O(rank*nnz).
func ToSparse[T dense.Scalar](src Source[T], opts ...Option) (*Tensor[T], error) {
	shape, err := checkSource(src)
	if err != nil {
		return nil, sparseErrorf(opToSparse, err)
	}
	o := gatherOptions(opts...)
	c := scanRange(src, dense.Strides(shape), 0, src.Size())
	t := newTensor(shape, c.values, c.indices)

	return finish(opToSparse, t, o)
}

// ToDense materializes t as a zero-filled dense array with its stored values written in.
// MAIN DESCRIPTION:
//   - Inverse of ToSparse.
//
// Implementation:
//   - Stage 1: allocate dense.NewArray(shape...) (zero-filled).
//   - Stage 2: for each entry, bounds-check coordinates and write the value.
//
// Errors:
//   - ErrNilOperand; ErrInternalConsistency when a coordinate violates its
//     axis bound or a column length differs from nnz (upstream defect).
//
// Complexity:
//   - Time O(size + rank*nnz), Space O(size).
func ToDense[T dense.Scalar](t *Tensor[T]) (*dense.Array[T], error) {
	if t == nil {
		return nil, sparseErrorf(opToDense, ErrNilOperand)
	}
	out, err := dense.NewArray[T](t.shape...)
	if err != nil {
		return nil, sparseErrorf(opToDense, fmt.Errorf("%w: %w", ErrInternalConsistency, err))
	}
	if len(t.indices) != len(t.shape) {
		return nil, sparseErrorf(opToDense, ErrInternalConsistency)
	}
	for _, col := range t.indices {
		if len(col) != len(t.values) {
			return nil, sparseErrorf(opToDense, ErrInternalConsistency)
		}
	}

	coords := make([]int, len(t.shape))
	for k, v := range t.values {
		for d := range coords {
			coords[d] = t.indices[d][k]
		}
		if err = out.Set(v, coords...); err != nil {
			return nil, sparseErrorf(opToDense, fmt.Errorf("entry %d: %w: %w", k, ErrInternalConsistency, err))
		}
	}

	return out, nil
}

// checkSource validates a source and returns a private copy of its shape.
func checkSource[T dense.Scalar](src Source[T]) ([]int, error) {
	if src == nil {
		return nil, ErrNilOperand
	}
	shape := src.Shape()
	if len(shape) == 0 || src.Rank() == 0 {
		return nil, ErrEmptyShape
	}
	if err := dense.ValidateShape(shape); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternalConsistency, err)
	}
	if src.Rank() != len(shape) || src.Size() != dense.Volume(shape) {
		return nil, fmt.Errorf("%w: source reports rank %d size %d for shape %v",
			ErrInternalConsistency, src.Rank(), src.Size(), shape)
	}

	return shape, nil
}

// chunk is the private output buffer of one scan over a flat range.
type chunk[T dense.Scalar] struct {
	values  []T
	indices [][]int
}

// scanRange collects the non-zero elements of src in flat positions [lo, hi).
// Complexity: O((hi-lo) + rank*nnz).
func scanRange[T dense.Scalar](src Source[T], strides []int, lo, hi int) chunk[T] {
	c := chunk[T]{indices: emptyIndices(len(strides), 0)}
	for flat := lo; flat < hi; flat++ {
		v := src.AtFlat(flat)
		if v == 0 {
			continue
		}
		c.values = append(c.values, v)
		appendCoords(c.indices, strides, flat)
	}

	return c
}

// appendCoords decomposes a flat row-major offset by successive
// division/modulo, most significant axis first, and appends one coordinate
// per axis.
func appendCoords(indices [][]int, strides []int, flat int) {
	for d, st := range strides {
		indices[d] = append(indices[d], flat/st)
		flat %= st
	}
}

// finish runs the optional invariant check before a Tensor leaves the package.
func finish[T dense.Scalar](op string, t *Tensor[T], o Options) (*Tensor[T], error) {
	if o.validate {
		if err := t.Validate(); err != nil {
			return nil, sparseErrorf(op, err)
		}
	}

	return t, nil
}
