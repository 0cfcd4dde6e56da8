// SPDX-License-Identifier: MIT

// Package sparse - the coordinate-format Tensor and its invariants.
//
// Purpose:
//   - Store only non-zero values plus, per axis, the coordinate of every stored entry.
//   - Keep the value immutable after construction: accessors hand out copies.
//
// Invariants (hold for every Tensor returned by this package):
//  1. len(values) == len(indices[d]) for every axis d.
//  2. 0 <= indices[d][k] < shape[d].
//  3. no stored value equals zero.
//  4. no two entries share a coordinate tuple.
//  5. entries appear in strictly increasing row-major order (implies 4).
//
// AI-Hints:
//   - Entry order equals the row-major scan order of the dense source, so two
//     Tensors of the same shape can be merged in a single linear pass (see Add).
//   - A Tensor is read-only and can be shared across goroutines without locking.

package sparse

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/spartensor/dense"
)

// Tensor is an N-dimensional coordinate-format sparse array.
//   - shape: axis sizes (rank >= 1).
//   - values: stored non-zero scalars, length nnz.
//   - indices[d][k]: coordinate on axis d of the k-th stored entry.
type Tensor[T dense.Scalar] struct {
	shape   []int
	values  []T
	indices [][]int
}

// newTensor adopts the given slices without copying. The caller guarantees
// that nothing else retains them.
func newTensor[T dense.Scalar](shape []int, values []T, indices [][]int) *Tensor[T] {
	return &Tensor[T]{shape: shape, values: values, indices: indices}
}

// emptyIndices allocates rank empty coordinate columns with capacity c.
func emptyIndices(rank, c int) [][]int {
	idx := make([][]int, rank)
	for d := range idx {
		idx[d] = make([]int, 0, c)
	}

	return idx
}

// Shape returns a copy of the axis sizes. Complexity: O(rank).
func (t *Tensor[T]) Shape() []int { return append([]int(nil), t.shape...) }

// Rank returns the number of axes. Complexity: O(1).
func (t *Tensor[T]) Rank() int { return len(t.shape) }

// Size returns the element count of the dense equivalent. Complexity: O(rank).
func (t *Tensor[T]) Size() int { return dense.Volume(t.shape) }

// NNZ returns the number of stored entries. Complexity: O(1).
func (t *Tensor[T]) NNZ() int { return len(t.values) }

// Density returns NNZ / Size, or 0 for a size-0 tensor.
func (t *Tensor[T]) Density() float64 {
	n := t.Size()
	if n == 0 {
		return 0
	}

	return float64(len(t.values)) / float64(n)
}

// Values returns a copy of the stored values in entry order. Complexity: O(nnz).
func (t *Tensor[T]) Values() []T { return append([]T(nil), t.values...) }

// Indices returns a deep copy of the per-axis coordinate columns.
// Complexity: O(rank*nnz).
func (t *Tensor[T]) Indices() [][]int {
	out := make([][]int, len(t.indices))
	for d, col := range t.indices {
		out[d] = append([]int(nil), col...)
	}

	return out
}

// Axis returns a copy of the coordinate column of axis d.
// Errors: dense.ErrOutOfRange when d is not an axis.
func (t *Tensor[T]) Axis(d int) ([]int, error) {
	if d < 0 || d >= len(t.indices) {
		return nil, sparseErrorf("Tensor.Axis", dense.ErrOutOfRange)
	}

	return append([]int(nil), t.indices[d]...), nil
}

// Entry returns the coordinate tuple and value of the k-th stored entry.
// Errors: dense.ErrOutOfRange when k is outside [0, NNZ()).
func (t *Tensor[T]) Entry(k int) ([]int, T, error) {
	if k < 0 || k >= len(t.values) {
		var zero T
		return nil, zero, sparseErrorf("Tensor.Entry", dense.ErrOutOfRange)
	}
	coords := make([]int, len(t.indices))
	for d := range t.indices {
		coords[d] = t.indices[d][k]
	}

	return coords, t.values[k], nil
}

// offsetOf folds entry k's coordinates into its row-major offset.
func (t *Tensor[T]) offsetOf(k int, strides []int) int {
	off := 0
	for d, st := range strides {
		off += t.indices[d][k] * st
	}

	return off
}

// At returns the value stored at coords, or zero when no entry is stored there.
// MAIN DESCRIPTION:
//   - Random read against the compressed layout.
//
// Implementation:
//   - Stage 1: bounds-check coords against the shape.
//   - Stage 2: binary-search entries by row-major offset (invariant 5).
//
// Errors:
//   - dense.ErrOutOfRange for a rank mismatch or out-of-bounds coordinate.
//
// Complexity:
//   - Time O(rank * log nnz), Space O(rank).
func (t *Tensor[T]) At(coords ...int) (T, error) {
	var zero T
	if len(coords) != len(t.shape) {
		return zero, sparseErrorf("Tensor.At", dense.ErrOutOfRange)
	}
	strides := dense.Strides(t.shape)
	want := 0
	for d, c := range coords {
		if c < 0 || c >= t.shape[d] {
			return zero, sparseErrorf("Tensor.At", dense.ErrOutOfRange)
		}
		want += c * strides[d]
	}
	k := sort.Search(len(t.values), func(k int) bool { return t.offsetOf(k, strides) >= want })
	if k < len(t.values) && t.offsetOf(k, strides) == want {
		return t.values[k], nil
	}

	return zero, nil
}

// Validate re-checks all Tensor invariants.
// MAIN DESCRIPTION:
//   - Boundary check used by ToDense and, under WithValidation, by every constructor.
//
// Implementation:
//   - Stage 1: rank >= 1, non-negative sizes, one column per axis of length nnz.
//   - Stage 2: per entry, coordinates within bounds and value != 0.
//   - Stage 3: row-major offsets strictly increasing (uniqueness + order).
//
// Errors:
//   - ErrInternalConsistency wrapped with the first violation found.
//
// Complexity:
//   - Time O(rank*nnz), Space O(rank).
func (t *Tensor[T]) Validate() error {
	if t == nil {
		return sparseErrorf("Tensor.Validate", ErrNilOperand)
	}
	if len(t.shape) == 0 {
		return consistencyErrorf("rank 0")
	}
	if err := dense.ValidateShape(t.shape); err != nil {
		return consistencyErrorf("shape %v: %v", t.shape, err)
	}
	if len(t.indices) != len(t.shape) {
		return consistencyErrorf("%d coordinate columns for rank %d", len(t.indices), len(t.shape))
	}
	nnz := len(t.values)
	for d, col := range t.indices {
		if len(col) != nnz {
			return consistencyErrorf("axis %d holds %d coordinates, want %d", d, len(col), nnz)
		}
	}

	strides := dense.Strides(t.shape)
	prev := -1
	for k := 0; k < nnz; k++ {
		if t.values[k] == 0 {
			return consistencyErrorf("entry %d stores zero", k)
		}
		for d, col := range t.indices {
			if col[k] < 0 || col[k] >= t.shape[d] {
				return consistencyErrorf("entry %d axis %d coordinate %d outside [0,%d)", k, d, col[k], t.shape[d])
			}
		}
		off := t.offsetOf(k, strides)
		if off == prev {
			return consistencyErrorf("entry %d duplicates entry %d", k, k-1)
		}
		if off < prev {
			return consistencyErrorf("entry %d out of row-major order", k)
		}
		prev = off
	}

	return nil
}

func consistencyErrorf(format string, args ...any) error {
	return fmt.Errorf("Tensor.Validate: %w: %s", ErrInternalConsistency, fmt.Sprintf(format, args...))
}
