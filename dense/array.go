// SPDX-License-Identifier: MIT

// Package dense - row-major storage & safe accessors.
//
// Purpose:
//   - Provide a contiguous row-major buffer addressed by precomputed strides.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep every loop deterministic (flat 0..n-1 order, no map iteration).
//
// AI-Hints:
//   - Prefer AtFlat in hot scans: one bounds check, no stride arithmetic.
//   - Use Unravel/Offset to translate between flat positions and multi-indices.

package dense

import "fmt"

// ---------- error context tags ----------

const (
	ctxAt        = "At"
	ctxSet       = "Set"
	ctxSetFlat   = "SetFlat"
	ctxOffset    = "Offset"
	ctxUnravel   = "Unravel"
	ctxNewArray  = "NewArray"
	ctxFromSlice = "FromSlice"
)

// arrayErrorf wraps an error with a uniform Array context and the offending index.
// Format: "Array.<method>(<index>): %w". Sentinel is preserved for errors.Is.
func arrayErrorf(method string, index any, err error) error {
	return fmt.Errorf("Array.%s(%v): %w", method, index, err)
}

// Array is a concrete row-major N-dimensional array.
//   - shape holds axis sizes (>=0); rank == len(shape).
//   - strides are derived once from shape (see Strides).
//   - data is a flat buffer of length Volume(shape).
type Array[T Scalar] struct {
	shape   []int
	strides []int
	data    []T
}

// NewArray creates a zero-filled array of the given shape.
// MAIN DESCRIPTION:
//   - Public constructor with strict shape validation.
//
// Implementation:
//   - Stage 1: validate every axis size >= 0; else ErrBadShape.
//   - Stage 2: copy shape, derive strides, allocate zero-filled buffer.
//
// Behavior highlights:
//   - NewArray() with no axes is a rank-0 scalar holding one zero.
//   - An axis of size 0 yields an empty buffer (legal).
//
// Errors:
//   - ErrBadShape (negative axis size).
//
// Complexity:
//   - Time O(size), Space O(size).
func NewArray[T Scalar](shape ...int) (*Array[T], error) {
	if err := ValidateShape(shape); err != nil {
		return nil, arrayErrorf(ctxNewArray, shape, err)
	}
	sh := append([]int(nil), shape...)

	return &Array[T]{
		shape:   sh,
		strides: Strides(sh),
		data:    make([]T, Volume(sh)), // make() zero-fills deterministically
	}, nil
}

// FromSlice builds an array of the given shape over a COPY of data (row-major).
//
// Errors: ErrBadShape, ErrDataLength when len(data) != Volume(shape).
// Complexity: O(size).
func FromSlice[T Scalar](data []T, shape ...int) (*Array[T], error) {
	a, err := NewArray[T](shape...)
	if err != nil {
		return nil, err
	}
	if len(data) != len(a.data) {
		return nil, arrayErrorf(ctxFromSlice, shape, ErrDataLength)
	}
	copy(a.data, data)

	return a, nil
}

// Shape returns a copy of the axis sizes.
// Complexity: O(rank).
func (a *Array[T]) Shape() []int { return append([]int(nil), a.shape...) }

// Rank returns the number of axes. Complexity: O(1).
func (a *Array[T]) Rank() int { return len(a.shape) }

// Size returns the total element count. Complexity: O(1).
func (a *Array[T]) Size() int { return len(a.data) }

// Data returns a copy of the flat row-major buffer.
// Complexity: O(size).
func (a *Array[T]) Data() []T { return append([]T(nil), a.data...) }

// AtFlat returns the element at flat row-major position i.
// Complexity: O(1).
func (a *Array[T]) AtFlat(i int) T {
	// Hot path for scans: the caller iterates 0..Size()-1, so an out-of-range
	// position is a programmer error and the runtime bounds check applies.
	return a.data[i]
}

// SetFlat stores v at flat position i or returns ErrOutOfRange.
// Complexity: O(1).
func (a *Array[T]) SetFlat(i int, v T) error {
	if i < 0 || i >= len(a.data) {
		return arrayErrorf(ctxSetFlat, i, ErrOutOfRange)
	}
	a.data[i] = v

	return nil
}

// Offset maps a multi-index to its flat row-major position.
// MAIN DESCRIPTION:
//   - Bounds-check every coordinate and fold them with the strides.
//
// Implementation:
//   - Stage 1: len(idx) must equal the rank.
//   - Stage 2: 0 <= idx[d] < shape[d] for every axis.
//   - Stage 3: offset = Σ idx[d]*stride[d].
//
// Errors:
//   - ErrOutOfRange for a rank mismatch or any coordinate out of bounds.
//
// Complexity:
//   - Time O(rank), Space O(1).
func (a *Array[T]) Offset(idx ...int) (int, error) {
	off, err := a.indexOf(idx)
	if err != nil {
		return 0, arrayErrorf(ctxOffset, idx, err)
	}

	return off, nil
}

// indexOf computes the row-major offset or returns the bare ErrOutOfRange;
// public methods wrap it with their own context.
func (a *Array[T]) indexOf(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, ErrOutOfRange
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			return 0, ErrOutOfRange
		}
		off += i * a.strides[d]
	}

	return off, nil
}

// Unravel decomposes a flat position into its multi-index, most significant axis first.
// Errors: ErrOutOfRange outside [0, Size()).
// Complexity: O(rank).
func (a *Array[T]) Unravel(flat int) ([]int, error) {
	if flat < 0 || flat >= len(a.data) {
		return nil, arrayErrorf(ctxUnravel, flat, ErrOutOfRange)
	}
	idx := make([]int, len(a.shape))
	rem := flat
	for d, st := range a.strides {
		idx[d] = rem / st
		rem %= st
	}

	return idx, nil
}

// At returns the element at the multi-index or ErrOutOfRange.
// Complexity: O(rank).
func (a *Array[T]) At(idx ...int) (T, error) {
	off, err := a.indexOf(idx)
	if err != nil {
		var zero T
		return zero, arrayErrorf(ctxAt, idx, err)
	}

	return a.data[off], nil
}

// Set stores v at the multi-index or returns ErrOutOfRange.
// Complexity: O(rank).
func (a *Array[T]) Set(v T, idx ...int) error {
	off, err := a.indexOf(idx)
	if err != nil {
		return arrayErrorf(ctxSet, idx, err)
	}
	a.data[off] = v

	return nil
}

// Clone returns a deep copy with an independent buffer.
// Complexity: O(size).
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{
		shape:   append([]int(nil), a.shape...),
		strides: append([]int(nil), a.strides...),
		data:    append([]T(nil), a.data...),
	}
}

// Equal reports exact elementwise equality of shapes and values.
// No tolerance is applied. Complexity: O(size).
func (a *Array[T]) Equal(b *Array[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !SameShape(a.shape, b.shape) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}

	return true
}

// Fill sets every element to v. Complexity: O(size).
func (a *Array[T]) Fill(v T) {
	for i := range a.data {
		a.data[i] = v
	}
}
