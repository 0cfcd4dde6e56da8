// SPDX-License-Identifier: MIT

package sparse

import (
	"slices"

	"github.com/katalvlaran/spartensor/dense"
)

// accumulator merges contributions by result offset. The offset is the
// row-major fold of the coordinate tuple, a bijection for a fixed shape, so
// merging by offset is merging by coordinate.
type accumulator[T dense.Scalar] interface {
	add(off int, v T)
	tensor(shape []int) *Tensor[T]
}

// newAccumulator builds the strategy picked by engine.choose.
// hint sizes the map for the expected distinct offsets.
func newAccumulator[T dense.Scalar](kind Accumulator, size, hint int) accumulator[T] {
	if kind == AccumulateDense {
		return &denseAccumulator[T]{buf: make([]T, size)}
	}

	return &mapAccumulator[T]{sums: make(map[int]T, min(hint, size))}
}

// mapAccumulator keeps one running sum per touched offset.
// Memory: O(distinct offsets).
type mapAccumulator[T dense.Scalar] struct {
	sums map[int]T
}

func (m *mapAccumulator[T]) add(off int, v T) { m.sums[off] += v }

// tensor flushes the sums once: keys ascending (row-major order), zero sums dropped.
// Complexity: O(k log k + rank*k) for k distinct offsets.
func (m *mapAccumulator[T]) tensor(shape []int) *Tensor[T] {
	keys := make([]int, 0, len(m.sums))
	for off, v := range m.sums {
		if v != 0 {
			keys = append(keys, off)
		}
	}
	slices.Sort(keys)

	strides := dense.Strides(shape)
	values := make([]T, 0, len(keys))
	indices := emptyIndices(len(shape), len(keys))
	for _, off := range keys {
		values = append(values, m.sums[off])
		appendCoords(indices, strides, off)
	}

	return newTensor(append([]int(nil), shape...), values, indices)
}

// denseAccumulator sums straight into a flat buffer of the result size.
// Memory: O(size of the result).
type denseAccumulator[T dense.Scalar] struct {
	buf []T
}

func (d *denseAccumulator[T]) add(off int, v T) { d.buf[off] += v }

// tensor rescans the buffer in flat order; the output matches mapAccumulator exactly.
// Complexity: O(size + rank*nnz).
func (d *denseAccumulator[T]) tensor(shape []int) *Tensor[T] {
	strides := dense.Strides(shape)
	c := chunk[T]{indices: emptyIndices(len(shape), 0)}
	for flat, v := range d.buf {
		if v == 0 {
			continue
		}
		c.values = append(c.values, v)
		appendCoords(c.indices, strides, flat)
	}

	return newTensor(append([]int(nil), shape...), c.values, c.indices)
}
