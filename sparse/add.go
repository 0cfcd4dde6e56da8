// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"

	"github.com/katalvlaran/spartensor/dense"
)

const opAdd = "Add"

// Add returns the elementwise sum of two Tensors of identical shape.
// MAIN DESCRIPTION:
//   - The only elementwise operation of the package besides the contraction.
//
// Implementation:
//   - Stage 1: shapes must be identical (ErrShapeMismatch otherwise).
//   - Stage 2: two-pointer merge by row-major offset; both inputs are already
//     in row-major order, so the output is too.
//   - Stage 3: coinciding entries are summed; exact-zero sums are dropped.
//
// Errors:
//   - ErrNilOperand, ErrShapeMismatch; ErrInternalConsistency under WithValidation.
//
// Complexity:
//   - Time O(rank*(nnz(a)+nnz(b))), Space O(rank*(nnz(a)+nnz(b))).
func Add[T dense.Scalar](a, b *Tensor[T], opts ...Option) (*Tensor[T], error) {
	if a == nil || b == nil {
		return nil, sparseErrorf(opAdd, ErrNilOperand)
	}
	if !dense.SameShape(a.shape, b.shape) {
		return nil, sparseErrorf(opAdd, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a.shape, b.shape))
	}
	o := gatherOptions(opts...)

	strides := dense.Strides(a.shape)
	na, nb := len(a.values), len(b.values)
	values := make([]T, 0, na+nb)
	indices := emptyIndices(len(a.shape), na+nb)

	i, j := 0, 0
	for i < na || j < nb {
		var (
			off int
			v   T
		)
		switch {
		case j >= nb:
			off, v = a.offsetOf(i, strides), a.values[i]
			i++
		case i >= na:
			off, v = b.offsetOf(j, strides), b.values[j]
			j++
		default:
			oa, ob := a.offsetOf(i, strides), b.offsetOf(j, strides)
			switch {
			case oa < ob:
				off, v = oa, a.values[i]
				i++
			case ob < oa:
				off, v = ob, b.values[j]
				j++
			default:
				off, v = oa, a.values[i]+b.values[j]
				i++
				j++
			}
		}
		if v == 0 {
			continue // cancellation
		}
		values = append(values, v)
		appendCoords(indices, strides, off)
	}

	return finish(opAdd, newTensor(a.Shape(), values, indices), o)
}
