// SPDX-License-Identifier: MIT

// Package sparse stores mostly-zero N-dimensional arrays in coordinate form
// and contracts them without densifying.
//
// What is inside:
//   - Tensor: shape + non-zero values + one coordinate column per axis.
//   - Converter: ToSparse / ToSparseParallel (dense → Tensor), ToDense (Tensor → dense).
//   - Analyzer: Analyze / ResultShape decide whether A·B is a valid contraction
//     (A's last axis against B's first axis) and whether an axis broadcasts.
//   - Engine: Multiply (Tensor result) and MultiplyDense (dense operands,
//     dense result) walk both coordinate sets through a hash multi-map.
//   - Heuristic: Sparsity, IsSparse, EstimateCost, WorthUsingSparse pick
//     between the sparse engine and a dense contraction.
//   - Add: same-shape elementwise sum.
//
// Shapes of a contraction:
//
//	[2,3]   · [3,4]   → [2,4]     plain matrix product
//	[1,3,4] · [4,1,5] → [1,3,5]   size-1 batch axis of B broadcasts
//	[2,3]   · [3]     → [2]       tensor-vector product
//	[3]     · [3]     → [1]       dot product
//
// Errors are sentinels (ErrShapeMismatch, ErrEmptyShape,
// ErrIncompatibleDimensions, ErrInternalConsistency, ErrNilOperand) matched
// with errors.Is, or classified with KindOf.
//
// Quick example:
//
//	a, _ := dense.FromSlice([]float64{1, 2, 0, 0}, 2, 2)
//	b, _ := dense.FromSlice([]float64{1, 0, 1, 0}, 2, 2)
//	sa, _ := sparse.ToSparse[float64](a)
//	sb, _ := sparse.ToSparse[float64](b)
//	r, _ := sparse.Multiply(sa, sb) // one entry: (0,0) = 3
//
// Everything runs synchronously on the caller's goroutine except the
// fan-out inside ToSparseParallel. Tensors are immutable and safe to share.
package sparse
