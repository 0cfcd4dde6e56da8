// Package spartensor is an in-memory toolkit for sparse tensor contraction:
// coordinate-format tensors, shape analysis with broadcasting, and a
// contraction engine whose cost is driven by the non-zeros, not the volume.
//
// What is inside?
//
//	dense/   row-major N-dimensional Array, strides, shape helpers
//	sparse/  coordinate Tensor, dense↔sparse conversion (serial and
//	         parallel), Analyze/ResultShape, Multiply/MultiplyDense,
//	         Add, and the Sparsity/WorthUsingSparse heuristic
//
// Contraction at a glance (A's last axis against B's first axis):
//
//	A: [free... | K]    B: [K | batch... | N]
//	R: broadcast(free(A), batch(B)) ++ [N]
//
//	[2,3]·[3,4]     → [2,4]      plain matrix product
//	[1,3,4]·[4,1,5] → [1,3,5]    size-1 axes broadcast
//	[2,3]·[3]       → [2]        tensor-vector product
//
// Runnable walk-through: examples/sparse_contraction.
//
//	go get github.com/katalvlaran/spartensor/sparse
package spartensor
