// SPDX-License-Identifier: MIT

// Package dense provides a minimal row-major N-dimensional array.
//
// It is the dense collaborator of package sparse: the sparse core only needs
// to read a shape, an element count, a rank and elements by flat position,
// and to allocate a zero-filled array it can index-assign by multi-index.
// Array covers exactly that surface and nothing more; elementwise arithmetic
// and formatting are not provided.
//
// Layout:
//
//	offset(i0, i1, ..., in-1) = Σ i_d * stride[d]
//	stride[n-1] = 1, stride[d] = shape[d+1] * stride[d+1]
//
// A rank-0 array is a scalar with one element; an axis of size 0 is legal and
// yields an empty buffer.
//
// Complexity quicksheet:
//   - NewArray: O(size) zero-init; At/Set: O(rank); AtFlat/SetFlat: O(1);
//     Clone/Equal: O(size).
package dense
