// SPDX-License-Identifier: MIT

// Package dense: element constraint and shape helpers shared with package sparse.
package dense

// Scalar is the set of real element types an Array may hold.
// Every member has a well-defined zero, exact equality, + and *.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Strides returns row-major strides for shape.
// stride[last] = 1 and stride[d] = shape[d+1] * stride[d+1].
// A rank-0 shape yields an empty slice.
// Complexity: O(rank).
func Strides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for d := len(shape) - 1; d >= 0; d-- {
		strides[d] = acc
		acc *= shape[d]
	}

	return strides
}

// Volume returns the element count of shape (product of sizes; 1 for rank 0).
// Complexity: O(rank).
func Volume(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}

	return n
}

// ValidateShape reports ErrBadShape when any axis size is negative.
// Complexity: O(rank).
func ValidateShape(shape []int) error {
	for _, s := range shape {
		if s < 0 {
			return ErrBadShape
		}
	}

	return nil
}

// SameShape reports whether a and b have identical rank and sizes.
func SameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for d := range a {
		if a[d] != b[d] {
			return false
		}
	}

	return true
}
