// SPDX-License-Identifier: MIT

package sparse

// Test bridge: exposes the unchecked constructor so external tests can build
// broken Tensors for the boundary checks.

// NewUncheckedTensor adopts shape, values and indices without validation.
func NewUncheckedTensor(shape []int, values []float64, indices [][]int) *Tensor[float64] {
	return newTensor(shape, values, indices)
}
