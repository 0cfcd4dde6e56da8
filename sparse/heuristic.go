// SPDX-License-Identifier: MIT

// Package sparse - Sparsity Heuristic.
//
// Cost model (coarse, only picks a code path):
//
//	sparse ≈ size(A) + size(B) + nnz(A)*nnz(B)   conversion + worst-case matches
//	dense  ≈ size(R)                             element count of the result shape
//
// The sparse path wins when the estimate is strictly smaller. Typical winners
// are operands with nnz << size whose result is much larger than the inputs.

package sparse

import (
	"math"

	"github.com/katalvlaran/spartensor/dense"
)

const opWorthUsingSparse = "WorthUsingSparse"

// Cost carries both estimates of the heuristic so callers can log or compare them.
type Cost struct {
	Sparse int // size(A) + size(B) + nnz(A)*nnz(B), saturated at math.MaxInt
	Dense  int // element count of the contraction's result shape
}

// PreferSparse reports whether the sparse estimate is strictly smaller.
func (c Cost) PreferSparse() bool { return c.Sparse < c.Dense }

// Sparsity returns the fraction of elements exactly equal to zero, in [0, 1].
// A nil or size-0 source holds no non-zero element and reports 1.
// Complexity: O(size).
func Sparsity[T dense.Scalar](src Source[T]) float64 {
	if src == nil {
		return 1
	}
	n := src.Size()
	if n == 0 {
		return 1
	}

	return float64(n-countNonZero(src)) / float64(n)
}

// IsSparse reports Sparsity(src) >= threshold. See DefaultSparseThreshold.
func IsSparse[T dense.Scalar](src Source[T], threshold float64) bool {
	return Sparsity(src) >= threshold
}

// EstimateCost evaluates the cost model for a·b.
// MAIN DESCRIPTION:
//   - Count nnz of both operands directly and size the analyzed result shape.
//
// Errors:
//   - ErrNilOperand, ErrEmptyShape, ErrIncompatibleDimensions.
//
// Complexity:
//   - Time O(size(A) + size(B)), Space O(rank).
func EstimateCost[T dense.Scalar](a, b Source[T]) (Cost, error) {
	if a == nil || b == nil {
		return Cost{}, sparseErrorf("EstimateCost", ErrNilOperand)
	}
	p, err := analyze(a.Shape(), b.Shape())
	if err != nil {
		return Cost{}, sparseErrorf("EstimateCost", err)
	}
	nnzA, nnzB := countNonZero(a), countNonZero(b)

	return Cost{
		Sparse: satAdd(satAdd(a.Size(), b.Size()), satMul(nnzA, nnzB)),
		Dense:  p.size(),
	}, nil
}

// WorthUsingSparse reports whether the sparse engine is estimated cheaper
// than a dense contraction of a and b.
// Errors: as EstimateCost.
func WorthUsingSparse[T dense.Scalar](a, b Source[T]) (bool, error) {
	c, err := EstimateCost(a, b)
	if err != nil {
		return false, sparseErrorf(opWorthUsingSparse, err)
	}

	return c.PreferSparse(), nil
}

func countNonZero[T dense.Scalar](src Source[T]) int {
	nnz := 0
	for i, n := 0, src.Size(); i < n; i++ {
		if src.AtFlat(i) != 0 {
			nnz++
		}
	}

	return nnz
}

// satAdd and satMul clamp non-negative operands at math.MaxInt.
func satAdd(x, y int) int {
	if x > math.MaxInt-y {
		return math.MaxInt
	}

	return x + y
}

func satMul(x, y int) int {
	if x == 0 || y == 0 {
		return 0
	}
	if x > math.MaxInt/y {
		return math.MaxInt
	}

	return x * y
}
