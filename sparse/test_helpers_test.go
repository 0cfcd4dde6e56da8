// SPDX-License-Identifier: MIT
// Package sparse_test contains test helpers.
//
// Purpose:
//   • Small deterministic fixtures (Must* builders fail the test on error).
//   • An independent dense reference for the contraction, written straight
//     from the broadcasting rules rather than from the engine's plan.
//   • Integer-valued float fixtures so every sum is exact under any order.

package sparse_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spartensor/dense"
	"github.com/katalvlaran/spartensor/sparse"
)

// MustArray BUILDS a dense array from row-major data or fails the test.
func MustArray(t testing.TB, data []float64, shape ...int) *dense.Array[float64] {
	t.Helper()
	a, err := dense.FromSlice(data, shape...)
	require.NoError(t, err, "FromSlice(%v)", shape)

	return a
}

// MustZeros ALLOCATES a zero-filled dense array or fails the test.
func MustZeros(t testing.TB, shape ...int) *dense.Array[float64] {
	t.Helper()
	a, err := dense.NewArray[float64](shape...)
	require.NoError(t, err, "NewArray(%v)", shape)

	return a
}

// MustSparse CONVERTS a dense array with invariant validation switched on.
func MustSparse(t testing.TB, a *dense.Array[float64]) *sparse.Tensor[float64] {
	t.Helper()
	s, err := sparse.ToSparse[float64](a, sparse.WithValidation(true))
	require.NoError(t, err)

	return s
}

// MustDense DENSIFIES a Tensor or fails the test.
func MustDense(t testing.TB, s *sparse.Tensor[float64]) *dense.Array[float64] {
	t.Helper()
	d, err := sparse.ToDense(s)
	require.NoError(t, err)

	return d
}

// RandomArray FILLS a new array with integers in [-5,5]\{0} at the given
// density (probability of a non-zero), deterministic for a seed.
func RandomArray(t testing.TB, seed int64, density float64, shape ...int) *dense.Array[float64] {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	a := MustZeros(t, shape...)
	for i := 0; i < a.Size(); i++ {
		if rng.Float64() >= density {
			continue
		}
		v := float64(rng.Intn(5) + 1)
		if rng.Intn(2) == 0 {
			v = -v
		}
		require.NoError(t, a.SetFlat(i, v))
	}

	return a
}

// ReferenceContract COMPUTES a·b densely: for every result coordinate it sums
// over the contracted axis, broadcasting size-1 axes numpy style.
//
//	A = [free... | K], B = [K | batch... | N], R = broadcast(free, batch) ++ [N]
func ReferenceContract(t testing.TB, a, b *dense.Array[float64]) *dense.Array[float64] {
	t.Helper()
	shapeA, shapeB := a.Shape(), b.Shape()
	outShape, err := sparse.ResultShape(shapeA, shapeB)
	require.NoError(t, err)
	out := MustZeros(t, outShape...)

	ra, rb := len(shapeA), len(shapeB)
	k := shapeA[ra-1]
	freeA := ra - 1
	batchB := max(rb-2, 0)
	n := max(freeA, batchB)
	hasTail := rb >= 2

	idxA := make([]int, ra)
	idxB := make([]int, rb)
	for flat := 0; flat < out.Size(); flat++ {
		coords, uerr := out.Unravel(flat)
		require.NoError(t, uerr)
		batch := coords[:n]

		// A's free axes sit at the right end of the batch block.
		for d := 0; d < freeA; d++ {
			c := batch[n-freeA+d]
			if shapeA[d] == 1 {
				c = 0
			}
			idxA[d] = c
		}
		// B's batch axes 1..rb-2 likewise.
		for d := 1; d <= batchB; d++ {
			c := batch[n-batchB+d-1]
			if shapeB[d] == 1 {
				c = 0
			}
			idxB[d] = c
		}
		if hasTail {
			idxB[rb-1] = coords[len(coords)-1]
		}

		var sum float64
		for kk := 0; kk < k; kk++ {
			idxA[ra-1] = kk
			idxB[0] = kk
			va, aerr := a.At(idxA...)
			require.NoError(t, aerr)
			vb, berr := b.At(idxB...)
			require.NoError(t, berr)
			sum += va * vb
		}
		require.NoError(t, out.SetFlat(flat, sum))
	}

	return out
}

// RequireSameTensor ASSERTS identical shape, values and coordinates (order included).
func RequireSameTensor(t testing.TB, want, got *sparse.Tensor[float64]) {
	t.Helper()
	require.Equal(t, want.Shape(), got.Shape(), "shape")
	require.Equal(t, want.Values(), got.Values(), "values")
	require.Equal(t, want.Indices(), got.Indices(), "indices")
}
