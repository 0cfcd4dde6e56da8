// SPDX-License-Identifier: MIT

package dense_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spartensor/dense"
)

func TestNewArray(t *testing.T) {
	t.Parallel()

	a, err := dense.NewArray[float64](2, 3, 4)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3, 4}, a.Shape())
	require.Equal(t, 3, a.Rank())
	require.Equal(t, 24, a.Size())
	for i := 0; i < a.Size(); i++ {
		require.Zero(t, a.AtFlat(i))
	}

	s, err := dense.NewArray[int]()
	require.NoError(t, err)
	require.Equal(t, 0, s.Rank())
	require.Equal(t, 1, s.Size(), "rank 0 is a scalar")

	e, err := dense.NewArray[float32](3, 0)
	require.NoError(t, err)
	require.Zero(t, e.Size())

	_, err = dense.NewArray[float64](2, -1)
	require.ErrorIs(t, err, dense.ErrBadShape)
}

func TestFromSlice(t *testing.T) {
	t.Parallel()

	data := []int{1, 2, 3, 4, 5, 6}
	a, err := dense.FromSlice(data, 2, 3)
	require.NoError(t, err)
	data[0] = 100
	v, err := a.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, v, "FromSlice copies its input")

	_, err = dense.FromSlice([]int{1, 2, 3}, 2, 2)
	require.ErrorIs(t, err, dense.ErrDataLength)
	_, err = dense.FromSlice([]int{1}, -1)
	require.ErrorIs(t, err, dense.ErrBadShape)
}

func TestArray_IndexingRoundTrip(t *testing.T) {
	t.Parallel()

	a, err := dense.NewArray[int](3, 4, 5)
	require.NoError(t, err)
	for flat := 0; flat < a.Size(); flat++ {
		require.NoError(t, a.SetFlat(flat, flat))
	}
	// (1,2,3) -> 1*20 + 2*5 + 3
	off, err := a.Offset(1, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 33, off)

	for flat := 0; flat < a.Size(); flat++ {
		idx, uerr := a.Unravel(flat)
		require.NoError(t, uerr)
		v, aerr := a.At(idx...)
		require.NoError(t, aerr)
		require.Equal(t, flat, v, "At(Unravel(%d))", flat)
	}

	require.NoError(t, a.Set(-7, 2, 3, 4))
	require.Equal(t, -7, a.AtFlat(a.Size()-1))
}

func TestArray_OutOfRange(t *testing.T) {
	t.Parallel()

	a, err := dense.NewArray[float64](2, 2)
	require.NoError(t, err)

	_, err = a.At(2, 0)
	require.ErrorIs(t, err, dense.ErrOutOfRange)
	_, err = a.At(0)
	require.ErrorIs(t, err, dense.ErrOutOfRange, "rank mismatch")
	_, err = a.At(0, -1)
	require.ErrorIs(t, err, dense.ErrOutOfRange)
	require.ErrorIs(t, a.Set(1, 0, 0, 0), dense.ErrOutOfRange)
	require.ErrorIs(t, a.SetFlat(4, 1), dense.ErrOutOfRange)
	require.ErrorIs(t, a.SetFlat(-1, 1), dense.ErrOutOfRange)
	_, err = a.Offset(5, 5)
	require.ErrorIs(t, err, dense.ErrOutOfRange)
	_, err = a.Unravel(4)
	require.ErrorIs(t, err, dense.ErrOutOfRange)

	require.Contains(t, a.Set(1, 9, 9).Error(), "Array.Set([9 9])")
}

func TestArray_CopiesAndEqual(t *testing.T) {
	t.Parallel()

	a, err := dense.FromSlice([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)

	shape := a.Shape()
	shape[0] = 9
	data := a.Data()
	data[0] = 9
	require.Equal(t, []int{2, 2}, a.Shape())
	require.Equal(t, []float64{1, 2, 3, 4}, a.Data())

	b := a.Clone()
	require.True(t, a.Equal(b))
	require.NoError(t, b.SetFlat(0, 0))
	require.False(t, a.Equal(b))

	flat, err := dense.FromSlice([]float64{1, 2, 3, 4}, 4)
	require.NoError(t, err)
	require.False(t, a.Equal(flat), "same data, different shape")

	var nilArr *dense.Array[float64]
	require.True(t, nilArr.Equal(nil))
	require.False(t, a.Equal(nil))

	b.Fill(5)
	require.Equal(t, []float64{5, 5, 5, 5}, b.Data())
}

func TestShapeHelpers(t *testing.T) {
	t.Parallel()

	require.Equal(t, []int{12, 4, 1}, dense.Strides([]int{2, 3, 4}))
	require.Empty(t, dense.Strides(nil))
	require.Equal(t, 24, dense.Volume([]int{2, 3, 4}))
	require.Equal(t, 1, dense.Volume(nil))
	require.Equal(t, 0, dense.Volume([]int{3, 0}))

	require.NoError(t, dense.ValidateShape([]int{0, 2}))
	require.ErrorIs(t, dense.ValidateShape([]int{1, -2}), dense.ErrBadShape)

	require.True(t, dense.SameShape([]int{2, 3}, []int{2, 3}))
	require.False(t, dense.SameShape([]int{2, 3}, []int{3, 2}))
	require.False(t, dense.SameShape([]int{2}, []int{2, 1}))
}
