// SPDX-License-Identifier: MIT

package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/spartensor/sparse"
)

// AddSuite exercises the elementwise merge against dense addition.
type AddSuite struct {
	suite.Suite
}

func (s *AddSuite) TestMatchesDenseSum() {
	shapes := [][]int{{5}, {3, 4}, {2, 3, 4}, {1, 1}}
	for i, shape := range shapes {
		da := RandomArray(s.T(), int64(i), 0.4, shape...)
		db := RandomArray(s.T(), int64(i+50), 0.4, shape...)
		want := da.Clone()
		for k := 0; k < want.Size(); k++ {
			require.NoError(s.T(), want.SetFlat(k, da.AtFlat(k)+db.AtFlat(k)))
		}

		got, err := sparse.Add(MustSparse(s.T(), da), MustSparse(s.T(), db), sparse.WithValidation(true))
		require.NoError(s.T(), err, "shape %v", shape)
		require.True(s.T(), want.Equal(MustDense(s.T(), got)), "shape %v", shape)
	}
}

func (s *AddSuite) TestCancellationDropsEntries() {
	a := MustSparse(s.T(), MustArray(s.T(), []float64{1, 0, 2, 0}, 2, 2))
	b := MustSparse(s.T(), MustArray(s.T(), []float64{-1, 3, 0, 0}, 2, 2))
	r, err := sparse.Add(a, b, sparse.WithValidation(true))
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{3, 2}, r.Values())
	require.Equal(s.T(), [][]int{{0, 1}, {1, 0}}, r.Indices())
}

func (s *AddSuite) TestCommutative() {
	a := MustSparse(s.T(), RandomArray(s.T(), 8, 0.3, 4, 4))
	b := MustSparse(s.T(), RandomArray(s.T(), 9, 0.3, 4, 4))
	ab, err := sparse.Add(a, b)
	require.NoError(s.T(), err)
	ba, err := sparse.Add(b, a)
	require.NoError(s.T(), err)
	RequireSameTensor(s.T(), ab, ba)
}

func (s *AddSuite) TestEmptyOperands() {
	a := MustSparse(s.T(), MustZeros(s.T(), 3))
	b := MustSparse(s.T(), MustArray(s.T(), []float64{0, 4, 0}, 3))
	r, err := sparse.Add(a, b)
	require.NoError(s.T(), err)
	RequireSameTensor(s.T(), b, r)

	r, err = sparse.Add(a, a)
	require.NoError(s.T(), err)
	require.Zero(s.T(), r.NNZ())
}

func (s *AddSuite) TestErrors() {
	a := MustSparse(s.T(), MustZeros(s.T(), 2, 3))
	b := MustSparse(s.T(), MustZeros(s.T(), 3, 2))

	_, err := sparse.Add(a, b)
	require.ErrorIs(s.T(), err, sparse.ErrShapeMismatch)
	require.Equal(s.T(), sparse.KindShapeMismatch, sparse.KindOf(err))
	require.Contains(s.T(), err.Error(), "[2 3] vs [3 2]")

	_, err = sparse.Add[float64](nil, a)
	require.ErrorIs(s.T(), err, sparse.ErrNilOperand)
}

func TestAddSuite(t *testing.T) {
	suite.Run(t, new(AddSuite))
}
