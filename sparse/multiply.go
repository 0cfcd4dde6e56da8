// SPDX-License-Identifier: MIT

// Package sparse - Sparse Multiply Engine.
//
// Algorithm (A·B, A's last axis against B's first axis):
//  1. Index B: multi-map first-axis coordinate → entry positions of B.
//  2. For every entry i of A, look up its last-axis coordinate; for every
//     matching entry j of B compute the output coordinate and accumulate
//     A.values[i] * B.values[j] there.
//  3. Contributions landing on the same coordinate are SUMMED (that is the
//     contraction); the accumulator is flushed once into a Tensor in
//     row-major order, dropping sums that cancel to exactly zero.
//
// Output coordinate per batch axis q (see analyze.go):
//   - only one operand owns q → that operand's coordinate;
//   - A's size is 1 → B's coordinate; B's size is 1 → A's coordinate;
//   - otherwise both coordinates must agree, else (i, j) belong to different
//     batches and the pair contributes nothing.
//
// Complexity: O(nnz(A) + nnz(B) + matches*rank) time; worst case
// O(nnz(A)*nnz(B)) matches when all entries share one contracted coordinate.

package sparse

import (
	"fmt"

	"github.com/katalvlaran/spartensor/dense"
)

const (
	opMultiply      = "Multiply"
	opMultiplyDense = "MultiplyDense"
)

// Multiply contracts a's last axis against b's first axis and returns the
// result as a Tensor. Shapes are analyzed before any work is done.
//
// Errors:
//   - ErrNilOperand, ErrEmptyShape, ErrIncompatibleDimensions;
//   - ErrInternalConsistency only under WithValidation on a defective result.
//
// Example:
//
//	A = [[1,2],[0,0]], B = [[1,0],[1,0]]  ⇒  one stored entry (0,0) = 3
func Multiply[T dense.Scalar](a, b *Tensor[T], opts ...Option) (*Tensor[T], error) {
	if a == nil || b == nil {
		return nil, sparseErrorf(opMultiply, ErrNilOperand)
	}
	p, err := analyze(a.shape, b.shape)
	if err != nil {
		return nil, sparseErrorf(opMultiply, err)
	}
	o := gatherOptions(opts...)

	e := newEngine(p, a, b)
	matches := e.matches()
	strategy := e.choose(o, matches)
	acc := newAccumulator[T](strategy, p.size(), matches)
	e.run(acc)
	r := acc.tensor(p.out)

	o.logger.Debug().
		Ints("shape", p.out).
		Int("nnz_a", a.NNZ()).
		Int("nnz_b", b.NNZ()).
		Int("matches", matches).
		Bool("broadcast", p.broadcast).
		Stringer("accumulator", strategy).
		Int("nnz", r.NNZ()).
		Msg("sparse: multiply")

	return finish(opMultiply, r, o)
}

// MultiplyDense contracts two dense sources through the sparse engine and
// returns a dense result accumulated in place.
// MAIN DESCRIPTION:
//   - Entry for callers holding dense operands that WorthUsingSparse approved.
//
// Implementation:
//   - Stage 1: analyze shapes first (no conversion on incompatible input).
//   - Stage 2: convert both operands (ToSparseParallel semantics; honors WithWorkers).
//   - Stage 3: run the engine into a dense buffer of the result size.
//
// Errors:
//   - ErrNilOperand, ErrEmptyShape, ErrIncompatibleDimensions, ErrInternalConsistency.
//
// Complexity:
//   - Time O(size(A) + size(B) + size(R) + matches*rank), Space O(size(R) + nnz).
func MultiplyDense[T dense.Scalar](a, b Source[T], opts ...Option) (*dense.Array[T], error) {
	if a == nil || b == nil {
		return nil, sparseErrorf(opMultiplyDense, ErrNilOperand)
	}
	p, err := analyze(a.Shape(), b.Shape())
	if err != nil {
		return nil, sparseErrorf(opMultiplyDense, err)
	}
	ta, err := ToSparseParallel(a, opts...)
	if err != nil {
		return nil, sparseErrorf(opMultiplyDense, err)
	}
	tb, err := ToSparseParallel(b, opts...)
	if err != nil {
		return nil, sparseErrorf(opMultiplyDense, err)
	}

	o := gatherOptions(opts...)
	e := newEngine(p, ta, tb)
	acc := &denseAccumulator[T]{buf: make([]T, p.size())}
	e.run(acc)

	o.logger.Debug().
		Ints("shape", p.out).
		Int("nnz_a", ta.NNZ()).
		Int("nnz_b", tb.NNZ()).
		Msg("sparse: multiply into dense")

	out, err := dense.FromSlice(acc.buf, p.out...)
	if err != nil {
		return nil, sparseErrorf(opMultiplyDense, fmt.Errorf("%w: %w", ErrInternalConsistency, err))
	}

	return out, nil
}

// engine walks one analyzed pair of Tensors.
type engine[T dense.Scalar] struct {
	p    *plan
	a, b *Tensor[T]
	rows map[int][]int // B first-axis coordinate → entry positions in B
}

// newEngine builds the B index (step 1). Complexity: O(nnz(B)).
func newEngine[T dense.Scalar](p *plan, a, b *Tensor[T]) *engine[T] {
	rows := make(map[int][]int)
	for j, k := range b.indices[0] {
		rows[k] = append(rows[k], j)
	}

	return &engine[T]{p: p, a: a, b: b, rows: rows}
}

// matches counts the (i, j) pairs sharing a contracted coordinate.
// It is an upper bound on contributions (batch mismatches are skipped later).
// Complexity: O(nnz(A)).
func (e *engine[T]) matches() int {
	last := e.a.indices[len(e.p.shapeA)-1]
	n := 0
	for i := range e.a.values {
		n += len(e.rows[last[i]])
	}

	return n
}

// choose resolves AccumulateAuto against the expected result density.
func (e *engine[T]) choose(o Options, matches int) Accumulator {
	if o.accumulator != AccumulateAuto {
		return o.accumulator
	}
	if float64(matches) >= o.denseFraction*float64(e.p.size()) {
		return AccumulateDense
	}

	return AccumulateMap
}

// run performs step 2: every matching pair contributes to acc.
func (e *engine[T]) run(acc accumulator[T]) {
	lastA := e.a.indices[len(e.p.shapeA)-1]
	for i, va := range e.a.values {
		js := e.rows[lastA[i]]
		if len(js) == 0 {
			continue // implicit zero row
		}
		if e.p.direct {
			base := e.baseA(i)
			for _, j := range js {
				acc.add(base+e.tailOffset(j), va*e.b.values[j])
			}
			continue
		}
		for _, j := range js {
			off, ok := e.offset(i, j)
			if !ok {
				continue // different batches
			}
			acc.add(off, va*e.b.values[j])
		}
	}
}

// baseA folds A's free coordinates of entry i into the result offset
// (direct layout: result batch axis q is A axis q).
func (e *engine[T]) baseA(i int) int {
	off := 0
	for q := 0; q < e.p.batch; q++ {
		off += e.a.indices[q][i] * e.p.outStrides[q]
	}

	return off
}

// tailOffset is B's output-axis contribution of entry j (stride 1).
func (e *engine[T]) tailOffset(j int) int {
	if !e.p.tail {
		return 0
	}

	return e.b.indices[len(e.p.shapeB)-1][j]
}

// offset resolves the result offset of pair (i, j) under broadcasting.
// Returns false when the pair spans two different batches.
func (e *engine[T]) offset(i, j int) (int, bool) {
	p := e.p
	off := 0
	for q := 0; q < p.batch; q++ {
		da, db := p.axA[q], p.axB[q]
		var c int
		switch {
		case db < 0:
			c = e.a.indices[da][i]
		case da < 0:
			c = e.b.indices[db][j]
		case p.shapeA[da] == 1:
			c = e.b.indices[db][j]
		case p.shapeB[db] == 1:
			c = e.a.indices[da][i]
		default:
			c = e.a.indices[da][i]
			if c != e.b.indices[db][j] {
				return 0, false
			}
		}
		off += c * p.outStrides[q]
	}

	return off + e.tailOffset(j), true
}
