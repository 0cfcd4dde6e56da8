// SPDX-License-Identifier: MIT

// Package sparse - Multiplicability Analyzer.
//
// The contraction always pairs A's LAST axis with B's FIRST axis.
//
//	A: [a0 ... a(n-2) | K]          free axes | contracted
//	B: [K | b1 ... b(m-2) | N]      contracted | batch axes | output axis
//	R: broadcast(free(A), batch(B)) ++ [N]
//
// Free axes of A and batch axes of B are compared right-aligned, numpy style;
// a missing position on the shorter side counts as size 1 and is owned
// outright by the other operand. An explicit size-1 axis facing a larger size
// broadcasts. B's output axis and the contracted axis are never compared; the
// contracted sizes must match exactly.
//
// Rank-1 B is a tensor-vector product (no output axis). Two rank-1 operands
// form a dot product whose scalar result is stored with shape [1].

package sparse

import (
	"fmt"

	"github.com/katalvlaran/spartensor/dense"
)

// Verdict is the Analyzer's answer for a pair of shapes.
type Verdict struct {
	Compatible           bool
	RequiresBroadcasting bool
	// Shape is the contraction's result shape; nil when not Compatible.
	Shape []int
}

// Analyze decides whether shapeA·shapeB is a valid contraction and whether any
// axis needs broadcasting. Every failure collapses to {false, false, nil};
// use ResultShape for the reason.
//
// Examples:
//
//	Analyze([]int{2, 3}, []int{3, 4})       // {true, false, [2 4]}
//	Analyze([]int{2, 3}, []int{4, 4})       // {false, false, nil}
//	Analyze([]int{1, 3, 4}, []int{4, 1, 5}) // {true, true, [1 3 5]}
//
// Complexity: O(rank(A) + rank(B)).
func Analyze(shapeA, shapeB []int) Verdict {
	p, err := analyze(shapeA, shapeB)
	if err != nil {
		return Verdict{}
	}

	return Verdict{
		Compatible:           true,
		RequiresBroadcasting: p.broadcast,
		Shape:                append([]int(nil), p.out...),
	}
}

// ResultShape returns the contraction's result shape or the reason it has none.
// Errors: ErrEmptyShape, ErrIncompatibleDimensions.
func ResultShape(shapeA, shapeB []int) ([]int, error) {
	p, err := analyze(shapeA, shapeB)
	if err != nil {
		return nil, sparseErrorf("ResultShape", err)
	}

	return append([]int(nil), p.out...), nil
}

// plan is the resolved layout the multiply engine walks.
// For result batch position q (0 <= q < batch):
//   - axA[q] is the A axis feeding q, or -1 when A has none there;
//   - axB[q] is the B axis feeding q, or -1 when B has none there.
type plan struct {
	shapeA, shapeB []int
	out            []int // result shape
	outStrides     []int // row-major strides of out
	batch          int   // leading result axes resolved from free(A)/batch(B)
	tail           bool  // result ends with B's last axis (rank(B) >= 2)
	axA, axB       []int
	broadcast      bool // some explicit size-1 axis expands
	direct         bool // B has no batch axes: coordinates copy straight from A
}

// analyze builds the contraction plan or returns the sentinel explaining why not.
// MAIN DESCRIPTION:
//   - Single source of truth for shape compatibility, shared by Analyze,
//     Multiply, MultiplyDense and WorthUsingSparse.
//
// Implementation:
//   - Stage 1: reject rank 0 (ErrEmptyShape) and negative sizes.
//   - Stage 2: contracted sizes must match (A last == B first).
//   - Stage 3: walk free(A) against batch(B) right-aligned; resolve each
//     position's size and owner; flag broadcasting.
//   - Stage 4: append B's output axis; a rank-0 result becomes [1].
//
// Complexity:
//   - Time O(rank(A)+rank(B)), Space O(rank(A)+rank(B)).
func analyze(shapeA, shapeB []int) (*plan, error) {
	a, b := len(shapeA), len(shapeB)
	if a == 0 || b == 0 {
		return nil, ErrEmptyShape
	}
	if dense.ValidateShape(shapeA) != nil || dense.ValidateShape(shapeB) != nil {
		return nil, fmt.Errorf("%w: negative axis size in %v·%v", ErrIncompatibleDimensions, shapeA, shapeB)
	}
	if shapeA[a-1] != shapeB[0] {
		return nil, fmt.Errorf("%w: contracted axis %d != %d", ErrIncompatibleDimensions, shapeA[a-1], shapeB[0])
	}

	freeA := a - 1
	batchB := max(b-2, 0)
	n := max(freeA, batchB)
	p := &plan{
		shapeA: append([]int(nil), shapeA...),
		shapeB: append([]int(nil), shapeB...),
		out:    make([]int, 0, n+1),
		batch:  n,
		tail:   b >= 2,
		axA:    make([]int, n),
		axB:    make([]int, n),
		direct: batchB == 0,
	}

	for q := 0; q < n; q++ {
		// distance from the right end of the compared block
		r := n - 1 - q
		p.axA[q], p.axB[q] = -1, -1
		if r < freeA {
			p.axA[q] = freeA - 1 - r
		}
		if r < batchB {
			p.axB[q] = batchB - r // B batch axes start at 1
		}

		switch {
		case p.axB[q] < 0:
			p.out = append(p.out, shapeA[p.axA[q]])
		case p.axA[q] < 0:
			p.out = append(p.out, shapeB[p.axB[q]])
		default:
			sa, sb := shapeA[p.axA[q]], shapeB[p.axB[q]]
			switch {
			case sa == sb:
				p.out = append(p.out, sa)
			case sa == 1:
				p.broadcast = true
				p.out = append(p.out, sb)
			case sb == 1:
				p.broadcast = true
				p.out = append(p.out, sa)
			default:
				return nil, fmt.Errorf("%w: axis sizes %d (A axis %d) and %d (B axis %d) do not broadcast",
					ErrIncompatibleDimensions, sa, p.axA[q], sb, p.axB[q])
			}
		}
	}

	if p.tail {
		p.out = append(p.out, shapeB[b-1])
	}
	if len(p.out) == 0 {
		p.out = append(p.out, 1)
	}
	p.outStrides = dense.Strides(p.out)

	return p, nil
}

// size returns the result element count.
func (p *plan) size() int { return dense.Volume(p.out) }
