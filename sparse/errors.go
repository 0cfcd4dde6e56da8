// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set and error kinds.
// Every operation returns one of these sentinels, possibly wrapped with
// call-site context ("Op: %w"). Callers match them with errors.Is or ask
// KindOf for the enumerated kind. No operation panics on user input.

package sparse

import (
	"errors"
	"fmt"
)

// ERROR PRIORITY (documented, enforced in tests):
// nil operand -> empty shape -> incompatible dimensions / shape mismatch
// -> internal consistency.

var (
	// ErrNilOperand indicates that a nil Tensor or Source was passed in.
	ErrNilOperand = errors.New("sparse: nil operand")

	// ErrShapeMismatch is returned when two operands required to share an
	// identical shape (Add) do not.
	ErrShapeMismatch = errors.New("sparse: shape mismatch")

	// ErrIncompatibleDimensions is returned when a contraction pair fails the
	// multiplicability analysis: contracted-axis size mismatch, or a non-1
	// size mismatch on any other compared axis.
	ErrIncompatibleDimensions = errors.New("sparse: incompatible dimensions")

	// ErrEmptyShape is returned when an operand has rank 0. It wraps
	// ErrIncompatibleDimensions, so errors.Is matches both.
	ErrEmptyShape = fmt.Errorf("sparse: rank-0 operand: %w", ErrIncompatibleDimensions)

	// ErrInternalConsistency signals a Tensor invariant violated at a boundary
	// check. It indicates a defect upstream, never a user input error.
	ErrInternalConsistency = errors.New("sparse: internal consistency violation")
)

// Kind enumerates the error kinds a caller can branch on.
type Kind int

const (
	// KindNone is reported for a nil error.
	KindNone Kind = iota
	KindNilOperand
	KindShapeMismatch
	KindEmptyShape
	KindIncompatibleDimensions
	KindInternalConsistency
	// KindUnknown is reported for errors that carry no sentinel of this package.
	KindUnknown
)

var kindNames = [...]string{
	KindNone:                   "none",
	KindNilOperand:             "nil-operand",
	KindShapeMismatch:          "shape-mismatch",
	KindEmptyShape:             "empty-shape",
	KindIncompatibleDimensions: "incompatible-dimensions",
	KindInternalConsistency:    "internal-consistency",
	KindUnknown:                "unknown",
}

// String returns a stable lower-case name for k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}

	return kindNames[k]
}

// KindOf classifies err. ErrEmptyShape is checked before
// ErrIncompatibleDimensions because it wraps the latter.
// Complexity: O(depth of the wrap chain).
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNilOperand):
		return KindNilOperand
	case errors.Is(err, ErrEmptyShape):
		return KindEmptyShape
	case errors.Is(err, ErrIncompatibleDimensions):
		return KindIncompatibleDimensions
	case errors.Is(err, ErrShapeMismatch):
		return KindShapeMismatch
	case errors.Is(err, ErrInternalConsistency):
		return KindInternalConsistency
	default:
		return KindUnknown
	}
}

// sparseErrorf wraps err with an operation tag; the sentinel survives for errors.Is.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
