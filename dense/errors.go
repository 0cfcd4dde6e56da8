// SPDX-License-Identifier: MIT
// Package dense: sentinel error set.
// Every exported operation returns one of these sentinels (possibly wrapped
// with call-site context via %w). Callers match them with errors.Is.
// Public indexers never panic on user-triggered conditions.

package dense

import "errors"

var (
	// ErrBadShape is returned when a requested shape carries a negative axis size.
	ErrBadShape = errors.New("dense: invalid shape")

	// ErrOutOfRange indicates an index (flat or per-axis) outside valid bounds,
	// or a multi-index whose length differs from the array rank.
	ErrOutOfRange = errors.New("dense: index out of range")

	// ErrDataLength indicates that a backing slice does not match the
	// element count implied by the shape.
	ErrDataLength = errors.New("dense: data length does not match shape")
)
