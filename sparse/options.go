// SPDX-License-Identifier: MIT

// Package sparse: functional configuration for conversion and contraction.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves the effective configuration.
//
// Design goals:
//   - Deterministic behavior: no global state; results never depend on the
//     worker count or the accumulator choice.
//   - Every switch changes behavior and is covered by tests.
//   - Silent by default: the logger is zerolog.Nop() unless WithLogger is given.
package sparse

import (
	"math"
	"runtime"

	"github.com/rs/zerolog"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultSparseThreshold is the zero-ratio at or above which IsSparse reports true.
	DefaultSparseThreshold = 0.8

	// DefaultParallelCutoff is the element count below which ToSparseParallel
	// runs the serial scan; fan-out overhead dominates for small sources.
	DefaultParallelCutoff = 1 << 14

	// DefaultDenseFraction is the match-count / result-size ratio at or above
	// which AccumulateAuto chooses the dense buffer.
	DefaultDenseFraction = 0.25

	// DefaultValidate toggles the invariant re-check on every constructed Tensor.
	DefaultValidate = false
)

// Accumulator selects how the multiply engine merges contributions.
type Accumulator int

const (
	// AccumulateAuto picks AccumulateDense when the expected result density is
	// high (see WithDenseFraction), AccumulateMap otherwise.
	AccumulateAuto Accumulator = iota
	// AccumulateMap merges into a coordinate-keyed map flushed once in row-major order.
	AccumulateMap
	// AccumulateDense merges into a flat zero-filled buffer of the result size.
	AccumulateDense
)

// String returns a stable name, used in log fields.
func (a Accumulator) String() string {
	switch a {
	case AccumulateAuto:
		return "auto"
	case AccumulateMap:
		return "map"
	case AccumulateDense:
		return "dense"
	default:
		return "invalid"
	}
}

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicWorkersInvalid     = "sparse: WithWorkers: n must be >= 1"
	panicCutoffInvalid      = "sparse: WithParallelCutoff: n must be >= 0"
	panicAccumulatorInvalid = "sparse: WithAccumulator: unknown accumulator"
	panicFractionInvalid    = "sparse: WithDenseFraction: f must be finite and >= 0"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	workers        int            // >= 1; runtime.GOMAXPROCS(0)
	parallelCutoff int            // >= 0; DefaultParallelCutoff
	accumulator    Accumulator    // AccumulateAuto
	denseFraction  float64        // >= 0; DefaultDenseFraction
	validate       bool           // DefaultValidate
	logger         zerolog.Logger // zerolog.Nop() unless WithLogger
}

// WithWorkers fixes the worker count of the parallel dense→sparse scan.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithParallelCutoff sets the element count below which the parallel scan
// degrades to the serial one. Zero forces fan-out for every non-empty source.
// Panics if n < 0.
func WithParallelCutoff(n int) Option {
	if n < 0 {
		panic(panicCutoffInvalid)
	}

	return func(o *Options) { o.parallelCutoff = n }
}

// WithAccumulator forces the multiply engine's accumulation strategy.
// Implementation:
//   - Stage 1: reject values outside the Accumulate* set (panic).
//   - Stage 2: return a setter.
//
// Notes:
//   - Both strategies yield identical Tensors; the choice is a memory/time trade.
//   - AccumulateDense allocates the full result volume; avoid it for huge, sparse results.
func WithAccumulator(a Accumulator) Option {
	if a < AccumulateAuto || a > AccumulateDense {
		panic(panicAccumulatorInvalid)
	}

	return func(o *Options) { o.accumulator = a }
}

// WithDenseFraction sets the ratio matches/resultSize at or above which
// AccumulateAuto chooses the dense buffer. Zero always picks dense; +Inf is
// rejected, use WithAccumulator(AccumulateMap) instead.
func WithDenseFraction(f float64) Option {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		panic(panicFractionInvalid)
	}

	return func(o *Options) { o.denseFraction = f }
}

// WithValidation toggles the invariant re-check (Tensor.Validate) on every
// Tensor built by ToSparse*, Multiply and Add. A failure surfaces as
// ErrInternalConsistency.
func WithValidation(on bool) Option {
	return func(o *Options) { o.validate = on }
}

// WithLogger injects a structured logger; the engine and the parallel scan
// emit debug events through it.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// gatherOptions applies user setters on top of documented defaults.
// Complexity: O(len(user)).
func gatherOptions(user ...Option) Options {
	o := Options{
		workers:        runtime.GOMAXPROCS(0),
		parallelCutoff: DefaultParallelCutoff,
		accumulator:    AccumulateAuto,
		denseFraction:  DefaultDenseFraction,
		validate:       DefaultValidate,
		logger:         zerolog.Nop(),
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers < 1 {
		o.workers = 1
	}

	return o
}
