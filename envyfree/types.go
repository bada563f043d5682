package envyfree

import (
	"errors"
	"math"

	"github.com/katalvlaran/fairdiv/cake"
	"github.com/katalvlaran/fairdiv/trace"
)

// ErrInvalidAgentCount indicates a procedure was given the wrong number of
// valuation profiles.
var ErrInvalidAgentCount = errors.New("envyfree: invalid number of agents")

// DefaultTolerance is the absolute difference under which two slice values
// are considered equal. The comparison is strict: a difference of exactly
// the tolerance counts as unequal.
const DefaultTolerance = 1e-13

// Agent roles in Selfridge–Conway.
const (
	cutter  = 0 // makes the initial cut, picks last
	trimmer = 1 // ranks and trims
	chooser = 2 // picks first
)

// Slice ids used by Selfridge–Conway. The trimmed piece keeps the id of the
// slice it was cut from.
const (
	trimmingID       = 4
	firstTrimPieceID = 5
)

// Result is the output of a division procedure: the assigned slices, which
// tile [0, cakeSize), and the decision trace that produced them.
type Result struct {
	Solution []cake.AssignedSlice `json:"solution" yaml:"solution"`
	Steps    []trace.Step         `json:"steps" yaml:"steps"`
}

// Options configures the procedures.
//
//	Tolerance – absolute equality tolerance for slice values (≥ 0).
type Options struct {
	Tolerance float64
}

// Option is a functional option for the procedures.
type Option func(*Options)

// DefaultOptions returns Options with Tolerance = DefaultTolerance.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance}
}

// WithTolerance overrides the equality tolerance.
// Panics if tol is negative or NaN.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || tol < 0 {
		panic("envyfree: WithTolerance(tol<0)")
	}
	return func(o *Options) {
		o.Tolerance = tol
	}
}
