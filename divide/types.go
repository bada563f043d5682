package divide

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/fairdiv/cake"
	"github.com/katalvlaran/fairdiv/envyfree"
	"github.com/katalvlaran/fairdiv/portion"
	"github.com/katalvlaran/fairdiv/trace"
	"github.com/katalvlaran/fairdiv/valuation"
)

var (
	// ErrUnknownAlgorithm indicates a name missing from the catalogue.
	ErrUnknownAlgorithm = errors.New("divide: unknown algorithm")
	// ErrNoSolver indicates a remote algorithm was requested but no Solver
	// is configured.
	ErrNoSolver = errors.New("divide: no remote solver configured")
)

// FairnessTolerance is the tolerance on value fractions used when an
// Outcome reports whether it is envy-free and proportional.
const FairnessTolerance = 1e-9

// Algorithm names a division procedure.
type Algorithm string

const (
	CutAndChoose        Algorithm = "cut-and-choose"
	SelfridgeConway     Algorithm = "selfridge-conway"
	BranzeiNisan        Algorithm = "branzei-nisan"
	HollenderRubinstein Algorithm = "hollender-rubinstein"
	PiecewiseConstant   Algorithm = "piecewise-constant"
)

// Info describes a catalogue entry.
type Info struct {
	Name      Algorithm `json:"name" yaml:"name"`
	Title     string    `json:"title" yaml:"title"`
	MinAgents int       `json:"minAgents" yaml:"minAgents"`
	MaxAgents int       `json:"maxAgents" yaml:"maxAgents"`
	Remote    bool      `json:"remote" yaml:"remote"`
	Exact     bool      `json:"exact" yaml:"exact"`
}

// Solver runs the approximate procedures. *oracle.Client implements it.
type Solver interface {
	BranzeiNisan(ctx context.Context, profiles []valuation.Profile, cakeSize float64) (envyfree.Result, error)
	HollenderRubinstein(ctx context.Context, profiles []valuation.Profile, cakeSize float64) (envyfree.Result, error)
	PiecewiseConstant(ctx context.Context, profiles []valuation.Profile, cakeSize float64) (envyfree.Result, error)
}

// Outcome is the result of one run.
//
// EnvyFree and Proportional report the checks of package portion at
// FairnessTolerance; exact algorithms always satisfy both.
type Outcome struct {
	RunID        uuid.UUID            `json:"runId" yaml:"runId"`
	Algorithm    Algorithm            `json:"algorithm" yaml:"algorithm"`
	CakeSize     float64              `json:"cakeSize" yaml:"cakeSize"`
	Solution     []cake.AssignedSlice `json:"solution" yaml:"solution"`
	Portions     []portion.Portion    `json:"portions" yaml:"portions"`
	Steps        []trace.Step         `json:"steps" yaml:"steps"`
	EnvyFree     bool                 `json:"envyFree" yaml:"envyFree"`
	Proportional bool                 `json:"proportional" yaml:"proportional"`
}

// Options configures a Runner.
//
//	Tolerance – slice-value equality tolerance for local procedures.
//	Solver    – remote solver; nil disables the remote algorithms.
//	Logger    – run logging; defaults to a no-op logger.
type Options struct {
	Tolerance float64
	Solver    Solver
	Logger    *zap.Logger
}

// Option is a functional option for NewRunner.
type Option func(*Options)

// DefaultOptions returns local-only options with envyfree.DefaultTolerance.
func DefaultOptions() Options {
	return Options{Tolerance: envyfree.DefaultTolerance, Logger: zap.NewNop()}
}

// WithTolerance overrides the equality tolerance.
// Panics if tol is negative or NaN.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || tol < 0 {
		panic(fmt.Sprintf("divide: WithTolerance(%g) must be >= 0", tol))
	}
	return func(o *Options) { o.Tolerance = tol }
}

// WithSolver enables the remote algorithms.
func WithSolver(s Solver) Option {
	return func(o *Options) { o.Solver = s }
}

// WithLogger sets the run logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
