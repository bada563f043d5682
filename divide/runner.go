package divide

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/fairdiv/envyfree"
	"github.com/katalvlaran/fairdiv/portion"
	"github.com/katalvlaran/fairdiv/valuation"
)

// Runner dispatches divisions by algorithm name. It holds no per-run state
// and is safe for concurrent use.
type Runner struct {
	tol    float64
	solver Solver
	logger *zap.Logger
}

// NewRunner builds a Runner from DefaultOptions and opts.
func NewRunner(opts ...Option) *Runner {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Runner{tol: cfg.Tolerance, solver: cfg.Solver, logger: cfg.Logger}
}

// Run divides [0, cakeSize) among len(profiles) agents with algo.
func (r *Runner) Run(ctx context.Context, algo Algorithm, profiles []valuation.Profile, cakeSize float64) (Outcome, error) {
	info, err := Lookup(algo)
	if err != nil {
		return Outcome{}, err
	}
	if err = valuation.ValidateAll(profiles, cakeSize); err != nil {
		return Outcome{}, err
	}
	if n := len(profiles); n < info.MinAgents || n > info.MaxAgents {
		return Outcome{}, fmt.Errorf("%w: %s accepts %d–%d agents, got %d",
			envyfree.ErrInvalidAgentCount, algo, info.MinAgents, info.MaxAgents, n)
	}
	if info.Remote && r.solver == nil {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNoSolver, algo)
	}
	if err = ctx.Err(); err != nil {
		return Outcome{}, err
	}

	id := uuid.New()
	log := r.logger.With(zap.String("run_id", id.String()), zap.String("algorithm", string(algo)))
	start := time.Now()

	res, err := r.dispatch(ctx, algo, profiles, cakeSize)
	if err != nil {
		log.Warn("division failed", zap.Error(err))
		return Outcome{}, err
	}
	portions, err := portion.Aggregate(res.Solution, profiles)
	if err != nil {
		return Outcome{}, fmt.Errorf("aggregate: %w", err)
	}

	out := Outcome{
		RunID:        id,
		Algorithm:    algo,
		CakeSize:     cakeSize,
		Solution:     res.Solution,
		Portions:     portions,
		Steps:        res.Steps,
		EnvyFree:     portion.CheckEnvyFree(portions, FairnessTolerance) == nil,
		Proportional: portion.CheckProportional(portions, FairnessTolerance) == nil,
	}
	log.Info("division complete",
		zap.Int("agents", len(profiles)),
		zap.Int("slices", len(out.Solution)),
		zap.Int("steps", len(out.Steps)),
		zap.Bool("envy_free", out.EnvyFree),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

func (r *Runner) dispatch(ctx context.Context, algo Algorithm, profiles []valuation.Profile, cakeSize float64) (envyfree.Result, error) {
	switch algo {
	case CutAndChoose:
		return envyfree.CutAndChoose(profiles, cakeSize)
	case SelfridgeConway:
		return envyfree.SelfridgeConway(profiles, cakeSize, envyfree.WithTolerance(r.tol))
	case BranzeiNisan:
		return r.solver.BranzeiNisan(ctx, profiles, cakeSize)
	case HollenderRubinstein:
		return r.solver.HollenderRubinstein(ctx, profiles, cakeSize)
	case PiecewiseConstant:
		return r.solver.PiecewiseConstant(ctx, profiles, cakeSize)
	default:
		return envyfree.Result{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
}

// Available reports whether the runner can execute info's algorithm.
func (r *Runner) Available(info Info) bool {
	return !info.Remote || r.solver != nil
}
