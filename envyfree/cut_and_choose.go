package envyfree

import (
	"fmt"

	"github.com/katalvlaran/fairdiv/cake"
	"github.com/katalvlaran/fairdiv/trace"
	"github.com/katalvlaran/fairdiv/valuation"
)

// CutAndChoose divides [0, cakeSize) between exactly two agents: agent 0
// cuts two slices it values equally, agent 1 takes its favourite and agent 0
// receives the other.
func CutAndChoose(profiles []valuation.Profile, cakeSize float64) (Result, error) {
	if len(profiles) != 2 {
		return Result{}, fmt.Errorf("%w: cut-and-choose needs 2, got %d", ErrInvalidAgentCount, len(profiles))
	}
	if err := valuation.ValidateAll(profiles, cakeSize); err != nil {
		return Result{}, err
	}

	half, err := valuation.FindCutLineByPercent(profiles[0], 0.5, valuation.Bounds{Start: 0, End: cakeSize})
	if err != nil {
		return Result{}, fmt.Errorf("initial cut: %w", err)
	}

	var tr trace.Trace
	halves := []cake.Slice{
		cake.Cut(profiles, 0, half, 1, cake.NoteNone),
		cake.Cut(profiles, half, cakeSize, 2, cake.NoteNone),
	}
	tr.Append(0, trace.InitialCut, halves, []float64{half}, false)

	chosen, rest, err := cake.RemoveBest(1, halves)
	if err != nil {
		return Result{}, err
	}
	tr.Record(1, trace.Pick, true, chosen)
	tr.Record(0, trace.FinalRemainder, true, rest[0])

	return Result{
		Solution: []cake.AssignedSlice{chosen.Assign(1), rest[0].Assign(0)},
		Steps:    tr.Steps(),
	}, nil
}
