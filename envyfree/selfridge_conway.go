package envyfree

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fairdiv/cake"
	"github.com/katalvlaran/fairdiv/trace"
	"github.com/katalvlaran/fairdiv/valuation"
)

// SelfridgeConway divides [0, cakeSize) among exactly three agents so that
// no agent values another agent's share above its own.
//
// The agent count is checked before anything else; profiles are then
// validated. On success Result.Solution holds three slices when agent 1
// declined to trim, otherwise six: the three picked slices and the three
// pieces of the trimming. Either way the slices tile [0, cakeSize).
func SelfridgeConway(profiles []valuation.Profile, cakeSize float64, opts ...Option) (Result, error) {
	if len(profiles) != 3 {
		return Result{}, fmt.Errorf("%w: selfridge-conway needs 3, got %d", ErrInvalidAgentCount, len(profiles))
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := valuation.ValidateAll(profiles, cakeSize); err != nil {
		return Result{}, err
	}

	r := &scRunner{profiles: profiles, cakeSize: cakeSize, tol: cfg.Tolerance}
	solution, err := r.run()
	if err != nil {
		return Result{}, err
	}

	return Result{Solution: solution, Steps: r.tr.Steps()}, nil
}

// scRunner carries the state of one Selfridge–Conway run.
type scRunner struct {
	profiles []valuation.Profile
	cakeSize float64
	tol      float64
	tr       trace.Trace
}

func (r *scRunner) run() ([]cake.AssignedSlice, error) {
	// 1) Agent 0 cuts into thirds of equal value to itself.
	thirds, cuts, err := r.thirds(cutter, valuation.Bounds{Start: 0, End: r.cakeSize}, 1, cake.NoteNone)
	if err != nil {
		return nil, fmt.Errorf("initial cut: %w", err)
	}
	r.tr.Append(cutter, trace.InitialCut, thirds, cuts, false)

	// 2) Agent 1 ranks the thirds.
	ranked := cake.SortDescending(trimmer, thirds)
	largest, second := ranked[0], ranked[1]
	if math.Abs(largest.Values[trimmer]-second.Values[trimmer]) < r.tol {
		r.tr.Record(trimmer, trace.DeclineTrim, false, largest, second)
		return r.pickUntrimmed(ranked)
	}

	// Trim the largest down to the second largest; the trimming waits.
	cutLine, err := valuation.FindCutLineByValue(
		r.profiles[trimmer],
		largest.Values[trimmer]-second.Values[trimmer],
		valuation.Bounds{Start: largest.Start, End: largest.End},
	)
	if err != nil {
		return nil, fmt.Errorf("trim: %w", err)
	}
	trimming := cake.Cut(r.profiles, largest.Start, cutLine, trimmingID, cake.NoteTrimming)
	trimmed := cake.Cut(r.profiles, cutLine, largest.End, largest.ID, cake.NoteTrimmed)
	r.tr.Append(trimmer, trace.Trim, []cake.Slice{trimming, trimmed, second}, []float64{cutLine}, false)

	working := make([]cake.Slice, 0, len(ranked))
	working = append(working, trimmed)
	working = append(working, ranked[1:]...)

	// 3) Agent 2 picks freely.
	chosen, rest, err := cake.RemoveBest(chooser, working)
	if err != nil {
		return nil, err
	}
	r.tr.Record(chooser, trace.Pick, true, chosen)

	// 4) Agent 1 takes the trimmed piece if it is still there.
	var trimmerShare cake.Slice
	trimmedPicker := trimmer
	if sameSlice(chosen, trimmed) {
		trimmedPicker = chooser
		if trimmerShare, rest, err = cake.RemoveBest(trimmer, rest); err != nil {
			return nil, err
		}
		r.tr.Record(trimmer, trace.Pick, true, trimmerShare)
	} else {
		trimmerShare = trimmed
		rest, _ = cake.Remove(rest, trimmed)
		r.tr.Record(trimmer, trace.ForcedPick, true, trimmerShare)
	}

	// 5) Agent 0 receives the remainder.
	remainder := rest[0]
	r.tr.Record(cutter, trace.FinalRemainder, true, remainder)

	solution := []cake.AssignedSlice{
		chosen.Assign(chooser),
		trimmerShare.Assign(trimmer),
		remainder.Assign(cutter),
	}

	// 6) The trimming is shared out.
	shares, err := r.distributeTrimming(trimming, trimmedPicker)
	if err != nil {
		return nil, err
	}

	return append(solution, shares...), nil
}

// pickUntrimmed finishes the run when agent 1 declined to trim:
// agent 2, then agent 1, then agent 0.
func (r *scRunner) pickUntrimmed(ranked []cake.Slice) ([]cake.AssignedSlice, error) {
	first, rest, err := cake.RemoveBest(chooser, ranked)
	if err != nil {
		return nil, err
	}
	r.tr.Record(chooser, trace.Pick, true, first)

	second, rest, err := cake.RemoveBest(trimmer, rest)
	if err != nil {
		return nil, err
	}
	r.tr.Record(trimmer, trace.Pick, true, second)

	last := rest[0]
	r.tr.Record(cutter, trace.FinalRemainder, true, last)

	return []cake.AssignedSlice{
		first.Assign(chooser),
		second.Assign(trimmer),
		last.Assign(cutter),
	}, nil
}

// distributeTrimming lets the agent that did not take the trimmed piece cut
// the trimming into thirds; the taker of the trimmed piece picks first,
// agent 0 second, the cutter last.
func (r *scRunner) distributeTrimming(trimming cake.Slice, trimmedPicker int) ([]cake.AssignedSlice, error) {
	divider := chooser
	if trimmedPicker == chooser {
		divider = trimmer
	}
	r.tr.Record(divider, trace.ClaimTrimmings, false, trimming)

	pieces, cuts, err := r.thirds(divider, valuation.Bounds{Start: trimming.Start, End: trimming.End}, firstTrimPieceID, cake.NoteTrimming)
	if err != nil {
		return nil, fmt.Errorf("divide trimming: %w", err)
	}
	r.tr.Append(divider, trace.DivideTrimmings, pieces, cuts, false)

	first, rest, err := cake.RemoveBest(trimmedPicker, pieces)
	if err != nil {
		return nil, err
	}
	r.tr.Record(trimmedPicker, trace.PickTrimming, true, first)

	second, rest, err := cake.RemoveBest(cutter, rest)
	if err != nil {
		return nil, err
	}
	r.tr.Record(cutter, trace.PickTrimming, true, second)

	last := rest[0]
	r.tr.Record(divider, trace.RemainingTrimming, true, last)

	return []cake.AssignedSlice{
		first.Assign(trimmedPicker),
		second.Assign(cutter),
		last.Assign(divider),
	}, nil
}

// thirds cuts b into three slices of equal value to agent, numbered from
// firstID in ascending position.
func (r *scRunner) thirds(agent int, b valuation.Bounds, firstID int, note cake.Note) ([]cake.Slice, []float64, error) {
	p := r.profiles[agent]
	c1, err := valuation.FindCutLineByPercent(p, 1.0/3, b)
	if err != nil {
		return nil, nil, err
	}
	c2, err := valuation.FindCutLineByPercent(p, 2.0/3, b)
	if err != nil {
		return nil, nil, err
	}
	slices := []cake.Slice{
		cake.Cut(r.profiles, b.Start, c1, firstID, note),
		cake.Cut(r.profiles, c1, c2, firstID+1, note),
		cake.Cut(r.profiles, c2, b.End, firstID+2, note),
	}
	return slices, []float64{c1, c2}, nil
}

func sameSlice(a, b cake.Slice) bool {
	return a.ID == b.ID && a.Start == b.Start && a.End == b.End
}
