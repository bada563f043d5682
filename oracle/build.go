package oracle

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fairdiv/cake"
	"github.com/katalvlaran/fairdiv/envyfree"
	"github.com/katalvlaran/fairdiv/trace"
	"github.com/katalvlaran/fairdiv/valuation"
)

// BuildThreeAgent turns a three-agent reply into a Result.
//
// Steps: the chosen agent's equipartition; when Condition is 1, a reduction
// of the preferred slice and the procedure's final cuts; then one Assigned
// step per slice.
func BuildThreeAgent(resp Response, profiles []valuation.Profile, cakeSize float64) (envyfree.Result, error) {
	if len(profiles) != 3 {
		return envyfree.Result{}, fmt.Errorf("%w: three-agent reply needs 3 profiles, got %d", envyfree.ErrInvalidAgentCount, len(profiles))
	}
	if resp.ChosenAgent < 0 || resp.ChosenAgent >= len(profiles) {
		return envyfree.Result{}, fmt.Errorf("%w: chosen agent %d", ErrBadResponse, resp.ChosenAgent)
	}

	eq := []float64{resp.Equipartition.Left, resp.Equipartition.Right}
	initial, err := slicesAt(profiles, eq, cakeSize)
	if err != nil {
		return envyfree.Result{}, err
	}
	var tr trace.Trace
	tr.Append(resp.ChosenAgent, trace.Equipartition, initial, eq, false)

	final := initial
	switch resp.Condition {
	case 0:
	case 1:
		var preferred cake.Slice
		switch resp.Specifics {
		case 0:
			preferred = initial[1]
		case 1:
			preferred = initial[0]
		default:
			return envyfree.Result{}, fmt.Errorf("%w: specifics %d", ErrBadResponse, resp.Specifics)
		}
		div := []float64{resp.Division.Left, resp.Division.Right}
		if final, err = slicesAt(profiles, div, cakeSize); err != nil {
			return envyfree.Result{}, err
		}
		tr.Record(trace.ActorProcedure, trace.Reduce, false, preferred)
		tr.Append(trace.ActorProcedure, trace.Terminate, final, div, false)
	default:
		return envyfree.Result{}, fmt.Errorf("%w: condition %d", ErrBadResponse, resp.Condition)
	}

	solution, err := assign(&tr, final, resp.Assignment)
	if err != nil {
		return envyfree.Result{}, err
	}
	return envyfree.Result{Solution: solution, Steps: tr.Steps()}, nil
}

// BuildFourAgent turns a four-agent reply into a Result: agent 0's
// equipartition into quarters, the final cuts, then the assignments.
func BuildFourAgent(resp Response, profiles []valuation.Profile, cakeSize float64) (envyfree.Result, error) {
	if len(profiles) != 4 {
		return envyfree.Result{}, fmt.Errorf("%w: four-agent reply needs 4 profiles, got %d", envyfree.ErrInvalidAgentCount, len(profiles))
	}
	eq := []float64{resp.Equipartition.Left, resp.Equipartition.Middle, resp.Equipartition.Right}
	initial, err := slicesAt(profiles, eq, cakeSize)
	if err != nil {
		return envyfree.Result{}, err
	}
	div := []float64{resp.Division.Left, resp.Division.Middle, resp.Division.Right}
	final, err := slicesAt(profiles, div, cakeSize)
	if err != nil {
		return envyfree.Result{}, err
	}

	var tr trace.Trace
	tr.Append(0, trace.Equipartition, initial, eq, false)
	tr.Append(trace.ActorProcedure, trace.Terminate, final, div, false)

	solution, err := assign(&tr, final, resp.Assignment)
	if err != nil {
		return envyfree.Result{}, err
	}
	return envyfree.Result{Solution: solution, Steps: tr.Steps()}, nil
}

// BuildPiecewiseConstant turns a piecewise-constant reply into a Result.
// Segment slices are numbered by their segment index.
func BuildPiecewiseConstant(resp Response, profiles []valuation.Profile, cakeSize float64) (envyfree.Result, error) {
	n := len(profiles)
	if n != 3 && n != 4 {
		return envyfree.Result{}, fmt.Errorf("%w: piecewise-constant reply needs 3 or 4 profiles, got %d", envyfree.ErrInvalidAgentCount, n)
	}
	if resp.AgentsNumber != 0 && resp.AgentsNumber != n {
		return envyfree.Result{}, fmt.Errorf("%w: reply is for %d agents, sent %d", ErrBadResponse, resp.AgentsNumber, n)
	}
	if len(resp.Segments) == 0 || len(resp.Segments[0]) == 0 {
		return envyfree.Result{}, fmt.Errorf("%w: no segments", ErrBadResponse)
	}

	segs := resp.Segments[0]
	segSlices := make([]cake.Slice, len(segs))
	for i := range segSlices {
		iv, ok := segs[i]
		if !ok {
			return envyfree.Result{}, fmt.Errorf("%w: segment %d missing", ErrBadResponse, i)
		}
		if !inCake(iv.Start, cakeSize) || !inCake(iv.End, cakeSize) || iv.End < iv.Start {
			return envyfree.Result{}, fmt.Errorf("%w: segment %d is [%g,%g]", ErrBadResponse, i, iv.Start, iv.End)
		}
		segSlices[i] = cake.Cut(profiles, iv.Start, iv.End, i, cake.NoteNone)
	}

	if len(resp.CutPositions) != n-1 {
		return envyfree.Result{}, fmt.Errorf("%w: %d cut positions for %d agents", ErrBadResponse, len(resp.CutPositions), n)
	}
	located := make([]cake.Slice, len(resp.CutPositions))
	for i, pos := range resp.CutPositions {
		if pos < 0 || pos >= len(segSlices) {
			return envyfree.Result{}, fmt.Errorf("%w: cut position %d names no segment", ErrBadResponse, pos)
		}
		located[i] = segSlices[pos]
	}

	div := []float64{resp.Division.Left, resp.Division.Right}
	if n == 4 {
		div = []float64{resp.Division.Left, resp.Division.Middle, resp.Division.Right}
	}
	final, err := slicesAt(profiles, div, cakeSize)
	if err != nil {
		return envyfree.Result{}, err
	}

	var tr trace.Trace
	tr.Append(trace.ActorProcedure, trace.Segmentation, segSlices, nil, false)
	tr.Append(trace.ActorProcedure, trace.LocateCuts, located, nil, false)
	tr.Append(trace.ActorProcedure, trace.Terminate, final, div, false)

	solution, err := assign(&tr, final, resp.Assignment)
	if err != nil {
		return envyfree.Result{}, err
	}
	return envyfree.Result{Solution: solution, Steps: tr.Steps()}, nil
}

// slicesAt cuts [0, cakeSize) at cuts, numbering slices from 1.
func slicesAt(profiles []valuation.Profile, cuts []float64, cakeSize float64) ([]cake.Slice, error) {
	prev := 0.0
	for _, c := range cuts {
		if !inCake(c, cakeSize) || c < prev {
			return nil, fmt.Errorf("%w: cuts %v are not ordered inside [0,%g]", ErrBadResponse, cuts, cakeSize)
		}
		prev = c
	}
	out := make([]cake.Slice, 0, len(cuts)+1)
	start := 0.0
	for i, c := range cuts {
		out = append(out, cake.Cut(profiles, start, c, i+1, cake.NoteNone))
		start = c
	}
	return append(out, cake.Cut(profiles, start, cakeSize, len(cuts)+1, cake.NoteNone)), nil
}

// assign hands slice i to assignment[i+1], recording one step per slice.
// Every agent must receive exactly one slice.
func assign(tr *trace.Trace, slices []cake.Slice, assignment map[int]int) ([]cake.AssignedSlice, error) {
	taken := make([]bool, len(slices))
	out := make([]cake.AssignedSlice, 0, len(slices))
	for i, s := range slices {
		owner, ok := assignment[i+1]
		if !ok {
			return nil, fmt.Errorf("%w: no owner for slice %d", ErrBadResponse, i+1)
		}
		if owner < 0 || owner >= len(slices) {
			return nil, fmt.Errorf("%w: slice %d assigned to unknown agent %d", ErrBadResponse, i+1, owner)
		}
		if taken[owner] {
			return nil, fmt.Errorf("%w: agent %d assigned twice", ErrBadResponse, owner)
		}
		taken[owner] = true
		tr.Record(owner, trace.Assigned, true, s)
		out = append(out, s.Assign(owner))
	}
	return out, nil
}

func inCake(x, cakeSize float64) bool {
	return !math.IsNaN(x) && x >= 0 && x <= cakeSize
}
