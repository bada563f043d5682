package oracle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairdiv/envyfree"
	"github.com/katalvlaran/fairdiv/oracle"
	"github.com/katalvlaran/fairdiv/portion"
	"github.com/katalvlaran/fairdiv/trace"
)

func actions(steps []trace.Step) []trace.Action {
	out := make([]trace.Action, len(steps))
	for i, s := range steps {
		out[i] = s.Action
	}
	return out
}

func TestBuildThreeAgent_Reduction(t *testing.T) {
	resp := oracle.Response{
		Equipartition: oracle.Cuts{Left: 30, Right: 60},
		Division:      oracle.Cuts{Left: 33, Right: 57},
		Assignment:    map[int]int{1: 1, 2: 2, 3: 0},
		ChosenAgent:   1,
		Condition:     1,
		Specifics:     0,
	}
	profiles := uniform(3, 90)
	res, err := oracle.BuildThreeAgent(resp, profiles, 90)
	require.NoError(t, err)

	require.Equal(t, []trace.Action{
		trace.Equipartition, trace.Reduce, trace.Terminate,
		trace.Assigned, trace.Assigned, trace.Assigned,
	}, actions(res.Steps))
	require.Equal(t, 1, res.Steps[0].Actor)
	require.Equal(t, 2, res.Steps[1].Pieces[0].ID)
	require.Equal(t, []float64{33, 57}, res.Steps[2].Cuts)

	require.Equal(t, 33.0, res.Solution[0].End)
	require.Equal(t, 1, res.Solution[0].Owner)
	require.Equal(t, []float64{24, 24, 24}, res.Solution[1].Values)
	require.NoError(t, portion.CheckPartition(res.Solution, 90, 1e-9))
}

func TestBuildThreeAgent_FirstSliceReduced(t *testing.T) {
	resp := oracle.Response{
		Equipartition: oracle.Cuts{Left: 30, Right: 60},
		Division:      oracle.Cuts{Left: 20, Right: 60},
		Assignment:    map[int]int{1: 0, 2: 1, 3: 2},
		Condition:     1,
		Specifics:     1,
	}
	res, err := oracle.BuildThreeAgent(resp, uniform(3, 90), 90)
	require.NoError(t, err)
	require.Equal(t, 1, res.Steps[1].Pieces[0].ID)
}

func TestBuildThreeAgent_BadReplies(t *testing.T) {
	base := func() oracle.Response {
		return oracle.Response{
			Equipartition: oracle.Cuts{Left: 30, Right: 60},
			Assignment:    map[int]int{1: 0, 2: 1, 3: 2},
		}
	}
	cases := map[string]func(*oracle.Response){
		"missing owner":    func(r *oracle.Response) { delete(r.Assignment, 2) },
		"duplicate owner":  func(r *oracle.Response) { r.Assignment[3] = 0 },
		"unknown agent":    func(r *oracle.Response) { r.Assignment[1] = 7 },
		"unordered cuts":   func(r *oracle.Response) { r.Equipartition = oracle.Cuts{Left: 60, Right: 30} },
		"cut outside cake": func(r *oracle.Response) { r.Equipartition.Right = 120 },
		"chosen agent":     func(r *oracle.Response) { r.ChosenAgent = 3 },
		"condition":        func(r *oracle.Response) { r.Condition = 2 },
		"specifics":        func(r *oracle.Response) { r.Condition, r.Specifics = 1, 5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			resp := base()
			mutate(&resp)
			_, err := oracle.BuildThreeAgent(resp, uniform(3, 90), 90)
			require.ErrorIs(t, err, oracle.ErrBadResponse)
		})
	}
}

func TestBuildFourAgent(t *testing.T) {
	resp := oracle.Response{
		Equipartition: oracle.Cuts{Left: 25, Middle: 50, Right: 75},
		Division:      oracle.Cuts{Left: 20, Middle: 50, Right: 80},
		Assignment:    map[int]int{1: 3, 2: 2, 3: 1, 4: 0},
	}
	res, err := oracle.BuildFourAgent(resp, uniform(4, 100), 100)
	require.NoError(t, err)
	require.Equal(t, []trace.Action{
		trace.Equipartition, trace.Terminate,
		trace.Assigned, trace.Assigned, trace.Assigned, trace.Assigned,
	}, actions(res.Steps))
	require.Equal(t, []float64{25, 50, 75}, res.Steps[0].Cuts)
	require.Equal(t, 3, res.Solution[0].Owner)
	require.Equal(t, 80.0, res.Solution[3].Start)

	_, err = oracle.BuildFourAgent(resp, uniform(3, 100), 100)
	require.ErrorIs(t, err, envyfree.ErrInvalidAgentCount)
}

func TestBuildPiecewiseConstant_FourAgents(t *testing.T) {
	segments := map[int]oracle.Interval{
		0: {Start: 0, End: 4},
		1: {Start: 4, End: 6},
		2: {Start: 6, End: 10},
	}
	resp := oracle.Response{
		Division:     oracle.Cuts{Left: 2, Middle: 5, Right: 7},
		Assignment:   map[int]int{1: 0, 2: 1, 3: 2, 4: 3},
		Segments:     []map[int]oracle.Interval{segments},
		CutPositions: []int{0, 1, 2},
		AgentsNumber: 4,
	}
	res, err := oracle.BuildPiecewiseConstant(resp, uniform(4, 10), 10)
	require.NoError(t, err)
	require.Equal(t, []trace.Action{
		trace.Segmentation, trace.LocateCuts, trace.Terminate,
		trace.Assigned, trace.Assigned, trace.Assigned, trace.Assigned,
	}, actions(res.Steps))
	require.Len(t, res.Steps[0].Pieces, 3)
	require.Equal(t, 0, res.Steps[0].Pieces[0].ID)
	require.Equal(t, []int{0, 1, 2}, []int{
		res.Steps[1].Pieces[0].ID, res.Steps[1].Pieces[1].ID, res.Steps[1].Pieces[2].ID,
	})
	require.Equal(t, trace.ActorProcedure, res.Steps[2].Actor)
	require.NoError(t, portion.CheckPartition(res.Solution, 10, 1e-9))
}

func TestBuildPiecewiseConstant_BadReplies(t *testing.T) {
	good := func() oracle.Response {
		return oracle.Response{
			Division:     oracle.Cuts{Left: 3, Right: 6},
			Assignment:   map[int]int{1: 0, 2: 1, 3: 2},
			Segments:     []map[int]oracle.Interval{{0: {Start: 0, End: 5}, 1: {Start: 5, End: 9}}},
			CutPositions: []int{0, 1},
			AgentsNumber: 3,
		}
	}
	cases := map[string]func(*oracle.Response){
		"agents number":  func(r *oracle.Response) { r.AgentsNumber = 4 },
		"no segments":    func(r *oracle.Response) { r.Segments = nil },
		"segment gap":    func(r *oracle.Response) { r.Segments[0] = map[int]oracle.Interval{0: {Start: 0, End: 5}, 2: {Start: 5, End: 9}} },
		"segment range":  func(r *oracle.Response) { r.Segments[0][1] = oracle.Interval{Start: 5, End: 12} },
		"cut count":      func(r *oracle.Response) { r.CutPositions = []int{0} },
		"cut position":   func(r *oracle.Response) { r.CutPositions = []int{0, 9} },
		"division order": func(r *oracle.Response) { r.Division = oracle.Cuts{Left: 7, Right: 6} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			resp := good()
			mutate(&resp)
			_, err := oracle.BuildPiecewiseConstant(resp, uniform(3, 9), 9)
			require.ErrorIs(t, err, oracle.ErrBadResponse)
		})
	}
}
