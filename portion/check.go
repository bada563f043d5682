package portion

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/fairdiv/cake"
)

// CheckPartition verifies that the intervals of solution, sorted by start,
// cover [0, cakeSize) contiguously. Zero-width slices are allowed.
// Adjacent boundaries may differ by at most tol.
func CheckPartition(solution []cake.AssignedSlice, cakeSize, tol float64) error {
	if len(solution) == 0 {
		return fmt.Errorf("%w: no slices", ErrNotPartition)
	}
	edges := make([]Edge, len(solution))
	for i, s := range solution {
		if s.End < s.Start-tol {
			return fmt.Errorf("%w: slice %d is reversed [%g,%g]", ErrNotPartition, s.ID, s.Start, s.End)
		}
		edges[i] = Edge{Start: s.Start, End: s.End}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Start != edges[j].Start {
			return edges[i].Start < edges[j].Start
		}
		return edges[i].End < edges[j].End
	})

	if !scalar.EqualWithinAbs(edges[0].Start, 0, tol) {
		return fmt.Errorf("%w: coverage starts at %g", ErrNotPartition, edges[0].Start)
	}
	for i := 1; i < len(edges); i++ {
		if !scalar.EqualWithinAbs(edges[i].Start, edges[i-1].End, tol) {
			return fmt.Errorf("%w: [%g,%g) followed by [%g,%g)",
				ErrNotPartition, edges[i-1].Start, edges[i-1].End, edges[i].Start, edges[i].End)
		}
	}
	if end := edges[len(edges)-1].End; !scalar.EqualWithinAbs(end, cakeSize, tol) {
		return fmt.Errorf("%w: coverage ends at %g, want %g", ErrNotPartition, end, cakeSize)
	}
	return nil
}

// CheckEnvyFree verifies that for all agents i, j the value to i of its own
// portion is at least the value to i of j's portion, minus tol.
// portions must be indexed by owner, as returned by Aggregate.
func CheckEnvyFree(portions []Portion, tol float64) error {
	for i := range portions {
		own := portions[i].ValuePerAgent[i]
		for j := range portions {
			if j == i {
				continue
			}
			if other := portions[j].ValuePerAgent[i]; own+tol < other {
				return fmt.Errorf("%w: agent %d holds %g but values agent %d's portion at %g",
					ErrEnvy, i, own, j, other)
			}
		}
	}
	return nil
}

// CheckProportional verifies that every agent holds at least 1/n of what it
// values in total, minus tol. An agent that values nothing is satisfied by
// any share.
func CheckProportional(portions []Portion, tol float64) error {
	n := len(portions)
	column := make([]float64, n)
	for i := range portions {
		for j := range portions {
			column[j] = portions[j].ValuePerAgent[i]
		}
		fair := floats.Sum(column) / float64(n)
		if own := portions[i].ValuePerAgent[i]; own+tol < fair || math.IsNaN(own) {
			return fmt.Errorf("%w: agent %d holds %g, fair share %g", ErrNotProportional, i, own, fair)
		}
	}
	return nil
}
