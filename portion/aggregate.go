package portion

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/fairdiv/cake"
	"github.com/katalvlaran/fairdiv/valuation"
)

// Aggregate groups solution by owner into one Portion per agent, indexed by
// owner. Agents that own nothing get a Portion with zero values and no edges.
// Value fractions for an agent with zero total valuation are 0.
//
// Errors: ErrInvalidSlice if an owner is out of range or a slice's value
// vector length differs from len(profiles).
func Aggregate(solution []cake.AssignedSlice, profiles []valuation.Profile) ([]Portion, error) {
	n := len(profiles)
	totals := make([]float64, n)
	for j, p := range profiles {
		totals[j] = valuation.TotalValue(p)
	}

	portions := make([]Portion, n)
	for i := range portions {
		portions[i] = Portion{Owner: i, ValuePerAgent: make([]float64, n)}
	}

	for k, s := range solution {
		if s.Owner < 0 || s.Owner >= n {
			return nil, fmt.Errorf("%w: slice %d owner %d with %d agents", ErrInvalidSlice, k, s.Owner, n)
		}
		if len(s.Values) != n {
			return nil, fmt.Errorf("%w: slice %d carries %d values for %d agents", ErrInvalidSlice, k, len(s.Values), n)
		}
		p := &portions[s.Owner]
		p.Edges = append(p.Edges, Edge{Start: s.Start, End: s.End})
		for j, v := range s.Values {
			if totals[j] > 0 {
				p.ValuePerAgent[j] += v / totals[j]
			}
		}
	}

	for i := range portions {
		portions[i].Edges = mergeEdges(portions[i].Edges)
	}
	return portions, nil
}

// mergeEdges sorts edges by start, coalesces touching or overlapping ones
// and drops empty ones.
func mergeEdges(edges []Edge) []Edge {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Start != edges[j].Start {
			return edges[i].Start < edges[j].Start
		}
		return edges[i].End < edges[j].End
	})

	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.End <= e.Start {
			continue
		}
		if last := len(out) - 1; last >= 0 && e.Start <= out[last].End {
			out[last].End = max(out[last].End, e.End)
			continue
		}
		out = append(out, e)
	}
	return out
}
