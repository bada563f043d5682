package cake

import (
	"sort"

	"github.com/katalvlaran/fairdiv/valuation"
)

// Cut materializes the slice [start, end) by valuing it under every profile.
// Complexity: O(N·S) for N agents with S segments each.
func Cut(profiles []valuation.Profile, start, end float64, id int, note Note) Slice {
	values := make([]float64, len(profiles))
	for i, p := range profiles {
		values[i] = valuation.ValueOf(p, start, end)
	}
	return Slice{ID: id, Start: start, End: end, Values: values, Note: note}
}

// SortDescending returns a copy of slices ordered by Values[agent], largest
// first. The sort is stable: equally valued slices keep their input order.
func SortDescending(agent int, slices []Slice) []Slice {
	out := make([]Slice, len(slices))
	copy(out, slices)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Values[agent] > out[j].Values[agent]
	})
	return out
}

// RemoveBest returns agent's most valued slice and the remaining slices in
// their original relative order. Ties go to the earliest slice.
//
// Errors: ErrNoSlices if slices is empty.
func RemoveBest(agent int, slices []Slice) (Slice, []Slice, error) {
	if len(slices) == 0 {
		return Slice{}, nil, ErrNoSlices
	}
	best := 0
	for i := 1; i < len(slices); i++ {
		if slices[i].Values[agent] > slices[best].Values[agent] {
			best = i
		}
	}
	return slices[best], without(slices, best), nil
}

// Remove returns slices without the first element whose ID and interval
// match target, and reports whether such an element was found.
func Remove(slices []Slice, target Slice) ([]Slice, bool) {
	for i, s := range slices {
		if s.ID == target.ID && s.Start == target.Start && s.End == target.End {
			return without(slices, i), true
		}
	}
	return append([]Slice(nil), slices...), false
}

// without copies slices minus index i.
func without(slices []Slice, i int) []Slice {
	out := make([]Slice, 0, len(slices)-1)
	out = append(out, slices[:i]...)
	return append(out, slices[i+1:]...)
}
