package envyfree_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairdiv/cake"
	"github.com/katalvlaran/fairdiv/envyfree"
	"github.com/katalvlaran/fairdiv/portion"
	"github.com/katalvlaran/fairdiv/valuation"
)

// fairTol is the tolerance on value fractions used by property checks.
const fairTol = 1e-9

func flat(start, end, v float64) valuation.Segment {
	return valuation.Segment{Start: start, End: end, StartValue: v, EndValue: v}
}

// randomProfile covers [0, cakeSize) with integer-width segments whose
// endpoint densities are drawn from [0, 10).
func randomProfile(rng *rand.Rand, cakeSize int) valuation.Profile {
	var p valuation.Profile
	for start := 0; start < cakeSize; {
		end := min(start+1+rng.Intn(10), cakeSize)
		p = append(p, valuation.Segment{
			Start:      float64(start),
			End:        float64(end),
			StartValue: rng.Float64() * 10,
			EndValue:   rng.Float64() * 10,
		})
		start = end
	}
	return p
}

// requireFair asserts the partition, envy-freeness and proportionality of res.
func requireFair(t *testing.T, profiles []valuation.Profile, cakeSize float64, res envyfree.Result) []portion.Portion {
	t.Helper()
	require.NoError(t, portion.CheckPartition(res.Solution, cakeSize, 1e-9))
	portions, err := portion.Aggregate(res.Solution, profiles)
	require.NoError(t, err)
	require.NoError(t, portion.CheckEnvyFree(portions, fairTol))
	require.NoError(t, portion.CheckProportional(portions, fairTol))
	return portions
}

// findOwned returns the assigned slice covering [start, end).
func findOwned(t *testing.T, sol []cake.AssignedSlice, start, end float64) cake.AssignedSlice {
	t.Helper()
	for _, s := range sol {
		if s.Start == start && s.End == end {
			return s
		}
	}
	t.Fatalf("no slice [%g,%g) in solution", start, end)
	return cake.AssignedSlice{}
}
