package divide

import (
	"fmt"

	"github.com/katalvlaran/fairdiv/envyfree"
)

var catalog = []Info{
	{Name: CutAndChoose, Title: "Cut and choose", MinAgents: 2, MaxAgents: 2, Exact: true},
	{Name: SelfridgeConway, Title: "Selfridge–Conway", MinAgents: 3, MaxAgents: 3, Exact: true},
	{Name: BranzeiNisan, Title: "Brânzei–Nisan", MinAgents: 3, MaxAgents: 3, Remote: true},
	{Name: HollenderRubinstein, Title: "Hollender–Rubinstein", MinAgents: 4, MaxAgents: 4, Remote: true},
	{Name: PiecewiseConstant, Title: "Piecewise constant", MinAgents: 3, MaxAgents: 4, Remote: true},
}

// Catalog returns every known algorithm in a stable order.
func Catalog() []Info {
	return append([]Info(nil), catalog...)
}

// Lookup returns the catalogue entry for name.
func Lookup(name Algorithm) (Info, error) {
	for _, info := range catalog {
		if info.Name == name {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// ForAgents lists the algorithms that accept n agents.
func ForAgents(n int) []Info {
	var out []Info
	for _, info := range catalog {
		if n >= info.MinAgents && n <= info.MaxAgents {
			out = append(out, info)
		}
	}
	return out
}

// Default returns the first catalogue algorithm that accepts n agents,
// preferring exact local procedures by catalogue order.
func Default(n int) (Algorithm, error) {
	candidates := ForAgents(n)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no algorithm accepts %d agents", envyfree.ErrInvalidAgentCount, n)
	}
	return candidates[0].Name, nil
}
