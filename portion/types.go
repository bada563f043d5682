package portion

import "errors"

var (
	// ErrInvalidSlice indicates an assigned slice whose owner or value
	// vector does not match the number of agents.
	ErrInvalidSlice = errors.New("portion: invalid assigned slice")

	// ErrNotPartition indicates slices that leave a gap, overlap, or
	// overrun [0, cakeSize).
	ErrNotPartition = errors.New("portion: slices do not partition the resource")

	// ErrEnvy indicates an agent that values another portion above its own.
	ErrEnvy = errors.New("portion: division is not envy-free")

	// ErrNotProportional indicates an agent holding less than 1/n of its
	// own valuation.
	ErrNotProportional = errors.New("portion: division is not proportional")
)

// Edge is an owned interval [Start, End).
type Edge struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Portion is everything one agent owns.
// ValuePerAgent[j] is the fraction of agent j's total valuation held here.
type Portion struct {
	Owner         int       `json:"owner" yaml:"owner"`
	ValuePerAgent []float64 `json:"valuePerAgent" yaml:"valuePerAgent"`
	Edges         []Edge    `json:"edges" yaml:"edges"`
}
