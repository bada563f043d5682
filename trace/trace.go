package trace

import "github.com/katalvlaran/fairdiv/cake"

// Trace is an append-only, causally ordered list of Steps.
// The zero value is ready to use. A Trace is not safe for concurrent use;
// procedures that build one are single-threaded.
type Trace struct {
	steps []Step
}

// Append records a step. The pieces and cuts are copied, so the caller may
// keep using its slices without affecting the recorded snapshot.
func (t *Trace) Append(actor int, action Action, pieces []cake.Slice, cuts []float64, assign bool) {
	t.steps = append(t.steps, Step{
		Actor:  actor,
		Action: action,
		Pieces: pieces,
		Cuts:   cuts,
		Assign: assign,
	}.Clone())
}

// Record is Append for actions without cut positions.
func (t *Trace) Record(actor int, action Action, assign bool, pieces ...cake.Slice) {
	t.Append(actor, action, pieces, nil, assign)
}

// Len returns the number of recorded steps.
func (t *Trace) Len() int { return len(t.steps) }

// Steps returns a deep copy of the recorded steps in causal order.
func (t *Trace) Steps() []Step {
	out := make([]Step, len(t.steps))
	for i, s := range t.steps {
		out[i] = s.Clone()
	}
	return out
}

// Replay calls fn for every step in causal order and stops at the first
// error, which it returns.
func Replay(steps []Step, fn func(i int, s Step) error) error {
	for i, s := range steps {
		if err := fn(i, s); err != nil {
			return err
		}
	}
	return nil
}

// Assignments returns only the steps marked as terminal ownership decisions.
func Assignments(steps []Step) []Step {
	var out []Step
	for _, s := range steps {
		if s.Assign {
			out = append(out, s)
		}
	}
	return out
}
