package trace

import (
	"fmt"

	"github.com/katalvlaran/fairdiv/cake"
)

// ActorProcedure is the reserved actor index for steps taken by the
// procedure itself rather than by an agent.
const ActorProcedure = -1

// Action identifies what happened in a Step.
type Action uint8

const (
	// InitialCut: the cutter divides the resource into equal-value slices.
	InitialCut Action = iota
	// DeclineTrim: the ranker finds its two largest slices equal and trims nothing.
	DeclineTrim
	// Trim: the ranker shaves its largest slice down to the second largest.
	// Pieces are [trimming, trimmed piece, second largest].
	Trim
	// Pick: the actor freely takes its favourite of the available slices.
	Pick
	// ForcedPick: the trimmer must take the trimmed piece because it remains.
	ForcedPick
	// FinalRemainder: the actor receives the single slice left over.
	FinalRemainder
	// ClaimTrimmings: the agent that did not take the trimmed piece earns
	// the right to divide the trimming.
	ClaimTrimmings
	// DivideTrimmings: the trimming is cut into equal-value thirds.
	DivideTrimmings
	// PickTrimming: the actor takes its favourite remaining trimming piece.
	PickTrimming
	// RemainingTrimming: the actor receives the last trimming piece.
	RemainingTrimming
	// Equipartition: an external solver's initial equal cut.
	Equipartition
	// Segmentation: an external solver splits the resource into segments.
	Segmentation
	// LocateCuts: an external solver identifies the segments holding the cuts.
	LocateCuts
	// Terminate: the procedure settles on its final cut positions.
	Terminate
	// Assigned: a slice is handed to an agent by an external solver.
	Assigned
	// Reduce: the other agents prefer one slice, which the procedure shrinks.
	Reduce
)

var actionNames = [...]string{
	"initial_cut",
	"decline_trim",
	"trim",
	"pick",
	"forced_pick",
	"final_remainder",
	"claim_trimmings",
	"divide_trimmings",
	"pick_trimming",
	"remaining_trimming",
	"equipartition",
	"segmentation",
	"locate_cuts",
	"terminate",
	"assigned",
	"reduce",
}

// String returns the snake_case name of a.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// MarshalText encodes a by name so traces stay readable on the wire.
func (a Action) MarshalText() ([]byte, error) {
	if int(a) >= len(actionNames) {
		return nil, fmt.Errorf("trace: unknown action %d", uint8(a))
	}
	return []byte(actionNames[a]), nil
}

// UnmarshalText decodes a name produced by MarshalText.
func (a *Action) UnmarshalText(b []byte) error {
	for i, name := range actionNames {
		if name == string(b) {
			*a = Action(i)
			return nil
		}
	}
	return fmt.Errorf("trace: unknown action %q", b)
}

// Step is one entry of the decision trace.
//
// Actor is a 0-based agent index or ActorProcedure. Pieces are snapshots of
// the slices the action refers to. Cuts lists the resource positions the
// action created, if any. Assign marks a terminal ownership decision.
type Step struct {
	Actor  int          `json:"actor" yaml:"actor"`
	Action Action       `json:"action" yaml:"action"`
	Pieces []cake.Slice `json:"pieces" yaml:"pieces"`
	Cuts   []float64    `json:"cuts,omitempty" yaml:"cuts,omitempty"`
	Assign bool         `json:"assign" yaml:"assign"`
}

// Clone returns a deep copy of s.
func (s Step) Clone() Step {
	pieces := make([]cake.Slice, len(s.Pieces))
	for i, p := range s.Pieces {
		pieces[i] = p.Clone()
	}
	s.Pieces = pieces
	if s.Cuts != nil {
		s.Cuts = append([]float64(nil), s.Cuts...)
	}
	return s
}
