package cake

import (
	"errors"
	"fmt"
)

// ErrNoSlices indicates a selection over an empty list of slices.
var ErrNoSlices = errors.New("cake: no slices to choose from")

// Note is an explanatory label on a slice. It never influences logic.
type Note uint8

const (
	// NoteNone marks an ordinary slice.
	NoteNone Note = iota
	// NoteTrimming marks the excess shaved off a slice, or a piece of it.
	NoteTrimming
	// NoteTrimmed marks a slice that has had a trimming removed.
	NoteTrimmed
)

var noteNames = [...]string{"", "trimming", "trimmed"}

// String returns the label, empty for NoteNone.
func (n Note) String() string {
	if int(n) < len(noteNames) {
		return noteNames[n]
	}
	return fmt.Sprintf("Note(%d)", uint8(n))
}

// MarshalText encodes the note as its label.
func (n Note) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// UnmarshalText decodes a label produced by MarshalText.
func (n *Note) UnmarshalText(b []byte) error {
	for i, name := range noteNames {
		if name == string(b) {
			*n = Note(i)
			return nil
		}
	}
	return fmt.Errorf("cake: unknown note %q", b)
}

// Slice is an interval [Start, End) of the resource together with its
// value to every agent: Values[i] is agent i's integral over the interval.
type Slice struct {
	ID     int       `json:"id" yaml:"id"`
	Start  float64   `json:"start" yaml:"start"`
	End    float64   `json:"end" yaml:"end"`
	Values []float64 `json:"values" yaml:"values"`
	Note   Note      `json:"note,omitempty" yaml:"note,omitempty"`
}

// Width returns End - Start.
func (s Slice) Width() float64 { return s.End - s.Start }

// Clone returns a copy that shares no memory with s.
func (s Slice) Clone() Slice {
	s.Values = append([]float64(nil), s.Values...)
	return s
}

// Assign returns an AssignedSlice owned by owner. s is left untouched.
func (s Slice) Assign(owner int) AssignedSlice {
	return AssignedSlice{Slice: s.Clone(), Owner: owner}
}

// AssignedSlice is a Slice with an owning agent.
type AssignedSlice struct {
	Slice `yaml:",inline"`
	Owner int `json:"owner" yaml:"owner"`
}
