// Package input decodes preference documents. A document is YAML (or JSON,
// which YAML accepts):
//
//	algorithm: selfridge-conway   # optional
//	cakeSize: 90                  # optional, defaults to the first profile's end
//	preferences:
//	  - [{start: 0, end: 90, startValue: 10, endValue: 10}]
//	  - ...
package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fairdiv/divide"
	"github.com/katalvlaran/fairdiv/valuation"
)

var (
	// ErrEmpty indicates a document without preferences.
	ErrEmpty = errors.New("input: no preferences")
	// ErrDecode indicates a document that is not valid YAML or JSON, or
	// that carries unknown fields.
	ErrDecode = errors.New("input: cannot decode document")
)

// Document is a division request.
type Document struct {
	Algorithm   divide.Algorithm    `yaml:"algorithm,omitempty" json:"algorithm,omitempty"`
	CakeSize    float64             `yaml:"cakeSize" json:"cakeSize"`
	Preferences []valuation.Profile `yaml:"preferences" json:"preferences"`
}

// Decode reads one document from r, rejecting unknown fields, fills in a
// missing cake size and validates every profile.
func Decode(r io.Reader) (Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, ErrEmpty
		}
		return Document{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(doc.Preferences) == 0 {
		return Document{}, ErrEmpty
	}
	if doc.CakeSize == 0 {
		doc.CakeSize = doc.Preferences[0].Domain().End
	}
	if err := valuation.ValidateAll(doc.Preferences, doc.CakeSize); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Load decodes the document stored at path.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("input: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
