package valuation

import (
	"fmt"
	"math"
)

// Validate checks that p partitions [0, cakeSize) with no gaps or overlaps
// and that every endpoint density is finite and non-negative.
// Violations are reported as ErrMalformedProfile, wrapped with the index of
// the offending segment.
func Validate(p Profile, cakeSize float64) error {
	if !isFinite(cakeSize) || cakeSize <= 0 {
		return fmt.Errorf("%w: cake size %g must be positive", ErrMalformedProfile, cakeSize)
	}
	if len(p) == 0 {
		return fmt.Errorf("%w: no segments", ErrMalformedProfile)
	}
	if p[0].Start != 0 {
		return fmt.Errorf("%w: segment 0 starts at %g, want 0", ErrMalformedProfile, p[0].Start)
	}

	for i, s := range p {
		if !isFinite(s.Start) || !isFinite(s.End) || s.Start >= s.End {
			return fmt.Errorf("%w: segment %d has empty or reversed interval [%g,%g]",
				ErrMalformedProfile, i, s.Start, s.End)
		}
		if !isFinite(s.StartValue) || !isFinite(s.EndValue) || s.StartValue < 0 || s.EndValue < 0 {
			return fmt.Errorf("%w: segment %d has invalid density (%g, %g)",
				ErrMalformedProfile, i, s.StartValue, s.EndValue)
		}
		if i > 0 && s.Start != p[i-1].End {
			return fmt.Errorf("%w: segment %d starts at %g but segment %d ends at %g",
				ErrMalformedProfile, i, s.Start, i-1, p[i-1].End)
		}
	}

	if last := p[len(p)-1].End; last != cakeSize {
		return fmt.Errorf("%w: profile ends at %g, want %g", ErrMalformedProfile, last, cakeSize)
	}
	return nil
}

// ValidateAll runs Validate on every profile and reports the first failure
// together with the agent index.
func ValidateAll(profiles []Profile, cakeSize float64) error {
	for i, p := range profiles {
		if err := Validate(p, cakeSize); err != nil {
			return fmt.Errorf("agent %d: %w", i, err)
		}
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
