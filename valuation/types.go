package valuation

import "errors"

var (
	// ErrDomain indicates a cut-line search whose bounds lie outside the
	// profile, or whose target value cannot be reached within the bounds.
	ErrDomain = errors.New("valuation: target outside achievable range")

	// ErrMalformedProfile indicates segments that do not partition
	// [0, cakeSize) or carry negative or non-finite density values.
	ErrMalformedProfile = errors.New("valuation: malformed profile")
)

// reachSlack is the relative slack granted when a target exceeds the value
// available inside the bounds. Callers routinely pass a target computed as a
// difference of two integrals, which may overshoot by a few ulps.
const reachSlack = 1e-12

// Segment is one linear piece of a value-density function.
// The density at Start is StartValue and at End is EndValue.
type Segment struct {
	Start      float64 `json:"start" yaml:"start"`
	End        float64 `json:"end" yaml:"end"`
	StartValue float64 `json:"startValue" yaml:"startValue"`
	EndValue   float64 `json:"endValue" yaml:"endValue"`
}

// Width returns End - Start.
func (s Segment) Width() float64 { return s.End - s.Start }

// Slope returns the change of density per unit of the resource.
func (s Segment) Slope() float64 {
	w := s.Width()
	if w <= 0 {
		return 0
	}
	return (s.EndValue - s.StartValue) / w
}

// DensityAt linearly interpolates the density at x, which must lie inside
// [Start, End].
func (s Segment) DensityAt(x float64) float64 {
	if x <= s.Start {
		return s.StartValue
	}
	if x >= s.End {
		return s.EndValue
	}
	return s.StartValue + s.Slope()*(x-s.Start)
}

// Profile is one agent's valuation: ordered, non-overlapping segments
// covering [0, cakeSize).
type Profile []Segment

// Domain returns the interval covered by the profile.
// An empty profile covers the empty interval [0, 0].
func (p Profile) Domain() Bounds {
	if len(p) == 0 {
		return Bounds{}
	}
	return Bounds{Start: p[0].Start, End: p[len(p)-1].End}
}

// Bounds is a closed search interval [Start, End] on the resource.
type Bounds struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Width returns End - Start.
func (b Bounds) Width() float64 { return b.End - b.Start }
