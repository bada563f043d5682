// Package valuation integrates piecewise-linear value densities over a
// one-dimensional resource and inverts those integrals to locate cut lines.
//
// What is a valuation profile?
//
//	A Profile is an ordered list of Segments that tile [0, cakeSize).
//	Inside each Segment the value density moves linearly from StartValue
//	to EndValue, so the value of any sub-interval is a sum of trapezoids.
//
// Key operations:
//   - TotalValue:           integral of the density over the whole profile.
//   - ValueOf:              integral over an arbitrary [start, end).
//   - FindCutLineByValue:   smallest x with ValueOf(bounds.Start, x) == target.
//   - FindCutLineByPercent: same, against percent·ValueOf(bounds).
//   - FindCutLineInDomain: FindCutLineByPercent over the whole profile.
//   - Validate/ValidateAll: reject profiles that do not partition the domain.
//
// Cut search inverts the per-segment quadratic in closed form:
//
//	a·t + k·t²/2 = r  ⇒  t = 2r / (a + √(a² + 2kr))
//
// The rearranged form is stable when the slope k is zero or negative and
// returns exact positions for uniform densities. Zero-density spans are
// skipped, so a cut never lands inside a stretch that adds no value.
//
// Complexity:
//
//   - ValueOf, TotalValue:   O(S) where S = number of segments.
//   - FindCutLine*:          O(S); no iteration, no tolerance loop.
//
// Errors (sentinel):
//
//   - ErrDomain           bounds outside the profile, or unreachable target.
//   - ErrMalformedProfile segments that do not partition [0, cakeSize).
package valuation
