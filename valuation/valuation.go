package valuation

import (
	"fmt"
	"math"
)

// TotalValue returns the integral of the density over the whole profile.
// Complexity: O(S).
func TotalValue(p Profile) float64 {
	d := p.Domain()
	return ValueOf(p, d.Start, d.End)
}

// ValueOf returns the integral of p's density over [start, end).
// Reversed or empty intervals are worth 0. Portions of the interval that
// fall outside the profile contribute nothing.
//
// For each overlapping segment the overlap is a trapezoid whose parallel
// sides are the interpolated densities at the overlap boundaries.
// Complexity: O(S).
func ValueOf(p Profile, start, end float64) float64 {
	if end <= start {
		return 0
	}
	var total float64
	var lo, hi float64
	for _, s := range p {
		lo, hi = max(s.Start, start), min(s.End, end)
		if hi <= lo {
			continue
		}
		total += trapezoid(s, lo, hi)
	}
	return total
}

// FindCutLineByPercent returns the smallest x in b such that
// ValueOf(p, b.Start, x) == percent·ValueOf(p, b.Start, b.End).
// b is always taken literally; FindCutLineInDomain searches the whole profile.
//
// An interval worth nothing yields b.Start, so zero-density stretches
// never cause a division by zero.
//
// Errors: ErrDomain if percent is outside [0, 1] or b is not inside the
// profile's domain.
func FindCutLineByPercent(p Profile, percent float64, b Bounds) (float64, error) {
	if math.IsNaN(percent) || percent < 0 || percent > 1 {
		return 0, fmt.Errorf("%w: percent %g not in [0,1]", ErrDomain, percent)
	}
	if err := checkBounds(p, b); err != nil {
		return 0, err
	}
	avail := ValueOf(p, b.Start, b.End)
	if avail <= 0 || percent == 0 {
		return b.Start, nil
	}

	return locate(p, percent*avail, b), nil
}

// FindCutLineInDomain is FindCutLineByPercent over p.Domain().
func FindCutLineInDomain(p Profile, percent float64) (float64, error) {
	return FindCutLineByPercent(p, percent, p.Domain())
}

// FindCutLineByValue returns the smallest x in b such that
// ValueOf(p, b.Start, x) == target.
//
// Errors: ErrDomain if b is not inside the profile's domain, if target is
// negative, or if target exceeds the value available inside b.
func FindCutLineByValue(p Profile, target float64, b Bounds) (float64, error) {
	if err := checkBounds(p, b); err != nil {
		return 0, err
	}
	if math.IsNaN(target) || target < 0 {
		return 0, fmt.Errorf("%w: target %g is negative", ErrDomain, target)
	}
	avail := ValueOf(p, b.Start, b.End)
	if target > avail {
		if target-avail > reachSlack*max(1, avail) {
			return 0, fmt.Errorf("%w: target %g exceeds %g available in [%g,%g]",
				ErrDomain, target, avail, b.Start, b.End)
		}
		target = avail
	}
	if target == 0 {
		return b.Start, nil
	}

	return locate(p, target, b), nil
}

// locate walks the segments overlapping b, consuming target, and solves the
// segment's quadratic once the remainder fits inside it.
// Precondition: 0 < target <= ValueOf(p, b.Start, b.End).
func locate(p Profile, target float64, b Bounds) float64 {
	remaining := target
	var lo, hi, area float64
	for _, s := range p {
		lo, hi = max(s.Start, b.Start), min(s.End, b.End)
		if hi <= lo {
			continue
		}
		area = trapezoid(s, lo, hi)
		if area <= 0 {
			// Worthless stretch: a cut never lands inside it.
			continue
		}
		if remaining <= area {
			return solveInSegment(s, lo, hi, remaining)
		}
		remaining -= area
	}

	// Accumulated rounding left a sliver unconsumed; the whole interval is
	// the closest achievable answer.
	return b.End
}

// solveInSegment returns lo+t where a·t + k·t²/2 = r, a = density at lo,
// k = slope. The rearranged root avoids cancellation when k <= 0.
func solveInSegment(s Segment, lo, hi, r float64) float64 {
	a := s.DensityAt(lo)
	k := s.Slope()
	disc := a*a + 2*k*r
	if disc < 0 {
		disc = 0
	}
	den := a + math.Sqrt(disc)
	if den <= 0 {
		return hi
	}
	x := lo + 2*r/den

	return min(max(x, lo), hi)
}

// trapezoid integrates the segment's density over [lo, hi] ⊆ [s.Start, s.End].
func trapezoid(s Segment, lo, hi float64) float64 {
	return (hi - lo) * (s.DensityAt(lo) + s.DensityAt(hi)) / 2
}

// checkBounds verifies that b is ordered and inside p's domain.
func checkBounds(p Profile, b Bounds) error {
	d := p.Domain()
	if math.IsNaN(b.Start) || math.IsNaN(b.End) || b.Start > b.End {
		return fmt.Errorf("%w: bounds [%g,%g] are not ordered", ErrDomain, b.Start, b.End)
	}
	if b.Start < d.Start || b.End > d.End {
		return fmt.Errorf("%w: bounds [%g,%g] outside domain [%g,%g]",
			ErrDomain, b.Start, b.End, d.Start, d.End)
	}
	return nil
}
