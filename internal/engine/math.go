package engine

import "math"

// SafeDiv divides a by b, producing NaN instead of an infinity or panic when
// the denominator is zero or missing. Unknown propagates; it is neutralized
// only at the points the force definitions call for.
func SafeDiv(a, b float64) float64 {
	if b == 0 || math.IsNaN(b) {
		return math.NaN()
	}
	return a / b
}

// clamp bounds v to [lo, hi]. NaN fails both comparisons and passes through
// unchanged, preserving missing-value propagation.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// orZero neutralizes a missing value to 0.
func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
