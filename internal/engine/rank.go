// Package engine implements the equilibrium computation pipeline: feature
// engineering, rank-based force scoring, and the equilibrium compositor.
// Everything here is a pure function of the whole snapshot — ranking is
// cross-sectional, so no field can be derived from a single row alone.
package engine

import (
	"math"
	"sort"
)

type rankedValue struct {
	val float64
	idx int
}

// rankToUnit maps a column to [-1, 1] by percentile rank.
//
// Ties receive the mean ordinal position of their group ("average" rule) and
// ranks are expressed as a fraction of the ranked count, so the maximum value
// maps to exactly +1 while the minimum lands at -1 + 2/n. That asymmetry is
// part of the contract: for three distinct ascending values the scores are
// exactly -1/3, +1/3, +1.
//
// A column with at most one distinct non-NaN value carries no information and
// maps to all zeros. NaN inputs stay NaN; callers neutralize missing values
// before ranking.
func rankToUnit(values []float64, ascending bool) []float64 {
	out := make([]float64, len(values))

	distinct := make(map[float64]struct{}, len(values))
	ranked := make([]rankedValue, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		distinct[v] = struct{}{}
		ranked = append(ranked, rankedValue{val: v, idx: i})
	}

	if len(distinct) <= 1 {
		for i := range out {
			out[i] = 0
		}
		return out
	}

	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].val < ranked[b].val })

	n := float64(len(ranked))
	for lo := 0; lo < len(ranked); {
		hi := lo
		for hi < len(ranked) && ranked[hi].val == ranked[lo].val {
			hi++
		}
		// mean of the 1-based ordinal positions lo+1 .. hi
		avgRank := float64(lo+1+hi) / 2.0
		frac := avgRank / n
		if !ascending {
			frac = 1.0 - frac
		}
		score := 2.0 * (frac - 0.5)
		for k := lo; k < hi; k++ {
			out[ranked[k].idx] = score
		}
		lo = hi
	}
	return out
}
