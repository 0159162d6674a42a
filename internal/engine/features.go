package engine

import (
	"math"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
)

// EngineerFeatures populates the derived descriptive columns from the raw
// market columns. It only adds columns; raw fields are never mutated.
func EngineerFeatures(snap *domain.Snapshot) {
	for i := range snap.Assets {
		a := &snap.Assets[i]

		// Volume relative to market cap; zero or missing cap means unknown.
		a.LiquidityRatio = SafeDiv(a.TotalVolume, a.MarketCap)

		a.Volatility24h = math.Abs(a.PriceChangePct24h)
		a.Volatility7d = math.Abs(a.PriceChangePct7d)

		// Short-term swings amplified by how actively the asset trades.
		a.SpeculationIndex = (orZero(a.Volatility24h) + orZero(a.Volatility7d)) * orZero(a.LiquidityRatio)
	}

	// A supplied supply_utilization column is kept only when it actually
	// discriminates between assets. Absent, all-missing, or constant, the
	// structural circulating/max approximation replaces it.
	if !utilizationUsable(snap) {
		for i := range snap.Assets {
			a := &snap.Assets[i]
			a.SupplyUtilization = clamp(SafeDiv(a.CirculatingSupply, a.MaxSupply), 0, 1)
		}
	}
}

// utilizationUsable reports whether the supplied supply_utilization column
// has at least two distinct non-missing values.
func utilizationUsable(snap *domain.Snapshot) bool {
	distinct := make(map[float64]struct{}, 2)
	for i := range snap.Assets {
		v := snap.Assets[i].SupplyUtilization
		if math.IsNaN(v) {
			continue
		}
		distinct[v] = struct{}{}
		if len(distinct) > 1 {
			return true
		}
	}
	return false
}
