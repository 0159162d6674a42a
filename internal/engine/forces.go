package engine

import (
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
)

// Demand is the only composite force: volume and 7-day momentum are ranked
// independently, then blended.
const (
	demandVolumeWeight   = 0.6
	demandMomentumWeight = 0.4
)

// ComputeForces scores the five forces for every row. Each force is a
// rank-to-unit mapping of one source feature with missing values neutralized
// to 0 before ranking. The final clamps are redundant under the current
// formulas but stay as the contract protecting future weight changes.
func ComputeForces(snap *domain.Snapshot) {
	volume := neutralized(snap.Column(func(a *domain.Asset) float64 { return a.TotalVolume }))
	momentum7d := neutralized(snap.Column(func(a *domain.Asset) float64 { return a.PriceChangePct7d }))
	utilization := neutralized(snap.Column(func(a *domain.Asset) float64 { return a.SupplyUtilization }))
	volatility7d := neutralized(snap.Column(func(a *domain.Asset) float64 { return a.Volatility7d }))
	liquidity := neutralized(snap.Column(func(a *domain.Asset) float64 { return a.LiquidityRatio }))
	speculation := neutralized(snap.Column(func(a *domain.Asset) float64 { return a.SpeculationIndex }))

	volumeRank := rankToUnit(volume, true)
	momentumRank := rankToUnit(momentum7d, true)
	supplyRank := rankToUnit(utilization, true)
	// Descending: the most volatile asset scores most negative.
	volatilityRank := rankToUnit(volatility7d, false)
	liquidityRank := rankToUnit(liquidity, true)
	speculationRank := rankToUnit(speculation, true)

	for i := range snap.Assets {
		a := &snap.Assets[i]
		a.ForceDemand = clamp(demandVolumeWeight*volumeRank[i]+demandMomentumWeight*momentumRank[i], -1, 1)
		a.ForceSupply = clamp(supplyRank[i], -1, 1)
		a.ForceVolatility = clamp(volatilityRank[i], -1, 1)
		a.ForceLiquidity = clamp(liquidityRank[i], -1, 1)
		a.ForceSpeculation = clamp(speculationRank[i], -1, 1)
	}
}

func neutralized(col []float64) []float64 {
	for i := range col {
		col[i] = orZero(col[i])
	}
	return col
}
