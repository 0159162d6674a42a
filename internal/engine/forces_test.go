package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
)

// neutralSnapshot builds rows where every force driver is constant except
// those a test overrides, so single forces can be observed in isolation.
func neutralSnapshot(n int) domain.Snapshot {
	assets := make([]domain.Asset, n)
	for i := range assets {
		assets[i] = domain.Asset{
			Symbol:            string(rune('A' + i)),
			CurrentPrice:      100,
			MarketCap:         1000,
			TotalVolume:       10,
			CirculatingSupply: 50,
			MaxSupply:         100,
			PriceChangePct24h: 1,
			PriceChangePct7d:  1,
			SupplyUtilization: math.NaN(),
		}
	}
	return domain.NewSnapshot(assets)
}

func TestComputeForces_VolumeRankDrivesDemand(t *testing.T) {
	snap := neutralSnapshot(3)
	snap.Assets[0].TotalVolume = 100
	snap.Assets[1].TotalVolume = 200
	snap.Assets[2].TotalVolume = 300

	EngineerFeatures(&snap)
	ComputeForces(&snap)

	// 7d momentum is constant, so its rank term is 0 and demand is pure
	// volume rank at weight 0.6... except liquidity also moves with volume
	// here; demand itself only blends volume and momentum.
	assert.InDelta(t, 0.6*(-1.0/3.0), snap.Assets[0].ForceDemand, 1e-12)
	assert.InDelta(t, 0.6*(1.0/3.0), snap.Assets[1].ForceDemand, 1e-12)
	assert.InDelta(t, 0.6*1.0, snap.Assets[2].ForceDemand, 1e-12)
}

func TestComputeForces_DemandBlend(t *testing.T) {
	snap := neutralSnapshot(3)
	snap.Assets[0].TotalVolume, snap.Assets[0].PriceChangePct7d = 100, -5
	snap.Assets[1].TotalVolume, snap.Assets[1].PriceChangePct7d = 200, 0
	snap.Assets[2].TotalVolume, snap.Assets[2].PriceChangePct7d = 300, 5

	EngineerFeatures(&snap)
	ComputeForces(&snap)

	assert.InDelta(t, 0.6*(-1.0/3.0)+0.4*(-1.0/3.0), snap.Assets[0].ForceDemand, 1e-12)
	assert.InDelta(t, 0.6*(1.0/3.0)+0.4*(1.0/3.0), snap.Assets[1].ForceDemand, 1e-12)
	assert.InDelta(t, 1.0, snap.Assets[2].ForceDemand, 1e-12)
}

func TestComputeForces_VolatilityDescending(t *testing.T) {
	snap := neutralSnapshot(3)
	snap.Assets[0].PriceChangePct7d = 1
	snap.Assets[1].PriceChangePct7d = -10
	snap.Assets[2].PriceChangePct7d = 30

	EngineerFeatures(&snap)
	ComputeForces(&snap)

	// The most volatile asset scores most negative.
	assert.Equal(t, -1.0, snap.Assets[2].ForceVolatility)
	assert.Greater(t, snap.Assets[0].ForceVolatility, snap.Assets[1].ForceVolatility)
}

func TestComputeForces_ConstantColumnsNeutral(t *testing.T) {
	snap := neutralSnapshot(4)

	EngineerFeatures(&snap)
	ComputeForces(&snap)

	for i := range snap.Assets {
		a := &snap.Assets[i]
		assert.Equal(t, 0.0, a.ForceDemand, "row %d", i)
		assert.Equal(t, 0.0, a.ForceSupply, "row %d", i)
		assert.Equal(t, 0.0, a.ForceVolatility, "row %d", i)
		assert.Equal(t, 0.0, a.ForceLiquidity, "row %d", i)
		assert.Equal(t, 0.0, a.ForceSpeculation, "row %d", i)
	}
}

func TestComputeForces_AllForcesBounded(t *testing.T) {
	snap := neutralSnapshot(7)
	// Scatter the drivers, including missing and degenerate cells.
	vols := []float64{0, 1e12, 55, math.NaN(), 3, 3, 9e9}
	moms := []float64{-99, 0, 12, math.NaN(), 4, -4, 250}
	caps := []float64{0, 1e9, 5, 5, math.NaN(), 77, 1}
	for i := range snap.Assets {
		snap.Assets[i].TotalVolume = vols[i]
		snap.Assets[i].PriceChangePct7d = moms[i]
		snap.Assets[i].MarketCap = caps[i]
	}

	EngineerFeatures(&snap)
	ComputeForces(&snap)

	for i := range snap.Assets {
		a := &snap.Assets[i]
		for name, f := range map[string]float64{
			"demand":      a.ForceDemand,
			"supply":      a.ForceSupply,
			"volatility":  a.ForceVolatility,
			"liquidity":   a.ForceLiquidity,
			"speculation": a.ForceSpeculation,
		} {
			assert.False(t, math.IsNaN(f), "row %d force %s", i, name)
			assert.GreaterOrEqual(t, f, -1.0, "row %d force %s", i, name)
			assert.LessOrEqual(t, f, 1.0, "row %d force %s", i, name)
		}
	}
}
