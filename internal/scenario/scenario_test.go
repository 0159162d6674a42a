package scenario

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/dataset"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/engine"
)

// processedBase mirrors real usage: scenarios perturb the processed table,
// where supply_utilization has already been derived.
func processedBase(pipe engine.Pipeline) domain.Snapshot {
	nan := math.NaN()
	raw := domain.NewSnapshot([]domain.Asset{
		{Symbol: "AAA", CurrentPrice: 10, MarketCap: 1000, TotalVolume: 200, CirculatingSupply: 40, MaxSupply: 100, PriceChangePct24h: 2, PriceChangePct7d: 4, SupplyUtilization: nan},
		{Symbol: "BBB", CurrentPrice: 20, MarketCap: 2000, TotalVolume: 100, CirculatingSupply: 90, MaxSupply: 100, PriceChangePct24h: 1, PriceChangePct7d: 8, SupplyUtilization: nan},
	})
	return pipe.Run(raw)
}

func TestApply_VolumeHalvingMovesBothRows(t *testing.T) {
	pipe := engine.NewPipeline()
	base := processedBase(pipe)

	sc := Neutral("AAA")
	sc.VolumeMult = 0.5
	res, err := Apply(base, pipe, sc)
	require.NoError(t, err)

	// AAA's volume drops from 200 to 100, tying BBB: AAA loses its demand
	// rank edge, and because ranking is cross-sectional BBB's outputs move
	// too even though its raw inputs are untouched.
	assert.NotEqual(t, base.Assets[0].ForceDemand, res.Snapshot.Assets[0].ForceDemand)
	assert.NotEqual(t, base.Assets[1].ForceDemand, res.Snapshot.Assets[1].ForceDemand)
	assert.NotEqual(t, base.Assets[0].EquilibriumShift, res.Snapshot.Assets[0].EquilibriumShift)
	assert.NotEqual(t, base.Assets[1].EquilibriumShift, res.Snapshot.Assets[1].EquilibriumShift)
}

func TestApply_NeutralScenarioChangesNothing(t *testing.T) {
	pipe := engine.NewPipeline()
	base := processedBase(pipe)

	res, err := Apply(base, pipe, Neutral("AAA"))
	require.NoError(t, err)

	for i := range base.Assets {
		assert.Equal(t, base.Assets[i].EquilibriumShift, res.Snapshot.Assets[i].EquilibriumShift, "row %d", i)
		assert.Equal(t, base.Assets[i].TensionScore, res.Snapshot.Assets[i].TensionScore, "row %d", i)
	}
}

func TestApply_UtilizationShiftClamped(t *testing.T) {
	pipe := engine.NewPipeline()
	base := processedBase(pipe)

	// BBB's derived utilization is 90/100 = 0.9; +0.9 clamps to 1.
	sc := Neutral("BBB")
	sc.UtilizationShift = 0.9
	res, err := Apply(base, pipe, sc)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Target().SupplyUtilization)

	sc.UtilizationShift = -0.95
	res, err = Apply(base, pipe, sc)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Target().SupplyUtilization)
}

func TestApply_VolatilityMultiplierHitsBothHorizons(t *testing.T) {
	pipe := engine.NewPipeline()

	sc := Neutral("AAA")
	sc.VolatilityMult = 3
	res, err := Apply(processedBase(pipe), pipe, sc)
	require.NoError(t, err)

	assert.Equal(t, 6.0, res.Target().Volatility24h)
	assert.Equal(t, 12.0, res.Target().Volatility7d)
}

func TestApply_VolumeNeverNegative(t *testing.T) {
	pipe := engine.NewPipeline()

	sc := Neutral("AAA")
	sc.VolumeMult = -2
	res, err := Apply(processedBase(pipe), pipe, sc)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Target().TotalVolume)
}

func TestApply_UnknownSymbol(t *testing.T) {
	pipe := engine.NewPipeline()
	_, err := Apply(processedBase(pipe), pipe, Neutral("DOGE"))
	assert.ErrorIs(t, err, dataset.ErrSymbolNotFound)
}

func TestApply_BaseSnapshotUntouched(t *testing.T) {
	pipe := engine.NewPipeline()
	base := processedBase(pipe)
	sc := Neutral("AAA")
	sc.VolumeMult = 0.5

	_, err := Apply(base, pipe, sc)
	require.NoError(t, err)

	assert.Equal(t, 200.0, base.Assets[0].TotalVolume)
}
