package engine

import (
	"math"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
)

// ForceWeights are the fixed signed weights combining the five forces into
// the raw equilibrium shift. They are deliberately simple and interpretable;
// there is no fitting or calibration step.
type ForceWeights struct {
	Demand      float64 `json:"demand"`
	Supply      float64 `json:"supply"`
	Volatility  float64 `json:"volatility"`
	Liquidity   float64 `json:"liquidity"`
	Speculation float64 `json:"speculation"`
}

// DefaultWeights returns the model's fixed force weights. Volatility carries
// a negative weight: instability pulls away from equilibrium.
func DefaultWeights() ForceWeights {
	return ForceWeights{
		Demand:      0.35,
		Supply:      0.20,
		Volatility:  -0.20,
		Liquidity:   0.15,
		Speculation: 0.30,
	}
}

const (
	// shiftScale maps the raw [-1,1] shift into a +/-15% price adjustment.
	shiftScale = 0.15

	baseBandWidth        = 0.05
	volatilityBandExtra  = 0.10
	speculationBandExtra = 0.05
	minBandWidth         = 0.05
	maxBandWidth         = 0.25
)

// ComposeEquilibrium combines the five forces into the equilibrium shift,
// center, band and tension score for every row.
func ComposeEquilibrium(snap *domain.Snapshot, w ForceWeights) {
	for i := range snap.Assets {
		a := &snap.Assets[i]

		rawShift := w.Demand*a.ForceDemand +
			w.Supply*a.ForceSupply +
			w.Volatility*a.ForceVolatility +
			w.Liquidity*a.ForceLiquidity +
			w.Speculation*a.ForceSpeculation
		rawShift = clamp(rawShift, -1, 1)

		a.EquilibriumShift = shiftScale * rawShift
		a.EquilibriumCenter = a.CurrentPrice * (1.0 + a.EquilibriumShift)

		// Band widens with destabilizing volatility and speculative heat.
		width := baseBandWidth +
			volatilityBandExtra*((1.0-a.ForceVolatility)/2.0) +
			speculationBandExtra*((1.0+a.ForceSpeculation)/2.0)
		width = clamp(width, minBandWidth, maxBandWidth)

		a.EquilibriumLower = a.EquilibriumCenter * (1.0 - width)
		a.EquilibriumUpper = a.EquilibriumCenter * (1.0 + width)

		a.TensionScore = math.Abs(rawShift) + (1.0-a.ForceVolatility)/2.0
	}
}
