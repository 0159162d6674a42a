// Package scenario recomputes the equilibrium model under a hypothetical
// change to one asset's raw inputs. Ranking is cross-sectional, so a single
// perturbed row forces a full-table recomputation; the scenario clones the
// snapshot and never touches the caller's table.
package scenario

import (
	"fmt"
	"math"
	"strings"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/dataset"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/engine"
)

// Scenario describes a what-if perturbation of one asset.
type Scenario struct {
	Symbol string `json:"symbol"`

	// VolumeMult scales total_volume; the result never drops below zero.
	VolumeMult float64 `json:"volume_mult"`

	// VolatilityMult scales both the 24h and 7d percentage changes.
	VolatilityMult float64 `json:"volatility_mult"`

	// UtilizationShift is an absolute adjustment to supply utilization;
	// the result is clamped into [0, 1].
	UtilizationShift float64 `json:"utilization_shift"`
}

// Neutral returns a scenario that leaves the asset unchanged.
func Neutral(symbol string) Scenario {
	return Scenario{Symbol: symbol, VolumeMult: 1, VolatilityMult: 1}
}

// Result pairs the recomputed table with the perturbed row's position.
type Result struct {
	Snapshot domain.Snapshot
	Index    int
}

// Target is the perturbed row after recomputation.
func (r Result) Target() domain.Asset { return r.Snapshot.Assets[r.Index] }

// Apply runs the scenario: clone the snapshot, override the target row's raw
// fields, and re-run the whole pipeline. Every row's derived columns may
// move, not just the target's.
func Apply(base domain.Snapshot, pipe engine.Pipeline, sc Scenario) (Result, error) {
	idx := -1
	for i := range base.Assets {
		if strings.EqualFold(base.Assets[i].Symbol, sc.Symbol) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Result{}, fmt.Errorf("%w: %s", dataset.ErrSymbolNotFound, sc.Symbol)
	}

	sim := base.Clone()
	a := &sim.Assets[idx]

	a.TotalVolume = math.Max(0, a.TotalVolume*sc.VolumeMult)
	a.PriceChangePct24h *= sc.VolatilityMult
	a.PriceChangePct7d *= sc.VolatilityMult

	util := a.SupplyUtilization
	if math.IsNaN(util) {
		util = 0
	}
	a.SupplyUtilization = clampUnit(util + sc.UtilizationShift)

	return Result{Snapshot: pipe.Run(sim), Index: idx}, nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
