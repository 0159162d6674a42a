// Package domain defines the snapshot data model shared by the engine and
// its collaborators. Numeric fields use float64 with NaN as the missing
// marker, matching the raw dataset's sparse columns.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Asset is one row of a market snapshot: identity fields, raw market
// statistics, and the derived columns populated by the pipeline. Derived
// fields are zero-valued until the pipeline runs.
type Asset struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	MarketCapRank float64 `json:"market_cap_rank"`

	CurrentPrice      float64 `json:"current_price"`
	MarketCap         float64 `json:"market_cap"`
	TotalVolume       float64 `json:"total_volume"`
	CirculatingSupply float64 `json:"circulating_supply"`
	MaxSupply         float64 `json:"max_supply"`
	PriceChangePct24h float64 `json:"price_change_percentage_24h"`
	PriceChangePct7d  float64 `json:"price_change_percentage_7d"`
	SupplyUtilization float64 `json:"supply_utilization"`

	LiquidityRatio   float64 `json:"liquidity_ratio"`
	Volatility24h    float64 `json:"volatility_24h"`
	Volatility7d     float64 `json:"volatility_7d"`
	SpeculationIndex float64 `json:"speculation_index"`

	ForceDemand      float64 `json:"force_demand"`
	ForceSupply      float64 `json:"force_supply"`
	ForceVolatility  float64 `json:"force_volatility"`
	ForceLiquidity   float64 `json:"force_liquidity"`
	ForceSpeculation float64 `json:"force_speculation"`

	EquilibriumShift  float64 `json:"equilibrium_shift"`
	EquilibriumCenter float64 `json:"equilibrium_center"`
	EquilibriumLower  float64 `json:"equilibrium_lower"`
	EquilibriumUpper  float64 `json:"equilibrium_upper"`
	TensionScore      float64 `json:"tension_score"`
}

// Snapshot is the full cross-section of assets at one point in time. Every
// derived column depends on the whole table, so the snapshot is the unit of
// computation: transforms take and return whole snapshots, preserving row
// identity and order.
type Snapshot struct {
	ID       uuid.UUID `json:"id"`
	LoadedAt time.Time `json:"loaded_at"`
	Assets   []Asset   `json:"assets"`
}

// NewSnapshot wraps a row slice with a fresh identity.
func NewSnapshot(assets []Asset) Snapshot {
	return Snapshot{
		ID:       uuid.New(),
		LoadedAt: time.Now().UTC(),
		Assets:   assets,
	}
}

// Len returns the row count.
func (s Snapshot) Len() int { return len(s.Assets) }

// Clone deep-copies the snapshot so scenarios and pipeline passes never
// mutate a caller's table.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Assets = make([]Asset, len(s.Assets))
	copy(out.Assets, s.Assets)
	return out
}

// Column extracts one numeric column in row order.
func (s Snapshot) Column(get func(*Asset) float64) []float64 {
	col := make([]float64, len(s.Assets))
	for i := range s.Assets {
		col[i] = get(&s.Assets[i])
	}
	return col
}
