// Package dataset loads the raw market snapshot from CSV, cleans it, runs
// the equilibrium pipeline, and materializes the processed table behind a
// delete-to-invalidate file plus an optional Redis layer.
package dataset

import "github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"

// Column names match the raw dataset's headers, so the processed table reads
// back with the same codec that parses the raw file.
const (
	colSymbol            = "symbol"
	colName              = "name"
	colMarketCapRank     = "market_cap_rank"
	colCurrentPrice      = "current_price"
	colMarketCap         = "market_cap"
	colTotalVolume       = "total_volume"
	colCirculatingSupply = "circulating_supply"
	colMaxSupply         = "max_supply"
	colPctChange24h      = "price_change_percentage_24h"
	colPctChange7d       = "price_change_percentage_7d"
	colSupplyUtilization = "supply_utilization"

	colLiquidityRatio   = "liquidity_ratio"
	colVolatility24h    = "volatility_24h"
	colVolatility7d     = "volatility_7d"
	colSpeculationIndex = "speculation_index"

	colForceDemand      = "force_demand"
	colForceSupply      = "force_supply"
	colForceVolatility  = "force_volatility"
	colForceLiquidity   = "force_liquidity"
	colForceSpeculation = "force_speculation"

	colEquilibriumShift  = "equilibrium_shift"
	colEquilibriumCenter = "equilibrium_center"
	colEquilibriumLower  = "equilibrium_lower"
	colEquilibriumUpper  = "equilibrium_upper"
	colTensionScore      = "tension_score"
)

type numericColumn struct {
	name string
	get  func(*domain.Asset) float64
	set  func(*domain.Asset, float64)
}

// numericColumns drives both parsing and serialization; raw columns first,
// derived columns after, so exported files read naturally left to right.
var numericColumns = []numericColumn{
	{colMarketCapRank, func(a *domain.Asset) float64 { return a.MarketCapRank }, func(a *domain.Asset, v float64) { a.MarketCapRank = v }},
	{colCurrentPrice, func(a *domain.Asset) float64 { return a.CurrentPrice }, func(a *domain.Asset, v float64) { a.CurrentPrice = v }},
	{colMarketCap, func(a *domain.Asset) float64 { return a.MarketCap }, func(a *domain.Asset, v float64) { a.MarketCap = v }},
	{colTotalVolume, func(a *domain.Asset) float64 { return a.TotalVolume }, func(a *domain.Asset, v float64) { a.TotalVolume = v }},
	{colCirculatingSupply, func(a *domain.Asset) float64 { return a.CirculatingSupply }, func(a *domain.Asset, v float64) { a.CirculatingSupply = v }},
	{colMaxSupply, func(a *domain.Asset) float64 { return a.MaxSupply }, func(a *domain.Asset, v float64) { a.MaxSupply = v }},
	{colPctChange24h, func(a *domain.Asset) float64 { return a.PriceChangePct24h }, func(a *domain.Asset, v float64) { a.PriceChangePct24h = v }},
	{colPctChange7d, func(a *domain.Asset) float64 { return a.PriceChangePct7d }, func(a *domain.Asset, v float64) { a.PriceChangePct7d = v }},
	{colSupplyUtilization, func(a *domain.Asset) float64 { return a.SupplyUtilization }, func(a *domain.Asset, v float64) { a.SupplyUtilization = v }},

	{colLiquidityRatio, func(a *domain.Asset) float64 { return a.LiquidityRatio }, func(a *domain.Asset, v float64) { a.LiquidityRatio = v }},
	{colVolatility24h, func(a *domain.Asset) float64 { return a.Volatility24h }, func(a *domain.Asset, v float64) { a.Volatility24h = v }},
	{colVolatility7d, func(a *domain.Asset) float64 { return a.Volatility7d }, func(a *domain.Asset, v float64) { a.Volatility7d = v }},
	{colSpeculationIndex, func(a *domain.Asset) float64 { return a.SpeculationIndex }, func(a *domain.Asset, v float64) { a.SpeculationIndex = v }},

	{colForceDemand, func(a *domain.Asset) float64 { return a.ForceDemand }, func(a *domain.Asset, v float64) { a.ForceDemand = v }},
	{colForceSupply, func(a *domain.Asset) float64 { return a.ForceSupply }, func(a *domain.Asset, v float64) { a.ForceSupply = v }},
	{colForceVolatility, func(a *domain.Asset) float64 { return a.ForceVolatility }, func(a *domain.Asset, v float64) { a.ForceVolatility = v }},
	{colForceLiquidity, func(a *domain.Asset) float64 { return a.ForceLiquidity }, func(a *domain.Asset, v float64) { a.ForceLiquidity = v }},
	{colForceSpeculation, func(a *domain.Asset) float64 { return a.ForceSpeculation }, func(a *domain.Asset, v float64) { a.ForceSpeculation = v }},

	{colEquilibriumShift, func(a *domain.Asset) float64 { return a.EquilibriumShift }, func(a *domain.Asset, v float64) { a.EquilibriumShift = v }},
	{colEquilibriumCenter, func(a *domain.Asset) float64 { return a.EquilibriumCenter }, func(a *domain.Asset, v float64) { a.EquilibriumCenter = v }},
	{colEquilibriumLower, func(a *domain.Asset) float64 { return a.EquilibriumLower }, func(a *domain.Asset, v float64) { a.EquilibriumLower = v }},
	{colEquilibriumUpper, func(a *domain.Asset) float64 { return a.EquilibriumUpper }, func(a *domain.Asset, v float64) { a.EquilibriumUpper = v }},
	{colTensionScore, func(a *domain.Asset) float64 { return a.TensionScore }, func(a *domain.Asset, v float64) { a.TensionScore = v }},
}

// Columns lists every column of the processed table in serialization order.
func Columns() []string {
	names := []string{colSymbol, colName}
	for _, c := range numericColumns {
		names = append(names, c.name)
	}
	return names
}
