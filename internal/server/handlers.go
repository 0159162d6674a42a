package server

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/dataset"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/scenario"
)

// assetSummary is the list-view projection of a row. JSON has no NaN, so
// missing values serialize as null pointers.
type assetSummary struct {
	Symbol           string   `json:"symbol"`
	Name             string   `json:"name"`
	MarketCapRank    *float64 `json:"market_cap_rank"`
	CurrentPrice     *float64 `json:"current_price"`
	EquilibriumShift *float64 `json:"equilibrium_shift"`
	TensionScore     *float64 `json:"tension_score"`
}

// assetDetail is the full force and equilibrium decomposition of one row.
type assetDetail struct {
	assetSummary

	MarketCap         *float64 `json:"market_cap"`
	TotalVolume       *float64 `json:"total_volume"`
	SupplyUtilization *float64 `json:"supply_utilization"`
	LiquidityRatio    *float64 `json:"liquidity_ratio"`
	Volatility24h     *float64 `json:"volatility_24h"`
	Volatility7d      *float64 `json:"volatility_7d"`
	SpeculationIndex  *float64 `json:"speculation_index"`

	ForceDemand      *float64 `json:"force_demand"`
	ForceSupply      *float64 `json:"force_supply"`
	ForceVolatility  *float64 `json:"force_volatility"`
	ForceLiquidity   *float64 `json:"force_liquidity"`
	ForceSpeculation *float64 `json:"force_speculation"`

	EquilibriumCenter *float64 `json:"equilibrium_center"`
	EquilibriumLower  *float64 `json:"equilibrium_lower"`
	EquilibriumUpper  *float64 `json:"equilibrium_upper"`
}

type scenarioResponse struct {
	Base   assetDetail `json:"base"`
	Result assetDetail `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func summarize(a *domain.Asset) assetSummary {
	return assetSummary{
		Symbol:           a.Symbol,
		Name:             a.Name,
		MarketCapRank:    nullable(a.MarketCapRank),
		CurrentPrice:     nullable(a.CurrentPrice),
		EquilibriumShift: nullable(a.EquilibriumShift),
		TensionScore:     nullable(a.TensionScore),
	}
}

func detail(a *domain.Asset) assetDetail {
	return assetDetail{
		assetSummary:      summarize(a),
		MarketCap:         nullable(a.MarketCap),
		TotalVolume:       nullable(a.TotalVolume),
		SupplyUtilization: nullable(a.SupplyUtilization),
		LiquidityRatio:    nullable(a.LiquidityRatio),
		Volatility24h:     nullable(a.Volatility24h),
		Volatility7d:      nullable(a.Volatility7d),
		SpeculationIndex:  nullable(a.SpeculationIndex),
		ForceDemand:       nullable(a.ForceDemand),
		ForceSupply:       nullable(a.ForceSupply),
		ForceVolatility:   nullable(a.ForceVolatility),
		ForceLiquidity:    nullable(a.ForceLiquidity),
		ForceSpeculation:  nullable(a.ForceSpeculation),
		EquilibriumCenter: nullable(a.EquilibriumCenter),
		EquilibriumLower:  nullable(a.EquilibriumLower),
		EquilibriumUpper:  nullable(a.EquilibriumUpper),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"snapshot_id": s.snapshot.ID,
		"assets":      s.snapshot.Len(),
		"loaded_at":   s.snapshot.LoadedAt,
		"uptime":      time.Since(s.started).String(),
	})
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	out := make([]assetSummary, 0, s.snapshot.Len())
	for i := range s.snapshot.Assets {
		out = append(out, summarize(&s.snapshot.Assets[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	a, err := dataset.BySymbol(s.snapshot, symbol)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, detail(&a))
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	var sc scenario.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid scenario body: "+err.Error())
		return
	}
	if sc.Symbol == "" {
		writeError(w, http.StatusBadRequest, "scenario symbol is required")
		return
	}
	if sc.VolumeMult == 0 {
		sc.VolumeMult = 1
	}
	if sc.VolatilityMult == 0 {
		sc.VolatilityMult = 1
	}

	base, err := dataset.BySymbol(s.snapshot, sc.Symbol)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	start := time.Now()
	res, err := scenario.Apply(s.snapshot, s.pipe, sc)
	if err != nil {
		if errors.Is(err, dataset.ErrSymbolNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	s.metrics.ScenarioRuns.Inc()

	target := res.Target()
	writeJSON(w, http.StatusOK, scenarioResponse{
		Base:   detail(&base),
		Result: detail(&target),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "no such endpoint")
}
