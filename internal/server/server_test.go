package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/config"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/engine"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	pipe := engine.NewPipeline()
	raw := domain.NewSnapshot([]domain.Asset{
		{Symbol: "btc", Name: "Bitcoin", CurrentPrice: 65000, MarketCap: 1.28e12, TotalVolume: 3.5e10, CirculatingSupply: 1.97e7, MaxSupply: 2.1e7, PriceChangePct24h: 1.2, PriceChangePct7d: -3.4, SupplyUtilization: math.NaN()},
		{Symbol: "eth", Name: "Ethereum", CurrentPrice: 3500, MarketCap: 4.2e11, TotalVolume: 1.8e10, CirculatingSupply: 1.2e8, MaxSupply: math.NaN(), PriceChangePct24h: 2.0, PriceChangePct7d: 5.5, SupplyUtilization: math.NaN()},
	})
	cfg := config.Default().Server
	return New(cfg, pipe.Run(raw), pipe)
}

func doRequest(t *testing.T, s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(2), body["assets"])
}

func TestListAssets(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/v1/assets", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "btc", body[0]["symbol"])
	assert.NotNil(t, body[0]["equilibrium_shift"])
}

func TestGetAsset(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/v1/assets/ETH", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "eth", body["symbol"])
	// ETH has no max supply: derived utilization is missing → null.
	assert.Nil(t, body["supply_utilization"])
	assert.NotNil(t, body["force_demand"])
}

func TestGetAsset_UnknownSymbol(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/v1/assets/DOGE", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "DOGE")
}

func TestScenario(t *testing.T) {
	body := []byte(`{"symbol":"btc","volume_mult":0.5,"volatility_mult":1,"utilization_shift":0}`)
	rec := doRequest(t, testServer(t), http.MethodPost, "/v1/scenario", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Base   map[string]any `json:"base"`
		Result map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "btc", resp.Result["symbol"])
	assert.NotEqual(t, resp.Base["force_demand"], resp.Result["force_demand"])
}

func TestScenario_BadBody(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodPost, "/v1/scenario", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, testServer(t), http.MethodPost, "/v1/scenario", []byte(`{"volume_mult":2}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScenario_UnknownSymbol(t *testing.T) {
	body := []byte(`{"symbol":"doge","volume_mult":2}`)
	rec := doRequest(t, testServer(t), http.MethodPost, "/v1/scenario", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotFoundRoute(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	pipe := engine.NewPipeline()
	cfg := config.Default().Server
	cfg.RateLimitPerSecond = 1
	cfg.RateLimitBurst = 1
	s := New(cfg, domain.NewSnapshot(nil), pipe)

	first := doRequest(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t)
	_ = doRequest(t, s, http.MethodGet, "/health", nil)

	rec := doRequest(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "equilibrium_http_requests_total")
}
