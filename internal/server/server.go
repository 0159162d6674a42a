// Package server exposes the processed snapshot over a read-only JSON API
// for external dashboards: listing, per-asset detail, what-if scenarios, and
// Prometheus metrics. The snapshot is loaded once and never mutated;
// scenarios recompute over their own clone.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/config"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/engine"
)

// Server serves the equilibrium API.
type Server struct {
	cfg      config.ServerConfig
	router   *mux.Router
	server   *http.Server
	snapshot domain.Snapshot
	pipe     engine.Pipeline
	metrics  *Metrics
	limiter  *rate.Limiter
	started  time.Time
}

// New wires routes, middleware and metrics around a processed snapshot.
func New(cfg config.ServerConfig, snap domain.Snapshot, pipe engine.Pipeline) *Server {
	s := &Server{
		cfg:      cfg,
		router:   mux.NewRouter(),
		snapshot: snap,
		pipe:     pipe,
		metrics:  NewMetrics(),
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
		started:  time.Now(),
	}
	s.routes()

	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  cfg.IdleTimeout(),
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.rateLimitMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := s.router.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/assets", s.handleListAssets).Methods(http.MethodGet)
	api.HandleFunc("/assets/{symbol}", s.handleGetAsset).Methods(http.MethodGet)
	api.HandleFunc("/scenario", s.handleScenario).Methods(http.MethodPost)

	s.router.NotFoundHandler = s.loggingMiddleware(http.HandlerFunc(s.handleNotFound))
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start blocks serving until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr()).Msg("equilibrium API listening")
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down equilibrium API")
		return s.server.Shutdown(shutdownCtx)
	}
}
