package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/config"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/dataset"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/engine"
)

const (
	appName = "equilibrium"
	version = "v1.0.0"
)

var cfgPath string

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     appName,
		Version: version,
		Short:   "Crypto price equilibrium simulator",
		Long: `Crypto Price Equilibrium Simulator

Derives a deterministic equilibrium assessment for every asset in a market
snapshot: five bounded force scores, a price-relative equilibrium shift, a
center/low/high band, and a tension score. The model is rank-based and
cross-sectional — every output is relative to the rest of the snapshot.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config")

	rootCmd.AddCommand(
		newPrepareDataCmd(),
		newShowCmd(),
		newExportCmd(),
		newScenarioCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	return config.Load(cfgPath)
}

// newLoader assembles the dataset loader, attaching the Redis cache layer
// only when an address is configured.
func newLoader(cfg config.Config, pipe engine.Pipeline) *dataset.Loader {
	var cache dataset.SnapshotCache
	if cfg.Redis.Addr != "" {
		cache = dataset.NewRedisCache(cfg.Redis.Addr, cfg.Redis.DB)
	}
	return dataset.NewLoader(cfg.Data, cfg.Redis, pipe, cache)
}
