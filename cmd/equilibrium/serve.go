package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/engine"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the processed snapshot over a read-only JSON API",
		Long:  "Loads the processed snapshot once and serves asset listings, per-asset detail, scenario recomputation, and Prometheus metrics.",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipe := engine.NewPipeline()
	snap, err := newLoader(cfg, pipe).LoadProcessed(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server, snap, pipe).Start(ctx)
}
