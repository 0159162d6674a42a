package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/dataset"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/engine"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/scenario"
)

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Recompute equilibrium under a what-if change to one asset",
		Long: `Applies a hypothetical change to one asset's raw inputs and re-runs the
pipeline over the whole table. Ranking is cross-sectional, so the outputs of
every asset may move, not just the one perturbed.`,
		RunE: runScenario,
	}
	cmd.Flags().String("symbol", "", "Asset symbol to perturb (required)")
	cmd.Flags().Float64("volume-mult", 1.0, "Multiplier applied to total_volume")
	cmd.Flags().Float64("volatility-mult", 1.0, "Multiplier applied to the 24h and 7d percentage changes")
	cmd.Flags().Float64("util-shift", 0.0, "Absolute shift applied to supply utilization, result clamped into [0,1]")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipe := engine.NewPipeline()
	snap, err := newLoader(cfg, pipe).LoadProcessed(cmd.Context())
	if err != nil {
		return err
	}

	symbol, _ := cmd.Flags().GetString("symbol")
	sc := scenario.Neutral(symbol)
	sc.VolumeMult, _ = cmd.Flags().GetFloat64("volume-mult")
	sc.VolatilityMult, _ = cmd.Flags().GetFloat64("volatility-mult")
	sc.UtilizationShift, _ = cmd.Flags().GetFloat64("util-shift")

	base, err := dataset.BySymbol(snap, symbol)
	if err != nil {
		return err
	}
	res, err := scenario.Apply(snap, pipe, sc)
	if err != nil {
		return err
	}

	fmt.Printf("Scenario for %s (volume ×%g, volatility ×%g, utilization %+g)\n\n",
		base.Symbol, sc.VolumeMult, sc.VolatilityMult, sc.UtilizationShift)

	fmt.Println("Before:")
	printAsset(base)
	fmt.Println("\nAfter:")
	printAsset(res.Target())
	return nil
}
