package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/dataset"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/engine"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show equilibrium details for a single asset",
		Long:  "Prints one asset's raw state, force decomposition, and equilibrium outputs, selected by symbol or row index.",
		RunE:  runShow,
	}
	cmd.Flags().Int("index", -1, "Row index in the processed dataset")
	cmd.Flags().String("symbol", "", "Asset symbol (e.g. BTC, ETH); overrides --index")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snap, err := newLoader(cfg, engine.NewPipeline()).LoadProcessed(cmd.Context())
	if err != nil {
		return err
	}

	symbol, _ := cmd.Flags().GetString("symbol")
	index, _ := cmd.Flags().GetInt("index")

	var a domain.Asset
	switch {
	case symbol != "":
		a, err = dataset.BySymbol(snap, symbol)
	case index >= 0 || cmd.Flags().Changed("index"):
		a, err = dataset.ByIndex(snap, index)
	default:
		return fmt.Errorf("either --index or --symbol must be provided")
	}
	if err != nil {
		return err
	}

	printAsset(a)
	return nil
}

func printAsset(a domain.Asset) {
	fmt.Println("Asset:")
	fmt.Printf("- symbol: %s\n", a.Symbol)
	fmt.Printf("- name: %s\n", a.Name)
	fmt.Printf("- market_cap_rank: %g\n", a.MarketCapRank)

	fmt.Println("\nCurrent state:")
	fmt.Printf("- current_price: %g\n", a.CurrentPrice)
	fmt.Printf("- market_cap: %g\n", a.MarketCap)
	fmt.Printf("- total_volume: %g\n", a.TotalVolume)

	fmt.Println("\nForces:")
	fmt.Printf("- force_demand: %+.3f\n", a.ForceDemand)
	fmt.Printf("- force_supply: %+.3f\n", a.ForceSupply)
	fmt.Printf("- force_volatility: %+.3f\n", a.ForceVolatility)
	fmt.Printf("- force_liquidity: %+.3f\n", a.ForceLiquidity)
	fmt.Printf("- force_speculation: %+.3f\n", a.ForceSpeculation)

	fmt.Println("\nEquilibrium:")
	fmt.Printf("- equilibrium_shift: %.6f\n", a.EquilibriumShift)
	fmt.Printf("- equilibrium_center: %.6f\n", a.EquilibriumCenter)
	fmt.Printf("- equilibrium_lower: %.6f\n", a.EquilibriumLower)
	fmt.Printf("- equilibrium_upper: %.6f\n", a.EquilibriumUpper)
	fmt.Printf("- tension_score: %.6f\n", a.TensionScore)
}
