package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/dataset"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/engine"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full equilibrium snapshot to CSV",
		RunE:  runExport,
	}
	cmd.Flags().String("out", "equilibrium_snapshot.csv", "Output CSV path (relative paths land in the configured export dir)")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snap, err := newLoader(cfg, engine.NewPipeline()).LoadProcessed(cmd.Context())
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if !filepath.IsAbs(out) {
		out = filepath.Join(cfg.Data.ExportDir, out)
	}

	if err := dataset.WriteSnapshotFile(snap, out); err != nil {
		return err
	}
	fmt.Printf("Exported equilibrium snapshot to %s\n", out)
	return nil
}
