package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/dataset"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/engine"
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/store"
)

func newPrepareDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare-data",
		Short: "Clean the raw dataset, derive features, and compute equilibrium",
		Long:  "Loads the raw snapshot, drops rows missing required fields, runs the full pipeline, and materializes the processed table.",
		RunE:  runPrepareData,
	}
	cmd.Flags().Bool("refresh", false, "Delete the processed materialization before loading")
	cmd.Flags().Bool("save", false, "Persist the processed snapshot to Postgres (requires configured DSN)")
	return cmd
}

func runPrepareData(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipe := engine.NewPipeline()
	loader := newLoader(cfg, pipe)

	if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
		if err := loader.Invalidate(); err != nil {
			return err
		}
	}

	snap, err := loader.LoadProcessed(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Prepared processed dataset with %d rows.\n", snap.Len())
	fmt.Println("Columns available:")
	fmt.Println(strings.Join(dataset.Columns(), ", "))

	if save, _ := cmd.Flags().GetBool("save"); save {
		if cfg.Postgres.DSN == "" {
			return fmt.Errorf("--save requires a configured postgres DSN")
		}
		repo, err := store.NewPostgresStore(cfg.Postgres.DSN, cfg.Postgres.Timeout())
		if err != nil {
			return err
		}
		if err := repo.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
		if err := repo.SaveSnapshot(cmd.Context(), snap); err != nil {
			return err
		}
		log.Info().Str("snapshot_id", snap.ID.String()).Int("rows", snap.Len()).Msg("snapshot persisted")
	}
	return nil
}
