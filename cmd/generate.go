package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eduforge/eduforge/internal/config"
	"github.com/eduforge/eduforge/internal/runner"
	"github.com/eduforge/eduforge/internal/store"
)

var (
	genReset  bool
	genSeed   int64
	genPolicy string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the dataset and load it into the database",
	Long: `
Generate the full synthetic dataset and load it into the configured
database. Stages run in dependency order and each batch commits in its
own transaction, so an aborted run leaves earlier stages and earlier
batches in place.

Use --reset to truncate all tables first and --seed to override the
configured random seed for a different (but still reproducible) dataset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = genSeed
		}
		if genPolicy != "" {
			cfg.PolicyPath = genPolicy
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		policy, err := config.LoadPolicy(cfg.PolicyPath)
		if err != nil {
			return fmt.Errorf("failed to load policy: %w", err)
		}

		conn, err := store.Open(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer conn.Close()

		r, err := runner.New(cfg, policy, conn)
		if err != nil {
			return err
		}

		report, err := r.Run(context.Background(), genReset)
		report.PrintSummary()
		return err
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVar(&genReset, "reset", false, "Truncate all tables before generating")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Override the configured random seed")
	generateCmd.Flags().StringVar(&genPolicy, "policy", "", "Path to a YAML policy file overriding distributions")
}
