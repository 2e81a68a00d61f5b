package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eduforge/eduforge/internal/config"
	"github.com/eduforge/eduforge/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Truncate all generated tables",
	Long: `
Truncate every generated table in reverse dependency order so foreign
key constraints are never violated.

⚠️  WARNING: This permanently deletes all rows in the generated tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		conn, err := store.Open(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer conn.Close()

		if err := store.Reset(context.Background(), conn, cfg.Database.Provider); err != nil {
			return err
		}

		color.Green("✅ All tables cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
