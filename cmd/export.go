package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eduforge/eduforge/internal/config"
	"github.com/eduforge/eduforge/internal/export"
	"github.com/eduforge/eduforge/internal/store"
)

var exportPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all tables to CSV files",
	Long: `
Export the current contents of every table to CSV files, one file per
table, under a timestamped directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if exportPath == "" {
			exportPath = cfg.Export.Path
		}

		conn, err := store.Open(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer conn.Close()

		dir, err := export.DumpTables(context.Background(), conn, exportPath)
		if err != nil {
			return err
		}

		color.Green("✅ Exported all tables to %s", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportPath, "path", "", "Export directory (default from config)")
}
