// Package main provides the CLI entry point for sheetimport-go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetimport-go/internal/config"
	"github.com/ukaji3/sheetimport-go/internal/logging"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetimport",
		Short: "Import spreadsheet rows as database records",
		Long: `sheetimport-go reads one worksheet of an XLS, XLSX, CSV or ODS file and
turns every row into a record keyed by the header row.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newRecordsCmd(), newWorksheetsCmd(), newLoadCmd(), newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err = logging.NewLogger(level, cfg.Log.Dir)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	return nil
}
