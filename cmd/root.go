// Package cmd implements the command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"imoveis-scraper/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "imoveis-scraper",
	Short: "Enrich bank auction property lists with scraped detail data",
	Long: `imoveis-scraper turns a bank property list into an enriched
spreadsheet: every listing page is rendered in a headless browser, cached
on disk, and mined for detail fields such as appraisal value, auction
dates, address and postal code. Failures are isolated per record and stay
visible in the output, and interrupted runs resume from the page cache.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if err := config.InitLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
