package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"imoveis-scraper/cache"
	"imoveis-scraper/config"
	"imoveis-scraper/loader"
	"imoveis-scraper/models"
	"imoveis-scraper/pipeline"
	"imoveis-scraper/scraper"
	"imoveis-scraper/storage"
)

var (
	enrichInput     string
	enrichOutputDir string
	enrichSite      string
	enrichLimit     int
	enrichHeadless  bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Run the fetch-and-extract pipeline over the property list",
	RunE:  runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)
	enrichCmd.Flags().StringVar(&enrichInput, "input", "", "property list CSV (default: INPUT_CSV)")
	enrichCmd.Flags().StringVar(&enrichOutputDir, "output-dir", "", "directory for snapshots and exports (default: OUTPUT_DIR)")
	enrichCmd.Flags().StringVar(&enrichSite, "site", "", "site profile id (default: first enabled)")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "process only the first N records (0 = all)")
	enrichCmd.Flags().BoolVar(&enrichHeadless, "headless", true, "run the browser headless")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	log := zap.L()

	input := cfg.InputCSV
	if enrichInput != "" {
		input = enrichInput
	}
	outputDir := cfg.OutputDir
	if enrichOutputDir != "" {
		outputDir = enrichOutputDir
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = enrichHeadless
	}

	sites, err := config.LoadSites(cfg.SitesPath)
	if err != nil {
		return err
	}
	site, err := sites.Pick(enrichSite)
	if err != nil {
		return err
	}
	log.Info("enrich: site profile selected",
		zap.String("site", site.ID),
		zap.String("extraction", site.Extraction),
	)

	records, err := loader.LoadCSV(input, loader.Options{Separator: ';'}, log)
	if err != nil {
		return err
	}
	if enrichLimit > 0 && len(records) > enrichLimit {
		log.Info("enrich: limiting run", zap.Int("limit", enrichLimit))
		records = records[:enrichLimit]
	}
	if len(records) == 0 {
		return eris.Errorf("enrich: no records in %q", input)
	}

	pageCache, err := cache.New(outputDir, log)
	if err != nil {
		return err
	}

	browser, err := scraper.New(cfg, log)
	if err != nil {
		return err
	}
	defer browser.Close()

	pipe := pipeline.New(site, browser, pageCache,
		time.Duration(cfg.FetchTimeoutSecs)*time.Second, log)
	summary := pipe.Run(cmd.Context(), records)

	outPath, err := storage.Export(records,
		filepath.Join(outputDir, "imoveis_enriched.xlsx"),
		filepath.Join(outputDir, "imoveis_enriched.csv"),
		log)
	if err != nil {
		return err
	}

	if cfg.StoreEnabled {
		saveToStore(records, log)
	}

	fmt.Printf("\n--- Processing complete ---\n")
	fmt.Printf("Records: %d (success %d, failed %d, errors %d)\n",
		summary.Total, summary.Success, summary.Failed, summary.Errors)
	fmt.Printf("Output:  %s\n", outPath)
	return nil
}

// saveToStore mirrors the export into PostgreSQL. The spreadsheet is
// already on disk, so store trouble is reported but never fails the run.
func saveToStore(records []*models.Record, log *zap.Logger) {
	store, err := storage.NewPostgresStore(cfg.DSN())
	if err != nil {
		log.Error("enrich: postgres store unavailable", zap.Error(err))
		return
	}
	defer store.Close()

	if err := store.Save(records); err != nil {
		log.Error("enrich: postgres save failed", zap.Error(err))
		return
	}
	log.Info("enrich: records stored", zap.Int("records", len(records)))
}
