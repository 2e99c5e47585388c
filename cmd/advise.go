package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"imoveis-scraper/advisor"
	"imoveis-scraper/loader"
	"imoveis-scraper/models"
	"imoveis-scraper/storage"
)

var (
	adviseInput     string
	adviseMaxPrice  float64
	adviseAmenities []string
	adviseLocation  string
	adviseTop       int
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Suggest the best properties from an enriched export",
	RunE:  runAdvise,
}

func init() {
	rootCmd.AddCommand(adviseCmd)
	adviseCmd.Flags().StringVar(&adviseInput, "input", "", "enriched export to read, .xlsx or .csv (default: the store when enabled, else OUTPUT_DIR exports)")
	adviseCmd.Flags().Float64Var(&adviseMaxPrice, "max-price", 0, "budget ceiling in BRL (0 = no ceiling)")
	adviseCmd.Flags().StringSliceVar(&adviseAmenities, "amenities", nil, "required amenities, e.g. piscina,garagem")
	adviseCmd.Flags().StringVar(&adviseLocation, "location", "", "preferred location substring of the address")
	adviseCmd.Flags().IntVar(&adviseTop, "top", 3, "number of suggestions")
}

func runAdvise(cmd *cobra.Command, args []string) error {
	log := zap.L()

	records, err := adviseRecords(log)
	if err != nil {
		return err
	}

	prefs := advisor.Preferences{
		MaxPrice:          adviseMaxPrice,
		RequiredAmenities: adviseAmenities,
		Location:          adviseLocation,
		TopN:              adviseTop,
	}

	adv := advisor.New(log)
	adv.Print(adv.SuggestBest(records, prefs))
	return nil
}

// adviseRecords loads the enriched set: an explicit --input file wins,
// then the store when enabled, then the freshest export in OUTPUT_DIR
// (xlsx first, the csv fallback the export itself may have produced).
func adviseRecords(log *zap.Logger) ([]*models.Record, error) {
	if adviseInput != "" {
		return loadExport(adviseInput, log)
	}

	if cfg.StoreEnabled {
		store, err := storage.NewPostgresStore(cfg.DSN())
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.FetchAll()
	}

	xlsxPath := filepath.Join(cfg.OutputDir, "imoveis_enriched.xlsx")
	if _, err := os.Stat(xlsxPath); err == nil {
		return loader.LoadXLSX(xlsxPath, log)
	}
	return loadExport(filepath.Join(cfg.OutputDir, "imoveis_enriched.csv"), log)
}

func loadExport(path string, log *zap.Logger) ([]*models.Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loader.LoadXLSX(path, log)
	}
	return loader.LoadCSV(path, loader.Options{Separator: ','}, log)
}
