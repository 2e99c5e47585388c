package storage

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"imoveis-scraper/models"
)

// Export writes the full record set to the primary spreadsheet, falling
// back to CSV when that write fails. It returns the path actually written.
// Both sinks failing is fatal for the run: no output was produced.
func Export(records []*models.Record, xlsxPath, csvPath string, log *zap.Logger) (string, error) {
	xw := &XLSXWriter{Path: xlsxPath}
	err := xw.Write(records)
	if err == nil {
		log.Info("storage: results saved",
			zap.String("path", xlsxPath),
			zap.Int("records", len(records)),
		)
		return xlsxPath, nil
	}
	log.Error("storage: spreadsheet export failed, falling back to csv", zap.Error(err))

	cw := &CSVWriter{Path: csvPath}
	if err := cw.Write(records); err != nil {
		return "", eris.Wrap(err, "storage: csv fallback")
	}
	log.Info("storage: results saved via csv fallback",
		zap.String("path", csvPath),
		zap.Int("records", len(records)),
	)
	return csvPath, nil
}
