package loader

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"imoveis-scraper/models"
)

// LoadXLSX reads an enriched spreadsheet back into records, applying the
// same header canonicalisation and currency coercion as the CSV path. The
// first sheet's first row is the header.
func LoadXLSX(path string, log *zap.Logger) ([]*models.Record, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: open spreadsheet %q", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("loader: spreadsheet %q has no sheets", path)
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("loader: spreadsheet %q has no header row", path)
	}

	columns := make([]string, len(sheet.Rows[0].Cells))
	for i, cell := range sheet.Rows[0].Cells {
		columns[i] = CanonicalColumn(cell.String())
	}

	var records []*models.Record
	for _, row := range sheet.Rows[1:] {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		records = append(records, buildRecord(columns, cells))
	}

	log.Info("loader: spreadsheet loaded",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return records, nil
}
