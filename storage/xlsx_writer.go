package storage

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"imoveis-scraper/models"
)

// XLSXWriter exports the enriched record set as a spreadsheet, the primary
// output format. Intermediate directories are created automatically.
type XLSXWriter struct {
	Path string
}

// Write saves all records to one sheet: a header row of the column union,
// then one row per record. Numeric fields keep their number type.
func (w *XLSXWriter) Write(records []*models.Record) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("imoveis")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	cols := Columns(records)
	header := sheet.AddRow()
	for _, c := range cols {
		header.AddCell().SetString(c)
	}

	for _, rec := range records {
		row := sheet.AddRow()
		for _, c := range cols {
			cell := row.AddCell()
			if v, ok := rec.Get(c); ok {
				if f, isFloat := v.(float64); isFloat {
					cell.SetFloat(f)
					continue
				}
			}
			cell.SetString(CellValue(rec, c))
		}
	}

	if err := os.MkdirAll(filepath.Dir(w.Path), 0755); err != nil {
		return eris.Wrap(err, "xlsx: create output dir")
	}
	if err := file.Save(w.Path); err != nil {
		return eris.Wrapf(err, "xlsx: save %q", w.Path)
	}
	return nil
}
