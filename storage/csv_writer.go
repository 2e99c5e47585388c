package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"imoveis-scraper/models"
)

// CSVWriter is the fallback export. It writes UTF-8 with a byte order mark
// so spreadsheet tools open the Brazilian text correctly.
type CSVWriter struct {
	Path string
}

// Write saves all records as comma-separated rows under a header of the
// column union. Intermediate directories are created automatically.
func (w *CSVWriter) Write(records []*models.Record) error {
	if err := os.MkdirAll(filepath.Dir(w.Path), 0755); err != nil {
		return eris.Wrap(err, "csv: create output dir")
	}

	f, err := os.Create(w.Path)
	if err != nil {
		return eris.Wrapf(err, "csv: create file %q", w.Path)
	}
	defer f.Close()

	if _, err := f.WriteString("﻿"); err != nil {
		return eris.Wrap(err, "csv: write byte order mark")
	}

	cw := csv.NewWriter(f)
	cols := Columns(records)
	if err := cw.Write(cols); err != nil {
		return eris.Wrap(err, "csv: write header")
	}

	row := make([]string, len(cols))
	for _, rec := range records {
		for i, c := range cols {
			row[i] = CellValue(rec, c)
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "csv: write row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "csv: flush")
	}
	return nil
}
