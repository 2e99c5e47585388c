// Package loader ingests property lists. The bank's CSV export ships
// semicolon-separated with mojibake-damaged headers and Brazilian number
// formatting, so loading repairs both before the pipeline sees a record.
package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"imoveis-scraper/models"
	"imoveis-scraper/utils"
)

// Options control list parsing. Separator defaults to the bank export's
// semicolon; reading back our own output uses a comma.
type Options struct {
	Separator rune
}

// LoadCSV reads a property list and returns one record per data row, with
// headers canonicalised and currency columns coerced to numbers. Column
// order is preserved.
func LoadCSV(path string, opts Options, log *zap.Logger) ([]*models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: open %q", path)
	}
	defer f.Close()

	records, err := readCSV(f, opts, log)
	if err != nil {
		return nil, err
	}

	log.Info("loader: property list loaded",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return records, nil
}

func readCSV(r io.Reader, opts Options, log *zap.Logger) ([]*models.Record, error) {
	sep := opts.Separator
	if sep == 0 {
		sep = ';'
	}

	cr := csv.NewReader(r)
	cr.Comma = sep
	// The upstream export occasionally ships ragged rows.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, eris.Wrap(err, "loader: read header row")
	}
	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "﻿")
		}
		columns[i] = CanonicalColumn(h)
	}

	var records []*models.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("loader: skipping unreadable row", zap.Error(err))
			continue
		}
		records = append(records, buildRecord(columns, row))
	}
	return records, nil
}

func buildRecord(columns, row []string) *models.Record {
	rec := models.NewRecord()
	for i, col := range columns {
		if i >= len(row) {
			break
		}
		val := strings.TrimSpace(row[i])
		if isCurrencyColumn(col) {
			rec.Set(col, CleanCurrency(val))
			continue
		}
		rec.Set(col, val)
	}
	return rec
}

// CanonicalColumn maps a raw header to its canonical snake_case name,
// tolerating headers whose accented characters were lost in transit
// ("Endereo", "Preo", "N do imvel").
func CanonicalColumn(col string) string {
	clean := strings.TrimSpace(utils.StripAccents(col))
	switch {
	case (strings.Contains(clean, "imovel") || strings.Contains(clean, "imvel")) && strings.Contains(clean, "N"):
		return models.KeyID
	case strings.Contains(clean, "Endereco") || strings.Contains(clean, "Endereo"):
		return "endereco"
	case strings.Contains(clean, "Preco") || strings.Contains(clean, "Preo"):
		return "preco"
	case strings.Contains(clean, "avaliacao") || strings.Contains(clean, "avaliao"):
		return "valor_avaliacao"
	case strings.Contains(clean, "Descricao") || strings.Contains(clean, "Descrio"):
		return "descricao"
	case strings.Contains(clean, "Modalidade"):
		return "modalidade"
	case strings.Contains(clean, "Link"):
		return models.KeyLink
	default:
		return strings.ReplaceAll(strings.ToLower(clean), " ", "_")
	}
}

// CleanCurrency converts Brazilian currency notation ("2.090.745,83") to a
// float. Values that are already plain decimals, as our own exports write
// them, pass through unchanged. Anything unparsable becomes 0.
func CleanCurrency(v string) float64 {
	clean := strings.TrimSpace(v)
	if f, err := strconv.ParseFloat(clean, 64); err == nil {
		return f
	}
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.Replace(clean, ",", ".", 1)
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return f
}

// isCurrencyColumn reports whether a canonical column carries money values
// in the source list.
func isCurrencyColumn(col string) bool {
	return strings.Contains(col, "preco") ||
		strings.Contains(col, "valor") ||
		strings.Contains(col, "desconto")
}
