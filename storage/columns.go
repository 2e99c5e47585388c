package storage

import (
	"fmt"
	"strconv"

	"imoveis-scraper/models"
)

// Columns returns the union of field names over all records, in first-seen
// order, so exports keep the input column layout with enrichment columns
// appended where they first appeared.
func Columns(records []*models.Record) []string {
	var cols []string
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, k := range rec.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	return cols
}

// CellValue formats one record field for tabular output. Absent fields
// render empty.
func CellValue(rec *models.Record, col string) string {
	v, ok := rec.Get(col)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
