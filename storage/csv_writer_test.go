package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"imoveis-scraper/models"
)

func exportRecords() []*models.Record {
	first := models.NewRecord()
	first.Set(models.KeyID, "1")
	first.Set("preco", 150000.5)

	second := models.NewRecord()
	second.Set(models.KeyID, "2")
	second.Set("preco", 98500.0)
	second.Set("cep", "80000-000")

	return []*models.Record{first, second}
}

func TestCSVWriterWritesBOMHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "imoveis.csv")
	w := &CSVWriter{Path: path}

	if err := w.Write(exportRecords()); err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "﻿") {
		t.Error("output does not start with a byte order mark")
	}

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(content, "﻿"))).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("output has %d rows; want header plus 2", len(rows))
	}

	wantHeader := []string{models.KeyID, "preco", "cep"}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q; want %q", i, rows[0][i], h)
		}
	}

	tests := []struct {
		row  int
		want []string
	}{
		{1, []string{"1", "150000.5", ""}},
		{2, []string{"2", "98500", "80000-000"}},
	}
	for _, tt := range tests {
		for i, want := range tt.want {
			if rows[tt.row][i] != want {
				t.Errorf("row %d col %d = %q; want %q", tt.row, i, rows[tt.row][i], want)
			}
		}
	}
}
