package storage

import "imoveis-scraper/models"

// ResultWriter is the interface any tabular export backend must satisfy.
type ResultWriter interface {
	Write(records []*models.Record) error
}

// RecordStore persists enriched records and serves them back to the
// results API and the advisor.
type RecordStore interface {
	Save(records []*models.Record) error
	Fetch(id string) (*models.Record, error)
	FetchAll() ([]*models.Record, error)
	Close() error
}
