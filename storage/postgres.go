package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rotisserie/eris"

	"imoveis-scraper/models"
)

// imovelColumns is the fixed column set persisted per record, in insert
// and scan order.
var imovelColumns = []string{
	"id_imovel",
	"link",
	"preco",
	"modalidade",
	"scraping_status",
	"saved_html_path",
	"error_message",
	"tipo_imovel",
	"quartos",
	"area_total",
	"area_privativa",
	"valor_avaliacao",
	"valor_minimo_venda",
	"data_1o_leilao",
	"data_2o_leilao",
	"endereco",
	"cep",
	"descricao",
	"formas_pagamento",
	"raw_dados_imovel",
}

// PostgresStore persists enriched records to PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection, waits for the database to come up,
// runs schema migrations and returns a ready-to-use store.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: open")
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: ping failed after retries")
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		return nil, eris.Wrap(err, "postgres: migrate")
	}

	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS imoveis (
			id                 SERIAL PRIMARY KEY,
			id_imovel          TEXT UNIQUE NOT NULL,
			link               TEXT NOT NULL DEFAULT '',
			preco              NUMERIC(14,2) NOT NULL DEFAULT 0,
			modalidade         TEXT NOT NULL DEFAULT '',
			scraping_status    VARCHAR(20) NOT NULL DEFAULT '',
			saved_html_path    TEXT NOT NULL DEFAULT '',
			error_message      TEXT NOT NULL DEFAULT '',
			tipo_imovel        TEXT NOT NULL DEFAULT '',
			quartos            TEXT NOT NULL DEFAULT '',
			area_total         TEXT NOT NULL DEFAULT '',
			area_privativa     TEXT NOT NULL DEFAULT '',
			valor_avaliacao    TEXT NOT NULL DEFAULT '',
			valor_minimo_venda TEXT NOT NULL DEFAULT '',
			data_1o_leilao     TEXT NOT NULL DEFAULT '',
			data_2o_leilao     TEXT NOT NULL DEFAULT '',
			endereco           TEXT NOT NULL DEFAULT '',
			cep                TEXT NOT NULL DEFAULT '',
			descricao          TEXT NOT NULL DEFAULT '',
			formas_pagamento   TEXT NOT NULL DEFAULT '',
			raw_dados_imovel   TEXT NOT NULL DEFAULT '',
			created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_imoveis_status ON imoveis(scraping_status);
		CREATE INDEX IF NOT EXISTS idx_imoveis_cep    ON imoveis(cep);
	`)
	return err
}

// Clear deletes all stored records.
func (ps *PostgresStore) Clear() error {
	if _, err := ps.db.Exec("DELETE FROM imoveis"); err != nil {
		return eris.Wrap(err, "postgres: clear")
	}
	return nil
}

// Save replaces the stored set with the given records. Records without an
// identifier cannot be keyed and are skipped.
func (ps *PostgresStore) Save(records []*models.Record) error {
	keyed := make([]*models.Record, 0, len(records))
	for _, rec := range records {
		if rec.ID() != "" {
			keyed = append(keyed, rec)
		}
	}
	if len(keyed) == 0 {
		return nil
	}

	if err := ps.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(keyed); i += batchSize {
		end := i + batchSize
		if end > len(keyed) {
			end = len(keyed)
		}
		if err := ps.insertBatch(keyed[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (ps *PostgresStore) insertBatch(batch []*models.Record) error {
	width := len(imovelColumns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*width)

	for idx, rec := range batch {
		base := idx * width
		placeholders := make([]string, width)
		for j := 0; j < width; j++ {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		for _, col := range imovelColumns {
			if col == "preco" {
				f, _ := rec.GetFloat(col)
				valueArgs = append(valueArgs, f)
				continue
			}
			valueArgs = append(valueArgs, rec.GetString(col))
		}
	}

	query := fmt.Sprintf(`
		INSERT INTO imoveis (%s)
		VALUES %s
		ON CONFLICT (id_imovel) DO NOTHING
	`, strings.Join(imovelColumns, ", "), strings.Join(valueStrings, ","))

	if _, err := ps.db.Exec(query, valueArgs...); err != nil {
		return eris.Wrap(err, "postgres: insert batch")
	}
	return nil
}

// Fetch returns the record with the given property identifier, or nil when
// it is not stored.
func (ps *PostgresStore) Fetch(id string) (*models.Record, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM imoveis WHERE id_imovel = $1",
		strings.Join(imovelColumns, ", "),
	)
	rec, err := scanRecord(ps.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: fetch %s", id)
	}
	return rec, nil
}

// FetchAll returns every stored record in insertion order.
func (ps *PostgresStore) FetchAll() ([]*models.Record, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM imoveis ORDER BY id",
		strings.Join(imovelColumns, ", "),
	)
	rows, err := ps.db.Query(query)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: fetch all")
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan row")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the database connection.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*models.Record, error) {
	var preco float64
	strs := make([]string, len(imovelColumns)-1)

	dest := make([]interface{}, 0, len(imovelColumns))
	si := 0
	for _, col := range imovelColumns {
		if col == "preco" {
			dest = append(dest, &preco)
			continue
		}
		dest = append(dest, &strs[si])
		si++
	}
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	rec := models.NewRecord()
	si = 0
	for _, col := range imovelColumns {
		if col == "preco" {
			rec.Set(col, preco)
			continue
		}
		rec.Set(col, strs[si])
		si++
	}
	return rec, nil
}
