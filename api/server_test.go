package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"imoveis-scraper/models"
)

func newTestLogger() *zap.Logger { return zap.NewNop() }

type fakeStore struct {
	records []*models.Record
	err     error
}

func (f *fakeStore) Save(records []*models.Record) error { return f.err }

func (f *fakeStore) Fetch(id string) (*models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, rec := range f.records {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FetchAll() ([]*models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeStore) Close() error { return nil }

func storedRecord(id string) *models.Record {
	rec := models.NewRecord()
	rec.Set(models.KeyID, id)
	rec.Set("tipo_imovel", "Casa")
	rec.SetStatus(models.StatusSuccess)
	return rec
}

func doRequest(t *testing.T, store *fakeStore, path string) *httptest.ResponseRecorder {
	t.Helper()
	srv := NewServer(store, newTestLogger())
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoint(t *testing.T) {
	rr := doRequest(t, &fakeStore{}, "/health")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rr.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q; want %q", body["status"], "ok")
	}
}

func TestListEndpoint(t *testing.T) {
	store := &fakeStore{records: []*models.Record{storedRecord("1"), storedRecord("2")}}
	rr := doRequest(t, store, "/api/imoveis")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rr.Code, http.StatusOK)
	}
	var body struct {
		Count   int               `json:"count"`
		Imoveis []json.RawMessage `json:"imoveis"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count != 2 || len(body.Imoveis) != 2 {
		t.Errorf("count = %d with %d imoveis; want 2 and 2", body.Count, len(body.Imoveis))
	}
}

func TestListEndpointEmptyStore(t *testing.T) {
	rr := doRequest(t, &fakeStore{}, "/api/imoveis")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rr.Code, http.StatusOK)
	}
	var body struct {
		Count   int               `json:"count"`
		Imoveis []json.RawMessage `json:"imoveis"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count != 0 || body.Imoveis == nil {
		t.Errorf("empty store body = %s; want count 0 with [] imoveis", rr.Body.String())
	}
}

func TestListEndpointStoreError(t *testing.T) {
	rr := doRequest(t, &fakeStore{err: errors.New("connection refused")}, "/api/imoveis")

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d; want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestGetEndpoint(t *testing.T) {
	store := &fakeStore{records: []*models.Record{storedRecord("8444410994")}}
	rr := doRequest(t, store, "/api/imoveis/8444410994")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rr.Code, http.StatusOK)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body[models.KeyID] != "8444410994" {
		t.Errorf("id_imovel = %v; want %q", body[models.KeyID], "8444410994")
	}
	if body["tipo_imovel"] != "Casa" {
		t.Errorf("tipo_imovel = %v; want %q", body["tipo_imovel"], "Casa")
	}
}

func TestGetEndpointNotFound(t *testing.T) {
	rr := doRequest(t, &fakeStore{}, "/api/imoveis/999")

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d; want %d", rr.Code, http.StatusNotFound)
	}
}
