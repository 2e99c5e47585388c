// Package api serves stored enrichment results over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"imoveis-scraper/models"
	"imoveis-scraper/storage"
)

// Server exposes the record store as a small read-only JSON API.
type Server struct {
	store storage.RecordStore
	log   *zap.Logger
}

// NewServer wires a Server over the given store.
func NewServer(store storage.RecordStore, log *zap.Logger) *Server {
	return &Server{store: store, log: log}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/imoveis", s.handleList).Methods("GET")
	r.HandleFunc("/api/imoveis/{id}", s.handleGet).Methods("GET")
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.FetchAll()
	if err != nil {
		s.log.Error("api: fetch all failed", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load records"})
		return
	}
	if records == nil {
		records = []*models.Record{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"imoveis": records,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, err := s.store.Fetch(id)
	if err != nil {
		s.log.Error("api: fetch failed", zap.String("id_imovel", id), zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load record"})
		return
	}
	if rec == nil {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "imovel not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("api: encode response", zap.Error(err))
	}
}
