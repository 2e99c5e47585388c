package models

import (
	"bytes"
	"encoding/json"
)

// Well-known record keys produced by the pipeline.
const (
	KeyID        = "id_imovel"
	KeyLink      = "link"
	KeyStatus    = "scraping_status"
	KeySavedPath = "saved_html_path"
	KeyError     = "error_message"
	KeyRawDetail = "raw_dados_imovel"
)

// Status is the terminal outcome of one pipeline pass over a record.
type Status string

const (
	// StatusSuccess means the page was fetched (or reused from the snapshot
	// cache) and extraction ran, even if it found nothing.
	StatusSuccess Status = "success"
	// StatusFailed means no usable page source: missing link or empty fetch.
	StatusFailed Status = "failed"
	// StatusError means an unexpected failure while working the record.
	StatusError Status = "error"
)

// Record is one property row. Field order is preserved from insertion so
// exports keep the input column layout with enrichment columns appended.
type Record struct {
	keys   []string
	values map[string]interface{}
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]interface{})}
}

// Set stores value under key. Setting an existing key overwrites its value
// but keeps its original position.
func (r *Record) Set(key string, value interface{}) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

// GetString returns the value under key when it is a string, else "".
func (r *Record) GetString(key string) string {
	if v, ok := r.values[key]; ok {
		if s, isStr := v.(string); isStr {
			return s
		}
	}
	return ""
}

// GetFloat returns the value under key when it is a float64.
func (r *Record) GetFloat(key string) (float64, bool) {
	if v, ok := r.values[key]; ok {
		if f, isFloat := v.(float64); isFloat {
			return f, true
		}
	}
	return 0, false
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the field names in insertion order. The returned slice is
// shared; callers must not modify it.
func (r *Record) Keys() []string {
	return r.keys
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// ID returns the property identifier, if any.
func (r *Record) ID() string {
	return r.GetString(KeyID)
}

// Link returns the listing page URL, if any.
func (r *Record) Link() string {
	return r.GetString(KeyLink)
}

// Status returns the current scraping status.
func (r *Record) Status() Status {
	return Status(r.GetString(KeyStatus))
}

// SetStatus records the outcome of the current pipeline pass. The pipeline
// drives each record through exactly one terminal transition per run.
func (r *Record) SetStatus(s Status) {
	r.Set(KeyStatus, string(s))
}

// MarshalJSON encodes the record as a JSON object with fields in insertion
// order, which encoding/json's map type would not preserve.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
