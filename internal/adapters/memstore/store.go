// Package memstore implements the fact store in memory, for tests and dry
// runs.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/pinionworks/pinion/internal/filings"
)

// Store implements filings.FactStore in memory. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records map[string]filings.Record
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{records: make(map[string]filings.Record)}
}

// Save persists the record, replacing any previous record for its CIK.
func (s *Store) Save(_ context.Context, rec filings.Record) error {
	// Copy the facts map so callers can't mutate stored state afterwards.
	copied := rec
	copied.Facts = make(map[string]string, len(rec.Facts))
	for k, v := range rec.Facts {
		copied.Facts[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.CIK] = copied
	return nil
}

// Load retrieves the record for a CIK.
func (s *Store) Load(_ context.Context, cik string) (filings.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[cik]
	if !ok {
		return filings.Record{}, filings.ErrRecordNotFound
	}

	ret := rec
	ret.Facts = make(map[string]string, len(rec.Facts))
	for k, v := range rec.Facts {
		ret.Facts[k] = v
	}

	return ret, nil
}

// List returns the stored CIKs in lexical order.
func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ciks := make([]string, 0, len(s.records))
	for cik := range s.records {
		ciks = append(ciks, cik)
	}
	sort.Strings(ciks)

	return ciks, nil
}
