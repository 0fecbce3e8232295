// Package harvest accumulates records from repeated scans of a page view and
// serves them through sort and export operations.
package harvest

import (
	"slices"

	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/bloom"
)

var _ socialstats.RecordIndex = (*Store)(nil)

// Store is an identifier-deduplicated collection of records in order of
// first appearance. The first record seen for an id wins. Store is not safe
// for concurrent use; a Session serializes access to it.
type Store struct {
	records []*socialstats.Record
	ids     map[string]struct{}
	prints  map[uint64]struct{}
	seen    *bloom.Filter
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		ids:    make(map[string]struct{}),
		prints: make(map[uint64]struct{}),
		seen:   bloom.NewFilter(10000, 0.001),
	}
}

// Has reports whether a record with id was added.
func (s *Store) Has(id string) bool {
	if !s.seen.Test(id) {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// HasFingerprint reports whether a record with fingerprint fp was added.
func (s *Store) HasFingerprint(fp uint64) bool {
	if !s.seen.TestFingerprint(fp) {
		return false
	}
	_, ok := s.prints[fp]
	return ok
}

// Add appends r unless a record with the same id exists. It reports whether
// r was appended.
func (s *Store) Add(r *socialstats.Record) bool {
	if s.Has(r.ID) {
		return false
	}
	s.records = append(s.records, r)
	s.ids[r.ID] = struct{}{}
	s.seen.Add(r.ID)
	if r.Fingerprint != 0 {
		s.prints[r.Fingerprint] = struct{}{}
		s.seen.AddFingerprint(r.Fingerprint)
	}
	return true
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns the records in order of first appearance. The returned
// slice is a copy; the records themselves are shared and must not be
// modified.
func (s *Store) Records() []*socialstats.Record {
	return slices.Clone(s.records)
}

// HasPlaceholders reports whether any placeholder record is stored.
func (s *Store) HasPlaceholders() bool {
	return slices.ContainsFunc(s.records, func(r *socialstats.Record) bool { return r.Placeholder })
}

// DiscardPlaceholders removes placeholder records and returns how many were
// removed. Real records keep their order.
func (s *Store) DiscardPlaceholders() int {
	before := len(s.records)
	s.records = slices.DeleteFunc(s.records, func(r *socialstats.Record) bool {
		if r.Placeholder {
			delete(s.ids, r.ID)
			return true
		}
		return false
	})
	return before - len(s.records)
}
