// Package memory contains an in-memory sink implementation for tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/nervousmark/firecrawl-integration/internal/extraction"
)

// Sink stores written records for inspection.
type Sink struct {
	mu      sync.RWMutex
	records []extraction.ListingRecord
	err     error
}

// New returns a memory Sink.
func New() *Sink {
	return &Sink{}
}

// FailWith makes every subsequent write return err.
func (s *Sink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// WriteRecord records the write and returns a pseudo location.
func (s *Sink) WriteRecord(_ context.Context, rec extraction.ListingRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.records = append(s.records, rec)
	return fmt.Sprintf("memory-%d", len(s.records)), nil
}

// Records returns the recorded writes.
func (s *Sink) Records() []extraction.ListingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]extraction.ListingRecord, len(s.records))
	copy(out, s.records)
	return out
}
