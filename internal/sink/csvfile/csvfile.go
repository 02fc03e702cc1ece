// Package csvfile persists listing records as a one-row CSV file on disk.
package csvfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/nervousmark/firecrawl-integration/internal/extraction"
)

// Sink writes the record to a fixed file path, replacing any previous file.
type Sink struct {
	path   string
	logger *zap.Logger
}

// New returns a Sink writing to path.
func New(path string, logger *zap.Logger) (*Sink, error) {
	if path == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{path: path, logger: logger}, nil
}

// WriteRecord renders the record as CSV and writes it to the configured path.
func (s *Sink) WriteRecord(ctx context.Context, rec extraction.ListingRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context canceled: %w", err)
	}
	data, err := rec.CSV()
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return "", fmt.Errorf("write csv to %s: %w", s.path, err)
	}
	s.logger.Info("record written", zap.String("path", s.path))
	return s.path, nil
}
