// Package gcs uploads rendered listing records to Google Cloud Storage.
package gcs

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"github.com/nervousmark/firecrawl-integration/internal/extraction"
)

const contentType = "text/csv"

// Config captures the parameters required to place the object.
type Config struct {
	Bucket string
	Object string
}

// Sink writes the CSV rendering of a record to a bucket object.
type Sink struct {
	client *storage.Client
	bucket string
	object string
}

// New creates a GCS-backed sink.
func New(client *storage.Client, cfg Config) (*Sink, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	if cfg.Object == "" {
		return nil, fmt.Errorf("object name is required")
	}
	return &Sink{
		client: client,
		bucket: cfg.Bucket,
		object: cfg.Object,
	}, nil
}

// WriteRecord uploads the record and returns a gs:// URI.
func (s *Sink) WriteRecord(ctx context.Context, rec extraction.ListingRecord) (string, error) {
	data, err := rec.CSV()
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}

	writer := s.client.Bucket(s.bucket).Object(s.object).NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		closeErr := writer.Close()
		if closeErr != nil {
			return "", fmt.Errorf("copy object: %w (close writer: %v)", err, closeErr)
		}
		return "", fmt.Errorf("copy object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close writer: %w", err)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, s.object), nil
}
