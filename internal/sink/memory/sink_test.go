package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nervousmark/firecrawl-integration/internal/extraction"
)

func TestSinkRecordsWrites(t *testing.T) {
	t.Parallel()

	s := New()
	rec := extraction.ListingRecord{CompanyDescription: "Widget maker"}

	location, err := s.WriteRecord(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "memory-1", location)

	records := s.Records()
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])
}

func TestSinkFailWith(t *testing.T) {
	t.Parallel()

	s := New()
	wantErr := errors.New("disk full")
	s.FailWith(wantErr)

	_, err := s.WriteRecord(context.Background(), extraction.ListingRecord{})
	require.ErrorIs(t, err, wantErr)
	assert.Empty(t, s.Records())
}
