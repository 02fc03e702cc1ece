package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nervousmark/firecrawl-integration/internal/extraction"
)

func TestWriteRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "listings.csv")
	s, err := New(path, zap.NewNop())
	require.NoError(t, err)

	rec := extraction.ListingRecord{
		CompanyDescription: "Widget maker",
		CompanyIndustry:    "no info",
		WhoTheyServe:       "no info",
	}
	location, err := s.WriteRecord(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, path, location)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"company_description,company_industry,who_they_serve\n"+
			"Widget maker,no info,no info\n",
		string(data),
	)
}

func TestWriteRecord_ReplacesPreviousFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	s, err := New(path, zap.NewNop())
	require.NoError(t, err)

	_, err = s.WriteRecord(context.Background(), extraction.ListingRecord{
		CompanyDescription: "fresh",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Contains(t, string(data), "fresh")
}

func TestWriteRecord_CanceledContext(t *testing.T) {
	t.Parallel()

	s, err := New(filepath.Join(t.TempDir(), "listings.csv"), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.WriteRecord(ctx, extraction.ListingRecord{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNew_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := New("", zap.NewNop())
	require.Error(t, err)
}
