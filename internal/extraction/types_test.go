package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nervousmark/firecrawl-integration/internal/firecrawl"
)

func TestRecordFromStatus_MetadataOnlyFallsBackToPlaceholders(t *testing.T) {
	t.Parallel()

	status := firecrawl.StatusResponse{
		Status: firecrawl.StatusCompleted,
		Data: []firecrawl.PageData{{
			Metadata: firecrawl.PageMetadata{Description: "Widget maker"},
		}},
	}

	rec := RecordFromStatus(status)

	assert.Equal(t, "Widget maker", rec.CompanyDescription)
	assert.Equal(t, Placeholder, rec.CompanyIndustry)
	assert.Equal(t, Placeholder, rec.WhoTheyServe)
}

func TestRecordFromStatus_ExtractionWinsOverMetadata(t *testing.T) {
	t.Parallel()

	status := firecrawl.StatusResponse{
		Status: firecrawl.StatusCompleted,
		Data: []firecrawl.PageData{{
			Metadata: firecrawl.PageMetadata{Description: "meta description"},
			LLMExtraction: map[string]string{
				"company_description": "Sells bathroom fixtures wholesale",
				"company_industry":    "wholesale, retail",
				"who_they_serve":      "contractors and homeowners",
			},
		}},
	}

	rec := RecordFromStatus(status)

	assert.Equal(t, "Sells bathroom fixtures wholesale", rec.CompanyDescription)
	assert.Equal(t, "wholesale, retail", rec.CompanyIndustry)
	assert.Equal(t, "contractors and homeowners", rec.WhoTheyServe)
}

func TestRecordFromStatus_PartialExtraction(t *testing.T) {
	t.Parallel()

	status := firecrawl.StatusResponse{
		Status: firecrawl.StatusCompleted,
		Data: []firecrawl.PageData{{
			Metadata:      firecrawl.PageMetadata{Description: "meta description"},
			LLMExtraction: map[string]string{"company_industry": "services"},
		}},
	}

	rec := RecordFromStatus(status)

	assert.Equal(t, "meta description", rec.CompanyDescription)
	assert.Equal(t, "services", rec.CompanyIndustry)
	assert.Equal(t, Placeholder, rec.WhoTheyServe)
}

func TestRecordFromStatus_EmptyData(t *testing.T) {
	t.Parallel()

	rec := RecordFromStatus(firecrawl.StatusResponse{Status: firecrawl.StatusCompleted})

	assert.Equal(t, ListingRecord{
		CompanyDescription: Placeholder,
		CompanyIndustry:    Placeholder,
		WhoTheyServe:       Placeholder,
	}, rec)
}

func TestListingRecordCSV(t *testing.T) {
	t.Parallel()

	rec := ListingRecord{
		CompanyDescription: "Widget maker",
		CompanyIndustry:    "manufacturing",
		WhoTheyServe:       "hardware stores",
	}

	data, err := rec.CSV()
	require.NoError(t, err)
	assert.Equal(t,
		"company_description,company_industry,who_they_serve\n"+
			"Widget maker,manufacturing,hardware stores\n",
		string(data),
	)
}

func TestListingRecordCSV_QuotesEmbeddedCommas(t *testing.T) {
	t.Parallel()

	rec := ListingRecord{
		CompanyDescription: "Makes widgets, gadgets",
		CompanyIndustry:    Placeholder,
		WhoTheyServe:       Placeholder,
	}

	data, err := rec.CSV()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Makes widgets, gadgets"`)
}
