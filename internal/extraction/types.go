// Package extraction defines core types shared across subsystems.
package extraction

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/nervousmark/firecrawl-integration/internal/firecrawl"
)

// Placeholder is written for any field the extraction could not answer.
const Placeholder = "no info"

// CSVHeader is the column order used by every tabular sink.
var CSVHeader = []string{
	firecrawl.FieldCompanyDescription,
	firecrawl.FieldCompanyIndustry,
	firecrawl.FieldWhoTheyServe,
}

// ListingRecord holds the fields extracted from one listing page.
type ListingRecord struct {
	CompanyDescription string `json:"company_description"`
	CompanyIndustry    string `json:"company_industry"`
	WhoTheyServe       string `json:"who_they_serve"`
}

// RunResult is returned to the caller after a successful extraction run.
type RunResult struct {
	RunID     string        `json:"run_id"`
	JobID     string        `json:"job_id"`
	Record    ListingRecord `json:"record"`
	Attempts  int           `json:"attempts"`
	Locations []string      `json:"locations"`
}

// RecordFromStatus maps a completed status payload onto a ListingRecord.
// The llm_extraction object of the first page wins field by field; a missing
// description falls back to the page metadata description, everything else
// falls back to the placeholder.
func RecordFromStatus(status firecrawl.StatusResponse) ListingRecord {
	rec := ListingRecord{
		CompanyDescription: Placeholder,
		CompanyIndustry:    Placeholder,
		WhoTheyServe:       Placeholder,
	}
	if len(status.Data) == 0 {
		return rec
	}
	page := status.Data[0]
	if desc := page.Metadata.Description; desc != "" {
		rec.CompanyDescription = desc
	}
	if v := page.LLMExtraction[firecrawl.FieldCompanyDescription]; v != "" {
		rec.CompanyDescription = v
	}
	if v := page.LLMExtraction[firecrawl.FieldCompanyIndustry]; v != "" {
		rec.CompanyIndustry = v
	}
	if v := page.LLMExtraction[firecrawl.FieldWhoTheyServe]; v != "" {
		rec.WhoTheyServe = v
	}
	return rec
}

// Row returns the record as one CSV row in CSVHeader order.
func (r ListingRecord) Row() []string {
	return []string{r.CompanyDescription, r.CompanyIndustry, r.WhoTheyServe}
}

// CSV renders the record as a one-row CSV document with header.
func (r ListingRecord) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.Write(r.Row()); err != nil {
		return nil, fmt.Errorf("write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
