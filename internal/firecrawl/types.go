// Package firecrawl implements a client for the Firecrawl v0 crawl/extraction API.
package firecrawl

// Job status values reported by the status endpoint. Anything else is
// treated as non-terminal (queued, active, unknown).
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// DefaultExtractionPrompt is the directive sent alongside the listing schema.
const DefaultExtractionPrompt = "Extract the company description (in one sentence explain what the company does), " +
	"company industry (software, services, AI, etc.) - this really should just be a tag with " +
	"a couple keywords, and who they serve (who are their customers). If there is no clear " +
	"information to answer the question, write 'no info'."

// Extraction field names requested from the API.
const (
	FieldCompanyDescription = "company_description"
	FieldCompanyIndustry    = "company_industry"
	FieldWhoTheyServe       = "who_they_serve"
)

// CrawlRequest is the body of a crawl submission.
type CrawlRequest struct {
	URL            string         `json:"url"`
	CrawlerOptions CrawlerOptions `json:"crawlerOptions"`
}

// CrawlerOptions selects the extraction mode and directive for a crawl.
type CrawlerOptions struct {
	Mode             string           `json:"mode"`
	ExtractionPrompt string           `json:"extractionPrompt"`
	ExtractionSchema ExtractionSchema `json:"extractionSchema"`
}

// ExtractionSchema is the JSON-schema-like structure naming the fields to extract.
type ExtractionSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]SchemaProperty `json:"properties"`
	Required   []string                  `json:"required"`
}

// SchemaProperty declares the type of one extracted field.
type SchemaProperty struct {
	Type string `json:"type"`
}

// SubmitResponse is the body returned by a successful crawl submission.
type SubmitResponse struct {
	JobID string `json:"jobId"`
}

// StatusResponse is the body returned by the status endpoint. Data is
// populated when the job has completed.
type StatusResponse struct {
	Status string     `json:"status"`
	Data   []PageData `json:"data"`
}

// PageData holds extracted content and metadata for one crawled page.
type PageData struct {
	Content       string            `json:"content,omitempty"`
	Markdown      string            `json:"markdown,omitempty"`
	Metadata      PageMetadata      `json:"metadata"`
	LLMExtraction map[string]string `json:"llm_extraction,omitempty"`
}

// PageMetadata is the page-level metadata attached to a crawl result.
type PageMetadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	SourceURL   string `json:"sourceURL,omitempty"`
}

// NewListingRequest builds the llm-extraction request for a single listing page.
// An empty prompt falls back to DefaultExtractionPrompt.
func NewListingRequest(url, prompt string) CrawlRequest {
	if prompt == "" {
		prompt = DefaultExtractionPrompt
	}
	return CrawlRequest{
		URL: url,
		CrawlerOptions: CrawlerOptions{
			Mode:             "llm-extraction",
			ExtractionPrompt: prompt,
			ExtractionSchema: ExtractionSchema{
				Type: "object",
				Properties: map[string]SchemaProperty{
					FieldCompanyDescription: {Type: "string"},
					FieldCompanyIndustry:    {Type: "string"},
					FieldWhoTheyServe:       {Type: "string"},
				},
				Required: []string{
					FieldCompanyDescription,
					FieldCompanyIndustry,
					FieldWhoTheyServe,
				},
			},
		},
	}
}
