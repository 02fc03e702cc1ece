package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL points at the hosted Firecrawl API.
const DefaultBaseURL = "https://api.firecrawl.dev"

const maxResponseBodySize = 1 << 20 // 1MB

// connection pooling limits; the client talks to a single API host.
const (
	defaultMaxIdleConns        = 10
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 60 * time.Second
	defaultTimeout             = 15 * time.Second
)

// Config captures the parameters required to reach the API.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client issues authenticated requests against the crawl API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// APIError reports a non-success HTTP response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api responded %d: %s", e.StatusCode, e.Body)
}

// New creates a Client. Zero-value config fields fall back to defaults.
func New(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
	}
}

// SubmitCrawl posts a crawl request and returns the job ID assigned by the API.
func (c *Client) SubmitCrawl(ctx context.Context, req CrawlRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal crawl request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v0/crawl",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("build submit request: %w", err)
	}
	c.setHeaders(httpReq)

	respBody, err := c.do(httpReq)
	if err != nil {
		return "", fmt.Errorf("submit crawl: %w", err)
	}

	var submit SubmitResponse
	if err := json.Unmarshal(respBody, &submit); err != nil {
		return "", fmt.Errorf("decode submit response: %w", err)
	}
	if submit.JobID == "" {
		return "", fmt.Errorf("submit response has no job id")
	}
	return submit.JobID, nil
}

// CrawlStatus fetches the current status of a submitted job.
func (c *Client) CrawlStatus(ctx context.Context, jobID string) (StatusResponse, error) {
	if jobID == "" {
		return StatusResponse{}, fmt.Errorf("job id is required")
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/v0/crawl/status/"+jobID,
		nil,
	)
	if err != nil {
		return StatusResponse{}, fmt.Errorf("build status request: %w", err)
	}
	c.setHeaders(httpReq)

	respBody, err := c.do(httpReq)
	if err != nil {
		return StatusResponse{}, fmt.Errorf("fetch job status: %w", err)
	}

	var status StatusResponse
	if err := json.Unmarshal(respBody, &status); err != nil {
		return StatusResponse{}, fmt.Errorf("decode status response: %w", err)
	}
	if status.Status == "" {
		return StatusResponse{}, fmt.Errorf("status response has no status field")
	}
	return status, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}

// do executes the request and returns the body for 2xx responses. Bodies are
// capped at 1MB.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
