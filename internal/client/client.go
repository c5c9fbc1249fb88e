// Package client is the caller-side adapter for the assistant's HTTP API.
// Each method is a single round trip: no caching, no retries, and server
// errors are propagated unchanged so the caller sees exactly what the
// orchestrator reported.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dgentry/jobsearch-agent/internal/matching"
	"github.com/dgentry/jobsearch-agent/internal/types"
)

// DefaultTimeout is the HTTP timeout for API calls. Match calls block on the
// model, so this is generous.
const DefaultTimeout = 120 * time.Second

// APIError carries a non-success response from the server, body verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// MatchResponse is the decoded body of a successful POST /match.
type MatchResponse struct {
	Results  []types.MatchResult `json:"results"`
	Problems []matching.Problem  `json:"problems"`
}

// Client talks to a running assistant server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given server base URL, e.g.
// "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// MatchJobs posts a job batch to /match and returns the normalized results
// plus the per-element problem side channel.
func (c *Client) MatchJobs(ctx context.Context, jobs []types.JobPosting) (*MatchResponse, error) {
	var resp MatchResponse
	err := c.post(ctx, "/match", map[string]any{"jobs": jobs}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Generate posts a generation request to /generate and returns the drafted
// document.
func (c *Client) Generate(ctx context.Context, job *types.JobPosting, docType types.GenerateType) (*types.GenerateResponse, error) {
	var resp types.GenerateResponse
	err := c.post(ctx, "/generate", types.GenerateRequest{Job: job, Type: docType}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// post performs one JSON round trip. A non-2xx response becomes an *APIError
// carrying the body unchanged.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	return nil
}
