// Package jobstore provides the client for the external spreadsheet-backed
// job store (a Google Apps Script web app). Job data is persisted there, not
// here; this package only reads records and forwards status updates. When the
// store is unconfigured or unreachable, callers degrade to a built-in sample
// dataset rather than failing — a documented fallback, not an error.
package jobstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/dgentry/jobsearch-agent/internal/types"
)

// DefaultTimeout is the HTTP timeout for store requests.
const DefaultTimeout = 30 * time.Second

// Error represents a failure talking to the job store.
type Error struct {
	Action  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job store error for action %s: %s: %v", e.Action, e.Message, e.Cause)
	}
	return fmt.Sprintf("job store error for action %s: %s", e.Action, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Store is a client for the Apps Script web app. The zero-value base URL
// means "not configured"; every read then uses the sample fallback.
type Store struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Store for the given web-app URL. An empty URL is allowed and
// produces an unconfigured store.
func New(baseURL string) *Store {
	return &Store{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Configured reports whether a store URL was provided.
func (s *Store) Configured() bool {
	return s.baseURL != ""
}

// GetJobs fetches all job records from the store.
func (s *Store) GetJobs(ctx context.Context) ([]types.JobPosting, error) {
	var jobs []types.JobPosting
	if err := s.call(ctx, "getJobs", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob fetches a single job record by id. Returns nil if the store has no
// such record.
func (s *Store) GetJob(ctx context.Context, jobID string) (*types.JobPosting, error) {
	var job types.JobPosting
	if err := s.call(ctx, "getJob", map[string]any{"id": jobID}, &job); err != nil {
		return nil, err
	}
	if job.JobID == "" {
		return nil, nil
	}
	return &job, nil
}

// UpdateJobStatus forwards a status change (New, Applied, Rejected, ...) to
// the store.
func (s *Store) UpdateJobStatus(ctx context.Context, jobID, status string) error {
	return s.call(ctx, "updateJobStatus", map[string]any{"jobId": jobID, "status": status}, nil)
}

// LoadJobs returns the store's job list, or the sample dataset when the store
// is unconfigured, empty, or failing. The second return reports whether the
// fallback was used.
func (s *Store) LoadJobs(ctx context.Context) ([]types.JobPosting, bool) {
	if !s.Configured() {
		log.Printf("[jobstore] store URL not configured, using sample data")
		return SampleJobs(), true
	}

	jobs, err := s.GetJobs(ctx)
	if err != nil {
		log.Printf("[jobstore] load failed, using sample data: %v", err)
		return SampleJobs(), true
	}
	if len(jobs) == 0 {
		log.Printf("[jobstore] store returned no jobs, using sample data")
		return SampleJobs(), true
	}

	return jobs, false
}

// call performs one GET against the web app. Actions and parameters travel as
// query parameters; object-valued parameters are JSON-encoded, matching the
// Apps Script side's expectations.
func (s *Store) call(ctx context.Context, action string, params map[string]any, out any) error {
	if !s.Configured() {
		return &Error{Action: action, Message: "store URL is not configured"}
	}

	u, err := url.Parse(s.baseURL)
	if err != nil {
		return &Error{Action: action, Message: "invalid store URL", Cause: err}
	}

	q := u.Query()
	q.Set("action", action)
	for key, value := range params {
		switch v := value.(type) {
		case string:
			q.Set(key, v)
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return &Error{Action: action, Message: fmt.Sprintf("cannot encode parameter %s", key), Cause: err}
			}
			q.Set(key, string(encoded))
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &Error{Action: action, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &Error{Action: action, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Action: action, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return &Error{Action: action, Message: fmt.Sprintf("HTTP status %d: %s", resp.StatusCode, string(body))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Action: action, Message: "failed to decode response", Cause: err}
	}

	return nil
}
