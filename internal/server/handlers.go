package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/dgentry/jobsearch-agent/internal/generating"
	"github.com/dgentry/jobsearch-agent/internal/matching"
	"github.com/dgentry/jobsearch-agent/internal/types"
)

// MatchRequest is the request body for POST /match.
type MatchRequest struct {
	Jobs []types.JobPosting `json:"jobs"`
}

// MatchResponse is the response body for POST /match: the valid results plus
// the per-element problem side channel. Problems never fail the batch.
type MatchResponse struct {
	Results  []types.MatchResult `json:"results"`
	Problems []matching.Problem  `json:"problems"`
}

// handleMatch scores a batch of postings against the candidate profile.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: jobs array is required")
		return
	}

	results, problems, err := s.matcher.Match(r.Context(), req.Jobs)
	if err != nil {
		s.matchError(w, err)
		return
	}

	if problems == nil {
		problems = []matching.Problem{}
	}
	s.jsonResponse(w, http.StatusOK, MatchResponse{Results: results, Problems: problems})
}

// handleGenerate drafts a cover letter or resume highlights for one posting.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Job and type are required")
		return
	}

	content, err := s.generator.Generate(r.Context(), req.Job, req.Type)
	if err != nil {
		s.generateError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.GenerateResponse{Content: content, Type: req.Type})
}

// handleListJobs proxies the external job store, degrading to the built-in
// sample dataset when the store is unconfigured or failing.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, fallback := s.store.LoadJobs(r.Context())
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":     jobs,
		"fallback": fallback,
	})
}

// UpdateStatusRequest is the request body for POST /jobs/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// handleUpdateJobStatus forwards a status change to the external store.
func (s *Server) handleUpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		s.errorResponse(w, http.StatusBadRequest, "Status is required")
		return
	}

	if !s.store.Configured() {
		s.errorResponse(w, http.StatusServiceUnavailable, "Job store is not configured")
		return
	}

	if err := s.store.UpdateJobStatus(r.Context(), jobID, req.Status); err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Job store error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

// matchError maps the matching error taxonomy onto HTTP statuses. Upstream
// failures forward the provider's status code when it is known; nothing is
// retried here.
func (s *Server) matchError(w http.ResponseWriter, err error) {
	var invalidErr *matching.InvalidRequestError
	if errors.As(err, &invalidErr) {
		s.errorResponse(w, http.StatusBadRequest, invalidErr.Error())
		return
	}

	var configErr *matching.ConfigurationError
	if errors.As(err, &configErr) {
		s.errorResponse(w, http.StatusInternalServerError, configErr.Error())
		return
	}

	var upstreamErr *matching.UpstreamError
	if errors.As(err, &upstreamErr) {
		s.errorResponse(w, upstreamStatus(upstreamErr), upstreamErr.Error())
		return
	}

	var parseErr *matching.UnparsableResponseError
	if errors.As(err, &parseErr) {
		s.errorResponse(w, http.StatusInternalServerError, parseErr.Error())
		return
	}

	s.errorResponse(w, http.StatusInternalServerError, err.Error())
}

// generateError maps the generation error taxonomy onto HTTP statuses.
func (s *Server) generateError(w http.ResponseWriter, err error) {
	var invalidErr *generating.InvalidRequestError
	if errors.As(err, &invalidErr) {
		s.errorResponse(w, http.StatusBadRequest, invalidErr.Error())
		return
	}

	var configErr *generating.ConfigurationError
	if errors.As(err, &configErr) {
		s.errorResponse(w, http.StatusInternalServerError, configErr.Error())
		return
	}

	var upstreamErr *generating.UpstreamError
	if errors.As(err, &upstreamErr) {
		s.errorResponse(w, upstreamStatusFromCause(upstreamErr), upstreamErr.Error())
		return
	}

	s.errorResponse(w, http.StatusInternalServerError, err.Error())
}

// upstreamStatus forwards the provider's HTTP status when the error chain
// carries one; 500 otherwise.
func upstreamStatus(err *matching.UpstreamError) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code >= 400 {
		return apiErr.Code
	}
	return http.StatusInternalServerError
}

func upstreamStatusFromCause(err *generating.UpstreamError) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code >= 400 {
		return apiErr.Code
	}
	return http.StatusInternalServerError
}
