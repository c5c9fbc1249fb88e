// Package types provides type definitions for structured data used throughout the job-search assistant.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// JobPosting represents a single job posting supplied by the external job
// store. JobID is the sole correlation key between a match request and the
// model's answer, so it is required and must be unique within a batch.
type JobPosting struct {
	JobID        string   `json:"job_id" validate:"required"`
	Title        string   `json:"title" validate:"required"`
	Organization string   `json:"organization"`
	Location     string   `json:"location"`
	State        string   `json:"state,omitempty"`
	Source       string   `json:"source,omitempty"`
	SalaryMin    *float64 `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax    *float64 `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	Deadline     string   `json:"deadline,omitempty"`
	URL          string   `json:"url,omitempty"`

	// Store-managed fields. The assistant never writes these; they round-trip
	// through GET /jobs so the UI can render them.
	DatePosted  string `json:"date_posted,omitempty"`
	DateScraped string `json:"date_scraped,omitempty"`
	IsNew       bool   `json:"is_new,omitempty"`
	IsActive    bool   `json:"is_active,omitempty"`
	MatchScore  *int   `json:"match_score,omitempty"`
	MatchNotes  string `json:"match_notes,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Validate validates a single JobPosting using the validator.
func (j *JobPosting) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}

// ValidateBatch validates an ordered batch of postings: every posting must be
// individually valid and job_ids must be unique within the batch.
func ValidateBatch(jobs []JobPosting) error {
	if len(jobs) == 0 {
		return fmt.Errorf("jobs array is required and must not be empty")
	}

	seen := make(map[string]bool, len(jobs))
	for i := range jobs {
		if err := jobs[i].Validate(); err != nil {
			return fmt.Errorf("jobs[%d]: %w", i, err)
		}
		if seen[jobs[i].JobID] {
			return fmt.Errorf("jobs[%d]: duplicate job_id %q", i, jobs[i].JobID)
		}
		seen[jobs[i].JobID] = true
	}

	return nil
}
