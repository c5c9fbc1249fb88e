package matching

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgentry/jobsearch-agent/internal/schemas"
	"github.com/dgentry/jobsearch-agent/internal/types"
)

// rawElement mirrors one answer element before validation. match_score stays
// a json.Number so that non-integer scores can be rejected rather than
// silently truncated.
type rawElement struct {
	JobID          string      `json:"job_id"`
	MatchScore     json.Number `json:"match_score"`
	MatchNotes     string      `json:"match_notes"`
	Recommendation string      `json:"recommendation"`
	KeyMatches     []string    `json:"key_matches"`
	Concerns       []string    `json:"concerns"`
}

// Normalize validates each recovered element against the expected per-job
// schema and keys it back to its originating posting. Pure transform: the
// returned results contain only valid elements, in the model's order, and the
// Problem side channel carries one entry per rejected element so the caller
// can decide whether a partial result set is acceptable. Per-element problems
// never fail the batch.
func Normalize(elements []json.RawMessage, jobs []types.JobPosting) ([]types.MatchResult, []Problem) {
	known := make(map[string]bool, len(jobs))
	for i := range jobs {
		known[jobs[i].JobID] = true
	}

	results := make([]types.MatchResult, 0, len(elements))
	var problems []Problem
	scored := make(map[string]bool, len(elements))

	for i, element := range elements {
		if err := schemas.ValidateMatchElement(element); err != nil {
			var schemaErr *schemas.SchemaLoadError
			if errors.As(err, &schemaErr) {
				// Broken embedded schema would reject every element; fall
				// through to the field checks below instead.
			} else {
				problems = append(problems, Problem{
					Index:   i,
					JobID:   peekJobID(element),
					Kind:    ProblemInvalidElement,
					Message: err.Error(),
				})
				continue
			}
		}

		var raw rawElement
		if err := json.Unmarshal(element, &raw); err != nil {
			problems = append(problems, Problem{
				Index:   i,
				Kind:    ProblemInvalidElement,
				Message: fmt.Sprintf("element is not an object with the expected fields: %v", err),
			})
			continue
		}

		if !known[raw.JobID] {
			problems = append(problems, Problem{
				Index:   i,
				JobID:   raw.JobID,
				Kind:    ProblemCorrelationMismatch,
				Message: fmt.Sprintf("job_id %q does not match any job in the request batch", raw.JobID),
			})
			continue
		}

		if scored[raw.JobID] {
			problems = append(problems, Problem{
				Index:   i,
				JobID:   raw.JobID,
				Kind:    ProblemDuplicateResult,
				Message: fmt.Sprintf("job_id %q was already scored by an earlier element", raw.JobID),
			})
			continue
		}

		score, err := raw.MatchScore.Int64()
		if err != nil || score < 0 || score > 100 {
			problems = append(problems, Problem{
				Index:   i,
				JobID:   raw.JobID,
				Kind:    ProblemInvalidScore,
				Message: fmt.Sprintf("match_score %s is not an integer in [0,100]", raw.MatchScore),
			})
			continue
		}

		rec := NormalizeRecommendation(raw.Recommendation)
		if !types.ValidRecommendation(rec) {
			problems = append(problems, Problem{
				Index:   i,
				JobID:   raw.JobID,
				Kind:    ProblemInvalidRecommendation,
				Message: fmt.Sprintf("recommendation %q is not one of STRONG_APPLY, APPLY, CONSIDER, SKIP", raw.Recommendation),
			})
			continue
		}

		scored[raw.JobID] = true
		results = append(results, types.MatchResult{
			JobID:          raw.JobID,
			MatchScore:     int(score),
			MatchNotes:     raw.MatchNotes,
			Recommendation: rec,
			KeyMatches:     emptyIfNil(raw.KeyMatches),
			Concerns:       emptyIfNil(raw.Concerns),
		})
	}

	return results, problems
}

// NormalizeRecommendation maps model spellings like "Strong Apply" or
// "STRONG APPLY" onto the closed enum form.
func NormalizeRecommendation(s string) types.Recommendation {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return types.Recommendation(s)
}

// peekJobID best-effort extracts job_id from a raw element for problem
// reporting. Empty on any failure.
func peekJobID(element []byte) string {
	var probe struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(element, &probe); err != nil {
		return ""
	}
	return probe.JobID
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
