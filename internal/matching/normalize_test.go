package matching

import (
	"encoding/json"
	"testing"

	"github.com/dgentry/jobsearch-agent/internal/types"
)

func testBatch() []types.JobPosting {
	return []types.JobPosting{
		{JobID: "edj-123456", Title: "Principal - Elementary School"},
		{JobID: "wasa-789012", Title: "Superintendent"},
	}
}

func elementsOf(t *testing.T, jsonArray string) []json.RawMessage {
	t.Helper()
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(jsonArray), &elements); err != nil {
		t.Fatalf("bad test fixture: %v", err)
	}
	return elements
}

func TestNormalizeValidElements(t *testing.T) {
	elements := elementsOf(t, `[
		{"job_id":"edj-123456","match_score":92,"match_notes":"Strong fit","recommendation":"STRONG_APPLY","key_matches":["Ed.D.","CA credential"],"concerns":[]},
		{"job_id":"wasa-789012","match_score":65,"match_notes":"Partial fit","recommendation":"CONSIDER","key_matches":["District leadership"],"concerns":["Relocation"]}
	]`)

	results, problems := Normalize(elements, testBatch())
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	first := results[0]
	if first.JobID != "edj-123456" || first.MatchScore != 92 || first.Recommendation != types.RecommendStrongApply {
		t.Errorf("unexpected first result: %+v", first)
	}
	if len(first.KeyMatches) != 2 || first.KeyMatches[0] != "Ed.D." {
		t.Errorf("unexpected key_matches: %v", first.KeyMatches)
	}
	if first.Concerns == nil || len(first.Concerns) != 0 {
		t.Errorf("empty concerns should be [] not nil: %v", first.Concerns)
	}
}

func TestNormalizeSpacedRecommendation(t *testing.T) {
	// The model sometimes writes the enum with a space or in lowercase.
	elements := elementsOf(t, `[
		{"job_id":"edj-123456","match_score":90,"match_notes":"n","recommendation":"STRONG APPLY","key_matches":[],"concerns":[]},
		{"job_id":"wasa-789012","match_score":50,"match_notes":"n","recommendation":"consider","key_matches":[],"concerns":[]}
	]`)

	results, problems := Normalize(elements, testBatch())
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	if results[0].Recommendation != types.RecommendStrongApply {
		t.Errorf("got %q, want STRONG_APPLY", results[0].Recommendation)
	}
	if results[1].Recommendation != types.RecommendConsider {
		t.Errorf("got %q, want CONSIDER", results[1].Recommendation)
	}
}

func TestNormalizeCorrelationMismatch(t *testing.T) {
	elements := elementsOf(t, `[
		{"job_id":"unknown-999","match_score":80,"match_notes":"n","recommendation":"APPLY","key_matches":[],"concerns":[]}
	]`)

	results, problems := Normalize(elements, testBatch())
	if len(results) != 0 {
		t.Fatalf("expected no results, got %v", results)
	}
	if len(problems) != 1 {
		t.Fatalf("expected 1 problem, got %v", problems)
	}
	if problems[0].Kind != ProblemCorrelationMismatch {
		t.Errorf("got kind %q, want %q", problems[0].Kind, ProblemCorrelationMismatch)
	}
	if problems[0].JobID != "unknown-999" {
		t.Errorf("got job_id %q", problems[0].JobID)
	}
}

func TestNormalizeDuplicateResult(t *testing.T) {
	elements := elementsOf(t, `[
		{"job_id":"edj-123456","match_score":92,"match_notes":"first","recommendation":"APPLY","key_matches":[],"concerns":[]},
		{"job_id":"edj-123456","match_score":40,"match_notes":"second","recommendation":"SKIP","key_matches":[],"concerns":[]}
	]`)

	results, problems := Normalize(elements, testBatch())
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].MatchNotes != "first" {
		t.Errorf("first element should win, got %q", results[0].MatchNotes)
	}
	if len(problems) != 1 || problems[0].Kind != ProblemDuplicateResult {
		t.Errorf("expected one duplicate_result problem, got %v", problems)
	}
	if problems[0].Index != 1 {
		t.Errorf("problem should point at element 1, got %d", problems[0].Index)
	}
}

func TestNormalizeInvalidScore(t *testing.T) {
	tests := []struct {
		name  string
		score string
	}{
		{"negative", "-1"},
		{"above range", "101"},
		{"fractional", "87.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements := elementsOf(t, `[
				{"job_id":"edj-123456","match_score":`+tt.score+`,"match_notes":"n","recommendation":"APPLY","key_matches":[],"concerns":[]}
			]`)

			results, problems := Normalize(elements, testBatch())
			if len(results) != 0 {
				t.Fatalf("expected rejection, got %v", results)
			}
			if len(problems) != 1 || problems[0].Kind != ProblemInvalidScore {
				t.Errorf("expected one invalid_score problem, got %v", problems)
			}
		})
	}
}

func TestNormalizeInvalidRecommendation(t *testing.T) {
	elements := elementsOf(t, `[
		{"job_id":"edj-123456","match_score":70,"match_notes":"n","recommendation":"MAYBE","key_matches":[],"concerns":[]}
	]`)

	results, problems := Normalize(elements, testBatch())
	if len(results) != 0 {
		t.Fatalf("expected rejection, got %v", results)
	}
	if len(problems) != 1 || problems[0].Kind != ProblemInvalidRecommendation {
		t.Errorf("expected one invalid_recommendation problem, got %v", problems)
	}
}

func TestNormalizeMissingFields(t *testing.T) {
	// Schema screening rejects elements missing required keys.
	elements := elementsOf(t, `[
		{"job_id":"edj-123456","match_score":70}
	]`)

	results, problems := Normalize(elements, testBatch())
	if len(results) != 0 {
		t.Fatalf("expected rejection, got %v", results)
	}
	if len(problems) != 1 || problems[0].Kind != ProblemInvalidElement {
		t.Fatalf("expected one invalid_element problem, got %v", problems)
	}
	if problems[0].JobID != "edj-123456" {
		t.Errorf("problem should carry the recoverable job_id, got %q", problems[0].JobID)
	}
}

func TestNormalizeNonObjectElement(t *testing.T) {
	elements := elementsOf(t, `["just a string", 42]`)

	results, problems := Normalize(elements, testBatch())
	if len(results) != 0 {
		t.Fatalf("expected no results, got %v", results)
	}
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", problems)
	}
	for _, p := range problems {
		if p.Kind != ProblemInvalidElement {
			t.Errorf("got kind %q, want %q", p.Kind, ProblemInvalidElement)
		}
	}
}

func TestNormalizeMixedBatchKeepsValidElements(t *testing.T) {
	// One bad element must not poison the rest of the batch.
	elements := elementsOf(t, `[
		{"job_id":"edj-123456","match_score":92,"match_notes":"n","recommendation":"STRONG_APPLY","key_matches":["fit"],"concerns":[]},
		{"job_id":"ghost-1","match_score":80,"match_notes":"n","recommendation":"APPLY","key_matches":[],"concerns":[]},
		{"job_id":"wasa-789012","match_score":55,"match_notes":"n","recommendation":"CONSIDER","key_matches":[],"concerns":["Distance"]}
	]`)

	results, problems := Normalize(elements, testBatch())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].JobID != "edj-123456" || results[1].JobID != "wasa-789012" {
		t.Errorf("results out of order: %+v", results)
	}
	if len(problems) != 1 || problems[0].Kind != ProblemCorrelationMismatch {
		t.Errorf("expected one correlation_mismatch, got %v", problems)
	}
}

func TestNormalizeRecommendationSpellings(t *testing.T) {
	tests := []struct {
		in   string
		want types.Recommendation
	}{
		{"STRONG_APPLY", types.RecommendStrongApply},
		{"STRONG APPLY", types.RecommendStrongApply},
		{"strong-apply", types.RecommendStrongApply},
		{"  apply  ", types.RecommendApply},
		{"Consider", types.RecommendConsider},
		{"skip", types.RecommendSkip},
	}

	for _, tt := range tests {
		if got := NormalizeRecommendation(tt.in); got != tt.want {
			t.Errorf("NormalizeRecommendation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
