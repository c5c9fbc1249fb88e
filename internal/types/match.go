package types

// Recommendation is the closed set of application recommendations the model
// may return for a scored job.
type Recommendation string

// Recommendation values, strongest to weakest.
const (
	RecommendStrongApply Recommendation = "STRONG_APPLY"
	RecommendApply       Recommendation = "APPLY"
	RecommendConsider    Recommendation = "CONSIDER"
	RecommendSkip        Recommendation = "SKIP"
)

// ValidRecommendation reports whether r is one of the four closed enum values.
func ValidRecommendation(r Recommendation) bool {
	switch r {
	case RecommendStrongApply, RecommendApply, RecommendConsider, RecommendSkip:
		return true
	}
	return false
}

// MatchResult is one scored job, keyed back to its originating posting by
// JobID. Results are constructed fresh per request and never persisted here.
type MatchResult struct {
	JobID          string         `json:"job_id"`
	MatchScore     int            `json:"match_score"`
	MatchNotes     string         `json:"match_notes"`
	Recommendation Recommendation `json:"recommendation"`
	KeyMatches     []string       `json:"key_matches"`
	Concerns       []string       `json:"concerns"`
}
