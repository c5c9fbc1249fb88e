package matching

import "fmt"

// InvalidRequestError represents bad caller input: a missing, empty, or
// malformed job batch. Maps to HTTP 400. The caller must fix the input; the
// request is never retried.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Message)
}

// ConfigurationError represents a deployment problem such as a missing model
// credential. Maps to HTTP 500. Operator-fixable; never retried, since no
// amount of retrying fixes a missing credential.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// UpstreamError represents a non-success answer from the model service. The
// raw upstream error text is carried unchanged so the caller can diagnose it.
// Single-shot by design: no retry, no backoff.
type UpstreamError struct {
	Message string
	Body    string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("upstream error: %s: %s", e.Message, e.Body)
	}
	return fmt.Sprintf("upstream error: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// UnparsableResponseError means the model's answer did not contain a
// recoverable JSON array. Terminal for the request; re-asking is a policy
// decision that belongs to the caller.
type UnparsableResponseError struct {
	Message string
	Answer  string
	Cause   error
}

func (e *UnparsableResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unparsable response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("unparsable response: %s", e.Message)
}

func (e *UnparsableResponseError) Unwrap() error {
	return e.Cause
}

// ProblemKind classifies a per-element validation problem. Per-element
// problems never fail the whole batch; valid elements are still returned.
type ProblemKind string

// Problem kinds surfaced by the normalizer.
const (
	// ProblemCorrelationMismatch flags an element whose job_id is not in the
	// input batch: the model hallucinated or mangled an id.
	ProblemCorrelationMismatch ProblemKind = "correlation_mismatch"
	// ProblemDuplicateResult flags a second element for an already-scored job.
	ProblemDuplicateResult ProblemKind = "duplicate_result"
	// ProblemInvalidScore flags a match_score that is not an integer in [0,100].
	ProblemInvalidScore ProblemKind = "invalid_score"
	// ProblemInvalidRecommendation flags a recommendation outside the enum.
	ProblemInvalidRecommendation ProblemKind = "invalid_recommendation"
	// ProblemInvalidElement flags an element that fails schema screening.
	ProblemInvalidElement ProblemKind = "invalid_element"
)

// Problem is one per-element validation problem, keyed by the element's
// position in the model's answer and, when recoverable, its job_id.
type Problem struct {
	Index   int         `json:"index"`
	JobID   string      `json:"job_id,omitempty"`
	Kind    ProblemKind `json:"kind"`
	Message string      `json:"message"`
}

func (p Problem) String() string {
	if p.JobID != "" {
		return fmt.Sprintf("element %d (job %s): %s: %s", p.Index, p.JobID, p.Kind, p.Message)
	}
	return fmt.Sprintf("element %d: %s: %s", p.Index, p.Kind, p.Message)
}
