package matching

import (
	"context"
	"log"

	"github.com/dgentry/jobsearch-agent/internal/llm"
	"github.com/dgentry/jobsearch-agent/internal/profile"
	"github.com/dgentry/jobsearch-agent/internal/types"
)

// matchMaxOutputTokens bounds the model's answer for a match batch.
const matchMaxOutputTokens = 4096

// Stage labels a point in the request lifecycle, for diagnostics. A request
// walks Received through Completed in order; any failure is terminal.
type Stage string

// Lifecycle stages of one match request.
const (
	StageReceived          Stage = "received"
	StageValidated         Stage = "validated"
	StagePromptBuilt       Stage = "prompt_built"
	StageUpstreamCalled    Stage = "upstream_called"
	StageResponseExtracted Stage = "response_extracted"
	StageNormalized        Stage = "normalized"
	StageCompleted         Stage = "completed"
)

// Matcher orchestrates one match request: validation, prompt construction,
// the single outbound model call, answer recovery, and normalization.
// A Matcher is safe for concurrent use; it holds no mutable state beyond the
// injected client, and the profile is read-only.
type Matcher struct {
	client  llm.Client
	profile profile.CandidateProfile
}

// NewMatcher creates a Matcher around an LLM client and a candidate profile.
// A nil client is allowed and makes every Match call fail with
// *ConfigurationError, so a server can start without a credential and report
// the problem per request.
func NewMatcher(client llm.Client, p profile.CandidateProfile) *Matcher {
	return &Matcher{client: client, profile: p}
}

// Ready reports whether the matcher has an upstream client to call.
func (m *Matcher) Ready() bool {
	return m.client != nil
}

// Match scores a batch of postings against the candidate profile. It issues
// exactly one outbound model call and never retries: job matching is not
// latency-critical and silent retries could double-bill model usage.
//
// On success it returns the valid results plus the per-element problem side
// channel. The error return is reserved for whole-request failures:
// *InvalidRequestError, *ConfigurationError, *UpstreamError, or
// *UnparsableResponseError.
func (m *Matcher) Match(ctx context.Context, jobs []types.JobPosting) ([]types.MatchResult, []Problem, error) {
	log.Printf("[match] %s: batch of %d job(s)", StageReceived, len(jobs))

	if err := types.ValidateBatch(jobs); err != nil {
		return nil, nil, &InvalidRequestError{Message: err.Error()}
	}
	log.Printf("[match] %s", StageValidated)

	if m.client == nil {
		return nil, nil, &ConfigurationError{Message: "model API key is not configured"}
	}

	prompt := BuildMatchPrompt(m.profile, jobs)
	log.Printf("[match] %s: %d bytes", StagePromptBuilt, len(prompt))

	answer, err := m.client.GenerateText(ctx, prompt, llm.TierStandard, matchMaxOutputTokens)
	if err != nil {
		return nil, nil, &UpstreamError{
			Message: "model call failed",
			Body:    err.Error(),
			Cause:   err,
		}
	}
	log.Printf("[match] %s: answer of %d bytes", StageUpstreamCalled, len(answer))

	elements, err := ExtractArrayElements(answer)
	if err != nil {
		return nil, nil, &UnparsableResponseError{
			Message: "could not recover a JSON array from the model answer",
			Answer:  answer,
			Cause:   err,
		}
	}
	log.Printf("[match] %s: %d element(s)", StageResponseExtracted, len(elements))

	results, problems := Normalize(elements, jobs)
	log.Printf("[match] %s: %d valid, %d problem(s)", StageNormalized, len(results), len(problems))
	for _, p := range problems {
		log.Printf("[match] problem: %s", p)
	}

	log.Printf("[match] %s", StageCompleted)
	return results, problems, nil
}
