// Package generating drafts cover letters and resume-highlight suggestions
// for a chosen posting. Like matching, it is single-shot request/response
// orchestration: one prompt, one bounded model call, no retries, and the
// answer text is returned to the caller verbatim.
package generating

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/dgentry/jobsearch-agent/internal/llm"
	"github.com/dgentry/jobsearch-agent/internal/profile"
	"github.com/dgentry/jobsearch-agent/internal/prompts"
	"github.com/dgentry/jobsearch-agent/internal/types"
)

// generateMaxOutputTokens bounds the drafted document. Cover letters run
// 400-500 words; highlights are shorter still.
const generateMaxOutputTokens = 2048

// coverLetterCerts and coverLetterAccomplishments limit how much of the
// fixture the cover-letter prompt carries, matching the condensed candidate
// block the letter needs.
const (
	coverLetterCerts           = 4
	coverLetterAccomplishments = 5
)

// Generator drafts documents for one posting at a time. Safe for concurrent
// use; the profile is read-only.
type Generator struct {
	client  llm.Client
	profile profile.CandidateProfile
}

// NewGenerator creates a Generator. A nil client makes every Generate call
// fail with *ConfigurationError.
func NewGenerator(client llm.Client, p profile.CandidateProfile) *Generator {
	return &Generator{client: client, profile: p}
}

// Ready reports whether the generator has an upstream client to call.
func (g *Generator) Ready() bool {
	return g.client != nil
}

// Generate drafts the requested document type for the given posting and
// returns the model's answer text.
func (g *Generator) Generate(ctx context.Context, job *types.JobPosting, docType types.GenerateType) (string, error) {
	if job == nil {
		return "", &InvalidRequestError{Message: "job is required"}
	}
	if !types.ValidGenerateType(docType) {
		return "", &InvalidRequestError{Message: fmt.Sprintf("invalid type %q, use cover_letter or resume_highlights", docType)}
	}
	if g.client == nil {
		return "", &ConfigurationError{Message: "model API key is not configured"}
	}

	var prompt string
	switch docType {
	case types.GenerateCoverLetter:
		prompt = buildCoverLetterPrompt(g.profile, job)
	case types.GenerateResumeHighlights:
		prompt = buildResumeHighlightsPrompt(g.profile, job)
	}

	log.Printf("[generate] %s for job %s: prompt of %d bytes", docType, job.JobID, len(prompt))

	answer, err := g.client.GenerateText(ctx, prompt, llm.TierAdvanced, generateMaxOutputTokens)
	if err != nil {
		return "", &UpstreamError{
			Message: "model call failed",
			Body:    err.Error(),
			Cause:   err,
		}
	}

	return llm.CleanJSONBlock(answer), nil
}

// buildCoverLetterPrompt renders the condensed candidate block and target
// position into the cover-letter template. Deterministic for fixed inputs.
func buildCoverLetterPrompt(p profile.CandidateProfile, job *types.JobPosting) string {
	template := prompts.MustGet("generation.json", "cover-letter")
	return prompts.Format(template, map[string]string{
		"CandidateBlock": buildCandidateBlock(p),
		"JobBlock":       buildJobBlock(job, true),
	})
}

// buildResumeHighlightsPrompt renders the full work history as indented JSON
// plus the target position into the highlights template.
func buildResumeHighlightsPrompt(p profile.CandidateProfile, job *types.JobPosting) string {
	experienceJSON, err := json.MarshalIndent(p.Positions, "", "  ")
	if err != nil {
		// Positions come from the embedded fixture; marshal cannot fail for it.
		experienceJSON = []byte("[]")
	}

	template := prompts.MustGet("generation.json", "resume-highlights")
	return prompts.Format(template, map[string]string{
		"ExperienceJSON": string(experienceJSON),
		"JobBlock":       buildJobBlock(job, false),
	})
}

func buildCandidateBlock(p profile.CandidateProfile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**Name:** %s\n", p.Name)
	fmt.Fprintf(&sb, "**Contact:** %s | %s\n", p.Contact.Email, p.Contact.Phone)
	fmt.Fprintf(&sb, "**Address:** %s\n", p.Contact.Address)

	sb.WriteString("\n**Education:**\n")
	for _, e := range p.Education {
		fmt.Fprintf(&sb, "- %s in %s, %s (%d)\n", e.Degree, e.Field, e.Institution, e.Year)
	}

	sb.WriteString("\n**Key Certifications:**\n")
	for i, c := range p.Certifications {
		if i >= coverLetterCerts {
			break
		}
		fmt.Fprintf(&sb, "- %s\n", c)
	}

	if len(p.Positions) > 0 {
		current := p.Positions[0]
		fmt.Fprintf(&sb, "\n**Current Position:** %s, %s (%s)\n", current.Title, current.Organization, current.Dates)

		sb.WriteString("\n**Key Accomplishments:**\n")
		for i, h := range current.Highlights {
			if i >= coverLetterAccomplishments {
				break
			}
			fmt.Fprintf(&sb, "- %s\n", h)
		}
	}

	sb.WriteString("\n**Key Strengths:**\n")
	for _, s := range p.Strengths {
		fmt.Fprintf(&sb, "- %s\n", s)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func buildJobBlock(job *types.JobPosting, includeSource bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**Title:** %s\n", job.Title)
	fmt.Fprintf(&sb, "**Organization:** %s\n", job.Organization)
	fmt.Fprintf(&sb, "**Location:** %s\n", job.Location)
	if includeSource {
		fmt.Fprintf(&sb, "**Source:** %s\n", job.Source)
	}

	return strings.TrimRight(sb.String(), "\n")
}
