// Package ingestion turns a job-posting URL into a structured JobPosting by
// fetching the page, reducing it to text, and asking the model to extract the
// posting's fields. The original workflow relied on an external scraper
// filling the spreadsheet; this lets the assistant ingest a posting directly.
package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dgentry/jobsearch-agent/internal/fetch"
	"github.com/dgentry/jobsearch-agent/internal/llm"
	"github.com/dgentry/jobsearch-agent/internal/prompts"
	"github.com/dgentry/jobsearch-agent/internal/types"
)

// extractMaxOutputTokens bounds the extraction answer; posting fields are small.
const extractMaxOutputTokens = 1024

// extractedFields mirrors the JSON object the extraction prompt asks for.
type extractedFields struct {
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Location     string   `json:"location"`
	State        string   `json:"state"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
	Deadline     *string  `json:"deadline"`
}

// IngestPosting fetches a posting URL and extracts a JobPosting from it.
// useBrowser forces headless-browser rendering; otherwise the browser is used
// only when the plain fetch yields too little text.
func IngestPosting(ctx context.Context, client llm.Client, urlStr string, useBrowser bool) (*types.JobPosting, error) {
	if client == nil {
		return nil, &APICallError{Message: "model client is required"}
	}

	pageText, err := fetchPostingText(ctx, urlStr, useBrowser)
	if err != nil {
		return nil, err
	}

	template := prompts.MustGet("ingestion.json", "extract-posting")
	prompt := prompts.Format(template, map[string]string{
		"PageText": pageText,
	})

	answer, err := client.GenerateText(ctx, prompt, llm.TierLite, extractMaxOutputTokens)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to extract posting fields",
			Cause:   err,
		}
	}

	var fields extractedFields
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(answer)), &fields); err != nil {
		return nil, &ParseError{
			Message: "extraction answer is not valid JSON",
			Cause:   err,
		}
	}

	posting := &types.JobPosting{
		JobID:        newJobID(),
		Title:        strings.TrimSpace(fields.Title),
		Organization: strings.TrimSpace(fields.Organization),
		Location:     strings.TrimSpace(fields.Location),
		State:        strings.ToUpper(strings.TrimSpace(fields.State)),
		Source:       sourceFromURL(urlStr),
		SalaryMin:    fields.SalaryMin,
		SalaryMax:    fields.SalaryMax,
		URL:          urlStr,
		DateScraped:  time.Now().Format("2006-01-02"),
		IsNew:        true,
		IsActive:     true,
		Status:       "New",
	}
	if fields.Deadline != nil {
		posting.Deadline = strings.TrimSpace(*fields.Deadline)
	}

	if err := posting.Validate(); err != nil {
		return nil, &ParseError{
			Message: "extracted posting is incomplete",
			Cause:   err,
		}
	}

	return posting, nil
}

// fetchPostingText retrieves the page and reduces it to text, falling back to
// headless-browser rendering for thin SPA pages.
func fetchPostingText(ctx context.Context, urlStr string, useBrowser bool) (string, error) {
	var html string

	if !useBrowser {
		result, err := fetch.URL(ctx, urlStr, nil)
		if err != nil {
			return "", err
		}
		html = result.HTML

		text, err := fetch.ExtractMainText(html, fetch.JobPostingSelectors())
		if err != nil {
			return "", fmt.Errorf("failed to extract text from %s: %w", urlStr, err)
		}
		if !fetch.ShouldUseBrowser(text) {
			return text, nil
		}
	}

	rendered, err := fetch.BrowserSimple(ctx, urlStr)
	if err != nil {
		return "", err
	}

	text, err := fetch.ExtractMainText(rendered, fetch.JobPostingSelectors())
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", urlStr, err)
	}

	return text, nil
}

// newJobID produces a store-style short id for an ingested posting.
func newJobID() string {
	return "ing-" + uuid.NewString()[:8]
}

// sourceFromURL names the posting's source after its host, e.g.
// "edjoin.org".
func sourceFromURL(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return "Web"
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
