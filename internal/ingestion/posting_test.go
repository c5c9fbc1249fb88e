package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgentry/jobsearch-agent/internal/llm"
)

type fakeClient struct {
	answer string
	err    error
	prompt string
}

func (f *fakeClient) GenerateText(_ context.Context, prompt string, _ llm.ModelTier, _ int32) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

// postingPage is long enough that the plain fetch is trusted and the headless
// browser fallback never fires.
func postingPage() string {
	body := strings.Repeat("The district seeks an experienced site administrator. ", 20)
	return `<html><body><div class="job-description"><h1>Principal - Elementary School</h1><p>` + body + `</p></div></body></html>`
}

func TestIngestPosting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingPage()))
	}))
	defer srv.Close()

	client := &fakeClient{answer: "```json\n" + `{
		"title": "Principal - Elementary School",
		"organization": "Sacramento City Unified School District",
		"location": "Sacramento, CA",
		"state": "ca",
		"salary_min": 125000,
		"salary_max": 155000,
		"deadline": "2025-02-15"
	}` + "\n```"}

	posting, err := IngestPosting(context.Background(), client, srv.URL, false)
	if err != nil {
		t.Fatalf("IngestPosting failed: %v", err)
	}

	if posting.Title != "Principal - Elementary School" {
		t.Errorf("title = %q", posting.Title)
	}
	if posting.State != "CA" {
		t.Errorf("state should be uppercased, got %q", posting.State)
	}
	if posting.SalaryMin == nil || *posting.SalaryMin != 125000 {
		t.Errorf("salary_min = %v", posting.SalaryMin)
	}
	if posting.Deadline != "2025-02-15" {
		t.Errorf("deadline = %q", posting.Deadline)
	}
	if !strings.HasPrefix(posting.JobID, "ing-") {
		t.Errorf("job id should carry the ingest prefix, got %q", posting.JobID)
	}
	if posting.URL != srv.URL {
		t.Errorf("url = %q", posting.URL)
	}
	if posting.Status != "New" || !posting.IsNew || !posting.IsActive {
		t.Errorf("posting should start as a new active record: %+v", posting)
	}
	if !strings.Contains(client.prompt, "site administrator") {
		t.Error("prompt should carry the page text")
	}
}

func TestIngestPostingNilClient(t *testing.T) {
	_, err := IngestPosting(context.Background(), nil, "https://example.com", false)
	var apiErr *APICallError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APICallError, got %v", err)
	}
}

func TestIngestPostingModelFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(postingPage()))
	}))
	defer srv.Close()

	client := &fakeClient{err: errors.New("quota exceeded")}
	_, err := IngestPosting(context.Background(), client, srv.URL, false)
	var apiErr *APICallError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APICallError, got %v", err)
	}
}

func TestIngestPostingBadAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(postingPage()))
	}))
	defer srv.Close()

	client := &fakeClient{answer: "I could not find a posting on that page."}
	_, err := IngestPosting(context.Background(), client, srv.URL, false)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestIngestPostingIncompleteExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(postingPage()))
	}))
	defer srv.Close()

	// Valid JSON but no title: the posting fails validation.
	client := &fakeClient{answer: `{"organization":"Some District"}`}
	_, err := IngestPosting(context.Background(), client, srv.URL, false)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestSourceFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.edjoin.org/Home/JobPosting/123", "edjoin.org"},
		{"https://schoolspring.com/job/1", "schoolspring.com"},
		{"not a url", "Web"},
	}

	for _, tt := range tests {
		if got := sourceFromURL(tt.in); got != tt.want {
			t.Errorf("sourceFromURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewJobIDIsUnique(t *testing.T) {
	a := newJobID()
	b := newJobID()
	if a == b {
		t.Error("ids should be unique")
	}
	if len(a) != len("ing-")+8 {
		t.Errorf("unexpected id shape: %q", a)
	}
}
