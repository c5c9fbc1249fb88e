package types

import "testing"

func validPosting() JobPosting {
	return JobPosting{
		JobID: "edj-123456",
		Title: "Principal - Elementary School",
	}
}

func TestJobPostingValidate(t *testing.T) {
	job := validPosting()
	if err := job.Validate(); err != nil {
		t.Fatalf("valid posting rejected: %v", err)
	}

	missing := JobPosting{Title: "No ID"}
	if err := missing.Validate(); err == nil {
		t.Error("posting without job_id should be rejected")
	}

	untitled := JobPosting{JobID: "x-1"}
	if err := untitled.Validate(); err == nil {
		t.Error("posting without title should be rejected")
	}
}

func TestJobPostingNegativeSalary(t *testing.T) {
	bad := -1000.0
	job := validPosting()
	job.SalaryMin = &bad
	if err := job.Validate(); err == nil {
		t.Error("negative salary should be rejected")
	}
}

func TestValidateBatch(t *testing.T) {
	tests := []struct {
		name    string
		jobs    []JobPosting
		wantErr bool
	}{
		{
			name: "valid batch",
			jobs: []JobPosting{
				{JobID: "a-1", Title: "Principal"},
				{JobID: "b-2", Title: "Superintendent"},
			},
		},
		{
			name:    "empty batch",
			jobs:    nil,
			wantErr: true,
		},
		{
			name: "duplicate job_id",
			jobs: []JobPosting{
				{JobID: "a-1", Title: "Principal"},
				{JobID: "a-1", Title: "Superintendent"},
			},
			wantErr: true,
		},
		{
			name: "one invalid posting",
			jobs: []JobPosting{
				{JobID: "a-1", Title: "Principal"},
				{JobID: "", Title: "No ID"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBatch(tt.jobs)
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidRecommendation(t *testing.T) {
	for _, r := range []Recommendation{RecommendStrongApply, RecommendApply, RecommendConsider, RecommendSkip} {
		if !ValidRecommendation(r) {
			t.Errorf("%q should be valid", r)
		}
	}
	for _, r := range []Recommendation{"", "MAYBE", "strong_apply", "STRONG APPLY"} {
		if ValidRecommendation(r) {
			t.Errorf("%q should be invalid", r)
		}
	}
}

func TestGenerateRequestValidate(t *testing.T) {
	job := validPosting()

	ok := GenerateRequest{Job: &job, Type: GenerateCoverLetter}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	noJob := GenerateRequest{Type: GenerateCoverLetter}
	if err := noJob.Validate(); err == nil {
		t.Error("request without job should be rejected")
	}

	noType := GenerateRequest{Job: &job}
	if err := noType.Validate(); err == nil {
		t.Error("request without type should be rejected")
	}
}

func TestValidGenerateType(t *testing.T) {
	if !ValidGenerateType(GenerateCoverLetter) || !ValidGenerateType(GenerateResumeHighlights) {
		t.Error("supported types should be valid")
	}
	if ValidGenerateType("resume") || ValidGenerateType("") {
		t.Error("unsupported types should be invalid")
	}
}
