package types

import "github.com/go-playground/validator/v10"

// GenerateType selects which document the /generate endpoint drafts.
type GenerateType string

// Supported generation types.
const (
	GenerateCoverLetter      GenerateType = "cover_letter"
	GenerateResumeHighlights GenerateType = "resume_highlights"
)

// ValidGenerateType reports whether t is a supported generation type.
func ValidGenerateType(t GenerateType) bool {
	return t == GenerateCoverLetter || t == GenerateResumeHighlights
}

// GenerateRequest is the request body for POST /generate.
type GenerateRequest struct {
	Job  *JobPosting  `json:"job" validate:"required"`
	Type GenerateType `json:"type" validate:"required"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// GenerateResponse is the response body for POST /generate.
type GenerateResponse struct {
	Content string       `json:"content"`
	Type    GenerateType `json:"type"`
}
