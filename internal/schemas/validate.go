// Package schemas provides JSON Schema validation for the model's answer
// elements. The model is an untrusted external service: every element passes
// schema screening before any downstream component trusts it.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed match_result.schema.json
var matchResultSchemaJSON string

var (
	matchSchemaOnce sync.Once
	matchSchema     *gojsonschema.Schema
	matchSchemaErr  error
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, err.Field, err.Message))
	}
	return strings.TrimRight(sb.String(), ";")
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateMatchElement validates one raw element of the model's match array
// against the embedded match_result schema. Returns a *ValidationError when
// the element does not conform, a *SchemaLoadError if the embedded schema is
// unusable, and nil when the element passes.
func ValidateMatchElement(element []byte) error {
	matchSchemaOnce.Do(func() {
		matchSchema, matchSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(matchResultSchemaJSON))
	})
	if matchSchemaErr != nil {
		return &SchemaLoadError{Message: "embedded match_result schema is invalid", Cause: matchSchemaErr}
	}

	result, err := matchSchema.Validate(gojsonschema.NewBytesLoader(element))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
