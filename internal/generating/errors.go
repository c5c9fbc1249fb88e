package generating

import "fmt"

// InvalidRequestError represents a missing job or an unsupported generation
// type. Maps to HTTP 400.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Message)
}

// ConfigurationError represents a missing model credential. Maps to HTTP 500
// and is never retried.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// UpstreamError represents a non-success answer from the model service, with
// the raw upstream error text carried unchanged.
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
