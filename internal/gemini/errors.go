package gemini

import (
	"errors"
	"fmt"
)

var (
	errMissingAPIKey = errors.New("api key is required")
	errMissingModel  = errors.New("model name is required")
	errEmptyPrompt   = errors.New("prompt cannot be empty")
	errEmptyResponse = errors.New("no text in response candidates")
)

// BackendError represents a failed or unusable generative backend call.
type BackendError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generative backend: %s", e.Op)
	}
	return fmt.Sprintf("generative backend: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsBackendError checks if an error is a backend error.
func IsBackendError(err error) bool {
	var backendErr *BackendError
	return errors.As(err, &backendErr)
}
