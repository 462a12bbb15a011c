package domain

import "fmt"

// ValidationError reports a request the client must fix. Its message is safe to show.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given client-facing message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// UpstreamError wraps a failure talking to a completion, vision or OCR service.
// Only the operation name is meant for logs; callers see a generic message.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
