// Package services provides the model service used by the CLI and the HTTP API.
package services

import (
	"errors"
	"fmt"

	"github.com/dukex/rtcontrol/pkg/document"
	"github.com/dukex/rtcontrol/pkg/persistence"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// Validation Errors (400 Bad Request).
	ErrInvalidRequest = errors.New("invalid request")
	ErrModelNil       = errors.New("model cannot be nil")

	// Lookup Errors (404 Not Found).
	ErrModelNotFound        = persistence.ErrModelNotFound
	ErrControlGroupNotFound = errors.New("control group not found")
	ErrOutputNotFound       = errors.New("output not found")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrModelNil) ||
		persistence.IsInvalidModelID(err) ||
		document.IsInvalidDocument(err) ||
		errors.Is(err, document.ErrUnsupportedFormat)
}

// IsNotFoundError checks if an error should return HTTP 404.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrModelNotFound) ||
		errors.Is(err, ErrControlGroupNotFound) ||
		errors.Is(err, ErrOutputNotFound)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
