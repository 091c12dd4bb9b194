package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrModelNotFound indicates a model was not found by the given identifier.
	ErrModelNotFound = errors.New("model not found")

	// ErrInvalidModelID indicates an identifier that cannot name a stored model.
	ErrInvalidModelID = errors.New("invalid model id")
)

// ModelError wraps model-related errors with the operation and model involved.
type ModelError struct {
	Op      string // Operation being performed (e.g., "ModelByID", "SaveModel")
	ModelID string
	Err     error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s operation failed for model %s: %v", e.Op, e.ModelID, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a new model error with context.
func NewModelError(op, modelID string, err error) *ModelError {
	return &ModelError{Op: op, ModelID: modelID, Err: err}
}

// IsModelNotFound checks if an error indicates a model was not found.
func IsModelNotFound(err error) bool {
	return errors.Is(err, ErrModelNotFound)
}

// IsInvalidModelID checks if an error indicates a malformed model identifier.
func IsInvalidModelID(err error) bool {
	return errors.Is(err, ErrInvalidModelID)
}
