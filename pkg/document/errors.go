package document

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrInvalidDocument   = errors.New("invalid document")
	ErrInvalidTimeStep   = errors.New("invalid time step")
	ErrUnknownType       = errors.New("unknown type")
	ErrDuplicateID       = errors.New("duplicate node id")
)

// SchemaError lists the places where a document does not match the document schema.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("document does not match schema: %s", strings.Join(e.Violations, "; "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// IsInvalidDocument reports whether err comes from a malformed document rather than from I/O.
func IsInvalidDocument(err error) bool {
	return errors.Is(err, ErrInvalidDocument) ||
		errors.Is(err, ErrInvalidTimeStep) ||
		errors.Is(err, ErrUnknownType) ||
		errors.Is(err, ErrDuplicateID)
}
