package resource

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound covers both a missing record and a record owned by someone else.
	ErrNotFound = errors.New("record not found")
	// ErrStorage wraps any failure of the underlying store.
	ErrStorage = errors.New("storage error")
)

// ValidationError reports a request that cannot be applied as given.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "invalid input"
}

// MissingFields returns a *ValidationError naming each absent required field,
// or nil when fields is empty.
func MissingFields(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{
		Fields:  fields,
		Message: joinFields(fields) + " " + verb(len(fields)) + " required",
	}
}

// ErrNoFieldsToUpdate is returned for an update that carries no fields.
var ErrNoFieldsToUpdate = &ValidationError{Message: "No fields to update"}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps a store failure so callers can match it with errors.Is(err, ErrStorage).
func StorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

func joinFields(fields []string) string {
	switch len(fields) {
	case 1:
		return fields[0]
	case 2:
		return fields[0] + " and " + fields[1]
	default:
		return strings.Join(fields[:len(fields)-1], ", ") + ", and " + fields[len(fields)-1]
	}
}

func verb(n int) string {
	if n == 1 {
		return "is"
	}
	return "are"
}
