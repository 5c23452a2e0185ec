package projection

import (
	"errors"
	"fmt"
)

// ErrInvalidParameters is matched by every request validation failure.
var ErrInvalidParameters = errors.New("invalid simulation parameters")

// ValidationError names the offending field of a rejected request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidParameters) match.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidParameters
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
