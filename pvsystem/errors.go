package pvsystem

import (
	"errors"
	"fmt"
)

// ErrMissingField indicates a required key was absent from a system configuration
var ErrMissingField = errors.New("field required")

// ValidationError describes an unacceptable PV system value
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is or wraps a *ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
