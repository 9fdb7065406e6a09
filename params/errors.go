package params

import (
	"errors"
	"fmt"
)

// ErrMissingField indicates a required field was absent from the input
var ErrMissingField = errors.New("field required")

// InvalidKeyError is returned when the input names a field the model does not declare.
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return "Invalid key: " + e.Key
}

// ValidationError describes a value that has the right shape but is not acceptable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConversionError wraps any failure met while building a model from wire values.
type ConversionError struct {
	Field string // empty for model-level failures
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid parameters: %v", e.Err)
	}
	return fmt.Sprintf("error processing key '%s': %v", e.Field, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
