package filter

import (
	"fmt"
)

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Err        error
	}

	// EvaluationError indicates a filter could not be evaluated against a system
	EvaluationError struct {
		Expression string
		System     string
		Reason     string
		Err        error
	}

	// UnknownFilterError indicates a named filter was never registered
	UnknownFilterError struct {
		Name string
	}
)

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for filter '%s' on system '%s': %s", e.Expression, e.System, e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("filter '%s' not found", e.Name)
}
