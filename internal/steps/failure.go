package steps

import (
	"errors"
	"fmt"
)

// FailureClass buckets a failed step into the error taxonomy surfaced on
// entry results: infrastructure failures (checkout, interpreter
// provisioning), dependency-resolution failures, and lint findings.
type FailureClass string

const (
	FailureInfra FailureClass = "infra"
	FailureDeps  FailureClass = "deps"
	FailureLint  FailureClass = "lint"
)

// ParseFailureClass validates a user-supplied class override.
func ParseFailureClass(s string) (FailureClass, error) {
	switch c := FailureClass(s); c {
	case FailureInfra, FailureDeps, FailureLint:
		return c, nil
	default:
		return "", fmt.Errorf("unknown failure class %q (expected infra, deps, or lint)", s)
	}
}

// Error carries a step failure together with its class.
type Error struct {
	Class FailureClass
	Err   error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// failf wraps a formatted error in the given class.
func failf(class FailureClass, format string, args ...any) error {
	return &Error{Class: class, Err: fmt.Errorf(format, args...)}
}

// Classify extracts the failure class from an error chain. Unclassified
// errors count as infrastructure failures.
func Classify(err error) FailureClass {
	var stepErr *Error
	if errors.As(err, &stepErr) {
		return stepErr.Class
	}
	return FailureInfra
}
