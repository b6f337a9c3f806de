// Package apperrors implements the §7 error taxonomy as typed values a
// caller can inspect with errors.As, in the same struct-plus-Error() style
// the teacher uses for its domain-specific errors (e.g. RateLimitError).
package apperrors

import (
	"fmt"
	"strings"
)

// InputValidationError means a crew, role, or constraint references a
// non-existent entity, or a slot-alignment invariant fails on input data.
// It is reported before the solver is invoked; no Logbook is created.
type InputValidationError struct {
	Problems []string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("input validation failed: %s", strings.Join(e.Problems, "; "))
}

// PersistenceError means the §4.7 write transaction failed; the entire
// bundle is rolled back and the run is retryable.
type PersistenceError struct {
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed: %v", e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
