// Package lifecycle implements the ticket classification and lifecycle
// engine: derived temporal status, warranty sub-lifecycle, queue
// partitioning and the dashboard aggregates. Everything here is pure; the
// package holds no state, performs no I/O and is safe to call concurrently
// on independent ticket values. Transition functions return a new ticket
// value and leave their input untouched, so callers can diff old and new
// state before persisting.
package lifecycle

import "fmt"

// ValidationError reports a transition request missing a required field.
// The caller should re-prompt, never proceed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// ConflictError reports a transition attempted from a state that does not
// permit it. The ticket is unchanged when this is returned.
type ConflictError struct {
	Op     string
	Status string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s not allowed from %s", e.Op, e.Status)
}
