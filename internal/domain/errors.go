package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrGone          = errors.New("gone")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// StalePreviewError reports that the set of courses matching a preview's
// criteria has drifted since the preview was computed.
type StalePreviewError struct {
	Token   string
	Missing []uuid.UUID // in the snapshot, no longer matching
	Added   []uuid.UUID // matching now, absent from the snapshot
}

func (e *StalePreviewError) Error() string {
	return fmt.Sprintf("stale preview %s: %d snapshot rows no longer match, %d new rows match",
		e.Token, len(e.Missing), len(e.Added))
}

func (e *StalePreviewError) Unwrap() error { return ErrConflict }

// TransitionError is returned when a bulk action would move a course into a
// status its current status does not allow.
type TransitionError struct {
	CourseID uuid.UUID
	From     CourseStatus
	To       CourseStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("course %s: transition %s -> %s not allowed", e.CourseID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrConflict }

// ExecutionFailedError wraps the cause of an aborted bulk execution together
// with the FAILED history record written for it.
type ExecutionFailedError struct {
	HistoryID uuid.UUID
	Cause     error
}

func (e *ExecutionFailedError) Error() string {
	return fmt.Sprintf("bulk execution failed (history %s): %v", e.HistoryID, e.Cause)
}

func (e *ExecutionFailedError) Unwrap() error { return e.Cause }
