package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// The engines report expected business outcomes with these typed errors so
// handlers can map each one to a status code while keeping the reason text
// intact. Anything else is treated as an internal store failure.

type NotFoundError struct {
	Entity string
	Reason string
}

func NewNotFound(entity, reason string) *NotFoundError {
	return &NotFoundError{Entity: entity, Reason: reason}
}

func (e *NotFoundError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return e.Entity + " not found"
}

type ValidationError struct {
	Reason string
}

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Reason }

// ConflictError covers duplicate assignments, duplicate enrollments and
// duplicate unique keys. Sections carries the conflicting section codes
// when an assignment collides.
type ConflictError struct {
	Reason   string
	Sections []string
}

func NewConflict(format string, args ...any) *ConflictError {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

func NewDuplicateAssignment(sections []string) *ConflictError {
	return &ConflictError{
		Reason:   fmt.Sprintf("sections already assigned for this subject: %s", strings.Join(sections, ", ")),
		Sections: sections,
	}
}

func (e *ConflictError) Error() string { return e.Reason }

type AuthError struct {
	Reason string
}

func NewAuth(reason string) *AuthError { return &AuthError{Reason: reason} }

func (e *AuthError) Error() string { return e.Reason }

func IsNotFound(err error) bool {
	var t *NotFoundError
	return errors.As(err, &t)
}

func IsValidation(err error) bool {
	var t *ValidationError
	return errors.As(err, &t)
}

func IsConflict(err error) bool {
	var t *ConflictError
	return errors.As(err, &t)
}

func IsAuth(err error) bool {
	var t *AuthError
	return errors.As(err, &t)
}
