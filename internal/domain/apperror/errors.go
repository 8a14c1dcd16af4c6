// Package apperror defines the error taxonomy shared by services and handlers.
// Services wrap these sentinels with context; handlers map them to HTTP status
// codes with errors.Is.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when no authenticated actor is present.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the actor is authenticated but not
	// entitled to the operation (wrong owner, wrong author, not a member).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when an entity or relationship does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for malformed input: empty report reason,
	// out-of-range rating, missing comment content.
	ErrValidation = errors.New("validation error")

	// ErrConflict is returned for uniqueness violations not absorbed by a
	// get-or-create path.
	ErrConflict = errors.New("conflict")
)

// Forbiddenf wraps ErrForbidden with a formatted message.
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrForbidden)...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Validationf wraps ErrValidation with a formatted message naming the
// offending field.
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}
