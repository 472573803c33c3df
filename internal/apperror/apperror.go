// Package apperror defines the error taxonomy shared by every layer.
//
// SENTINELS + CARRIER:
// Each failure kind is a sentinel (ErrMissingField, ErrConflict, ...). A concrete
// failure is an *AppError that wraps exactly one sentinel and carries the
// human-readable message the client will see:
//
//	err := apperror.MissingField("username", "Username required")
//	errors.Is(err, apperror.ErrMissingField) // true
//	err.Error()                              // "Username required"
//
// Every kind has a fixed HTTP-style status. The transport layer reads it through
// Status()/StatusOf() and never has to re-derive it from the message.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors, one per failure kind.
var (
	ErrMissingField  = errors.New("missing field")
	ErrInvalidFormat = errors.New("invalid format")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrUnauthorized  = errors.New("unauthorized")
)

// AppError is a failure the client is allowed to see.
type AppError struct {
	Err     error  // one of the sentinels above
	Message string // stable, human-readable message
	Field   string // offending request field, empty when not field-specific
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns the fixed status for the error kind.
//
// NotFound is reported as 400, not 404: a missing referenced entity is treated
// as a client validation failure like any other.
func (e *AppError) Status() int {
	switch {
	case errors.Is(e.Err, ErrConflict):
		return http.StatusConflict
	case errors.Is(e.Err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// StatusOf walks the chain and returns the status of the first *AppError,
// or 500 when err carries none.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status()
	}
	return http.StatusInternalServerError
}

// MissingField reports a required field that was absent or empty.
func MissingField(field, message string) *AppError {
	return &AppError{Err: ErrMissingField, Message: message, Field: field}
}

// InvalidFormat reports a field that is present but malformed.
func InvalidFormat(field, message string) *AppError {
	return &AppError{Err: ErrInvalidFormat, Message: message, Field: field}
}

// NotFound reports a referenced entity that does not exist.
// The message follows the "<Resource> not found" convention, e.g. "User not found".
func NotFound(resource string) *AppError {
	return &AppError{Err: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// Conflict reports a uniqueness violation on field.
func Conflict(field, message string) *AppError {
	return &AppError{Err: ErrConflict, Message: message, Field: field}
}

// Unauthorized reports failed authentication.
func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Message: message}
}
