// Package errors defines the application error taxonomy shared by the API
// client and the use cases.
package errors

import (
	"net/http"
	"sort"
	"strings"

	"baito/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code reported by (or mapped onto) the backend
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches errors by business code, so a detail-carrying copy still matches
// its predefined var under errors.Is.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && e.errorCode == other.errorCode
}

// Predefined error types
var (
	// Transport errors: no usable response from the backend. Always caught,
	// never propagated as a panic; surfaced as a connectivity message.
	ErrTransport = NewBaseError(
		http.StatusServiceUnavailable,
		"TRANSPORT_FAILURE",
		"Could not reach the server. Check your connection and try again.",
		"",
	)

	// Authentication errors trigger session teardown, not just a message.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Your session has expired. Please log in again.",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password.",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Invalid or expired refresh token.",
		"",
	)

	ErrSessionInactive = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_INACTIVE",
		"You are not logged in.",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You do not have access to this resource.",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"The requested resource was not found.",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"The resource changed on the server. Reload and try again.",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusUnprocessableEntity,
		"VALIDATION_FAILED",
		"The submitted data failed validation.",
		"",
	)

	// ErrApplicationNotPending guards the state machine: accept, reject and
	// worker cancel are only offered while the application is pending.
	ErrApplicationNotPending = NewBaseError(
		http.StatusConflict,
		"APPLICATION_NOT_PENDING",
		"This application has already been responded to.",
		"",
	)

	// ErrJobCreationFailed marks the split-brain outcome of Respond: the
	// application was accepted but the job could not be created. It must
	// never be conflated with the generic failure message.
	ErrJobCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"JOB_CREATION_FAILED",
		"Application accepted, but the job could not be created. Contact support.",
		"",
	)

	// ErrCancelled reports a user-dismissed confirmation gate. No network
	// call was made and no state changed.
	ErrCancelled = NewBaseError(
		http.StatusOK,
		"CANCELLED",
		"Cancelled.",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong. Please try again.",
		"",
	)
)

// ValidationError carries the per-field messages of a structured 422 response.
// When the server's shape allows, field messages are surfaced verbatim;
// otherwise the generic validation message is used.
type ValidationError struct {
	fields map[string]string
}

// NewValidationError creates a validation error from per-field messages.
func NewValidationError(fields map[string]string) AppError {
	return &ValidationError{fields: fields}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message()
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusUnprocessableEntity
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the user-friendly error message
func (e *ValidationError) Message() string {
	if len(e.fields) == 0 {
		return ErrValidationFailed.Message()
	}

	fields := make([]string, 0, len(e.fields))
	for field := range e.fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.fields[field])
	}

	return strings.Join(parts, "; ")
}

// Details returns detailed error information
func (e *ValidationError) Details() string {
	return e.Message()
}

// Fields returns the per-field messages.
func (e *ValidationError) Fields() map[string]string {
	return e.fields
}

// IsAuthFailure reports whether the error should tear the session down rather
// than only being shown to the user.
func IsAuthFailure(err error) bool {
	var appErr AppError
	if !errors.As(err, &appErr) {
		return false
	}

	return appErr.HTTPCode() == http.StatusUnauthorized
}

// IsTransport reports whether the error is a connectivity failure with no
// usable server response.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
