// Package errors provides standardized error handling for the REST and
// chat surfaces.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeResourceNotFound     ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	ErrCodeDuplicateUser        ErrorCode = "DUPLICATE_USER"

	ErrCodeDataAccessFailed ErrorCode = "DATA_ACCESS_FAILED"

	ErrCodeUpstreamCompletionFailed ErrorCode = "UPSTREAM_COMPLETION_FAILED"
	ErrCodeCompletionTimeout        ErrorCode = "COMPLETION_TIMEOUT"
	ErrCodeMalformedModelOutput     ErrorCode = "MALFORMED_MODEL_OUTPUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a non-retryable request validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates a non-retryable resource not found error.
func NewNotFoundError(resource, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResourceNotFound,
		Message:   fmt.Sprintf("%s not found", resource),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthenticationError creates a non-retryable credential error.
// The details never name which credential field was wrong.
func NewAuthenticationError() *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthenticationFailed,
		Message:   "Invalid username or password",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateUserError creates a non-retryable register collision error.
func NewDuplicateUserError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateUser,
		Message:   "Username or email already registered",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDataAccessError creates a retryable database error.
func NewDataAccessError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDataAccessFailed,
		Message:   "Database operation failed",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamCompletionError creates a retryable completion API error.
func NewUpstreamCompletionError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamCompletionFailed,
		Message:   "Completion service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompletionTimeoutError creates a retryable completion timeout error.
func NewCompletionTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeCompletionTimeout,
		Message:   "Completion service timeout",
		Details:   "call exceeded the configured timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedModelOutputError records a model response that failed the
// JSON contract. Callers absorb this into a default route decision; it
// must never reach the HTTP boundary.
func NewMalformedModelOutputError(raw string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedModelOutput,
		Message:   "Model response violated the JSON contract",
		Details:   raw,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Boundary Mapping
// ==========================

// HTTPStatus maps an error code to the status the REST layer returns.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeAuthenticationFailed:
		return http.StatusUnauthorized
	case ErrCodeResourceNotFound:
		return http.StatusNotFound
	case ErrCodeDuplicateUser:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf extracts the ErrorCode from err, or ErrCodeInternal when err is
// not a StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
