// Package errors provides standardized error handling for board actions.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Transport failures: the request never produced an HTTP response.
	ErrCodeNetworkFailure ErrorCode = "NETWORK_FAILURE"

	// Application failures: the server answered non-2xx.
	ErrCodeAPIError ErrorCode = "API_ERROR"

	// Client-side failures: the request was never issued.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeActionInFlight   ErrorCode = "ACTION_IN_FLIGHT"

	// Session store failures.
	ErrCodeSessionLoadFailed ErrorCode = "SESSION_LOAD_FAILED"
	ErrCodeSessionSaveFailed ErrorCode = "SESSION_SAVE_FAILED"
)

// StandardError represents a structured application error. Retryable means a
// manual retry may succeed; the client never retries automatically.
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

// NewNetworkError wraps a transport failure. The message is intentionally
// generic; the underlying error goes to Details for logs only.
func NewNetworkError(action string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetworkFailure,
		Message:   "Network error. Please try again.",
		Details:   fmt.Sprintf("action: %s, error: %s", action, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAPIError carries a non-2xx response. message is the server-supplied
// error string, shown verbatim; callers apply their generic fallback before
// constructing when the server omitted one.
func NewAPIError(action, message string, statusCode int) *StandardError {
	return &StandardError{
		Code:      ErrCodeAPIError,
		Message:   message,
		Details:   fmt.Sprintf("action: %s, status: %d", action, statusCode),
		Retryable: statusCode >= 500,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError reports a client-side validation failure; the request is
// never issued.
func NewValidationError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewActionInFlightError rejects a duplicate submission while the same action
// is still awaiting its response.
func NewActionInFlightError(action string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActionInFlight,
		Message:   "This action is already in progress",
		Details:   fmt.Sprintf("action: %s", action),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionLoadError creates a retryable session store read error.
func NewSessionLoadError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionLoadFailed,
		Message:   "Failed to load saved session",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionSaveError creates a retryable session store write error.
func NewSessionSaveError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionSaveFailed,
		Message:   "Failed to persist session",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
