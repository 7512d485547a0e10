package errors

import (
	goerrors "errors"
	"time"
)

// AsStandardError converts any error into a *StandardError. Unknown errors
// become network failures, since anything the client cannot classify came
// from the transport layer.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if goerrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeNetworkFailure,
		Message:   "Network error. Please try again.",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if !goerrors.As(err, &stdErr) {
		return false
	}
	return stdErr.Code == code
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	return IsCode(err, ErrCodeValidationFailed)
}

// UserMessage extracts the message suitable for showing to the user. Errors
// that are not StandardErrors fall back to a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var stdErr *StandardError
	if goerrors.As(err, &stdErr) && stdErr.Message != "" {
		return stdErr.Message
	}
	return "Something went wrong. Please try again."
}
