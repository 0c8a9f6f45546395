package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	CodeUnknown Code = "unknown"

	// Fetch layer
	CodeFetchFailed       Code = "fetch_failed"
	CodeUnauthorized      Code = "unauthorized"
	CodeNotFound          Code = "not_found"
	CodeDecodeFailed      Code = "decode_failed"
	CodeEmptyPayload      Code = "empty_payload"
	CodeSourceUnavailable Code = "source_unavailable"

	// Setup
	CodeConfigurationError Code = "configuration_error"
	CodeInvalidProject     Code = "invalid_project"
)

// Error pairs a machine-readable code with a human message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Retryable reports whether a later attempt could succeed without user action.
func Retryable(err error) bool {
	switch CodeOf(err) {
	case CodeFetchFailed, CodeSourceUnavailable:
		return true
	default:
		return false
	}
}
