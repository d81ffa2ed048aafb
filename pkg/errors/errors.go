// Package errors provides structured error types for pokedex.
//
// Every failure that reaches the command line or the interactive browser is
// classified with a [Code] so callers can decide how to present it (and
// whether offering a retry makes sense) without string matching.
//
// # Error Codes
//
//   - INVALID_INPUT: malformed names, out-of-range pages
//   - NOT_FOUND: the upstream API has no such resource
//   - NETWORK_ERROR: transport failures and non-success statuses
//   - PARSE_ERROR: a response body that does not have the expected shape
//   - STATE_ERROR: an operation that is invalid in the current UI state
//   - INTERNAL_ERROR: anything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid name: %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	err = errors.Wrap(errors.ErrCodeNetwork, cause, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeTimeout      Code = "TIMEOUT"
	ErrCodeParse        Code = "PARSE_ERROR"
	ErrCodeState        Code = "STATE_ERROR"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// coder is implemented by error types that carry a code without being *Error.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error, or any error with a
// Code method, whose code matches.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if nothing in the chain carries a code.
func GetCode(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Retryable reports whether offering a retry for err makes sense.
// Network failures and timeouts are transient; everything else fails the
// same way on a second attempt.
func Retryable(err error) bool {
	switch GetCode(err) {
	case ErrCodeNetwork, ErrCodeTimeout:
		return true
	}
	return false
}
