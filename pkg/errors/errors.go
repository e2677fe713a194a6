// Package errors provides structured error types for dagstats.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Line-level diagnostics for database parsing failures
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes map onto the failure taxonomy of a statistics run:
//   - IO_ERROR: the database file is missing or unreadable
//   - PARSE_ERROR: a line is malformed or the declared count is inconsistent
//   - VALIDATION_ERROR: a value is out of bounds or a reference is invalid
//   - INVALID_INPUT: a command-line, config or request argument is wrong
//
// # Usage
//
//	err := errors.Parse(3, "expected 3 fields, got %d", len(fields))
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // Handle malformed input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeIO           Code = "IO_ERROR"
	ErrCodeParse        Code = "PARSE_ERROR"
	ErrCodeValidation   Code = "VALIDATION_ERROR"
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Line    int    // 1-based input line, 0 when not tied to a line
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
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

// Parse creates a PARSE_ERROR pointing at the given input line.
func Parse(line int, format string, args ...any) *Error {
	e := New(ErrCodeParse, format, args...)
	e.Line = line
	return e
}

// Validation creates a VALIDATION_ERROR. Pass line 0 when the failure is not
// tied to a specific input line.
func Validation(line int, format string, args ...any) *Error {
	e := New(ErrCodeValidation, format, args...)
	e.Line = line
	return e
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetLine extracts the input line from an error, if available.
// Returns 0 if the error is not an *Error or carries no line.
func GetLine(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Line
	}
	return 0
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix but with the
// line and cause when present. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}
