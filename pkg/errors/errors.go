// Package errors provides structured error types for fiberroute.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the library
//   - Machine-readable error codes for programmatic handling
//   - Typed routing errors that carry the offending component and port
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND / UNKNOWN_*: Missing resources or names
//   - NO_ROUTABLE_PORTS, ROUTING_INFEASIBLE: routing failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "fiber spacing must be positive: %v", s)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	var np *errors.NoRoutablePortsError
//	if stderrors.As(err, &np) {
//	    fmt.Println("nothing to route on", np.Component)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidComponent Code = "INVALID_COMPONENT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidName      Code = "INVALID_NAME"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeUnknownPort  Code = "UNKNOWN_PORT"

	// Routing errors
	ErrCodeNoRoutablePorts   Code = "NO_ROUTABLE_PORTS"
	ErrCodeRoutingInfeasible Code = "ROUTING_INFEASIBLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// coder is implemented by typed errors that expose a code without being an *Error.
type coder interface {
	error
	ErrorCode() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a typed routing error
// with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the chain holds no coded error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.ErrorCode()
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

// NoRoutablePortsError is returned when the port selector matches nothing on
// the unmodified input component.
type NoRoutablePortsError struct {
	Component string
}

// Error implements the error interface.
func (e *NoRoutablePortsError) Error() string {
	return fmt.Sprintf("no routable ports for %s", e.Component)
}

// ErrorCode returns ErrCodeNoRoutablePorts.
func (e *NoRoutablePortsError) ErrorCode() Code { return ErrCodeNoRoutablePorts }

// UnknownPortError is returned when an explicitly named port does not exist.
type UnknownPortError struct {
	Component string
	Port      string
}

// Error implements the error interface.
func (e *UnknownPortError) Error() string {
	return fmt.Sprintf("port %q not found on %s", e.Port, e.Component)
}

// ErrorCode returns ErrCodeUnknownPort.
func (e *UnknownPortError) ErrorCode() Code { return ErrCodeUnknownPort }
