// Package errors provides the parse error kinds shared by all parsers.
package errors

import (
	stderrors "errors"
	"fmt"
)

// maxMessageLength limits how much offending input is echoed into an error
// message. Model output can be arbitrarily long.
const maxMessageLength = 512

// ParseError represents a parse failure with a stable machine-readable code.
type ParseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return e.Message
}

// Predefined parse errors
var (
	ErrNotAFunctionCall        = &ParseError{Code: "NOT_A_FUNCTION_CALL", Message: "Not a function call"}
	ErrInvalidCoordinates      = &ParseError{Code: "INVALID_COORDINATES", Message: "Invalid coordinate format"}
	ErrInsufficientCoordinates = &ParseError{Code: "INSUFFICIENT_COORDINATES", Message: "Coordinate text contains fewer than 2 numbers"}
	ErrMalformedArguments      = &ParseError{Code: "MALFORMED_ARGUMENTS", Message: "Function call arguments are not valid JSON"}
	ErrNoActionDetected        = &ParseError{Code: "NO_ACTION_DETECTED", Message: "No action detected in model output"}
)

// NewParseError creates a ParseError with a custom message while keeping the
// code of the given base error, so callers can still match on the kind.
func NewParseError(base *ParseError, format string, args ...any) *ParseError {
	msg := fmt.Sprintf(format, args...)
	if len(msg) > maxMessageLength {
		msg = msg[:maxMessageLength]
	}
	return &ParseError{Code: base.Code, Message: msg}
}

// NewMissingParameter builds the empty-required-parameter error. The message
// wording is a wire contract with downstream consumers; do not change it.
func NewMissingParameter(param, actionType string) *ParseError {
	return &ParseError{
		Code:    "MISSING_REQUIRED_PARAMETER",
		Message: fmt.Sprintf("The required parameters of %s of %s action is empty", param, actionType),
	}
}

// Is reports whether err is a ParseError with the same code as target. This
// makes errors.Is work across NewParseError-derived values.
func (e *ParseError) Is(target error) bool {
	var pe *ParseError
	if !stderrors.As(target, &pe) {
		return false
	}
	return e.Code == pe.Code
}

// CodeOf returns the parse error code of err, or "" if err is not a ParseError.
func CodeOf(err error) string {
	var pe *ParseError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
