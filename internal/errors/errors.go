// Package errors provides the coded error taxonomy returned by the game core.
//
// Every failure the core reports to a caller is recoverable and local: an
// action was requested at the wrong time, with an unknown class, or without
// enough mana. Callers classify errors with errors.Is against the exported
// sentinels, or with GetCode.
package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Error represents a structured error with code, message, and metadata
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithMeta adds metadata to the error
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error, preserving its code if it's an Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Code:    existingErr.Code,
			Message: message,
			Cause:   err,
			Meta:    maps.Clone(existingErr.Meta),
		}
	}

	return &Error{
		Code:    CodeInternal,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrInvalidClassSelection = New(CodeInvalidClassSelection, "invalid class selection")
	ErrInsufficientMana      = New(CodeInsufficientMana, "insufficient mana")
	ErrInvalidState          = New(CodeInvalidState, "invalid state")
	ErrOutOfBounds           = New(CodeOutOfBounds, "position out of bounds")
)

// InvalidClassSelectionf creates an invalid class selection error with formatted message
func InvalidClassSelectionf(format string, args ...any) *Error {
	return Newf(CodeInvalidClassSelection, format, args...)
}

// InsufficientMana creates an insufficient mana error recording what was
// needed and what was available.
func InsufficientMana(action string, have, need int) *Error {
	return Newf(CodeInsufficientMana, "%s needs %d mana, have %d", action, need, have).
		WithMeta("action", action).
		WithMeta("have", have).
		WithMeta("need", need)
}

// InvalidState creates an invalid state error
func InvalidState(message string) *Error {
	return New(CodeInvalidState, message)
}

// InvalidStatef creates an invalid state error with formatted message
func InvalidStatef(format string, args ...any) *Error {
	return Newf(CodeInvalidState, format, args...)
}

// OutOfBoundsf creates an out of bounds position error with formatted message
func OutOfBoundsf(format string, args ...any) *Error {
	return Newf(CodeOutOfBounds, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates an invalid argument error with formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Internalf creates an internal error with formatted message
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}
