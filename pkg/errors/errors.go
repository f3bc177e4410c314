// Package errors defines the coded error type shared by the stack engine,
// the render pipeline, the CLI and the frame service.
//
// A [Code] is a stable, machine-readable string. It also fixes how the frame
// service reports the failure: INVALID_* and MULTIPLE_SECTIONS become 400,
// the NOT_FOUND family 404, UNSUPPORTED 501, and everything else 500.
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "scale factor must be in (0, 1], got %v", f)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) { ... }
//
//	status := errors.HTTPStatus(err)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidViewport Code = "INVALID_VIEWPORT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle    Code = "INVALID_STYLE"

	// The layout models a single flat sequence of items.
	ErrCodeMultipleSections Code = "MULTIPLE_SECTIONS"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

var codeStatus = map[Code]int{
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidConfig:    http.StatusBadRequest,
	ErrCodeInvalidViewport:  http.StatusBadRequest,
	ErrCodeInvalidFormat:    http.StatusBadRequest,
	ErrCodeInvalidStyle:     http.StatusBadRequest,
	ErrCodeMultipleSections: http.StatusBadRequest,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeFileNotFound:     http.StatusNotFound,
	ErrCodeUnsupported:      http.StatusNotImplemented,
}

// Status returns the HTTP status the frame service answers with for c.
func (c Code) Status() int {
	if s, ok := codeStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error carries a [Code], a message for the user and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is like [New] but records cause for errors.Is and errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the first *Error in err's tree, or "".
// Joined errors are searched too.
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether err's code is code.
func Is(err error, code Code) bool {
	c := GetCode(err)
	return c != "" && c == code
}

// IsValidation reports whether err is a caller mistake.
func IsValidation(err error) bool {
	c := GetCode(err)
	return c != "" && c.Status() == http.StatusBadRequest
}

// HTTPStatus maps err to a response status. Uncoded errors are 500.
func HTTPStatus(err error) int {
	return GetCode(err).Status()
}

// UserMessage strips the code prefix from coded errors.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
