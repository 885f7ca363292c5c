package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRender    Category = "render"
	CategoryStyle     Category = "style"
	CategoryConfig    Category = "config"
	CategoryTransport Category = "transport"
	CategoryPublish   Category = "publish"
	CategoryCLI       Category = "cli"
)

// Location represents a position in a file, such as a config file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Line == 0 {
		return l.File
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// VnestError is a structured error with a code, explanation and hint.
type VnestError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is where the error occurred, if it relates to a file.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *VnestError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *VnestError) Unwrap() error {
	return e.Wrapped
}

// WithLocation records the file position the error relates to.
func (e *VnestError) WithLocation(file string, line, column int) *VnestError {
	e.Location = &Location{File: file, Line: line, Column: column}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *VnestError) WithSuggestion(s string) *VnestError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *VnestError) WithDetail(d string) *VnestError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *VnestError) Wrap(err error) *VnestError {
	e.Wrapped = err
	return e
}

// New creates a VnestError from a registered error code.
func New(code string) *VnestError {
	template, ok := registry[code]
	if !ok {
		return &VnestError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &VnestError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new VnestError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *VnestError {
	return &VnestError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a VnestError. Errors that already
// carry a VnestError are returned unchanged.
func FromError(err error, code string) *VnestError {
	if err == nil {
		return nil
	}
	var ve *VnestError
	if stderrors.As(err, &ve) {
		return ve
	}
	return New(code).Wrap(err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// HasCode reports whether err carries a VnestError with the given code.
func HasCode(err error, code string) bool {
	var ve *VnestError
	return stderrors.As(err, &ve) && ve.Code == code
}
