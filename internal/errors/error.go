package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime Category = "runtime"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
)

// TempoError is a structured error with a code, suggestion, and
// documentation link.
type TempoError struct {
	// Code is a unique error identifier (e.g., "T001").
	Code string

	// Category is the error type (runtime, config, cli).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *TempoError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *TempoError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *TempoError) WithSuggestion(s string) *TempoError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *TempoError) WithDetail(d string) *TempoError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *TempoError) Wrap(err error) *TempoError {
	e.Wrapped = err
	return e
}

// New creates a TempoError from a registered error code.
func New(code string) *TempoError {
	template, ok := registry[code]
	if !ok {
		return &TempoError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &TempoError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new TempoError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *TempoError {
	return &TempoError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a TempoError.
func FromError(err error, code string) *TempoError {
	if err == nil {
		return nil
	}
	if te, ok := err.(*TempoError); ok {
		return te
	}
	return New(code).Wrap(err)
}
