// Package errors provides custom error types for the docfold system.
// These errors enable programmatic error checking and clean separation
// between caller misuse (edit errors) and noisy upstream data, which is
// never an error.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
// It's an alias for the standard library errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// It's an alias for the standard library errors.As for convenience.
var As = errors.As

// Common sentinel errors for the docfold system
var (
	// ErrUnknownField indicates an edit referenced a field the schema does not define
	ErrUnknownField = errors.New("unknown field")

	// ErrTypeMismatch indicates an edit value cannot be coerced to the field's kind
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrSchemaRequired indicates that a schema must be provided
	ErrSchemaRequired = errors.New("schema required")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// EditError represents a rejected field edit.
type EditError struct {
	Field   string
	Value   any
	Kind    string
	Message string
	Err     error // ErrUnknownField or ErrTypeMismatch
}

// Error implements the error interface
func (e *EditError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("edit rejected for field %s (%s): %s", e.Field, e.Kind, e.Message)
	}
	return fmt.Sprintf("edit rejected for field %s: %s", e.Field, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *EditError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *EditError) Is(target error) bool {
	return target == e.Err || target == ErrInvalidInput
}

// NewUnknownFieldError creates an EditError for a field missing from the schema
func NewUnknownFieldError(field string) *EditError {
	return &EditError{
		Field:   field,
		Message: "not defined in schema",
		Err:     ErrUnknownField,
	}
}

// NewTypeMismatchError creates an EditError for an uncoercible edit value
func NewTypeMismatchError(field, kind string, value any) *EditError {
	return &EditError{
		Field:   field,
		Value:   value,
		Kind:    kind,
		Message: fmt.Sprintf("value of type %T cannot be coerced to %s", value, kind),
		Err:     ErrTypeMismatch,
	}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// CaptureError represents a failed extraction attempt. It is attached to a
// capture and reported alongside the combined record; it never blocks the
// folding of other captures.
type CaptureError struct {
	Label   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *CaptureError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("capture %s failed: %s", e.Label, e.Message)
	}
	return fmt.Sprintf("capture failed: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *CaptureError) Unwrap() error {
	return e.Err
}

// NewCaptureError creates a new CaptureError
func NewCaptureError(label, message string, err error) *CaptureError {
	return &CaptureError{
		Label:   label,
		Message: message,
		Err:     err,
	}
}

// ExtractionError represents an error from the extraction service
type ExtractionError struct {
	Service    string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("extraction error from %s (status %d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("extraction error from %s: %s", e.Service, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsUnknownField checks if an error is an unknown-field edit rejection
func IsUnknownField(err error) bool {
	return errors.Is(err, ErrUnknownField)
}

// IsTypeMismatch checks if an error is a type-mismatch edit rejection
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// Helper wrapping functions for common patterns

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Message: err.Error(), Err: err}
}

// WrapExtraction wraps an error as an ExtractionError
func WrapExtraction(service string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &ExtractionError{
		Service:    service,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}
