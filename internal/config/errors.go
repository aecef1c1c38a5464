package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrParse indicates the configuration file could not be parsed.
	ErrParse = errors.New("config parse error")

	// ErrValidation indicates a setting has an invalid value.
	ErrValidation = errors.New("config validation failed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements error matching for ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError describes an invalid setting value.
type ValidationError struct {
	// Field is the setting that failed validation.
	Field string
	// Message describes the violation.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// Is implements error matching for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
