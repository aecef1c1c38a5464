package script

import (
	"errors"
	"fmt"
)

// Errors for script engine operations.
var (
	// ErrEngineClosed is returned when operating on a closed engine.
	ErrEngineClosed = errors.New("script engine is closed")

	// ErrScript indicates a script failed to load or run.
	ErrScript = errors.New("script error")
)

// ScriptError wraps a failure inside a script with its source.
type ScriptError struct {
	// Source is the script path, or "<handler>" for a registered
	// callback.
	Source string
	// Err is the underlying Lua error.
	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Is implements error matching for ScriptError.
func (e *ScriptError) Is(target error) bool {
	return target == ErrScript
}
