package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend indicates Run was called without a backend.
	ErrNoBackend = errors.New("no backend configured")

	// ErrUnknownScene indicates a scene switch named a scene that no
	// ancestor in the active tree owns.
	ErrUnknownScene = errors.New("unknown scene in switch")
)

// InitError represents a failure while bringing a component up.
type InitError struct {
	// Component names the component that failed (e.g. "backend",
	// "scripts").
	Component string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}

// RoutingError reports a scene switch that climbed past the root
// without finding its target. It is fatal: the tree has no scene by
// that name anywhere above the requester.
type RoutingError struct {
	// Target is the scene name the switch asked for.
	Target string
}

// Error implements the error interface.
func (e *RoutingError) Error() string {
	return fmt.Sprintf("no scene %q reachable from the active tree", e.Target)
}

// Is implements error matching for RoutingError.
func (e *RoutingError) Is(target error) bool {
	return target == ErrUnknownScene
}
