package scene

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is.
var (
	// ErrSceneExists indicates a scene name is already registered.
	ErrSceneExists = errors.New("scene already exists")

	// ErrSceneNotFound indicates no scene is registered under a name.
	ErrSceneNotFound = errors.New("scene not found")

	// ErrAlreadyActive indicates activation of an active scene.
	ErrAlreadyActive = errors.New("scene already active")

	// ErrAlreadyInactive indicates deactivation of an inactive scene.
	ErrAlreadyInactive = errors.New("scene already inactive")
)

// ExistsError reports a duplicate scene name.
type ExistsError struct {
	Name string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("scene %q already exists", e.Name)
}

// Is reports whether target is ErrSceneExists.
func (e *ExistsError) Is(target error) bool {
	return target == ErrSceneExists
}

// NotFoundError reports a lookup of an unregistered scene name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("scene %q not found", e.Name)
}

// Is reports whether target is ErrSceneNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrSceneNotFound
}

// ActiveError reports activation of an already-active scene.
type ActiveError struct {
	Name string
}

func (e *ActiveError) Error() string {
	return fmt.Sprintf("scene %q is already active", e.Name)
}

// Is reports whether target is ErrAlreadyActive.
func (e *ActiveError) Is(target error) bool {
	return target == ErrAlreadyActive
}

// InactiveError reports deactivation of an already-inactive scene.
type InactiveError struct {
	Name string
}

func (e *InactiveError) Error() string {
	return fmt.Sprintf("scene %q is already inactive", e.Name)
}

// Is reports whether target is ErrAlreadyInactive.
func (e *InactiveError) Is(target error) bool {
	return target == ErrAlreadyInactive
}
