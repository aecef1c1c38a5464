package replay

import (
	"errors"
	"fmt"
)

// Errors returned by trace operations.
var (
	// ErrBadFormat indicates a malformed trace file.
	ErrBadFormat = errors.New("malformed trace")

	// ErrUnsupportedVersion indicates a trace written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported trace version")
)

// FormatError reports a malformed line in a trace file.
type FormatError struct {
	Path    string
	Line    int
	Message string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("trace %s line %d: %s", e.Path, e.Line, e.Message)
}

// Is implements error matching for FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrBadFormat
}

// VersionError reports a trace version newer than this build supports.
type VersionError struct {
	Path    string
	Version int
}

// Error implements the error interface.
func (e *VersionError) Error() string {
	return fmt.Sprintf("trace %s version %d (max supported: %d)", e.Path, e.Version, currentVersion)
}

// Is implements error matching for VersionError.
func (e *VersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}
