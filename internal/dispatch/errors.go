package dispatch

import (
	"errors"
	"fmt"

	"github.com/dshills/stagehand/internal/event"
)

// Sentinel errors for matching with errors.Is.
var (
	// ErrUnknownOwner indicates an instance was recorded for an owner
	// key that was never tracked.
	ErrUnknownOwner = errors.New("unknown owner")

	// ErrMissingAttr indicates a guard or parameter named an attribute
	// the occurrence does not carry.
	ErrMissingAttr = errors.New("missing attribute")
)

// UnknownOwnerError reports a RecordInstance call for an untracked
// owner key.
type UnknownOwnerError struct {
	Owner string
}

func (e *UnknownOwnerError) Error() string {
	return fmt.Sprintf("owner %q is not tracked", e.Owner)
}

// Is reports whether target is ErrUnknownOwner.
func (e *UnknownOwnerError) Is(target error) bool {
	return target == ErrUnknownOwner
}

// MissingAttrError reports a guard or parameter referencing an
// attribute absent from the dispatched occurrence.
type MissingAttrError struct {
	Kind event.Kind
	Attr string
}

func (e *MissingAttrError) Error() string {
	return fmt.Sprintf("%s event has no attribute %q", e.Kind, e.Attr)
}

// Is reports whether target is ErrMissingAttr.
func (e *MissingAttrError) Is(target error) bool {
	return target == ErrMissingAttr
}
