// Package event defines the occurrence records that flow through the
// dispatch tables: a kind discriminant plus a bag of named attributes.
package event

import (
	"fmt"
	"time"
)

// Kind identifies the class of an occurrence.
type Kind int

// Standard kinds produced by backends. Application-defined kinds start
// at KindUser.
const (
	// KindNone is the zero kind and never dispatches.
	KindNone Kind = iota
	// KindQuit signals a request to end the session (window close,
	// terminal interrupt).
	KindQuit
	// KindKeyDown is a key press.
	KindKeyDown
	// KindKeyUp is a key release.
	KindKeyUp
	// KindMouseDown is a mouse button press.
	KindMouseDown
	// KindMouseUp is a mouse button release.
	KindMouseUp
	// KindMouseMotion is a pointer movement.
	KindMouseMotion
	// KindResize is a change of the output surface size.
	KindResize
	// KindFocus is a focus gain or loss.
	KindFocus
)

// KindUser is the first kind value available to applications.
const KindUser Kind = 1000

// String returns a stable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindQuit:
		return "quit"
	case KindKeyDown:
		return "key_down"
	case KindKeyUp:
		return "key_up"
	case KindMouseDown:
		return "mouse_down"
	case KindMouseUp:
		return "mouse_up"
	case KindMouseMotion:
		return "mouse_motion"
	case KindResize:
		return "resize"
	case KindFocus:
		return "focus"
	}
	if k >= KindUser {
		return fmt.Sprintf("user(%d)", int(k))
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a name produced by Kind.String back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "none":
		return KindNone, true
	case "quit":
		return KindQuit, true
	case "key_down":
		return KindKeyDown, true
	case "key_up":
		return KindKeyUp, true
	case "mouse_down":
		return KindMouseDown, true
	case "mouse_up":
		return KindMouseUp, true
	case "mouse_motion":
		return KindMouseMotion, true
	case "resize":
		return KindResize, true
	case "focus":
		return KindFocus, true
	}
	var n int
	if _, err := fmt.Sscanf(s, "user(%d)", &n); err == nil {
		return Kind(n), true
	}
	if _, err := fmt.Sscanf(s, "kind(%d)", &n); err == nil {
		return Kind(n), true
	}
	return KindNone, false
}

// Standard attribute names. Backends populate these; handlers, guards,
// and extracted parameters reference them by name.
const (
	// AttrKey holds the Key code of a key event.
	AttrKey = "key"
	// AttrText holds the printable text of a key event, empty for
	// special keys.
	AttrText = "text"
	// AttrMods holds the Mod mask of a key event.
	AttrMods = "mods"
	// AttrButton holds the Button of a mouse event.
	AttrButton = "button"
	// AttrX holds the column of a mouse event.
	AttrX = "x"
	// AttrY holds the row of a mouse event.
	AttrY = "y"
	// AttrWidth holds the new width of a resize event.
	AttrWidth = "width"
	// AttrHeight holds the new height of a resize event.
	AttrHeight = "height"
	// AttrFocused holds whether focus was gained or lost.
	AttrFocused = "focused"
)

// Event is a single occurrence. Events are value records; the core
// treats Attrs as read-only after construction.
type Event struct {
	Kind  Kind
	Attrs Attrs
	When  time.Time
}

// New creates an event with the given kind and attributes, stamped
// with the current time.
func New(kind Kind, attrs Attrs) Event {
	return Event{Kind: kind, Attrs: attrs, When: time.Now()}
}

// NewQuit creates a quit event.
func NewQuit() Event {
	return New(KindQuit, nil)
}

// NewKeyDown creates a key press event. For printable keys the key
// code is KeyRune and text carries the character; for special keys
// text is empty.
func NewKeyDown(key Key, text string, mods Mod) Event {
	return New(KindKeyDown, Attrs{
		AttrKey:  key,
		AttrText: text,
		AttrMods: mods,
	})
}

// NewKeyUp creates a key release event.
func NewKeyUp(key Key, text string, mods Mod) Event {
	return New(KindKeyUp, Attrs{
		AttrKey:  key,
		AttrText: text,
		AttrMods: mods,
	})
}

// NewMouse creates a mouse event of the given kind at the given
// position. The button is ButtonNone for pure motion.
func NewMouse(kind Kind, x, y int, button Button) Event {
	return New(kind, Attrs{
		AttrX:      x,
		AttrY:      y,
		AttrButton: button,
	})
}

// NewResize creates a resize event.
func NewResize(width, height int) Event {
	return New(KindResize, Attrs{
		AttrWidth:  width,
		AttrHeight: height,
	})
}

// NewFocus creates a focus event.
func NewFocus(focused bool) Event {
	return New(KindFocus, Attrs{
		AttrFocused: focused,
	})
}
