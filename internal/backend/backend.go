// Package backend abstracts the platform layer the run loop sits on:
// occurrence polling, a drawable surface, frame pacing, and session
// setup and teardown. The loop owns the cadence; backends only answer
// "what happened" and "draw this".
package backend

import (
	"time"

	"github.com/dshills/stagehand/internal/event"
)

// Backend is the contract between the run loop and the platform
// layer. Init and Teardown are idempotent: calling either when the
// backend is already in the requested state is a no-op.
type Backend interface {
	// Init prepares the backend for a session.
	Init() error

	// Teardown releases the backend. Safe to call more than once.
	Teardown()

	// Poll returns the full batch of pending occurrences without
	// blocking. With kinds given, only matching occurrences are
	// returned; whether non-matching ones are retained or dropped is
	// backend-specific. The run loop always polls unfiltered.
	Poll(kinds ...event.Kind) []event.Event

	// Surface returns the draw target for frame hooks.
	Surface() Surface

	// Present makes the drawn frame visible.
	Present()

	// Clock returns the frame clock for this backend.
	Clock() Clock
}

// Surface is the draw target handed to frame hooks.
type Surface interface {
	// Size returns the surface dimensions in cells.
	Size() (width, height int)

	// Clear erases the surface.
	Clear()

	// SetCell places a single rune at the given cell.
	SetCell(x, y int, r rune, style Style)

	// Fill covers a rectangle with the given rune.
	Fill(x, y, width, height int, r rune, style Style)

	// DrawText writes a string starting at the given cell, advancing
	// by grapheme width. Returns the number of columns consumed.
	DrawText(x, y int, text string, style Style) int

	// ShowCursor places the hardware cursor.
	ShowCursor(x, y int)

	// HideCursor hides the hardware cursor.
	HideCursor()
}

// Clock paces the run loop.
type Clock interface {
	// Tick advances to the next frame boundary for the target rate
	// and returns the time elapsed since the previous tick. A
	// non-positive fps ticks without pacing.
	Tick(fps int) time.Duration

	// Elapsed returns the time since the clock started.
	Elapsed() time.Duration
}

// matchKind reports whether k is in kinds. An empty filter matches
// everything.
func matchKind(k event.Kind, kinds []event.Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
