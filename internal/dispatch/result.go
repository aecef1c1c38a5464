package dispatch

import "fmt"

// Status indicates the control-flow outcome of a handler or a
// dispatch pass.
type Status uint8

const (
	// StatusContinue lets the current pass proceed.
	StatusContinue Status = iota
	// StatusQuit requests a clean end of the run loop.
	StatusQuit
	// StatusSwitch requests activation of the named sibling scene.
	StatusSwitch
	// StatusError indicates a handler or dispatch failure.
	StatusError
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "continue"
	case StatusQuit:
		return "quit"
	case StatusSwitch:
		return "switch"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of a handler call. It replaces raised
// control-flow signals: a handler returns Quit or SwitchTo and every
// level of the dispatch chain re-propagates any non-Continue result
// until it is consumed.
type Result struct {
	// Status indicates the outcome.
	Status Status

	// Target is the scene name requested by a switch result.
	Target string

	// Err contains the failure of an error result.
	Err error
}

// IsContinue returns true if the pass should proceed.
func (r Result) IsContinue() bool {
	return r.Status == StatusContinue
}

// IsQuit returns true if a clean shutdown was requested.
func (r Result) IsQuit() bool {
	return r.Status == StatusQuit
}

// IsSwitch returns true if a scene switch was requested.
func (r Result) IsSwitch() bool {
	return r.Status == StatusSwitch
}

// IsError returns true if the result carries an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Continue creates a result that lets the pass proceed.
func Continue() Result {
	return Result{Status: StatusContinue}
}

// Quit creates a result requesting a clean shutdown.
func Quit() Result {
	return Result{Status: StatusQuit}
}

// SwitchTo creates a result requesting activation of the named scene.
func SwitchTo(target string) Result {
	return Result{Status: StatusSwitch, Target: target}
}

// Fail creates an error result.
func Fail(err error) Result {
	return Result{Status: StatusError, Err: err}
}

// Failf creates an error result with a formatted message.
func Failf(format string, args ...any) Result {
	return Result{Status: StatusError, Err: fmt.Errorf(format, args...)}
}
