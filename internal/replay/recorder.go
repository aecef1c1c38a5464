// Package replay records event traces and plays them back. A trace is
// a JSON-lines file: a header line with a format version, then one
// line per event carrying the frame it arrived on, its offset from
// the start of the session, its kind, and its attributes. Traces make
// an interactive session reproducible: Source feeds a recorded trace
// back through the ordinary backend interface, one frame batch per
// poll.
package replay

import (
	"sync"
	"time"

	"github.com/dshills/stagehand/internal/event"
)

// Entry is one recorded event with the frame it arrived on.
type Entry struct {
	Frame int
	Event event.Event
}

// Recorder accumulates events as they are dispatched. BeginFrame marks
// frame boundaries; Record tags each event with the current frame and
// the elapsed time since the recorder started.
type Recorder struct {
	mu      sync.Mutex
	start   time.Time
	frame   int
	entries []entry
}

// entry is the in-memory form of a recorded event.
type entry struct {
	frame  int
	offset time.Duration
	ev     event.Event
}

// NewRecorder returns an empty recorder. The session clock starts now.
func NewRecorder() *Recorder {
	return &Recorder{start: time.Now()}
}

// BeginFrame advances the frame counter. Call once per loop iteration
// before recording that frame's events.
func (r *Recorder) BeginFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame++
}

// Record appends ev to the trace, tagged with the current frame.
func (r *Recorder) Record(ev event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry{
		frame:  r.frame,
		offset: time.Since(r.start),
		ev:     ev,
	})
}

// Len reports the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Frame reports the current frame number.
func (r *Recorder) Frame() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// Entries returns a copy of the recorded trace.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = Entry{Frame: e.frame, Event: e.ev}
	}
	return out
}

// snapshot returns the raw entries for serialization.
func (r *Recorder) snapshot() []entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entry, len(r.entries))
	copy(out, r.entries)
	return out
}
