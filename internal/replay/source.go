package replay

import (
	"sync"

	"github.com/dshills/stagehand/internal/backend"
	"github.com/dshills/stagehand/internal/event"
)

// Source plays a recorded trace back through the backend interface.
// Each Poll returns the next recorded frame's batch verbatim; kind
// filters are ignored so traces replay exactly as captured. After the
// last batch, Poll emits a single quit event so the loop shuts down
// the way the recorded session did, then nothing.
//
// Rendering, clock, and lifecycle come from an embedded off-screen
// backend, so playback runs headless at full speed.
type Source struct {
	*backend.Null

	mu          sync.Mutex
	frames      [][]event.Event
	next        int
	emittedQuit bool
}

// NewSource builds a playback backend from a loaded trace. Entries
// sharing a frame number form one batch, in recorded order.
func NewSource(entries []Entry) *Source {
	return &Source{
		Null:   backend.NewNull(),
		frames: groupFrames(entries),
	}
}

// groupFrames batches consecutive entries that share a frame number.
func groupFrames(entries []Entry) [][]event.Event {
	var frames [][]event.Event
	lastSeen := -1
	for _, e := range entries {
		if e.Frame != lastSeen {
			frames = append(frames, nil)
			lastSeen = e.Frame
		}
		frames[len(frames)-1] = append(frames[len(frames)-1], e.Event)
	}
	return frames
}

// Poll returns the next frame batch from the trace.
func (s *Source) Poll(kinds ...event.Kind) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next < len(s.frames) {
		batch := s.frames[s.next]
		s.next++
		return batch
	}
	if !s.emittedQuit {
		s.emittedQuit = true
		return []event.Event{event.NewQuit()}
	}
	return nil
}

// Remaining reports how many frame batches have not yet been played.
func (s *Source) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames) - s.next
}
