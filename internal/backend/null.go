package backend

import (
	"strings"
	"sync"
	"time"

	"github.com/rivo/uniseg"

	"github.com/dshills/stagehand/internal/event"
)

// Null is an in-memory Backend for tests and headless runs. Events
// are injected with Post; drawing lands in a cell grid that tests can
// inspect; the clock is manual by default.
type Null struct {
	mu       sync.Mutex
	queue    []event.Event
	surface  *nullSurface
	clock    Clock
	inits    int
	downs    int
	presents int
	inited   bool
}

// NewNull creates a null backend with an 80x24 surface and a manual
// clock advancing 16ms per tick.
func NewNull() *Null {
	return NewNullSize(80, 24)
}

// NewNullSize creates a null backend with the given surface size.
func NewNullSize(width, height int) *Null {
	return &Null{
		surface: newNullSurface(width, height),
		clock:   NewManualClock(16 * time.Millisecond),
	}
}

// SetClock replaces the backend clock.
func (n *Null) SetClock(c Clock) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.clock = c
}

// Post queues events for the next Poll.
func (n *Null) Post(evs ...event.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queue = append(n.queue, evs...)
}

// Init marks the backend initialized. Idempotent.
func (n *Null) Init() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.inits++
	n.inited = true
	return nil
}

// Teardown marks the backend released. Idempotent.
func (n *Null) Teardown() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.downs++
	n.inited = false
}

// Poll drains and returns the queued events. With a kind filter,
// matching events are drained and returned while non-matching events
// stay queued.
func (n *Null) Poll(kinds ...event.Kind) []event.Event {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.queue) == 0 {
		return nil
	}
	if len(kinds) == 0 {
		out := n.queue
		n.queue = nil
		return out
	}

	var out, keep []event.Event
	for _, ev := range n.queue {
		if matchKind(ev.Kind, kinds) {
			out = append(out, ev)
		} else {
			keep = append(keep, ev)
		}
	}
	n.queue = keep
	return out
}

// Surface returns the in-memory draw target.
func (n *Null) Surface() Surface {
	return n.surface
}

// Present counts a frame flip.
func (n *Null) Present() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.presents++
}

// Clock returns the backend clock.
func (n *Null) Clock() Clock {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.clock
}

// Resize rebuilds the surface at the new size and queues the matching
// resize event, as a real backend would.
func (n *Null) Resize(width, height int) {
	n.mu.Lock()
	n.surface.reset(width, height)
	n.mu.Unlock()
	n.Post(event.NewResize(width, height))
}

// Inited reports whether the backend is currently initialized.
func (n *Null) Inited() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.inited
}

// InitCount returns the number of Init calls.
func (n *Null) InitCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.inits
}

// TeardownCount returns the number of Teardown calls.
func (n *Null) TeardownCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.downs
}

// PresentCount returns the number of Present calls.
func (n *Null) PresentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.presents
}

// Pending returns the number of queued events.
func (n *Null) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.queue)
}

// CellAt returns the rune and style at the given cell.
func (n *Null) CellAt(x, y int) (rune, Style) {
	return n.surface.cellAt(x, y)
}

// Row returns the runes of a surface row as a string, right-trimmed.
func (n *Null) Row(y int) string {
	return n.surface.row(y)
}

// Cursor returns the cursor position and visibility.
func (n *Null) Cursor() (x, y int, shown bool) {
	return n.surface.cursor()
}

// nullSurface is the in-memory cell grid behind Null.
type nullSurface struct {
	mu     sync.Mutex
	width  int
	height int
	cells  [][]rune
	styles [][]Style
	curX   int
	curY   int
	shown  bool
}

func newNullSurface(width, height int) *nullSurface {
	s := &nullSurface{}
	s.reset(width, height)
	return s
}

func (s *nullSurface) reset(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.width = width
	s.height = height
	s.cells = make([][]rune, height)
	s.styles = make([][]Style, height)
	for y := 0; y < height; y++ {
		s.cells[y] = make([]rune, width)
		s.styles[y] = make([]Style, width)
		for x := 0; x < width; x++ {
			s.cells[y][x] = ' '
			s.styles[y][x] = DefaultStyle
		}
	}
}

func (s *nullSurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *nullSurface) Clear() {
	s.mu.Lock()
	w, h := s.width, s.height
	s.mu.Unlock()
	s.reset(w, h)
}

func (s *nullSurface) SetCell(x, y int, r rune, style Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(x, y, r, style)
}

// set places a rune without locking; callers hold the mutex.
func (s *nullSurface) set(x, y int, r rune, style Style) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.cells[y][x] = r
	s.styles[y][x] = style
}

func (s *nullSurface) Fill(x, y, width, height int, r rune, style Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			s.set(col, row, r, style)
		}
	}
}

func (s *nullSurface) DrawText(x, y int, text string, style Style) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := uniseg.NewGraphemes(text)
	cx := x
	for g.Next() {
		runes := g.Runes()
		if len(runes) == 0 {
			continue
		}
		w := g.Width()
		if w <= 0 {
			continue
		}
		s.set(cx, y, runes[0], style)
		cx += w
	}
	return cx - x
}

func (s *nullSurface) ShowCursor(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.curX, s.curY, s.shown = x, y, true
}

func (s *nullSurface) HideCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = false
}

func (s *nullSurface) cellAt(x, y int) (rune, Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return 0, Style{}
	}
	return s.cells[y][x], s.styles[y][x]
}

func (s *nullSurface) row(y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if y < 0 || y >= s.height {
		return ""
	}
	return strings.TrimRight(string(s.cells[y]), " ")
}

func (s *nullSurface) cursor() (int, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.curX, s.curY, s.shown
}
