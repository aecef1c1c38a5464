package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/stagehand/internal/event"
)

// Terminal implements Backend on a tcell screen.
type Terminal struct {
	mu      sync.Mutex
	screen  tcell.Screen
	surface *terminalSurface
	clock   Clock
	buttons tcell.ButtonMask
	inited  bool
}

// NewTerminal creates a terminal backend on the default screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminal(screen), nil
}

// newTerminal wraps an existing screen.
func newTerminal(screen tcell.Screen) *Terminal {
	t := &Terminal{
		screen: screen,
		clock:  NewFrameClock(),
	}
	t.surface = &terminalSurface{screen: screen}
	return t
}

// Init initializes the screen, enabling mouse and focus reporting.
// Idempotent.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inited {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnableFocus()
	t.inited = true
	return nil
}

// Teardown restores the terminal. Idempotent.
func (t *Terminal) Teardown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.inited {
		return
	}
	t.screen.Fini()
	t.inited = false
}

// Poll drains every pending screen event and converts it. With a
// kind filter, non-matching occurrences are dropped. Poll never
// blocks: it returns nil when nothing is pending.
func (t *Terminal) Poll(kinds ...event.Kind) []event.Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.inited {
		return nil
	}

	var out []event.Event
	for t.screen.HasPendingEvent() {
		raw := t.screen.PollEvent()
		if raw == nil {
			break
		}
		ev, ok := t.convert(raw)
		if !ok {
			continue
		}
		if !matchKind(ev.Kind, kinds) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// Surface returns the screen draw target.
func (t *Terminal) Surface() Surface {
	return t.surface
}

// Present flushes drawn content to the terminal.
func (t *Terminal) Present() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inited {
		t.screen.Show()
	}
}

// Clock returns the wall-clock frame clock.
func (t *Terminal) Clock() Clock {
	return t.clock
}

// convert translates a tcell event into an occurrence. Ctrl+C becomes
// a quit occurrence, the terminal analog of a window close.
func (t *Terminal) convert(raw tcell.Event) (event.Event, bool) {
	switch e := raw.(type) {
	case *tcell.EventKey:
		if e.Key() == tcell.KeyCtrlC {
			return event.NewQuit(), true
		}
		key, text := convertKey(e)
		return event.NewKeyDown(key, text, convertMod(e.Modifiers())), true

	case *tcell.EventMouse:
		return t.convertMouse(e), true

	case *tcell.EventResize:
		w, h := e.Size()
		return event.NewResize(w, h), true

	case *tcell.EventFocus:
		return event.NewFocus(e.Focused), true

	case *tcell.EventInterrupt:
		return event.NewQuit(), true
	}
	return event.Event{}, false
}

// convertMouse classifies a tcell mouse event against the previous
// button state: newly pressed buttons report as presses, newly
// released as releases, anything else as motion. Wheel movement
// reports as a press of the wheel pseudo-button.
func (t *Terminal) convertMouse(e *tcell.EventMouse) event.Event {
	x, y := e.Position()
	buttons := e.Buttons()

	if buttons&tcell.WheelUp != 0 {
		return event.NewMouse(event.KindMouseDown, x, y, event.ButtonWheelUp)
	}
	if buttons&tcell.WheelDown != 0 {
		return event.NewMouse(event.KindMouseDown, x, y, event.ButtonWheelDown)
	}

	pressed := buttons &^ t.buttons
	released := t.buttons &^ buttons
	t.buttons = buttons

	switch {
	case pressed != 0:
		return event.NewMouse(event.KindMouseDown, x, y, convertButton(pressed))
	case released != 0:
		return event.NewMouse(event.KindMouseUp, x, y, convertButton(released))
	default:
		return event.NewMouse(event.KindMouseMotion, x, y, event.ButtonNone)
	}
}

// convertKey maps a tcell key event to a key code and printable text.
func convertKey(e *tcell.EventKey) (event.Key, string) {
	switch e.Key() {
	case tcell.KeyRune:
		return event.KeyRune, string(e.Rune())
	case tcell.KeyEnter:
		return event.KeyEnter, ""
	case tcell.KeyEscape:
		return event.KeyEscape, ""
	case tcell.KeyTab:
		return event.KeyTab, ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return event.KeyBackspace, ""
	case tcell.KeyDelete:
		return event.KeyDelete, ""
	case tcell.KeyInsert:
		return event.KeyInsert, ""
	case tcell.KeyHome:
		return event.KeyHome, ""
	case tcell.KeyEnd:
		return event.KeyEnd, ""
	case tcell.KeyPgUp:
		return event.KeyPageUp, ""
	case tcell.KeyPgDn:
		return event.KeyPageDown, ""
	case tcell.KeyUp:
		return event.KeyUp, ""
	case tcell.KeyDown:
		return event.KeyDown, ""
	case tcell.KeyLeft:
		return event.KeyLeft, ""
	case tcell.KeyRight:
		return event.KeyRight, ""
	case tcell.KeyF1:
		return event.KeyF1, ""
	case tcell.KeyF2:
		return event.KeyF2, ""
	case tcell.KeyF3:
		return event.KeyF3, ""
	case tcell.KeyF4:
		return event.KeyF4, ""
	case tcell.KeyF5:
		return event.KeyF5, ""
	case tcell.KeyF6:
		return event.KeyF6, ""
	case tcell.KeyF7:
		return event.KeyF7, ""
	case tcell.KeyF8:
		return event.KeyF8, ""
	case tcell.KeyF9:
		return event.KeyF9, ""
	case tcell.KeyF10:
		return event.KeyF10, ""
	case tcell.KeyF11:
		return event.KeyF11, ""
	case tcell.KeyF12:
		return event.KeyF12, ""
	default:
		return event.KeyNone, ""
	}
}

// convertMod maps tcell modifiers to the event modifier mask.
func convertMod(m tcell.ModMask) event.Mod {
	var out event.Mod
	if m&tcell.ModShift != 0 {
		out |= event.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= event.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= event.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= event.ModMeta
	}
	return out
}

// convertButton maps the lowest set tcell button to an event button.
func convertButton(b tcell.ButtonMask) event.Button {
	switch {
	case b&tcell.Button1 != 0:
		return event.ButtonLeft
	case b&tcell.Button2 != 0:
		return event.ButtonMiddle
	case b&tcell.Button3 != 0:
		return event.ButtonRight
	default:
		return event.ButtonNone
	}
}

// terminalSurface adapts a tcell screen to the Surface interface.
type terminalSurface struct {
	screen tcell.Screen
}

func (s *terminalSurface) Size() (int, int) {
	return s.screen.Size()
}

func (s *terminalSurface) Clear() {
	s.screen.Clear()
}

func (s *terminalSurface) SetCell(x, y int, r rune, style Style) {
	s.screen.SetContent(x, y, r, nil, convertStyle(style))
}

func (s *terminalSurface) Fill(x, y, width, height int, r rune, style Style) {
	st := convertStyle(style)
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			s.screen.SetContent(col, row, r, nil, st)
		}
	}
}

func (s *terminalSurface) DrawText(x, y int, text string, style Style) int {
	st := convertStyle(style)
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
		s.screen.SetContent(cx, y, runes[0], runes[1:], st)
		cx += w
	}
	return cx - x
}

func (s *terminalSurface) ShowCursor(x, y int) {
	s.screen.ShowCursor(x, y)
}

func (s *terminalSurface) HideCursor() {
	s.screen.HideCursor()
}

// convertStyle converts a Style to a tcell style.
func convertStyle(s Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.FG.IsDefault() {
		style = style.Foreground(tcell.NewRGBColor(int32(s.FG.R), int32(s.FG.G), int32(s.FG.B)))
	}
	if !s.BG.IsDefault() {
		style = style.Background(tcell.NewRGBColor(int32(s.BG.R), int32(s.BG.G), int32(s.BG.B)))
	}

	if s.Attrs.Has(AttrBold) {
		style = style.Bold(true)
	}
	if s.Attrs.Has(AttrDim) {
		style = style.Dim(true)
	}
	if s.Attrs.Has(AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attrs.Has(AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attrs.Has(AttrReverse) {
		style = style.Reverse(true)
	}

	return style
}
