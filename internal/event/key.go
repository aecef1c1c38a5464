package event

// Key is the code of a key occurrence. Printable keys carry KeyRune
// with the character in AttrText; special keys carry one of the named
// codes with empty text.
type Key int

// Key codes.
const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// String returns a readable name for the key code.
func (k Key) String() string {
	if int(k) >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

var keyNames = [...]string{
	"none", "rune", "enter", "escape", "tab", "backspace", "delete",
	"insert", "home", "end", "pgup", "pgdn", "up", "down", "left",
	"right", "f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9",
	"f10", "f11", "f12",
}

// Mod is a bitmask of key modifiers.
type Mod uint8

// Modifier bits.
const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// ModNone is the empty modifier mask.
const ModNone Mod = 0

// Has reports whether all bits of m2 are set in m.
func (m Mod) Has(m2 Mod) bool {
	return m&m2 == m2
}

// Button identifies a mouse button. Wheel movement reports as the
// wheel pseudo-buttons.
type Button int

// Mouse buttons.
const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
)

// String returns a readable name for the button.
func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonWheelUp:
		return "wheel_up"
	case ButtonWheelDown:
		return "wheel_down"
	}
	return "unknown"
}
