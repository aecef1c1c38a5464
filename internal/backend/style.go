package backend

import "fmt"

// Attr represents text attributes (bold, reverse, etc.).
type Attr uint8

// Text attribute flags.
const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
)

// Has returns true if the attribute set contains the given attribute.
func (a Attr) Has(attr Attr) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attr) With(attr Attr) Attr {
	return a | attr
}

// Color represents a true color value or the terminal default.
type Color struct {
	R, G, B uint8
	// Default indicates the terminal's default color.
	Default bool
}

// ColorDefault is the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack  = Color{R: 0, G: 0, B: 0}
	ColorWhite  = Color{R: 255, G: 255, B: 255}
	ColorRed    = Color{R: 255, G: 0, B: 0}
	ColorGreen  = Color{R: 0, G: 255, B: 0}
	ColorBlue   = Color{R: 0, G: 0, B: 255}
	ColorYellow = Color{R: 255, G: 255, B: 0}
	ColorCyan   = Color{R: 0, G: 255, B: 255}
	ColorGray   = Color{R: 128, G: 128, B: 128}
)

// RGB creates a true color from components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// IsDefault returns true if this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Style describes how a cell is drawn. Use DefaultStyle for the
// terminal default colors; the zero value is black on black.
type Style struct {
	FG    Color
	BG    Color
	Attrs Attr
}

// DefaultStyle is the terminal default style.
var DefaultStyle = Style{FG: ColorDefault, BG: ColorDefault}

// WithFG returns a copy of the style with the foreground set.
func (s Style) WithFG(c Color) Style {
	s.FG = c
	return s
}

// WithBG returns a copy of the style with the background set.
func (s Style) WithBG(c Color) Style {
	s.BG = c
	return s
}

// WithAttrs returns a copy of the style with the attributes added.
func (s Style) WithAttrs(a Attr) Style {
	s.Attrs = s.Attrs.With(a)
	return s
}
