package event

import "reflect"

// Attrs is the named-attribute bag of an event. Values are typically
// ints, strings, bools, Key, Mod, or Button; values arriving over the
// Lua or JSON boundary may be widened to int64 or float64, which the
// typed accessors and Canonicalize smooth over.
type Attrs map[string]any

// Has reports whether the attribute exists.
func (a Attrs) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Get returns the raw attribute value.
func (a Attrs) Get(name string) (any, bool) {
	v, ok := a[name]
	return v, ok
}

// Int returns the attribute as an int, coercing any numeric type.
// Returns 0 for missing or non-numeric attributes.
func (a Attrs) Int(name string) int {
	if n, ok := numeric(a[name]); ok {
		return int(n)
	}
	return 0
}

// String returns the attribute as a string, or "" if missing or not a
// string.
func (a Attrs) String(name string) string {
	if s, ok := a[name].(string); ok {
		return s
	}
	return ""
}

// Bool returns the attribute as a bool, or false if missing or not a
// bool.
func (a Attrs) Bool(name string) bool {
	if b, ok := a[name].(bool); ok {
		return b
	}
	return false
}

// Key returns the attribute as a Key code, coercing any numeric type.
func (a Attrs) Key(name string) Key {
	return Key(a.Int(name))
}

// Mod returns the attribute as a Mod mask, coercing any numeric type.
func (a Attrs) Mod(name string) Mod {
	return Mod(a.Int(name))
}

// Button returns the attribute as a Button, coercing any numeric type.
func (a Attrs) Button(name string) Button {
	return Button(a.Int(name))
}

// Clone returns a shallow copy of the attribute bag.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Canonicalize returns a copy of attrs with the standard attributes
// coerced to their canonical types: AttrKey to Key, AttrMods to Mod,
// AttrButton to Button, positions and sizes to int. Unknown attribute
// names pass through unchanged. Producers that cross a serialization
// boundary (replay files, scripts) use this so that literal guards on
// standard attributes keep matching.
func Canonicalize(attrs Attrs) Attrs {
	if attrs == nil {
		return nil
	}
	out := make(Attrs, len(attrs))
	for name, v := range attrs {
		switch name {
		case AttrKey:
			if n, ok := numeric(v); ok {
				out[name] = Key(n)
				continue
			}
		case AttrMods:
			if n, ok := numeric(v); ok {
				out[name] = Mod(n)
				continue
			}
		case AttrButton:
			if n, ok := numeric(v); ok {
				out[name] = Button(n)
				continue
			}
		case AttrX, AttrY, AttrWidth, AttrHeight:
			if n, ok := numeric(v); ok {
				out[name] = int(n)
				continue
			}
		}
		out[name] = v
	}
	return out
}

// numeric extracts a numeric value of any width as float64.
func numeric(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	case rv.CanFloat():
		return rv.Float(), true
	}
	return 0, false
}

// Numeric extracts a numeric attribute value of any width as float64.
// It exists so guard implementations can compare numbers that crossed
// the Lua or JSON boundary against Go-side literals.
func Numeric(v any) (float64, bool) {
	return numeric(v)
}
