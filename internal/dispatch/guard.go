package dispatch

import (
	"reflect"

	"github.com/dshills/stagehand/internal/event"
)

type guardKind uint8

const (
	guardLiteral guardKind = iota
	guardPred
	guardBoundPred
)

// Guard is a single predicate over one named attribute of an
// occurrence. Guards are evaluated in declaration order and
// short-circuit: the first failing guard skips the binding without
// side effects. A guard whose attribute is absent from the occurrence
// is a dispatch error, not a skip.
type Guard struct {
	attr      string
	kind      guardKind
	literal   Value
	pred      func(v Value) bool
	boundPred func(recv, v Value) bool
}

// Eq creates a literal guard: the attribute must equal want. Numeric
// values compare by value regardless of width, so an int literal
// matches an int64 that crossed a serialization boundary.
func Eq(attr string, want Value) Guard {
	return Guard{attr: attr, kind: guardLiteral, literal: want}
}

// When creates a predicate guard receiving the attribute value. On a
// bound binding the predicate still sees only the value.
func When(attr string, pred func(v Value) bool) Guard {
	return Guard{attr: attr, kind: guardPred, pred: pred}
}

// WhenBound creates a predicate guard receiving the bound instance
// and the attribute value. On a free binding recv is nil.
func WhenBound(attr string, pred func(recv, v Value) bool) Guard {
	return Guard{attr: attr, kind: guardBoundPred, boundPred: pred}
}

// WhenRecv adapts a typed bound predicate. The guard fails when the
// instance is not a T.
func WhenRecv[T any](attr string, pred func(recv T, v Value) bool) Guard {
	return WhenBound(attr, func(recv, v Value) bool {
		inst, ok := recv.(T)
		if !ok {
			return false
		}
		return pred(inst, v)
	})
}

// Attr returns the attribute name the guard inspects.
func (g Guard) Attr() string {
	return g.attr
}

// check evaluates the guard against the occurrence for the given
// bound instance (nil for free bindings).
func (g Guard) check(recv Value, ev event.Event) (bool, error) {
	v, ok := ev.Attrs.Get(g.attr)
	if !ok {
		return false, &MissingAttrError{Kind: ev.Kind, Attr: g.attr}
	}

	switch g.kind {
	case guardLiteral:
		return equalValues(g.literal, v), nil
	case guardPred:
		if g.pred == nil {
			return false, nil
		}
		return g.pred(v), nil
	case guardBoundPred:
		if g.boundPred == nil {
			return false, nil
		}
		return g.boundPred(recv, v), nil
	}
	return false, nil
}

// equalValues compares two attribute values, normalizing numeric
// widths so values that crossed the Lua or JSON boundary still match
// Go-side literals.
func equalValues(a, b Value) bool {
	if an, ok := event.Numeric(a); ok {
		bn, ok := event.Numeric(b)
		return ok && an == bn
	}
	if _, ok := event.Numeric(b); ok {
		return false
	}
	return reflect.DeepEqual(a, b)
}
