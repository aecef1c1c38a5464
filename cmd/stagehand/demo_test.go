package main

import (
	"testing"

	"github.com/dshills/stagehand/internal/app"
	"github.com/dshills/stagehand/internal/backend"
	"github.com/dshills/stagehand/internal/config"
	"github.com/dshills/stagehand/internal/event"
)

// newDemo wires the demo scenes onto a fresh app over the null
// backend and initializes the tree so the bindings are live.
func newDemo(t *testing.T) (*app.App, *backend.Null) {
	t.Helper()
	null := backend.NewNull()
	a, err := app.New(config.Default(), app.WithBackend(null))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	if err := installDemo(a); err != nil {
		t.Fatalf("installDemo: %v", err)
	}
	a.Registry().Init()
	return a, null
}

func playerAt(t *testing.T, null *backend.Null, x, y int) bool {
	t.Helper()
	r, _ := null.CellAt(x, y)
	return r == '@'
}

func TestDemoClickTeleports(t *testing.T) {
	a, null := newDemo(t)
	root := a.Root()

	root.RunEvent(event.NewKeyDown(event.KeyEnter, "", 0))
	root.RunFrame(null.Surface())
	if !playerAt(t, null, 10, 5) {
		t.Fatal("player not at its start position after entering play")
	}

	root.RunEvent(event.NewMouse(event.KindMouseDown, 30, 7, event.ButtonLeft))
	root.RunFrame(null.Surface())
	if !playerAt(t, null, 30, 7) {
		t.Errorf("click at (30,7) did not teleport the player")
	}
	if playerAt(t, null, 10, 5) {
		t.Errorf("player still drawn at the old position")
	}
}

func TestDemoClickOnHintRowIgnored(t *testing.T) {
	a, null := newDemo(t)
	root := a.Root()

	root.RunEvent(event.NewKeyDown(event.KeyEnter, "", 0))
	root.RunEvent(event.NewMouse(event.KindMouseDown, 30, 0, event.ButtonLeft))
	root.RunFrame(null.Surface())

	if !playerAt(t, null, 10, 5) {
		t.Errorf("hint row click moved the player off (10,5)")
	}
	if playerAt(t, null, 30, 1) {
		t.Errorf("hint row click was clamped into the arena instead of ignored")
	}
}

func TestDemoRightClickIgnored(t *testing.T) {
	a, null := newDemo(t)
	root := a.Root()

	root.RunEvent(event.NewKeyDown(event.KeyEnter, "", 0))
	root.RunEvent(event.NewMouse(event.KindMouseDown, 30, 7, event.ButtonRight))
	root.RunFrame(null.Surface())

	if playerAt(t, null, 30, 7) {
		t.Errorf("right click teleported the player")
	}
	if !playerAt(t, null, 10, 5) {
		t.Errorf("player moved off (10,5)")
	}
}
