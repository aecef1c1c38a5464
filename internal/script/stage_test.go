package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/stagehand/internal/backend"
	"github.com/dshills/stagehand/internal/event"
	"github.com/dshills/stagehand/internal/scene"
)

// wire runs code, initializes the tree, and returns the root scene.
func wire(t *testing.T, e *Engine, reg *scene.Registry, code string) *scene.Scene {
	t.Helper()
	if err := e.DoString(code); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	reg.Init()
	root, err := reg.Get("root")
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func TestHandlerStagesQuit(t *testing.T) {
	e, reg := newEngine(t)
	root := wire(t, e, reg, `
		stage.scene("menu")
		stage.attach("root", "menu")
		stage.activate("menu")
		stage.on("menu", stage.KEYDOWN, {params = {"key"}}, function(key)
			if key == stage.K_ENTER then
				stage.quit()
			end
		end)
	`)

	res := root.RunEvent(event.NewKeyDown(event.KeyEscape, "", 0))
	if !res.IsContinue() {
		t.Fatalf("escape: %+v, want continue", res)
	}
	res = root.RunEvent(event.NewKeyDown(event.KeyEnter, "", 0))
	if !res.IsQuit() {
		t.Fatalf("enter: %+v, want quit", res)
	}
}

func TestGuardsFromScript(t *testing.T) {
	e, reg := newEngine(t)
	root := wire(t, e, reg, `
		hits = 0
		stage.on("root", stage.KEYDOWN,
			{when = {{attr = "key", eq = stage.K_ESCAPE}}},
			function()
				hits = hits + 1
			end)
	`)

	root.RunEvent(event.NewKeyDown(event.KeyEnter, "", 0))
	root.RunEvent(event.NewKeyDown(event.KeyEscape, "", 0))

	if err := e.DoString(`if hits ~= 1 then error("hits = " .. hits) end`); err != nil {
		t.Errorf("guard did not filter: %v", err)
	}
}

func TestPredicateGuardFromScript(t *testing.T) {
	e, reg := newEngine(t)
	root := wire(t, e, reg, `
		hits = 0
		stage.on("root", stage.KEYDOWN,
			{when = {{attr = "key", fn = function(v) return v == stage.K_ENTER end}}},
			function()
				hits = hits + 1
			end)
	`)

	root.RunEvent(event.NewKeyDown(event.KeyEscape, "", 0))
	root.RunEvent(event.NewKeyDown(event.KeyEnter, "", 0))

	if err := e.DoString(`if hits ~= 1 then error("hits = " .. hits) end`); err != nil {
		t.Errorf("predicate did not filter: %v", err)
	}
}

func TestPredicateGuardErrorSkipsBinding(t *testing.T) {
	reg := scene.NewRegistry()
	if _, err := reg.Create("root"); err != nil {
		t.Fatal(err)
	}
	var logged []string
	e := New(reg, WithLogFunc(func(level, msg string) {
		logged = append(logged, level+": "+msg)
	}))
	defer e.Close()

	root := wire(t, e, reg, `
		hits = 0
		stage.on("root", stage.KEYDOWN,
			{when = {{attr = "key", fn = function() error("guard broke") end}}},
			function()
				hits = hits + 1
			end)
	`)

	if res := root.RunEvent(event.NewKeyDown(event.KeyEnter, "", 0)); !res.IsContinue() {
		t.Fatalf("RunEvent = %+v, want continue", res)
	}
	if err := e.DoString(`if hits ~= 0 then error("handler ran") end`); err != nil {
		t.Errorf("erroring guard fired the handler: %v", err)
	}

	found := false
	for _, l := range logged {
		if strings.Contains(l, "guard broke") {
			found = true
		}
	}
	if !found {
		t.Errorf("guard error not logged: %v", logged)
	}
}

func TestWhenEntryShapeErrors(t *testing.T) {
	e, _ := newEngine(t)
	err := e.DoString(`stage.on("root", stage.KEYDOWN, {when = {{attr = "key"}}}, function() end)`)
	if err == nil {
		t.Error("when entry with neither eq nor fn did not error")
	}
	err = e.DoString(`
		stage.on("root", stage.KEYDOWN,
			{when = {{attr = "key", eq = 1, fn = function() return true end}}},
			function() end)
	`)
	if err == nil {
		t.Error("when entry with both eq and fn did not error")
	}
}

func TestSwitchFromScript(t *testing.T) {
	e, reg := newEngine(t)
	root := wire(t, e, reg, `
		stage.scene("menu")
		stage.scene("play")
		stage.attach("root", "menu")
		stage.attach("root", "play")
		stage.activate("menu")
		stage.on("menu", stage.KEYDOWN, function()
			stage.switch_to("play")
		end)
	`)

	res := root.RunEvent(event.NewKeyDown(event.KeyEnter, "", 0))
	if !res.IsContinue() {
		t.Fatalf("RunEvent = %+v, want continue after resolved switch", res)
	}

	menu, _ := reg.Get("menu")
	play, _ := reg.Get("play")
	if !play.IsActive() || menu.IsActive() {
		t.Errorf("states: menu=%v play=%v, want false/true", menu.IsActive(), play.IsActive())
	}
}

func TestFrameHookDraws(t *testing.T) {
	e, reg := newEngine(t)
	root := wire(t, e, reg, `
		stage.frame("root", function()
			stage.clear()
			local w, h = stage.size()
			stage.draw_text(1, 0, "size " .. w .. "x" .. h)
		end)
	`)

	n := backend.NewNull()
	res := root.RunFrame(n.Surface())
	if !res.IsContinue() {
		t.Fatalf("RunFrame = %+v", res)
	}
	if got := n.Row(0); got != " size 80x24" {
		t.Errorf("Row(0) = %q, want %q", got, " size 80x24")
	}
}

func TestQuitFromFrameHook(t *testing.T) {
	e, reg := newEngine(t)
	root := wire(t, e, reg, `
		stage.frame("root", function()
			stage.quit()
		end)
	`)

	n := backend.NewNull()
	if res := root.RunFrame(n.Surface()); !res.IsQuit() {
		t.Errorf("RunFrame = %+v, want quit", res)
	}
}

func TestControlSignalsRequireHandlerContext(t *testing.T) {
	e, _ := newEngine(t)
	if err := e.DoString(`stage.quit()`); err == nil {
		t.Error("top-level quit() did not error")
	}
	if err := e.DoString(`stage.switch_to("menu")`); err == nil {
		t.Error("top-level switch_to() did not error")
	}
	if err := e.DoString(`stage.draw_text(0, 0, "x")`); err == nil {
		t.Error("draw_text outside a frame did not error")
	}
}

func TestHandlerErrorBecomesFailure(t *testing.T) {
	e, reg := newEngine(t)
	root := wire(t, e, reg, `
		stage.on("root", stage.QUIT, function()
			error("handler broke")
		end)
	`)

	res := root.RunEvent(event.NewQuit())
	if !res.IsError() {
		t.Fatalf("RunEvent = %+v, want error", res)
	}
	if !errors.Is(res.Err, ErrScript) {
		t.Errorf("Err = %v, want ErrScript", res.Err)
	}
	if !strings.Contains(res.Err.Error(), "handler broke") {
		t.Errorf("Err = %v, want message to mention the Lua error", res.Err)
	}
}

func TestHandlersInertAfterClose(t *testing.T) {
	e, reg := newEngine(t)
	root := wire(t, e, reg, `
		stage.on("root", stage.QUIT, function()
			stage.quit()
		end)
	`)

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if res := root.RunEvent(event.NewQuit()); !res.IsContinue() {
		t.Errorf("RunEvent after close = %+v, want continue", res)
	}
}

func TestLogRouting(t *testing.T) {
	reg := scene.NewRegistry()
	if _, err := reg.Create("root"); err != nil {
		t.Fatal(err)
	}

	type line struct{ level, msg string }
	var lines []line
	e := New(reg, WithLogFunc(func(level, msg string) {
		lines = append(lines, line{level, msg})
	}))
	defer e.Close()

	if err := e.DoString(`
		stage.log("plain message")
		stage.log("warn", "leveled message")
	`); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0].level != "info" || lines[0].msg != "plain message" {
		t.Errorf("lines[0] = %+v", lines[0])
	}
	if lines[1].level != "warn" || lines[1].msg != "leveled message" {
		t.Errorf("lines[1] = %+v", lines[1])
	}
}

func TestOnUnknownSceneErrors(t *testing.T) {
	e, _ := newEngine(t)
	err := e.DoString(`stage.on("ghost", stage.QUIT, function() end)`)
	if err == nil {
		t.Error("on(ghost) did not error")
	}
}

func TestMouseParamsReachScript(t *testing.T) {
	e, reg := newEngine(t)
	root := wire(t, e, reg, `
		last_x, last_y = -1, -1
		stage.on("root", stage.MOUSEDOWN,
			{params = {"x", "y"}, when = {{attr = "button", eq = stage.BUTTON_LEFT}}},
			function(x, y)
				last_x, last_y = x, y
			end)
	`)

	root.RunEvent(event.NewMouse(event.KindMouseDown, 12, 7, event.ButtonRight))
	root.RunEvent(event.NewMouse(event.KindMouseDown, 3, 9, event.ButtonLeft))

	if err := e.DoString(`
		if last_x ~= 3 or last_y ~= 9 then
			error("coords " .. last_x .. "," .. last_y)
		end
	`); err != nil {
		t.Errorf("params did not reach handler: %v", err)
	}
}
