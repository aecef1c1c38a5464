package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stagehand/internal/backend"
	"github.com/dshills/stagehand/internal/dispatch"
	"github.com/dshills/stagehand/internal/event"
)

// installStageModule registers the stage module and its constants.
func (e *Engine) installStageModule() {
	L := e.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"scene":      e.luaScene,
		"attach":     e.luaAttach,
		"activate":   e.luaActivate,
		"deactivate": e.luaDeactivate,
		"on":         e.luaOn,
		"frame":      e.luaFrame,
		"quit":       e.luaQuit,
		"switch_to":  e.luaSwitchTo,
		"log":        e.luaLog,
		"draw_text":  e.luaDrawText,
		"clear":      e.luaClear,
		"size":       e.luaSize,
	})
	setStageConstants(mod)
	L.SetGlobal("stage", mod)
}

// setStageConstants exposes event kinds, keys, buttons, and modifiers
// as numeric fields on the module table.
func setStageConstants(mod *lua.LTable) {
	consts := map[string]int{
		// Event kinds
		"QUIT":        int(event.KindQuit),
		"KEYDOWN":     int(event.KindKeyDown),
		"KEYUP":       int(event.KindKeyUp),
		"MOUSEDOWN":   int(event.KindMouseDown),
		"MOUSEUP":     int(event.KindMouseUp),
		"MOUSEMOTION": int(event.KindMouseMotion),
		"RESIZE":      int(event.KindResize),
		"FOCUS":       int(event.KindFocus),

		// Keys
		"K_RUNE":      int(event.KeyRune),
		"K_ENTER":     int(event.KeyEnter),
		"K_ESCAPE":    int(event.KeyEscape),
		"K_TAB":       int(event.KeyTab),
		"K_BACKSPACE": int(event.KeyBackspace),
		"K_DELETE":    int(event.KeyDelete),
		"K_HOME":      int(event.KeyHome),
		"K_END":       int(event.KeyEnd),
		"K_PAGEUP":    int(event.KeyPageUp),
		"K_PAGEDOWN":  int(event.KeyPageDown),
		"K_UP":        int(event.KeyUp),
		"K_DOWN":      int(event.KeyDown),
		"K_LEFT":      int(event.KeyLeft),
		"K_RIGHT":     int(event.KeyRight),

		// Mouse buttons
		"BUTTON_LEFT":      int(event.ButtonLeft),
		"BUTTON_MIDDLE":    int(event.ButtonMiddle),
		"BUTTON_RIGHT":     int(event.ButtonRight),
		"BUTTON_WHEELUP":   int(event.ButtonWheelUp),
		"BUTTON_WHEELDOWN": int(event.ButtonWheelDown),

		// Modifiers
		"MOD_SHIFT": int(event.ModShift),
		"MOD_CTRL":  int(event.ModCtrl),
		"MOD_ALT":   int(event.ModAlt),
		"MOD_META":  int(event.ModMeta),
	}
	for name, v := range consts {
		mod.RawSetString(name, lua.LNumber(v))
	}
}

// scene(name)
// Creates a scene in the registry.
func (e *Engine) luaScene(L *lua.LState) int {
	name := L.CheckString(1)
	if _, err := e.reg.Create(name); err != nil {
		L.RaiseError("scene: %v", err)
	}
	return 0
}

// attach(parent, child)
// Attaches one scene beneath another.
func (e *Engine) luaAttach(L *lua.LState) int {
	parent := L.CheckString(1)
	child := L.CheckString(2)
	if err := e.reg.Attach(parent, child); err != nil {
		L.RaiseError("attach: %v", err)
	}
	return 0
}

// activate(name)
func (e *Engine) luaActivate(L *lua.LState) int {
	name := L.CheckString(1)
	if err := e.reg.Activate(name); err != nil {
		L.RaiseError("activate: %v", err)
	}
	return 0
}

// deactivate(name)
func (e *Engine) luaDeactivate(L *lua.LState) int {
	name := L.CheckString(1)
	if err := e.reg.Deactivate(name); err != nil {
		L.RaiseError("deactivate: %v", err)
	}
	return 0
}

// on(scene, kind, opts?, fn)
// Registers an event handler. opts.params lists attribute names passed
// as handler arguments; opts.when is an ordered array of guards
// checked before the handler fires, each either {attr=..., eq=...}
// (equality) or {attr=..., fn=...} (predicate over the attribute
// value, truthy to pass). A predicate that raises fails its guard and
// the error goes to the log sink.
func (e *Engine) luaOn(L *lua.LState) int {
	sceneName := L.CheckString(1)
	kind := event.Kind(L.CheckInt(2))

	var opts *lua.LTable
	var fn *lua.LFunction
	if L.GetTop() >= 4 {
		opts = L.CheckTable(3)
		fn = L.CheckFunction(4)
	} else {
		fn = L.CheckFunction(3)
	}

	sc, err := e.reg.Get(sceneName)
	if err != nil {
		L.RaiseError("on: %v", err)
		return 0
	}

	var params []string
	var guards []dispatch.Guard
	if opts != nil {
		if p, ok := opts.RawGetString("params").(*lua.LTable); ok {
			params = stringSlice(p)
		}
		if w, ok := opts.RawGetString("when").(*lua.LTable); ok {
			n := w.Len()
			for i := 1; i <= n; i++ {
				entry, ok := w.RawGetInt(i).(*lua.LTable)
				if !ok {
					L.RaiseError("on: when[%d] must be a table", i)
					return 0
				}
				attr, ok := entry.RawGetString("attr").(lua.LString)
				if !ok {
					L.RaiseError("on: when[%d].attr must be a string", i)
					return 0
				}
				eq := entry.RawGetString("eq")
				pred, hasPred := entry.RawGetString("fn").(*lua.LFunction)
				switch {
				case eq != lua.LNil && hasPred:
					L.RaiseError("on: when[%d] takes eq or fn, not both", i)
					return 0
				case eq != lua.LNil:
					guards = append(guards, dispatch.Eq(string(attr), toGo(eq)))
				case hasPred:
					gid := e.storeHandler(pred)
					guards = append(guards, dispatch.When(string(attr), func(v dispatch.Value) bool {
						return e.callGuard(gid, v)
					}))
				default:
					L.RaiseError("on: when[%d] needs eq or fn", i)
					return 0
				}
			}
		}
	}

	id := e.storeHandler(fn)
	sc.Events().Register(kind, func(args ...dispatch.Value) dispatch.Result {
		return e.call(id, args)
	}, params, guards...)
	return 0
}

// frame(scene, fn)
// Installs fn as the scene's per-frame hook. While it runs, the
// drawing functions operate on that frame's surface.
func (e *Engine) luaFrame(L *lua.LState) int {
	sceneName := L.CheckString(1)
	fn := L.CheckFunction(2)

	sc, err := e.reg.Get(sceneName)
	if err != nil {
		L.RaiseError("frame: %v", err)
		return 0
	}

	id := e.storeHandler(fn)
	sc.SetFrame(func(surface backend.Surface) dispatch.Result {
		return e.callFrame(id, surface)
	})
	return 0
}

// quit()
// Stages a quit signal from inside a handler.
func (e *Engine) luaQuit(L *lua.LState) int {
	if !e.inCall {
		L.RaiseError("quit: no event or frame is being handled")
		return 0
	}
	e.pending = dispatch.Quit()
	return 0
}

// switch_to(name)
// Stages a scene switch from inside a handler.
func (e *Engine) luaSwitchTo(L *lua.LState) int {
	name := L.CheckString(1)
	if !e.inCall {
		L.RaiseError("switch_to: no event or frame is being handled")
		return 0
	}
	e.pending = dispatch.SwitchTo(name)
	return 0
}

// log(msg) or log(level, msg)
func (e *Engine) luaLog(L *lua.LState) int {
	level := "info"
	var msg string
	if L.GetTop() >= 2 {
		level = L.CheckString(1)
		msg = L.CheckString(2)
	} else {
		msg = L.CheckString(1)
	}
	e.logf(level, msg)
	return 0
}

// draw_text(x, y, text) -> columns
func (e *Engine) luaDrawText(L *lua.LState) int {
	if e.surface == nil {
		L.RaiseError("draw_text: no frame in progress")
		return 0
	}
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	text := L.CheckString(3)
	w := e.surface.DrawText(x, y, text, backend.DefaultStyle)
	L.Push(lua.LNumber(w))
	return 1
}

// clear()
func (e *Engine) luaClear(L *lua.LState) int {
	if e.surface == nil {
		L.RaiseError("clear: no frame in progress")
		return 0
	}
	e.surface.Clear()
	return 0
}

// size() -> width, height
func (e *Engine) luaSize(L *lua.LState) int {
	if e.surface == nil {
		L.RaiseError("size: no frame in progress")
		return 0
	}
	w, h := e.surface.Size()
	L.Push(lua.LNumber(w))
	L.Push(lua.LNumber(h))
	return 2
}
