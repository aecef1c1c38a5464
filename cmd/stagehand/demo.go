package main

import (
	"github.com/dshills/stagehand/internal/app"
	"github.com/dshills/stagehand/internal/backend"
	"github.com/dshills/stagehand/internal/dispatch"
	"github.com/dshills/stagehand/internal/event"
	"github.com/dshills/stagehand/internal/scene"
)

// player is the demo's movable actor, bound to play-scene handlers
// through the instance registry.
type player struct {
	x, y int
}

const playerOwner = "demo.player"

// installDemo builds a two-scene tour of the event API: a menu that
// switches into a small arena where arrow keys move a player and a
// click teleports it.
func installDemo(a *app.App) error {
	reg := a.Registry()

	menu, err := reg.Create("menu")
	if err != nil {
		return err
	}
	play, err := reg.Create("play")
	if err != nil {
		return err
	}
	if err := reg.Attach(app.RootScene, "menu"); err != nil {
		return err
	}
	if err := reg.Attach(app.RootScene, "play"); err != nil {
		return err
	}
	if err := menu.Activate(); err != nil {
		return err
	}

	// Menu: enter starts, q quits.
	menu.Events().Register(event.KindKeyDown, func(args ...dispatch.Value) dispatch.Result {
		return dispatch.SwitchTo("play")
	}, nil, dispatch.Eq(event.AttrKey, event.KeyEnter))
	menu.Events().Register(event.KindKeyDown, func(args ...dispatch.Value) dispatch.Result {
		return dispatch.Quit()
	}, nil, dispatch.Eq(event.AttrText, "q"))

	// Play: arrow keys move the tracked player instance. The bindings
	// are registered before the instance exists; recording it below
	// materializes one binding per instance at load.
	p := &player{x: 10, y: 5}
	events := play.Events()
	events.TrackOwner(playerOwner)

	move := func(dx, dy int) dispatch.MethodFunc {
		return dispatch.Bound(func(pl *player, args ...dispatch.Value) dispatch.Result {
			pl.x += dx
			pl.y += dy
			return dispatch.Continue()
		})
	}
	events.RegisterMethod(playerOwner, event.KindKeyDown, move(0, -1), nil,
		dispatch.Eq(event.AttrKey, event.KeyUp))
	events.RegisterMethod(playerOwner, event.KindKeyDown, move(0, 1), nil,
		dispatch.Eq(event.AttrKey, event.KeyDown))
	events.RegisterMethod(playerOwner, event.KindKeyDown, move(-1, 0), nil,
		dispatch.Eq(event.AttrKey, event.KeyLeft))
	events.RegisterMethod(playerOwner, event.KindKeyDown, move(1, 0), nil,
		dispatch.Eq(event.AttrKey, event.KeyRight))

	// Left click teleports the player to the pointer. Clicks on the
	// hint row are ignored rather than clamped into the arena.
	events.RegisterMethod(playerOwner, event.KindMouseDown,
		dispatch.Bound(func(pl *player, args ...dispatch.Value) dispatch.Result {
			if len(args) == 2 {
				if x, ok := event.Numeric(args[0]); ok {
					pl.x = int(x)
				}
				if y, ok := event.Numeric(args[1]); ok {
					pl.y = int(y)
				}
			}
			return dispatch.Continue()
		}),
		[]string{event.AttrX, event.AttrY},
		dispatch.Eq(event.AttrButton, event.ButtonLeft),
		dispatch.When(event.AttrY, func(v dispatch.Value) bool {
			y, ok := event.Numeric(v)
			return ok && y >= 1
		}))

	// Escape returns to the menu.
	events.Register(event.KindKeyDown, func(args ...dispatch.Value) dispatch.Result {
		return dispatch.SwitchTo("menu")
	}, nil, dispatch.Eq(event.AttrKey, event.KeyEscape))

	if err := events.RecordInstance(playerOwner, p); err != nil {
		return err
	}

	// F10 quits from either scene.
	group := scene.NewGroup(menu, play)
	group.Register(event.KindKeyDown, func(args ...dispatch.Value) dispatch.Result {
		return dispatch.Quit()
	}, nil, dispatch.Eq(event.AttrKey, event.KeyF10))

	titleStyle := backend.DefaultStyle.WithFG(backend.ColorCyan).WithAttrs(backend.AttrBold)
	hintStyle := backend.DefaultStyle.WithFG(backend.ColorGray)
	playerStyle := backend.DefaultStyle.WithFG(backend.ColorGreen).WithAttrs(backend.AttrBold)

	menu.SetFrame(func(surface backend.Surface) dispatch.Result {
		surface.Clear()
		surface.DrawText(2, 1, "stagehand demo", titleStyle)
		surface.DrawText(2, 3, "enter  play", hintStyle)
		surface.DrawText(2, 4, "q      quit", hintStyle)
		surface.DrawText(2, 5, "F10    quit from anywhere", hintStyle)
		return dispatch.Continue()
	})

	play.SetFrame(func(surface backend.Surface) dispatch.Result {
		surface.Clear()
		w, h := surface.Size()
		clampPlayer(p, w, h)
		surface.DrawText(0, 0, "arrows move, click teleports, esc for menu", hintStyle)
		surface.SetCell(p.x, p.y, '@', playerStyle)
		return dispatch.Continue()
	})

	return nil
}

// clampPlayer keeps the player inside the drawable area, below the
// hint line.
func clampPlayer(p *player, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if p.x < 0 {
		p.x = 0
	}
	if p.x >= w {
		p.x = w - 1
	}
	if p.y < 1 {
		p.y = 1
	}
	if p.y >= h {
		p.y = h - 1
	}
}
