// Package script embeds a sandboxed Lua runtime and exposes the scene
// and dispatch layers to scripts through a "stage" module.
//
// # Sandbox
//
// The interpreter opens only the base, table, string, and math
// libraries. io, os, debug, and package stay closed so scripts cannot
// touch the file system or escape the runtime. All execution is
// wrapped in panic recovery; a misbehaving script surfaces as an
// error, not a crash.
//
// # The stage module
//
// Scripts build and wire scenes declaratively at load time:
//
//	stage.scene("menu")
//	stage.attach("root", "menu")
//	stage.activate("menu")
//
//	stage.on("menu", stage.KEYDOWN, {params = {"key"}}, function(key)
//	    if key == stage.K_ENTER then
//	        stage.switch_to("play")
//	    end
//	end)
//
//	stage.frame("menu", function()
//	    stage.clear()
//	    stage.draw_text(2, 1, "press enter")
//	end)
//
// Registrations made by on are deferred like any other registration
// and take effect when the scene tree initializes. Inside a handler,
// stage.quit and stage.switch_to stage a control signal that the
// dispatcher receives when the handler returns; calling them at load
// time is an error.
//
// # Threading
//
// The Lua state is not goroutine-safe. The engine serializes access
// with a mutex, but handlers are expected to run on the loop
// goroutine like every other handler.
package script
