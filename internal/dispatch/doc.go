// Package dispatch routes occurrences to registered handlers through
// guarded, parameter-extracting bindings.
//
// # Registration and Loading
//
// Handlers are registered against a Table before the application loop
// starts. A registration names the event kind it responds to, the
// attributes to extract as positional arguments, and an ordered list
// of guards. Free functions bind immediately at load; methods are
// registered under an owner key and bind once per instance recorded
// for that owner:
//
//	table.TrackOwner("game.player")
//	table.RegisterMethod("game.player", event.KindKeyDown, onKey,
//	    []string{event.AttrKey})
//	table.RecordInstance("game.player", p1)
//	table.RecordInstance("game.player", p2)
//	table.Load() // onKey now bound twice, once per player
//
// Load fully rebuilds the table from the pending registrations and the
// instances recorded so far; calling it again after recording more
// instances replaces every binding rather than accumulating
// duplicates. An owner with no recorded instances contributes no
// bindings, which is not an error.
//
// # Dispatch
//
// Dispatch walks the bindings for the occurrence's kind in load order.
// For each binding the guards run in declaration order; the first
// failing guard skips that binding silently and evaluation moves on to
// the next binding. A guard or parameter that names an attribute the
// occurrence does not carry is a hard error and aborts the dispatch.
//
// # Results
//
// Handlers return a Result rather than raising: Continue keeps the
// pass going, Quit requests a clean shutdown, SwitchTo requests an
// interface switch resolved by the scene tree, and Fail carries an
// error. The first non-Continue result aborts the remaining bindings
// of the pass and propagates to the caller.
package dispatch
