// Package scene organizes dispatch tables into a tree of named,
// activatable nodes and routes occurrences and frame passes along the
// active path.
//
// # Tree and Activation
//
// Every scene owns a dispatch table, an optional frame hook, and an
// ordered list of children. Scenes start inactive. An inactive scene
// is invisible to routing: its table, hook, and entire subtree are
// skipped. Activate and Deactivate reject calls that would not change
// state, so double activation surfaces as an error instead of passing
// silently.
//
// Scene names are unique across a Registry. The registry is plain
// bookkeeping: it creates scenes, finds them by name, and attaches
// children to parents. Construction and wiring happen before the run
// loop starts; the loop only reads the tree.
//
// # Event Routing and Switching
//
// RunEvent dispatches into the scene's own table first, then recurses
// over a snapshot of the children that were active when the pass
// began. The first non-Continue result aborts the pass.
//
// A switch result names a target scene. It resolves at the nearest
// ancestor that has a direct child with that name: the target child
// activates, every other child of that ancestor deactivates, and the
// pass at that level ends with Continue. A switch that reaches the
// tree root unresolved is a routing error; the run loop treats it as
// fatal. Frame passes never resolve switches.
package scene
