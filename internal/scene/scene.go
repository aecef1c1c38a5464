package scene

import (
	"github.com/dshills/stagehand/internal/backend"
	"github.com/dshills/stagehand/internal/dispatch"
	"github.com/dshills/stagehand/internal/event"
)

// FrameFunc is a per-frame hook drawing the scene onto the surface.
// Returning a non-Continue result aborts the frame pass.
type FrameFunc func(surface backend.Surface) dispatch.Result

// Scene is one node of the interface tree: a named dispatch table
// with an optional frame hook, an active flag, and ordered children.
// Scenes start inactive and are never destroyed during a run; a
// Registry enforces name uniqueness. A Scene is not safe for
// concurrent use.
type Scene struct {
	name     string
	active   bool
	events   *dispatch.Table
	frame    FrameFunc
	children []*Scene
}

// New creates an inactive scene with an empty dispatch table. Most
// callers go through Registry.Create, which also enforces unique
// names.
func New(name string) *Scene {
	return &Scene{
		name:   name,
		events: dispatch.NewTable(),
	}
}

// Name returns the scene name.
func (s *Scene) Name() string {
	return s.name
}

// IsActive reports whether the scene participates in routing.
func (s *Scene) IsActive() bool {
	return s.active
}

// Events returns the scene's dispatch table for registration.
func (s *Scene) Events() *dispatch.Table {
	return s.events
}

// SetFrame installs the per-frame hook, replacing any previous one.
func (s *Scene) SetFrame(fn FrameFunc) {
	s.frame = fn
}

// AddChild appends a child scene. Children route in attachment order.
func (s *Scene) AddChild(child *Scene) {
	s.children = append(s.children, child)
}

// Children returns a copy of the child list.
func (s *Scene) Children() []*Scene {
	out := make([]*Scene, len(s.children))
	copy(out, s.children)
	return out
}

// Child returns the direct child with the given name, or nil.
func (s *Scene) Child(name string) *Scene {
	for _, c := range s.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Activate marks the scene active. Activating an active scene is an
// error and leaves the state unchanged.
func (s *Scene) Activate() error {
	if s.active {
		return &ActiveError{Name: s.name}
	}
	s.active = true
	return nil
}

// Deactivate marks the scene inactive. Deactivating an inactive scene
// is an error and leaves the state unchanged.
func (s *Scene) Deactivate() error {
	if !s.active {
		return &InactiveError{Name: s.name}
	}
	s.active = false
	return nil
}

// Init loads the scene's dispatch table and recursively initializes
// every child, active or not, so that later activations find their
// bindings ready. Init may be called again after recording more
// instances; tables rebuild rather than accumulate.
func (s *Scene) Init() {
	s.events.Load()
	for _, child := range s.children {
		child.Init()
	}
}

// RunEvent dispatches the occurrence into this scene's table, then
// recurses over the children that were active when the pass started.
// The first non-Continue result aborts the pass. A switch result is
// resolved here when a direct child carries the target name;
// otherwise it propagates to the caller. The caller is responsible
// for not invoking RunEvent on an inactive scene.
func (s *Scene) RunEvent(ev event.Event) dispatch.Result {
	res := s.events.Dispatch(ev)
	if done, out := s.settle(res); done {
		return out
	}

	for _, child := range s.activeChildren() {
		res = child.RunEvent(ev)
		if done, out := s.settle(res); done {
			return out
		}
	}
	return dispatch.Continue()
}

// settle folds a child or local result into the pass: switches are
// resolved against direct children, and any other non-Continue result
// ends the pass as-is. The bool reports whether the pass is over.
func (s *Scene) settle(res dispatch.Result) (bool, dispatch.Result) {
	if res.IsSwitch() {
		if s.switchChild(res.Target) {
			// Resolved: the pass at this level is complete.
			return true, dispatch.Continue()
		}
		return true, res
	}
	if !res.IsContinue() {
		return true, res
	}
	return false, dispatch.Result{}
}

// switchChild activates the direct child with the target name and
// deactivates every other child. State is set directly: siblings that
// are already inactive stay inactive, and a switch to the active
// child is a no-op. Returns false when no direct child matches.
func (s *Scene) switchChild(target string) bool {
	child := s.Child(target)
	if child == nil {
		return false
	}
	child.active = true
	for _, c := range s.children {
		if c != child {
			c.active = false
		}
	}
	return true
}

// RunFrame invokes this scene's frame hook, then the hooks of the
// children that were active when the pass started, parents before
// children. The first non-Continue result aborts the pass; switches
// are not resolved in the frame pass.
func (s *Scene) RunFrame(surface backend.Surface) dispatch.Result {
	if s.frame != nil {
		if res := s.frame(surface); !res.IsContinue() {
			return res
		}
	}
	for _, child := range s.activeChildren() {
		if res := child.RunFrame(surface); !res.IsContinue() {
			return res
		}
	}
	return dispatch.Continue()
}

// activeChildren snapshots the currently active children so that
// activation changes made by handlers mid-pass do not affect which
// subtrees the pass visits.
func (s *Scene) activeChildren() []*Scene {
	out := make([]*Scene, 0, len(s.children))
	for _, c := range s.children {
		if c.active {
			out = append(out, c)
		}
	}
	return out
}
