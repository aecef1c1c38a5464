package scene

import (
	"github.com/dshills/stagehand/internal/dispatch"
	"github.com/dshills/stagehand/internal/event"
)

// Group fans registration calls out to several scenes at once, for
// handlers that belong to more than one screen of an application (a
// global key map, a shared status row).
type Group struct {
	scenes []*Scene
}

// NewGroup creates a group over the given scenes.
func NewGroup(scenes ...*Scene) *Group {
	return &Group{scenes: scenes}
}

// Add appends a scene to the group.
func (g *Group) Add(s *Scene) {
	g.scenes = append(g.scenes, s)
}

// Scenes returns a copy of the grouped scenes.
func (g *Group) Scenes() []*Scene {
	out := make([]*Scene, len(g.scenes))
	copy(out, g.scenes)
	return out
}

// Register adds a free-function registration to every grouped scene.
func (g *Group) Register(kind event.Kind, fn dispatch.HandlerFunc, params []string, guards ...dispatch.Guard) {
	for _, s := range g.scenes {
		s.Events().Register(kind, fn, params, guards...)
	}
}

// RegisterMethod adds an owned registration to every grouped scene.
func (g *Group) RegisterMethod(owner string, kind event.Kind, method dispatch.MethodFunc, params []string, guards ...dispatch.Guard) {
	for _, s := range g.scenes {
		s.Events().RegisterMethod(owner, kind, method, params, guards...)
	}
}

// TrackOwner tracks the owner key on every grouped scene.
func (g *Group) TrackOwner(owner string) {
	for _, s := range g.scenes {
		s.Events().TrackOwner(owner)
	}
}

// RecordInstance records the instance on every grouped scene. The
// first failure stops the fan-out.
func (g *Group) RecordInstance(owner string, inst dispatch.Value) error {
	for _, s := range g.scenes {
		if err := s.Events().RecordInstance(owner, inst); err != nil {
			return err
		}
	}
	return nil
}

// SetFrame installs the frame hook on every grouped scene.
func (g *Group) SetFrame(fn FrameFunc) {
	for _, s := range g.scenes {
		s.SetFrame(fn)
	}
}
