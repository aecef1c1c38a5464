package scene

import (
	"errors"
	"testing"

	"github.com/dshills/stagehand/internal/dispatch"
	"github.com/dshills/stagehand/internal/event"
)

func TestRegistryCreateDuplicate(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create("menu"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := r.Create("menu")
	if !errors.Is(err, ErrSceneExists) {
		t.Errorf("duplicate create err = %v, want ErrSceneExists", err)
	}
	var exists *ExistsError
	if !errors.As(err, &exists) || exists.Name != "menu" {
		t.Errorf("err = %#v, want ExistsError{menu}", err)
	}
}

func TestRegistryGetMissing(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("ghost")
	if !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("get missing err = %v, want ErrSceneNotFound", err)
	}
}

func TestRegistryAttach(t *testing.T) {
	r := NewRegistry()
	root, _ := r.Create("root")
	if _, err := r.Create("menu"); err != nil {
		t.Fatal(err)
	}
	if err := r.Attach("root", "menu"); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if root.Child("menu") == nil {
		t.Error("attach did not add child")
	}
	if err := r.Attach("root", "ghost"); !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("attach missing child err = %v, want ErrSceneNotFound", err)
	}
	if err := r.Attach("ghost", "menu"); !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("attach missing parent err = %v, want ErrSceneNotFound", err)
	}
}

func TestRegistryActivateByName(t *testing.T) {
	r := NewRegistry()
	s, _ := r.Create("menu")
	if err := r.Activate("menu"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !s.IsActive() {
		t.Error("Activate did not flip scene state")
	}
	if err := r.Activate("menu"); !errors.Is(err, ErrAlreadyActive) {
		t.Errorf("second activate err = %v, want ErrAlreadyActive", err)
	}
	if err := r.Deactivate("menu"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := r.Deactivate("ghost"); !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("deactivate missing err = %v, want ErrSceneNotFound", err)
	}
}

func TestRegistryNamesInCreationOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"root", "menu", "play"} {
		if _, err := r.Create(name); err != nil {
			t.Fatal(err)
		}
	}
	got := r.Names()
	want := []string{"root", "menu", "play"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestRegistryInitLoadsRootsOnce(t *testing.T) {
	r := NewRegistry()
	root, _ := r.Create("root")
	menu, _ := r.Create("menu")
	if err := r.Attach("root", "menu"); err != nil {
		t.Fatal(err)
	}

	// menu is reachable from root; Init must not double-load it, and a
	// registration recorded before Init must survive in menu's table.
	menu.Events().Register(event.KindKeyDown, func(args ...dispatch.Value) dispatch.Result {
		return dispatch.Continue()
	}, nil)
	r.Init()

	if !root.Events().Loaded() || !menu.Events().Loaded() {
		t.Errorf("loaded = (%v,%v), want both true",
			root.Events().Loaded(), menu.Events().Loaded())
	}
	if n := menu.Events().BindingCount(event.KindKeyDown); n != 1 {
		t.Errorf("menu bindings = %d, want 1", n)
	}
}
