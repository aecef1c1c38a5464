package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/stagehand/internal/scene"
)

func newEngine(t *testing.T) (*Engine, *scene.Registry) {
	t.Helper()
	reg := scene.NewRegistry()
	if _, err := reg.Create("root"); err != nil {
		t.Fatal(err)
	}
	e := New(reg)
	t.Cleanup(func() { e.Close() })
	return e, reg
}

func TestDoStringCreatesScene(t *testing.T) {
	e, reg := newEngine(t)
	if err := e.DoString(`stage.scene("menu")`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if !reg.Has("menu") {
		t.Error("scene not created")
	}
}

func TestDoStringSurfacesLuaErrors(t *testing.T) {
	e, _ := newEngine(t)
	if err := e.DoString(`error("boom")`); err == nil {
		t.Error("DoString(error) returned nil")
	}
	if err := e.DoString(`this is not lua`); err == nil {
		t.Error("DoString(garbage) returned nil")
	}
}

func TestUnsafeLibrariesClosed(t *testing.T) {
	e, _ := newEngine(t)
	for _, lib := range []string{"io", "os", "debug", "package"} {
		if err := e.DoString(`if ` + lib + ` ~= nil then error("open") end`); err != nil {
			t.Errorf("%s library is reachable: %v", lib, err)
		}
	}
	// Safe libraries stay open.
	if err := e.DoString(`local _ = math.floor(1.5) .. string.upper("x")`); err != nil {
		t.Errorf("safe libraries missing: %v", err)
	}
}

func TestLoadDirLexicalOrder(t *testing.T) {
	e, reg := newEngine(t)
	dir := t.TempDir()
	files := map[string]string{
		"10-base.lua": `stage.scene("menu")`,
		"20-more.lua": `stage.attach("root", "menu")`,
	}
	for name, code := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(code), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := e.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	root, err := reg.Get("root")
	if err != nil {
		t.Fatal(err)
	}
	if root.Child("menu") == nil {
		t.Error("scripts did not run in order: attach saw no menu scene")
	}
}

func TestLoadDirMissingDirectory(t *testing.T) {
	e, _ := newEngine(t)
	if err := e.LoadDir(filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Errorf("LoadDir(absent) = %v, want nil", err)
	}
}

func TestLoadDirWrapsScriptErrors(t *testing.T) {
	e, _ := newEngine(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lua")
	if err := os.WriteFile(path, []byte(`stage.scene(`), 0o644); err != nil {
		t.Fatal(err)
	}

	err := e.LoadDir(dir)
	if !errors.Is(err, ErrScript) {
		t.Fatalf("err = %v, want ErrScript", err)
	}
	var se *ScriptError
	if !errors.As(err, &se) || se.Source != path {
		t.Errorf("err = %#v, want ScriptError for %s", err, path)
	}
}

func TestCloseMakesEngineInert(t *testing.T) {
	e, _ := newEngine(t)
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !e.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := e.DoString(`stage.scene("late")`); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("DoString after close = %v, want ErrEngineClosed", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}
