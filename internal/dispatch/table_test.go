package dispatch

import (
	"errors"
	"testing"

	"github.com/dshills/stagehand/internal/event"
)

type player struct {
	name  string
	moved int
}

func movePlayer(p *player, args ...Value) Result {
	p.moved++
	return Continue()
}

func TestDeferredBindingPerInstance(t *testing.T) {
	table := NewTable()
	table.TrackOwner("demo.player")
	table.RegisterMethod("demo.player", event.KindKeyDown, Bound(movePlayer), nil)

	p1 := &player{name: "p1"}
	p2 := &player{name: "p2"}
	if err := table.RecordInstance("demo.player", p1); err != nil {
		t.Fatalf("RecordInstance: %v", err)
	}
	if err := table.RecordInstance("demo.player", p2); err != nil {
		t.Fatalf("RecordInstance: %v", err)
	}
	table.Load()

	if got := table.BindingCount(event.KindKeyDown); got != 2 {
		t.Fatalf("BindingCount = %d, want 2", got)
	}

	table.Dispatch(event.NewKeyDown(event.KeyUp, "", 0))
	if p1.moved != 1 || p2.moved != 1 {
		t.Errorf("moved = (%d,%d), want (1,1)", p1.moved, p2.moved)
	}
}

func TestReloadRebindsCleanly(t *testing.T) {
	table := NewTable()
	table.TrackOwner("demo.player")
	table.RegisterMethod("demo.player", event.KindKeyDown, Bound(movePlayer), nil)

	table.RecordInstance("demo.player", &player{})
	table.RecordInstance("demo.player", &player{})
	table.Load()
	if got := table.BindingCount(event.KindKeyDown); got != 2 {
		t.Fatalf("BindingCount after first load = %d, want 2", got)
	}

	table.RecordInstance("demo.player", &player{})
	table.Load()
	if got := table.BindingCount(event.KindKeyDown); got != 3 {
		t.Errorf("BindingCount after reload = %d, want 3, not accumulated 5", got)
	}
	if got := table.PendingCount(); got != 1 {
		t.Errorf("PendingCount = %d, want 1 (loading must not consume pendings)", got)
	}
}

func TestOwnerWithoutInstancesBindsNothing(t *testing.T) {
	table := NewTable()
	table.TrackOwner("demo.ghost")
	table.RegisterMethod("demo.ghost", event.KindKeyDown, Bound(movePlayer), nil)
	table.Load()

	if got := table.BindingCount(event.KindKeyDown); got != 0 {
		t.Errorf("BindingCount = %d, want 0", got)
	}
	if res := table.Dispatch(event.NewKeyDown(event.KeyUp, "", 0)); !res.IsContinue() {
		t.Errorf("dispatch = %+v, want continue", res)
	}
}

func TestUntrackedOwnerPendingBindsNothing(t *testing.T) {
	// A registration whose owner is never tracked stays inert. Loading
	// must not invent bindings for it.
	table := NewTable()
	table.RegisterMethod("demo.never", event.KindKeyDown, Bound(movePlayer), nil)
	table.Load()

	if got := table.BindingCount(event.KindKeyDown); got != 0 {
		t.Errorf("BindingCount = %d, want 0", got)
	}
}

func TestRecordInstanceUnknownOwner(t *testing.T) {
	table := NewTable()
	err := table.RecordInstance("demo.unknown", &player{})
	if err == nil {
		t.Fatal("RecordInstance accepted an untracked owner")
	}
	if !errors.Is(err, ErrUnknownOwner) {
		t.Errorf("err = %v, want ErrUnknownOwner", err)
	}
	var uo *UnknownOwnerError
	if !errors.As(err, &uo) || uo.Owner != "demo.unknown" {
		t.Errorf("err = %#v, want UnknownOwnerError for demo.unknown", err)
	}
}

func TestTrackOwnerIdempotent(t *testing.T) {
	table := NewTable()
	if table.Tracked("demo.player") {
		t.Fatal("owner tracked before TrackOwner")
	}
	table.TrackOwner("demo.player")
	table.RecordInstance("demo.player", &player{})
	table.TrackOwner("demo.player")

	if !table.Tracked("demo.player") {
		t.Error("Tracked = false after TrackOwner")
	}
	if got := table.InstanceCount("demo.player"); got != 1 {
		t.Errorf("InstanceCount = %d, want 1 (re-tracking must not clear)", got)
	}
}

func TestDispatchRunsInRegistrationOrder(t *testing.T) {
	table := NewTable()

	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		table.Register(event.KindQuit, func(args ...Value) Result {
			order = append(order, name)
			return Continue()
		}, nil)
	}
	table.Load()
	table.Dispatch(event.NewQuit())

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("order = %v, want [a b c]", order)
	}
}

func TestNonContinueAbortsPass(t *testing.T) {
	table := NewTable()

	var fired []string
	table.Register(event.KindKeyDown, func(args ...Value) Result {
		fired = append(fired, "first")
		return Quit()
	}, nil)
	table.Register(event.KindKeyDown, func(args ...Value) Result {
		fired = append(fired, "second")
		return Continue()
	}, nil)
	table.Load()

	res := table.Dispatch(event.NewKeyDown(event.KeyEscape, "", 0))
	if !res.IsQuit() {
		t.Errorf("dispatch = %+v, want quit", res)
	}
	if len(fired) != 1 || fired[0] != "first" {
		t.Errorf("fired = %v, want [first]", fired)
	}
}

func TestParamExtractionOrder(t *testing.T) {
	table := NewTable()

	var gotX, gotY int
	table.Register(event.KindMouseDown, func(args ...Value) Result {
		if len(args) != 2 {
			t.Fatalf("args = %d, want 2", len(args))
		}
		n, _ := event.Numeric(args[0])
		gotX = int(n)
		n, _ = event.Numeric(args[1])
		gotY = int(n)
		return Continue()
	}, []string{event.AttrX, event.AttrY})
	table.Load()

	table.Dispatch(event.NewMouse(event.KindMouseDown, 7, 3, event.ButtonLeft))
	if gotX != 7 || gotY != 3 {
		t.Errorf("extracted = (%d,%d), want (7,3)", gotX, gotY)
	}
}

func TestParamMissingAttrIsFatal(t *testing.T) {
	table := NewTable()
	table.Register(event.KindQuit, func(args ...Value) Result {
		return Continue()
	}, []string{"key"})
	table.Load()

	res := table.Dispatch(event.NewQuit())
	if !res.IsError() || !errors.Is(res.Err, ErrMissingAttr) {
		t.Errorf("dispatch = %+v, want missing-attribute error", res)
	}
}

func TestBoundTypeMismatch(t *testing.T) {
	table := NewTable()
	table.TrackOwner("demo.player")
	table.RegisterMethod("demo.player", event.KindQuit, Bound(movePlayer), nil)
	table.RecordInstance("demo.player", "not a player")
	table.Load()

	res := table.Dispatch(event.NewQuit())
	if !res.IsError() {
		t.Errorf("dispatch = %+v, want error for mismatched instance type", res)
	}
}

func TestLoadedFlag(t *testing.T) {
	table := NewTable()
	if table.Loaded() {
		t.Error("Loaded() = true before Load")
	}
	table.Load()
	if !table.Loaded() {
		t.Error("Loaded() = false after Load")
	}
}

func TestDispatchUnknownKindIsNoOp(t *testing.T) {
	table := NewTable()
	table.Load()
	if res := table.Dispatch(event.New(event.KindUser+42, nil)); !res.IsContinue() {
		t.Errorf("dispatch = %+v, want continue", res)
	}
}

func TestFreeAndBoundShareLoadOrder(t *testing.T) {
	table := NewTable()

	var order []string
	table.Register(event.KindQuit, func(args ...Value) Result {
		order = append(order, "free1")
		return Continue()
	}, nil)
	table.TrackOwner("demo.player")
	table.RegisterMethod("demo.player", event.KindQuit,
		Bound(func(p *player, args ...Value) Result {
			order = append(order, "bound:"+p.name)
			return Continue()
		}), nil)
	table.Register(event.KindQuit, func(args ...Value) Result {
		order = append(order, "free2")
		return Continue()
	}, nil)

	table.RecordInstance("demo.player", &player{name: "p1"})
	table.RecordInstance("demo.player", &player{name: "p2"})
	table.Load()
	table.Dispatch(event.NewQuit())

	want := []string{"free1", "bound:p1", "bound:p2", "free2"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
