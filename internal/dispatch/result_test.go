package dispatch

import (
	"errors"
	"testing"
)

func TestResultBuilders(t *testing.T) {
	if r := Continue(); !r.IsContinue() || r.IsQuit() || r.IsSwitch() || r.IsError() {
		t.Errorf("Continue() = %+v", r)
	}
	if r := Quit(); !r.IsQuit() || r.IsContinue() {
		t.Errorf("Quit() = %+v", r)
	}

	r := SwitchTo("menu")
	if !r.IsSwitch() {
		t.Errorf("SwitchTo status = %v, want switch", r.Status)
	}
	if r.Target != "menu" {
		t.Errorf("SwitchTo target = %q, want %q", r.Target, "menu")
	}

	wantErr := errors.New("boom")
	if r := Fail(wantErr); !r.IsError() || !errors.Is(r.Err, wantErr) {
		t.Errorf("Fail() = %+v", r)
	}
	if r := Failf("bad %s", "input"); !r.IsError() || r.Err.Error() != "bad input" {
		t.Errorf("Failf() = %+v", r)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusContinue, "continue"},
		{StatusQuit, "quit"},
		{StatusSwitch, "switch"},
		{StatusError, "error"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
