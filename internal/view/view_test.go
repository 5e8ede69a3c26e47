package view

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGeneration(t *testing.T) {
	var g Generation
	token := g.Token()
	if !g.Valid(token) {
		t.Fatal("fresh token is not valid")
	}
	g.Advance()
	if g.Valid(token) {
		t.Error("token still valid after Advance")
	}
	if !g.Valid(g.Token()) {
		t.Error("current token is not valid")
	}
}

func TestNotifiersFanOut(t *testing.T) {
	var buf bytes.Buffer
	rec := &Recorder{}
	n := Notifiers{rec, LogNotifier{Logger: slog.New(slog.NewTextHandler(&buf, nil))}}

	Success(n, "Custom field created successfully")
	Error(n, "Failed to load teams")

	want := []Notice{
		{Level: LevelSuccess, Message: "Custom field created successfully"},
		{Level: LevelError, Message: "Failed to load teams"},
	}
	if diff := cmp.Diff(want, rec.Notices()); diff != "" {
		t.Errorf("notices mismatch (-want +got):\n%s", diff)
	}

	logged := buf.String()
	if !strings.Contains(logged, "level=INFO") || !strings.Contains(logged, "level=WARN") {
		t.Errorf("log output = %q", logged)
	}

	rec.Reset()
	if rec.Last() != (Notice{}) {
		t.Error("Last() after Reset is not the zero notice")
	}
}

func TestHistory(t *testing.T) {
	var h History
	h.Record("mount")
	h.Record("edit:name")

	got := h.Actions()
	got[0] = "changed"
	if diff := cmp.Diff([]string{"mount", "edit:name"}, h.Actions()); diff != "" {
		t.Errorf("Actions() mismatch (-want +got):\n%s", diff)
	}
}
