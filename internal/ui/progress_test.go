package ui

import (
	"strings"
	"testing"

	"reactivegen/internal/driver"
)

func TestProgressModelTracksPhases(t *testing.T) {
	events := make(chan driver.PhaseEvent)
	model := NewProgressModel("generate", []string{"parse", "emit"}, events).(*progressModel)

	model.applyEvent(driver.PhaseEvent{Name: "parse", Status: driver.PhaseStart})
	if model.items[0].status != "running" {
		t.Fatalf("expected running, got %q", model.items[0].status)
	}
	model.applyEvent(driver.PhaseEvent{Name: "parse", Status: driver.PhaseEnd, Detail: "3 files"})
	if model.items[0].status != "done" || model.items[0].detail != "3 files" {
		t.Fatalf("unexpected item %+v", model.items[0])
	}
	// Unknown phases are ignored.
	model.applyEvent(driver.PhaseEvent{Name: "link", Status: driver.PhaseEnd})

	view := model.View()
	if !strings.Contains(view, "parse (3 files)") {
		t.Fatalf("view missing phase detail:\n%s", view)
	}
	if !strings.Contains(view, "queued") {
		t.Fatalf("view missing pending phase:\n%s", view)
	}
}
