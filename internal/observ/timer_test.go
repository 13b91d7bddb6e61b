package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	timer.Record("parse", 12*time.Millisecond, "3 files")
	timer.Record("emit", 3*time.Millisecond, "")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "parse" || report.Phases[0].Note != "3 files" {
		t.Fatalf("unexpected phase %+v", report.Phases[0])
	}
	if report.TotalMS != 15 {
		t.Fatalf("unexpected total %v", report.TotalMS)
	}

	summary := timer.Summary()
	if !strings.Contains(summary, "parse") || !strings.Contains(summary, "total") {
		t.Fatalf("unexpected summary:\n%s", summary)
	}
}

func TestTimerEndIgnoresBadIndex(t *testing.T) {
	timer := NewTimer()
	timer.End(-1, "")
	timer.End(5, "")
	idx := timer.Begin("scan")
	timer.End(idx, "done")
	if got := timer.Report().Phases[0].Note; got != "done" {
		t.Fatalf("unexpected note %q", got)
	}
}
