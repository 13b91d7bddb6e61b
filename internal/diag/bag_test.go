package diag

import (
	"strings"
	"testing"

	"reactivegen/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagCap(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(SynUnexpectedToken, span(0, 0, 1), "one")) {
		t.Fatal("first add should succeed")
	}
	if !b.Add(NewError(SynUnexpectedToken, span(0, 1, 2), "two")) {
		t.Fatal("second add should succeed")
	}
	if b.Add(NewError(SynUnexpectedToken, span(0, 2, 3), "three")) {
		t.Fatal("third add should be rejected by the cap")
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(10)
	b.Add(NewInfo(AnaManualNotifyPattern, span(1, 5, 6), "later file"))
	b.Add(NewError(SynUnexpectedToken, span(0, 9, 10), "later span"))
	b.Add(NewWarning(ClsMarkerConflict, span(0, 1, 2), "early span"))
	b.Sort()

	items := b.Items()
	if items[0].Code != ClsMarkerConflict {
		t.Fatalf("expected marker conflict first, got %v", items[0].Code)
	}
	if items[1].Code != SynUnexpectedToken {
		t.Fatalf("expected syntax error second, got %v", items[1].Code)
	}
	if items[2].Primary.File != 1 {
		t.Fatalf("expected file 1 last, got %d", items[2].Primary.File)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	d := NewError(SynUnexpectedToken, span(0, 3, 4), "dup")
	b.Add(d)
	b.Add(d)
	b.Dedup()
	if b.Len() != 1 {
		t.Fatalf("expected 1 item after dedup, got %d", b.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SynUnexpectedToken, span(0, 0, 1), "a"))
	other := NewBag(1)
	other.Add(NewError(SynUnexpectedToken, span(0, 1, 2), "b"))

	a.Merge(other)
	if a.Len() != 2 {
		t.Fatalf("expected 2 items after merge, got %d", a.Len())
	}
}

func TestFormatGolden(t *testing.T) {
	fs := source.NewFileSetWithBase(".")
	id := fs.AddVirtual("m.rx", []byte("type Person {\n}\n"))

	diags := []Diagnostic{
		NewInfo(AnaManualNotifyPattern, span(id, 5, 11), "property 'Name' can use @reactive"),
	}
	got := FormatGolden(diags, fs, false)
	if !strings.Contains(got, "m.rx:1:6: INFO RXG4001: property 'Name' can use @reactive") {
		t.Fatalf("unexpected golden output: %q", got)
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(10)
	rb := ReportInfo(BagReporter{Bag: bag}, AnaManualNotifyPattern, span(0, 0, 1), "msg")
	rb.WithNote(span(0, 1, 2), "note")
	rb.Emit()
	rb.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected a single emission, got %d", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected note to survive, got %d", len(bag.Items()[0].Notes))
	}
}
