package analyzer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reactivegen/internal/classify"
	"reactivegen/internal/diag"
	"reactivegen/internal/fix"
	"reactivegen/internal/parser"
	"reactivegen/internal/source"
	"reactivegen/internal/symbols"
)

const preludeSrc = `
namespace reactive

pub interface INotifyPropertyChanged {}
pub type ReactiveObject : INotifyPropertyChanged {}
`

const manualPattern = `namespace app

pub partial type Person : ReactiveObject {
    pub prop Title: string {
        get { return _title; }
        set { RaiseAndSetIfChanged(ref _title, value, "Title"); }
    }
    field _title: string;
}
`

func analyzeSrc(t *testing.T, srcs map[string]string) ([]diag.Diagnostic, *symbols.Pass, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	b := symbols.NewBuilder(fs, rep)

	names := []string{"prelude.rx"}
	for n := range srcs {
		names = append(names, n)
	}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if names[j] < names[i] {
				names[i], names[j] = names[j], names[i]
			}
		}
	}
	hadErrors := false
	for _, n := range names {
		src := preludeSrc
		if n != "prelude.rx" {
			src = srcs[n]
		}
		id := fs.AddVirtual(n, []byte(src))
		before := bag.Len()
		b.AddFile(parser.ParseFile(fs.Get(id), rep))
		if bag.Len() != before {
			hadErrors = true
		}
	}
	b.SetParseClean(!hadErrors)
	pass := b.Resolve()
	oracle := classify.NewOracle(pass, rep)
	return Analyze(pass, oracle, diag.NopReporter{}), pass, bag
}

func TestDetectsManualPattern(t *testing.T) {
	found, _, _ := analyzeSrc(t, map[string]string{"person.rx": manualPattern})
	if len(found) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(found))
	}
	d := found[0]
	if d.Code != diag.AnaManualNotifyPattern || d.Severity != diag.SevInfo {
		t.Fatalf("unexpected diagnostic %v", d)
	}
	if len(d.Fixes) != 1 {
		t.Fatalf("expected an attached fix, got %d", len(d.Fixes))
	}
	fx := d.Fixes[0]
	if fx.ID != "manual-notify/app.Person.Title" {
		t.Fatalf("unexpected fix id %q", fx.ID)
	}
	// Replacement plus field deletion.
	if len(fx.Edits) != 2 {
		t.Fatalf("expected 2 edits, got %d", len(fx.Edits))
	}
	if !strings.Contains(fx.Edits[0].NewText, "@reactive\n    pub prop Title: string { get; set; }") {
		t.Fatalf("unexpected shell %q", fx.Edits[0].NewText)
	}
	if fx.Edits[1].NewText != "" || !strings.Contains(fx.Edits[1].OldText, "field _title: string;") {
		t.Fatalf("unexpected field edit %+v", fx.Edits[1])
	}
}

func TestUnrelatedReaderKeepsField(t *testing.T) {
	src := `namespace app

pub partial type Person : ReactiveObject {
    pub prop Title: string {
        get { return _title; }
        set { RaiseAndSetIfChanged(ref _title, value, "Title"); }
    }
    field _title: string;
    fn Describe(): string {
        return decorate(_title);
    }
}
`
	found, _, _ := analyzeSrc(t, map[string]string{"person.rx": src})
	if len(found) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(found))
	}
	if len(found[0].Fixes[0].Edits) != 1 {
		t.Fatalf("a third reference must retain the field, got edits %v", found[0].Fixes[0].Edits)
	}
}

func TestInconclusiveCountsRetainField(t *testing.T) {
	found, pass, _ := analyzeSrc(t, map[string]string{
		"person.rx": manualPattern,
		"broken.rx": "type T { banana; }",
	})
	if pass.RefsConclusive() {
		t.Fatal("parse errors must make counting inconclusive")
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(found))
	}
	if len(found[0].Fixes[0].Edits) != 1 {
		t.Fatal("inconclusive counting must retain the field")
	}
}

func TestNoCapabilityNoFinding(t *testing.T) {
	src := `namespace app

pub partial type Person {
    pub prop Title: string {
        get { return _title; }
        set { RaiseAndSetIfChanged(ref _title, value, "Title"); }
    }
    field _title: string;
}
`
	found, _, _ := analyzeSrc(t, map[string]string{"person.rx": src})
	if len(found) != 0 {
		t.Fatalf("no capability means no finding, got %v", found)
	}
}

func TestPlainSetterNoFinding(t *testing.T) {
	src := `namespace app

pub partial type Person : ReactiveObject {
    pub prop Title: string {
        get { return _title; }
        set { _title = value; }
    }
    field _title: string;
}
`
	found, _, _ := analyzeSrc(t, map[string]string{"person.rx": src})
	if len(found) != 0 {
		t.Fatalf("setter without the raise helper must not match, got %v", found)
	}
}

func TestRewriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "person.rx")
	if err := os.WriteFile(path, []byte(manualPattern), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	b := symbols.NewBuilder(fs, rep)

	pid := fs.AddVirtual("prelude.rx", []byte(preludeSrc))
	b.AddFile(parser.ParseFile(fs.Get(pid), rep))
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	b.AddFile(parser.ParseFile(fs.Get(id), rep))
	b.SetParseClean(!bag.HasErrors())
	pass := b.Resolve()
	oracle := classify.NewOracle(pass, rep)
	found := Analyze(pass, oracle, diag.NopReporter{})
	if len(found) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(found))
	}

	res, err := fix.Apply(fs, found, fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("expected 1 applied fix, got %+v", res)
	}

	rewritten, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(rewritten)
	if !strings.Contains(text, "@reactive\n    pub prop Title: string { get; set; }") {
		t.Fatalf("declaration not rewritten:\n%s", text)
	}
	if strings.Contains(text, "field _title") {
		t.Fatalf("backing field should be deleted:\n%s", text)
	}
	if strings.Contains(text, "RaiseAndSetIfChanged") {
		t.Fatalf("hand-written setter should be gone:\n%s", text)
	}

	// The rewritten file parses clean and yields no further findings.
	fs2 := source.NewFileSet()
	bag2 := diag.NewBag(64)
	rep2 := diag.BagReporter{Bag: bag2}
	b2 := symbols.NewBuilder(fs2, rep2)
	pid2 := fs2.AddVirtual("prelude.rx", []byte(preludeSrc))
	b2.AddFile(parser.ParseFile(fs2.Get(pid2), rep2))
	id2, err := fs2.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	b2.AddFile(parser.ParseFile(fs2.Get(id2), rep2))
	if bag2.HasErrors() {
		t.Fatalf("rewritten file does not parse: %s", diag.FormatGolden(bag2.Items(), fs2, true))
	}
	pass2 := b2.Resolve()
	again := Analyze(pass2, classify.NewOracle(pass2, rep2), diag.NopReporter{})
	if len(again) != 0 {
		t.Fatalf("rewrite must be idempotent, got %v", again)
	}
}
