package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reactivegen/internal/diag"
	"reactivegen/internal/project"
	"reactivegen/internal/symbols"
)

func writeProject(t *testing.T, files map[string]string) *project.Manifest {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	m, err := project.Load(root)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	return m
}

const personSrc = `namespace app

@reactive
pub partial type Person {
    pub prop FirstName: string? { get; set; }
    pub prop LastName: string? { get; set; }
}
`

func TestGenerateWritesDeterministicUnits(t *testing.T) {
	m := writeProject(t, map[string]string{
		"reactive.toml": "[package]\nname = \"app\"\n",
		"person.rx":     personSrc,
	})

	res, err := Generate(context.Background(), m, Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Skipped {
		t.Fatalf("unexpected skip, diagnostics: %s",
			diag.FormatGolden(res.Load.Bag.Items(), res.Load.FileSet, true))
	}
	if len(res.Units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(res.Units))
	}
	u := res.Units[0]
	if u.Name != "app.Person.person.g.rx" || !u.Changed {
		t.Fatalf("unexpected unit %+v", u)
	}
	content, err := os.ReadFile(u.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "pub partial type Person : INotifyPropertyChanged {") {
		t.Fatalf("unexpected unit content:\n%s", content)
	}
	if res.ManifestPath != filepath.Join(m.OutputDir(), "app.rxu") {
		t.Fatalf("unexpected manifest path %q", res.ManifestPath)
	}
	if _, err := os.Stat(res.ManifestPath); err != nil {
		t.Fatalf("unit manifest missing: %v", err)
	}

	// Second run: nothing changes, nothing is rewritten.
	res2, err := Generate(context.Background(), m, Options{})
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if len(res2.Units) != 1 || res2.Units[0].Changed {
		t.Fatalf("regeneration must be idempotent, got %+v", res2.Units)
	}
}

func TestGenerateSkipsOnSyntaxErrors(t *testing.T) {
	m := writeProject(t, map[string]string{
		"reactive.toml": "[package]\nname = \"app\"\n",
		"broken.rx":     "type T { banana; }",
	})
	res, err := Generate(context.Background(), m, Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !res.Skipped {
		t.Fatal("syntax errors must skip emission")
	}
	if !res.Load.Bag.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	if _, err := os.Stat(m.OutputDir()); !os.IsNotExist(err) {
		t.Fatal("no output must be written on skip")
	}
}

func TestGenerateHonorsBackingFieldOption(t *testing.T) {
	m := writeProject(t, map[string]string{
		"reactive.toml": "[package]\nname = \"app\"\n\n[options]\n\"build_property.UseBackingFields\" = \"true\"\n",
		"person.rx":     personSrc,
	})
	res, err := Generate(context.Background(), m, Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	content, err := os.ReadFile(res.Units[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "priv field _firstName: string?;") {
		t.Fatalf("backing-field option not honored:\n%s", content)
	}
}

func TestCrossUnitCapabilityFlows(t *testing.T) {
	lib := writeProject(t, map[string]string{
		"reactive.toml": "[package]\nname = \"lib\"\n",
		"base.rx": `namespace lib

pub partial type ViewModelBase : ReactiveObject {}
`,
	})
	libRes, err := Generate(context.Background(), lib, Options{})
	if err != nil {
		t.Fatalf("generate lib: %v", err)
	}

	appRoot := t.TempDir()
	manifestText := "[package]\nname = \"app\"\n\n[references]\nunits = [\"" +
		strings.ReplaceAll(libRes.ManifestPath, "\\", "/") + "\"]\n"
	if err := os.WriteFile(filepath.Join(appRoot, "reactive.toml"), []byte(manifestText), 0o644); err != nil {
		t.Fatal(err)
	}
	appSrc := `namespace app

pub partial type Vm : lib::ViewModelBase {
    pub prop Title: string { get; set; }
}
`
	if err := os.WriteFile(filepath.Join(appRoot, "vm.rx"), []byte(appSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := project.Load(appRoot)
	if err != nil {
		t.Fatal(err)
	}

	res, err := Generate(context.Background(), m, Options{})
	if err != nil {
		t.Fatalf("generate app: %v", err)
	}
	if res.Skipped {
		t.Fatalf("unexpected skip: %s",
			diag.FormatGolden(res.Load.Bag.Items(), res.Load.FileSet, true))
	}
	if len(res.Units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(res.Units))
	}
	content, err := os.ReadFile(res.Units[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(content)
	if !strings.Contains(text, "RaiseAndSetIfChanged(ref field, value, \"Title\");") {
		t.Fatalf("imported capability must switch setters to delegation:\n%s", text)
	}
	if strings.Contains(text, "event PropertyChanged") {
		t.Fatalf("imported capability must suppress infra:\n%s", text)
	}
}

func TestGenerateKeepsSameNamedFilesApart(t *testing.T) {
	partSrc := func(prop string) string {
		return "namespace app\n\n@reactive\npub partial type Person {\n    pub prop " + prop + ": string { get; set; }\n}\n"
	}
	m := writeProject(t, map[string]string{
		"reactive.toml": "[package]\nname = \"app\"\n",
		"a/person.rx":   partSrc("First"),
		"b/person.rx":   partSrc("Second"),
	})
	res, err := Generate(context.Background(), m, Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Skipped {
		t.Fatalf("unexpected skip: %s",
			diag.FormatGolden(res.Load.Bag.Items(), res.Load.FileSet, true))
	}
	if len(res.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(res.Units))
	}
	if res.Units[0].Name != "app.Person.a.person.g.rx" || res.Units[1].Name != "app.Person.b.person.g.rx" {
		t.Fatalf("unexpected unit names %q %q", res.Units[0].Name, res.Units[1].Name)
	}
	if res.Units[0].Path == res.Units[1].Path {
		t.Fatalf("units must not share an output path: %q", res.Units[0].Path)
	}
	first, err := os.ReadFile(res.Units[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(res.Units[1].Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(first), "First") || !strings.Contains(string(second), "Second") {
		t.Fatalf("each source file must keep its own unit:\n%s\n%s", first, second)
	}
}

func TestManifestExportsSynthesizedCapability(t *testing.T) {
	m := writeProject(t, map[string]string{
		"reactive.toml": "[package]\nname = \"lib\"\n",
		"model.rx": `namespace lib

@reactive
pub partial type Model {
    pub prop Name: string { get; set; }
}

pub partial type Widget {}
`,
	})
	res, err := Generate(context.Background(), m, Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	manifest, err := symbols.ReadManifest(res.ManifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	caps := make(map[string]bool, len(manifest.Types))
	for _, e := range manifest.Types {
		caps[e.QName] = e.HasCapability
	}
	if !caps["lib::Model"] {
		t.Fatal("a type that received the infrastructure must export the capability")
	}
	if caps["lib::Widget"] {
		t.Fatal("a plain type must not export the capability")
	}
}

func TestCheckReportsFindings(t *testing.T) {
	m := writeProject(t, map[string]string{
		"reactive.toml": "[package]\nname = \"app\"\n",
		"person.rx": `namespace app

pub partial type Person : ReactiveObject {
    pub prop Title: string {
        get { return _title; }
        set { RaiseAndSetIfChanged(ref _title, value, "Title"); }
    }
    field _title: string;
}
`,
	})
	res, err := Check(context.Background(), m, Options{})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(res.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(res.Findings))
	}
	if res.Findings[0].Code != diag.AnaManualNotifyPattern {
		t.Fatalf("unexpected finding %v", res.Findings[0])
	}
}

func TestApplyFixesRewritesUnit(t *testing.T) {
	m := writeProject(t, map[string]string{
		"reactive.toml": "[package]\nname = \"app\"\n",
		"person.rx": `namespace app

pub partial type Person : ReactiveObject {
    pub prop Title: string {
        get { return _title; }
        set { RaiseAndSetIfChanged(ref _title, value, "Title"); }
    }
    field _title: string;
}
`,
	})
	res, _, err := ApplyFixes(context.Background(), m, Options{}, FixRequest{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("expected 1 applied fix, got %+v", res)
	}
	content, err := os.ReadFile(filepath.Join(m.Root, "person.rx"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(content)
	if !strings.Contains(text, "@reactive") || strings.Contains(text, "field _title") {
		t.Fatalf("rewrite incomplete:\n%s", text)
	}
}

func TestObserverSeesPhases(t *testing.T) {
	m := writeProject(t, map[string]string{
		"reactive.toml": "[package]\nname = \"app\"\n",
		"person.rx":     personSrc,
	})
	var names []string
	obs := func(e PhaseEvent) {
		if e.Status == PhaseEnd {
			names = append(names, e.Name)
		}
	}
	if _, err := Generate(context.Background(), m, Options{Observer: obs}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := []string{"scan", "parse", "resolve", "plan", "emit", "write"}
	if len(names) != len(want) {
		t.Fatalf("unexpected phases %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("unexpected phases %v", names)
		}
	}
}
