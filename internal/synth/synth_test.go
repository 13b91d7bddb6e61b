package synth

import (
	"strings"
	"testing"

	"reactivegen/internal/classify"
	"reactivegen/internal/diag"
	"reactivegen/internal/parser"
	"reactivegen/internal/source"
	"reactivegen/internal/symbols"
)

const preludeSrc = `
namespace reactive

pub interface INotifyPropertyChanged {}
pub type ReactiveObject : INotifyPropertyChanged {}
`

func planFiles(t *testing.T, srcs map[string]string) ([]*Unit, *diag.Bag) {
	t.Helper()
	units, _, _, bag := planPass(t, srcs)
	return units, bag
}

func planPass(t *testing.T, srcs map[string]string) ([]*Unit, *symbols.Pass, *classify.Oracle, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	b := symbols.NewBuilder(fs, rep)

	names := make([]string, 0, len(srcs)+1)
	names = append(names, "prelude.rx")
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
	for _, n := range names {
		src := preludeSrc
		if n != "prelude.rx" {
			src = srcs[n]
		}
		id := fs.AddVirtual(n, []byte(src))
		b.AddFile(parser.ParseFile(fs.Get(id), rep))
	}
	pass := b.Resolve()
	oracle := classify.NewOracle(pass, rep)
	return Plan(pass, oracle, rep), pass, oracle, bag
}

func unitsFor(units []*Unit, qname string) []*Unit {
	var out []*Unit
	for _, u := range units {
		if u.Type.QName == qname {
			out = append(out, u)
		}
	}
	return out
}

func TestEmitGuardedSetterAndInfra(t *testing.T) {
	units, bag := planFiles(t, map[string]string{
		"person.rx": `
namespace app::models

@reactive
pub partial type Person {
    pub prop FirstName: string? { get; priv set; }
    pub prop Age: int { get; set; }
}
`,
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	got := unitsFor(units, "app::models::Person")
	if len(got) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(got))
	}
	u := got[0]
	if u.Name != "app.models.Person.person.g.rx" {
		t.Fatalf("unexpected unit name %q", u.Name)
	}
	if !u.EmitInfra || u.Delegate {
		t.Fatalf("expected infra without delegation, got infra=%v delegate=%v", u.EmitInfra, u.Delegate)
	}

	text := string(Emit(u, Options{}))
	for _, want := range []string{
		"namespace app::models",
		"pub partial type Person : INotifyPropertyChanged {",
		"pub event PropertyChanged: PropertyChangedHandler;",
		"protected virtual fn OnPropertyChanged(propertyName: string? = caller_member) {",
		"pub partial prop FirstName: string? {",
		"priv set {",
		"if field != value {",
		"field = value;",
		"OnPropertyChanged(\"FirstName\");",
		"pub partial prop Age: int {",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "RaiseAndSetIfChanged") {
		t.Fatalf("non-capability type must not delegate:\n%s", text)
	}

	// Byte-identical on re-emission.
	if again := string(Emit(u, Options{})); again != text {
		t.Fatal("emission is not deterministic")
	}
}

func TestInfraEmittedOnceAcrossFiles(t *testing.T) {
	units, _ := planFiles(t, map[string]string{
		"a_person.rx": `
namespace app

@reactive
pub partial type Person {
    pub prop First: string { get; set; }
}
`,
		"b_person.rx": `
namespace app

pub partial type Person {
    pub prop Second: string { get; set; }
}
`,
	})
	got := unitsFor(units, "app::Person")
	if len(got) != 2 {
		t.Fatalf("expected 2 units, got %d", len(got))
	}
	if !got[0].EmitInfra || got[1].EmitInfra {
		t.Fatalf("infra must land on the first unit only: %v %v", got[0].EmitInfra, got[1].EmitInfra)
	}
	if got[0].Name != "app.Person.a_person.g.rx" || got[1].Name != "app.Person.b_person.g.rx" {
		t.Fatalf("unexpected unit names %q %q", got[0].Name, got[1].Name)
	}
	second := string(Emit(got[1], Options{}))
	if strings.Contains(second, "event PropertyChanged") {
		t.Fatalf("second unit must not duplicate the infrastructure:\n%s", second)
	}
	if strings.Contains(second, ": INotifyPropertyChanged") {
		t.Fatalf("only the infra unit declares the interface:\n%s", second)
	}
}

func TestCapabilityTypeDelegates(t *testing.T) {
	units, _ := planFiles(t, map[string]string{
		"vm.rx": `
namespace app

pub partial type Vm : ReactiveObject {
    pub prop Title: string { get; set; }
}
`,
	})
	got := unitsFor(units, "app::Vm")
	if len(got) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(got))
	}
	u := got[0]
	if u.EmitInfra || !u.Delegate {
		t.Fatalf("capability type: infra=%v delegate=%v", u.EmitInfra, u.Delegate)
	}
	text := string(Emit(u, Options{}))
	if !strings.Contains(text, "RaiseAndSetIfChanged(ref field, value, \"Title\");") {
		t.Fatalf("expected delegation:\n%s", text)
	}
	if strings.Contains(text, "if field != value") {
		t.Fatalf("delegation must not carry its own guard:\n%s", text)
	}
	if strings.Contains(text, "event PropertyChanged") {
		t.Fatalf("capability type must not re-declare infra:\n%s", text)
	}
}

func TestBackingFieldStrategy(t *testing.T) {
	units, _ := planFiles(t, map[string]string{
		"person.rx": `
namespace app

@reactive
pub partial type Person {
    pub prop FirstName: string? { get; set; }
}
`,
	})
	u := unitsFor(units, "app::Person")[0]
	text := string(Emit(u, Options{UseBackingFields: true}))
	for _, want := range []string{
		"priv field _firstName: string?;",
		"return _firstName;",
		"if _firstName != value {",
		"_firstName = value;",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "return field;") {
		t.Fatalf("strategy B must not use keyword storage:\n%s", text)
	}
}

func TestModifierOrderAndAccessorEcho(t *testing.T) {
	units, _ := planFiles(t, map[string]string{
		"p.rx": `
namespace app

@reactive
pub partial type Person {
    pub sealed override prop Name: string { get; protected set; }
}
`,
	})
	u := unitsFor(units, "app::Person")[0]
	text := string(Emit(u, Options{}))
	if !strings.Contains(text, "pub partial override sealed prop Name: string {") {
		t.Fatalf("modifiers must render in canonical order:\n%s", text)
	}
	if !strings.Contains(text, "protected set {") {
		t.Fatalf("accessor accessibility not echoed:\n%s", text)
	}
}

func TestComputedUnit(t *testing.T) {
	units, bag := planFiles(t, map[string]string{
		"vm.rx": `
namespace app

pub partial type Vm : ReactiveObject {
    @observable_as_property
    pub prop Latest: string? { get; }
}
`,
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	got := unitsFor(units, "app::Vm")
	if len(got) != 1 || got[0].Kind != UnitComputed {
		t.Fatalf("expected one computed unit, got %v", got)
	}
	if got[0].Name != "app.Vm.vm.oaph.g.rx" {
		t.Fatalf("unexpected unit name %q", got[0].Name)
	}
	text := string(Emit(got[0], Options{}))
	for _, want := range []string{
		"priv field _latest: ObservableValue<string?>?;",
		"pub partial prop Latest: string? {",
		"return _latest?.Value;",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "set {") {
		t.Fatalf("computed unit must be getter-only:\n%s", text)
	}
}

func TestComputedShapeErrors(t *testing.T) {
	_, bag := planFiles(t, map[string]string{
		"vm.rx": `
namespace app

pub partial type Vm : ReactiveObject {
    @observable_as_property
    pub prop Broken: string { get; set; }
}
`,
	})
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ClsComputedHasSetter {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected computed-has-setter diagnostic, got %v", bag.Items())
	}
}

func TestNonPartialTypeRejected(t *testing.T) {
	units, bag := planFiles(t, map[string]string{
		"p.rx": `
namespace app

@reactive
pub type Person {
    pub prop Name: string { get; set; }
}
`,
	})
	if len(unitsFor(units, "app::Person")) != 0 {
		t.Fatal("non-partial type must produce no units")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ClsMarkerOnNonPartial {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected non-partial diagnostic, got %v", bag.Items())
	}
}

func TestHandWrittenAndLoneAccessorSkipped(t *testing.T) {
	units, bag := planFiles(t, map[string]string{
		"p.rx": `
namespace app

@reactive
pub partial type Person {
    pub prop Custom: string {
        get { return _c; }
        set { _c = value; }
    }
    pub prop ReadOnly: string { get; }
    pub prop Plain: string { get; set; }
    field _c: string;
}
`,
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	got := unitsFor(units, "app::Person")
	if len(got) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(got))
	}
	if len(got[0].Props) != 1 || got[0].Props[0].Name != "Plain" {
		t.Fatalf("only the auto getter+setter property is eligible, got %v", got[0].Props)
	}
}

func TestNestedGenericsReopened(t *testing.T) {
	units, _ := planFiles(t, map[string]string{
		"o.rx": `
namespace app

pub partial type Outer<T: IComparable<T>> {
    partial type Inner<U> {
        @reactive
        pub prop Value: U? { get; set; }
    }
}
`,
	})
	got := unitsFor(units, "app::Outer::Inner")
	if len(got) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(got))
	}
	if got[0].Name != "app.Outer.Inner.o.g.rx" {
		t.Fatalf("unexpected unit name %q", got[0].Name)
	}
	text := string(Emit(got[0], Options{}))
	for _, want := range []string{
		"pub partial type Outer<T: IComparable<T>> {",
		"partial type Inner<U> : INotifyPropertyChanged {",
		"pub partial prop Value: U? {",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	// Both containers close.
	if strings.Count(text, "\n}") < 1 || !strings.HasSuffix(text, "}\n") {
		t.Fatalf("containers not closed:\n%s", text)
	}
}

func TestSameNamedFilesKeepDistinctUnitNames(t *testing.T) {
	units, bag := planFiles(t, map[string]string{
		"a/person.rx": `
namespace app

@reactive
pub partial type Person {
    pub prop First: string { get; set; }
}
`,
		"b/person.rx": `
namespace app

pub partial type Person {
    pub prop Second: string { get; set; }
}
`,
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	got := unitsFor(units, "app::Person")
	if len(got) != 2 {
		t.Fatalf("expected 2 units, got %d", len(got))
	}
	if got[0].Name != "app.Person.a.person.g.rx" || got[1].Name != "app.Person.b.person.g.rx" {
		t.Fatalf("directories must keep unit names apart, got %q %q", got[0].Name, got[1].Name)
	}
	if got[0].Name == got[1].Name {
		t.Fatal("colliding unit names would overwrite each other on disk")
	}
}

func TestDerivedReusesInfraSynthesizedOnBase(t *testing.T) {
	units, bag := planFiles(t, map[string]string{
		"base.rx": `
namespace app

@reactive
pub partial type Base {
    pub prop First: string { get; set; }
}
`,
		"derived.rx": `
namespace app

pub partial type Derived : Base {
    pub prop Second: string { get; set; }
}
`,
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	base := unitsFor(units, "app::Base")
	derived := unitsFor(units, "app::Derived")
	if len(base) != 1 || len(derived) != 1 {
		t.Fatalf("expected one unit each, got %d and %d", len(base), len(derived))
	}
	if !base[0].EmitInfra {
		t.Fatal("the base type receives the infrastructure")
	}
	if derived[0].EmitInfra {
		t.Fatal("the derived type inherits the infrastructure, it must not duplicate it")
	}
	if derived[0].Delegate {
		t.Fatal("inherited infrastructure raises through OnPropertyChanged, not delegation")
	}

	infra := 0
	for _, u := range units {
		if strings.Contains(string(Emit(u, Options{})), "pub event PropertyChanged: PropertyChangedHandler;") {
			infra++
		}
	}
	if infra != 1 {
		t.Fatalf("the event must be declared exactly once across the pass, got %d", infra)
	}

	text := string(Emit(derived[0], Options{}))
	if strings.Contains(text, ": INotifyPropertyChanged") {
		t.Fatalf("only the infra unit declares the interface:\n%s", text)
	}
	if !strings.Contains(text, "OnPropertyChanged(\"Second\");") {
		t.Fatalf("derived setter must raise through the inherited helper:\n%s", text)
	}
}

func TestExportCapabilityCoversSynthesizedInfra(t *testing.T) {
	units, pass, oracle, bag := planPass(t, map[string]string{
		"lib.rx": `
namespace lib

@reactive
pub partial type Model {
    pub prop Name: string { get; set; }
}

pub partial type Sub : Model {
    pub prop Extra: string { get; set; }
}

pub partial type Widget {
    pub prop Label: string { get; set; }
}
`,
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	has := ExportCapability(units, oracle)

	model, ok := pass.Lookup("lib::Model")
	if !ok {
		t.Fatal("lib::Model not found")
	}
	if oracle.HasCapability(model) {
		t.Fatal("Model has no capability by construction")
	}
	if !has(model) {
		t.Fatal("a type that received the infrastructure must export the capability")
	}

	sub, ok := pass.Lookup("lib::Sub")
	if !ok {
		t.Fatal("lib::Sub not found")
	}
	if !has(sub) {
		t.Fatal("a descendant of an infra type must export the capability")
	}

	widget, ok := pass.Lookup("lib::Widget")
	if !ok {
		t.Fatal("lib::Widget not found")
	}
	if has(widget) {
		t.Fatal("a plain type must not export the capability")
	}
}

func TestAccessorEchoSkipsRedundantAccess(t *testing.T) {
	units, bag := planFiles(t, map[string]string{
		"p.rx": `
namespace app

@reactive
pub partial type Person {
    pub prop Name: string { pub get; priv set; }
}
`,
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	u := unitsFor(units, "app::Person")[0]
	text := string(Emit(u, Options{}))
	if strings.Contains(text, "pub get {") {
		t.Fatalf("an accessor spelled with the property's accessibility must not be echoed:\n%s", text)
	}
	if !strings.Contains(text, "        get {") {
		t.Fatalf("getter head missing:\n%s", text)
	}
	if !strings.Contains(text, "priv set {") {
		t.Fatalf("a narrower accessor accessibility must still be echoed:\n%s", text)
	}
}

func TestBackingFieldName(t *testing.T) {
	cases := map[string]string{
		"FirstName": "_firstName",
		"URL":       "_uRL",
		"x":         "_x",
	}
	for in, want := range cases {
		if got := BackingFieldName(in); got != want {
			t.Fatalf("BackingFieldName(%q) = %q, want %q", in, got, want)
		}
	}
}
