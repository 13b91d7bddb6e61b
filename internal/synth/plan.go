// Package synth plans and emits synthesized declaration units: the
// notification counterparts of classified properties, the per-type
// capability infrastructure, and computed-property holders.
package synth

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"reactivegen/internal/ast"
	"reactivegen/internal/classify"
	"reactivegen/internal/diag"
	"reactivegen/internal/source"
	"reactivegen/internal/symbols"
)

// Options are the storage knobs resolved from the project manifest.
type Options struct {
	// UseBackingFields switches setters from compiler-managed `field`
	// storage to named backing fields.
	UseBackingFields bool
}

// UnitKind separates notification units from computed-property units.
type UnitKind uint8

const (
	UnitNotify UnitKind = iota
	UnitComputed
)

// Unit is one output file to synthesize: all eligible properties of one
// type that originate in one source file.
type Unit struct {
	Kind UnitKind
	Type *symbols.TypeSymbol
	File source.FileID
	// Decl is the type's partial declaration in File; its nesting chain
	// and generic parameters shape the re-opened containers.
	Decl  *ast.TypeDecl
	Props []*symbols.PropSymbol

	// EmitInfra is set on exactly one notify unit per type that lacks the
	// notification capability.
	EmitInfra bool
	// Delegate switches setters to RaiseAndSetIfChanged delegation; set
	// when the type has the capability by construction.
	Delegate bool

	// Name is the deterministic output file name.
	Name string
}

// typePlan is the partition of one type's eligible properties by
// originating file, kept around so infrastructure placement can see every
// type of the pass before units are built.
type typePlan struct {
	t        *symbols.TypeSymbol
	notify   map[source.FileID][]*symbols.PropSymbol
	computed map[source.FileID][]*symbols.PropSymbol
}

// Plan classifies every internal type of the pass and groups eligible
// properties into units. The returned slice is in deterministic order:
// type name, then kind, then originating file path. Storage options only
// matter at emission time.
func Plan(pass *symbols.Pass, oracle *classify.Oracle, reporter diag.Reporter) []*Unit {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	// Partition first, across the whole pass: whether a type needs its own
	// event and raise helpers depends on what its ancestors receive.
	plans := make(map[*symbols.TypeSymbol]*typePlan)
	for _, t := range pass.InternalTypes() {
		if tp := collectType(oracle, t, reporter); tp != nil {
			plans[t] = tp
		}
	}

	var units []*Unit
	for _, t := range pass.InternalTypes() {
		tp, ok := plans[t]
		if !ok {
			continue
		}
		units = append(units, buildUnits(pass, oracle, tp, plans)...)
	}
	sort.SliceStable(units, func(i, j int) bool {
		a, b := units[i], units[j]
		if a.Type.QName != b.Type.QName {
			return a.Type.QName < b.Type.QName
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return pass.FileSet.Get(a.File).Path < pass.FileSet.Get(b.File).Path
	})
	return units
}

// collectType partitions a type's properties into notify and computed
// candidates. Types with nothing to synthesize, and non-partial types
// (reported), produce no plan.
func collectType(oracle *classify.Oracle, t *symbols.TypeSymbol, reporter diag.Reporter) *typePlan {
	if t.Kind == ast.KindInterface || len(t.Parts) == 0 {
		return nil
	}

	typeNotifying := oracle.ClassifyType(t)

	notify := make(map[source.FileID][]*symbols.PropSymbol)
	computed := make(map[source.FileID][]*symbols.PropSymbol)
	for _, p := range t.Props {
		if p.Decl.Attrs.Has(ast.AttrObservableAsProperty) {
			if !planComputed(p, reporter) {
				continue
			}
			computed[p.File] = append(computed[p.File], p)
			continue
		}
		if oracle.ClassifyProperty(p, typeNotifying) != classify.Notifying {
			continue
		}
		// Hand-written accessors keep their author's semantics; a
		// one-accessor property has nothing to pair a guard with.
		if p.Decl.IsHandWritten() || !p.Decl.HasGetter() || !p.Decl.HasSetter() {
			continue
		}
		notify[p.File] = append(notify[p.File], p)
	}
	if len(notify) == 0 && len(computed) == 0 {
		return nil
	}

	// Synthesis re-opens the type in another file, which only merges when
	// every declared piece is partial.
	if !t.IsPartial() {
		reporter.Report(diag.NewError(diag.ClsMarkerOnNonPartial,
			t.RepresentativeDecl().NameSpan,
			fmt.Sprintf("type %q needs notification members but is not partial", t.QName)))
		return nil
	}

	return &typePlan{t: t, notify: notify, computed: computed}
}

func buildUnits(pass *symbols.Pass, oracle *classify.Oracle, tp *typePlan, plans map[*symbols.TypeSymbol]*typePlan) []*Unit {
	t := tp.t
	hasCapability := oracle.HasCapability(t)

	var units []*Unit
	for file, props := range tp.notify {
		units = append(units, &Unit{
			Kind:     UnitNotify,
			Type:     t,
			File:     file,
			Decl:     declInFile(t, file),
			Props:    props,
			Delegate: hasCapability,
			Name:     unitName(pass, t, file, UnitNotify),
		})
	}
	for file, props := range tp.computed {
		units = append(units, &Unit{
			Kind:  UnitComputed,
			Type:  t,
			File:  file,
			Decl:  declInFile(t, file),
			Props: props,
			Name:  unitName(pass, t, file, UnitComputed),
		})
	}
	sort.Slice(units, func(i, j int) bool {
		a, b := units[i], units[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return pass.FileSet.Get(a.File).Path < pass.FileSet.Get(b.File).Path
	})

	// The event and raise helpers go into the first notify unit only, and
	// only when no ancestor already provides them: an ancestor with the
	// capability is covered by the probe, an ancestor that receives the
	// infrastructure this pass hands it down through inheritance.
	if !hasCapability && !inheritsSynthesizedInfra(t, plans) {
		for _, u := range units {
			if u.Kind == UnitNotify {
				u.EmitInfra = true
				break
			}
		}
	}
	return units
}

// inheritsSynthesizedInfra reports whether a strict ancestor receives the
// event and raise helpers in this pass. The descendant's setters then
// reach OnPropertyChanged through inheritance.
func inheritsSynthesizedInfra(t *symbols.TypeSymbol, plans map[*symbols.TypeSymbol]*typePlan) bool {
	seen := map[*symbols.TypeSymbol]bool{t: true}
	for cur := t.Base; cur != nil && !seen[cur]; cur = cur.Base {
		seen[cur] = true
		if tp, ok := plans[cur]; ok && len(tp.notify) > 0 {
			return true
		}
	}
	return false
}

// ExportCapability returns the capability verdict recorded in the unit
// manifest: the capability by construction, or notification infrastructure
// synthesized this pass onto the type or one of its ancestors. Importing
// units must see the finished surface, not the pre-synthesis one.
func ExportCapability(units []*Unit, oracle *classify.Oracle) func(*symbols.TypeSymbol) bool {
	notifying := make(map[*symbols.TypeSymbol]bool)
	for _, u := range units {
		if u.Kind == UnitNotify {
			notifying[u.Type] = true
		}
	}
	return func(t *symbols.TypeSymbol) bool {
		if oracle.HasCapability(t) {
			return true
		}
		seen := make(map[*symbols.TypeSymbol]bool)
		for cur := t; cur != nil && !seen[cur]; cur = cur.Base {
			seen[cur] = true
			if notifying[cur] {
				return true
			}
		}
		return false
	}
}

// planComputed validates an @observable_as_property declaration. Invalid
// shapes are reported and dropped.
func planComputed(p *symbols.PropSymbol, reporter diag.Reporter) bool {
	if !p.Decl.HasGetter() {
		reporter.Report(diag.NewError(diag.ClsComputedNeedsGetter, p.Decl.NameSpan,
			fmt.Sprintf("computed property %q needs a get accessor", p.Name)))
		return false
	}
	if p.Decl.HasSetter() {
		reporter.Report(diag.NewError(diag.ClsComputedHasSetter, p.Decl.NameSpan,
			fmt.Sprintf("computed property %q must not declare a set accessor", p.Name)))
		return false
	}
	return !p.Decl.IsHandWritten()
}

func declInFile(t *symbols.TypeSymbol, file source.FileID) *ast.TypeDecl {
	for _, part := range t.Parts {
		if part.File == file {
			return part.Decl
		}
	}
	return t.RepresentativeDecl()
}

// unitName builds the deterministic output file name:
// <Dotted.Type>.<sourceStem>.g.rx, with an extra .oaph segment for
// computed units.
func unitName(pass *symbols.Pass, t *symbols.TypeSymbol, file source.FileID, kind UnitKind) string {
	stem := unitStem(pass.FileSet, file)
	if kind == UnitComputed {
		return t.DisplayName() + "." + stem + ".oaph.g.rx"
	}
	return t.DisplayName() + "." + stem + ".g.rx"
}

// unitStem derives the per-file name segment from the project-relative
// source path, so same-named files in different directories keep distinct
// unit names. Separators become dots; anything else unusual in a file
// name becomes an underscore.
func unitStem(fs *source.FileSet, file source.FileID) string {
	path := fs.Get(file).Path
	if filepath.IsAbs(path) {
		if rel, err := filepath.Rel(fs.BaseDir(), path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	path = strings.TrimSuffix(filepath.ToSlash(path), ".rx")

	var sb strings.Builder
	for _, r := range path {
		switch {
		case r == '/' || r == '\\':
			sb.WriteByte('.')
		case r == '.' || r == '_' || r == '-',
			'0' <= r && r <= '9',
			'a' <= r && r <= 'z',
			'A' <= r && r <= 'Z':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
