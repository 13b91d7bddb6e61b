// Package analyzer finds hand-written change-notification boilerplate
// that the generator could own, and attaches the mechanical rewrite.
package analyzer

import (
	"fmt"
	"strings"

	"reactivegen/internal/ast"
	"reactivegen/internal/classify"
	"reactivegen/internal/diag"
	"reactivegen/internal/source"
	"reactivegen/internal/symbols"
	"reactivegen/internal/synth"
)

// FixID prefixes every rewrite produced here; the full ID is stable per
// property so `fix --id` can target one occurrence.
const FixID = "manual-notify"

// Analyze scans every internal type for the manual notification pattern.
// Each finding is reported and also returned, fixes attached, for the
// rewriter.
func Analyze(pass *symbols.Pass, oracle *classify.Oracle, reporter diag.Reporter) []diag.Diagnostic {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	var found []diag.Diagnostic
	for _, t := range pass.InternalTypes() {
		if t.Kind == ast.KindInterface {
			continue
		}
		for _, p := range t.Props {
			d, ok := analyzeProp(pass, oracle, p)
			if !ok {
				continue
			}
			reporter.Report(d)
			found = append(found, d)
		}
	}
	return found
}

// analyzeProp matches one property against the pattern: paired accessors,
// a hand-written setter that calls the raise helper on the conventional
// backing field, inside a type that already has the capability.
func analyzeProp(pass *symbols.Pass, oracle *classify.Oracle, p *symbols.PropSymbol) (diag.Diagnostic, bool) {
	d := p.Decl
	if !d.HasGetter() || !d.HasSetter() || d.Set.Body == nil {
		return diag.Diagnostic{}, false
	}
	if !d.Set.Body.References(classify.RaiseMethod) {
		return diag.Diagnostic{}, false
	}
	storage := synth.BackingFieldName(p.Name)
	if !d.Set.Body.References(storage) {
		return diag.Diagnostic{}, false
	}
	if !oracle.HasCapability(p.Owner) {
		return diag.Diagnostic{}, false
	}
	// Already marked; nothing left to rewrite.
	if d.Attrs.Has(ast.AttrReactive) {
		return diag.Diagnostic{}, false
	}

	file := pass.FileSet.Get(p.File)
	fx := buildFix(pass, p, file, storage)

	out := diag.NewInfo(diag.AnaManualNotifyPattern, d.NameSpan,
		fmt.Sprintf("property %q raises change notification by hand; @reactive can synthesize it", p.Name)).
		WithFix(fx)
	return out, true
}

// buildFix assembles the rewrite: the declaration collapses to an
// @reactive shell, and the backing field goes away when nothing else
// reads it.
func buildFix(pass *symbols.Pass, p *symbols.PropSymbol, file *source.File, storage string) diag.Fix {
	d := p.Decl
	indent := lineIndent(file, d.Span.Start)
	shell := "@reactive\n" + indent + shellDecl(d)

	fx := diag.Fix{
		ID:            fmt.Sprintf("%s/%s.%s", FixID, p.Owner.DisplayName(), p.Name),
		Title:         fmt.Sprintf("replace %s with an @reactive partial property", p.Name),
		Kind:          diag.FixKindRefactorRewrite,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		IsPreferred:   true,
		Edits: []diag.TextEdit{{
			Span:    d.Span,
			NewText: shell,
			OldText: string(file.Content[d.Span.Start:d.Span.End]),
		}},
	}

	field, ok := p.Owner.FindField(storage)
	if !ok {
		return fx
	}
	// The getter and setter account for two uses; any additional reader
	// means the field must survive the rewrite. A dirty parse makes every
	// count a lower bound, so it keeps the field too.
	if !pass.RefsConclusive() || countPassReferences(pass, storage) > 2 {
		return fx
	}
	fieldFile := pass.FileSet.Get(field.File)
	span := lineExtent(fieldFile, field.Decl.Span)
	fx.Edits = append(fx.Edits, diag.TextEdit{
		Span:    span,
		NewText: "",
		OldText: string(fieldFile.Content[span.Start:span.End]),
	})
	return fx
}

// shellDecl renders the @reactive replacement declaration: same
// accessibility, structural modifiers, type and accessor accessibilities,
// auto accessors only.
func shellDecl(d *ast.PropDecl) string {
	var sb strings.Builder
	if d.Access != ast.AccessUnspecified {
		sb.WriteString(d.Access.String())
		sb.WriteByte(' ')
	}
	if mods := d.Mods.Structural().String(); mods != "" {
		sb.WriteString(mods)
		sb.WriteByte(' ')
	}
	sb.WriteString("prop ")
	sb.WriteString(d.Name)
	sb.WriteString(": ")
	sb.WriteString(d.Type.String())
	sb.WriteString(" { ")
	if d.Get != nil && d.Get.Access != ast.AccessUnspecified {
		sb.WriteString(d.Get.Access.String())
		sb.WriteByte(' ')
	}
	sb.WriteString("get; ")
	if d.Set != nil && d.Set.Access != ast.AccessUnspecified {
		sb.WriteString(d.Set.Access.String())
		sb.WriteByte(' ')
	}
	sb.WriteString("set; }")
	return sb.String()
}

// countPassReferences totals identifier uses across every internal type.
func countPassReferences(pass *symbols.Pass, name string) int {
	n := 0
	for _, t := range pass.InternalTypes() {
		n += t.CountReferences(name)
	}
	return n
}

// lineIndent returns the whitespace prefix of the line containing off.
func lineIndent(file *source.File, off uint32) string {
	start := lineStart(file, off)
	end := start
	for end < uint32(len(file.Content)) {
		b := file.Content[end]
		if b != ' ' && b != '\t' {
			break
		}
		end++
	}
	return string(file.Content[start:end])
}

// lineExtent widens a span to whole lines, trailing newline included, so
// deleting it leaves no blank residue.
func lineExtent(file *source.File, span source.Span) source.Span {
	start := lineStart(file, span.Start)
	end := span.End
	for end < uint32(len(file.Content)) {
		b := file.Content[end]
		end++
		if b == '\n' {
			break
		}
	}
	return source.Span{File: span.File, Start: start, End: end}
}

func lineStart(file *source.File, off uint32) uint32 {
	start := off
	for start > 0 && file.Content[start-1] != '\n' {
		start--
	}
	return start
}
