package symbols

import (
	"fmt"
	"sort"

	"reactivegen/internal/ast"
	"reactivegen/internal/diag"
	"reactivegen/internal/source"
)

// BuiltinNamespace is where the embedded prelude declares the well-known
// notification types.
const BuiltinNamespace = "reactive"

// Pass is the immutable symbol snapshot of one compilation pass. It is
// built once, then only read; the driver may hand it to concurrent
// synthesis goroutines.
type Pass struct {
	FileSet *source.FileSet
	Files   []*ast.File

	types   map[string]*TypeSymbol
	ordered []*TypeSymbol

	// parseClean is false when any file produced syntax errors; reference
	// counting is then inconclusive and field deletion is suppressed.
	parseClean bool
}

// Builder accumulates files and external entries, then resolves the pass.
type Builder struct {
	fileSet  *source.FileSet
	reporter diag.Reporter
	pass     *Pass
}

// NewBuilder starts a pass over the given file set.
func NewBuilder(fileSet *source.FileSet, reporter diag.Reporter) *Builder {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Builder{
		fileSet:  fileSet,
		reporter: reporter,
		pass: &Pass{
			FileSet:    fileSet,
			types:      make(map[string]*TypeSymbol),
			parseClean: true,
		},
	}
}

// SetParseClean records whether all inputs parsed without errors.
func (b *Builder) SetParseClean(clean bool) {
	b.pass.parseClean = clean
}

// AddFile folds one parsed file into the pass.
func (b *Builder) AddFile(f *ast.File) {
	b.pass.Files = append(b.pass.Files, f)
	ns := f.NamespacePath()
	for _, decl := range f.Types {
		b.addDecl(f.FileID, ns, nil, decl)
	}
}

func (b *Builder) addDecl(file source.FileID, namespace string, nesting []string, decl *ast.TypeDecl) {
	qname := QualifiedName(namespace, nesting, decl.Name)

	sym, exists := b.pass.types[qname]
	if !exists {
		sym = &TypeSymbol{
			QName:     qname,
			Name:      decl.Name,
			Namespace: namespace,
			Nesting:   append([]string(nil), nesting...),
			Kind:      decl.Kind,
			Access:    decl.Access,
		}
		b.pass.types[qname] = sym
		b.pass.ordered = append(b.pass.ordered, sym)
	} else {
		// A second declaration of the same name is only legal when both
		// pieces are partial.
		if !decl.IsPartial() || !sym.IsPartial() {
			b.reporter.Report(diag.NewError(diag.ClsDuplicateType, decl.NameSpan,
				fmt.Sprintf("type %q is declared more than once; mark every piece partial", qname)))
			return
		}
	}

	sym.Parts = append(sym.Parts, Part{File: file, Decl: decl})

	for _, a := range decl.Attrs {
		if !sym.HasAttr(a.Name) {
			sym.Attrs = append(sym.Attrs, a.Name)
		}
	}
	sym.BaseRefs = append(sym.BaseRefs, decl.Bases...)

	for _, p := range decl.Props {
		if b.duplicateProp(sym, p.Name) {
			b.reporter.Report(diag.NewError(diag.ClsDuplicateProperty, p.NameSpan,
				fmt.Sprintf("property %q is declared more than once on %q", p.Name, qname)))
			continue
		}
		sym.Props = append(sym.Props, &PropSymbol{
			Name:  p.Name,
			File:  file,
			Decl:  p,
			Owner: sym,
		})
	}
	for _, f := range decl.Fields {
		sym.Fields = append(sym.Fields, &FieldSymbol{
			Name:  f.Name,
			File:  file,
			Decl:  f,
			Owner: sym,
		})
	}
	for _, fn := range decl.Fns {
		sym.Fns = append(sym.Fns, &FnSymbol{
			Name:  fn.Name,
			File:  file,
			Decl:  fn,
			Owner: sym,
		})
	}

	for _, nested := range decl.Nested {
		b.addDecl(file, namespace, append(nesting, decl.Name), nested)
	}
}

func (b *Builder) duplicateProp(sym *TypeSymbol, name string) bool {
	for _, p := range sym.Props {
		if p.Name == name {
			return true
		}
	}
	return false
}

// AddExternal imports one type entry from another compiled unit.
func (b *Builder) AddExternal(entry ExternalType) {
	if _, exists := b.pass.types[entry.QName]; exists {
		return
	}
	kind := ast.KindType
	if entry.IsInterface {
		kind = ast.KindInterface
	}
	sym := &TypeSymbol{
		QName:                 entry.QName,
		Name:                  lastSegment(entry.QName),
		Namespace:             namespaceOf(entry.QName),
		Kind:                  kind,
		Attrs:                 append([]string(nil), entry.Attrs...),
		Interfaces:            append([]string(nil), entry.Interfaces...),
		External:              true,
		ExternalBase:          entry.Base,
		ExternalHasCapability: entry.HasCapability,
	}
	b.pass.types[entry.QName] = sym
	b.pass.ordered = append(b.pass.ordered, sym)
}

// Resolve links base references and finishes the pass. The returned Pass
// must not be mutated afterwards.
func (b *Builder) Resolve() *Pass {
	for _, sym := range b.pass.ordered {
		if sym.External {
			b.resolveExternalBase(sym)
			continue
		}
		b.resolveBases(sym)
	}
	// Deterministic iteration order for everything downstream.
	sort.SliceStable(b.pass.ordered, func(i, j int) bool {
		return b.pass.ordered[i].QName < b.pass.ordered[j].QName
	})
	return b.pass
}

func (b *Builder) resolveExternalBase(sym *TypeSymbol) {
	if sym.ExternalBase == "" {
		return
	}
	if base, ok := b.lookup(sym.Namespace, sym.ExternalBase); ok && base != sym {
		sym.Base = base
	}
}

// resolveBases splits the written base list into the resolved class-like
// ancestor and the implemented interfaces.
func (b *Builder) resolveBases(sym *TypeSymbol) {
	for _, ref := range sym.BaseRefs {
		target, ok := b.lookup(sym.Namespace, ref.Qualified())
		if !ok {
			// Unresolved names stay visible to the capability probe as
			// interface names; a missing class base cannot contribute an
			// ancestor chain anyway.
			b.reporter.Report(diag.NewWarning(diag.ClsUnknownBase, ref.Span,
				fmt.Sprintf("unknown base %q; classification treats it as an interface name", ref.String())))
			sym.Interfaces = appendUnique(sym.Interfaces, ref.Name())
			continue
		}
		if target.Kind == ast.KindInterface {
			sym.Interfaces = appendUnique(sym.Interfaces, target.Name)
			continue
		}
		if sym.Base == nil && target != sym {
			sym.Base = target
		}
	}
}

// lookup resolves a possibly-qualified name against the current namespace,
// the global scope, and the builtin prelude namespace, in that order.
func (b *Builder) lookup(namespace, name string) (*TypeSymbol, bool) {
	if namespace != "" {
		if t, ok := b.pass.types[namespace+"::"+name]; ok {
			return t, true
		}
	}
	if t, ok := b.pass.types[name]; ok {
		return t, true
	}
	if t, ok := b.pass.types[BuiltinNamespace+"::"+name]; ok {
		return t, true
	}
	return nil, false
}

// Lookup resolves a qualified name in the finished pass.
func (p *Pass) Lookup(qname string) (*TypeSymbol, bool) {
	t, ok := p.types[qname]
	return t, ok
}

// Types returns all symbols in deterministic (qualified name) order.
func (p *Pass) Types() []*TypeSymbol {
	return p.ordered
}

// InternalTypes returns non-external symbols in deterministic order.
func (p *Pass) InternalTypes() []*TypeSymbol {
	out := make([]*TypeSymbol, 0, len(p.ordered))
	for _, t := range p.ordered {
		if !t.External {
			out = append(out, t)
		}
	}
	return out
}

// ParseClean reports whether every input file parsed without errors.
func (p *Pass) ParseClean() bool {
	return p.parseClean
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func lastSegment(qname string) string {
	for i := len(qname) - 1; i >= 1; i-- {
		if qname[i-1] == ':' && qname[i] == ':' {
			return qname[i+1:]
		}
	}
	return qname
}

func namespaceOf(qname string) string {
	for i := len(qname) - 1; i >= 1; i-- {
		if qname[i-1] == ':' && qname[i] == ':' {
			return qname[:i-1]
		}
	}
	return ""
}
