package symbols

import (
	"strings"

	"reactivegen/internal/ast"
	"reactivegen/internal/source"
)

// Part is one partial declaration of a type in one file.
type Part struct {
	File source.FileID
	Decl *ast.TypeDecl
}

// PropSymbol is one property folded into the pass snapshot.
type PropSymbol struct {
	Name  string
	File  source.FileID
	Decl  *ast.PropDecl
	Owner *TypeSymbol
}

// FieldSymbol is one backing-field declaration.
type FieldSymbol struct {
	Name  string
	File  source.FileID
	Decl  *ast.FieldDecl
	Owner *TypeSymbol
}

// FnSymbol is one method declaration.
type FnSymbol struct {
	Name  string
	File  source.FileID
	Decl  *ast.FnDecl
	Owner *TypeSymbol
}

// TypeSymbol is the folded view of a type across all of its partial
// declarations, or an imported entry from another compiled unit.
// Symbols are read-only once the pass is built.
type TypeSymbol struct {
	QName     string // namespace::Outer::Inner
	Name      string
	Namespace string   // :: path, may be empty
	Nesting   []string // enclosing type names, outermost first

	Kind   ast.TypeKind
	Access ast.Accessibility
	Attrs  []string // merged marker names across parts

	// BaseRefs holds every base-list entry as written, across parts.
	BaseRefs []ast.TypeRef
	// Base is the resolved class-like ancestor, nil at the root.
	Base *TypeSymbol
	// Interfaces lists implemented interface names (last segment), both
	// resolved and unresolved, across parts.
	Interfaces []string

	// External marks symbols imported from a unit manifest. External
	// symbols carry no parts or members.
	External bool
	// ExternalBase is the ancestor name for external symbols whose base
	// was not itself exported.
	ExternalBase string
	// ExternalHasCapability is the exporting unit's capability verdict.
	ExternalHasCapability bool

	Parts  []Part
	Props  []*PropSymbol
	Fields []*FieldSymbol
	Fns    []*FnSymbol
}

// HasAttr reports whether any part carries the marker.
func (t *TypeSymbol) HasAttr(name string) bool {
	for _, a := range t.Attrs {
		if a == name {
			return true
		}
	}
	return false
}

// DeclaresInterface reports whether the type's own base list names the
// interface (by last segment).
func (t *TypeSymbol) DeclaresInterface(name string) bool {
	for _, i := range t.Interfaces {
		if i == name {
			return true
		}
	}
	return false
}

// IsPartial reports whether every part is marked partial. External symbols
// report false.
func (t *TypeSymbol) IsPartial() bool {
	if t.External || len(t.Parts) == 0 {
		return false
	}
	for _, p := range t.Parts {
		if !p.Decl.IsPartial() {
			return false
		}
	}
	return true
}

// RepresentativeDecl returns the first part's declaration, which carries
// the generic parameter list and the nesting chain. Nil for external types.
func (t *TypeSymbol) RepresentativeDecl() *ast.TypeDecl {
	if len(t.Parts) == 0 {
		return nil
	}
	return t.Parts[0].Decl
}

// PropsInFile returns the properties declared in the given file, in source
// order.
func (t *TypeSymbol) PropsInFile(file source.FileID) []*PropSymbol {
	var out []*PropSymbol
	for _, p := range t.Props {
		if p.File == file {
			out = append(out, p)
		}
	}
	return out
}

// FindField returns the field with the given name, if declared.
func (t *TypeSymbol) FindField(name string) (*FieldSymbol, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// QualifiedName builds a :: qualified name from namespace, nesting chain
// and the type's own name.
func QualifiedName(namespace string, nesting []string, name string) string {
	var parts []string
	if namespace != "" {
		parts = append(parts, namespace)
	}
	parts = append(parts, nesting...)
	parts = append(parts, name)
	return strings.Join(parts, "::")
}

// DisplayName renders the qualified name with dots, the shape used in
// synthesized unit file names.
func (t *TypeSymbol) DisplayName() string {
	return strings.ReplaceAll(t.QName, "::", ".")
}
