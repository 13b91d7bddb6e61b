package ast

import "reactivegen/internal/source"

// TypeKind separates class-like types from interfaces.
type TypeKind uint8

const (
	KindType TypeKind = iota
	KindInterface
)

// TypeDecl is one `type` or `interface` declaration. A partial type split
// across files produces one TypeDecl per file; the symbol layer folds them.
type TypeDecl struct {
	Kind       TypeKind
	Name       string
	NameSpan   source.Span
	Span       source.Span // whole declaration including attributes
	BodySpan   source.Span // braces inclusive
	Attrs      AttrList
	Access     Accessibility
	Mods       Modifiers
	TypeParams []TypeParam
	Bases      []TypeRef // base type and/or interfaces, in source order

	Props  []*PropDecl
	Fields []*FieldDecl
	Fns    []*FnDecl
	Events []*EventDecl
	Nested []*TypeDecl

	Parent *TypeDecl // enclosing type, nil at top level
}

// IsPartial reports whether the declaration carries the partial modifier.
func (d *TypeDecl) IsPartial() bool {
	return d.Mods.Has(ModPartial)
}

// NestingChain returns the enclosing declarations from outermost to this
// one, inclusive.
func (d *TypeDecl) NestingChain() []*TypeDecl {
	var chain []*TypeDecl
	for cur := d; cur != nil; cur = cur.Parent {
		chain = append([]*TypeDecl{cur}, chain...)
	}
	return chain
}
