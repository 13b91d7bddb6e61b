package ast

import "reactivegen/internal/source"

// IdentUse is one identifier occurrence inside a raw body.
type IdentUse struct {
	Name string
	Span source.Span
}

// Body is a raw brace-balanced token run. Identifier uses are recorded for
// pattern detection and reference counting; nothing else is interpreted.
type Body struct {
	Span   source.Span // braces inclusive
	Idents []IdentUse
}

// References reports whether the body mentions the identifier.
func (b *Body) References(name string) bool {
	if b == nil {
		return false
	}
	for _, id := range b.Idents {
		if id.Name == name {
			return true
		}
	}
	return false
}

// CountReferences returns the number of identifier occurrences.
func (b *Body) CountReferences(name string) int {
	if b == nil {
		return 0
	}
	n := 0
	for _, id := range b.Idents {
		if id.Name == name {
			n++
		}
	}
	return n
}

// Accessor is a get or set accessor. Body is nil for auto accessors
// (`get;`), non-nil when the accessor is hand-written.
type Accessor struct {
	Access Accessibility // override narrower than the property, or unspecified
	Body   *Body
	Span   source.Span
}

// PropDecl is one property declaration.
type PropDecl struct {
	Name     string
	NameSpan source.Span
	Span     source.Span // whole declaration including attributes
	Attrs    AttrList
	Access   Accessibility
	Mods     Modifiers
	Type     TypeRef
	Get      *Accessor
	Set      *Accessor
}

// HasGetter reports whether a get accessor is declared.
func (p *PropDecl) HasGetter() bool { return p.Get != nil }

// HasSetter reports whether a set accessor is declared.
func (p *PropDecl) HasSetter() bool { return p.Set != nil }

// IsHandWritten reports whether any accessor has a body.
func (p *PropDecl) IsHandWritten() bool {
	return (p.Get != nil && p.Get.Body != nil) || (p.Set != nil && p.Set.Body != nil)
}

// FieldDecl is one `field _name: T` declaration, optionally initialized.
type FieldDecl struct {
	Name     string
	NameSpan source.Span
	Span     source.Span // whole declaration including terminator
	Access   Accessibility
	Mods     Modifiers
	Type     TypeRef
	Init     *Body // initializer token run, nil when absent
}

// FnDecl is a method declaration. Parameters are kept as a raw span; the
// body is captured like any other body.
type FnDecl struct {
	Name       string
	NameSpan   source.Span
	Span       source.Span
	Access     Accessibility
	Mods       Modifiers
	ParamsSpan source.Span
	Params     *Body // parameter token run, idents recorded
	Body       *Body // nil for bodyless signatures (interfaces, abstract)
}

// EventDecl is an `event Name: HandlerType` declaration.
type EventDecl struct {
	Name     string
	NameSpan source.Span
	Span     source.Span
	Access   Accessibility
	Mods     Modifiers
	Type     TypeRef
}
