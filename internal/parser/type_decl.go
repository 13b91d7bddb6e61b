package parser

import (
	"reactivegen/internal/ast"
	"reactivegen/internal/diag"
	"reactivegen/internal/source"
	"reactivegen/internal/token"
)

// parseTypeDecl parses a `type` or `interface` declaration. The start span
// points at the first token of the declaration (attribute, accessibility,
// modifier, or keyword).
func (p *Parser) parseTypeDecl(start source.Span, attrs ast.AttrList, access ast.Accessibility, mods ast.Modifiers, parent *ast.TypeDecl) *ast.TypeDecl {
	kind := ast.KindType
	if p.at(token.KwInterface) {
		kind = ast.KindInterface
	}
	p.advance() // type | interface

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.syncTo(token.KwType, token.KwInterface, token.At, token.RBrace)
		return nil
	}

	decl := &ast.TypeDecl{
		Kind:     kind,
		Name:     name.Text,
		NameSpan: name.Span,
		Span:     start.Cover(name.Span),
		Attrs:    attrs,
		Access:   access,
		Mods:     mods,
		Parent:   parent,
	}

	decl.TypeParams = p.parseTypeParams()

	if p.eat(token.Colon) {
		for {
			base, ok := p.parseTypeRef()
			if !ok {
				break
			}
			decl.Bases = append(decl.Bases, base)
			if p.eat(token.Comma) {
				continue
			}
			break
		}
	}

	lb, ok := p.expect(token.LBrace, diag.SynUnclosedBrace)
	if !ok {
		p.syncTo(token.KwType, token.KwInterface, token.At)
		return decl
	}
	decl.BodySpan = lb.Span

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.parseMember(decl)
	}

	rb, ok := p.expect(token.RBrace, diag.SynUnclosedBrace)
	if ok {
		decl.BodySpan = decl.BodySpan.Cover(rb.Span)
	} else {
		// Unclosed body: stretch to the recovery point so member spans
		// stay inside the declaration.
		decl.BodySpan = decl.BodySpan.Cover(p.tok.Span)
	}
	decl.Span = decl.Span.Cover(decl.BodySpan)
	return decl
}
