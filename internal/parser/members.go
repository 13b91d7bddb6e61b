package parser

import (
	"reactivegen/internal/ast"
	"reactivegen/internal/diag"
	"reactivegen/internal/source"
	"reactivegen/internal/token"
)

// parseMember parses one member of a type body and attaches it to decl.
func (p *Parser) parseMember(decl *ast.TypeDecl) {
	start := p.tok.Span
	attrs := p.parseAttrs()
	access, mods := p.parseAccessAndModifiers()

	switch p.tok.Kind {
	case token.KwProp:
		if prop := p.parseProp(start, attrs, access, mods); prop != nil {
			decl.Props = append(decl.Props, prop)
		}
	case token.KwField:
		if field := p.parseField(start, attrs, access, mods); field != nil {
			decl.Fields = append(decl.Fields, field)
		}
	case token.KwFn:
		if fn := p.parseFn(start, access, mods); fn != nil {
			decl.Fns = append(decl.Fns, fn)
		}
	case token.KwEvent:
		if ev := p.parseEvent(start, access, mods); ev != nil {
			decl.Events = append(decl.Events, ev)
		}
	case token.KwType, token.KwInterface:
		if nested := p.parseTypeDecl(start, attrs, access, mods, decl); nested != nil {
			decl.Nested = append(decl.Nested, nested)
		}
	default:
		p.errorf(diag.SynExpectMember, p.tok.Span,
			"expected a member declaration, found %s", p.describe(p.tok))
		p.syncTo(token.KwProp, token.KwField, token.KwFn, token.KwEvent,
			token.KwType, token.KwInterface, token.At, token.RBrace, token.Semicolon)
		p.eat(token.Semicolon)
	}
}

// parseProp parses `prop Name: Type { accessors }`.
func (p *Parser) parseProp(start source.Span, attrs ast.AttrList, access ast.Accessibility, mods ast.Modifiers) *ast.PropDecl {
	p.advance() // prop

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.syncTo(token.RBrace, token.Semicolon)
		return nil
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon); !ok {
		p.syncTo(token.RBrace, token.Semicolon)
		return nil
	}
	typ, ok := p.parseTypeRef()
	if !ok {
		p.syncTo(token.RBrace, token.Semicolon)
		return nil
	}

	prop := &ast.PropDecl{
		Name:     name.Text,
		NameSpan: name.Span,
		Span:     start,
		Attrs:    attrs,
		Access:   access,
		Mods:     mods,
		Type:     typ,
	}

	if _, ok := p.expect(token.LBrace, diag.SynExpectAccessor); !ok {
		p.syncTo(token.RBrace, token.Semicolon)
		return prop
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.parseAccessor(prop)
	}

	rb, ok := p.expect(token.RBrace, diag.SynUnclosedBrace)
	if ok {
		prop.Span = prop.Span.Cover(rb.Span)
	}
	return prop
}

// parseAccessor parses `[accessibility] get|set (';' | body)`.
func (p *Parser) parseAccessor(prop *ast.PropDecl) {
	accessorStart := p.tok.Span
	access := ast.AccessUnspecified
	if p.tok.IsAccessibility() {
		access = accessibilityOf(p.tok.Kind)
		p.advance()
	}

	isGet := false
	switch p.tok.Kind {
	case token.KwGet:
		isGet = true
	case token.KwSet:
	default:
		p.errorf(diag.SynExpectAccessor, p.tok.Span,
			"expected get or set accessor, found %s", p.describe(p.tok))
		p.syncTo(token.RBrace, token.Semicolon)
		p.eat(token.Semicolon)
		return
	}
	kwSpan := p.tok.Span
	p.advance()

	// An accessor override may only narrow the property accessibility.
	if access != ast.AccessUnspecified && prop.Access != ast.AccessUnspecified &&
		prop.Access.NarrowerThan(access) {
		p.errorf(diag.SynAccessorAccessWidens, accessorStart.Cover(kwSpan),
			"accessor accessibility must be narrower than the property accessibility")
	}

	acc := &ast.Accessor{Access: access, Span: accessorStart.Cover(kwSpan)}

	switch p.tok.Kind {
	case token.Semicolon:
		acc.Span = acc.Span.Cover(p.tok.Span)
		p.advance()
	case token.LBrace:
		acc.Body = p.parseBody()
		if acc.Body != nil {
			acc.Span = acc.Span.Cover(acc.Body.Span)
		}
	default:
		p.errorf(diag.SynExpectSemicolon, p.tok.Span,
			"expected ';' or an accessor body, found %s", p.describe(p.tok))
		p.syncTo(token.RBrace, token.Semicolon)
		p.eat(token.Semicolon)
	}

	if isGet {
		if prop.Get != nil {
			p.errorf(diag.SynDuplicateAccessor, acc.Span, "duplicate get accessor")
			return
		}
		prop.Get = acc
	} else {
		if prop.Set != nil {
			p.errorf(diag.SynDuplicateAccessor, acc.Span, "duplicate set accessor")
			return
		}
		prop.Set = acc
	}
}

// parseField parses `field name: Type [= init] ;`.
func (p *Parser) parseField(start source.Span, attrs ast.AttrList, access ast.Accessibility, mods ast.Modifiers) *ast.FieldDecl {
	p.advance() // field

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.syncTo(token.RBrace, token.Semicolon)
		p.eat(token.Semicolon)
		return nil
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon); !ok {
		p.syncTo(token.RBrace, token.Semicolon)
		p.eat(token.Semicolon)
		return nil
	}
	typ, ok := p.parseTypeRef()
	if !ok {
		p.syncTo(token.RBrace, token.Semicolon)
		p.eat(token.Semicolon)
		return nil
	}

	// Marker attributes have no meaning on fields.
	for _, a := range attrs {
		p.errorf(diag.SynAttributeNotAllowed, a.Span,
			"attribute @%s is not allowed on a field", a.Name)
	}

	field := &ast.FieldDecl{
		Name:     name.Text,
		NameSpan: name.Span,
		Span:     start,
		Access:   access,
		Mods:     mods,
		Type:     typ,
	}

	if p.at(token.Assign) {
		initStart := p.tok.Span
		p.advance()
		field.Init = p.captureUntilSemicolon(initStart)
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	if ok {
		field.Span = field.Span.Cover(semi.Span)
	} else {
		field.Span = field.Span.Cover(typ.Span)
		p.syncTo(token.RBrace, token.Semicolon)
		p.eat(token.Semicolon)
	}
	return field
}

// parseFn parses `fn name(params) [: Type] (body | ;)`.
func (p *Parser) parseFn(start source.Span, access ast.Accessibility, mods ast.Modifiers) *ast.FnDecl {
	p.advance() // fn

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.syncTo(token.RBrace, token.Semicolon)
		p.eat(token.Semicolon)
		return nil
	}

	fn := &ast.FnDecl{
		Name:     name.Text,
		NameSpan: name.Span,
		Span:     start,
		Access:   access,
		Mods:     mods,
	}

	lp, ok := p.expect(token.LParen, diag.SynUnclosedParen)
	if !ok {
		p.syncTo(token.RBrace, token.Semicolon)
		p.eat(token.Semicolon)
		return fn
	}
	fn.Params = p.captureParens(lp.Span)
	if fn.Params != nil {
		fn.ParamsSpan = fn.Params.Span
	}

	if p.eat(token.Colon) {
		if _, ok := p.parseTypeRef(); !ok {
			p.syncTo(token.RBrace, token.Semicolon, token.LBrace)
		}
	}

	switch p.tok.Kind {
	case token.LBrace:
		fn.Body = p.parseBody()
		if fn.Body != nil {
			fn.Span = fn.Span.Cover(fn.Body.Span)
		}
	case token.Semicolon:
		fn.Span = fn.Span.Cover(p.tok.Span)
		p.advance()
	default:
		p.errorf(diag.SynExpectSemicolon, p.tok.Span,
			"expected ';' or a fn body, found %s", p.describe(p.tok))
		p.syncTo(token.RBrace, token.Semicolon)
		p.eat(token.Semicolon)
	}
	return fn
}

// parseEvent parses `event Name: HandlerType ;`.
func (p *Parser) parseEvent(start source.Span, access ast.Accessibility, mods ast.Modifiers) *ast.EventDecl {
	p.advance() // event

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.syncTo(token.RBrace, token.Semicolon)
		p.eat(token.Semicolon)
		return nil
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon); !ok {
		p.syncTo(token.RBrace, token.Semicolon)
		p.eat(token.Semicolon)
		return nil
	}
	typ, ok := p.parseTypeRef()
	if !ok {
		p.syncTo(token.RBrace, token.Semicolon)
		p.eat(token.Semicolon)
		return nil
	}

	ev := &ast.EventDecl{
		Name:     name.Text,
		NameSpan: name.Span,
		Span:     start,
		Access:   access,
		Mods:     mods,
		Type:     typ,
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	if ok {
		ev.Span = ev.Span.Cover(semi.Span)
	} else {
		ev.Span = ev.Span.Cover(typ.Span)
	}
	return ev
}
