package parser

import (
	"reactivegen/internal/ast"
	"reactivegen/internal/diag"
	"reactivegen/internal/token"
)

// parseTypeRef parses `seg(::seg)* (<args>)? ?`.
func (p *Parser) parseTypeRef() (ast.TypeRef, bool) {
	first, ok := p.expect(token.Ident, diag.SynExpectType)
	if !ok {
		return ast.TypeRef{}, false
	}

	ref := ast.TypeRef{
		Parts: []string{first.Text},
		Span:  first.Span,
	}

	for p.at(token.ColonColon) {
		p.advance()
		seg, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			return ref, false
		}
		ref.Parts = append(ref.Parts, seg.Text)
		ref.Span = ref.Span.Cover(seg.Span)
	}

	if p.at(token.Lt) {
		p.advance()
		for {
			arg, ok := p.parseTypeRef()
			if !ok {
				return ref, false
			}
			ref.Args = append(ref.Args, arg)
			if p.eat(token.Comma) {
				continue
			}
			break
		}
		gt, ok := p.expect(token.Gt, diag.SynUnclosedAngle)
		if !ok {
			return ref, false
		}
		ref.Span = ref.Span.Cover(gt.Span)
	}

	if p.at(token.Question) {
		ref.Nullable = true
		ref.Span = ref.Span.Cover(p.tok.Span)
		p.advance()
	}
	return ref, true
}

// parseTypeParams parses `<T, U: Bound + Bound>`, returning nil when the
// declaration has no parameter list.
func (p *Parser) parseTypeParams() []ast.TypeParam {
	if !p.at(token.Lt) {
		return nil
	}
	p.advance()

	var params []ast.TypeParam
	for {
		name, ok := p.expect(token.Ident, diag.SynExpectTypeParam)
		if !ok {
			p.syncTo(token.Gt, token.LBrace)
			break
		}
		param := ast.TypeParam{Name: name.Text, Span: name.Span}

		if p.eat(token.Colon) {
			for {
				bound, ok := p.parseTypeRef()
				if !ok {
					break
				}
				param.Bounds = append(param.Bounds, bound)
				param.Span = param.Span.Cover(bound.Span)
				if p.eat(token.Plus) {
					continue
				}
				break
			}
		}
		params = append(params, param)

		if p.eat(token.Comma) {
			continue
		}
		break
	}
	p.expect(token.Gt, diag.SynUnclosedAngle)
	return params
}
