package parser

import (
	"reactivegen/internal/ast"
	"reactivegen/internal/diag"
	"reactivegen/internal/source"
	"reactivegen/internal/token"
)

// parseBody captures a brace-balanced token run starting at '{'. Identifier
// uses inside the run are recorded; everything else is consumed untouched.
func (p *Parser) parseBody() *ast.Body {
	if !p.at(token.LBrace) {
		return nil
	}
	body := &ast.Body{Span: p.tok.Span}
	depth := 0
	for !p.at(token.EOF) {
		switch p.tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				body.Span = body.Span.Cover(p.tok.Span)
				p.advance()
				return body
			}
		case token.Ident:
			body.Idents = append(body.Idents, ast.IdentUse{
				Name: p.tok.Text,
				Span: p.tok.Span,
			})
		}
		body.Span = body.Span.Cover(p.tok.Span)
		p.advance()
	}
	p.errorf(diag.SynUnclosedBrace, body.Span, "unclosed body")
	return body
}

// captureParens captures a paren-balanced run. The opening paren was already
// consumed; its span is passed in so the capture covers it.
func (p *Parser) captureParens(open source.Span) *ast.Body {
	body := &ast.Body{Span: open}
	depth := 1
	for !p.at(token.EOF) {
		switch p.tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				body.Span = body.Span.Cover(p.tok.Span)
				p.advance()
				return body
			}
		case token.Ident:
			body.Idents = append(body.Idents, ast.IdentUse{
				Name: p.tok.Text,
				Span: p.tok.Span,
			})
		}
		body.Span = body.Span.Cover(p.tok.Span)
		p.advance()
	}
	p.errorf(diag.SynUnclosedParen, body.Span, "unclosed parameter list")
	return body
}

// captureUntilSemicolon records an initializer token run up to, but not
// including, the terminating semicolon.
func (p *Parser) captureUntilSemicolon(start source.Span) *ast.Body {
	body := &ast.Body{Span: start}
	for !p.at(token.EOF) && !p.at(token.Semicolon) && !p.at(token.RBrace) {
		if p.at(token.LBrace) {
			inner := p.parseBody()
			if inner != nil {
				body.Idents = append(body.Idents, inner.Idents...)
				body.Span = body.Span.Cover(inner.Span)
			}
			continue
		}
		if p.at(token.Ident) {
			body.Idents = append(body.Idents, ast.IdentUse{
				Name: p.tok.Text,
				Span: p.tok.Span,
			})
		}
		body.Span = body.Span.Cover(p.tok.Span)
		p.advance()
	}
	return body
}
