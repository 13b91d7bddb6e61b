package parser

import (
	"fmt"

	"reactivegen/internal/ast"
	"reactivegen/internal/diag"
	"reactivegen/internal/lexer"
	"reactivegen/internal/source"
	"reactivegen/internal/token"
)

// Parser consumes the token stream of one file and produces an ast.File.
// Errors are reported through the diag.Reporter; the parser recovers at
// member and declaration boundaries so one bad declaration does not hide
// the rest of the file.
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	reporter diag.Reporter
	tok      token.Token
}

// New creates a parser over the given file.
func New(file *source.File, reporter diag.Reporter) *Parser {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	p := &Parser{
		lx:       lexer.New(file, reporter),
		file:     file,
		reporter: reporter,
	}
	p.advance()
	return p
}

// ParseFile parses a whole source file.
func ParseFile(file *source.File, reporter diag.Reporter) *ast.File {
	return New(file, reporter).parseFile()
}

func (p *Parser) advance() {
	p.tok = p.lx.Next()
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	if p.at(k) {
		t := p.tok
		p.advance()
		return t, true
	}
	p.errorf(code, p.tok.Span, "expected %s, found %s", k, p.describe(p.tok))
	return p.tok, false
}

func (p *Parser) describe(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.IntLit, token.StringLit:
		return fmt.Sprintf("%q", t.Text)
	default:
		return fmt.Sprintf("%q", t.Kind.String())
	}
}

func (p *Parser) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	p.reporter.Report(diag.NewError(code, sp, fmt.Sprintf(format, args...)))
}

// syncTo skips tokens until one of the kinds (or EOF) is reached.
// The sync token itself is not consumed.
func (p *Parser) syncTo(kinds ...token.Kind) {
	for !p.at(token.EOF) {
		for _, k := range kinds {
			if p.at(k) {
				return
			}
		}
		// Skip nested braces as a unit so recovery lands on a boundary of
		// the right nesting level.
		if p.at(token.LBrace) {
			p.skipBalanced()
			continue
		}
		p.advance()
	}
}

// skipBalanced consumes a brace-balanced token run starting at '{'.
func (p *Parser) skipBalanced() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

func (p *Parser) parseFile() *ast.File {
	f := &ast.File{FileID: p.file.ID}

	if p.at(token.KwNamespace) {
		nsStart := p.tok.Span
		p.advance()
		segs, sp, ok := p.parseNamespacePath()
		if ok {
			f.Namespace = segs
			f.NsSpan = nsStart.Cover(sp)
		}
		p.eat(token.Semicolon)
	}

	for !p.at(token.EOF) {
		start := p.tok.Span
		attrs := p.parseAttrs()
		access, mods := p.parseAccessAndModifiers()

		switch p.tok.Kind {
		case token.KwType, token.KwInterface:
			if decl := p.parseTypeDecl(start, attrs, access, mods, nil); decl != nil {
				f.Types = append(f.Types, decl)
			}
		default:
			p.errorf(diag.SynUnexpectedTopLevel, p.tok.Span,
				"expected a type or interface declaration, found %s", p.describe(p.tok))
			p.syncTo(token.KwType, token.KwInterface, token.At)
			if p.at(token.EOF) {
				return f
			}
			// Attributes and modifiers were lost during recovery; continue
			// from the sync point.
		}
	}
	return f
}

func (p *Parser) parseNamespacePath() ([]string, source.Span, bool) {
	first, ok := p.expect(token.Ident, diag.SynExpectNamespace)
	if !ok {
		return nil, source.Span{}, false
	}
	segs := []string{first.Text}
	sp := first.Span
	for p.at(token.ColonColon) {
		p.advance()
		seg, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			return segs, sp, true
		}
		segs = append(segs, seg.Text)
		sp = sp.Cover(seg.Span)
	}
	return segs, sp, true
}

// parseAttrs consumes a run of `@name` attributes.
func (p *Parser) parseAttrs() ast.AttrList {
	var attrs ast.AttrList
	for p.at(token.At) {
		atSpan := p.tok.Span
		p.advance()
		name, ok := p.expect(token.Ident, diag.SynExpectAttributeName)
		if !ok {
			continue
		}
		attrs = append(attrs, ast.Attr{
			Name: name.Text,
			Span: atSpan.Cover(name.Span),
		})
	}
	return attrs
}

// parseAccessAndModifiers consumes an optional accessibility keyword and a
// run of structural modifiers, reporting duplicates.
func (p *Parser) parseAccessAndModifiers() (ast.Accessibility, ast.Modifiers) {
	access := ast.AccessUnspecified
	if p.tok.IsAccessibility() {
		access = accessibilityOf(p.tok.Kind)
		p.advance()
	}

	var mods ast.Modifiers
	for p.tok.IsModifier() {
		m := modifierOf(p.tok.Kind)
		if mods.Has(m) {
			p.errorf(diag.SynDuplicateModifier, p.tok.Span,
				"duplicate modifier %q", p.tok.Text)
		}
		mods |= m
		p.advance()
	}
	return access, mods
}

func accessibilityOf(k token.Kind) ast.Accessibility {
	switch k {
	case token.KwPub:
		return ast.AccessPub
	case token.KwPriv:
		return ast.AccessPriv
	case token.KwProtected:
		return ast.AccessProtected
	case token.KwInternal:
		return ast.AccessInternal
	}
	return ast.AccessUnspecified
}

func modifierOf(k token.Kind) ast.Modifiers {
	switch k {
	case token.KwPartial:
		return ast.ModPartial
	case token.KwStatic:
		return ast.ModStatic
	case token.KwNew:
		return ast.ModNew
	case token.KwAbstract:
		return ast.ModAbstract
	case token.KwVirtual:
		return ast.ModVirtual
	case token.KwOverride:
		return ast.ModOverride
	case token.KwSealed:
		return ast.ModSealed
	case token.KwRequired:
		return ast.ModRequired
	}
	return 0
}
