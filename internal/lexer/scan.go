package lexer

import (
	"fmt"

	"reactivegen/internal/diag"
	"reactivegen/internal/token"
)

func isIdentStartByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b) || b == '_'
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(m)
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: lx.cursor.SpanFrom(m),
		Text: text,
	}
}

func (lx *Lexer) scanNumber() token.Token {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() && (isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_') {
		lx.cursor.Bump()
	}
	// A digit run immediately followed by identifier characters is a
	// malformed literal, not two tokens.
	if !lx.cursor.EOF() && isIdentStartByte(lx.cursor.Peek()) {
		for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(m)
		lx.reporter.Report(diag.NewError(diag.LexBadNumber, sp,
			fmt.Sprintf("malformed number literal %q", lx.cursor.TextFrom(m))))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(m)}
	}
	return token.Token{
		Kind: token.IntLit,
		Span: lx.cursor.SpanFrom(m),
		Text: lx.cursor.TextFrom(m),
	}
}

func (lx *Lexer) scanString() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		ch := lx.cursor.Bump()
		if ch == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
			continue
		}
		if ch == '"' {
			return token.Token{
				Kind: token.StringLit,
				Span: lx.cursor.SpanFrom(m),
				Text: lx.cursor.TextFrom(m),
			}
		}
		if ch == '\n' {
			break
		}
	}
	sp := lx.cursor.SpanFrom(m)
	lx.reporter.Report(diag.NewError(diag.LexUnterminatedString, sp, "unterminated string literal"))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(m)}
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	m := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	kind := token.Invalid
	switch ch {
	case '@':
		kind = token.At
	case ':':
		if lx.cursor.Peek() == ':' {
			lx.cursor.Bump()
			kind = token.ColonColon
		} else {
			kind = token.Colon
		}
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	case '?':
		kind = token.Question
	case '=':
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			kind = token.EqEq
		} else {
			kind = token.Assign
		}
	case '!':
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			kind = token.BangEq
		} else {
			kind = token.Bang
		}
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	}

	sp := lx.cursor.SpanFrom(m)
	text := lx.cursor.TextFrom(m)
	if kind == token.Invalid {
		lx.reporter.Report(diag.NewError(diag.LexUnknownChar, sp,
			fmt.Sprintf("unknown character %q", text)))
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
