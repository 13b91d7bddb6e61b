package token

import (
	"reactivegen/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsEOF reports whether the token ends the input.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwNamespace && t.Kind <= KwFalse
}

// IsModifier reports whether the token is a structural modifier keyword.
func (t Token) IsModifier() bool {
	switch t.Kind {
	case KwPartial, KwStatic, KwAbstract, KwVirtual, KwOverride, KwSealed, KwNew, KwRequired:
		return true
	default:
		return false
	}
}

// IsAccessibility reports whether the token is an accessibility keyword.
func (t Token) IsAccessibility() bool {
	switch t.Kind {
	case KwPub, KwPriv, KwProtected, KwInternal:
		return true
	default:
		return false
	}
}
