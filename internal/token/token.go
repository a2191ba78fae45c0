package token

import (
	"ember/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsLiteral reports whether the token is a number, text, boolean or null literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsTypeName reports whether the token names one of the builtin types.
func (t Token) IsTypeName() bool {
	switch t.Kind {
	case KwTypeNum, KwTypeText, KwTypeBool, KwTypeNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	_, ok := keywords[t.Text]
	return ok && t.Kind != Ident
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
