package syntax

import (
	"strings"

	"ember/internal/diag"
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/translate"
	"ember/internal/types"
)

// Number is a numeric literal.
type Number struct {
	tok   token.Token
	value string
}

func (n *Number) Parse(meta *parser.Metadata) error {
	tok, err := meta.Expect(token.NumberLit)
	if err != nil {
		return err
	}
	n.tok = tok
	n.value = strings.ReplaceAll(tok.Text, "_", "")
	return nil
}

func (n *Number) Type() types.Type                   { return types.Num }
func (n *Number) Span() source.Span                  { return n.tok.Span }
func (n *Number) Translate(_ *translate.Meta) string { return n.value }

// Text is a string literal.
type Text struct {
	tok   token.Token
	value string
}

func (t *Text) Parse(meta *parser.Metadata) error {
	tok, err := meta.Expect(token.StringLit)
	if err != nil {
		return err
	}
	t.tok = tok
	value, ok := unquote(tok.Text)
	if !ok {
		return parser.Fail(diag.LexBadEscape, tok.Span, "malformed text literal")
	}
	t.value = value
	return nil
}

func (t *Text) Type() types.Type                   { return types.Text }
func (t *Text) Span() source.Span                  { return t.tok.Span }
func (t *Text) Translate(_ *translate.Meta) string { return translate.TextLiteral(t.value) }

// unquote decodes a lexed string literal including its quotes.
func unquote(raw string) (string, bool) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", false
	}
	raw = raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(raw) {
			return "", false
		}
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '"', '\\', '$':
			b.WriteByte(raw[i])
		default:
			// lexer already reported it; keep the text as written
			b.WriteByte('\\')
			b.WriteByte(raw[i])
		}
	}
	return b.String(), true
}

// Boolean is true or false.
type Boolean struct {
	tok   token.Token
	value bool
}

func (l *Boolean) Parse(meta *parser.Metadata) error {
	switch meta.Current().Kind {
	case token.KwTrue, token.KwFalse:
		l.tok = meta.Advance()
		l.value = l.tok.Kind == token.KwTrue
		return nil
	default:
		return meta.Unexpected("expected boolean literal")
	}
}

func (l *Boolean) Type() types.Type                   { return types.Bool }
func (l *Boolean) Span() source.Span                  { return l.tok.Span }
func (l *Boolean) Translate(_ *translate.Meta) string { return translate.BoolLiteral(l.value) }

// Null is the null literal.
type Null struct{ tok token.Token }

func (n *Null) Parse(meta *parser.Metadata) error {
	tok, err := meta.Expect(token.KwNull)
	if err != nil {
		return err
	}
	n.tok = tok
	return nil
}

func (n *Null) Type() types.Type                   { return types.Null }
func (n *Null) Span() source.Span                  { return n.tok.Span }
func (n *Null) Translate(_ *translate.Meta) string { return translate.NullLiteral }

// Parenthesis groups an expression.
type Parenthesis struct {
	inner Expr
	span  source.Span
}

func (p *Parenthesis) Parse(meta *parser.Metadata) error {
	open, err := meta.Expect(token.LParen)
	if err != nil {
		return err
	}
	inner, err := ParseExpression(meta)
	if err != nil {
		return err
	}
	closing, ok := meta.Accept(token.RParen)
	if !ok {
		return parser.Fail(diag.SynUnclosedParen, open.Span, "unclosed '('")
	}
	p.inner = inner
	p.span = open.Span.Cover(closing.Span)
	return nil
}

func (p *Parenthesis) Type() types.Type                     { return p.inner.Type() }
func (p *Parenthesis) Span() source.Span                    { return p.span }
func (p *Parenthesis) Translate(meta *translate.Meta) string { return p.inner.Translate(meta) }
