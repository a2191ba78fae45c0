package parser

import (
	"fmt"

	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
)

// Current returns the token under the cursor. Past the end it keeps returning EOF.
func (meta *Metadata) Current() token.Token {
	if meta.Index >= len(meta.Tokens) {
		return meta.Tokens[len(meta.Tokens)-1]
	}
	return meta.Tokens[meta.Index]
}

// PeekAt returns the token n positions after the cursor.
func (meta *Metadata) PeekAt(n int) token.Token {
	i := meta.Index + n
	if i >= len(meta.Tokens) {
		return meta.Tokens[len(meta.Tokens)-1]
	}
	return meta.Tokens[i]
}

// At reports whether the current token has kind k.
func (meta *Metadata) At(k token.Kind) bool {
	return meta.Current().Kind == k
}

// AtEOF reports whether the stream is exhausted.
func (meta *Metadata) AtEOF() bool {
	return meta.At(token.EOF)
}

// Advance consumes the current token and returns it.
func (meta *Metadata) Advance() token.Token {
	tok := meta.Current()
	if tok.Kind != token.EOF {
		meta.Index++
		meta.lastSpan = tok.Span
	}
	return tok
}

// Accept consumes the current token if it has kind k.
func (meta *Metadata) Accept(k token.Kind) (token.Token, bool) {
	if meta.At(k) {
		return meta.Advance(), true
	}
	return token.Token{}, false
}

// Expect consumes a token of kind k or fails with SynUnexpectedToken.
func (meta *Metadata) Expect(k token.Kind) (token.Token, error) {
	if meta.At(k) {
		return meta.Advance(), nil
	}
	return token.Token{}, meta.Unexpected(fmt.Sprintf("expected '%s'", k))
}

// ExpectIdent consumes an identifier.
func (meta *Metadata) ExpectIdent() (token.Token, error) {
	if meta.At(token.Ident) {
		return meta.Advance(), nil
	}
	cur := meta.Current()
	return token.Token{}, Failf(diag.SynExpectIdentifier, meta.DiagSpan(), "expected identifier, got %s", describe(cur))
}

// Unexpected builds a failure at the current token.
func (meta *Metadata) Unexpected(msg string) *Failure {
	return Failf(diag.SynUnexpectedToken, meta.DiagSpan(), "%s, got %s", msg, describe(meta.Current()))
}

// NewlineBefore reports whether the current token starts a new line.
func (meta *Metadata) NewlineBefore() bool {
	return meta.Index > 0 && token.HasNewline(meta.Current().Leading)
}

// DiagSpan — лучший span для диагностики: на EOF указываем сразу после последнего токена.
func (meta *Metadata) DiagSpan() source.Span {
	cur := meta.Current()
	if cur.Kind == token.EOF && cur.Span.Empty() && meta.lastSpan.End > 0 {
		return source.Span{File: meta.lastSpan.File, Start: meta.lastSpan.End, End: meta.lastSpan.End}
	}
	return cur.Span
}

// CollectBlockTokens consumes a brace-delimited block without parsing it and
// returns the tokens between the braces followed by an EOF at the closing brace.
func (meta *Metadata) CollectBlockTokens() ([]token.Token, source.Span, error) {
	open, err := meta.Expect(token.LBrace)
	if err != nil {
		return nil, source.Span{}, err
	}
	depth := 1
	start := meta.Index
	for {
		tok := meta.Current()
		switch tok.Kind {
		case token.EOF:
			return nil, open.Span, Fail(diag.SynUnclosedBrace, open.Span, "unclosed '{'")
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				body := make([]token.Token, meta.Index-start, meta.Index-start+1)
				copy(body, meta.Tokens[start:meta.Index])
				closing := meta.Advance()
				body = append(body, token.Token{Kind: token.EOF, Span: closing.Span})
				return body, open.Span.Cover(closing.Span), nil
			}
		}
		meta.Advance()
	}
}

// SkipStatement moves the cursor past the statement starting at from:
// up to and including a ';' at brace depth zero, or up to the next token
// on a new line at depth zero.
func (meta *Metadata) SkipStatement(from int) {
	meta.Index = from
	depth := 0
	first := true
	for !meta.AtEOF() {
		tok := meta.Current()
		if !first && depth == 0 && token.HasNewline(tok.Leading) {
			return
		}
		first = false
		meta.Advance()
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth > 0 {
				depth--
			}
		case token.Semicolon:
			if depth == 0 {
				return
			}
		}
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Ident:
		return fmt.Sprintf("identifier '%s'", tok.Text)
	default:
		return fmt.Sprintf("'%s'", tok.Text)
	}
}
