package lexer

import (
	"ember/internal/diag"
	"ember/internal/token"
)

// "..." с escape \" \\ \n \t \$. Text токена — исходный срез вместе с кавычками.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.file.Text(sp)}
		case '\\':
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			switch lx.cursor.Peek() {
			case '"', '\\', 'n', 't', '$':
				lx.cursor.Bump()
			default:
				lx.cursor.BumpRune()
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "unknown escape sequence")
			}
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp)}
		default:
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp)}
}
