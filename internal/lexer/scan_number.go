package lexer

import (
	"ember/internal/diag"
	"ember/internal/token"
)

// Поддержка: 0, 123, 1.5, 1_000. Знак минус — отдельный оператор.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' {
		if !isDec(b1) {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after '.'")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp)}
		}
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.file.Content[sp.Start:sp.End]
	if text[len(text)-1] == '_' {
		lx.errLex(diag.LexBadNumber, sp, "number literal cannot end with '_'")
	}
	return token.Token{Kind: token.NumberLit, Span: sp, Text: string(text)}
}
