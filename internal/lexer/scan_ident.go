package lexer

import (
	"golang.org/x/text/unicode/norm"

	"ember/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует Ident и проверяет через LookupKeyword.
// Идентификаторы нормализуются в NFC, чтобы "é" из разных редакторов
// разрешались в одно и то же имя.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.cursor.PeekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}
	lx.cursor.BumpRune()
	for {
		r2, sz2 := lx.cursor.PeekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.cursor.BumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.file.Text(sp)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: norm.NFC.String(text)}
}
