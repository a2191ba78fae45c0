package lexer

import (
	"fmt"

	"ember/internal/diag"
	"ember/internal/fix"
	"ember/internal/source"
	"ember/internal/token"
)

type pair struct{ a, b byte }

// Жадность: сначала 2-символьные, затем 1-символьные.
var twoByteOps = map[pair]token.Kind{
	{'=', '='}: token.EqEq,
	{'!', '='}: token.BangEq,
	{'<', '='}: token.LtEq,
	{'>', '='}: token.GtEq,
}

var oneByteOps = [128]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'=': token.Assign, '<': token.Lt, '>': token.Gt,
	':': token.Colon, ';': token.Semicolon, ',': token.Comma,
	'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace,
}

// Operators borrowed from C-like languages. They lex as the keyword so the
// parser sees valid input, and the error carries a rewrite.
var foreignOps = map[string]token.Kind{
	"&&": token.KwAnd,
	"||": token.KwOr,
	"!":  token.KwNot,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.file.Text(sp)}
	}

	if b0, b1, ok := lx.cursor.Peek2(); ok {
		if k, hit := twoByteOps[pair{b0, b1}]; hit {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return emit(k)
		}
		if k, hit := foreignOps[string([]byte{b0, b1})]; hit {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.foreign(lx.cursor.SpanFrom(start), k)
		}
	}

	b := lx.cursor.Bump()
	if int(b) < len(oneByteOps) && oneByteOps[b] != token.Invalid {
		return emit(oneByteOps[b])
	}
	if b == '!' {
		return lx.foreign(lx.cursor.SpanFrom(start), token.KwNot)
	}

	// неизвестный символ: съедаем руну целиком, чтобы не резать UTF-8
	lx.cursor.Reset(start)
	lx.cursor.BumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp)}
}

// foreign reports a C-style operator and returns the keyword token it stands for.
func (lx *Lexer) foreign(sp source.Span, k token.Kind) token.Token {
	word := k.String()
	text := lx.file.Text(sp)
	if lx.opts.Reporter != nil {
		d := diag.NewError(diag.LexForeignOperator, sp, fmt.Sprintf("use '%s' instead of '%s'", word, text))
		d.Fixes = append(d.Fixes, fix.ReplaceSpan(fmt.Sprintf("replace with '%s'", word), sp, lx.foreignReplacement(sp, word)))
		lx.opts.Reporter.Report(d)
	}
	return token.Token{Kind: k, Span: sp, Text: word}
}

// foreignReplacement pads the keyword with spaces where the operator was
// glued to its operands, so "a&&!b" becomes "a and not b".
func (lx *Lexer) foreignReplacement(sp source.Span, word string) string {
	content := lx.file.Content
	out := word
	if sp.End < lx.cursor.limit && gluesAfter(content[sp.End]) {
		out += " "
	}
	if sp.Start > 0 && gluesBefore(content[sp.Start-1]) {
		out = " " + out
	}
	return out
}

func gluesAfter(b byte) bool  { return isWordByte(b) || b == '!' || b == '(' || b == '"' }
func gluesBefore(b byte) bool { return isWordByte(b) || b == ')' || b == '"' }
