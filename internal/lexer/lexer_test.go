package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(d diag.Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.em", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestLexer_BasicProgram(t *testing.T) {
	lx, rep := makeTestLexer(`let x = 10 / 2.5; echo x`)
	got := kindsOf(lx.All())
	want := []token.Kind{
		token.KwLet, token.Ident, token.Assign, token.NumberLit, token.Slash,
		token.NumberLit, token.Semicolon, token.KwEcho, token.Ident, token.EOF,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.diagnostics)
	}
}

func TestLexer_Operators(t *testing.T) {
	lx, _ := makeTestLexer(`== != <= >= < > = + - * % ( ) { } : ,`)
	got := kindsOf(lx.All())
	want := []token.Kind{
		token.EqEq, token.BangEq, token.LtEq, token.GtEq, token.Lt, token.Gt,
		token.Assign, token.Plus, token.Minus, token.Star, token.Percent,
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.Colon,
		token.Comma, token.EOF,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexer_Keywords(t *testing.T) {
	lx, _ := makeTestLexer(`pub fun if else while return and or not true false null Num Text Bool Null`)
	got := kindsOf(lx.All())
	want := []token.Kind{
		token.KwPub, token.KwFun, token.KwIf, token.KwElse, token.KwWhile, token.KwReturn,
		token.KwAnd, token.KwOr, token.KwNot, token.KwTrue, token.KwFalse, token.KwNull,
		token.KwTypeNum, token.KwTypeText, token.KwTypeBool, token.KwTypeNull, token.EOF,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexer_CommentIsTrivia(t *testing.T) {
	lx, _ := makeTestLexer("a // comment\n/ b")
	toks := lx.All()
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(toks))
	}
	if toks[1].Kind != token.Slash {
		t.Fatalf("expected '/', got %s", toks[1].Kind)
	}
	if !token.HasNewline(toks[1].Leading) {
		t.Fatalf("expected newline trivia before '/'")
	}
	if toks[1].Span.Start != 13 || toks[1].Span.End != 14 {
		t.Fatalf("unexpected span for '/': %v", toks[1].Span)
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	lx, rep := makeTestLexer(`"a \"b\" \n $" "bad \q"`)
	toks := lx.All()
	if toks[0].Kind != token.StringLit || toks[0].Text != `"a \"b\" \n $"` {
		t.Fatalf("unexpected first token: %+v", toks[0])
	}
	if toks[1].Kind != token.StringLit {
		t.Fatalf("bad escape should still produce a string, got %s", toks[1].Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadEscape {
		t.Fatalf("expected one LexBadEscape, got %v", rep.diagnostics)
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	lx, rep := makeTestLexer(`"never closed`)
	toks := lx.All()
	if toks[0].Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %s", toks[0].Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected LexUnterminatedString, got %v", rep.diagnostics)
	}
}

func TestLexer_UnknownChar(t *testing.T) {
	lx, rep := makeTestLexer(`a @ b`)
	got := kindsOf(lx.All())
	want := []token.Kind{token.Ident, token.Invalid, token.Ident, token.EOF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected LexUnknownChar, got %v", rep.diagnostics)
	}
}

func TestLexer_IdentifierNFC(t *testing.T) {
	// "e" + U+0301 COMBINING ACUTE ACCENT нормализуется в U+00E9
	lx, rep := makeTestLexer("cafe\u0301")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "caf\u00e9" {
		t.Fatalf("expected NFC identifier, got %q (%s)", tok.Text, tok.Kind)
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.diagnostics)
	}
}

func TestLexer_PeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer(`x y`)
	p := lx.Peek()
	n := lx.Next()
	if p.Text != "x" || n.Text != "x" {
		t.Fatalf("peek/next mismatch: %q %q", p.Text, n.Text)
	}
	if lx.Next().Text != "y" {
		t.Fatalf("expected y after x")
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatalf("EOF must be sticky")
	}
}

func TestLexer_BadNumber(t *testing.T) {
	lx, rep := makeTestLexer(`1. 2_`)
	toks := lx.All()
	if toks[0].Kind != token.Invalid || toks[1].Kind != token.NumberLit {
		t.Fatalf("unexpected kinds: %s %s", toks[0].Kind, toks[1].Kind)
	}
	if len(rep.diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(rep.diagnostics))
	}
}

func TestLexer_ForeignOperators(t *testing.T) {
	lx, rep := makeTestLexer("a&&b || !done")
	got := kindsOf(lx.All())
	want := []token.Kind{token.Ident, token.KwAnd, token.Ident, token.KwOr, token.KwNot, token.Ident, token.EOF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if len(rep.diagnostics) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(rep.diagnostics))
	}
	var edits []string
	for _, d := range rep.diagnostics {
		if d.Code != diag.LexForeignOperator || len(d.Fixes) != 1 {
			t.Fatalf("unexpected diagnostic %+v", d)
		}
		edits = append(edits, d.Fixes[0].Edits[0].NewText)
	}
	if diff := cmp.Diff([]string{" and ", "or", "not "}, edits); diff != "" {
		t.Errorf("replacement mismatch (-want +got):\n%s", diff)
	}
	if rep.diagnostics[0].Message != "use 'and' instead of '&&'" {
		t.Errorf("message = %q", rep.diagnostics[0].Message)
	}
}
