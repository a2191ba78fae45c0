package testkit

import (
	"strings"
	"testing"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"
)

func TestLexedFilesSatisfyInvariants(t *testing.T) {
	inputs := []string{
		"",
		"let x = 1\necho x\n",
		"fun f(a: Num): Num { return a % 2 }\n// comment\n",
		"echo \"open\n@ # $\n",
		"   \n\t\n",
	}
	for _, src := range inputs {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("t.em", []byte(src)))
		tokens := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: diag.NewBag(16)}}).All()
		if err := CheckTokenSpans(tokens, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckTokenSpansRejects(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.em", []byte("ab")))
	sp := func(start, end uint32) source.Span { return source.Span{File: file.ID, Start: start, End: end} }

	cases := []struct {
		name   string
		tokens []token.Token
		want   string
	}{
		{"empty", nil, "empty token stream"},
		{"overlap", []token.Token{{Kind: token.Ident, Span: sp(0, 2)}, {Kind: token.Ident, Span: sp(1, 2)}, {Kind: token.EOF, Span: sp(2, 2)}}, "overlaps"},
		{"missing eof", []token.Token{{Kind: token.Ident, Span: sp(0, 2)}}, "EOF must be the last"},
		{"early eof", []token.Token{{Kind: token.EOF, Span: sp(1, 1)}}, "EOF at 1"},
		{"out of range", []token.Token{{Kind: token.EOF, Span: sp(3, 3)}}, "outside content"},
	}
	for _, tc := range cases {
		err := CheckTokenSpans(tc.tokens, file)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: err = %v, want %q", tc.name, err, tc.want)
		}
	}
}
