package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/types"
)

func metaFor(t *testing.T, src string) (*Metadata, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.em", []byte(src))
	bag := diag.NewBag(50)
	rep := &diag.BagReporter{Bag: bag}
	toks := lexer.New(fs.Get(id), lexer.Options{Reporter: rep}).All()
	return New(id, toks, rep, nil), bag
}

func TestExpectAndAccept(t *testing.T) {
	meta, _ := metaFor(t, "( x )")
	if _, err := meta.Expect(token.LParen); err != nil {
		t.Fatalf("expect '(': %v", err)
	}
	if _, ok := meta.Accept(token.Comma); ok {
		t.Fatalf("accept must not consume a mismatching token")
	}
	if tok, err := meta.ExpectIdent(); err != nil || tok.Text != "x" {
		t.Fatalf("expect ident: %v %v", tok, err)
	}
	_, err := meta.Expect(token.Comma)
	var f *Failure
	if !errors.As(err, &f) || f.Code != diag.SynUnexpectedToken {
		t.Fatalf("expected SynUnexpectedToken failure, got %v", err)
	}
	if f.Span.Start != 4 {
		t.Fatalf("failure must point at ')', got %v", f.Span)
	}
}

func TestAdvancePastEOFIsSticky(t *testing.T) {
	meta, _ := metaFor(t, "x")
	meta.Advance()
	if !meta.AtEOF() {
		t.Fatalf("expected EOF")
	}
	meta.Advance()
	meta.Advance()
	if !meta.AtEOF() || meta.PeekAt(5).Kind != token.EOF {
		t.Fatalf("EOF must be sticky")
	}
}

func TestDiagSpanAtEOFFollowsLastToken(t *testing.T) {
	meta, _ := metaFor(t, "x   \n\n")
	if got := meta.DiagSpan(); got.Start != 0 || got.End != 1 {
		t.Fatalf("before EOF the current token is reported, got %v", got)
	}
	meta.Advance()
	if got := meta.DiagSpan(); got.Start != 1 || !got.Empty() {
		t.Fatalf("at EOF the span must sit right after 'x', got %v", got)
	}
}

func TestCollectBlockTokens(t *testing.T) {
	meta, _ := metaFor(t, "{ if x { y } z } after")
	body, _, err := meta.CollectBlockTokens()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	var kinds []token.Kind
	for _, tok := range body {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.KwIf, token.Ident, token.LBrace, token.Ident, token.RBrace, token.Ident, token.EOF}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("body kinds (-want +got):\n%s", diff)
	}
	if meta.Current().Text != "after" {
		t.Fatalf("cursor must stop after the closing brace, at %q", meta.Current().Text)
	}
}

func TestCollectBlockTokensUnclosed(t *testing.T) {
	meta, _ := metaFor(t, "{ x { y }")
	_, _, err := meta.CollectBlockTokens()
	var f *Failure
	if !errors.As(err, &f) || f.Code != diag.SynUnclosedBrace {
		t.Fatalf("expected SynUnclosedBrace, got %v", err)
	}
}

func TestSkipStatement(t *testing.T) {
	meta, _ := metaFor(t, "let x = { 1\n 2 }\nnext; other")
	meta.SkipStatement(0)
	if meta.Current().Text != "next" {
		t.Fatalf("expected to stop at next line, got %q", meta.Current().Text)
	}
	meta.SkipStatement(meta.Index)
	if meta.Current().Text != "other" {
		t.Fatalf("expected to stop after ';', got %q", meta.Current().Text)
	}
}

func TestParseOptionalAnnotation(t *testing.T) {
	meta, _ := metaFor(t, ": Num : 5")
	typ, err := meta.ParseOptionalAnnotation()
	if err != nil || typ != types.Num {
		t.Fatalf("annotation: %v %v", typ, err)
	}
	if _, err := meta.ParseOptionalAnnotation(); err == nil {
		t.Fatalf("expected failure for non-type annotation")
	}
	meta2, _ := metaFor(t, "x")
	if typ, err := meta2.ParseOptionalAnnotation(); err != nil || typ != types.Generic {
		t.Fatalf("missing annotation must be Generic: %v %v", typ, err)
	}
}

func TestReportErrorConvertsFailure(t *testing.T) {
	bag := diag.NewBag(10)
	rep := &diag.BagReporter{Bag: bag}
	sp := source.Span{Start: 1, End: 2}
	ReportError(rep, Fail(diag.SemaTypeMismatch, sp, "boom").WithNote(sp, "here"), source.Span{})
	ReportError(rep, errors.New("plain"), sp)

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(items))
	}
	if items[0].Code != diag.SemaTypeMismatch || len(items[0].Notes) != 1 {
		t.Fatalf("unexpected first diagnostic: %+v", items[0])
	}
	if items[1].Code != diag.SemaError || items[1].Primary != sp {
		t.Fatalf("unexpected second diagnostic: %+v", items[1])
	}
}

func TestNearest(t *testing.T) {
	cands := []string{"count", "total", "name"}
	if got := Nearest("cuont", cands); got != "count" {
		t.Fatalf("Nearest(cuont) = %q", got)
	}
	if got := Nearest("zzzzzz", cands); got != "" {
		t.Fatalf("expected no suggestion, got %q", got)
	}
}

func TestRecursionGuardShared(t *testing.T) {
	meta, _ := metaFor(t, "")
	if !meta.BeginInstantiation(3) {
		t.Fatalf("first begin must succeed")
	}
	nested := meta.Nested(meta.Mem, nil, Context{InFunction: true})
	if nested.BeginInstantiation(3) {
		t.Fatalf("nested metadata must see the in-flight id")
	}
	nested.EndInstantiation(3)
	if !meta.BeginInstantiation(3) {
		t.Fatalf("guard must clear after end")
	}
	if !nested.AtEOF() {
		t.Fatalf("nested metadata over no tokens must be at EOF")
	}
}
