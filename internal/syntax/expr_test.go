package syntax

import (
	"testing"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/translate"
	"ember/internal/types"
)

func parseExpr(t *testing.T, src string) (Expr, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("expr.em", []byte(src))
	bag := diag.NewBag(10)
	toks := lexer.New(fs.Get(id), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}}).All()
	return ParseExpression(parser.New(id, toks, &diag.BagReporter{Bag: bag}, nil))
}

func TestDivTypeEnforcement(t *testing.T) {
	_, err := parseExpr(t, `5 / "a"`)
	f, ok := err.(*parser.Failure)
	if !ok {
		t.Fatalf("expected *parser.Failure, got %v", err)
	}
	if f.Code != diag.SemaTypeMismatch || f.Message != "Divide operation can only divide numbers" {
		t.Fatalf("unexpected failure: %+v", f)
	}
	if f.Span.Start != 2 || f.Span.End != 3 {
		t.Fatalf("failure must point at '/', got %v", f.Span)
	}
}

func TestDivReportsNum(t *testing.T) {
	expr, err := parseExpr(t, `5 / 2`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := expr.(*Div); !ok || expr.Type() != types.Num {
		t.Fatalf("expected Num division, got %T %v", expr, expr.Type())
	}
	got := expr.Translate(translate.NewMeta(nil))
	if got != translate.Computation(translate.Div, "5", "2") {
		t.Fatalf("unexpected translation %s", got)
	}
}

func TestPrecedenceAndAssociativity(t *testing.T) {
	expr, err := parseExpr(t, `8 - 2 - 1 * 3`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sub, ok := expr.(*Sub)
	if !ok {
		t.Fatalf("top node must be Sub, got %T", expr)
	}
	if _, ok := sub.left.(*Sub); !ok {
		t.Fatalf("subtraction must be left-associative, left is %T", sub.left)
	}
	if _, ok := sub.right.(*Mul); !ok {
		t.Fatalf("multiplication binds tighter, right is %T", sub.right)
	}
}

func TestOperatorTyping(t *testing.T) {
	cases := []struct {
		src  string
		want types.Type
		msg  string
	}{
		{src: `"a" + "b"`, want: types.Text},
		{src: `1 + 2`, want: types.Num},
		{src: `1 < 2 and not false`, want: types.Bool},
		{src: `"a" == "b"`, want: types.Bool},
		{src: `-(1 % 2)`, want: types.Num},
		{src: `1 + "b"`, msg: "Add operation can only add numbers or text"},
		{src: `true + true`, msg: "Add operation can only add numbers or text"},
		{src: `1 == "1"`, msg: "Cannot compare two values of different types"},
		{src: `"a" < "b"`, msg: "Cannot compare two values that are not numbers"},
		{src: `1 and true`, msg: "Logical operation can only operate on boolean values"},
		{src: `not 1`, msg: "Logical negation can only be applied to boolean values"},
		{src: `-"a"`, msg: "Arithmetic negation can only be applied to numbers"},
		{src: `2 * null`, msg: "Multiply operation can only multiply numbers"},
	}
	for _, tc := range cases {
		expr, err := parseExpr(t, tc.src)
		if tc.msg != "" {
			f, ok := err.(*parser.Failure)
			if !ok || f.Message != tc.msg {
				t.Errorf("%s: expected failure %q, got %v", tc.src, tc.msg, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.src, err)
			continue
		}
		if expr.Type() != tc.want {
			t.Errorf("%s: type %s, want %s", tc.src, expr.Type(), tc.want)
		}
	}
}

func TestTextTranslation(t *testing.T) {
	expr, err := parseExpr(t, `"a\n$" + "b"`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := expr.Translate(translate.NewMeta(nil)); got != "\"a\n\\$\"\"b\"" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestUnclosedParen(t *testing.T) {
	_, err := parseExpr(t, `(1 + 2`)
	f, ok := err.(*parser.Failure)
	if !ok || f.Code != diag.SynUnclosedParen {
		t.Fatalf("expected SynUnclosedParen, got %v", err)
	}
}
