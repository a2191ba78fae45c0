package syntax

import (
	"fmt"

	"ember/internal/diag"
	"ember/internal/parser"
	"ember/internal/token"
	"ember/internal/translate"
	"ember/internal/types"
)

// Return leaves the current function instance, optionally with a value.
type Return struct {
	kw    token.Token
	value Expr // nil for a bare return
}

func (r *Return) stmt() {}

func (r *Return) Parse(meta *parser.Metadata) error {
	kw, err := meta.Expect(token.KwReturn)
	if err != nil {
		return err
	}
	r.kw = kw
	if !meta.Ctx.InFunction {
		return parser.Fail(diag.SynReturnOutsideFun, kw.Span, "return statement outside of a function")
	}
	if hasValue(meta) {
		value, err := ParseExpression(meta)
		if err != nil {
			return err
		}
		r.value = value
	}
	return r.checkType(meta)
}

func hasValue(meta *parser.Metadata) bool {
	if meta.AtEOF() || meta.At(token.Semicolon) || meta.At(token.RBrace) {
		return false
	}
	return !meta.NewlineBefore()
}

func (r *Return) checkType(meta *parser.Metadata) error {
	ctx := &meta.Ctx
	got := types.Null
	span := r.kw.Span
	if r.value != nil {
		got = r.value.Type()
		span = r.value.Span()
	}
	want := ctx.Returns
	if want == types.Generic {
		// A bare return counts as a Null return.
		if !ctx.ReturnSeen {
			ctx.Inferred, ctx.ReturnSeen = got, true
			return nil
		}
		want = ctx.Inferred
	} else if r.value != nil {
		ctx.ReturnSeen = true
	}
	if got != want {
		return parser.Fail(diag.SemaTypeMismatch, r.kw.Span, "Return type does not match function return type").
			WithNote(span, fmt.Sprintf("this is %s, expected %s", got, want))
	}
	return nil
}

func (r *Return) Translate(meta *translate.Meta) string {
	value := translate.NullLiteral
	if r.value != nil {
		value = r.value.Translate(meta)
	}
	ret := translate.ReturnVar(meta.FunName, meta.FunID, meta.Instance)
	return meta.Statement(fmt.Sprintf("%s=%s", ret, value)) + meta.Lines("return 0")
}
