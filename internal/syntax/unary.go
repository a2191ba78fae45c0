package syntax

import (
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/translate"
	"ember/internal/types"
)

type unary struct {
	op      token.Token
	operand Expr
}

func (u *unary) parseOperand(meta *parser.Metadata) error {
	u.op = meta.Advance()
	operand, err := parseUnary(meta)
	if err != nil {
		return err
	}
	u.operand = operand
	return nil
}

func (u *unary) Span() source.Span { return u.op.Span.Cover(u.operand.Span()) }

// Not negates a boolean.
type Not struct{ unary }

func (n *Not) Parse(meta *parser.Metadata) error {
	if !meta.At(token.KwNot) {
		return meta.Unexpected("expected 'not'")
	}
	if err := n.parseOperand(meta); err != nil {
		return err
	}
	if n.operand.Type() != types.Bool {
		return mismatch(n.op.Span, "Logical negation can only be applied to boolean values", n.operand)
	}
	return nil
}

func (n *Not) Type() types.Type { return types.Bool }

func (n *Not) Translate(meta *translate.Meta) string {
	return translate.Computation(translate.Not, n.operand.Translate(meta))
}

// Neg negates a number.
type Neg struct{ unary }

func (n *Neg) Parse(meta *parser.Metadata) error {
	if !meta.At(token.Minus) {
		return meta.Unexpected("expected '-'")
	}
	if err := n.parseOperand(meta); err != nil {
		return err
	}
	if n.operand.Type() != types.Num {
		return mismatch(n.op.Span, "Arithmetic negation can only be applied to numbers", n.operand)
	}
	return nil
}

func (n *Neg) Type() types.Type { return types.Num }

func (n *Neg) Translate(meta *translate.Meta) string {
	return translate.Computation(translate.Neg, n.operand.Translate(meta))
}
