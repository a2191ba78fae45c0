package syntax

import (
	"ember/internal/parser"
	"ember/internal/token"
	"ember/internal/translate"
	"ember/internal/types"
)

// Equality is == or != over two values of the same type.
type Equality struct {
	binary
	kind types.Type
}

func (e *Equality) Parse(meta *parser.Metadata) error {
	if err := e.parseRight(meta); err != nil {
		return err
	}
	kind, err := e.armsSame("Cannot compare two values of different types")
	if err != nil {
		return err
	}
	e.kind = kind
	return nil
}

func (e *Equality) Type() types.Type { return types.Bool }

func (e *Equality) Translate(meta *translate.Meta) string {
	op := translate.Eq
	if e.op.Kind == token.BangEq {
		op = translate.Neq
	}
	left := e.left.Translate(meta)
	right := e.right.Translate(meta)
	switch e.kind {
	case types.Num, types.Bool:
		return translate.Computation(op, left, right)
	default:
		return translate.TextEquality(op, left, right)
	}
}

// Compare orders two numbers.
type Compare struct{ binary }

func (c *Compare) Parse(meta *parser.Metadata) error {
	if err := c.parseRight(meta); err != nil {
		return err
	}
	return c.armsOfType(types.Num, "Cannot compare two values that are not numbers")
}

func (c *Compare) Type() types.Type { return types.Bool }

func (c *Compare) Translate(meta *translate.Meta) string {
	var op translate.ArithOp
	switch c.op.Kind {
	case token.Lt:
		op = translate.Lt
	case token.LtEq:
		op = translate.Le
	case token.Gt:
		op = translate.Gt
	default:
		op = translate.Ge
	}
	left := c.left.Translate(meta)
	right := c.right.Translate(meta)
	return translate.Computation(op, left, right)
}
