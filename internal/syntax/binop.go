package syntax

import (
	"fmt"

	"ember/internal/diag"
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/types"
)

const (
	precOr = iota + 1
	precAnd
	precCompare
	precAdditive
	precMultiplicative
)

// binaryNode is an operator whose left operand is parsed before it is constructed.
type binaryNode interface {
	Expr
	setLeft(Expr)
}

type binaryEntry struct {
	prec int
	new  func() binaryNode
}

var binaryOps = map[token.Kind]binaryEntry{
	token.KwOr:    {precOr, func() binaryNode { return &Logic{} }},
	token.KwAnd:   {precAnd, func() binaryNode { return &Logic{} }},
	token.EqEq:    {precCompare, func() binaryNode { return &Equality{} }},
	token.BangEq:  {precCompare, func() binaryNode { return &Equality{} }},
	token.Lt:      {precCompare, func() binaryNode { return &Compare{} }},
	token.LtEq:    {precCompare, func() binaryNode { return &Compare{} }},
	token.Gt:      {precCompare, func() binaryNode { return &Compare{} }},
	token.GtEq:    {precCompare, func() binaryNode { return &Compare{} }},
	token.Plus:    {precAdditive, func() binaryNode { return &Add{} }},
	token.Minus:   {precAdditive, func() binaryNode { return &Sub{} }},
	token.Star:    {precMultiplicative, func() binaryNode { return &Mul{} }},
	token.Slash:   {precMultiplicative, func() binaryNode { return &Div{} }},
	token.Percent: {precMultiplicative, func() binaryNode { return &Mod{} }},
}

// parseBinary — precedence climbing. Операторы, перенесённые на новую строку,
// начинают новый оператор, а не продолжают выражение.
func parseBinary(meta *parser.Metadata, minPrec int) (Expr, error) {
	left, err := parseUnary(meta)
	if err != nil {
		return nil, err
	}
	for {
		entry, ok := binaryOps[meta.Current().Kind]
		if !ok || entry.prec < minPrec || meta.NewlineBefore() {
			return left, nil
		}
		node := entry.new()
		node.setLeft(left)
		if err := node.Parse(meta); err != nil {
			return nil, err
		}
		left = node
	}
}

// binary holds what every binary operator node shares.
type binary struct {
	left  Expr
	right Expr
	op    token.Token
}

func (b *binary) setLeft(e Expr) { b.left = e }

func (b *binary) Span() source.Span { return b.left.Span().Cover(b.right.Span()) }

// parseRight consumes the operator token and parses the right operand
// one precedence level tighter, making operators left-associative.
func (b *binary) parseRight(meta *parser.Metadata) error {
	if b.left == nil {
		return parser.Fail(diag.SynExpectExpression, meta.DiagSpan(), "binary operator without left operand")
	}
	entry, ok := binaryOps[meta.Current().Kind]
	if !ok {
		return meta.Unexpected("expected binary operator")
	}
	b.op = meta.Advance()
	right, err := parseBinary(meta, entry.prec+1)
	if err != nil {
		return err
	}
	b.right = right
	return nil
}

// armsOfType fails with TypeMismatch at the operator unless both operands have type want.
func (b *binary) armsOfType(want types.Type, msg string) error {
	for _, arm := range []Expr{b.left, b.right} {
		if arm.Type() != want {
			return mismatch(b.op.Span, msg, arm)
		}
	}
	return nil
}

// armsSame fails unless both operands share one type; it returns that type.
func (b *binary) armsSame(msg string) (types.Type, error) {
	if b.left.Type() != b.right.Type() {
		return types.Generic, mismatch(b.op.Span, msg, b.right).
			WithNote(b.left.Span(), fmt.Sprintf("left operand is %s", b.left.Type()))
	}
	return b.left.Type(), nil
}

func mismatch(sp source.Span, msg string, offending Expr) *parser.Failure {
	return parser.Fail(diag.SemaTypeMismatch, sp, msg).
		WithNote(offending.Span(), fmt.Sprintf("this is %s", offending.Type()))
}
