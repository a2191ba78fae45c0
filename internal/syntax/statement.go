package syntax

import (
	"strings"

	"ember/internal/diag"
	"ember/internal/parser"
	"ember/internal/token"
	"ember/internal/translate"
)

// ParseStatement selects a statement node by its first token and parses it.
func ParseStatement(meta *parser.Metadata) (Statement, error) {
	var node Statement
	switch tok := meta.Current(); tok.Kind {
	case token.KwLet:
		node = &VarInit{}
	case token.KwFun, token.KwPub:
		node = &FunDecl{}
	case token.KwReturn:
		node = &Return{}
	case token.KwIf:
		node = &If{}
	case token.KwWhile:
		node = &While{}
	case token.KwEcho:
		node = &Echo{}
	case token.LBrace:
		node = &Block{}
	case token.Ident:
		if meta.PeekAt(1).Kind == token.Assign {
			node = &VarSet{}
		} else {
			node = &ExprStatement{}
		}
	default:
		node = &ExprStatement{}
	}
	if err := node.Parse(meta); err != nil {
		return nil, err
	}
	return node, nil
}

// endStatement requires a statement to be followed by ';', a line break,
// a closing brace or the end of input.
func endStatement(meta *parser.Metadata) error {
	if _, ok := meta.Accept(token.Semicolon); ok {
		return nil
	}
	if meta.AtEOF() || meta.At(token.RBrace) || meta.NewlineBefore() {
		return nil
	}
	return meta.Unexpected("expected end of statement")
}

// Block is a brace-delimited statement list with its own scope.
// A Block without braces holds an instance body parsed to the end of input.
type Block struct {
	statements []Statement
}

func (b *Block) stmt() {}

func (b *Block) Parse(meta *parser.Metadata) error {
	open, err := meta.Expect(token.LBrace)
	if err != nil {
		return err
	}
	meta.Mem.PushScope()
	err = b.parseStatements(meta, token.RBrace)
	meta.Mem.PopScope()
	if err != nil {
		return err
	}
	if _, ok := meta.Accept(token.RBrace); !ok {
		return parser.Fail(diag.SynUnclosedBrace, open.Span, "unclosed '{'")
	}
	return nil
}

// ParseBody parses statements up to the end of input in the current scope.
func (b *Block) ParseBody(meta *parser.Metadata) error {
	return b.parseStatements(meta, token.EOF)
}

func (b *Block) parseStatements(meta *parser.Metadata, until token.Kind) error {
	for !meta.At(until) && !meta.AtEOF() {
		st, err := ParseStatement(meta)
		if err != nil {
			return err
		}
		b.statements = append(b.statements, st)
		if err := endStatement(meta); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of statements.
func (b *Block) Len() int { return len(b.statements) }

func (b *Block) Translate(meta *translate.Meta) string {
	var sb strings.Builder
	for _, st := range b.statements {
		sb.WriteString(st.Translate(meta))
	}
	if sb.Len() == 0 {
		return meta.Lines(":")
	}
	return sb.String()
}

// ExprStatement evaluates an expression for its side effects.
type ExprStatement struct {
	expr Expr
}

func (e *ExprStatement) stmt() {}

func (e *ExprStatement) Parse(meta *parser.Metadata) error {
	expr, err := ParseExpression(meta)
	if err != nil {
		return err
	}
	e.expr = expr
	return nil
}

// Translate keeps only the hoisted calls; the value itself is discarded.
func (e *ExprStatement) Translate(meta *translate.Meta) string {
	e.expr.Translate(meta)
	return meta.Statement("")
}
