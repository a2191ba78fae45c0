package syntax

import (
	"ember/internal/diag"
	"ember/internal/parser"
	"ember/internal/token"
)

// ParseExpression parses a full expression with operator precedence.
func ParseExpression(meta *parser.Metadata) (Expr, error) {
	return parseBinary(meta, precOr)
}

// parseUnary := 'not' unary | '-' unary | primary
func parseUnary(meta *parser.Metadata) (Expr, error) {
	var node Expr
	switch meta.Current().Kind {
	case token.KwNot:
		node = &Not{}
	case token.Minus:
		node = &Neg{}
	default:
		return parsePrimary(meta)
	}
	if err := node.Parse(meta); err != nil {
		return nil, err
	}
	return node, nil
}

func parsePrimary(meta *parser.Metadata) (Expr, error) {
	var node Expr
	switch tok := meta.Current(); tok.Kind {
	case token.NumberLit:
		node = &Number{}
	case token.StringLit:
		node = &Text{}
	case token.KwTrue, token.KwFalse:
		node = &Boolean{}
	case token.KwNull:
		node = &Null{}
	case token.LParen:
		node = &Parenthesis{}
	case token.Ident:
		next := meta.PeekAt(1)
		if next.Kind == token.LParen && !token.HasNewline(next.Leading) {
			node = &Invocation{}
		} else {
			node = &VariableGet{}
		}
	default:
		return nil, parser.Failf(diag.SynExpectExpression, meta.DiagSpan(), "expected expression, got '%s'", tokenText(tok))
	}
	if err := node.Parse(meta); err != nil {
		return nil, err
	}
	return node, nil
}

func tokenText(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of input"
	}
	return tok.Text
}
