package syntax

import (
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/translate"
	"ember/internal/types"
)

// Node is the contract shared by every expression and statement kind.
type Node interface {
	Parse(meta *parser.Metadata) error
	Translate(meta *translate.Meta) string
}

// Expr is a node that produces a value. Translate returns a single shell word.
type Expr interface {
	Node
	Type() types.Type
	Span() source.Span
}

// Statement is a node that renders whole lines. Translate returns text
// ending in a newline, or "" when the statement emits nothing.
type Statement interface {
	Node
	stmt()
}
