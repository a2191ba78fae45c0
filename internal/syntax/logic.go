package syntax

import (
	"ember/internal/parser"
	"ember/internal/token"
	"ember/internal/translate"
	"ember/internal/types"
)

// Logic is 'and' / 'or' over booleans.
type Logic struct{ binary }

func (l *Logic) Parse(meta *parser.Metadata) error {
	if err := l.parseRight(meta); err != nil {
		return err
	}
	return l.armsOfType(types.Bool, "Logical operation can only operate on boolean values")
}

func (l *Logic) Type() types.Type { return types.Bool }

func (l *Logic) Translate(meta *translate.Meta) string {
	op := translate.And
	if l.op.Kind == token.KwOr {
		op = translate.Or
	}
	left := l.left.Translate(meta)
	right := l.right.Translate(meta)
	return translate.Computation(op, left, right)
}
