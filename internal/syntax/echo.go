package syntax

import (
	"ember/internal/parser"
	"ember/internal/token"
	"ember/internal/translate"
)

// Echo prints a value followed by a newline.
type Echo struct {
	value Expr
}

func (e *Echo) stmt() {}

func (e *Echo) Parse(meta *parser.Metadata) error {
	if _, err := meta.Expect(token.KwEcho); err != nil {
		return err
	}
	value, err := ParseExpression(meta)
	if err != nil {
		return err
	}
	e.value = value
	return nil
}

func (e *Echo) Translate(meta *translate.Meta) string {
	return meta.Statement("echo " + e.value.Translate(meta))
}
