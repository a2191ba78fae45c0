package syntax

import (
	"ember/internal/parser"
	"ember/internal/translate"
	"ember/internal/types"
)

// Div is numeric division. It always reports Num.
type Div struct{ binary }

func (d *Div) Parse(meta *parser.Metadata) error {
	if err := d.parseRight(meta); err != nil {
		return err
	}
	return d.armsOfType(types.Num, "Divide operation can only divide numbers")
}

func (d *Div) Type() types.Type { return types.Num }

func (d *Div) Translate(meta *translate.Meta) string {
	left := d.left.Translate(meta)
	right := d.right.Translate(meta)
	return translate.Computation(translate.Div, left, right)
}
