package syntax

import (
	"ember/internal/parser"
	"ember/internal/translate"
	"ember/internal/types"
)

// Add sums numbers or concatenates text.
type Add struct {
	binary
	kind types.Type
}

func (a *Add) Parse(meta *parser.Metadata) error {
	if err := a.parseRight(meta); err != nil {
		return err
	}
	const msg = "Add operation can only add numbers or text"
	kind, err := a.armsSame(msg)
	if err != nil {
		return err
	}
	if kind != types.Num && kind != types.Text {
		return mismatch(a.op.Span, msg, a.left)
	}
	a.kind = kind
	return nil
}

func (a *Add) Type() types.Type { return a.kind }

func (a *Add) Translate(meta *translate.Meta) string {
	left := a.left.Translate(meta)
	right := a.right.Translate(meta)
	if a.kind == types.Text {
		return translate.Concat(left, right)
	}
	return translate.Computation(translate.Add, left, right)
}

// Sub subtracts numbers.
type Sub struct{ binary }

func (s *Sub) Parse(meta *parser.Metadata) error {
	if err := s.parseRight(meta); err != nil {
		return err
	}
	return s.armsOfType(types.Num, "Subtract operation can only subtract numbers")
}

func (s *Sub) Type() types.Type { return types.Num }

func (s *Sub) Translate(meta *translate.Meta) string {
	left := s.left.Translate(meta)
	right := s.right.Translate(meta)
	return translate.Computation(translate.Sub, left, right)
}

// Mul multiplies numbers.
type Mul struct{ binary }

func (m *Mul) Parse(meta *parser.Metadata) error {
	if err := m.parseRight(meta); err != nil {
		return err
	}
	return m.armsOfType(types.Num, "Multiply operation can only multiply numbers")
}

func (m *Mul) Type() types.Type { return types.Num }

func (m *Mul) Translate(meta *translate.Meta) string {
	left := m.left.Translate(meta)
	right := m.right.Translate(meta)
	return translate.Computation(translate.Mul, left, right)
}

// Mod is the numeric remainder.
type Mod struct{ binary }

func (m *Mod) Parse(meta *parser.Metadata) error {
	if err := m.parseRight(meta); err != nil {
		return err
	}
	return m.armsOfType(types.Num, "Modulo operation can only operate on numbers")
}

func (m *Mod) Type() types.Type { return types.Num }

func (m *Mod) Translate(meta *translate.Meta) string {
	left := m.left.Translate(meta)
	right := m.right.Translate(meta)
	return translate.Computation(translate.Mod, left, right)
}
