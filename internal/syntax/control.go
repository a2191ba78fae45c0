package syntax

import (
	"fmt"
	"strings"

	"ember/internal/diag"
	"ember/internal/parser"
	"ember/internal/token"
	"ember/internal/translate"
	"ember/internal/types"
)

func parseCondition(meta *parser.Metadata, keyword token.Token) (Expr, error) {
	cond, err := ParseExpression(meta)
	if err != nil {
		return nil, err
	}
	if cond.Type() != types.Bool {
		return nil, parser.Fail(diag.SemaTypeMismatch, keyword.Span, "Condition must be a boolean expression").
			WithNote(cond.Span(), fmt.Sprintf("this is %s", cond.Type()))
	}
	return cond, nil
}

// If is a conditional with an optional else branch. An else-if chain is an
// If nested as the else branch.
type If struct {
	cond      Expr
	then      *Block
	otherwise Statement // *Block, *If or nil
}

func (s *If) stmt() {}

func (s *If) Parse(meta *parser.Metadata) error {
	kw, err := meta.Expect(token.KwIf)
	if err != nil {
		return err
	}
	cond, err := parseCondition(meta, kw)
	if err != nil {
		return err
	}
	then := &Block{}
	if err := then.Parse(meta); err != nil {
		return err
	}
	s.cond, s.then = cond, then
	if _, ok := meta.Accept(token.KwElse); !ok {
		return nil
	}
	var otherwise Statement
	if meta.At(token.KwIf) {
		otherwise = &If{}
	} else {
		otherwise = &Block{}
	}
	if err := otherwise.Parse(meta); err != nil {
		return err
	}
	s.otherwise = otherwise
	return nil
}

func (s *If) Translate(meta *translate.Meta) string {
	var sb strings.Builder
	cond := s.cond.Translate(meta)
	sb.WriteString(meta.Statement(fmt.Sprintf("if [ %s != 0 ]; then", cond)))
	meta.Nest(func() { sb.WriteString(s.then.Translate(meta)) })
	if s.otherwise != nil {
		sb.WriteString(meta.Lines("else"))
		meta.Nest(func() { sb.WriteString(s.otherwise.Translate(meta)) })
	}
	sb.WriteString(meta.Lines("fi"))
	return sb.String()
}

// While repeats its body while the condition holds.
type While struct {
	cond Expr
	body *Block
}

func (w *While) stmt() {}

func (w *While) Parse(meta *parser.Metadata) error {
	kw, err := meta.Expect(token.KwWhile)
	if err != nil {
		return err
	}
	cond, err := parseCondition(meta, kw)
	if err != nil {
		return err
	}
	body := &Block{}
	if err := body.Parse(meta); err != nil {
		return err
	}
	w.cond, w.body = cond, body
	return nil
}

// Translate re-runs the calls hoisted out of the condition at the end of
// every iteration so the condition sees fresh values.
func (w *While) Translate(meta *translate.Meta) string {
	var sb strings.Builder
	cond := w.cond.Translate(meta)
	pre := meta.TakeHoisted()
	sb.WriteString(meta.Lines(pre...))
	sb.WriteString(meta.Lines(fmt.Sprintf("while [ %s != 0 ]; do", cond)))
	meta.Nest(func() {
		sb.WriteString(w.body.Translate(meta))
		sb.WriteString(meta.Lines(pre...))
	})
	sb.WriteString(meta.Lines("done"))
	return sb.String()
}
