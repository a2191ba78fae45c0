package syntax

import (
	"fmt"
	"strings"
	"testing"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/translate"
)

type compiled struct {
	prog *Program
	meta *parser.Metadata
	bag  *diag.Bag
}

func compile(t *testing.T, src string) compiled {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.em", []byte(src))
	bag := diag.NewBag(100)
	rep := &diag.BagReporter{Bag: bag}
	toks := lexer.New(fs.Get(id), lexer.Options{Reporter: rep}).All()
	meta := parser.New(id, toks, rep, nil)
	prog := &Program{}
	if err := prog.Parse(meta); err != nil {
		t.Fatalf("parse returned error without StopAtFirstError: %v", err)
	}
	return compiled{prog: prog, meta: meta, bag: bag}
}

func (c compiled) bash() string {
	return c.prog.Translate(translate.NewMeta(c.meta.Mem.FunctionMap()))
}

func (c compiled) requireClean(t *testing.T) {
	t.Helper()
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(c.bag))
	}
}

func (c compiled) requireCode(t *testing.T, code diag.Code) diag.Diagnostic {
	t.Helper()
	for _, d := range c.bag.Items() {
		if d.Code == code {
			return d
		}
	}
	t.Fatalf("expected %s, got: %s", code.ID(), summary(c.bag))
	return diag.Diagnostic{}
}

func summary(bag *diag.Bag) string {
	items := bag.Items()
	if len(items) == 0 {
		return "<none>"
	}
	lines := make([]string, len(items))
	for i, d := range items {
		lines[i] = fmt.Sprintf("[%s] %s %s", d.Code.ID(), d.Primary, d.Message)
	}
	return strings.Join(lines, "; ")
}
