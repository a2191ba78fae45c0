package syntax

import (
	"fmt"

	"ember/internal/diag"
	"ember/internal/fix"
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/symbols"
	"ember/internal/token"
	"ember/internal/translate"
	"ember/internal/types"
)

// VariableGet reads a variable.
type VariableGet struct {
	tok  token.Token
	decl symbols.VariableDecl
}

func (v *VariableGet) Parse(meta *parser.Metadata) error {
	tok, err := meta.ExpectIdent()
	if err != nil {
		return err
	}
	decl, err := resolveVariable(meta, tok)
	if err != nil {
		return err
	}
	v.tok, v.decl = tok, decl
	return nil
}

func (v *VariableGet) Type() types.Type  { return v.decl.Type }
func (v *VariableGet) Span() source.Span { return v.tok.Span }

func (v *VariableGet) Translate(_ *translate.Meta) string {
	return translate.Ref(bashName(v.decl))
}

func resolveVariable(meta *parser.Metadata, tok token.Token) (symbols.VariableDecl, error) {
	decl, ok := meta.Mem.GetVariable(tok.Text)
	if ok {
		return decl, nil
	}
	f := parser.Failf(diag.SemaUnresolvedVariable, tok.Span, "variable '%s' does not exist", tok.Text)
	if near := parser.Nearest(tok.Text, meta.Mem.AvailableVariables()); near != "" {
		f.WithNote(tok.Span, fmt.Sprintf("did you mean '%s'?", near)).
			WithFix(fix.ReplaceSpan(fmt.Sprintf("replace with '%s'", near), tok.Span, near))
	}
	return symbols.VariableDecl{}, f
}

// bashName is the shell variable a declaration lives in.
func bashName(decl symbols.VariableDecl) string {
	if decl.IsGlobal {
		return translate.GlobalName(uint32(decl.GlobalID), decl.Name)
	}
	return translate.LocalName(decl.Name, decl.Depth)
}
