package syntax

import (
	"fmt"

	"ember/internal/diag"
	"ember/internal/parser"
	"ember/internal/symbols"
	"ember/internal/token"
	"ember/internal/translate"
)

// VarInit is `let name = value`.
type VarInit struct {
	name  token.Token
	value Expr
	decl  symbols.VariableDecl
}

func (v *VarInit) stmt() {}

func (v *VarInit) Parse(meta *parser.Metadata) error {
	if _, err := meta.Expect(token.KwLet); err != nil {
		return err
	}
	name, err := meta.ExpectIdent()
	if err != nil {
		return err
	}
	if _, err := meta.Expect(token.Assign); err != nil {
		return err
	}
	value, err := ParseExpression(meta)
	if err != nil {
		return err
	}
	if meta.Mem.HasVariableInScope(name.Text) {
		prev, _ := meta.Mem.GetVariable(name.Text)
		meta.Warn(diag.SemaVariableRedeclared, name.Span,
			fmt.Sprintf("variable '%s' is already declared in this scope", name.Text)).
			WithNote(prev.Span, "previous declaration is here").
			Emit()
	}
	global := !meta.Ctx.InFunction
	meta.Mem.AddVariableDecl(symbols.VariableDecl{Name: name.Text, Type: value.Type(), Span: name.Span}, global)
	v.decl, _ = meta.Mem.GetVariable(name.Text)
	v.name, v.value = name, value
	return nil
}

func (v *VarInit) Translate(meta *translate.Meta) string {
	value := v.value.Translate(meta)
	if v.decl.IsGlobal {
		return meta.Statement(fmt.Sprintf("%s=%s", bashName(v.decl), value))
	}
	return meta.Statement(fmt.Sprintf("local %s=%s", bashName(v.decl), value))
}

// VarSet is `name = value` on an existing variable.
type VarSet struct {
	name  token.Token
	value Expr
	decl  symbols.VariableDecl
}

func (v *VarSet) stmt() {}

func (v *VarSet) Parse(meta *parser.Metadata) error {
	name, err := meta.ExpectIdent()
	if err != nil {
		return err
	}
	decl, err := resolveVariable(meta, name)
	if err != nil {
		return err
	}
	assign, err := meta.Expect(token.Assign)
	if err != nil {
		return err
	}
	value, err := ParseExpression(meta)
	if err != nil {
		return err
	}
	if value.Type() != decl.Type {
		return parser.Failf(diag.SemaTypeMismatch, assign.Span,
			"Cannot assign value of type %s to a variable of type %s", value.Type(), decl.Type).
			WithNote(decl.Span, fmt.Sprintf("'%s' is declared here", decl.Name))
	}
	v.name, v.value, v.decl = name, value, decl
	return nil
}

func (v *VarSet) Translate(meta *translate.Meta) string {
	value := v.value.Translate(meta)
	return meta.Statement(fmt.Sprintf("%s=%s", bashName(v.decl), value))
}
