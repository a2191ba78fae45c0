package syntax

import (
	"fmt"
	"strings"

	"ember/internal/diag"
	"ember/internal/fix"
	"ember/internal/mono"
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/symbols"
	"ember/internal/token"
	"ember/internal/translate"
	"ember/internal/types"
)

// Invocation calls a function. Parsing it selects or creates the instance
// matching the argument types.
type Invocation struct {
	name     token.Token
	args     []Expr
	span     source.Span
	id       mono.FunctionID
	instance int
	returns  types.Type
}

func (c *Invocation) Parse(meta *parser.Metadata) error {
	name, err := meta.ExpectIdent()
	if err != nil {
		return err
	}
	open, err := meta.Expect(token.LParen)
	if err != nil {
		return err
	}
	var args []Expr
	for !meta.At(token.RParen) {
		if meta.AtEOF() {
			return parser.Fail(diag.SynUnclosedParen, open.Span, "unclosed '(' in call")
		}
		if len(args) > 0 {
			if _, err := meta.Expect(token.Comma); err != nil {
				return err
			}
		}
		arg, err := ParseExpression(meta)
		if err != nil {
			return err
		}
		args = append(args, arg)
	}
	closing := meta.Advance()
	c.name, c.args = name, args
	c.span = name.Span.Cover(closing.Span)

	decl, err := resolveFunction(meta, name)
	if err != nil {
		return err
	}
	argTypes, err := c.checkArguments(decl)
	if err != nil {
		return err
	}
	idx, returns, err := Instantiate(meta, decl, argTypes, c.span)
	if err != nil {
		return err
	}
	c.id, c.instance, c.returns = decl.ID, idx, returns
	return nil
}

func resolveFunction(meta *parser.Metadata, tok token.Token) (symbols.FunctionDecl, error) {
	decl, ok := meta.Mem.GetFunction(tok.Text)
	if ok {
		return decl, nil
	}
	f := parser.Failf(diag.SemaUnresolvedFunction, tok.Span, "function '%s' does not exist", tok.Text)
	if near := parser.Nearest(tok.Text, meta.Mem.AvailableFunctions()); near != "" {
		f.WithNote(tok.Span, fmt.Sprintf("did you mean '%s'?", near)).
			WithFix(fix.ReplaceSpan(fmt.Sprintf("replace with '%s'", near), tok.Span, near))
	}
	return symbols.FunctionDecl{}, f
}

// checkArguments validates arity and annotated parameter types and returns
// the concrete argument types the instance is keyed by.
func (c *Invocation) checkArguments(decl symbols.FunctionDecl) ([]types.Type, error) {
	if len(c.args) != len(decl.Params) {
		return nil, parser.Failf(diag.SemaArgumentCount, c.span,
			"function '%s' expects %d argument(s), got %d", decl.Name, len(decl.Params), len(c.args)).
			WithNote(decl.Span, "declared here")
	}
	argTypes := make([]types.Type, len(c.args))
	for i, arg := range c.args {
		param := decl.Params[i]
		if param.Type != types.Generic && arg.Type() != param.Type {
			return nil, parser.Failf(diag.SemaTypeMismatch, arg.Span(),
				"argument %d of '%s' must be %s, got %s", i+1, decl.Name, param.Type, arg.Type()).
				WithNote(param.Span, fmt.Sprintf("parameter '%s' is declared here", param.Name))
		}
		argTypes[i] = arg.Type()
	}
	return argTypes, nil
}

func (c *Invocation) Type() types.Type  { return c.returns }
func (c *Invocation) Span() source.Span { return c.span }

// Translate hoists the call before the current statement, copies the
// instance's return variable into a call-site variable and reads the copy.
func (c *Invocation) Translate(meta *translate.Meta) string {
	words := make([]string, 0, len(c.args)+1)
	words = append(words, translate.InstanceName(c.name.Text, c.id, c.instance))
	for _, arg := range c.args {
		words = append(words, arg.Translate(meta))
	}
	meta.Hoist(strings.Join(words, " "))
	ret := translate.ReturnVar(c.name.Text, c.id, c.instance)
	result := translate.ResultVar(ret, c.span.Start)
	assign := result + "=" + translate.Ref(ret)
	if meta.InFunction {
		assign = "local " + assign
	}
	meta.Hoist(assign)
	return translate.Ref(result)
}
