package syntax

import (
	"fmt"
	"strings"

	"ember/internal/diag"
	"ember/internal/mono"
	"ember/internal/parser"
	"ember/internal/symbols"
	"ember/internal/token"
	"ember/internal/trace"
	"ember/internal/translate"
)

// FunDecl is `[pub] fun name(params) [: Type] { body }`.
// The body is kept as raw tokens and parsed once per instance.
type FunDecl struct {
	name token.Token
	id   mono.FunctionID
}

func (f *FunDecl) stmt() {}

func (f *FunDecl) Parse(meta *parser.Metadata) error {
	start := meta.Current()
	public := false
	if _, ok := meta.Accept(token.KwPub); ok {
		public = true
		if !meta.At(token.KwFun) {
			return parser.Fail(diag.SynPubWithoutFunction, start.Span, "'pub' must be followed by a function declaration")
		}
	}
	kw, err := meta.Expect(token.KwFun)
	if err != nil {
		return err
	}
	if meta.Ctx.InFunction || meta.Mem.Depth() > 1 {
		return parser.Fail(diag.SynFunNotAllowed, kw.Span, "functions can only be declared at the top level")
	}
	name, err := meta.ExpectIdent()
	if err != nil {
		return err
	}
	params, err := parseParams(meta)
	if err != nil {
		return err
	}
	returns, err := meta.ParseOptionalAnnotation()
	if err != nil {
		return err
	}
	body, _, err := meta.CollectBlockTokens()
	if err != nil {
		return err
	}

	ctx := meta.Mem.Snapshot(meta.File)
	id, ok := meta.Mem.AddFunctionDeclaration(ctx, symbols.FunctionSyntax{
		Name:     name.Text,
		Params:   params,
		Returns:  returns,
		Body:     body,
		IsPublic: public,
		Span:     start.Span.Cover(name.Span),
	})
	if !ok {
		return parser.Failf(diag.SemaFunctionRedeclared, name.Span, "function '%s' is already declared in this scope", name.Text)
	}
	trace.Point(meta.Tracer, trace.ScopeFunc, "declare:"+name.Text, fmt.Sprintf("id %d", id), meta.SpanID)
	f.name, f.id = name, id
	return nil
}

func parseParams(meta *parser.Metadata) ([]symbols.Param, error) {
	if _, err := meta.Expect(token.LParen); err != nil {
		return nil, err
	}
	var params []symbols.Param
	seen := make(map[string]bool)
	for !meta.At(token.RParen) {
		if len(params) > 0 {
			if _, err := meta.Expect(token.Comma); err != nil {
				return nil, err
			}
		}
		name, err := meta.ExpectIdent()
		if err != nil {
			return nil, err
		}
		if seen[name.Text] {
			return nil, parser.Failf(diag.SemaVariableRedeclared, name.Span, "parameter '%s' is declared twice", name.Text)
		}
		seen[name.Text] = true
		typ, err := meta.ParseOptionalAnnotation()
		if err != nil {
			return nil, err
		}
		params = append(params, symbols.Param{Name: name.Text, Type: typ, Span: name.Span})
	}
	meta.Advance() // ')'
	return params, nil
}

// ID returns the function id assigned at declaration.
func (f *FunDecl) ID() mono.FunctionID { return f.id }

// Translate emits every instance produced for this declaration. Functions
// that were never called have no instances and emit nothing.
func (f *FunDecl) Translate(meta *translate.Meta) string {
	insts, _ := meta.Functions.Get(f.id)
	var sb strings.Builder
	for v, inst := range insts {
		sb.WriteString(meta.Lines(translate.InstanceName(f.name.Text, f.id, v) + "() {"))
		sb.WriteString(inst.Body)
		sb.WriteString(meta.Lines("}"))
	}
	return sb.String()
}
