package syntax

import (
	"errors"
	"fmt"
	"strings"

	"ember/internal/diag"
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/symbols"
	"ember/internal/trace"
	"ember/internal/translate"
	"ember/internal/types"
)

// Instantiate returns the instance of decl for args, creating it on first use.
//
// A cache hit reuses the stored instance without touching the body. On a miss
// the raw body is parsed in a nested Memory rebuilt from the declaration
// snapshot, with the caller's function map handed in and back out, then
// translated and stored.
func Instantiate(meta *parser.Metadata, decl symbols.FunctionDecl, args []types.Type, site source.Span) (int, types.Type, error) {
	event := "instantiate:" + decl.Name
	if idx, inst, ok := meta.Mem.LookupFunctionInstance(decl.ID, args); ok {
		trace.Point(meta.Tracer, trace.ScopeFunc, event, "hit "+types.Labels(args), meta.SpanID)
		return idx, inst.Returns, nil
	}
	trace.Point(meta.Tracer, trace.ScopeFunc, event, "miss "+types.Labels(args), meta.SpanID)

	if !meta.BeginInstantiation(decl.ID) {
		return 0, types.Generic, parser.Failf(diag.SemaRecursiveInstance, site,
			"recursive instantiation of '%s' is not supported", decl.Name).
			WithNote(decl.Span, "function declared here")
	}
	defer meta.EndInstantiation(decl.ID)

	mem := symbols.NewMemoryFrom(decl.Context)
	mem.SetFunctionMap(meta.Mem)
	mem.PushScope()
	mem.AddExistingFunctionDeclaration(decl)
	params := make([]symbols.VariableDecl, len(decl.Params))
	for i, p := range decl.Params {
		mem.AddVariableDecl(symbols.VariableDecl{Name: p.Name, Type: args[i], Span: p.Span}, false)
		params[i], _ = mem.GetVariable(p.Name)
	}

	nested := meta.Nested(mem, decl.Body, parser.Context{
		InFunction: true,
		FunName:    decl.Name,
		FunID:      decl.ID,
		Returns:    decl.Returns,
	})
	body := &Block{}
	if err := body.ParseBody(nested); err != nil {
		return 0, types.Generic, inInstantiation(err, decl, args, site)
	}
	returns := decl.Returns
	switch {
	case returns == types.Generic && nested.Ctx.ReturnSeen:
		returns = nested.Ctx.Inferred
	case returns == types.Generic:
		returns = types.Null
	case returns != types.Null && !nested.Ctx.ReturnSeen:
		return 0, types.Generic, parser.Failf(diag.SemaTypeMismatch, decl.Span,
			"function '%s' must return a value of type %s", decl.Name, returns)
	}
	mem.PopScope()
	meta.Mem.SetFunctionMap(mem)

	insts, _ := meta.Mem.FunctionInstances(decl.ID)
	idx := len(insts)
	tm := translate.NewMeta(meta.Mem.FunctionMap()).ForInstance(decl.Name, decl.ID, idx)
	var sb strings.Builder
	for i, p := range params {
		sb.WriteString(tm.Lines(fmt.Sprintf("local %s=\"$%d\"", bashName(p), i+1)))
	}
	sb.WriteString(body.Translate(tm))

	stored := meta.Mem.AddFunctionInstance(decl.ID, args, returns, sb.String())
	return stored, returns, nil
}

// inInstantiation points a failure inside a body back at the call that
// triggered the instantiation.
func inInstantiation(err error, decl symbols.FunctionDecl, args []types.Type, site source.Span) error {
	var f *parser.Failure
	if errors.As(err, &f) {
		return f.WithNote(site, fmt.Sprintf("while instantiating '%s' with %s", decl.Name, types.Labels(args)))
	}
	return err
}
