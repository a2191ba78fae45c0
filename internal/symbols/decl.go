package symbols

import (
	"ember/internal/mono"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/types"
)

// GlobalID is the stable identity of a global variable.
// Translation uses it to emit collision-free names.
type GlobalID uint32

// VariableDecl describes a declared variable.
type VariableDecl struct {
	Name     string
	Type     types.Type
	GlobalID GlobalID // valid iff IsGlobal
	IsGlobal bool
	Depth    int // scope depth the variable was declared at
	Span     source.Span
}

// Param is one declared function parameter.
type Param struct {
	Name string
	Type types.Type
	Span source.Span
}

// FunctionSyntax is what the function-declaration grammar hands to Memory.
type FunctionSyntax struct {
	Name     string
	Params   []Param
	Returns  types.Type
	Body     []token.Token
	IsPublic bool
	Span     source.Span
}

// DeclContext is the parser state captured when a function is declared.
// Instantiation rebuilds a Memory from it so the body sees exactly the
// names that were visible at the declaration.
type DeclContext struct {
	File       source.FileID
	Scopes     []ScopeUnit
	VariableID GlobalID
}

// FunctionDecl is an immutable function declaration.
type FunctionDecl struct {
	Name     string
	Params   []Param
	Returns  types.Type
	Body     []token.Token // raw, parsed on instantiation
	Context  DeclContext
	Typed    bool // no parameter is Generic
	IsPublic bool
	ID       mono.FunctionID
	Span     source.Span
}

// ParamTypes returns declared parameter types in order.
func (d *FunctionDecl) ParamTypes() []types.Type {
	out := make([]types.Type, len(d.Params))
	for i, p := range d.Params {
		out[i] = p.Type
	}
	return out
}

// ScopeUnit is one lexical frame.
type ScopeUnit struct {
	Vars map[string]VariableDecl
	Funs map[string]FunctionDecl
}

func newScopeUnit() ScopeUnit {
	return ScopeUnit{
		Vars: make(map[string]VariableDecl),
		Funs: make(map[string]FunctionDecl),
	}
}

func (s ScopeUnit) clone() ScopeUnit {
	out := ScopeUnit{
		Vars: make(map[string]VariableDecl, len(s.Vars)),
		Funs: make(map[string]FunctionDecl, len(s.Funs)),
	}
	for k, v := range s.Vars {
		out.Vars[k] = v
	}
	for k, f := range s.Funs {
		out.Funs[k] = f
	}
	return out
}
