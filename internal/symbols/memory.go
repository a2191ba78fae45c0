package symbols

import (
	"slices"

	"ember/internal/mono"
	"ember/internal/source"
	"ember/internal/types"
)

// Memory is the scope stack of one analysis context together with the
// function instance cache, the global variable counter and the exports.
//
// Declarations require at least one open scope; declaring on an empty stack
// is a caller bug and panics.
type Memory struct {
	scopes     []ScopeUnit
	functions  *mono.FunctionMap
	variableID GlobalID
	exports    Exports
}

// NewMemory creates an empty Memory with no open scopes.
func NewMemory() *Memory {
	return &Memory{functions: mono.NewFunctionMap()}
}

// NewMemoryFrom rebuilds a Memory from a declaration snapshot.
// The function map starts empty; callers hand theirs over with SetFunctionMap.
func NewMemoryFrom(ctx DeclContext) *Memory {
	m := NewMemory()
	m.scopes = make([]ScopeUnit, len(ctx.Scopes))
	for i, s := range ctx.Scopes {
		m.scopes[i] = s.clone()
	}
	m.variableID = ctx.VariableID
	return m
}

// Depth returns the number of open scopes.
func (m *Memory) Depth() int { return len(m.scopes) }

// PushScope opens a new lexical frame.
func (m *Memory) PushScope() {
	m.scopes = append(m.scopes, newScopeUnit())
}

// PopScope closes and returns the innermost frame.
// It reports false when no scope is open.
func (m *Memory) PopScope() (ScopeUnit, bool) {
	if len(m.scopes) == 0 {
		return ScopeUnit{}, false
	}
	top := m.scopes[len(m.scopes)-1]
	m.scopes = m.scopes[:len(m.scopes)-1]
	return top, true
}

func (m *Memory) innermost() *ScopeUnit {
	if len(m.scopes) == 0 {
		panic("symbols: declaration with no open scope")
	}
	return &m.scopes[len(m.scopes)-1]
}

// AddVariable inserts or overwrites name in the innermost frame.
// Global variables receive the next GlobalID, which is returned with true.
func (m *Memory) AddVariable(name string, typ types.Type, global bool) (GlobalID, bool) {
	return m.addVariable(VariableDecl{Name: name, Type: typ}, global)
}

// AddVariableDecl is AddVariable carrying the declaration span for tooling.
func (m *Memory) AddVariableDecl(decl VariableDecl, global bool) (GlobalID, bool) {
	return m.addVariable(decl, global)
}

func (m *Memory) addVariable(decl VariableDecl, global bool) (GlobalID, bool) {
	scope := m.innermost()
	decl.IsGlobal = global
	decl.Depth = len(m.scopes)
	decl.GlobalID = 0
	if global {
		decl.GlobalID = m.variableID
		m.variableID++
	}
	scope.Vars[decl.Name] = decl
	return decl.GlobalID, global
}

// HasVariableInScope reports whether name is declared in the innermost frame.
func (m *Memory) HasVariableInScope(name string) bool {
	if len(m.scopes) == 0 {
		return false
	}
	_, ok := m.scopes[len(m.scopes)-1].Vars[name]
	return ok
}

// GetVariable resolves name from the innermost frame outwards.
func (m *Memory) GetVariable(name string) (VariableDecl, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if v, ok := m.scopes[i].Vars[name]; ok {
			return v, true
		}
	}
	return VariableDecl{}, false
}

// AvailableVariables returns every visible variable name, sorted.
func (m *Memory) AvailableVariables() []string {
	set := make(map[string]struct{})
	for _, s := range m.scopes {
		for name := range s.Vars {
			set[name] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// AddFunctionDeclaration allocates a function id and declares syn in the
// innermost frame. It returns false when the frame already declares the name;
// the stored declaration is overwritten in that case and nothing is exported.
func (m *Memory) AddFunctionDeclaration(ctx DeclContext, syn FunctionSyntax) (mono.FunctionID, bool) {
	scope := m.innermost()
	id := m.functions.AddDeclaration()
	decl := FunctionDecl{
		Name:     syn.Name,
		Params:   slices.Clone(syn.Params),
		Returns:  syn.Returns,
		Body:     syn.Body,
		Context:  ctx,
		IsPublic: syn.IsPublic,
		ID:       id,
		Span:     syn.Span,
	}
	decl.Typed = types.FullyTyped(decl.ParamTypes())

	_, existed := scope.Funs[syn.Name]
	scope.Funs[syn.Name] = decl
	if existed {
		return id, false
	}
	m.exports.AddFunction(decl)
	return id, true
}

// AddExistingFunctionDeclaration re-registers a declaration carried over from
// another context. It reports whether the name was absent from the innermost frame.
func (m *Memory) AddExistingFunctionDeclaration(decl FunctionDecl) bool {
	scope := m.innermost()
	m.exports.AddFunction(decl)
	_, existed := scope.Funs[decl.Name]
	scope.Funs[decl.Name] = decl
	return !existed
}

// GetFunction resolves name from the innermost frame outwards.
func (m *Memory) GetFunction(name string) (FunctionDecl, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if f, ok := m.scopes[i].Funs[name]; ok {
			return f, true
		}
	}
	return FunctionDecl{}, false
}

// AvailableFunctions returns every visible function name, sorted.
func (m *Memory) AvailableFunctions() []string {
	set := make(map[string]struct{})
	for _, s := range m.scopes {
		for name := range s.Funs {
			set[name] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// AddFunctionInstance appends an instance for id and returns its index.
func (m *Memory) AddFunctionInstance(id mono.FunctionID, args []types.Type, returns types.Type, body string) int {
	return m.functions.AddInstance(id, mono.FunctionInstance{Args: args, Returns: returns, Body: body})
}

// FunctionInstances returns the instances of id, or false for an unknown id.
func (m *Memory) FunctionInstances(id mono.FunctionID) ([]mono.FunctionInstance, bool) {
	return m.functions.Get(id)
}

// LookupFunctionInstance finds the instance of id matching args exactly.
func (m *Memory) LookupFunctionInstance(id mono.FunctionID, args []types.Type) (int, mono.FunctionInstance, bool) {
	return m.functions.Lookup(id, args)
}

// SetFunctionMap replaces this Memory's function map with a copy of other's.
func (m *Memory) SetFunctionMap(other *Memory) {
	m.functions = other.functions.Clone()
}

// FunctionMap exposes the instance cache for translation and tooling.
func (m *Memory) FunctionMap() *mono.FunctionMap { return m.functions }

// Exports returns the module's export registry.
func (m *Memory) Exports() *Exports { return &m.exports }

// GlobalCount reports how many global ids have been allocated.
func (m *Memory) GlobalCount() GlobalID { return m.variableID }

// Snapshot captures the visible scope stack for a function declaration.
func (m *Memory) Snapshot(file source.FileID) DeclContext {
	scopes := make([]ScopeUnit, len(m.scopes))
	for i, s := range m.scopes {
		scopes[i] = s.clone()
	}
	return DeclContext{File: file, Scopes: scopes, VariableID: m.variableID}
}

// Scopes returns copies of the open frames, outermost first.
func (m *Memory) Scopes() []ScopeUnit {
	out := make([]ScopeUnit, len(m.scopes))
	for i, s := range m.scopes {
		out[i] = s.clone()
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
