package symbols

import (
	"ember/internal/mono"
	"ember/internal/types"
)

// Exports accumulates public function declarations of a module.
// It is append-only and outlives the scope stack.
type Exports struct {
	functions []FunctionDecl
}

// AddFunction registers decl if it is public. Non-public declarations and
// declarations whose id is already registered are ignored.
func (e *Exports) AddFunction(decl FunctionDecl) bool {
	if e == nil || !decl.IsPublic {
		return false
	}
	for _, fn := range e.functions {
		if fn.ID == decl.ID {
			return false
		}
	}
	e.functions = append(e.functions, decl)
	return true
}

// Functions returns the registered declarations in registration order.
func (e *Exports) Functions() []FunctionDecl {
	if e == nil {
		return nil
	}
	out := make([]FunctionDecl, len(e.functions))
	copy(out, e.functions)
	return out
}

// Lookup returns the most recent export with the given name.
func (e *Exports) Lookup(name string) (FunctionDecl, bool) {
	if e == nil {
		return FunctionDecl{}, false
	}
	for i := len(e.functions) - 1; i >= 0; i-- {
		if e.functions[i].Name == name {
			return e.functions[i], true
		}
	}
	return FunctionDecl{}, false
}

// Len returns the number of exported functions.
func (e *Exports) Len() int {
	if e == nil {
		return 0
	}
	return len(e.functions)
}

// ExportedFunction is the serializable signature of an export,
// read by importers and persisted in the exports cache.
type ExportedFunction struct {
	Name    string          `msgpack:"name" yaml:"name"`
	ID      mono.FunctionID `msgpack:"id" yaml:"id"`
	Params  []ExportedParam `msgpack:"params" yaml:"params"`
	Returns types.Type      `msgpack:"returns" yaml:"returns"`
	Typed   bool            `msgpack:"typed" yaml:"typed"`
}

// ExportedParam is a parameter of an ExportedFunction.
type ExportedParam struct {
	Name string     `msgpack:"name" yaml:"name"`
	Type types.Type `msgpack:"type" yaml:"type"`
}

// Signatures returns the serializable view of all exports.
func (e *Exports) Signatures() []ExportedFunction {
	fns := e.Functions()
	out := make([]ExportedFunction, 0, len(fns))
	for _, fn := range fns {
		params := make([]ExportedParam, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = ExportedParam{Name: p.Name, Type: p.Type}
		}
		out = append(out, ExportedFunction{
			Name:    fn.Name,
			ID:      fn.ID,
			Params:  params,
			Returns: fn.Returns,
			Typed:   fn.Typed,
		})
	}
	return out
}
