package symbols

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ember/internal/types"
)

func newScoped() *Memory {
	m := NewMemory()
	m.PushScope()
	return m
}

func TestShadowingAcrossScopes(t *testing.T) {
	m := newScoped()
	m.AddVariable("x", types.Num, false)
	m.PushScope()
	m.AddVariable("x", types.Text, false)

	v, ok := m.GetVariable("x")
	if !ok || v.Type != types.Text {
		t.Fatalf("inner lookup: got %+v, %v", v, ok)
	}
	if _, ok := m.PopScope(); !ok {
		t.Fatalf("pop must succeed")
	}
	v, ok = m.GetVariable("x")
	if !ok || v.Type != types.Num {
		t.Fatalf("outer lookup after pop: got %+v, %v", v, ok)
	}
}

func TestGlobalIDsAreMonotonic(t *testing.T) {
	m := newScoped()
	var got []GlobalID
	for _, name := range []string{"a", "b", "c"} {
		id, ok := m.AddVariable(name, types.Num, true)
		if !ok {
			t.Fatalf("global %s did not receive an id", name)
		}
		got = append(got, id)
		if _, ok := m.AddVariable(name+"_local", types.Num, false); ok {
			t.Fatalf("local variable must not receive an id")
		}
	}
	if diff := cmp.Diff([]GlobalID{0, 1, 2}, got); diff != "" {
		t.Fatalf("global ids (-want +got):\n%s", diff)
	}
	if m.GlobalCount() != 3 {
		t.Fatalf("expected 3 allocated ids, got %d", m.GlobalCount())
	}
	v, _ := m.GetVariable("b")
	if !v.IsGlobal || v.GlobalID != 1 {
		t.Fatalf("unexpected decl for b: %+v", v)
	}
}

func TestPopScopeOnEmptyStack(t *testing.T) {
	m := NewMemory()
	if _, ok := m.PopScope(); ok {
		t.Fatalf("pop on empty stack must report false")
	}
	if m.Depth() != 0 {
		t.Fatalf("depth must stay 0")
	}
}

func TestDeclareWithoutScopePanics(t *testing.T) {
	m := NewMemory()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	m.AddVariable("x", types.Num, true)
}

func TestAvailableNamesSortedAndDeduplicated(t *testing.T) {
	m := newScoped()
	m.AddVariable("zeta", types.Num, true)
	m.AddVariable("alpha", types.Num, true)
	m.PushScope()
	m.AddVariable("alpha", types.Text, false)
	m.AddVariable("mid", types.Bool, false)
	m.AddFunctionDeclaration(DeclContext{}, FunctionSyntax{Name: "g"})
	m.AddFunctionDeclaration(DeclContext{}, FunctionSyntax{Name: "f"})

	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, m.AvailableVariables()); diff != "" {
		t.Fatalf("variables (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"f", "g"}, m.AvailableFunctions()); diff != "" {
		t.Fatalf("functions (-want +got):\n%s", diff)
	}
}

func TestAddFunctionDeclarationRedeclaration(t *testing.T) {
	m := newScoped()
	syn := FunctionSyntax{Name: "f", Params: []Param{{Name: "x", Type: types.Generic}}}

	first, ok := m.AddFunctionDeclaration(DeclContext{}, syn)
	if !ok || first != 0 {
		t.Fatalf("first declaration: id %d ok %v", first, ok)
	}
	second, ok := m.AddFunctionDeclaration(DeclContext{}, syn)
	if ok {
		t.Fatalf("second declaration in the same scope must report a conflict")
	}
	fn, _ := m.GetFunction("f")
	if fn.ID != second {
		t.Fatalf("storage must hold the overwriting declaration, got id %d", fn.ID)
	}
	if fn.Typed {
		t.Fatalf("generic parameter must make the declaration untyped")
	}

	m.PushScope()
	if _, ok := m.AddFunctionDeclaration(DeclContext{}, syn); !ok {
		t.Fatalf("declaration in a nested scope shadows, it is not a conflict")
	}
}

func TestAddExistingFunctionDeclaration(t *testing.T) {
	m := newScoped()
	decl := FunctionDecl{Name: "f", ID: 7, Typed: true}
	if !m.AddExistingFunctionDeclaration(decl) {
		t.Fatalf("first insert must report the name was absent")
	}
	if m.AddExistingFunctionDeclaration(decl) {
		t.Fatalf("second insert must report the name was present")
	}
}

func TestExportVisibility(t *testing.T) {
	m := newScoped()
	m.AddFunctionDeclaration(DeclContext{}, FunctionSyntax{Name: "pubf", IsPublic: true})
	m.AddFunctionDeclaration(DeclContext{}, FunctionSyntax{Name: "priv"})
	m.PushScope()
	m.AddFunctionDeclaration(DeclContext{}, FunctionSyntax{Name: "priv"})
	m.AddFunctionDeclaration(DeclContext{}, FunctionSyntax{Name: "priv"})

	exports := m.Exports()
	if exports.Len() != 1 {
		t.Fatalf("expected exactly one export, got %d", exports.Len())
	}
	if _, ok := exports.Lookup("priv"); ok {
		t.Fatalf("private function must never be exported")
	}
	sig := exports.Signatures()
	if len(sig) != 1 || sig[0].Name != "pubf" {
		t.Fatalf("unexpected signatures: %+v", sig)
	}

	fn, _ := exports.Lookup("pubf")
	m.AddExistingFunctionDeclaration(fn)
	if exports.Len() != 1 {
		t.Fatalf("re-registering an exported declaration must not duplicate it")
	}
}

func TestInstanceCacheThroughMemory(t *testing.T) {
	m := newScoped()
	id, _ := m.AddFunctionDeclaration(DeclContext{}, FunctionSyntax{
		Name:   "f",
		Params: []Param{{Name: "x", Type: types.Generic}},
	})

	calls := [][]types.Type{{types.Num}, {types.Num}, {types.Text}}
	for _, args := range calls {
		if _, _, ok := m.LookupFunctionInstance(id, args); ok {
			continue
		}
		m.AddFunctionInstance(id, args, args[0], "")
	}
	insts, ok := m.FunctionInstances(id)
	if !ok || len(insts) != 2 {
		t.Fatalf("expected 2 instances, got %d (%v)", len(insts), ok)
	}
	if _, ok := m.FunctionInstances(99); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func TestSetFunctionMapCopies(t *testing.T) {
	outer := newScoped()
	id, _ := outer.AddFunctionDeclaration(DeclContext{}, FunctionSyntax{Name: "f"})

	inner := NewMemoryFrom(outer.Snapshot(0))
	inner.SetFunctionMap(outer)
	inner.AddFunctionInstance(id, nil, types.Null, "")

	if insts, _ := outer.FunctionInstances(id); len(insts) != 0 {
		t.Fatalf("outer map must not see inner writes before hand-back")
	}
	outer.SetFunctionMap(inner)
	if insts, _ := outer.FunctionInstances(id); len(insts) != 1 {
		t.Fatalf("hand-back must carry the new instance")
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	m := newScoped()
	m.AddVariable("g", types.Num, true)
	snap := m.Snapshot(0)
	m.AddVariable("late", types.Num, true)

	inner := NewMemoryFrom(snap)
	if _, ok := inner.GetVariable("late"); ok {
		t.Fatalf("snapshot must not see later declarations")
	}
	if v, ok := inner.GetVariable("g"); !ok || v.GlobalID != 0 {
		t.Fatalf("snapshot must see earlier globals, got %+v %v", v, ok)
	}
	inner.PushScope()
	inner.AddVariable("local", types.Text, false)
	if _, ok := m.GetVariable("local"); ok {
		t.Fatalf("inner declarations must not leak into the original")
	}
}

func TestVariableDepthRecorded(t *testing.T) {
	m := newScoped()
	m.AddVariable("a", types.Num, true)
	m.PushScope()
	m.AddVariable("b", types.Num, false)
	a, _ := m.GetVariable("a")
	b, _ := m.GetVariable("b")
	if a.Depth != 1 || b.Depth != 2 {
		t.Fatalf("unexpected depths a=%d b=%d", a.Depth, b.Depth)
	}
}
