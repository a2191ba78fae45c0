package driver

import (
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"ember/internal/mono"
	"ember/internal/observ"
	"ember/internal/symbols"
	"ember/internal/translate"
	"ember/internal/types"
)

// InspectReport is the compiler state of one file after parsing: what is
// declared where and which function instances were produced.
type InspectReport struct {
	File        string                     `yaml:"file"`
	Globals     uint32                     `yaml:"globals"`
	Scopes      []InspectScope             `yaml:"scopes"`
	Functions   []InspectFunction          `yaml:"functions,omitempty"`
	Exports     []symbols.ExportedFunction `yaml:"exports,omitempty"`
	Diagnostics int                        `yaml:"diagnostics"`
	Timings     *observ.Report             `yaml:"timings,omitempty"`
}

// InspectScope is one open frame of the scope stack.
type InspectScope struct {
	Depth     int               `yaml:"depth"`
	Variables []InspectVariable `yaml:"variables,omitempty"`
	Functions []string          `yaml:"functions,omitempty"`
}

// InspectVariable is a declared variable and the shell name it lives in.
type InspectVariable struct {
	Name   string     `yaml:"name"`
	Type   types.Type `yaml:"type"`
	Global bool       `yaml:"global"`
	Bash   string     `yaml:"bash"`
}

// InspectFunction is a declaration with its instance cache.
type InspectFunction struct {
	Name      string                  `yaml:"name"`
	ID        mono.FunctionID         `yaml:"id"`
	Public    bool                    `yaml:"public"`
	Typed     bool                    `yaml:"typed"`
	Params    []symbols.ExportedParam `yaml:"params,omitempty"`
	Returns   types.Type              `yaml:"returns"`
	Instances []InspectInstance       `yaml:"instances,omitempty"`
}

// InspectInstance is one monomorphized instance.
type InspectInstance struct {
	Bash    string       `yaml:"bash"`
	Args    []types.Type `yaml:"args,flow"`
	Returns types.Type   `yaml:"returns"`
}

// Inspect builds the report for a compiled result.
func Inspect(res *Result) (InspectReport, error) {
	if res == nil || res.Meta == nil {
		return InspectReport{}, fmt.Errorf("nothing to inspect")
	}
	mem := res.Meta.Mem
	report := InspectReport{
		File:        res.Path,
		Globals:     uint32(mem.GlobalCount()),
		Exports:     mem.Exports().Signatures(),
		Diagnostics: res.Bag.Len(),
	}
	if timings := res.Timer.Report(); len(timings.Phases) > 0 {
		report.Timings = &timings
	}

	var decls []symbols.FunctionDecl
	for i, scope := range mem.Scopes() {
		frame := InspectScope{Depth: i + 1}
		for _, name := range sortedNames(scope.Vars) {
			v := scope.Vars[name]
			bash := translate.LocalName(v.Name, v.Depth)
			if v.IsGlobal {
				bash = translate.GlobalName(uint32(v.GlobalID), v.Name)
			}
			frame.Variables = append(frame.Variables, InspectVariable{Name: v.Name, Type: v.Type, Global: v.IsGlobal, Bash: bash})
		}
		for _, name := range sortedNames(scope.Funs) {
			frame.Functions = append(frame.Functions, name)
			decls = append(decls, scope.Funs[name])
		}
		report.Scopes = append(report.Scopes, frame)
	}

	slices.SortFunc(decls, func(a, b symbols.FunctionDecl) int { return int(a.ID) - int(b.ID) })
	for _, decl := range decls {
		fn := InspectFunction{
			Name:    decl.Name,
			ID:      decl.ID,
			Public:  decl.IsPublic,
			Typed:   decl.Typed,
			Returns: decl.Returns,
		}
		for _, p := range decl.Params {
			fn.Params = append(fn.Params, symbols.ExportedParam{Name: p.Name, Type: p.Type})
		}
		insts, _ := mem.FunctionInstances(decl.ID)
		for v, inst := range insts {
			fn.Instances = append(fn.Instances, InspectInstance{
				Bash:    translate.InstanceName(decl.Name, decl.ID, v),
				Args:    inst.Args,
				Returns: inst.Returns,
			})
		}
		report.Functions = append(report.Functions, fn)
	}
	return report, nil
}

// WriteInspectYAML encodes report as YAML.
func WriteInspectYAML(w io.Writer, report InspectReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

// WriteInstances prints the instance cache in the compact text form, with
// instance bodies unless headersOnly is set.
func WriteInstances(w io.Writer, res *Result, headersOnly bool) error {
	if res == nil || res.Meta == nil {
		return fmt.Errorf("nothing to inspect")
	}
	names := make(map[mono.FunctionID]string)
	for _, scope := range res.Meta.Mem.Scopes() {
		for name, decl := range scope.Funs {
			names[decl.ID] = name
		}
	}
	return mono.DumpFunctionMap(w, res.Meta.Mem.FunctionMap(), names, headersOnly)
}

func sortedNames[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
