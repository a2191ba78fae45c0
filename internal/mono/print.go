package mono

import (
	"fmt"
	"io"
	"strings"

	"ember/internal/types"
)

// DumpFunctionMap writes a text representation of the instance cache.
// names maps ids to function names; missing names print as "fn#id".
func DumpFunctionMap(w io.Writer, m *FunctionMap, names map[FunctionID]string, headersOnly bool) error {
	if w == nil || m == nil {
		return nil
	}
	for _, id := range m.IDs() {
		name := names[id]
		if name == "" {
			name = fmt.Sprintf("fn#%d", id)
		}
		insts, _ := m.Get(id)
		if _, err := fmt.Fprintf(w, "%s (id %d): %d instance(s)\n", name, id, len(insts)); err != nil {
			return err
		}
		for v, inst := range insts {
			if _, err := fmt.Fprintf(w, "  v%d %s -> %s\n", v, types.Labels(inst.Args), inst.Returns); err != nil {
				return err
			}
			if headersOnly || inst.Body == "" {
				continue
			}
			for _, line := range strings.Split(strings.TrimRight(inst.Body, "\n"), "\n") {
				if _, err := fmt.Fprintf(w, "    | %s\n", line); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
