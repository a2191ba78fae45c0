package translate

import (
	"strings"

	"ember/internal/mono"
)

const indentUnit = "    "

// Meta is the translation state of one emission pass.
type Meta struct {
	Functions *mono.FunctionMap

	indent  int
	hoisted []string

	// Set while translating a function instance body.
	InFunction bool
	FunName    string
	FunID      mono.FunctionID
	Instance   int
}

// NewMeta creates top-level translation metadata.
func NewMeta(functions *mono.FunctionMap) *Meta {
	return &Meta{Functions: functions}
}

// ForInstance creates metadata for the body of one function instance,
// indented one level inside the function definition.
func (m *Meta) ForInstance(name string, id mono.FunctionID, instance int) *Meta {
	return &Meta{
		Functions:  m.Functions,
		indent:     1,
		InFunction: true,
		FunName:    name,
		FunID:      id,
		Instance:   instance,
	}
}

// Indent returns the current indentation prefix.
func (m *Meta) Indent() string {
	return strings.Repeat(indentUnit, m.indent)
}

// Nest runs fn one indentation level deeper.
func (m *Meta) Nest(fn func()) {
	m.indent++
	defer func() { m.indent-- }()
	fn()
}

// Hoist queues a statement that must run before the statement being translated.
func (m *Meta) Hoist(stmt string) {
	m.hoisted = append(m.hoisted, stmt)
}

// TakeHoisted returns and clears the queued statements.
func (m *Meta) TakeHoisted() []string {
	out := m.hoisted
	m.hoisted = nil
	return out
}

// Lines joins statements at the current indentation, one per line.
func (m *Meta) Lines(stmts ...string) string {
	var b strings.Builder
	prefix := m.Indent()
	for _, s := range stmts {
		b.WriteString(prefix)
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return b.String()
}

// Statement renders stmt preceded by every statement hoisted while building it.
func (m *Meta) Statement(stmt string) string {
	lines := m.TakeHoisted()
	if stmt != "" {
		lines = append(lines, stmt)
	}
	return m.Lines(lines...)
}
