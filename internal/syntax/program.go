package syntax

import (
	"strings"

	"ember/internal/parser"
	"ember/internal/translate"
)

// Program is a whole source file.
type Program struct {
	// StopAtFirstError makes Parse return the first failure instead of
	// recovering at the next top-level statement.
	StopAtFirstError bool

	statements []Statement
	failed     int
}

// Parse parses every top-level statement. Failures are reported through
// meta.Reporter; parsing resumes at the next statement unless
// StopAtFirstError is set, in which case the failure is also returned.
func (p *Program) Parse(meta *parser.Metadata) error {
	for !meta.AtEOF() {
		start, depth := meta.Index, meta.Mem.Depth()
		st, err := ParseStatement(meta)
		if err == nil {
			err = endStatement(meta)
		}
		if err != nil {
			p.failed++
			parser.ReportError(meta.Reporter, err, meta.DiagSpan())
			if p.StopAtFirstError {
				return err
			}
			for meta.Mem.Depth() > depth {
				meta.Mem.PopScope()
			}
			meta.SkipStatement(start)
			continue
		}
		p.statements = append(p.statements, st)
	}
	return nil
}

// Failed reports how many top-level statements were dropped.
func (p *Program) Failed() int { return p.failed }

// Statements returns the parsed top-level statements.
func (p *Program) Statements() []Statement { return p.statements }

func (p *Program) Translate(meta *translate.Meta) string {
	var sb strings.Builder
	for _, st := range p.statements {
		sb.WriteString(st.Translate(meta))
	}
	return sb.String()
}
