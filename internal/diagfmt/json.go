package diagfmt

import (
	"encoding/json"
	"io"

	"ember/internal/diag"
	"ember/internal/source"
)

// LocationJSON is a span in machine output. Start and End are present
// only when positions were requested.
type LocationJSON struct {
	File      string          `json:"file"`
	StartByte uint32          `json:"start_byte"`
	EndByte   uint32          `json:"end_byte"`
	Start     *source.LineCol `json:"start,omitempty"`
	End       *source.LineCol `json:"end,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// FixEditJSON представляет одно редактирование для JSON
type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

// FixJSON представляет предложение по исправлению для JSON
type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// SummaryJSON counts every diagnostic of the bag, including omitted ones.
type SummaryJSON struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
	Omitted  int `json:"omitted,omitempty"` // cut by JSONOpts.Max
}

// DiagnosticsOutput is the root of `--format json`.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Summary     SummaryJSON      `json:"summary"`
}

// makeLocation создаёт LocationJSON из Span
func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	f := fs.Get(span.File)

	var path string
	if f != nil {
		path = f.FormatPath(pathMode.mode(), fs.BaseDir())
	}

	loc := LocationJSON{File: path, StartByte: span.Start, EndByte: span.End}
	if includePositions && f != nil {
		start, end := fs.Resolve(span)
		loc.Start, loc.End = &start, &end
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) (DiagnosticsOutput, error) {
	diagnostics := make([]DiagnosticJSON, 0, bag.Len())

	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}
	summary := summarize(items)
	summary.Omitted = len(items) - maxItems

	for i := range maxItems {
		d := items[i]

		diagJSON := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions),
		}

		includeNotes := opts.IncludeNotes || d.Code == diag.ObsTimings
		if includeNotes && len(d.Notes) > 0 {
			diagJSON.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				diagJSON.Notes[j] = NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Span, fs, opts.PathMode, opts.IncludePositions),
				}
			}
		}

		if opts.IncludeFixes && len(d.Fixes) > 0 {
			diagJSON.Fixes = make([]FixJSON, len(d.Fixes))
			for k, fix := range d.Fixes {
				diagJSON.Fixes[k] = buildFixJSON(fix, fs, opts)
			}
		}

		diagnostics = append(diagnostics, diagJSON)
	}

	output := DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Summary:     summary,
	}

	return output, nil
}

func summarize(items []diag.Diagnostic) SummaryJSON {
	var s SummaryJSON
	for _, d := range items {
		switch d.Severity {
		case diag.SevError:
			s.Errors++
		case diag.SevWarning:
			s.Warnings++
		default:
			s.Infos++
		}
	}
	return s
}

// JSON форматирует диагностики в JSON формат.
// Выводит массив диагностик с полной информацией о местоположении, заметках и исправлениях.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output, err := BuildDiagnosticsOutput(bag, fs, opts)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func buildFixJSON(fix diag.Fix, fs *source.FileSet, opts JSONOpts) FixJSON {
	out := FixJSON{Title: fix.Title, Edits: make([]FixEditJSON, len(fix.Edits))}
	for i, edit := range fix.Edits {
		editJSON := FixEditJSON{
			Location: makeLocation(edit.Span, fs, opts.PathMode, opts.IncludePositions),
			NewText:  edit.NewText,
			OldText:  oldText(fs, edit),
		}
		if opts.IncludePreviews {
			if preview, err := buildFixEditPreview(fs, edit); err == nil {
				editJSON.BeforeLines = preview.before
				editJSON.AfterLines = preview.after
			}
		}
		out.Edits[i] = editJSON
	}
	return out
}
