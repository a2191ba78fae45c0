package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"ember/internal/diag"
	"ember/internal/source"
)

func decodeJSON(t *testing.T, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	t.Helper()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	return output
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.em", []byte("fun f() {\n  let s = \"open\n}"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 20, End: 26}, "unterminated string literal"))

	output := decodeJSON(t, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename})
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected exactly one diagnostic, got %+v", output)
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" {
		t.Errorf("unexpected severity/code: %s %s", d.Severity, d.Code)
	}
	if d.Location.File != "main.em" {
		t.Errorf("Expected file=main.em, got %s", d.Location.File)
	}
	if d.Location.Start == nil || *d.Location.Start != (source.LineCol{Line: 2, Col: 11}) {
		t.Errorf("Expected start 2:11, got %v", d.Location.Start)
	}
	if output.Summary != (SummaryJSON{Errors: 1}) {
		t.Errorf("unexpected summary %+v", output.Summary)
	}
}

func TestJSONNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.em", []byte("echo cuont"))

	bag := diag.NewBag(10)
	sp := source.Span{File: fileID, Start: 5, End: 10}
	d := diag.New(diag.SevError, diag.SemaUnresolvedVariable, sp, "variable 'cuont' does not exist").
		WithNote(sp, "did you mean 'count'?").
		WithFix("rename to 'count'", diag.FixEdit{Span: sp, NewText: "count"})
	bag.Add(d)

	output := decodeJSON(t, bag, fs, JSONOpts{PathMode: PathModeBasename, IncludeNotes: true, IncludeFixes: true})
	got := output.Diagnostics[0]
	if len(got.Notes) != 1 || got.Notes[0].Message != "did you mean 'count'?" {
		t.Fatalf("unexpected notes: %+v", got.Notes)
	}
	if len(got.Fixes) != 1 || len(got.Fixes[0].Edits) != 1 {
		t.Fatalf("unexpected fixes: %+v", got.Fixes)
	}
	edit := got.Fixes[0].Edits[0]
	if edit.OldText != "cuont" || edit.NewText != "count" {
		t.Errorf("unexpected edit: %+v", edit)
	}
	if edit.Location.Start != nil {
		t.Errorf("positions must be omitted when not requested")
	}

	output = decodeJSON(t, bag, fs, JSONOpts{PathMode: PathModeBasename})
	if len(output.Diagnostics[0].Notes) != 0 || len(output.Diagnostics[0].Fixes) != 0 {
		t.Errorf("notes and fixes must be opt-in")
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.em", []byte("echo a\necho b\necho c\n"))
	bag := diag.NewBag(10)
	for i := range uint32(3) {
		bag.Add(diag.New(diag.SevError, diag.SemaUnresolvedVariable,
			source.Span{File: fileID, Start: i*7 + 5, End: i*7 + 6}, "unresolved"))
	}
	output := decodeJSON(t, bag, fs, JSONOpts{Max: 2})
	if output.Count != 2 {
		t.Fatalf("Expected count=2, got %d", output.Count)
	}
	if output.Summary.Errors != 3 || output.Summary.Omitted != 1 {
		t.Errorf("summary must count the whole bag, got %+v", output.Summary)
	}
}

func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/main.em", []byte("echo 1\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.SemaError, source.Span{File: fileID, Start: 0, End: 1}, "boom"))

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/src/main.em"},
		{"Relative", PathModeRelative, "src/main.em"},
		{"Basename", PathModeBasename, "main.em"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := decodeJSON(t, bag, fs, JSONOpts{PathMode: tt.pathMode})
			if got := output.Diagnostics[0].Location.File; got != tt.expected {
				t.Errorf("Expected file=%s, got %s", tt.expected, got)
			}
		})
	}
}

func TestJSONFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.em", []byte("let a = 42 echo a"))
	insert := source.Span{File: fileID, Start: 10, End: 10}
	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevError, diag.SynUnexpectedToken, insert, "expected end of statement").
		WithFix("insert semicolon", diag.FixEdit{Span: insert, NewText: ";"}))

	output := decodeJSON(t, bag, fs, JSONOpts{PathMode: PathModeBasename, IncludeFixes: true, IncludePreviews: true})
	edit := output.Diagnostics[0].Fixes[0].Edits[0]
	if len(edit.BeforeLines) != 1 || edit.BeforeLines[0] != "let a = 42 echo a" {
		t.Errorf("Unexpected before lines: %q", edit.BeforeLines)
	}
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != "let a = 42; echo a" {
		t.Errorf("Unexpected after lines: %q", edit.AfterLines)
	}
}
