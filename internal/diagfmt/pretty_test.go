package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"ember/internal/diag"
	"ember/internal/source"
)

func prettyString(bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) string {
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, opts)
	return buf.String()
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/src/test.em", []byte("let x = \"unterminated string\n"))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28}, "Unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.em"},
		{"Relative path", PathModeRelative, "src/test.em"},
		{"Basename only", PathModeBasename, "test.em"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := prettyString(bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			for _, want := range []string{tt.contains, "ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, output)
				}
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()
	tests := []struct {
		path     string
		expected string
	}{
		{"test.em", "test.em"},
		{"/very/long/absolute/path/to/some/nested/directory/file.em", "file.em:1:9"},
	}
	for _, tt := range tests {
		fileID := fs.AddVirtual(tt.path, []byte("let x = 42\n"))
		bag := diag.NewBag(1)
		bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 8, End: 10}, "Test warning"))
		output := prettyString(bag, fs, PrettyOpts{PathMode: PathModeAuto})
		if !strings.Contains(output, tt.expected) {
			t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, output)
		}
	}
}

func TestPrettyExcerpt(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.em", []byte("let a = 1\nlet b = a / \"x\"\necho b\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.SemaTypeMismatch,
		source.Span{File: fileID, Start: 20, End: 21}, "Division operation can only divide numbers"))

	output := prettyString(bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	want := strings.Join([]string{
		"main.em:2:11: ERROR SEM3002: Division operation can only divide numbers",
		"1 | let a = 1",
		"2 | let b = a / \"x\"",
		"  |           ^",
		"3 | echo b",
		"",
	}, "\n")
	if output != want {
		t.Fatalf("got:\n%s\nwant:\n%s", output, want)
	}
}

func TestPrettyCaretWidth(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("wide.em", []byte("echo \"日本\" + 1\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.SemaTypeMismatch,
		source.Span{File: fileID, Start: 5, End: 13}, "mismatch"))

	output := prettyString(bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.Contains(output, "  |      ^~~~~~\n") {
		t.Fatalf("caret must cover the display width of the span, got:\n%s", output)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.em", []byte("echo cuont + count\n"))

	bag := diag.NewBag(4)
	primary := source.Span{File: fileID, Start: 5, End: 10}
	d := diag.New(diag.SevError, diag.SemaUnresolvedVariable, primary, "variable 'cuont' does not exist").
		WithNote(source.Span{File: fileID, Start: 13, End: 18}, "'count' is used here").
		WithFix("rename to 'count'", diag.FixEdit{Span: primary, NewText: "count"})
	bag.Add(d)

	output := prettyString(bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true})
	for _, want := range []string{"note: test.em:1:14", "fix #1: rename to 'count'", `apply="count"`} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "preview:") {
		t.Fatalf("preview must be opt-in, got:\n%s", output)
	}

	output = prettyString(bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(output, "note:") || strings.Contains(output, "fix #1") {
		t.Fatalf("notes and fixes must be opt-in, got:\n%s", output)
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("example.em", []byte("let a = 42 echo a"))
	insert := source.Span{File: fileID, Start: 10, End: 10}
	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevError, diag.SynUnexpectedToken, insert, "expected end of statement").
		WithFix("insert semicolon", diag.FixEdit{Span: insert, NewText: ";"}))

	output := prettyString(bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowFixes: true, ShowPreview: true})
	for _, want := range []string{"preview:", "- let a = 42 echo a", "+ let a = 42; echo a"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q, got:\n%s", want, output)
		}
	}
}
