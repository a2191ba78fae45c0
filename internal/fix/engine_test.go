package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ember/internal/diag"
	"ember/internal/source"
)

func loadFile(t *testing.T, content string) (*source.FileSet, source.FileID, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.em")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return fs, id, path
}

func withFix(sp source.Span, f diag.Fix) diag.Diagnostic {
	return diag.Diagnostic{Severity: diag.SevError, Code: diag.SemaUnresolvedVariable, Primary: sp, Message: "m", Fixes: []diag.Fix{f}}
}

func TestApplyRewritesFile(t *testing.T) {
	fs, id, path := loadFile(t, "let count = 1\necho cont\necho cuont\n")
	first := source.Span{File: id, Start: 19, End: 23}
	second := source.Span{File: id, Start: 29, End: 34}
	diags := []diag.Diagnostic{
		withFix(second, ReplaceSpan("replace with 'count'", second, "count")),
		withFix(first, ReplaceSpan("replace with 'count'", first, "count")),
		// the same suggestion reported twice is applied once
		withFix(first, ReplaceSpan("replace with 'count'", first, "count")),
	}
	res, err := Apply(fs, diags, ApplyOptions{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 2 || len(res.Skipped) != 0 {
		t.Fatalf("applied=%d skipped=%+v", len(res.Applied), res.Skipped)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "let count = 1\necho count\necho count\n"; string(data) != want {
		t.Fatalf("got %q, want %q", data, want)
	}
}

func TestApplySkipsConflicts(t *testing.T) {
	fs, id, path := loadFile(t, "echo abc\n")
	sp := source.Span{File: id, Start: 5, End: 8}
	diags := []diag.Diagnostic{
		withFix(sp, ReplaceSpan("one", sp, "x")),
		withFix(sp, ReplaceSpan("two", source.Span{File: id, Start: 6, End: 7}, "y")),
	}
	res, err := Apply(fs, diags, ApplyOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Title != "two" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if got := string(res.FileChanges[0].Content); got != "echo x\n" {
		t.Fatalf("content = %q", got)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "echo abc\n" {
		t.Fatalf("dry run modified the file: %q", data)
	}
}

func TestApplyKeepsCRLF(t *testing.T) {
	fs, id, _ := loadFile(t, "echo a\r\necho b\r\n")
	sp := source.Span{File: id, Start: 12, End: 13}
	res, err := Apply(fs, []diag.Diagnostic{withFix(sp, ReplaceSpan("r", sp, "c"))}, ApplyOptions{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(res.FileChanges[0].Content); got != "echo a\r\necho c\r\n" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplyWithoutFixes(t *testing.T) {
	fs, id, _ := loadFile(t, "echo 1\n")
	d := diag.Diagnostic{Primary: source.Span{File: id}}
	if _, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{}); !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	virtual := source.NewFileSet()
	vid := virtual.AddVirtual("v.em", []byte("echo x\n"))
	sp := source.Span{File: vid, Start: 5, End: 6}
	res, err := Apply(virtual, []diag.Diagnostic{withFix(sp, ReplaceSpan("r", sp, "y"))}, ApplyOptions{})
	if !errors.Is(err, ErrNoFixes) || len(res.Skipped) != 1 {
		t.Fatalf("virtual file: err=%v skipped=%+v", err, res.Skipped)
	}
}
