package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ember/internal/diag"
	"ember/internal/trace"
)

const addSource = "pub fun add(a, b) {\n  return a + b\n}\necho add(1, 2)\n"

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileSourceProducesScript(t *testing.T) {
	res := CompileSource(context.Background(), "add.em", []byte(addSource), Options{})
	if res.Failed() {
		t.Fatalf("unexpected failure: %+v", res.Bag.Items())
	}
	if !strings.HasPrefix(res.Script, "#!/usr/bin/env bash\n") {
		t.Fatalf("missing shebang:\n%s", res.Script)
	}
	for _, want := range []string{"add__0_v0() {", "add__0_v0 1 2", `echo "${__AF_add__0_v0__`} {
		if !strings.Contains(res.Script, want) {
			t.Fatalf("missing %q in:\n%s", want, res.Script)
		}
	}
}

func TestCompileFailureHasNoScript(t *testing.T) {
	res := CompileSource(context.Background(), "bad.em", []byte("echo 1 / \"x\"\necho y\n"), Options{})
	if !res.Failed() {
		t.Fatalf("expected failure")
	}
	if res.Script != "" {
		t.Fatalf("failed compilation must not produce a script")
	}
	if res.Bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", res.Bag.Len())
	}
	items := res.Bag.Items()
	if items[0].Primary.Start > items[1].Primary.Start {
		t.Fatalf("diagnostics must be sorted by position")
	}
}

func TestCompileStopAtFirstError(t *testing.T) {
	res := CompileSource(context.Background(), "bad.em", []byte("echo a\necho b\n"), Options{StopAtFirstError: true})
	if res.Bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", res.Bag.Len())
	}
}

func TestCompileReportsPhases(t *testing.T) {
	var mu sync.Mutex
	var got []string
	observer := func(ev PhaseEvent) {
		mu.Lock()
		defer mu.Unlock()
		status := "start"
		if ev.Status == PhaseEnd {
			status = "end"
		}
		got = append(got, ev.Name+":"+status)
	}
	CompileSource(context.Background(), "ok.em", []byte("echo 1\n"), Options{PhaseObserver: observer})
	want := []string{"lex:start", "lex:end", "parse:start", "parse:end", "translate:start", "translate:end"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("phase events mismatch (-want +got):\n%s", diff)
	}

	got = nil
	CompileSource(context.Background(), "bad.em", []byte("echo nope\n"), Options{PhaseObserver: observer})
	if len(got) != 4 {
		t.Fatalf("translation must be skipped on errors, got %v", got)
	}
}

func TestCompileTimingsDiagnostic(t *testing.T) {
	res := CompileSource(context.Background(), "ok.em", []byte("echo 1\n"), Options{EnableTimings: true})
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.ObsTimings || items[0].Severity != diag.SevInfo {
		t.Fatalf("expected one timings diagnostic, got %+v", items)
	}
	if len(items[0].Notes) != 1 || !strings.Contains(items[0].Notes[0].Msg, `"name":"translate"`) {
		t.Fatalf("timings note must carry the phase report, got %+v", items[0].Notes)
	}
	if res.Failed() {
		t.Fatalf("timings must not fail the build")
	}
}

func TestCompileEmitsTraceSpans(t *testing.T) {
	ring := trace.NewRingTracer(256, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	CompileSource(ctx, "f.em", []byte("fun f(x) { return x }\nf(1)\nf(2)\n"), Options{})

	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin || ev.Kind == trace.KindPoint {
			names = append(names, ev.Name)
		}
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{"compile", "lex", "parse", "declare:f", "instantiate:f", "translate"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing trace event %q in %s", want, joined)
		}
	}
}

func TestCompileAllKeepsOrderAndIsolation(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.em", "let x = 1\necho x\n")
	b := writeSource(t, dir, "sub/b.em", "let x = \"b\"\necho x\n")
	missing := filepath.Join(dir, "missing.em")

	_, results, err := CompileAll(context.Background(), []string{a, b, missing}, Options{}, 2)
	if err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, res := range results[:2] {
		if res.Failed() {
			t.Fatalf("file %d failed: %+v", i, res.Bag.Items())
		}
		// every file has its own Memory, so both globals get id 0
		if !strings.Contains(res.Script, "__0_x=") {
			t.Fatalf("file %d: expected isolated global ids:\n%s", i, res.Script)
		}
	}
	if !results[2].Failed() || results[2].Bag.Items()[0].Code != diag.IOLoadFileError {
		t.Fatalf("missing file must report an IO diagnostic")
	}
}

func TestExpandTargets(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.em", "")
	b := writeSource(t, dir, "nested/b.em", "")
	writeSource(t, dir, "notes.txt", "")

	got, err := ExpandTargets([]string{dir, a})
	if err != nil {
		t.Fatalf("ExpandTargets: %v", err)
	}
	if diff := cmp.Diff([]string{a, b}, got); diff != "" {
		t.Fatalf("targets mismatch (-want +got):\n%s", diff)
	}
	if _, err := ExpandTargets([]string{filepath.Join(dir, "absent")}); err == nil {
		t.Fatalf("expected error for a missing target")
	}
}

func TestTokenize(t *testing.T) {
	path := writeSource(t, t.TempDir(), "t.em", "let x = 1 @\n")
	res, err := Tokenize(path, 10)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(res.Tokens) != 6 {
		t.Fatalf("expected 6 tokens including the invalid one and EOF, got %d", len(res.Tokens))
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("unknown character must be reported")
	}
}

func TestTestdataCompiles(t *testing.T) {
	paths, err := ListSourceFiles(filepath.Join("..", "..", "testdata"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no testdata")
	}
	_, results, err := CompileAll(context.Background(), paths, Options{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, res := range results {
		if res.Failed() {
			t.Errorf("%s: %+v", res.Path, res.Bag.Items())
		}
	}
}
