package driver

import (
	"context"
	"fmt"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/observ"
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/syntax"
	"ember/internal/token"
	"ember/internal/trace"
	"ember/internal/translate"
	"ember/internal/version"
)

// Options configures the compilation of one file.
type Options struct {
	MaxDiagnostics   int
	StopAtFirstError bool
	EnableTimings    bool
	PhaseObserver    PhaseObserver
}

// Result holds everything produced while compiling one file.
// Script is empty when the file has errors.
type Result struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
	Program *syntax.Program
	Meta    *parser.Metadata
	Script  string
	Timer   *observ.Timer
}

// Failed reports whether compilation produced errors.
func (r *Result) Failed() bool {
	return r == nil || r.Bag.HasErrors()
}

// Compile loads path and compiles it to a Bash script.
// The returned error covers I/O only; language errors land in Result.Bag.
func Compile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return CompileFile(ctx, fs, id, opts), nil
}

// CompileSource compiles in-memory source registered under name.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) *Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return CompileFile(ctx, fs, id, opts)
}

// CompileFile compiles a file already present in fs. Each call owns its
// Memory, so calls for different files may run concurrently as long as fs
// is not modified meanwhile.
func CompileFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *Result {
	file := fs.Get(id)
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "compile", trace.ParentID(ctx)).
		With("file", file.Path)

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	res := &Result{
		Path:    file.Path,
		FileSet: fs,
		FileID:  id,
		Bag:     bag,
		Timer:   observ.NewTimer(tracer, span.ID()),
	}
	ph := phases{res: res, observer: opts.PhaseObserver}

	idx := ph.begin(PhaseLex)
	res.Tokens = lexer.New(file, lexer.Options{Reporter: reporter}).All()
	ph.end(idx, PhaseLex, fmt.Sprintf("%d tokens", len(res.Tokens)))

	idx = ph.begin(PhaseParse)
	res.Meta = parser.New(id, res.Tokens, reporter, tracer)
	res.Meta.SpanID = res.Timer.SpanID(idx)
	res.Program = &syntax.Program{StopAtFirstError: opts.StopAtFirstError}
	// failures are already in the bag; the error only signals the early stop
	_ = res.Program.Parse(res.Meta)
	ph.end(idx, PhaseParse, fmt.Sprintf("%d statements", len(res.Program.Statements())))

	if !bag.HasErrors() {
		idx = ph.begin(PhaseTranslate)
		body := res.Program.Translate(translate.NewMeta(res.Meta.Mem.FunctionMap()))
		res.Script = translate.Script(version.Version, body)
		ph.end(idx, PhaseTranslate, fmt.Sprintf("%d bytes", len(res.Script)))
	}

	bag.Sort()
	if opts.EnableTimings {
		report := res.Timer.Report()
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "file",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	span.End(fmt.Sprintf("%d diagnostics", bag.Len()))
	return res
}

type phases struct {
	res      *Result
	observer PhaseObserver
}

func (p phases) begin(name string) int {
	if p.observer != nil {
		p.observer(PhaseEvent{File: p.res.Path, Name: name, Status: PhaseStart})
	}
	return p.res.Timer.Begin(name)
}

func (p phases) end(idx int, name, note string) {
	elapsed := p.res.Timer.End(idx, note)
	if p.observer != nil {
		p.observer(PhaseEvent{
			File:    p.res.Path,
			Name:    name,
			Status:  PhaseEnd,
			Elapsed: elapsed,
			Failed:  p.res.Bag.HasErrors(),
		})
	}
}
