package parser

import (
	"ember/internal/diag"
	"ember/internal/mono"
	"ember/internal/source"
	"ember/internal/symbols"
	"ember/internal/token"
	"ember/internal/trace"
	"ember/internal/types"
)

// Context describes where in the program the parser currently is.
type Context struct {
	InFunction bool
	FunName    string
	FunID      mono.FunctionID
	Returns    types.Type // declared return type, Generic when inferred
	Inferred   types.Type // type of the first return when Returns is Generic
	ReturnSeen bool
}

// Metadata — состояние разбора одного потока токенов.
// Тело обобщённой функции разбирается отдельным Metadata со своим Memory,
// построенным из снимка объявления.
type Metadata struct {
	File     source.FileID
	Tokens   []token.Token // всегда заканчивается EOF
	Index    int
	Mem      *symbols.Memory
	Reporter diag.Reporter
	Tracer   trace.Tracer
	Ctx      Context
	SpanID   uint64 // parent span for trace events

	// instantiating is shared by a metadata and all nested ones.
	instantiating map[mono.FunctionID]bool
	lastSpan      source.Span
}

// New creates metadata over tokens with a fresh Memory holding one open scope.
func New(file source.FileID, tokens []token.Token, reporter diag.Reporter, tracer trace.Tracer) *Metadata {
	mem := symbols.NewMemory()
	mem.PushScope()
	return NewWithMemory(file, tokens, mem, reporter, tracer)
}

// NewWithMemory creates metadata over tokens using an existing Memory.
func NewWithMemory(file source.FileID, tokens []token.Token, mem *symbols.Memory, reporter diag.Reporter, tracer trace.Tracer) *Metadata {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Metadata{
		File:          file,
		Tokens:        withEOF(tokens),
		Mem:           mem,
		Reporter:      reporter,
		Tracer:        tracer,
		instantiating: make(map[mono.FunctionID]bool),
	}
}

// Nested creates metadata for re-parsing a stored body. It shares reporting,
// tracing and the recursion guard with meta but owns mem and tokens.
func (meta *Metadata) Nested(mem *symbols.Memory, tokens []token.Token, ctx Context) *Metadata {
	return &Metadata{
		File:          meta.File,
		Tokens:        withEOF(tokens),
		Mem:           mem,
		Reporter:      meta.Reporter,
		Tracer:        meta.Tracer,
		Ctx:           ctx,
		SpanID:        meta.SpanID,
		instantiating: meta.instantiating,
	}
}

// BeginInstantiation marks id as being instantiated. It reports false if id
// is already in flight further up the stack.
func (meta *Metadata) BeginInstantiation(id mono.FunctionID) bool {
	if meta.instantiating[id] {
		return false
	}
	meta.instantiating[id] = true
	return true
}

// EndInstantiation clears the mark set by BeginInstantiation.
func (meta *Metadata) EndInstantiation(id mono.FunctionID) {
	delete(meta.instantiating, id)
}

// Warn reports a non-fatal diagnostic.
func (meta *Metadata) Warn(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportWarning(meta.Reporter, code, sp, msg)
}

func withEOF(tokens []token.Token) []token.Token {
	if n := len(tokens); n > 0 && tokens[n-1].Kind == token.EOF {
		return tokens
	}
	var sp source.Span
	if n := len(tokens); n > 0 {
		last := tokens[n-1].Span
		sp = source.Span{File: last.File, Start: last.End, End: last.End}
	}
	out := make([]token.Token, len(tokens), len(tokens)+1)
	copy(out, tokens)
	return append(out, token.Token{Kind: token.EOF, Span: sp})
}
