package source

import "fmt"

// FileID uniquely identifies a source file within a FileSet.
type FileID uint32

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Empty reports whether the span covers no bytes. Empty spans mark
// insertion points, e.g. a missing ')' before the next token.
func (s Span) Empty() bool { return s.Start == s.End }

func (s Span) Len() uint32 { return s.End - s.Start }

// StartPoint returns the empty span at s.Start.
func (s Span) StartPoint() Span { return Span{File: s.File, Start: s.Start, End: s.Start} }

// EndPoint returns the empty span at s.End.
func (s Span) EndPoint() Span { return Span{File: s.File, Start: s.End, End: s.End} }

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	s.Start = min(s.Start, other.Start)
	s.End = max(s.End, other.End)
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Col) }
