package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"ember/internal/source"
)

// Cursor is a byte offset into a file's normalized content.
type Cursor struct {
	File  *source.File
	Off   uint32
	limit uint32
}

func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, limit: limit}
}

func (c *Cursor) EOF() bool { return c.Off >= c.limit }

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 returns the current and the next byte; ok is false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// PeekRune decodes the rune at the cursor. size is 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size uint32) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.File.Content[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, n := utf8.DecodeRune(c.File.Content[c.Off:])
	// n is at most utf8.UTFMax
	return r, uint32(n) // #nosec G115
}

// BumpRune consumes the whole rune at the cursor so spans never split UTF-8.
func (c *Cursor) BumpRune() {
	_, n := c.PeekRune()
	c.Off += n
}

// Mark is a saved offset for building spans and backtracking.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom returns the span from m to the cursor.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
