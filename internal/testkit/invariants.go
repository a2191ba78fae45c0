// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ember/internal/source"
	"ember/internal/token"
)

// CheckTokenSpans runs the span invariants of a lexed file:
// 1) every span points at sf and lies within its content
// 2) spans are non-decreasing and do not overlap
// 3) only the last token is EOF, and it sits at the end of the content
func CheckTokenSpans(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("token %d span %v is outside content of %d bytes", i, sp, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d span %v overlaps previous end %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		last := i == len(tokens)-1
		if (tok.Kind == token.EOF) != last {
			return fmt.Errorf("token %d: EOF must be the last token only", i)
		}
		if last && sp.Start != lenContent {
			return fmt.Errorf("EOF at %d, want %d", sp.Start, lenContent)
		}
	}
	return nil
}
