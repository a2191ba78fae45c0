package token

import "ember/internal/source"

// TriviaKind classifies non-significant source text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Trivia is whitespace or a comment attached to the following token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// HasNewline reports whether any trivia in the list is a line break.
func HasNewline(trivia []Trivia) bool {
	for _, tr := range trivia {
		if tr.Kind == TriviaNewline || tr.Kind == TriviaLineComment {
			return true
		}
	}
	return false
}
