package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ember/internal/source"
	"ember/internal/token"
)

// TokenOutput is one token of `ember tokenize --format json`.
type TokenOutput struct {
	Kind    string         `json:"kind"`
	Class   string         `json:"class"`
	Text    string         `json:"text,omitempty"`
	Start   source.LineCol `json:"start"`
	End     source.LineCol `json:"end"`
	Leading []string       `json:"leading,omitempty"`
}

// tokenClass groups kinds the way an editor would color them.
func tokenClass(tok token.Token) string {
	switch {
	case tok.Kind == token.EOF:
		return "eof"
	case tok.Kind == token.Invalid:
		return "invalid"
	case tok.IsTypeName():
		return "type"
	case tok.IsLiteral():
		return "literal"
	case tok.IsKeyword():
		return "keyword"
	case tok.IsIdent():
		return "ident"
	default:
		return "punct"
	}
}

func leadingKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	out := make([]string, len(tok.Leading))
	for i, tr := range tok.Leading {
		out[i] = tr.Kind.String()
	}
	return out
}

// tokensUntilEOF drops anything after the first EOF.
func tokensUntilEOF(tokens []token.Token) []token.Token {
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			return tokens[:i+1]
		}
	}
	return tokens
}

// FormatTokensPretty prints one token per line:
//
//	  3: keyword  fun            at 1:1-1:4
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokensUntilEOF(tokens) {
		start, end := fs.Resolve(tok.Span)
		line := fmt.Sprintf("%3d: %-8s %-14s at %s-%s", i+1, tokenClass(tok), tok.Kind, start, end)
		if tok.Text != "" && tok.Text != tok.Kind.String() {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		if leading := leadingKinds(tok); leading != nil {
			line += " (leading: " + strings.Join(leading, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	toks := tokensUntilEOF(tokens)
	output := make([]TokenOutput, 0, len(toks))
	for _, tok := range toks {
		start, end := fs.Resolve(tok.Span)
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Class:   tokenClass(tok),
			Text:    tok.Text,
			Start:   start,
			End:     end,
			Leading: leadingKinds(tok),
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
