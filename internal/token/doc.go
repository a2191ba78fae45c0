// Package token defines lexical token kinds and trivia for the Ember compiler.
// Invariants:
//   - Token.Span matches the source bytes the token was scanned from.
//   - Token.Text is the source text, except identifiers, which are NFC-normalized.
//   - Type names (Num, Text, Bool, Null) are keywords; the parser maps them to types.
//   - Comments and whitespace never appear in the token stream; they are kept as
//     leading Trivia of the following token.
package token
