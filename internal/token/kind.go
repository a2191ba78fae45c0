package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	KwLet    // let
	KwFun    // fun
	KwPub    // pub
	KwReturn // return
	KwIf     // if
	KwElse   // else
	KwWhile  // while
	KwEcho   // echo
	KwAnd    // and
	KwOr     // or
	KwNot    // not
	KwTrue   // true
	KwFalse  // false
	KwNull   // null

	// type names
	KwTypeNum  // Num
	KwTypeText // Text
	KwTypeBool // Bool
	KwTypeNull // Null

	// NumberLit represents an integer or decimal literal.
	NumberLit
	// StringLit represents a double-quoted text literal.
	StringLit

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Assign    // =
	EqEq      // ==
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	Colon     // :
	Semicolon // ;
	Comma     // ,
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "end of file",
	Ident:      "identifier",
	KwLet:      "let",
	KwFun:      "fun",
	KwPub:      "pub",
	KwReturn:   "return",
	KwIf:       "if",
	KwElse:     "else",
	KwWhile:    "while",
	KwEcho:     "echo",
	KwAnd:      "and",
	KwOr:       "or",
	KwNot:      "not",
	KwTrue:     "true",
	KwFalse:    "false",
	KwNull:     "null",
	KwTypeNum:  "Num",
	KwTypeText: "Text",
	KwTypeBool: "Bool",
	KwTypeNull: "Null",
	NumberLit:  "number",
	StringLit:  "text",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Assign:     "=",
	EqEq:       "==",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	Colon:      ":",
	Semicolon:  ";",
	Comma:      ",",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
