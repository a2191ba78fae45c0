package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadEscape          Code = 1004
	LexForeignOperator    Code = 1005

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectExpression   Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynUnclosedBrace      Code = 2005
	SynUnclosedParen      Code = 2006
	SynFunNotAllowed      Code = 2007
	SynReturnOutsideFun   Code = 2008
	SynPubWithoutFunction Code = 2009

	// Семантические
	SemaInfo                Code = 3000
	SemaError               Code = 3001
	SemaTypeMismatch        Code = 3002
	SemaUnresolvedVariable  Code = 3003
	SemaUnresolvedFunction  Code = 3004
	SemaFunctionRedeclared  Code = 3005
	SemaVariableRedeclared  Code = 3006
	SemaArgumentCount       Code = 3007
	SemaRecursiveInstance   Code = 3008
	SemaInstantiationFailed Code = 3009
	SemaUnreachableCode     Code = 3010

	// Ошибки I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Ошибки проекта
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexUnknownChar:          "Unknown character",
	LexUnterminatedString:   "Unterminated string",
	LexBadNumber:            "Bad number",
	LexBadEscape:            "Bad escape sequence",
	LexForeignOperator:      "Symbolic operator spelled as a keyword in Ember",
	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynExpectExpression:     "Expected expression",
	SynExpectIdentifier:     "Expected identifier",
	SynExpectType:           "Expected type",
	SynUnclosedBrace:        "Unclosed brace",
	SynUnclosedParen:        "Unclosed parenthesis",
	SynFunNotAllowed:        "Function declaration not allowed here",
	SynReturnOutsideFun:     "Return outside of a function",
	SynPubWithoutFunction:   "'pub' must precede a function declaration",
	SemaInfo:                "Semantic information",
	SemaError:               "Semantic error",
	SemaTypeMismatch:        "Type mismatch",
	SemaUnresolvedVariable:  "Unresolved variable",
	SemaUnresolvedFunction:  "Unresolved function",
	SemaFunctionRedeclared:  "Function redeclared in the same scope",
	SemaVariableRedeclared:  "Variable redeclared in the same scope",
	SemaArgumentCount:       "Wrong number of arguments",
	SemaRecursiveInstance:   "Recursive instantiation",
	SemaInstantiationFailed: "Function instantiation failed",
	SemaUnreachableCode:     "Unreachable code",
	IOLoadFileError:         "I/O load file error",
	IOWriteFileError:        "I/O write file error",
	ProjInfo:                "Project information",
	ProjManifestInvalid:     "Invalid project manifest",
	ObsInfo:                 "Observability information",
	ObsTimings:              "Pipeline timings",
}

// ID returns the stable textual identifier, e.g. SEM3002.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
