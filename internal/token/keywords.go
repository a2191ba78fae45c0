package token

var keywords = map[string]Kind{
	"let":    KwLet,
	"fun":    KwFun,
	"pub":    KwPub,
	"return": KwReturn,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"echo":   KwEcho,
	"and":    KwAnd,
	"or":     KwOr,
	"not":    KwNot,
	"true":   KwTrue,
	"false":  KwFalse,
	"null":   KwNull,
	"Num":    KwTypeNum,
	"Text":   KwTypeText,
	"Bool":   KwTypeBool,
	"Null":   KwTypeNull,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
