package lexer

import "unicode"

// Identifiers start with a letter or '_' and continue with letters,
// digits, '_' or combining marks. Non-ASCII names are NFC-normalized in
// scanIdentOrKeyword, and Bash output mangles them in translate.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isWordByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }
