package fuzztests

import (
	"testing"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.em", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		tokens := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}).All()
		if err := testkit.CheckTokenSpans(tokens, file); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}
