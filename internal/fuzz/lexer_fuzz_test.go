package fuzztests

import (
	"testing"

	"reactivegen/internal/diag"
	"reactivegen/internal/lexer"
	"reactivegen/internal/source"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.rx", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		tokens := lexer.Tokenize(file, diag.BagReporter{Bag: bag})
		if len(tokens) == 0 {
			t.Fatal("token stream must at least contain EOF")
		}
		last := tokens[len(tokens)-1]
		if !last.IsEOF() {
			t.Fatalf("token stream must end with EOF, got %v", last.Kind)
		}
	})
}
