package fuzztests

import (
	"testing"

	"reactivegen/internal/diag"
	"reactivegen/internal/parser"
	"reactivegen/internal/source"
	"reactivegen/internal/testkit"
)

func FuzzParserBuildsFile(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.rx", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(128)
		parsed := parser.ParseFile(file, diag.BagReporter{Bag: bag})
		if parsed == nil {
			t.Fatal("parser must always return a file")
		}
		if err := testkit.CheckSpanInvariants(parsed, file); err != nil {
			t.Fatalf("span invariants violated: %v", err)
		}
	})
}
