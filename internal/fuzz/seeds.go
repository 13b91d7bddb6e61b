package fuzztests

import (
	"testing"

	runtimeembed "reactivegen/runtime"
)

const maxFuzzInput = 1 << 16 // 64 KiB

var languageSeeds = []string{
	"",
	"namespace app\n",
	"namespace app::models\n\ntype Person {}\n",
	"@reactive\npub partial type Person {\n    pub prop Name: string? { get; set; }\n}\n",
	"@ignore_reactive\ntype Plain { field _x: int; }\n",
	"@observable_as_property\npub partial type Vm {\n    pub prop Full: string { get { return _a; } }\n}\n",
	"pub partial type Outer<T: Base + IThing> {\n    priv partial type Inner {\n        prop X: T { get; priv set; }\n    }\n}\n",
	"type T {\n    fn f(a: int, b: string?) -> bool { return a != 0; }\n    event Changed: Handler;\n}\n",
	"type Broken {\n    prop Name string { get ",
	"@\nnamespace ::\ntype { prop : { } }",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
	f.Add(clampSeed(runtimeembed.Prelude()))
}

func clampSeed(src []byte) []byte {
	if len(src) > maxFuzzInput {
		src = src[:maxFuzzInput]
	}
	return append([]byte(nil), src...)
}
