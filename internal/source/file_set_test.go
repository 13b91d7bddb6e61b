package source

import (
	"testing"
)

func TestAddVirtualAssignsSequentialIDs(t *testing.T) {
	fs := NewFileSet()
	a := fs.AddVirtual("a.rx", []byte("namespace a"))
	b := fs.AddVirtual("b.rx", []byte("namespace b"))

	if a == b {
		t.Fatalf("expected distinct file IDs, got %d twice", a)
	}
	if fs.Len() != 2 {
		t.Fatalf("expected 2 files, got %d", fs.Len())
	}
	if fs.Get(a).Path != "a.rx" {
		t.Fatalf("unexpected path %q", fs.Get(a).Path)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.rx", []byte("one\ntwo\nthree"))

	start, end := fs.Resolve(Span{File: id, Start: 4, End: 7})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("expected 2:1, got %d:%d", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 4 {
		t.Fatalf("expected 2:4, got %d:%d", end.Line, end.Col)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.rx", []byte("alpha\nbeta\ngamma"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{1, "alpha"},
		{2, "beta"},
		{3, "gamma"},
		{4, ""},
		{0, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Fatalf("line %d: expected %q, got %q", tc.line, tc.want, got)
		}
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed {
		t.Fatal("expected change flag")
	}
	if string(out) != "a\nb\rc" {
		t.Fatalf("unexpected content %q", out)
	}

	out, changed = normalizeCRLF([]byte("plain"))
	if changed {
		t.Fatal("did not expect change flag")
	}
	if string(out) != "plain" {
		t.Fatalf("unexpected content %q", out)
	}
}

func TestRemoveBOM(t *testing.T) {
	out, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !had || string(out) != "x" {
		t.Fatalf("expected BOM stripped, got %q (had=%v)", out, had)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	c := a.Cover(b)
	if c.Start != 5 || c.End != 20 {
		t.Fatalf("unexpected cover %v", c)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("cover across files should be a no-op, got %v", got)
	}
}
