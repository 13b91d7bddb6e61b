package ast

import "reactivegen/internal/source"

// File is the parse result of one source file.
type File struct {
	FileID    source.FileID
	Namespace []string // :: segments, empty when the file has no namespace
	NsSpan    source.Span
	Types     []*TypeDecl
}

// NamespacePath joins the namespace segments with ::.
func (f *File) NamespacePath() string {
	if len(f.Namespace) == 0 {
		return ""
	}
	out := f.Namespace[0]
	for _, seg := range f.Namespace[1:] {
		out += "::" + seg
	}
	return out
}
