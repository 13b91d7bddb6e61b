package ast

import (
	"strings"

	"reactivegen/internal/source"
)

// TypeRef is a possibly-qualified, possibly-generic, possibly-nullable type
// reference such as `collections::List<string?>?`.
type TypeRef struct {
	Parts    []string // qualification segments, joined by ::
	Args     []TypeRef
	Nullable bool
	Span     source.Span
}

// Name returns the unqualified last segment.
func (r TypeRef) Name() string {
	if len(r.Parts) == 0 {
		return ""
	}
	return r.Parts[len(r.Parts)-1]
}

// Qualified returns the ::-joined segments without generic arguments.
func (r TypeRef) Qualified() string {
	return strings.Join(r.Parts, "::")
}

// String renders the reference exactly as the dialect spells it.
func (r TypeRef) String() string {
	var sb strings.Builder
	sb.WriteString(r.Qualified())
	if len(r.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range r.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte('>')
	}
	if r.Nullable {
		sb.WriteByte('?')
	}
	return sb.String()
}

// TypeParam is one generic parameter with optional constraint bounds,
// e.g. `T: IComparable<T> + IClonable`.
type TypeParam struct {
	Name    string
	Bounds  []TypeRef
	Span    source.Span
}

// String renders the parameter with its bounds.
func (p TypeParam) String() string {
	if len(p.Bounds) == 0 {
		return p.Name
	}
	var sb strings.Builder
	sb.WriteString(p.Name)
	sb.WriteString(": ")
	for i, b := range p.Bounds {
		if i > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(b.String())
	}
	return sb.String()
}

// FormatTypeParams renders a full `<...>` clause, empty string when none.
func FormatTypeParams(params []TypeParam) string {
	if len(params) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('<')
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte('>')
	return sb.String()
}
