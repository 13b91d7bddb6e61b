// Package testkit holds invariant checks shared by parser tests and the
// fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"reactivegen/internal/ast"
	"reactivegen/internal/source"
)

// CheckSpanInvariants validates span sanity on a parsed file:
//  1. every type declaration span is non-empty and within content bounds
//  2. the name span sits inside the declaration span
//  3. members and nested declarations are contained in their owner's span
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	for _, decl := range f.Types {
		if err := checkType(decl, sf.ID, lenContent); err != nil {
			return err
		}
	}
	return nil
}

func checkType(d *ast.TypeDecl, file source.FileID, lenContent uint32) error {
	if err := checkSpan(d.Span, file, lenContent); err != nil {
		return fmt.Errorf("type %s: %w", d.Name, err)
	}
	if !d.NameSpan.Empty() && !within(d.NameSpan, d.Span) {
		return fmt.Errorf("type %s: name span %v outside decl span %v", d.Name, d.NameSpan, d.Span)
	}
	for _, p := range d.Props {
		if err := checkMember(p.Span, d, file, lenContent); err != nil {
			return fmt.Errorf("prop %s.%s: %w", d.Name, p.Name, err)
		}
	}
	for _, fd := range d.Fields {
		if err := checkMember(fd.Span, d, file, lenContent); err != nil {
			return fmt.Errorf("field %s.%s: %w", d.Name, fd.Name, err)
		}
	}
	for _, fn := range d.Fns {
		if err := checkMember(fn.Span, d, file, lenContent); err != nil {
			return fmt.Errorf("fn %s.%s: %w", d.Name, fn.Name, err)
		}
	}
	for _, ev := range d.Events {
		if err := checkMember(ev.Span, d, file, lenContent); err != nil {
			return fmt.Errorf("event %s.%s: %w", d.Name, ev.Name, err)
		}
	}
	for _, nested := range d.Nested {
		if !within(nested.Span, d.Span) {
			return fmt.Errorf("nested %s span %v outside %s span %v", nested.Name, nested.Span, d.Name, d.Span)
		}
		if err := checkType(nested, file, lenContent); err != nil {
			return err
		}
	}
	return nil
}

func checkMember(sp source.Span, owner *ast.TypeDecl, file source.FileID, lenContent uint32) error {
	if err := checkSpan(sp, file, lenContent); err != nil {
		return err
	}
	if !within(sp, owner.Span) {
		return fmt.Errorf("member span %v outside owner span %v", sp, owner.Span)
	}
	return nil
}

func checkSpan(sp source.Span, file source.FileID, lenContent uint32) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("empty span %v", sp)
	}
	if sp.File != file {
		return fmt.Errorf("span file mismatch: got=%d want=%d", sp.File, file)
	}
	if sp.End > lenContent {
		return fmt.Errorf("span end beyond content: %d > %d", sp.End, lenContent)
	}
	return nil
}

func within(inner, outer source.Span) bool {
	return inner.Start >= outer.Start && inner.End <= outer.End
}
