package symbols

// CountReferences counts identifier uses of name inside every captured
// body of the type: accessor bodies, fn bodies, and field initializers,
// across all parts. Declaration sites are not uses and are not counted.
func (t *TypeSymbol) CountReferences(name string) int {
	n := 0
	for _, p := range t.Props {
		if p.Decl.Get != nil && p.Decl.Get.Body != nil {
			n += p.Decl.Get.Body.CountReferences(name)
		}
		if p.Decl.Set != nil && p.Decl.Set.Body != nil {
			n += p.Decl.Set.Body.CountReferences(name)
		}
	}
	for _, fn := range t.Fns {
		if fn.Decl.Body != nil {
			n += fn.Decl.Body.CountReferences(name)
		}
		if fn.Decl.Params != nil {
			n += fn.Decl.Params.CountReferences(name)
		}
	}
	for _, f := range t.Fields {
		if f.Decl.Init != nil {
			n += f.Decl.Init.CountReferences(name)
		}
	}
	return n
}

// RefsConclusive reports whether reference counts can be trusted. Syntax
// errors may have dropped bodies on the floor, so a dirty parse makes
// every count a lower bound only.
func (p *Pass) RefsConclusive() bool {
	return p.parseClean
}
