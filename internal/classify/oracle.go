// Package classify decides which types and properties participate in
// change notification, and whether a type already carries the
// notification capability from its own construction.
package classify

import (
	"fmt"
	"sync"

	"reactivegen/internal/ast"
	"reactivegen/internal/diag"
	"reactivegen/internal/symbols"
)

// Well-known capability names, declared by the embedded prelude.
const (
	CapabilityInterface = "INotifyPropertyChanged"
	CapabilityBase      = "ReactiveObject"
	RaiseMethod         = "RaiseAndSetIfChanged"
)

// Verdict is the per-property classification result.
type Verdict uint8

const (
	// Plain properties are left alone.
	Plain Verdict = iota
	// Notifying properties get a synthesized counterpart.
	Notifying
	// Invalid properties carry conflicting markers and are skipped.
	Invalid
)

// Oracle answers classification queries for one pass. Verdicts are
// memoized; the caches tolerate concurrent readers because synthesis
// fans out per type group.
type Oracle struct {
	pass     *symbols.Pass
	reporter diag.Reporter

	mu     sync.RWMutex
	cap    map[*symbols.TypeSymbol]bool
	notify map[*symbols.TypeSymbol]bool

	conflictOnce map[*ast.PropDecl]struct{}
}

// NewOracle builds the pass-scoped oracle.
func NewOracle(pass *symbols.Pass, reporter diag.Reporter) *Oracle {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Oracle{
		pass:         pass,
		reporter:     reporter,
		cap:          make(map[*symbols.TypeSymbol]bool),
		notify:       make(map[*symbols.TypeSymbol]bool),
		conflictOnce: make(map[*ast.PropDecl]struct{}),
	}
}

// HasCapability reports whether the type or any ancestor already provides
// change notification by construction: it implements the well-known
// interface, descends from the well-known base, or an importing manifest
// says so.
func (o *Oracle) HasCapability(t *symbols.TypeSymbol) bool {
	if t == nil {
		return false
	}
	o.mu.RLock()
	v, ok := o.cap[t]
	o.mu.RUnlock()
	if ok {
		return v
	}

	v = false
	seen := make(map[*symbols.TypeSymbol]struct{})
	for cur := t; cur != nil; cur = cur.Base {
		if _, cycle := seen[cur]; cycle {
			break
		}
		seen[cur] = struct{}{}
		if selfCapability(cur) {
			v = true
			break
		}
	}

	o.mu.Lock()
	o.cap[t] = v
	o.mu.Unlock()
	return v
}

// selfCapability checks one type in isolation, without the ancestor walk.
func selfCapability(t *symbols.TypeSymbol) bool {
	if t.External && t.ExternalHasCapability {
		return true
	}
	// Unresolved base names stay in the interface list, so a reference to
	// the well-known base outside the pass still counts.
	return t.DeclaresInterface(CapabilityInterface) ||
		t.DeclaresInterface(CapabilityBase) ||
		t.Name == CapabilityBase && t.Namespace == symbols.BuiltinNamespace
}

// ClassifyType reports whether the type is notifying. Capability by
// construction wins over any suppress marker; otherwise markers are
// checked on the type and then rootward, nearest level first.
func (o *Oracle) ClassifyType(t *symbols.TypeSymbol) bool {
	if t == nil {
		return false
	}
	o.mu.RLock()
	v, ok := o.notify[t]
	o.mu.RUnlock()
	if ok {
		return v
	}

	v = o.classifyTypeSlow(t)

	o.mu.Lock()
	o.notify[t] = v
	o.mu.Unlock()
	return v
}

func (o *Oracle) classifyTypeSlow(t *symbols.TypeSymbol) bool {
	if o.HasCapability(t) {
		return true
	}
	// A suppress on a nearer level shadows an opt-in further up.
	seen := make(map[*symbols.TypeSymbol]struct{})
	for cur := t; cur != nil; cur = cur.Base {
		if _, cycle := seen[cur]; cycle {
			return false
		}
		seen[cur] = struct{}{}
		if cur.HasAttr(ast.AttrIgnoreReactive) {
			return false
		}
		if cur.HasAttr(ast.AttrReactive) {
			return true
		}
	}
	return false
}

// ClassifyProperty resolves one property against its owner's verdict.
// Conflicting markers make the property invalid; the diagnostic is
// reported once per declaration.
func (o *Oracle) ClassifyProperty(p *symbols.PropSymbol, typeNotifying bool) Verdict {
	suppress := p.Decl.Attrs.Has(ast.AttrIgnoreReactive)
	optIn := p.Decl.Attrs.Has(ast.AttrReactive)

	if suppress && optIn {
		o.reportConflictOnce(p)
		return Invalid
	}
	if suppress {
		return Plain
	}
	if optIn {
		return Notifying
	}
	if typeNotifying {
		return Notifying
	}
	return Plain
}

func (o *Oracle) reportConflictOnce(p *symbols.PropSymbol) {
	o.mu.Lock()
	if _, done := o.conflictOnce[p.Decl]; done {
		o.mu.Unlock()
		return
	}
	o.conflictOnce[p.Decl] = struct{}{}
	o.mu.Unlock()

	o.reporter.Report(diag.NewError(diag.ClsMarkerConflict, p.Decl.NameSpan,
		fmt.Sprintf("property %q carries both @%s and @%s; it is skipped",
			p.Name, ast.AttrReactive, ast.AttrIgnoreReactive)))
}
