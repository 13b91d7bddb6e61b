package synth

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"reactivegen/internal/ast"
	"reactivegen/internal/classify"
	"reactivegen/internal/symbols"
)

const header = "// Synthesized by reactivegen. DO NOT EDIT.\n"

// Emit renders one unit to its final byte content. Output is a pure
// function of the unit and options; unchanged input yields byte-identical
// output.
func Emit(u *Unit, opts Options) []byte {
	var w writer
	w.line(strings.TrimSuffix(header, "\n"))
	w.blank()
	if ns := u.Type.Namespace; ns != "" {
		w.line("namespace " + ns)
		w.blank()
	}

	chain := u.Decl.NestingChain()
	for i, level := range chain {
		w.line(openLine(level, i == len(chain)-1 && u.EmitInfra))
		w.indent++
	}

	switch u.Kind {
	case UnitNotify:
		emitNotify(&w, u, opts)
	case UnitComputed:
		emitComputed(&w, u)
	}

	for range chain {
		w.indent--
		w.line("}")
	}
	return []byte(w.String())
}

// openLine renders one re-opened container level. Only the innermost
// level, and only when the infrastructure lands here, declares the
// capability interface.
func openLine(decl *ast.TypeDecl, withCapability bool) string {
	var sb strings.Builder
	if decl.Access != ast.AccessUnspecified {
		sb.WriteString(decl.Access.String())
		sb.WriteByte(' ')
	}
	sb.WriteString("partial type ")
	sb.WriteString(decl.Name)
	sb.WriteString(ast.FormatTypeParams(decl.TypeParams))
	if withCapability {
		sb.WriteString(" : ")
		sb.WriteString(classify.CapabilityInterface)
	}
	sb.WriteString(" {")
	return sb.String()
}

func emitNotify(w *writer, u *Unit, opts Options) {
	if u.EmitInfra {
		emitInfra(w)
	}
	first := !u.EmitInfra
	for _, p := range u.Props {
		if !first {
			w.blank()
		}
		first = false
		emitProp(w, p, u.Delegate, opts)
	}
}

// emitInfra writes the per-type capability block: the event and the two
// raise helpers. The string overload defaults to the caller's member name
// so hand-written code can raise without spelling its own name.
func emitInfra(w *writer) {
	w.line("pub event PropertyChanged: PropertyChangedHandler;")
	w.blank()
	w.line("protected virtual fn OnPropertyChanged(propertyName: string? = caller_member) {")
	w.indent++
	w.line("OnPropertyChanged(PropertyChangedEventArgs(propertyName));")
	w.indent--
	w.line("}")
	w.blank()
	w.line("protected virtual fn OnPropertyChanged(args: PropertyChangedEventArgs) {")
	w.indent++
	w.line("PropertyChanged?.invoke(this, args);")
	w.indent--
	w.line("}")
}

func emitProp(w *writer, p *symbols.PropSymbol, delegate bool, opts Options) {
	storage := "field"
	if opts.UseBackingFields {
		storage = BackingFieldName(p.Name)
		w.line("priv field " + storage + ": " + p.Decl.Type.String() + ";")
		w.blank()
	}

	w.line(propHead(p.Decl))
	w.indent++

	w.line(accessorHead(p.Decl.Get, p.Decl.Access, "get"))
	w.indent++
	w.line("return " + storage + ";")
	w.indent--
	w.line("}")

	w.line(accessorHead(p.Decl.Set, p.Decl.Access, "set"))
	w.indent++
	if delegate {
		// Capability types already guard and raise inside the helper.
		w.line(classify.RaiseMethod + "(ref " + storage + ", value, \"" + p.Name + "\");")
	} else {
		w.line("if " + storage + " != value {")
		w.indent++
		w.line(storage + " = value;")
		w.line("OnPropertyChanged(\"" + p.Name + "\");")
		w.indent--
		w.line("}")
	}
	w.indent--
	w.line("}")

	w.indent--
	w.line("}")
}

// propHead echoes accessibility and structural modifiers in canonical
// order, then the partial counterpart's signature.
func propHead(d *ast.PropDecl) string {
	var sb strings.Builder
	if d.Access != ast.AccessUnspecified {
		sb.WriteString(d.Access.String())
		sb.WriteByte(' ')
	}
	sb.WriteString("partial ")
	if mods := d.Mods.Structural().String(); mods != "" {
		sb.WriteString(mods)
		sb.WriteByte(' ')
	}
	sb.WriteString("prop ")
	sb.WriteString(d.Name)
	sb.WriteString(": ")
	sb.WriteString(d.Type.String())
	sb.WriteString(" {")
	return sb.String()
}

// accessorHead echoes an accessor-level accessibility override, but only
// when it actually differs from the property's own accessibility. An
// accessor spelled with the property's accessibility is a no-op the
// synthesized counterpart must not repeat.
func accessorHead(a *ast.Accessor, propAccess ast.Accessibility, kw string) string {
	if a != nil && a.Access != ast.AccessUnspecified && a.Access != propAccess {
		return a.Access.String() + " " + kw + " {"
	}
	return kw + " {"
}

func emitComputed(w *writer, u *Unit) {
	for i, p := range u.Props {
		if i > 0 {
			w.blank()
		}
		holder := BackingFieldName(p.Name)
		w.line("priv field " + holder + ": ObservableValue<" + p.Decl.Type.String() + ">?;")
		w.blank()
		w.line(propHead(p.Decl))
		w.indent++
		w.line(accessorHead(p.Decl.Get, p.Decl.Access, "get"))
		w.indent++
		w.line("return " + holder + "?.Value;")
		w.indent--
		w.line("}")
		w.indent--
		w.line("}")
	}
}

// BackingFieldName derives the `_lowerCamel` storage name the analyzer
// also matches against.
func BackingFieldName(prop string) string {
	r, size := utf8.DecodeRuneInString(prop)
	if r == utf8.RuneError {
		return "_" + prop
	}
	return "_" + string(unicode.ToLower(r)) + prop[size:]
}

// writer accumulates indented lines.
type writer struct {
	sb     strings.Builder
	indent int
}

func (w *writer) line(s string) {
	for i := 0; i < w.indent; i++ {
		w.sb.WriteString("    ")
	}
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

func (w *writer) blank() {
	w.sb.WriteByte('\n')
}

func (w *writer) String() string {
	return w.sb.String()
}
