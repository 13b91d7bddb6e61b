package ast

import "strings"

// Modifiers is the set of structural modifiers on a declaration.
type Modifiers uint16

const (
	ModPartial Modifiers = 1 << iota
	ModStatic
	ModNew
	ModAbstract
	ModVirtual
	ModOverride
	ModSealed
	ModRequired
)

// modifierOrder is the dialect's required syntactic order. Synthesized
// declarations must echo modifiers in exactly this order or they will not
// parse back.
var modifierOrder = []struct {
	mod  Modifiers
	name string
}{
	{ModStatic, "static"},
	{ModNew, "new"},
	{ModAbstract, "abstract"},
	{ModVirtual, "virtual"},
	{ModOverride, "override"},
	{ModSealed, "sealed"},
	{ModRequired, "required"},
}

// Has reports whether all bits of m2 are present.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// Structural returns the modifier set without the partial bit. Partial is a
// declaration-splitting device, not a member shape, and is never echoed on
// synthesized members verbatim.
func (m Modifiers) Structural() Modifiers {
	return m &^ ModPartial
}

// String renders the structural modifiers in canonical order, space
// separated, without a trailing space. Partial is excluded.
func (m Modifiers) String() string {
	var parts []string
	for _, entry := range modifierOrder {
		if m.Has(entry.mod) {
			parts = append(parts, entry.name)
		}
	}
	return strings.Join(parts, " ")
}
