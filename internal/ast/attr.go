package ast

import "reactivegen/internal/source"

// Built-in marker attribute names.
const (
	// AttrReactive opts a type or property into notification synthesis.
	AttrReactive = "reactive"
	// AttrIgnoreReactive withdraws notification synthesis.
	AttrIgnoreReactive = "ignore_reactive"
	// AttrObservableAsProperty marks a computed, pull-only property.
	AttrObservableAsProperty = "observable_as_property"
)

// Attr is a user attribute of the form `@name`.
type Attr struct {
	Name string
	Span source.Span
}

// AttrList is the ordered attribute set of one declaration.
type AttrList []Attr

// Has reports whether an attribute with the given name is present.
func (l AttrList) Has(name string) bool {
	for _, a := range l {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Find returns the first attribute with the given name.
func (l AttrList) Find(name string) (Attr, bool) {
	for _, a := range l {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}
