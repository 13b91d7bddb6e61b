package project

import "strings"

// Option keys recognized in the [options] table. The prefixed key is the
// current spelling; the bare key is kept for older manifests and loses
// when both are present.
const (
	OptUseBackingFields       = "build_property.UseBackingFields"
	OptUseBackingFieldsLegacy = "UseBackingFields"
)

// Options answers toggle lookups over the raw [options] table.
type Options struct {
	raw map[string]string
}

// NewOptions wraps a raw key-value table. A nil map is a valid empty set.
func NewOptions(raw map[string]string) Options {
	return Options{raw: raw}
}

// Options returns the manifest's toggle view.
func (m *Manifest) Options() Options {
	return NewOptions(m.Config.Options)
}

// UseBackingFields resolves the backing-field storage toggle. The
// prefixed key wins over the legacy one; anything that does not parse as
// true, and an absent key, resolve to false.
func (o Options) UseBackingFields() bool {
	if v, ok := o.raw[OptUseBackingFields]; ok {
		return parseBool(v)
	}
	if v, ok := o.raw[OptUseBackingFieldsLegacy]; ok {
		return parseBool(v)
	}
	return false
}

// parseBool is deliberately forgiving: malformed values mean false, never
// an error, so a broken manifest degrades to the default strategy.
func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
