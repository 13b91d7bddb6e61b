package symbols

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"reactivegen/internal/ast"
)

// Manifest schema version. Increment when the on-disk layout changes.
const manifestSchema = 1

// ExternalType is one exported type entry in a unit manifest. Only the
// facts classification needs cross a unit boundary.
type ExternalType struct {
	QName         string   `msgpack:"qname"`
	Base          string   `msgpack:"base,omitempty"`
	Interfaces    []string `msgpack:"ifaces,omitempty"`
	Attrs         []string `msgpack:"attrs,omitempty"`
	IsInterface   bool     `msgpack:"iface,omitempty"`
	HasCapability bool     `msgpack:"cap,omitempty"`
}

// Manifest is the serialized symbol surface of one compiled unit.
type Manifest struct {
	Schema  int            `msgpack:"schema"`
	Package string         `msgpack:"package"`
	Types   []ExternalType `msgpack:"types"`
}

// Export builds a manifest for the pass. hasCapability is the finished
// classifier verdict per qualified name; it is baked in so importing units
// never need to re-walk foreign ancestor chains.
func (p *Pass) Export(pkg string, hasCapability func(t *TypeSymbol) bool) *Manifest {
	m := &Manifest{Schema: manifestSchema, Package: pkg}
	for _, t := range p.ordered {
		// The prelude ships with every pass; exporting it would only
		// collide with the importer's own copy.
		if t.External || t.Namespace == BuiltinNamespace {
			continue
		}
		entry := ExternalType{
			QName:         t.QName,
			Interfaces:    append([]string(nil), t.Interfaces...),
			Attrs:         append([]string(nil), t.Attrs...),
			IsInterface:   t.Kind == ast.KindInterface,
			HasCapability: hasCapability(t),
		}
		if t.Base != nil {
			entry.Base = t.Base.QName
		}
		m.Types = append(m.Types, entry)
	}
	sort.Slice(m.Types, func(i, j int) bool { return m.Types[i].QName < m.Types[j].QName })
	return m
}

// WriteManifest serializes the manifest atomically: encode into a temp file
// next to the target, then rename over it.
func WriteManifest(path string, m *Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "rxu-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(m); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// ReadManifest loads and validates a unit manifest.
func ReadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m Manifest
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if m.Schema != manifestSchema {
		return nil, fmt.Errorf("%s: manifest schema %d, want %d", path, m.Schema, manifestSchema)
	}
	return &m, nil
}
