// Package project loads the reactive.toml manifest that describes one
// compiled unit: where its sources live, where synthesized units go, and
// which other units it references.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the root search walks up for.
const ManifestName = "reactive.toml"

const noManifestMessage = "no reactive.toml found\nplease specify the project directory explicitly, e.g.:\n  reactivegen generate path/to/project"

// Manifest is a located and parsed reactive.toml.
type Manifest struct {
	Path   string // absolute path to reactive.toml
	Root   string // directory containing it
	Config Config
}

type Config struct {
	Package    PackageConfig     `toml:"package"`
	Paths      PathsConfig       `toml:"paths"`
	Options    map[string]string `toml:"options"`
	References ReferencesConfig  `toml:"references"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type PathsConfig struct {
	Source string `toml:"source"`
	Output string `toml:"output"`
}

// ReferencesConfig names external units this unit compiles against:
// exported .rxu manifests, and source roots for solution-wide fixes.
type ReferencesConfig struct {
	Units   []string `toml:"units"`
	Sources []string `toml:"sources"`
}

// ErrNoManifest is returned when the walk up from the start directory
// never finds a reactive.toml.
var ErrNoManifest = errors.New(noManifestMessage)

// Find walks up from startDir to locate reactive.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the manifest governing startDir.
func Load(startDir string) (*Manifest, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	return LoadFile(path)
}

// LoadFile parses one manifest file and applies defaults.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if cfg.Paths.Source == "" {
		cfg.Paths.Source = "."
	}
	if cfg.Paths.Output == "" {
		cfg.Paths.Output = "generated"
	}
	if cfg.Options == nil {
		cfg.Options = map[string]string{}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		Path:   abs,
		Root:   filepath.Dir(abs),
		Config: cfg,
	}, nil
}

// SourceDir returns the absolute source root.
func (m *Manifest) SourceDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Paths.Source))
}

// OutputDir returns the absolute output root for synthesized units.
func (m *Manifest) OutputDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Paths.Output))
}

// ReferencedUnits returns absolute paths of referenced .rxu manifests.
// Relative entries resolve against the manifest root.
func (m *Manifest) ReferencedUnits() []string {
	out := make([]string, 0, len(m.Config.References.Units))
	for _, u := range m.Config.References.Units {
		out = append(out, m.resolve(u))
	}
	return out
}

// ReferencedSources returns absolute paths of referenced source roots.
func (m *Manifest) ReferencedSources() []string {
	out := make([]string, 0, len(m.Config.References.Sources))
	for _, s := range m.Config.References.Sources {
		out = append(out, m.resolve(s))
	}
	return out
}

func (m *Manifest) resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}
