package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"reactivegen/internal/classify"
	"reactivegen/internal/project"
	"reactivegen/internal/symbols"
	"reactivegen/internal/synth"
)

// GeneratedUnit describes one written (or up-to-date) output file.
type GeneratedUnit struct {
	Name    string
	Path    string
	Size    int
	Changed bool
}

// GenerateResult aggregates the pipeline outcome of one generate run.
type GenerateResult struct {
	Load         *LoadResult
	Units        []GeneratedUnit
	ManifestPath string
	// Skipped is true when errors stopped the pipeline before emission.
	Skipped bool
}

// Generate runs the full pipeline for the unit governed by the manifest:
// parse, classify, plan, emit, and write. Output is deterministic;
// unchanged files are left untouched so downstream tooling sees no
// spurious modification times.
func Generate(ctx context.Context, m *project.Manifest, opts Options) (*GenerateResult, error) {
	load, err := LoadPass(ctx, m, opts)
	if err != nil {
		return nil, err
	}
	result := &GenerateResult{Load: load}
	if load.Bag.HasErrors() {
		result.Skipped = true
		return result, nil
	}

	rep := load.reporter()
	oracle := classify.NewOracle(load.Pass, rep)

	done := beginPhase(opts.Observer, "plan")
	units := synth.Plan(load.Pass, oracle, rep)
	done(fmt.Sprintf("%d units", len(units)))
	if load.Bag.HasErrors() {
		result.Skipped = true
		return result, nil
	}

	synthOpts := synth.Options{
		UseBackingFields: m.Options().UseBackingFields(),
	}

	done = beginPhase(opts.Observer, "emit")
	contents := make([][]byte, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), len(units)+1))
	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			contents[i] = synth.Emit(u, synthOpts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	done("")

	outDir := m.OutputDir()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	done = beginPhase(opts.Observer, "write")
	for i, u := range units {
		path := filepath.Join(outDir, u.Name)
		changed, err := writeIfChanged(path, contents[i])
		if err != nil {
			return nil, err
		}
		result.Units = append(result.Units, GeneratedUnit{
			Name:    u.Name,
			Path:    path,
			Size:    len(contents[i]),
			Changed: changed,
		})
		if opts.Observer != nil {
			opts.Observer(PhaseEvent{Name: "write", Status: PhaseStart, Detail: u.Name})
		}
	}

	// Export the post-synthesis verdict: a type that just received the
	// notification infrastructure must read as capable to importing units.
	manifest := load.Pass.Export(m.Config.Package.Name, synth.ExportCapability(units, oracle))
	manifestPath := filepath.Join(outDir, m.Config.Package.Name+".rxu")
	if err := symbols.WriteManifest(manifestPath, manifest); err != nil {
		return nil, fmt.Errorf("export unit manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	done(fmt.Sprintf("%d files", len(result.Units)+1))

	return result, nil
}

// writeIfChanged writes content only when the file is missing or differs.
func writeIfChanged(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
