package driver

import (
	"context"
	"fmt"
	"path/filepath"

	"reactivegen/internal/analyzer"
	"reactivegen/internal/classify"
	"reactivegen/internal/fix"
	"reactivegen/internal/project"
	"reactivegen/internal/source"
)

// FixRequest selects which manual-pattern rewrites to apply.
type FixRequest struct {
	// ID applies exactly one rewrite by its stable identifier.
	ID string
	// File restricts application to one source file (project-relative or
	// absolute path).
	File string
	// Solution widens the pass to the manifest's referenced source roots.
	Solution bool
	// Once applies only the first rewrite in deterministic order.
	Once bool
	// DryRun stages edits without writing.
	DryRun bool
}

// ApplyFixes analyzes the unit (or solution) and applies the requested
// subset of rewrites.
func ApplyFixes(ctx context.Context, m *project.Manifest, opts Options, req FixRequest) (*fix.ApplyResult, *LoadResult, error) {
	opts.IncludeReferencedSources = req.Solution
	load, err := LoadPass(ctx, m, opts)
	if err != nil {
		return nil, nil, err
	}

	oracle := classify.NewOracle(load.Pass, load.reporter())
	findings := analyzer.Analyze(load.Pass, oracle, load.reporter())

	applyOpts := fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: req.DryRun}
	switch {
	case req.ID != "":
		applyOpts.Mode = fix.ApplyModeID
		applyOpts.TargetID = req.ID
	case req.Once:
		applyOpts.Mode = fix.ApplyModeOnce
	}
	if req.File != "" {
		id, err := resolveFile(load, req.File)
		if err != nil {
			return nil, load, err
		}
		applyOpts = applyOpts.ScopeFile(id)
	}

	res, err := fix.Apply(load.FileSet, findings, applyOpts)
	return res, load, err
}

// resolveFile maps a user-supplied path onto a loaded file.
func resolveFile(load *LoadResult, path string) (source.FileID, error) {
	if f, ok := load.FileSet.GetByPath(path); ok {
		return f.ID, nil
	}
	abs := path
	if !filepath.IsAbs(path) {
		abs = filepath.Join(load.Manifest.Root, path)
	}
	if f, ok := load.FileSet.GetByPath(abs); ok {
		return f.ID, nil
	}
	return 0, fmt.Errorf("file %s is not part of the project", path)
}
