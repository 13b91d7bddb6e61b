// Package driver orchestrates the pipeline: load sources, parse in
// parallel, fold symbols, classify, synthesize, and write units back.
package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"reactivegen/internal/ast"
	"reactivegen/internal/diag"
	"reactivegen/internal/parser"
	"reactivegen/internal/project"
	"reactivegen/internal/source"
	"reactivegen/internal/symbols"
	runtimeembed "reactivegen/runtime"
)

// Options configure a pipeline run.
type Options struct {
	MaxDiagnostics int
	Jobs           int
	// IncludeReferencedSources also parses the manifest's referenced
	// source roots, for solution-wide analysis and fixes.
	IncludeReferencedSources bool
	Observer                 PhaseObserver
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 256
	}
	return o.MaxDiagnostics
}

func (o Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

// LoadResult is the parsed and folded view of one compiled unit.
type LoadResult struct {
	Manifest *project.Manifest
	FileSet  *source.FileSet
	Pass     *symbols.Pass
	Bag      *diag.Bag
	// ProjectFiles lists the unit's own source files, the targets for
	// file-scoped operations. Referenced-solution files are excluded.
	ProjectFiles []source.FileID
}

func (r *LoadResult) reporter() diag.Reporter {
	return diag.BagReporter{Bag: r.Bag}
}

// LoadPass parses every source of the unit (plus the embedded prelude and
// any referenced unit manifests) and folds the symbol pass.
func LoadPass(ctx context.Context, m *project.Manifest, opts Options) (*LoadResult, error) {
	bag := diag.NewBag(opts.maxDiagnostics())
	rep := diag.BagReporter{Bag: bag}

	done := beginPhase(opts.Observer, "scan")
	paths, err := project.ListSources(m.SourceDir(), m.OutputDir())
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	var extraPaths []string
	if opts.IncludeReferencedSources {
		for _, dir := range m.ReferencedSources() {
			more, err := project.ListSources(dir)
			if err != nil {
				return nil, fmt.Errorf("list referenced sources: %w", err)
			}
			extraPaths = append(extraPaths, more...)
		}
	}
	done(fmt.Sprintf("%d files", len(paths)+len(extraPaths)))

	fileSet := source.NewFileSetWithBase(m.Root)
	preludeID := fileSet.AddVirtual(runtimeembed.PreludePath, runtimeembed.Prelude())

	projectCount := len(paths)
	all := append(append([]string(nil), paths...), extraPaths...)
	ids := make([]source.FileID, len(all))
	loaded := make([]bool, len(all))
	for i, path := range all {
		id, err := fileSet.Load(path)
		if err != nil {
			bag.Add(diag.NewError(diag.IOLoadFile, source.Span{},
				fmt.Sprintf("failed to load %s: %v", path, err)))
			continue
		}
		ids[i] = id
		loaded[i] = true
	}

	done = beginPhase(opts.Observer, "parse")
	files := make([]*ast.File, len(all))
	bags := make([]*diag.Bag, len(all))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), len(all)+1))

	var preludeFile *ast.File
	preludeBag := diag.NewBag(opts.maxDiagnostics())
	g.Go(func() error {
		preludeFile = parser.ParseFile(fileSet.Get(preludeID), diag.BagReporter{Bag: preludeBag})
		return nil
	})
	for i := range all {
		if !loaded[i] {
			continue
		}
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fileBag := diag.NewBag(opts.maxDiagnostics())
			files[i] = parser.ParseFile(fileSet.Get(ids[i]), diag.BagReporter{Bag: fileBag})
			bags[i] = fileBag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	parseClean := !bag.HasErrors() && !preludeBag.HasErrors()
	bag.Merge(preludeBag)
	for _, fb := range bags {
		if fb == nil {
			continue
		}
		if fb.HasErrors() {
			parseClean = false
		}
		bag.Merge(fb)
	}
	done(fmt.Sprintf("%d files", len(all)))

	done = beginPhase(opts.Observer, "resolve")
	builder := symbols.NewBuilder(fileSet, rep)
	builder.SetParseClean(parseClean)
	builder.AddFile(preludeFile)
	for _, f := range files {
		if f != nil {
			builder.AddFile(f)
		}
	}
	for _, unitPath := range m.ReferencedUnits() {
		manifest, err := symbols.ReadManifest(unitPath)
		if err != nil {
			bag.Add(diag.NewError(diag.IOLoadManifest, source.Span{},
				fmt.Sprintf("failed to load unit manifest: %v", err)))
			continue
		}
		for _, entry := range manifest.Types {
			builder.AddExternal(entry)
		}
	}
	pass := builder.Resolve()
	done("")

	projectIDs := make([]source.FileID, 0, projectCount)
	for i := 0; i < projectCount; i++ {
		if loaded[i] {
			projectIDs = append(projectIDs, ids[i])
		}
	}

	return &LoadResult{
		Manifest:     m,
		FileSet:      fileSet,
		Pass:         pass,
		Bag:          bag,
		ProjectFiles: projectIDs,
	}, nil
}
