package driver

import (
	"context"
	"fmt"

	"reactivegen/internal/analyzer"
	"reactivegen/internal/classify"
	"reactivegen/internal/diag"
	"reactivegen/internal/project"
	"reactivegen/internal/synth"
)

// CheckResult carries everything a check run produced: the load state,
// the full diagnostic bag, and the analyzer findings with their fixes.
type CheckResult struct {
	Load     *LoadResult
	Findings []diag.Diagnostic
}

// Check runs the pipeline without writing anything: parse, classify,
// plan (for classification diagnostics), and the manual-pattern
// analyzer. Findings land in the bag alongside everything else.
func Check(ctx context.Context, m *project.Manifest, opts Options) (*CheckResult, error) {
	load, err := LoadPass(ctx, m, opts)
	if err != nil {
		return nil, err
	}
	rep := load.reporter()
	oracle := classify.NewOracle(load.Pass, rep)

	done := beginPhase(opts.Observer, "classify")
	units := synth.Plan(load.Pass, oracle, rep)
	done(fmt.Sprintf("%d units", len(units)))

	done = beginPhase(opts.Observer, "analyze")
	findings := analyzer.Analyze(load.Pass, oracle, rep)
	done(fmt.Sprintf("%d findings", len(findings)))

	load.Bag.Sort()
	load.Bag.Dedup()
	return &CheckResult{Load: load, Findings: findings}, nil
}
