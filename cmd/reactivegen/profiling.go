package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reactivegen/internal/driver"
	"reactivegen/internal/observ"
	"reactivegen/internal/prof"
)

// setupProfiling inspects the persistent profiling flags and enables the
// corresponding profilers. The returned cleanup is safe to call multiple
// times.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()
	cpuProfile, _ := root.PersistentFlags().GetString("cpu-profile")
	memProfile, _ := root.PersistentFlags().GetString("mem-profile")

	stopCPU := func() {}
	if cpuProfile != "" {
		if err := prof.StartCPU(cpuProfile); err != nil {
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		stopCPU = prof.StopCPU
	}

	done := false
	cleanup := func() {
		if done {
			return
		}
		done = true
		stopCPU()
		if memProfile != "" {
			if err := prof.WriteMem(memProfile); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write mem profile: %v\n", err)
			}
		}
	}
	return cleanup, nil
}

// withTimings chains a timing collector onto the options' observer when
// --timings is set. The returned flush prints the summary.
func withTimings(cmd *cobra.Command, opts driver.Options) (driver.Options, func()) {
	show, _ := cmd.Root().PersistentFlags().GetBool("timings")
	if !show {
		return opts, func() {}
	}
	timer := observ.NewTimer()
	prev := opts.Observer
	opts.Observer = func(e driver.PhaseEvent) {
		if prev != nil {
			prev(e)
		}
		if e.Status == driver.PhaseEnd {
			timer.Record(e.Name, e.Elapsed, e.Detail)
		}
	}
	return opts, func() {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
}
