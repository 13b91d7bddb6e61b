package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reactivegen/internal/diagfmt"
	"reactivegen/internal/driver"
	"reactivegen/internal/project"
)

// loadManifest resolves the project manifest from the optional path
// argument: a directory starts the walk-up search there, no argument
// starts it at the working directory.
func loadManifest(args []string) (*project.Manifest, error) {
	start := "."
	if len(args) > 0 {
		start = args[0]
	}
	m, err := project.Load(start)
	if err != nil {
		return nil, fmt.Errorf("no %s found from %s: %w", project.ManifestName, start, err)
	}
	return m, nil
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	flag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch flag {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func driverOptions(cmd *cobra.Command) driver.Options {
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	jobs, _ := cmd.Root().PersistentFlags().GetInt("jobs")
	return driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	}
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

// printDiagnostics renders the load result's bag to stderr and reports
// whether it contained errors.
func printDiagnostics(cmd *cobra.Command, load *driver.LoadResult, showFixes bool) bool {
	load.Bag.Sort()
	load.Bag.Dedup()
	if load.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, load.Bag.Items(), load.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			PathMode:  diagfmt.PathModeRelative,
			ShowNotes: true,
			ShowFixes: showFixes,
		})
	}
	return load.Bag.HasErrors()
}
