package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"reactivegen/internal/driver"
	"reactivegen/internal/project"
	"reactivegen/internal/ui"
)

var generateCmd = &cobra.Command{
	Use:   "generate [project-dir]",
	Short: "Synthesize notification units for the project",
	Long:  "Parse the project's .rx sources, classify types, and write generated counterpart units into the output directory.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

var generatePhases = []string{"scan", "parse", "resolve", "plan", "emit", "write"}

func init() {
	generateCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	m, err := loadManifest(args)
	if err != nil {
		return err
	}

	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts, flushTimings := withTimings(cmd, driverOptions(cmd))
	var res *driver.GenerateResult
	if shouldUseTUI(mode) && !quiet(cmd) {
		res, err = runGenerateWithUI(cmd.Context(), m, opts)
	} else {
		res, err = driver.Generate(cmd.Context(), m, opts)
	}
	if err != nil {
		return err
	}
	flushTimings()

	hadErrors := printDiagnostics(cmd, res.Load, false)
	if res.Skipped {
		return fmt.Errorf("generation skipped: fix the errors above")
	}

	if !quiet(cmd) {
		written := 0
		for _, u := range res.Units {
			if u.Changed {
				written++
				fmt.Fprintf(cmd.OutOrStdout(), "  wrote %s (%d bytes)\n", u.Name, u.Size)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "generated %d units (%d changed), manifest %s\n",
			len(res.Units), written, res.ManifestPath)
	}
	if hadErrors {
		return fmt.Errorf("generation finished with errors")
	}
	return nil
}

type generateOutcome struct {
	result *driver.GenerateResult
	err    error
}

func runGenerateWithUI(ctx context.Context, m *project.Manifest, opts driver.Options) (*driver.GenerateResult, error) {
	events := make(chan driver.PhaseEvent, 256)
	outcomeCh := make(chan generateOutcome, 1)

	go func() {
		optsCopy := opts
		prev := optsCopy.Observer
		optsCopy.Observer = func(e driver.PhaseEvent) {
			if prev != nil {
				prev(e)
			}
			events <- e
		}
		res, err := driver.Generate(ctx, m, optsCopy)
		outcomeCh <- generateOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("generate "+m.Config.Package.Name, generatePhases, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
