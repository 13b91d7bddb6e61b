package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reactivegen/internal/driver"
	"reactivegen/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [project-dir]",
	Short: "Rewrite hand-written notify patterns to markers",
	Long:  "Run the analyzer and mechanically replace detected hand-written notification properties with their marker form.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe rewrites (default)")
	fixCmd.Flags().Bool("once", false, "apply only the first rewrite in deterministic order")
	fixCmd.Flags().String("id", "", "apply the rewrite with a specific identifier")
	fixCmd.Flags().String("file", "", "restrict rewrites to one source file")
	fixCmd.Flags().Bool("solution", false, "widen the pass to referenced source roots")
	fixCmd.Flags().Bool("dry-run", false, "report rewrites without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	m, err := loadManifest(args)
	if err != nil {
		return err
	}

	applyAll, _ := cmd.Flags().GetBool("all")
	applyOnce, _ := cmd.Flags().GetBool("once")
	targetID, _ := cmd.Flags().GetString("id")
	targetFile, _ := cmd.Flags().GetString("file")
	solution, _ := cmd.Flags().GetBool("solution")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	req := driver.FixRequest{
		ID:       targetID,
		File:     targetFile,
		Solution: solution,
		Once:     applyOnce,
		DryRun:   dryRun,
	}
	res, load, err := driver.ApplyFixes(cmd.Context(), m, driverOptions(cmd), req)
	if load != nil {
		printDiagnostics(cmd, load, false)
	}
	if err != nil {
		if errors.Is(err, fix.ErrNoFixes) {
			fmt.Fprintln(cmd.OutOrStdout(), "no applicable rewrites found")
			return nil
		}
		return err
	}

	out := cmd.OutOrStdout()
	verb := "applied"
	if dryRun {
		verb = "would apply"
	}
	for _, a := range res.Applied {
		fmt.Fprintf(out, "  %s %s: %s (%d edits)\n", verb, a.ID, a.Title, a.EditCount)
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(out, "  skipped %s: %s\n", s.ID, s.Reason)
	}
	if !quiet(cmd) {
		fmt.Fprintf(out, "%s %d rewrites across %d files\n", verb, len(res.Applied), len(res.FileChanges))
	}
	return nil
}
