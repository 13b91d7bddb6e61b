package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reactivegen/internal/diagfmt"
	"reactivegen/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [project-dir]",
	Short: "Diagnose the project without writing anything",
	Long:  "Parse and classify the project's .rx sources, then report diagnostics and manual-pattern findings with their available rewrites.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("previews", false, "show before/after previews for suggested rewrites")
}

func runCheck(cmd *cobra.Command, args []string) error {
	m, err := loadManifest(args)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	showPreviews, _ := cmd.Flags().GetBool("previews")

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts, flushTimings := withTimings(cmd, driverOptions(cmd))
	res, err := driver.Check(cmd.Context(), m, opts)
	if err != nil {
		return err
	}
	flushTimings()

	switch format {
	case "json":
		err = diagfmt.JSON(cmd.OutOrStdout(), res.Load.Bag.Items(), res.Load.FileSet, diagfmt.JSONOpts{
			PathMode:     diagfmt.PathModeRelative,
			IncludeNotes: true,
			IncludeFixes: true,
		})
		if err != nil {
			return err
		}
	case "pretty":
		diagfmt.Pretty(os.Stderr, res.Load.Bag.Items(), res.Load.FileSet, diagfmt.PrettyOpts{
			Color:       useColor(cmd, os.Stderr),
			PathMode:    diagfmt.PathModeRelative,
			ShowNotes:   true,
			ShowFixes:   true,
			ShowPreview: showPreviews,
		})
		if !quiet(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "%d diagnostics, %d rewrite candidates\n",
				res.Load.Bag.Len(), len(res.Findings))
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if res.Load.Bag.HasErrors() {
		return fmt.Errorf("check finished with errors")
	}
	return nil
}
