// Package diagfmt renders diagnostics and token streams for the CLI:
// a human-readable form with carets and previews, and JSON for tooling.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"reactivegen/internal/diag"
	"reactivegen/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	gutterColor  = color.New(color.FgHiBlack)
	fixColor     = color.New(color.FgGreen)
)

// Pretty writes diagnostics in a human-readable form. The slice is
// expected to be sorted (bag.Sort() upstream). Each diagnostic prints
// <path>:<line>:<col>: <SEVERITY> <CODE>: <message>, then the source
// line with a caret underline, then notes and fixes when requested.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	for i := range diags {
		prettyOne(w, &diags[i], fs, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", location(fs, d.Primary, opts), sev, d.Code.ID(), d.Message)
	underline(w, fs, d.Primary, opts)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "%s: note: %s\n", location(fs, n.Span, opts), n.Msg)
			underline(w, fs, n.Span, opts)
		}
	}
	if opts.ShowFixes {
		for _, f := range d.Fixes {
			title := fmt.Sprintf("fix (%s): %s", f.ID, f.Title)
			if opts.Color {
				title = fixColor.Sprint(title)
			}
			fmt.Fprintf(w, "  %s\n", title)
			if opts.ShowPreview {
				prettyPreview(w, fs, f, opts)
			}
		}
	}
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func location(fs *source.FileSet, span source.Span, opts PrettyOpts) string {
	if fs == nil || int(span.File) >= fs.Len() {
		return "<unknown>"
	}
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.FormatPath(opts.PathMode.key(), fs.BaseDir()), start.Line, start.Col)
}

// underline prints the spanned source line with a caret marker under the
// affected columns. Multi-line spans mark only the first line.
func underline(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	if fs == nil || int(span.File) >= fs.Len() || span.Empty() && span.Start == 0 {
		return
	}
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}

	gutter := fmt.Sprintf("%5d | ", start.Line)
	if opts.Color {
		gutter = gutterColor.Sprint(gutter)
	}
	fmt.Fprintf(w, "%s%s\n", gutter, line)

	startCol := int(start.Col) - 1
	if startCol > len(line) {
		startCol = len(line)
	}
	endCol := len(line)
	if end.Line == start.Line && int(end.Col)-1 < endCol {
		endCol = int(end.Col) - 1
	}
	if endCol < startCol {
		endCol = startCol
	}

	// Display widths, so wide runes and tabs line up.
	pad := runewidth.StringWidth(expandTabs(line[:startCol]))
	width := runewidth.StringWidth(expandTabs(line[startCol:endCol]))
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = errorColor.Sprint(marker)
	}
	fmt.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", 8), strings.Repeat(" ", pad), marker)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
