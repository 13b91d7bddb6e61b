package diagfmt

import (
	"encoding/json"
	"io"

	"reactivegen/internal/diag"
	"reactivegen/internal/source"
)

type jsonPosition struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type jsonNote struct {
	Path    string       `json:"path,omitempty"`
	Start   jsonPosition `json:"start"`
	Message string       `json:"message"`
}

type jsonEdit struct {
	Path    string       `json:"path,omitempty"`
	Start   jsonPosition `json:"start"`
	End     jsonPosition `json:"end"`
	NewText string       `json:"newText"`
}

type jsonFix struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Kind          string     `json:"kind"`
	Applicability string     `json:"applicability"`
	Preferred     bool       `json:"preferred,omitempty"`
	Edits         []jsonEdit `json:"edits,omitempty"`
}

type jsonDiagnostic struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Path     string       `json:"path,omitempty"`
	Start    jsonPosition `json:"start"`
	End      jsonPosition `json:"end"`
	Message  string       `json:"message"`
	Notes    []jsonNote   `json:"notes,omitempty"`
	Fixes    []jsonFix    `json:"fixes,omitempty"`
}

// JSON writes diagnostics as an indented JSON array, one object per
// diagnostic. Output order follows the input slice.
func JSON(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	out := make([]jsonDiagnostic, 0, len(diags))
	for i, d := range diags {
		if opts.Max > 0 && i >= opts.Max {
			break
		}
		entry := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		entry.Path, entry.Start, entry.End = resolveJSON(fs, d.Primary, opts)
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				jn := jsonNote{Message: n.Msg}
				jn.Path, jn.Start, _ = resolveJSON(fs, n.Span, opts)
				entry.Notes = append(entry.Notes, jn)
			}
		}
		if opts.IncludeFixes {
			for _, f := range d.Fixes {
				jf := jsonFix{
					ID:            f.ID,
					Title:         f.Title,
					Kind:          f.Kind.String(),
					Applicability: f.Applicability.String(),
					Preferred:     f.IsPreferred,
				}
				for _, e := range f.Edits {
					je := jsonEdit{NewText: e.NewText}
					je.Path, je.Start, je.End = resolveJSON(fs, e.Span, opts)
					jf.Edits = append(jf.Edits, je)
				}
				entry.Fixes = append(entry.Fixes, jf)
			}
		}
		out = append(out, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func resolveJSON(fs *source.FileSet, span source.Span, opts JSONOpts) (string, jsonPosition, jsonPosition) {
	if fs == nil || int(span.File) >= fs.Len() {
		return "", jsonPosition{}, jsonPosition{}
	}
	start, end := fs.Resolve(span)
	path := fs.Get(span.File).FormatPath(opts.PathMode.key(), fs.BaseDir())
	return path, jsonPosition{Line: start.Line, Col: start.Col}, jsonPosition{Line: end.Line, Col: end.Col}
}
