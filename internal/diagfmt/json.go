package diagfmt

import (
	"encoding/json"
	"io"

	"micaup/internal/diag"
	"micaup/internal/source"
)

type jsonPosition struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type jsonNote struct {
	Path    string        `json:"path,omitempty"`
	Message string        `json:"message"`
	Start   *jsonPosition `json:"start,omitempty"`
}

type jsonDiagnostic struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Path     string        `json:"path,omitempty"`
	Start    *jsonPosition `json:"start,omitempty"`
	End      *jsonPosition `json:"end,omitempty"`
	Notes    []jsonNote    `json:"notes,omitempty"`
}

// JSON writes the bag as a JSON array, one object per diagnostic.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}

	out := make([]jsonDiagnostic, 0, len(items))
	for _, d := range items {
		jd := jsonDiagnostic{
			Severity: severityName(d.Severity),
			Code:     d.Code.String(),
			Message:  d.Message,
		}
		if file := fs.Get(d.Primary.File); file != nil {
			jd.Path = file.FormatPath(opts.PathMode.formatMode(), opts.BaseDir)
			if opts.IncludePositions {
				start, end := fs.Resolve(d.Primary)
				jd.Start = &jsonPosition{Line: start.Line, Col: start.Col}
				jd.End = &jsonPosition{Line: end.Line, Col: end.Col}
			}
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				jn := jsonNote{Message: note.Msg}
				if file := fs.Get(note.Span.File); file != nil {
					jn.Path = file.FormatPath(opts.PathMode.formatMode(), opts.BaseDir)
					if opts.IncludePositions {
						start, _ := fs.Resolve(note.Span)
						jn.Start = &jsonPosition{Line: start.Line, Col: start.Col}
					}
				}
				jd.Notes = append(jd.Notes, jn)
			}
		}
		out = append(out, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func severityName(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}
