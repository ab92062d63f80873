package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"micaup/internal/diag"
	"micaup/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <sev> <CODE>: <Message>
// затем строку-контекст с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	sevError := color.New(color.FgRed, color.Bold)
	sevWarning := color.New(color.FgYellow, color.Bold)
	sevInfo := color.New(color.FgCyan, color.Bold)
	marker := color.New(color.FgGreen)
	if !opts.Color {
		for _, c := range []*color.Color{sevError, sevWarning, sevInfo, marker} {
			c.DisableColor()
		}
	}

	for _, d := range bag.Items() {
		writeHeading(w, fs, d.Primary, sevLabel(d.Severity, sevError, sevWarning, sevInfo), d.Code.String(), d.Message, opts)
		writeContext(w, fs, d.Primary, marker)
		if opts.ShowNotes {
			for _, note := range d.Notes {
				writeHeading(w, fs, note.Span, "note", "", note.Msg, opts)
				writeContext(w, fs, note.Span, marker)
			}
		}
	}
}

func sevLabel(sev diag.Severity, errC, warnC, infoC *color.Color) string {
	switch sev {
	case diag.SevError:
		return errC.Sprint("error")
	case diag.SevWarning:
		return warnC.Sprint("warning")
	default:
		return infoC.Sprint("info")
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, span source.Span, sev, code, msg string, opts PrettyOpts) {
	file := fs.Get(span.File)
	if file == nil {
		fmt.Fprintf(w, "%s: %s\n", sev, msg)
		return
	}
	start, _ := fs.Resolve(span)
	path := file.FormatPath(opts.PathMode.formatMode(), opts.BaseDir)
	if code != "" {
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, code, msg)
		return
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, start.Line, start.Col, sev, msg)
}

// writeContext prints the source line and a caret underline for the span.
func writeContext(w io.Writer, fs *source.FileSet, span source.Span, marker *color.Color) {
	file := fs.Get(span.File)
	if file == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" && span.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(line, "\t", " "))

	underlineLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		underlineLen = int(end.Col - start.Col)
	}
	pad := strings.Repeat(" ", int(start.Col)-1)
	underline := "^"
	if underlineLen > 1 {
		underline += strings.Repeat("~", underlineLen-1)
	}
	fmt.Fprintf(w, "  %s%s\n", pad, marker.Sprint(underline))
}
