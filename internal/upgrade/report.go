package upgrade

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/pmezard/go-difflib/difflib"
)

// ReportOptions controls how a run result is rendered.
type ReportOptions struct {
	Color bool
	// ShortLog collapses each change to a single truncated line.
	ShortLog bool
	// Verbose appends a unified diff per modified unit.
	Verbose bool
	// Width bounds short-log lines. 0 means 100.
	Width int
}

// RenderResult writes a human-readable account of a finished run: the
// outcome, the applied changes, the changes held back by the acceptance
// gates, and optionally per-unit diffs.
func RenderResult(w io.Writer, d *Driver, res *Result, opts ReportOptions) error {
	width := opts.Width
	if width <= 0 {
		width = 100
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)
	faint := color.New(color.Faint)
	if !opts.Color {
		for _, c := range []*color.Color{bold, green, yellow, red, faint} {
			c.DisableColor()
		}
	}

	switch res.Outcome {
	case OutcomeConverged:
		fmt.Fprintf(w, "%s after %d compilation(s), %d change(s) applied\n",
			bold.Sprint("converged"), res.Cycles, len(res.Applied))
	case OutcomeBlocked:
		fmt.Fprintf(w, "%s: sources do not parse, nothing was changed in the last cycle\n",
			red.Sprint("blocked"))
	case OutcomeCycle:
		fmt.Fprintf(w, "%s: patching revisited an earlier text state after %d cycle(s)\n",
			red.Sprint("stopped"), res.Cycles)
	case OutcomeBudget:
		fmt.Fprintf(w, "%s: cycle budget exhausted after %d cycle(s)\n",
			red.Sprint("stopped"), res.Cycles)
	}

	levelTag := func(l Level) string {
		if l == Safe {
			return green.Sprint("[safe]")
		}
		return yellow.Sprint("[unsafe]")
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold.Sprint("applied:"))
		for _, c := range res.Applied {
			line := fmt.Sprintf("  %s %s: %s (%s)", levelTag(c.Level), c.Unit, c.Desc, c.Rule)
			if opts.ShortLog {
				line = runewidth.Truncate(line, width, "…")
			}
			fmt.Fprintln(w, line)
		}
	}

	if len(res.Pending) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold.Sprint("not applied:"))
		for _, c := range res.Pending {
			line := fmt.Sprintf("  %s %s: %s (%s)", levelTag(c.Level), c.Unit, c.Desc, c.Rule)
			if opts.ShortLog {
				line = runewidth.Truncate(line, width, "…")
			}
			fmt.Fprintln(w, line)
			if !opts.ShortLog {
				gate := "--accept-safe"
				if c.Level == Unsafe {
					gate = "--accept-unsafe"
				}
				fmt.Fprintf(w, "    %s\n", faint.Sprintf("re-run with %s to apply", gate))
			}
		}
	}

	for _, err := range res.RuleFailures {
		fmt.Fprintf(w, "%s: %v\n", red.Sprint("rule failure"), err)
	}

	if res.Final != nil && res.Final.Bag.HasErrors() {
		fmt.Fprintf(w, "\n%d finding(s) remain in the final compilation\n",
			res.Final.Bag.ErrorCount())
	}

	if opts.Verbose {
		if err := renderDiffs(w, d, bold); err != nil {
			return err
		}
	}
	return nil
}

func renderDiffs(w io.Writer, d *Driver, bold *color.Color) error {
	for _, path := range d.Modified() {
		orig, _ := d.Original(path)
		var current []byte
		for _, u := range d.Units() {
			if u.Path == path {
				current = u.Text
			}
		}
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(orig)),
			B:        difflib.SplitLines(string(current)),
			FromFile: path + " (original)",
			ToFile:   path + " (upgraded)",
			Context:  3,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%s\n%s", bold.Sprintf("diff %s", path), text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(w)
		}
	}
	return nil
}
