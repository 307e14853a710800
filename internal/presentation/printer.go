package presentation

import (
	"fmt"
	"io"
	"strings"

	"inboxstamp/internal/domain"
	appErrors "inboxstamp/internal/errors"
)

const rule = "---------------------------------"

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

func (p Printer) PrintHeader(dir string) {
	fmt.Fprintln(p.Writer, "--- Running File Rename ---")
	fmt.Fprintf(p.Writer, "Target directory: %s\n", dir)
}

// PrintReport writes one line per rename and per failure, then the summary.
func (p Printer) PrintReport(report domain.Report) {
	for _, line := range formatOutcomeLines(report, p.Verbose) {
		fmt.Fprintln(p.Writer, line)
	}
	fmt.Fprintln(p.Writer, SummaryLine(report))
	if p.Verbose {
		fmt.Fprintf(p.Writer, "Skipped %d already prefixed and %d non-file entries.\n", report.SkippedPrefixed, report.SkippedNotFile)
	}
	fmt.Fprintln(p.Writer, rule)
}

// PrintAborted closes the output of a run that could not start or was cut
// short. The cause itself goes to stderr.
func (p Printer) PrintAborted() {
	fmt.Fprintln(p.Writer, "Result: Could not proceed.")
	fmt.Fprintln(p.Writer, rule)
}

func SummaryLine(report domain.Report) string {
	switch {
	case report.DryRun && report.Renamed == 0:
		return "Result: Dry run. No new files to rename."
	case report.DryRun:
		return fmt.Sprintf("Result: Dry run. Would rename %d file(s).", report.Renamed)
	case report.Renamed == 0 && report.Failed == 0:
		return "Result: No new files to rename."
	case report.Failed > 0:
		return fmt.Sprintf("Result: Finished. Renamed %d file(s), %d failed.", report.Renamed, report.Failed)
	default:
		return fmt.Sprintf("Result: Finished. Renamed %d file(s).", report.Renamed)
	}
}

func formatOutcomeLines(report domain.Report, verbose bool) []string {
	verb := "Renamed"
	if report.DryRun {
		verb = "Would rename"
	}

	lines := make([]string, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		switch o.Kind {
		case domain.Renamed:
			lines = append(lines, fmt.Sprintf("  - %s: '%s' -> '%s'", verb, o.Name, o.NewName))
		case domain.Failed:
			lines = append(lines, fmt.Sprintf("  - Error renaming file '%s': %v", o.Name, appErrors.Cause(o.Err)))
		case domain.SkippedPrefixed, domain.SkippedNotFile:
			if verbose {
				lines = append(lines, fmt.Sprintf("  - Skipped '%s': %s", o.Name, strings.TrimPrefix(o.Kind.String(), "skipped ")))
			}
		}
	}
	return lines
}
