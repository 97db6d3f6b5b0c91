package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mendline/internal/report"
)

const (
	ansiReset = "\x1b[0m"
	ansiBlue  = "\x1b[34m"
)

const (
	summaryLabelWidth = 20
	summaryIndent     = "  "
	summaryDetailMax  = 5
)

type runSummary struct {
	runID          string
	input          string
	output         string
	quarantine     string
	dryRun         bool
	interrupted    bool
	quarantineUsed bool
	duration       time.Duration
	stats          report.RunStats
	fixed          []report.FixedDetail
	unrecoverable  []report.UnrecoverableDetail
}

// renderRunSummary prints the post-run report. Counts render as a table on a
// terminal and as plain label lines when piped, so scripts can grep them.
func renderRunSummary(w io.Writer, s runSummary) {
	colorize := shouldColorize(w)
	printer := message.NewPrinter(language.English)
	count := func(n int64) string { return printer.Sprintf("%d", n) }

	for _, line := range renderSectionHeader("Repair Summary", colorize) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, summaryLine("Run", s.runID))
	fmt.Fprintln(w, summaryLine("Input", s.input))
	if s.dryRun {
		fmt.Fprintln(w, summaryLine("Output", "none (dry run)"))
	} else {
		fmt.Fprintln(w, summaryLine("Output", s.output))
		if s.quarantineUsed {
			fmt.Fprintln(w, summaryLine("Quarantine", s.quarantine))
		}
	}
	if s.interrupted {
		fmt.Fprintln(w, summaryLine("Interrupted", "yes; counts cover the committed prefix only"))
	}
	fmt.Fprintln(w, summaryLine("Duration", s.duration.Round(time.Millisecond).String()))
	fmt.Fprintln(w)

	if colorize {
		rows := [][]string{
			{"Clean", count(s.stats.CleanLines)},
			{"Fixed", count(s.stats.FixedLines)},
			{"Unrecoverable", count(s.stats.UnrecoverableLines)},
			{"Empty", count(s.stats.EmptyLines)},
			{"Total", count(s.stats.TotalLines)},
		}
		fmt.Fprintln(w, renderTable([]string{"Outcome", "Lines"}, rows, []columnAlignment{alignLeft, alignRight}))
	} else {
		fmt.Fprintln(w, summaryLine("Total lines", count(s.stats.TotalLines)))
		fmt.Fprintln(w, summaryLine("Clean", count(s.stats.CleanLines)))
		fmt.Fprintln(w, summaryLine("Fixed", count(s.stats.FixedLines)))
		fmt.Fprintln(w, summaryLine("Unrecoverable", count(s.stats.UnrecoverableLines)))
		fmt.Fprintln(w, summaryLine("Empty", count(s.stats.EmptyLines)))
	}
	fmt.Fprintln(w, summaryLine("Objects recovered", count(s.stats.ObjectsRecovered)))

	if len(s.fixed) > 0 {
		shown := min(len(s.fixed), summaryDetailMax)
		parts := make([]string, 0, shown)
		for _, detail := range s.fixed[:shown] {
			parts = append(parts, fmt.Sprintf("line %s (%d objects)", count(detail.Line), detail.Objects))
		}
		suffix := ""
		if rest := s.stats.FixedLines - int64(shown); rest > 0 {
			suffix = fmt.Sprintf(", and %s more", count(rest))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, summaryIndent+"Fixed lines: "+strings.Join(parts, ", ")+suffix)
	}

	if len(s.unrecoverable) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, summaryIndent+"Unrecoverable lines:")
		shown := min(len(s.unrecoverable), summaryDetailMax)
		for _, detail := range s.unrecoverable[:shown] {
			fmt.Fprintf(w, "%s  line %s: %s\n", summaryIndent, count(detail.Line), detail.Reason)
		}
		if rest := s.stats.UnrecoverableLines - int64(shown); rest > 0 {
			fmt.Fprintf(w, "%s  and %s more\n", summaryIndent, count(rest))
		}
	}
}

func summaryLine(label, value string) string {
	return fmt.Sprintf("%s%-*s %s", summaryIndent, summaryLabelWidth, label+":", value)
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
