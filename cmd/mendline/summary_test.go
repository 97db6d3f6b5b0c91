package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"mendline/internal/report"
)

func TestRenderRunSummaryPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	renderRunSummary(&buf, runSummary{
		runID:          "1f0c6a9e-run",
		input:          "/data/sessions.ndjson",
		output:         "/data/sessions_fixed.ndjson",
		quarantine:     "/data/sessions_quarantine.ndjson",
		quarantineUsed: true,
		duration:       1284 * time.Millisecond,
		stats: report.RunStats{
			TotalLines:         1234567,
			CleanLines:         1230000,
			FixedLines:         4000,
			UnrecoverableLines: 567,
			EmptyLines:         123,
			ObjectsRecovered:   1238123,
		},
		fixed: []report.FixedDetail{
			{Line: 12, Objects: 3},
			{Line: 40, Objects: 2},
		},
		unrecoverable: []report.UnrecoverableDetail{
			{Line: 9, Reason: "unterminated string literal at end of line"},
		},
	})
	out := buf.String()

	// A buffer is not a terminal, so counts come out as plain label lines.
	requireContains(t, out, "== Repair Summary ==")
	requireContains(t, out, summaryLine("Run", "1f0c6a9e-run"))
	requireContains(t, out, summaryLine("Quarantine", "/data/sessions_quarantine.ndjson"))
	requireContains(t, out, summaryLine("Total lines", "1,234,567"))
	requireContains(t, out, summaryLine("Fixed", "4,000"))
	requireContains(t, out, summaryLine("Objects recovered", "1,238,123"))
	requireContains(t, out, summaryLine("Duration", "1.284s"))
	requireContains(t, out, "Fixed lines: line 12 (3 objects), line 40 (2 objects), and 3,998 more")
	requireContains(t, out, "line 9: unterminated string literal at end of line")
	requireContains(t, out, "and 566 more")
	if strings.Contains(out, ansiBlue) {
		t.Fatal("plain output must not carry color codes")
	}
}

func TestRenderRunSummaryDryRun(t *testing.T) {
	var buf bytes.Buffer
	renderRunSummary(&buf, runSummary{
		runID:    "dry",
		input:    "/data/a.ndjson",
		output:   "/data/a_fixed.ndjson",
		dryRun:   true,
		duration: 5 * time.Millisecond,
		stats:    report.RunStats{TotalLines: 1, CleanLines: 1, ObjectsRecovered: 1},
	})
	out := buf.String()

	requireContains(t, out, summaryLine("Output", "none (dry run)"))
	if strings.Contains(out, "Quarantine:") {
		t.Fatalf("dry run summary must not mention a quarantine file, got %q", out)
	}
}

func TestRenderRunSummaryInterrupted(t *testing.T) {
	var buf bytes.Buffer
	renderRunSummary(&buf, runSummary{
		runID:    "partial",
		input:    "/data/a.ndjson",
		output:   "/data/a_fixed.ndjson",
		duration: time.Second,
		stats:    report.RunStats{TotalLines: 10, CleanLines: 10, ObjectsRecovered: 10},
		// Committed prefix only.
		interrupted: true,
	})
	requireContains(t, buf.String(), "Interrupted")
	requireContains(t, buf.String(), "committed prefix")
}

func TestRenderRunSummaryCapsDetails(t *testing.T) {
	details := make([]report.UnrecoverableDetail, 7)
	for i := range details {
		details[i] = report.UnrecoverableDetail{Line: int64(i + 1), Reason: "empty fragment"}
	}

	var buf bytes.Buffer
	renderRunSummary(&buf, runSummary{
		runID:    "caps",
		input:    "/data/a.ndjson",
		output:   "/data/a_fixed.ndjson",
		duration: time.Second,
		stats: report.RunStats{
			TotalLines:         7,
			UnrecoverableLines: 7,
		},
		unrecoverable: details,
	})
	out := buf.String()

	requireContains(t, out, "line 5: empty fragment")
	requireContains(t, out, "and 2 more")
	if strings.Contains(out, "line 6: empty fragment") {
		t.Fatalf("details beyond the cap must be elided, got %q", out)
	}
}
