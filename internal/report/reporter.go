package report

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"mendline/internal/logging"
)

// detailLimit caps how many per-line details are retained in memory for the
// final report. Counts are always exact; only the listings are sampled.
const detailLimit = 100

// Options configures a Reporter.
type Options struct {
	// Output receives repaired NDJSON. nil discards it (dry runs).
	Output io.Writer
	// OpenQuarantine is called at most once, on the first unrecoverable
	// line. nil discards quarantine records (dry runs).
	OpenQuarantine func() (io.WriteCloser, error)
	Logger         *slog.Logger
}

// Reporter commits line outcomes in input order: valid fragments to the
// output stream (flushed per line, so interruption leaves a valid truncated
// file), unrecoverable lines to the quarantine sidecar, and every line into
// the run counters. It is the sole writer of RunStats.
type Reporter struct {
	out        *bufio.Writer
	openQuar   func() (io.WriteCloser, error)
	quarantine io.WriteCloser
	quarEnc    *json.Encoder
	logger     *slog.Logger

	stats         RunStats
	fixed         []FixedDetail
	unrecoverable []UnrecoverableDetail
}

// NewReporter builds a Reporter from opts.
func NewReporter(opts Options) *Reporter {
	output := opts.Output
	if output == nil {
		output = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reporter{
		out:      bufio.NewWriter(output),
		openQuar: opts.OpenQuarantine,
		logger:   logging.NewComponentLogger(logger, "report"),
	}
}

type quarantineRecord struct {
	Line      int64  `json:"line"`
	Reason    string `json:"reason"`
	Raw       string `json:"raw,omitempty"`
	RawBase64 string `json:"raw_base64,omitempty"`
}

// Commit records one line outcome. Outcomes must arrive in line order with
// no gaps; a write failure is fatal to the run.
func (r *Reporter) Commit(outcome Outcome) error {
	if outcome.Line != r.stats.TotalLines+1 {
		return fmt.Errorf("out-of-order commit: line %d after %d lines", outcome.Line, r.stats.TotalLines)
	}
	r.stats.TotalLines++

	switch outcome.Disposition {
	case DispositionClean:
		r.stats.CleanLines++
		if outcome.Empty {
			r.stats.EmptyLines++
		}
		r.stats.ObjectsRecovered += int64(outcome.Objects())
		if err := r.writeLine(outcome); err != nil {
			return err
		}
	case DispositionFixed:
		r.stats.FixedLines++
		r.stats.ObjectsRecovered += int64(outcome.Objects())
		if len(r.fixed) < detailLimit {
			r.fixed = append(r.fixed, FixedDetail{Line: outcome.Line, Objects: outcome.Objects()})
		}
		if err := r.writeLine(outcome); err != nil {
			return err
		}
		r.logger.Debug("line repaired",
			logging.Int64(logging.FieldLine, outcome.Line),
			logging.Int(logging.FieldFragments, outcome.Objects()))
	case DispositionUnrecoverable:
		r.stats.UnrecoverableLines++
		if len(r.unrecoverable) < detailLimit {
			r.unrecoverable = append(r.unrecoverable, UnrecoverableDetail{Line: outcome.Line, Reason: outcome.Reason})
		}
		if err := r.writeQuarantine(outcome); err != nil {
			return err
		}
		r.logger.Warn("line quarantined",
			logging.Int64(logging.FieldLine, outcome.Line),
			logging.String(logging.FieldReason, outcome.Reason))
	default:
		return fmt.Errorf("unknown disposition %q for line %d", outcome.Disposition, outcome.Line)
	}

	return nil
}

// writeLine emits the outcome's fragments, one per output line, then
// flushes. Blank lines pass through as blank lines.
func (r *Reporter) writeLine(outcome Outcome) error {
	if outcome.Empty {
		if err := r.out.WriteByte('\n'); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return r.flush()
	}
	for _, fragmentText := range outcome.Fragments {
		if _, err := r.out.Write(fragmentText); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if err := r.out.WriteByte('\n'); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return r.flush()
}

func (r *Reporter) flush() error {
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

func (r *Reporter) writeQuarantine(outcome Outcome) error {
	if r.quarEnc == nil {
		if r.openQuar == nil {
			return nil
		}
		sink, err := r.openQuar()
		if err != nil {
			return fmt.Errorf("open quarantine: %w", err)
		}
		r.quarantine = sink
		r.quarEnc = json.NewEncoder(sink)
	}

	record := quarantineRecord{Line: outcome.Line, Reason: outcome.Reason}
	if utf8.Valid(outcome.Raw) {
		record.Raw = string(outcome.Raw)
	} else {
		record.RawBase64 = base64.StdEncoding.EncodeToString(outcome.Raw)
	}
	if err := r.quarEnc.Encode(record); err != nil {
		return fmt.Errorf("write quarantine: %w", err)
	}
	return nil
}

// Stats returns a snapshot of the accumulated counters.
func (r *Reporter) Stats() RunStats {
	return r.stats
}

// FixedDetails returns up to detailLimit repaired-line records in line order.
func (r *Reporter) FixedDetails() []FixedDetail {
	out := make([]FixedDetail, len(r.fixed))
	copy(out, r.fixed)
	return out
}

// UnrecoverableDetails returns up to detailLimit quarantined-line records in
// line order.
func (r *Reporter) UnrecoverableDetails() []UnrecoverableDetail {
	out := make([]UnrecoverableDetail, len(r.unrecoverable))
	copy(out, r.unrecoverable)
	return out
}

// QuarantineUsed reports whether the quarantine sidecar was opened.
func (r *Reporter) QuarantineUsed() bool {
	return r.quarEnc != nil
}

// Close flushes the output stream and closes the quarantine sidecar if it
// was opened.
func (r *Reporter) Close() error {
	flushErr := r.flush()
	if r.quarantine != nil {
		if err := r.quarantine.Close(); err != nil && flushErr == nil {
			flushErr = fmt.Errorf("close quarantine: %w", err)
		}
	}
	return flushErr
}
