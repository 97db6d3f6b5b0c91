package repair

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"mendline/internal/boundary"
	"mendline/internal/fragment"
	"mendline/internal/logging"
	"mendline/internal/report"
	"mendline/internal/scan"
)

const (
	defaultWindow       = 64
	defaultMaxLineBytes = 64 << 20
)

// Options configure an Engine. Zero values select the defaults: one worker
// per CPU, a 64 line in-flight window, a 64 MiB line cap, and automatic
// encoding detection.
type Options struct {
	Workers      int
	Window       int
	MaxLineBytes int
	Encoding     string
	Logger       *slog.Logger
}

// Engine drives one repair run: a producer scans lines, a worker pool
// decides each line's outcome independently, and a single committer
// restores input order before anything is written.
type Engine struct {
	workers      int
	window       int
	maxLineBytes int
	encoding     string
	checkUTF8    bool
	logger       *slog.Logger
}

// New validates opts and returns a ready engine.
func New(opts Options) (*Engine, error) {
	if !scan.KnownEncoding(opts.Encoding) {
		return nil, Wrap(ErrValidation, "repair", "configure",
			fmt.Sprintf("unsupported input encoding %q", opts.Encoding), nil)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	window := opts.Window
	if window <= 0 {
		window = defaultWindow
	}
	maxLineBytes := opts.MaxLineBytes
	if maxLineBytes <= 0 {
		maxLineBytes = defaultMaxLineBytes
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{
		workers:      workers,
		window:       window,
		maxLineBytes: maxLineBytes,
		encoding:     opts.Encoding,
		checkUTF8:    scan.ChecksUTF8(opts.Encoding),
		logger:       logging.NewComponentLogger(logger, "repair"),
	}, nil
}

// Run reads input to end of stream and commits every line's outcome to rep
// in input order. The returned stats cover exactly the committed lines, so
// after an error or cancellation they still describe the valid truncated
// output left behind.
//
// Line-level problems are data, not errors: they quarantine the line and
// the run continues. Run fails only when the stream itself does, a write
// fails, or ctx is cancelled.
func (e *Engine) Run(ctx context.Context, input io.Reader, rep *report.Reporter) (report.RunStats, error) {
	decoded, err := scan.NewReader(input, e.encoding)
	if err != nil {
		return rep.Stats(), Wrap(ErrEncoding, "repair", "decode", "", err)
	}
	lines := scan.NewLines(decoded, e.maxLineBytes)

	e.logger.Debug("run starting",
		logging.Int("workers", e.workers),
		logging.Int("window", e.window),
		logging.String("encoding", encodingLabel(e.encoding)))

	jobs := make(chan scan.Line, e.window)
	results := make(chan report.Outcome, e.window)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		var scanned int64
		for {
			line, ok := lines.Next()
			if !ok {
				break
			}
			scanned = line.Number
			select {
			case jobs <- line:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		if err := lines.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return Wrap(ErrFatalIO, "repair", "scan",
					fmt.Sprintf("line %d exceeds the %d byte line cap", scanned+1, e.maxLineBytes), err)
			}
			return Wrap(ErrFatalIO, "repair", "scan", "", err)
		}
		return nil
	})

	workg, wctx := errgroup.WithContext(gctx)
	for i := 0; i < e.workers; i++ {
		workg.Go(func() error {
			for line := range jobs {
				select {
				case results <- e.process(line):
				case <-wctx.Done():
					return wctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workg.Wait()
	})

	g.Go(func() error {
		// Workers finish out of order; pending holds the gap until the
		// next line in sequence arrives. Its size is bounded by the
		// channel capacities plus the worker count.
		pending := make(map[int64]report.Outcome, e.window)
		next := int64(1)
		for outcome := range results {
			pending[outcome.Line] = outcome
			for {
				ready, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				if err := rep.Commit(ready); err != nil {
					return Wrap(ErrFatalIO, "repair", "commit", "", err)
				}
				next++
			}
		}
		return nil
	})

	// Wait before reading stats: return expressions evaluate left to
	// right, and the committer must be done before the snapshot.
	err = g.Wait()
	return rep.Stats(), err
}

// process decides one line's outcome. It never fails: every problem a line
// can have becomes an unrecoverable outcome carrying the reason.
//
// A clean line is emitted exactly as scanned rather than as its trimmed
// span, so a well-formed file passes through byte for byte.
func (e *Engine) process(line scan.Line) report.Outcome {
	if len(bytes.TrimSpace(line.Text)) == 0 {
		return report.BlankLine(line.Number)
	}
	if e.checkUTF8 && !utf8.Valid(line.Text) {
		return report.UnrecoverableLine(line.Number, line.Text, "invalid UTF-8")
	}
	spans, err := boundary.Split(line.Text)
	if err != nil {
		return report.UnrecoverableLine(line.Number, line.Text, err.Error())
	}
	if len(spans) == 1 {
		if err := fragment.Check(line.Text[spans[0].Start:spans[0].End]); err != nil {
			return report.UnrecoverableLine(line.Number, line.Text, err.Error())
		}
		return report.CleanLine(line.Number, line.Text)
	}
	fragments := make([][]byte, 0, len(spans))
	for i, span := range spans {
		text := line.Text[span.Start:span.End]
		if err := fragment.Check(text); err != nil {
			return report.UnrecoverableLine(line.Number, line.Text,
				fmt.Sprintf("fragment %d of %d is invalid: %v", i+1, len(spans), err))
		}
		fragments = append(fragments, text)
	}
	return report.FixedLine(line.Number, fragments)
}

func encodingLabel(name string) string {
	if name == "" {
		return "auto"
	}
	return name
}
