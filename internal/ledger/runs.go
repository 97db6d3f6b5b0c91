package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"mendline/internal/report"
)

const defaultRecentLimit = 20

// timestampFormat is RFC 3339 with fixed-width nanoseconds. RFC3339Nano
// trims trailing zeros, which breaks the textual ORDER BY on started_at;
// a fixed-width fraction keeps text order chronological.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one recorded repair invocation. OutputPath and QuarantinePath are
// empty for dry runs and when nothing was quarantined.
type Run struct {
	ID             string
	InputPath      string
	OutputPath     string
	QuarantinePath string
	DryRun         bool
	Interrupted    bool
	StartedAt      time.Time
	FinishedAt     time.Time
	Stats          report.RunStats
}

// Duration returns the wall-clock time the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

const runColumns = "id, input_path, output_path, quarantine_path, dry_run, interrupted, started_at, finished_at, total_lines, clean_lines, fixed_lines, unrecoverable_lines, empty_lines, objects_recovered"

// RecordRun inserts a finished run.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run ID is empty")
	}
	if strings.TrimSpace(run.InputPath) == "" {
		return errors.New("run input path is empty")
	}

	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.InputPath,
		nullableString(run.OutputPath),
		nullableString(run.QuarantinePath),
		boolToInt(run.DryRun),
		boolToInt(run.Interrupted),
		run.StartedAt.UTC().Format(timestampFormat),
		run.FinishedAt.UTC().Format(timestampFormat),
		run.Stats.TotalLines,
		run.Stats.CleanLines,
		run.Stats.FixedLines,
		run.Stats.UnrecoverableLines,
		run.Stats.EmptyLines,
		run.Stats.ObjectsRecovered,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first. A limit <= 0 uses
// the default.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Clear removes every recorded run and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id             string
		inputPath      string
		outputPath     sql.NullString
		quarantinePath sql.NullString
		dryRun         sql.NullInt64
		interrupted    sql.NullInt64
		startedRaw     string
		finishedRaw    string
		stats          report.RunStats
	)

	if err := scanner.Scan(
		&id,
		&inputPath,
		&outputPath,
		&quarantinePath,
		&dryRun,
		&interrupted,
		&startedRaw,
		&finishedRaw,
		&stats.TotalLines,
		&stats.CleanLines,
		&stats.FixedLines,
		&stats.UnrecoverableLines,
		&stats.EmptyLines,
		&stats.ObjectsRecovered,
	); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	startedAt, err := parseTimestamp(startedRaw)
	if err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	finishedAt, err := parseTimestamp(finishedRaw)
	if err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}

	return &Run{
		ID:             id,
		InputPath:      inputPath,
		OutputPath:     outputPath.String,
		QuarantinePath: quarantinePath.String,
		DryRun:         dryRun.Int64 != 0,
		Interrupted:    interrupted.Int64 != 0,
		StartedAt:      startedAt,
		FinishedAt:     finishedAt,
		Stats:          stats,
	}, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, raw)
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
