package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mendline/internal/config"
	"mendline/internal/fileutil"
	"mendline/internal/ledger"
	"mendline/internal/logging"
	"mendline/internal/preflight"
	"mendline/internal/repair"
	"mendline/internal/report"
)

type repairParams struct {
	input      string
	output     string
	quarantine string
	dryRun     bool
	workers    int
	encoding   string
	noLedger   bool
}

func newRepairCommand(ctx *commandContext) *cobra.Command {
	var params repairParams

	cmd := &cobra.Command{
		Use:   "repair <input>",
		Short: "Recover valid JSON values from a damaged NDJSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			params.input = args[0]
			return runRepair(cmd, cfg, params)
		},
	}

	cmd.Flags().StringVarP(&params.output, "output", "o", "", "Repaired output path (default: input stem + output suffix)")
	cmd.Flags().StringVar(&params.quarantine, "quarantine", "", "Quarantine sidecar path (default: input stem + quarantine suffix)")
	cmd.Flags().BoolVar(&params.dryRun, "dry-run", false, "Validate and report without writing any files")
	cmd.Flags().IntVar(&params.workers, "workers", 0, "Parallel validation workers (default: from config, 0 = one per CPU)")
	cmd.Flags().StringVar(&params.encoding, "encoding", "", "Input encoding: auto, utf-8, utf-16le, utf-16be, or latin-1 (default: from config)")
	cmd.Flags().BoolVar(&params.noLedger, "no-ledger", false, "Skip recording this run in the ledger")

	return cmd
}

func runRepair(cmd *cobra.Command, cfg *config.Config, params repairParams) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	inputPath, err := config.ExpandPath(params.input)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	outputPath, err := resolveSidecarPath(params.output, inputPath, cfg.Repair.OutputSuffix)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	quarantinePath, err := resolveSidecarPath(params.quarantine, inputPath, cfg.Repair.QuarantineSuffix)
	if err != nil {
		return fmt.Errorf("resolve quarantine path: %w", err)
	}

	workers := params.workers
	if workers <= 0 {
		workers = cfg.Repair.Workers
	}
	encoding := strings.ToLower(strings.TrimSpace(params.encoding))
	if encoding == "" {
		encoding = cfg.Input.Encoding
	}
	recordRun := !params.noLedger && cfg.Ledger.Enabled

	checks := preflight.Checks{InputPath: inputPath}
	if !params.dryRun {
		checks.OutputDir = filepath.Dir(outputPath)
	}
	if recordRun {
		checks.LedgerDir = cfg.Paths.DataDir
	}
	results := preflight.RunAll(checks)
	for _, result := range results {
		logger.Debug("preflight check",
			logging.String("name", result.Name),
			logging.Bool("passed", result.Passed),
			logging.String("detail", result.Detail))
	}
	if failure, ok := preflight.FirstFailure(results); ok {
		return fmt.Errorf("preflight: %s %s", failure.Name, failure.Detail)
	}

	if !params.dryRun {
		outputLock := flock.New(outputPath + ".lock")
		locked, err := outputLock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire output lock: %w", err)
		}
		if !locked {
			return fmt.Errorf("another mendline repair is already writing %s", outputPath)
		}
		defer func() {
			_ = outputLock.Unlock()
		}()
	}

	runID := uuid.NewString()
	runLogger := logger.With(logging.String(logging.FieldRunID, runID))

	engine, err := repair.New(repair.Options{
		Workers:      workers,
		Window:       cfg.Repair.Window,
		MaxLineBytes: cfg.Repair.MaxLineBytes,
		Encoding:     encoding,
		Logger:       runLogger,
	})
	if err != nil {
		return err
	}

	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer inputFile.Close()

	reporterOpts := report.Options{Logger: runLogger}
	var outputFile *os.File
	if !params.dryRun {
		outputFile, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		reporterOpts.Output = outputFile
		reporterOpts.OpenQuarantine = func() (io.WriteCloser, error) {
			return os.Create(quarantinePath)
		}
	}
	reporter := report.NewReporter(reporterOpts)

	runLogger.Info("repair starting",
		logging.String(logging.FieldInput, inputPath),
		logging.String(logging.FieldOutput, outputLabel(params.dryRun, outputPath)),
		logging.String(logging.FieldQuarantine, outputLabel(params.dryRun, quarantinePath)),
		logging.String("encoding", encoding))

	started := time.Now()
	stats, runErr := engine.Run(signalCtx, inputFile, reporter)
	if closeErr := reporter.Close(); closeErr != nil && runErr == nil {
		runErr = repair.Wrap(repair.ErrFatalIO, "repair", "close", "", closeErr)
	}
	if outputFile != nil {
		if closeErr := outputFile.Close(); closeErr != nil && runErr == nil {
			runErr = fmt.Errorf("close output: %w", closeErr)
		}
	}
	finished := time.Now()
	interrupted := repair.Interrupted(runErr)

	if runErr != nil && !interrupted {
		// A fatal error leaves the committed prefix on disk; the stats
		// describe exactly that prefix.
		runLogger.Error("repair failed",
			logging.Error(runErr),
			logging.Int64("committed_lines", stats.TotalLines))
		return runErr
	}

	if recordRun {
		record := &ledger.Run{
			ID:          runID,
			InputPath:   inputPath,
			DryRun:      params.dryRun,
			Interrupted: interrupted,
			StartedAt:   started,
			FinishedAt:  finished,
			Stats:       stats,
		}
		if !params.dryRun {
			record.OutputPath = outputPath
			if reporter.QuarantineUsed() {
				record.QuarantinePath = quarantinePath
			}
		}
		// Recorded on a fresh context so an interrupt still leaves a row.
		if err := recordLedgerRun(cfg, record); err != nil {
			runLogger.Warn("record run", logging.Error(err))
		}
	}

	runLogger.Info("repair finished",
		logging.Int64("total", stats.TotalLines),
		logging.Int64("fixed", stats.FixedLines),
		logging.Int64("unrecoverable", stats.UnrecoverableLines),
		logging.Int64("objects", stats.ObjectsRecovered),
		logging.Bool("interrupted", interrupted),
		logging.Duration("duration", finished.Sub(started)))

	renderRunSummary(cmd.OutOrStdout(), runSummary{
		runID:          runID,
		input:          inputPath,
		output:         outputPath,
		quarantine:     quarantinePath,
		dryRun:         params.dryRun,
		interrupted:    interrupted,
		quarantineUsed: reporter.QuarantineUsed(),
		duration:       finished.Sub(started),
		stats:          stats,
		fixed:          reporter.FixedDetails(),
		unrecoverable:  reporter.UnrecoverableDetails(),
	})
	return runErr
}

func resolveSidecarPath(flagValue, inputPath, suffix string) (string, error) {
	trimmed := strings.TrimSpace(flagValue)
	if trimmed == "" {
		return fileutil.DerivePath(inputPath, suffix), nil
	}
	return config.ExpandPath(trimmed)
}

func recordLedgerRun(cfg *config.Config, record *ledger.Run) error {
	store, err := ledger.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordRun(context.Background(), record)
}

func outputLabel(dryRun bool, outputPath string) string {
	if dryRun {
		return "none (dry run)"
	}
	return outputPath
}
