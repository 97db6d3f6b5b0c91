package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mendline/internal/ledger"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect and manage recorded repair runs",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsClearCommand(ctx))

	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent repair runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLedger(func(store *ledger.Store) error {
				runs, err := store.RecentRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
					return nil
				}
				table := renderTable(
					[]string{"Run", "Started", "Input", "Total", "Fixed", "Unrecoverable", "Duration", "Notes"},
					buildRunRows(runs),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of runs to show (default 20)")
	return cmd
}

func newRunsClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLedger(func(store *ledger.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d runs\n", removed)
				return nil
			})
		},
	}
}

func buildRunRows(runs []*ledger.Run) [][]string {
	printer := message.NewPrinter(language.English)
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortRunID(run.ID),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.InputPath,
			printer.Sprintf("%d", run.Stats.TotalLines),
			printer.Sprintf("%d", run.Stats.FixedLines),
			printer.Sprintf("%d", run.Stats.UnrecoverableLines),
			run.Duration().Round(time.Millisecond).String(),
			runNotes(run),
		})
	}
	return rows
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runNotes(run *ledger.Run) string {
	var notes []string
	if run.DryRun {
		notes = append(notes, "dry-run")
	}
	if run.Interrupted {
		notes = append(notes, "interrupted")
	}
	return strings.Join(notes, ", ")
}
