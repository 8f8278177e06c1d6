package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/shopimpact/internal/cli"
	"github.com/Veraticus/shopimpact/internal/importer"
	"github.com/Veraticus/shopimpact/internal/tracker"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Log purchases from a CSV file",
		Long: `Log every row of a CSV file as a purchase, in file order. Each row goes
through the same estimate and badge pass as 'shopimpact log'.

Columns are category, brand and price. A header row naming them may appear in
any order; lines starting with '#' are ignored. Invalid rows are skipped.

Example:
  category,brand,price
  Books (Used),Goodwill,100
  Electronics,Acme,899.99`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			rows, rejected, err := importer.ReadCSV(f)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			for _, rowErr := range rejected {
				slog.Warn("Skipping invalid row", "file", args[0], "line", rowErr.Line, "error", rowErr.Err)
			}

			tr, cleanup, err := initTracker(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := replayRows(cmd.Context(), cmd.OutOrStdout(), tr, rows)
			report.Rejected = append(rejected, report.Rejected...)
			printReport(cmd.OutOrStdout(), report)
			return err
		},
	}
}

// replayRows records rows with a progress bar. An interrupt stops the replay;
// rows recorded before it are already saved.
func replayRows(ctx context.Context, out io.Writer, tr *tracker.Tracker, rows []importer.Row) (importer.Report, error) {
	if len(rows) == 0 {
		return importer.Report{}, nil
	}

	ctx, interrupt := cli.WatchInterrupts(ctx, out, "Import", "Purchases logged before the interrupt are saved.")
	defer interrupt.Stop()

	bar := cli.NewProgressBar(out, len(rows), "Logging purchases")
	replayer := importer.NewReplayer(tr, slog.Default())
	replayer.OnRow(func(importer.Row, *tracker.Outcome, error) {
		_ = bar.Add(1)
	})

	report, err := replayer.Replay(ctx, rows)
	_ = bar.Finish()
	fmt.Fprintln(out)

	if err != nil && interrupt.Fired() {
		return report, nil
	}
	return report, err
}

func printReport(w io.Writer, report importer.Report) {
	fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Logged %d purchases", report.Recorded)))
	if n := len(report.Rejected); n > 0 {
		fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("Skipped %d invalid rows", n)))
	}
	if report.PersistErr != nil {
		fmt.Fprintln(w, cli.FormatWarning("Some purchases could not be saved: "+report.PersistErr.Error()))
	}
	for _, b := range report.Unlocked {
		fmt.Fprintln(w, cli.FormatUnlock(b))
	}
}
