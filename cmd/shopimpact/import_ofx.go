package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/shopimpact/internal/cli"
	"github.com/Veraticus/shopimpact/internal/importer"
	"github.com/Veraticus/shopimpact/internal/ofx"
)

var errNoFiles = errors.New("no files found to import")

func newImportOFXCmd() *cobra.Command {
	var (
		category string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Log purchases from OFX/QFX statements",
		Long: `Log the debits of OFX or QFX (Quicken) statements exported from your bank.
Each debit becomes a purchase whose category is the payee name, unless
--category is given. Purchases are stamped with the import time.

Examples:
  # Import single file
  shopimpact import-ofx ~/Downloads/card_jan.qfx

  # Import all QFX files in a directory, all as groceries
  shopimpact import-ofx ~/Downloads/*.qfx --category Groceries`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			parser := ofx.NewParser(slog.Default())
			var debits []ofx.Debit
			for _, path := range files {
				found, err := parseOFXFile(cmd, parser, path)
				if err != nil {
					slog.Error("Failed to parse OFX file", "file", path, "error", err)
					continue
				}
				slog.Info("Processed file", "file", filepath.Base(path), "debits", len(found))
				debits = append(debits, found...)
			}

			unique := ofx.Dedupe(debits)
			if dup := len(debits) - len(unique); dup > 0 {
				slog.Info("Dropped duplicate transactions", "count", dup)
			}
			if len(unique) == 0 {
				fmt.Fprintln(out, cli.FormatWarning("No debits found in any file"))
				return nil
			}

			rows := importer.FromDebits(unique, category)
			if dryRun {
				fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Would log %d purchases", len(rows))))
				for _, row := range rows {
					fmt.Fprintf(out, "  %-30s %10s  %s\n", row.Category, cli.FormatMoney(row.Price), row.Source)
				}
				return nil
			}

			tr, cleanup, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := replayRows(ctx, out, tr, rows)
			printReport(out, report)
			return err
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "log every debit under this category instead of the payee")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview import without saving")

	return cmd
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, errNoFiles
	}
	return files, nil
}

func parseOFXFile(cmd *cobra.Command, parser *ofx.Parser, path string) ([]ofx.Debit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parser.ParseDebits(cmd.Context(), f)
}
