package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/shopimpact/internal/cli"
	"github.com/Veraticus/shopimpact/internal/common"
	"github.com/Veraticus/shopimpact/internal/config"
	"github.com/Veraticus/shopimpact/internal/service"
	"github.com/Veraticus/shopimpact/internal/sheets"
)

// newReportWriter builds the export destination. Tests replace it.
var newReportWriter = func(ctx context.Context) (service.ReportWriter, error) {
	cfg, err := config.LoadSheetsConfig()
	if err != nil {
		return nil, common.NewUserError("Google Sheets is not configured. Set sheets.service_account_path or the OAuth keys in your config", err)
	}
	return sheets.NewWriter(ctx, *cfg, slog.Default())
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export your footprint report to Google Sheets",
		Long: `Write a report to Google Sheets: totals, this month's progress, the category
breakdown, your badges and every purchase.

Configure either a service account (sheets.service_account_path) or OAuth
credentials (sheets.client_id, sheets.client_secret, sheets.refresh_token).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tr, cleanup, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			writer, err := newReportWriter(ctx)
			if err != nil {
				return err
			}

			history := tr.History()
			if err := writer.Write(ctx, tr.Summary(time.Now()), history); err != nil {
				return fmt.Errorf("failed to export report: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d purchases to Google Sheets", len(history))))
			return nil
		},
	}
}
