package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/Veraticus/shopimpact/internal/common"
	"github.com/Veraticus/shopimpact/internal/impact"
	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/Veraticus/shopimpact/internal/service"
	"github.com/Veraticus/shopimpact/internal/tracker"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	reportTitle = "ShopImpact Footprint Report"
	sheetTitle  = "Footprint"
	dateLayout  = "2006-01-02 15:04"
)

// Writer replaces one tab of a spreadsheet with the footprint report.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

var _ service.ReportWriter = (*Writer)(nil)

// NewWriter authenticates with the configured credentials.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newWriter(config, srv, logger), nil
}

func newWriter(config Config, srv *sheets.Service, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}
}

// Write replaces the contents of the report sheet with summary and purchases.
func (w *Writer) Write(ctx context.Context, summary tracker.Summary, purchases []model.Purchase) error {
	w.logger.Info("Exporting report", "purchases", len(purchases), "badges", len(summary.Badges))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if clearErr := w.clearSheet(ctx, spreadsheetID); clearErr != nil {
		return fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	values := prepareReportData(summary, purchases)

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return classifyAPIError(w.writeData(ctx, spreadsheetID, values))
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return classifyAPIError(w.applyFormatting(ctx, spreadsheetID, len(values)))
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("Failed to format report", "error", err)
		}
	}

	w.logger.Info("Report exported", "spreadsheet_id", spreadsheetID, "rows", len(values))

	return nil
}

// classifyAPIError maps quota errors to common.ErrRateLimit and other client
// errors to permanent failures so retries only repeat what can succeed.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return common.Permanent(err)
	default:
		return err
	}
}

func tokenSource(ctx context.Context, config Config) (oauth2.TokenSource, error) {
	if config.Auth() == AuthServiceAccount {
		key, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account key: %w", err)
		}
		jwt, err := google.JWTConfigFromJSON(key, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service account key: %w", err)
		}
		return jwt.TokenSource(ctx), nil
	}

	oauthConfig := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
	return oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: config.RefreshToken}), nil
}

func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	ts, err := tokenSource(ctx, config)
	if err != nil {
		return nil, err
	}
	return sheets.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
}

// getOrCreateSpreadsheet returns the configured spreadsheet, checking that it
// is reachable, or creates a new one with a single report tab.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if id := w.config.SpreadsheetID; id != "" {
		if _, err := w.service.Spreadsheets.Get(id).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("spreadsheet %s is not accessible: %w", id, err)
		}
		return id, nil
	}

	created, err := w.service.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{{Properties: &sheets.SheetProperties{Title: sheetTitle}}},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet %q: %w", w.config.SpreadsheetName, err)
	}

	w.logger.Info("Created spreadsheet", "id", created.SpreadsheetId, "url", created.SpreadsheetUrl)
	return created.SpreadsheetId, nil
}

func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.
		Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return err
}

// prepareReportData lays out the summary, category breakdown, badges and
// purchase details as rows. Purchases are listed newest first.
func prepareReportData(summary tracker.Summary, purchases []model.Purchase) [][]any {
	estimatedRows := 24 + len(summary.Categories) + len(summary.Badges) + len(purchases)
	values := make([][]any, 0, estimatedRows)

	values = append(values,
		[]any{reportTitle, "Generated " + summary.GeneratedAt.UTC().Format(dateLayout) + " UTC"},
		[]any{},
		[]any{"Summary"},
		[]any{"Name", summary.Name},
		[]any{"Member Since", summary.JoinedDate.UTC().Format("2006-01-02")},
		[]any{"Purchases", summary.Purchases},
		[]any{"Total Spend", summary.TotalSpend},
		[]any{"Total CO2 (kg)", summary.TotalCO2},
		[]any{"Eco Purchases", summary.EcoCount},
		[]any{"Eco Share", summary.EcoShare},
		[]any{"Month Spend", summary.MonthSpend, "Budget", summary.MonthlyBudget},
		[]any{"Month CO2 (kg)", summary.MonthCO2, "Goal", summary.CO2Goal},
		[]any{},
		[]any{"Category Breakdown"},
		[]any{"Category", "Count", "Spend", "CO2 (kg)", "Eco"},
	)

	for _, c := range summary.Categories {
		values = append(values, []any{c.Category, c.Count, c.Spend, c.CO2, yesNo(c.Eco)})
	}

	values = append(values,
		[]any{},
		[]any{"Badges", fmt.Sprintf("%d of %d", len(summary.Badges), summary.BadgesTotal)},
		[]any{"Badge", "Name", "Rarity", "Description"},
	)
	for _, b := range summary.Badges {
		values = append(values, []any{b.Icon, b.Name, string(b.Rarity), b.Description})
	}

	values = append(values,
		[]any{},
		[]any{},
		[]any{"Purchase Details"},
		[]any{"Date", "Category", "Brand", "Price", "CO2 (kg)", "Multiplier"},
	)

	sorted := slices.Clone(purchases)
	slices.SortStableFunc(sorted, func(a, b model.Purchase) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	for _, p := range sorted {
		values = append(values, []any{
			p.Timestamp.UTC().Format(dateLayout),
			p.Category,
			p.Brand,
			p.Price,
			p.CO2Impact,
			impact.Multiplier(p.Category),
		})
	}

	return values
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// writeData sends values in chunks of BatchSize rows.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	row := 1
	for chunk := range slices.Chunk(values, w.config.BatchSize) {
		_, err := w.service.Spreadsheets.Values.
			Update(spreadsheetID, fmt.Sprintf("A%d", row), &sheets.ValueRange{Values: chunk}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write rows %d-%d: %w", row, row+len(chunk)-1, err)
		}
		w.logger.Debug("Wrote rows", "from", row, "count", len(chunk))
		row += len(chunk)
	}
	return nil
}

func boldCells(startRow, endRow, startCol, endCol int64, fontSize int64) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				StartRowIndex:    startRow,
				EndRowIndex:      endRow,
				StartColumnIndex: startCol,
				EndColumnIndex:   endCol,
			},
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					TextFormat: &sheets.TextFormat{Bold: true, FontSize: fontSize},
				},
			},
			Fields: "userEnteredFormat.textFormat",
		},
	}
}

// applyFormatting makes the title large, the label column bold, sizes the
// columns to fit and pins the title row.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, totalRows int) error {
	requests := []*sheets.Request{
		boldCells(0, 1, 0, 2, 16),
		boldCells(2, int64(totalRows), 0, 1, 0),
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{Dimension: "COLUMNS", EndIndex: 6},
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	_, err := w.service.Spreadsheets.
		BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).
		Context(ctx).
		Do()
	return err
}
