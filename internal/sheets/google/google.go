package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"budget/internal/core"
	"budget/internal/log"
	ports "budget/internal/sheets"
)

// header is written when a yearly archive sheet is empty.
var header = []any{"Month", "Name", "Income", "Expenses", "Balance", "Budget %", "Transactions", "Archived At"}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	// Base name without year (e.g. "Archive"); the snapshot year is prefixed.
	sheetBase string
	logger    *log.Logger
}

var _ ports.SnapshotExporter = (*Client)(nil)

// Options configures New. Credentials come from ServiceAccountJSON, then
// ServiceAccountFile, then GOOGLE_APPLICATION_CREDENTIALS.
type Options struct {
	SpreadsheetID      string
	SheetName          string
	ServiceAccountJSON string
	ServiceAccountFile string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	spreadsheetID := strings.TrimSpace(opts.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx, opts.ServiceAccountJSON, opts.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return NewWithService(svc, spreadsheetID, opts.SheetName), nil
}

// NewWithService wraps an already configured service.
func NewWithService(svc *gsheet.Service, spreadsheetID, sheetBase string) *Client {
	sheetBase = strings.TrimSpace(sheetBase)
	if sheetBase == "" {
		sheetBase = "Archive"
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetBase:     sheetBase,
		logger:        log.ForComponent(log.ComponentSheets),
	}
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, serviceAccountJSON, serviceAccountFile string) (*gsheet.Service, error) {
	serviceAccountJSON = strings.TrimSpace(serviceAccountJSON)
	serviceAccountFile = strings.TrimSpace(serviceAccountFile)
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ExportSnapshot writes one summary row for snap into "<year> <base>".
// A row already holding the month is overwritten in place.
func (c *Client) ExportSnapshot(ctx context.Context, snap core.MonthlySnapshot) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if err := core.ValidateMonthKey(snap.Month); err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}

	sheet := c.sheetName(snap)
	rng := fmt.Sprintf("%s!A:A", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read %s: %w", rng, err)
	}

	row := snapshotRow(snap)
	if n := findMonthRow(resp.Values, snap.Month); n > 0 {
		target := fmt.Sprintf("%s!A%d:H%d", sheet, n, n)
		vr := &gsheet.ValueRange{Values: [][]any{row}}
		if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, target, vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
			return fmt.Errorf("update %s: %w", target, err)
		}
		c.logger.InfoContext(ctx, "Updated archived month in sheet",
			log.FieldMonth, snap.Month, "sheet", sheet, "row", n)
		return nil
	}

	values := [][]any{row}
	if len(resp.Values) == 0 {
		values = [][]any{header, row}
	}
	vr := &gsheet.ValueRange{Values: values}
	if _, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, fmt.Sprintf("%s!A:H", sheet), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("append to %s: %w", sheet, err)
	}

	c.logger.InfoContext(ctx, "Appended archived month to sheet",
		log.FieldMonth, snap.Month, "sheet", sheet, log.FieldCount, len(snap.Transactions))
	return nil
}

func (c *Client) sheetName(snap core.MonthlySnapshot) string {
	year := snap.Year
	if year == 0 {
		if t, err := core.ParseMonthKey(snap.Month); err == nil {
			year = t.Year()
		}
	}
	return yearPrefixedName(c.sheetBase, year)
}

func snapshotRow(snap core.MonthlySnapshot) []any {
	archivedAt := ""
	if !snap.ArchivedAt.IsZero() {
		archivedAt = snap.ArchivedAt.Format("2006-01-02 15:04:05")
	}
	return []any{
		snap.Month,
		snap.MonthName,
		snap.TotalIncome.Decimal().InexactFloat64(),
		snap.TotalExpenses.Decimal().InexactFloat64(),
		snap.TotalBalance.Decimal().InexactFloat64(),
		snap.BudgetUtilization,
		len(snap.Transactions),
		archivedAt,
	}
}

// findMonthRow returns the 1-based row whose first cell is month, or 0.
func findMonthRow(values [][]any, month string) int {
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == month {
			return i + 1
		}
	}
	return 0
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
