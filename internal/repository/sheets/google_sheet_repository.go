package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/vebops/store/internal/config"
	"github.com/vebops/store/internal/domain/models"
)

const archiveRange = "DailyBalances!A:F"

// Archive appends daily balance report rows to a spreadsheet kept outside
// the system for the site accountants.
type Archive interface {
	AppendReport(ctx context.Context, report models.DailyBalanceReport) error
}

// GoogleSheetArchive implements the Archive interface using the official
// Google Sheets API.
type GoogleSheetArchive struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetArchive builds a Google Sheets backed archive instance.
func NewGoogleSheetArchive(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Archive, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetArchive{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendReport writes one row per project summary plus a totals header row.
func (a *GoogleSheetArchive) AppendReport(ctx context.Context, report models.DailyBalanceReport) error {
	date := report.Date.Format("2006-01-02")

	rows := [][]interface{}{
		{date, "TOTAL", report.ProjectCount, report.RowCount, report.SkippedLines, ""},
	}
	for _, p := range report.Projects {
		rows = append(rows, []interface{}{
			date,
			p.ProjectCode,
			p.MaterialCount,
			p.TotalReceived.String(),
			p.TotalIssued.String(),
			p.NegativeRows,
		})
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := a.service.Spreadsheets.Values.Append(a.spreadsheetID, archiveRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append report rows into range %s: %w", archiveRange, err)
	}

	a.logger.Debug("daily report appended to archive sheet",
		zap.String("date", date),
		zap.Int("rows", len(rows)))
	return nil
}
