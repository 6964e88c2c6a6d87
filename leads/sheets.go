// Package leads appends captured leads to a Google Sheets spreadsheet.
package leads

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/rankscore-ai/rankscore/config"
)

// Sink appends (email, url, timestamp) rows to the configured sheet. A nil
// Sink means lead capture is not configured; callers skip it.
type Sink struct {
	svc           *sheets.Service
	spreadsheetID string
	appendRange   string
}

// New builds a Sink from a service-account credentials file. Returns nil
// (not an error) when no spreadsheet is configured.
func New(ctx context.Context, cfg config.LeadsConfig) (*Sink, error) {
	if cfg.SpreadsheetID == "" {
		return nil, nil
	}

	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("leads: create sheets service: %w", err)
	}

	return &Sink{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		appendRange:   cfg.Range,
	}, nil
}

// Append writes one lead row.
func (s *Sink) Append(ctx context.Context, email, url string, when time.Time) error {
	row := &sheets.ValueRange{
		Values: [][]any{{email, url, when.UTC().Format(time.RFC3339)}},
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.appendRange, row).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("leads: append row: %w", err)
	}
	return nil
}
