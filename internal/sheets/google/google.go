package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"spendview/internal/core"
	ports "spendview/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client reads worksheets through the Google Sheets API using a
// service-account credential. It only ever issues reads.
type Client struct {
	svc *gsheet.Service
}

// Ensure interface conformance
var _ ports.WorksheetReader = (*Client)(nil)

// NewFromEnv creates a Sheets client authenticated with the service-account
// credential supplied by the hosting platform. One of
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS must be set. The credential is consumed for
// authentication only; it is never persisted and never logged.
func NewFromEnv(ctx context.Context) (*Client, error) {
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	// Also honor the standard Google Cloud environment variable.
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	// Log only the shape of the credential, never its content.
	slog.InfoContext(ctx, "Creating Google Sheets service",
		"credentials_size", len(credentialsJSON),
		"from_file", serviceAccountFile != "",
		"scope", gsheet.SpreadsheetsReadonlyScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadWorksheet fetches the full grid of one worksheet and parses it into a
// RowSet. Passing the bare worksheet name as the range returns every used
// cell, so no row/column bounds need to be guessed.
func (c *Client) ReadWorksheet(ctx context.Context, ref core.SheetRef) (core.RowSet, error) {
	if c.svc == nil {
		return core.RowSet{}, errors.New("sheets service not initialized")
	}
	if err := ref.Validate(); err != nil {
		return core.RowSet{}, err
	}

	rng := quoteSheetName(ref.Worksheet)
	resp, err := c.svc.Spreadsheets.Values.Get(ref.SpreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return core.RowSet{}, classifyError(err, ref)
	}

	rs, err := parseGrid(resp.Values)
	if err != nil {
		return core.RowSet{}, fmt.Errorf("parse worksheet %s: %w", ref.Worksheet, err)
	}
	return rs, nil
}

// quoteSheetName wraps names containing spaces or leading digits in single
// quotes so they form a valid A1 range ("'History Transactions'").
func quoteSheetName(name string) string {
	if strings.ContainsAny(name, " !'") {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return name
}
