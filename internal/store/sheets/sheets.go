// Package sheets mirrors the ledger into a Google Spreadsheet: one
// row per transaction on a per-owner tab. The sync worker writes here
// after every commit; the ledger of record stays local.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"tally/internal/core"
	"tally/internal/store"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var (
	_ store.TransactionWriter = (*Client)(nil)
	_ store.TransactionReader = (*Client)(nil)
)

// NewFromEnv creates a Sheets client from the environment.
// Required: GOOGLE_SPREADSHEET_ID.
// Auth: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME (default "Transactions").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Transactions"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
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

	return gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
}

// Create appends one row. The transaction must already carry the id
// assigned by the local store so the mirror shares identifiers.
func (c *Client) Create(ctx context.Context, owner string, tx core.Transaction) (string, error) {
	if tx.ID == "" {
		return "", store.ErrMissingID
	}
	vr := &gsheet.ValueRange{Values: [][]any{rowOf(owner, tx)}}
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.sheetName+"!A:J", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append row: %w", err)
	}
	return tx.ID, nil
}

// Update locates the row carrying the transaction's id and rewrites it.
func (c *Client) Update(ctx context.Context, owner string, tx core.Transaction) error {
	if tx.ID == "" {
		return store.ErrMissingID
	}
	rowIdx, err := c.findRow(ctx, tx.ID)
	if err != nil {
		return err
	}
	rng := fmt.Sprintf("%s!A%d:J%d", c.sheetName, rowIdx, rowIdx)
	vr := &gsheet.ValueRange{Values: [][]any{rowOf(owner, tx)}}
	_, err = c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update row: %w", err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, owner, id string) (core.Transaction, error) {
	rows, err := c.readAll(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	for _, row := range rows {
		tx, rowOwner, err := transactionOf(row)
		if err != nil {
			continue
		}
		if tx.ID == id && rowOwner == owner {
			return tx, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("get %q: %w", id, store.ErrNotFound)
}

func (c *Client) ListAll(ctx context.Context, owner string) ([]core.Transaction, error) {
	rows, err := c.readAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.Transaction
	for _, row := range rows {
		tx, rowOwner, err := transactionOf(row)
		if err != nil || rowOwner != owner {
			continue
		}
		out = append(out, tx)
	}
	sortNewestFirst(out)
	return out, nil
}

func (c *Client) readAll(ctx context.Context) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, c.sheetName+"!A:J").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	return resp.Values, nil
}

// findRow returns the 1-based sheet row holding the id.
func (c *Client) findRow(ctx context.Context, id string) (int, error) {
	rows, err := c.readAll(ctx)
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if len(row) > 0 && fmt.Sprint(row[0]) == id {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("find row %q: %w", id, store.ErrNotFound)
}
