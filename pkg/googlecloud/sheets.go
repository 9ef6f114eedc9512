package googlecloud

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// valueInputRaw stores values verbatim instead of parsing them as if typed by a user.
const valueInputRaw = "RAW"

// SheetsClient reads and writes cell values through the Google Sheets API.
type SheetsClient struct {
	svc *sheets.Service
}

// NewSheetsClientFromJSON authenticates with a service-account key scoped for spreadsheet read/write.
func NewSheetsClientFromJSON(ctx context.Context, credentialsJSON []byte) (*SheetsClient, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	return NewSheetsClient(ctx, option.WithCredentials(creds))
}

// NewSheetsClient creates a Sheets client from arbitrary client options.
func NewSheetsClient(ctx context.Context, opts ...option.ClientOption) (*SheetsClient, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsClient{svc: svc}, nil
}

// ReadRange returns the cells of rng as strings. Trailing empty cells are not returned by the API,
// so rows may be shorter than the requested width.
func (c *SheetsClient) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from spreadsheet %s: %w", rng, spreadsheetID, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			if s, ok := cell.(string); ok {
				rows[i][j] = s
				continue
			}
			rows[i][j] = fmt.Sprint(cell)
		}
	}
	return rows, nil
}

// WriteRange overwrites rng with values using RAW input.
func (c *SheetsClient) WriteRange(ctx context.Context, spreadsheetID, rng string, values [][]string) error {
	body := &sheets.ValueRange{
		Range:          rng,
		MajorDimension: "ROWS",
		Values:         make([][]interface{}, len(values)),
	}
	for i, row := range values {
		body.Values[i] = make([]interface{}, len(row))
		for j, cell := range row {
			body.Values[i][j] = cell
		}
	}

	_, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, rng, body).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write %s to spreadsheet %s: %w", rng, spreadsheetID, err)
	}
	return nil
}
