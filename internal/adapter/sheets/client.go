package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client reads the balance spreadsheet through the Google Sheets API and
// renders it as the same CSV text the published export would return.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
	logger        *slog.Logger
}

// NewClient creates a Sheets API client. Callers normally pass
// option.WithCredentialsFile.
func NewClient(ctx context.Context, spreadsheetID, readRange string, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		logger:        logger,
	}, nil
}

// Name identifies the source in logs and metrics.
func (c *Client) Name() string { return "sheets" }

// FetchCSV reads the configured range and returns it as CSV text.
func (c *Client) FetchCSV(ctx context.Context) (string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("read sheet: %w", err)
	}

	c.logger.Debug("sheet values read", "range", resp.Range, "rows", len(resp.Values))
	return ValuesToCSV(resp.Values), nil
}

// ValuesToCSV renders a Sheets value grid as CSV text with a header line.
// The API omits trailing empty cells, so shorter rows are padded to the
// header width. Cells containing a comma are quoted; quotes and line breaks
// inside cells are dropped because the export parser has no escapes.
func ValuesToCSV(values [][]interface{}) string {
	if len(values) == 0 {
		return ""
	}

	width := len(values[0])
	var b strings.Builder
	for i, row := range values {
		if i > 0 {
			b.WriteByte('\n')
		}
		n := len(row)
		if n < width {
			n = width
		}
		for j := 0; j < n; j++ {
			if j > 0 {
				b.WriteByte(',')
			}
			if j < len(row) {
				b.WriteString(csvCell(row[j]))
			}
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func csvCell(v interface{}) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%v", v)
	s = strings.NewReplacer(`"`, "", "\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	if strings.Contains(s, ",") {
		return `"` + s + `"`
	}
	return s
}
