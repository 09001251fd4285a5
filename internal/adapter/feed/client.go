package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// maxErrorBody caps how much of a failed response is quoted in the error.
const maxErrorBody = 512

// Client fetches the published CSV export of the balance spreadsheet.
type Client struct {
	url        string
	charset    encoding.Encoding // nil for UTF-8
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a CSV feed client. charset is one of the names accepted
// by config.Load; anything unrecognized is read as UTF-8.
func NewClient(url, charset string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:     url,
		charset: decoderFor(charset),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Name identifies the source in logs and metrics.
func (c *Client) Name() string { return "feed" }

// FetchCSV downloads the export and returns it as UTF-8 text. Any status
// other than 200 is an error.
func (c *Client) FetchCSV(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("feed error: status %d: %s", resp.StatusCode, body)
	}

	var r io.Reader = resp.Body
	if c.charset != nil {
		r = transform.NewReader(r, c.charset.NewDecoder())
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read feed body: %w", err)
	}

	c.logger.Debug("feed fetched", "bytes", len(data), "content_type", resp.Header.Get("Content-Type"))
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

func decoderFor(charset string) encoding.Encoding {
	switch strings.ToLower(charset) {
	case "windows-1251", "cp1251":
		return charmap.Windows1251
	case "koi8-r":
		return charmap.KOI8R
	default:
		return nil
	}
}
