package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// ShapeSource reads the parcel map SVG from a local file or an http(s) URL.
type ShapeSource struct {
	location   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewShapeSource creates a source for location, which is either a file path
// or an http(s) URL.
func NewShapeSource(location string, timeout time.Duration, logger *slog.Logger) *ShapeSource {
	return &ShapeSource{
		location:   location,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchSVG returns the raw SVG document.
func (s *ShapeSource) FetchSVG(ctx context.Context) ([]byte, error) {
	if !isURL(s.location) {
		data, err := os.ReadFile(s.location)
		if err != nil {
			return nil, fmt.Errorf("read map svg: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("map svg request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("map svg error: status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read map svg body: %w", err)
	}
	s.logger.Debug("map svg fetched", "bytes", len(data))
	return data, nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
