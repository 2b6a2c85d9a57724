// Package webfetch retrieves page content by either of two strategies:
// a plain HTTP GET for static pages or a headless browser session for
// pages that only materialize after rendering.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"MediaScanner/internal/domain"
	"MediaScanner/internal/htmltext"
	"MediaScanner/internal/ports"
)

// defaultUserAgent mimics a desktop Chrome so sites serve their normal
// markup rather than a bot page.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// StaticFetcher issues a plain GET and cleans the response body.
type StaticFetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

var _ ports.PageFetcher = (*StaticFetcher)(nil)

// NewStaticFetcher wires an HTTP client; a nil client gets a 15s timeout.
func NewStaticFetcher(client *http.Client, log *slog.Logger) *StaticFetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &StaticFetcher{client: client, userAgent: defaultUserAgent, logger: log}
}

// Fetch downloads the page and returns its cleaned text. No links are
// harvested on this path; static fetches feed summarization, not
// structured extraction.
func (f *StaticFetcher) Fetch(ctx context.Context, url string) (domain.PageContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.PageContent{}, fmt.Errorf("build request: %w: %w", domain.ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.PageContent{}, fmt.Errorf("get %s: %w: %w", url, domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.PageContent{}, fmt.Errorf("get %s: status %s: %w", url, resp.Status, domain.ErrFetch)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.PageContent{}, fmt.Errorf("read %s: %w: %w", url, domain.ErrFetch, err)
	}

	text := htmltext.Clean(string(body))
	if f.logger != nil {
		f.logger.Debug("static fetch done", "url", url, "chars", len(text))
	}
	return domain.PageContent{URL: url, Text: text}, nil
}
