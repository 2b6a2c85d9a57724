package webfetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"MediaScanner/internal/domain"
	"MediaScanner/internal/htmltext"
	"MediaScanner/internal/infrastructure/browser"
	"MediaScanner/internal/ports"
)

const renderWait = 20 * time.Second

// RenderedFetcher loads the page in a headless browser, waits for the
// body to render, then cleans the markup and harvests its links. The
// resulting content augments cleaned text with the link list, which is
// what structured extraction consumes.
type RenderedFetcher struct {
	userAgent string
	logger    *slog.Logger
}

var _ ports.PageFetcher = (*RenderedFetcher)(nil)

// NewRenderedFetcher builds the browser-backed strategy.
func NewRenderedFetcher(log *slog.Logger) *RenderedFetcher {
	return &RenderedFetcher{userAgent: defaultUserAgent, logger: log}
}

// Fetch renders the page and returns cleaned text plus harvested links.
// The browser session is torn down on every exit path.
func (f *RenderedFetcher) Fetch(ctx context.Context, url string) (domain.PageContent, error) {
	if err := ctx.Err(); err != nil {
		return domain.PageContent{}, err
	}

	sess, err := browser.Open(browser.Options{UserAgent: f.userAgent})
	if err != nil {
		return domain.PageContent{}, fmt.Errorf("open session: %w", err)
	}
	defer sess.Close()

	if err := sess.Navigate(url, renderWait); err != nil {
		return domain.PageContent{}, err
	}
	if err := sess.WaitForBodyText(renderWait); err != nil {
		return domain.PageContent{}, err
	}

	markup, err := sess.PageSource()
	if err != nil {
		return domain.PageContent{}, err
	}

	content := domain.PageContent{
		URL:   url,
		Text:  htmltext.Clean(markup),
		Links: htmltext.Links(markup, url),
	}
	if f.logger != nil {
		f.logger.Debug("rendered fetch done", "url", url, "chars", len(content.Text), "links", len(content.Links))
	}
	return content, nil
}
