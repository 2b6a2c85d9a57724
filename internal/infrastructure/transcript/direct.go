// Package transcript retrieves YouTube transcripts by either of two
// interchangeable strategies: the caption service keyed by video id, or
// browser automation of a third-party transcript tool.
package transcript

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"MediaScanner/internal/domain"
	"MediaScanner/internal/ports"
)

const defaultTimedTextURL = "https://video.google.com/timedtext"

// VideoID extracts the video identifier from the two canonical URL
// shapes: watch?v=ID and the youtu.be short link.
func VideoID(videoURL string) (string, error) {
	parsed, err := url.Parse(videoURL)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", videoURL, domain.ErrInvalidURL)
	}

	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if parsed.Path == "/watch" {
			if id := parsed.Query().Get("v"); id != "" {
				return id, nil
			}
		}
	case "youtu.be":
		if id := strings.Trim(parsed.Path, "/"); id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("no video id in %s: %w", videoURL, domain.ErrInvalidURL)
}

// DirectProvider fetches caption tracks from the no-key timed-text
// endpoint and flattens them into one transcript string.
type DirectProvider struct {
	client   *http.Client
	baseURL  string
	language string
	logger   *slog.Logger
}

var _ ports.TranscriptProvider = (*DirectProvider)(nil)

// NewDirectProvider wires an HTTP client; a nil client gets a 15s timeout.
func NewDirectProvider(client *http.Client, log *slog.Logger) *DirectProvider {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &DirectProvider{
		client:   client,
		baseURL:  defaultTimedTextURL,
		language: "en",
		logger:   log,
	}
}

type timedText struct {
	Segments []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// Transcript resolves the video id and fetches its caption track.
// A missing or disabled track is ErrNotAvailable, not a fatal failure.
func (p *DirectProvider) Transcript(ctx context.Context, videoURL string) (string, error) {
	id, err := VideoID(videoURL)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s?lang=%s&v=%s", p.baseURL, url.QueryEscape(p.language), url.QueryEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch captions for %s: %w: %w", id, domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("video %s: %w", id, domain.ErrNotAvailable)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch captions for %s: status %s: %w", id, resp.Status, domain.ErrFetch)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read captions for %s: %w", id, err)
	}
	// The endpoint answers 200 with an empty body when no track exists.
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", fmt.Errorf("video %s: %w", id, domain.ErrNotAvailable)
	}

	var track timedText
	if err := xml.Unmarshal(body, &track); err != nil {
		return "", fmt.Errorf("decode captions for %s: %w", id, err)
	}
	if len(track.Segments) == 0 {
		return "", fmt.Errorf("video %s: %w", id, domain.ErrNotAvailable)
	}

	parts := make([]string, 0, len(track.Segments))
	for _, seg := range track.Segments {
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}
	if p.logger != nil {
		p.logger.Debug("transcript fetched", "video", id, "segments", len(parts))
	}
	return strings.Join(parts, " "), nil
}
