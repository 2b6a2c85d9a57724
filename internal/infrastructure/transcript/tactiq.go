package transcript

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"MediaScanner/internal/infrastructure/browser"
	"MediaScanner/internal/ports"
)

// Fixed workflow of the Tactiq transcript tool.
const (
	tactiqToolURL     = "https://tactiq.io/tools/youtube-transcript"
	tactiqInput       = "#yt-2"
	tactiqSubmit      = "input[value='Get Video Transcript']"
	tactiqResultGlob  = "**/run/youtube_transcript*"
	tactiqResult      = "#transcript"
	tactiqLoadWait    = 60 * time.Second
	tactiqClickWait   = 10 * time.Second
	tactiqNavWait     = 20 * time.Second
	tactiqResultWait  = 30 * time.Second
	tactiqContentWait = 10 * time.Second
)

const tactiqUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/115.0"

var timestampExpr = regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{3}\s*`)

// TactiqProvider drives the Tactiq web tool in a headless browser and
// scrapes the rendered transcript. It needs no API access at all, at
// the cost of a full browser session per video.
type TactiqProvider struct {
	logger *slog.Logger
}

var _ ports.TranscriptProvider = (*TactiqProvider)(nil)

// NewTactiqProvider builds the automation strategy.
func NewTactiqProvider(log *slog.Logger) *TactiqProvider {
	return &TactiqProvider{logger: log}
}

// Transcript walks the fixed tool workflow: load the tool page, submit
// the video URL, wait for the result page, read the transcript
// container, strip timestamps. The session closes on every exit path.
func (p *TactiqProvider) Transcript(ctx context.Context, videoURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sess, err := browser.Open(browser.Options{UserAgent: tactiqUserAgent})
	if err != nil {
		return "", err
	}
	defer sess.Close()

	if err := sess.Navigate(tactiqToolURL, tactiqLoadWait); err != nil {
		return "", err
	}
	if err := sess.Fill(tactiqInput, videoURL, tactiqLoadWait); err != nil {
		return "", err
	}
	if err := sess.Click(tactiqSubmit, tactiqClickWait); err != nil {
		return "", err
	}
	if err := sess.WaitForURL(tactiqResultGlob, tactiqNavWait); err != nil {
		return "", err
	}
	if err := sess.WaitForText(tactiqResult, tactiqResultWait); err != nil {
		return "", err
	}

	raw, err := sess.InnerText(tactiqResult, tactiqContentWait)
	if err != nil {
		return "", err
	}

	cleaned := StripTimestamps(raw)
	if p.logger != nil {
		p.logger.Debug("tactiq transcript fetched", "video", videoURL, "chars", len(cleaned))
	}
	return cleaned, nil
}

// StripTimestamps removes embedded HH:MM:SS.mmm markers and the
// whitespace trailing them.
func StripTimestamps(text string) string {
	return strings.TrimSpace(timestampExpr.ReplaceAllString(text, ""))
}
