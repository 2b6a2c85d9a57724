// Package youtube integrates the channel metadata service: resolving
// handles to channels, listing recent uploads and exposing them as a
// scan strategy.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"MediaScanner/internal/domain"
	"MediaScanner/internal/ports"
)

const defaultAPIURL = "https://www.googleapis.com/youtube/v3"

// Only @handle channel URLs are supported, matching the configured
// source roster.
var handleExpr = regexp.MustCompile(`youtube\.com/(@[A-Za-z0-9._-]+)`)

// Catalog lists a channel's recent uploads via the Data API. A single
// playlist page is fetched; when the page comes back full the catalog
// logs that older matching uploads may exist beyond it.
type Catalog struct {
	client     *http.Client
	apiURL     string
	apiKey     string
	maxResults int
	logger     *slog.Logger
}

var _ ports.VideoCatalog = (*Catalog)(nil)

// NewCatalog wires an HTTP client; a nil client gets a 15s timeout and
// maxResults defaults to 50.
func NewCatalog(client *http.Client, apiKey string, log *slog.Logger) *Catalog {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Catalog{
		client:     client,
		apiURL:     defaultAPIURL,
		apiKey:     apiKey,
		maxResults: 50,
		logger:     log,
	}
}

// RecentUploads resolves the channel behind channelURL and returns its
// uploads published at or after cutoff, newest page first.
func (c *Catalog) RecentUploads(ctx context.Context, channelURL string, cutoff time.Time) ([]domain.Video, error) {
	match := handleExpr.FindStringSubmatch(channelURL)
	if match == nil {
		return nil, fmt.Errorf("no @handle in %s: %w", channelURL, domain.ErrInvalidURL)
	}
	handle := match[1]

	channelID, err := c.resolveHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	uploadsID, err := c.uploadsPlaylist(ctx, channelID)
	if err != nil {
		return nil, err
	}

	return c.playlistVideos(ctx, uploadsID, cutoff)
}

func (c *Catalog) resolveHandle(ctx context.Context, handle string) (string, error) {
	var out struct {
		Items []struct {
			ID struct {
				ChannelID string `json:"channelId"`
			} `json:"id"`
		} `json:"items"`
	}
	params := url.Values{
		"part":       {"id"},
		"q":          {handle},
		"type":       {"channel"},
		"maxResults": {"1"},
	}
	if err := c.call(ctx, "search", params, &out); err != nil {
		return "", fmt.Errorf("resolve handle %s: %w", handle, err)
	}
	if len(out.Items) == 0 {
		return "", fmt.Errorf("no channel found for handle %s", handle)
	}
	return out.Items[0].ID.ChannelID, nil
}

func (c *Catalog) uploadsPlaylist(ctx context.Context, channelID string) (string, error) {
	var out struct {
		Items []struct {
			ContentDetails struct {
				RelatedPlaylists struct {
					Uploads string `json:"uploads"`
				} `json:"relatedPlaylists"`
			} `json:"contentDetails"`
		} `json:"items"`
	}
	params := url.Values{
		"part": {"contentDetails"},
		"id":   {channelID},
	}
	if err := c.call(ctx, "channels", params, &out); err != nil {
		return "", fmt.Errorf("channel %s details: %w", channelID, err)
	}
	if len(out.Items) == 0 {
		return "", fmt.Errorf("no details for channel %s", channelID)
	}
	return out.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

func (c *Catalog) playlistVideos(ctx context.Context, playlistID string, cutoff time.Time) ([]domain.Video, error) {
	var out struct {
		Items []struct {
			Snippet struct {
				Title       string `json:"title"`
				PublishedAt string `json:"publishedAt"`
				ResourceID  struct {
					VideoID string `json:"videoId"`
				} `json:"resourceId"`
			} `json:"snippet"`
		} `json:"items"`
	}
	params := url.Values{
		"part":       {"snippet"},
		"playlistId": {playlistID},
		"maxResults": {fmt.Sprint(c.maxResults)},
	}
	if err := c.call(ctx, "playlistItems", params, &out); err != nil {
		return nil, fmt.Errorf("playlist %s items: %w", playlistID, err)
	}

	if len(out.Items) == c.maxResults && c.logger != nil {
		c.logger.Warn("uploads page full, older matching videos may exist beyond it",
			"playlist", playlistID, "page_size", c.maxResults)
	}

	var videos []domain.Video
	for _, item := range out.Items {
		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			if c.logger != nil {
				c.logger.Warn("skipping video with bad publishedAt",
					"video", item.Snippet.ResourceID.VideoID, "publishedAt", item.Snippet.PublishedAt)
			}
			continue
		}
		if publishedAt.Before(cutoff) {
			continue
		}
		id := item.Snippet.ResourceID.VideoID
		videos = append(videos, domain.Video{
			ID:          id,
			Title:       item.Snippet.Title,
			URL:         "https://www.youtube.com/watch?v=" + id,
			RawDate:     item.Snippet.PublishedAt,
			PublishedAt: publishedAt,
		})
	}
	return videos, nil
}

// call performs one GET against the Data API. Credential rejection is
// an environment failure and wraps ErrServiceUnavailable.
func (c *Catalog) call(ctx context.Context, resource string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s/%s?%s", c.apiURL, resource, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", resource, domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: status %s: %w", resource, resp.Status, domain.ErrServiceUnavailable)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%s: status %s: %w", resource, resp.Status, domain.ErrFetch)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}
