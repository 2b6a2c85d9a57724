package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MediaScanner/internal/domain"
	"MediaScanner/internal/scanner"
)

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "@breakthrough" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"id":{"channelId":"UC123"}}]}`))
	})
	mux.HandleFunc("/channels", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"contentDetails":{"relatedPlaylists":{"uploads":"UU123"}}}]}`))
	})
	mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[
			{"snippet":{"title":"Fresh video","publishedAt":"2023-09-14T10:00:00Z","resourceId":{"videoId":"abc123"}}},
			{"snippet":{"title":"Stale video","publishedAt":"2023-08-01T10:00:00Z","resourceId":{"videoId":"old456"}}}
		]}`))
	})
	return httptest.NewServer(mux)
}

func TestRecentUploads(t *testing.T) {
	t.Parallel()

	server := newFakeAPI(t)
	defer server.Close()

	c := NewCatalog(server.Client(), "test-key", nil)
	c.apiURL = server.URL

	cutoff := time.Date(2023, time.September, 8, 0, 0, 0, 0, time.UTC)
	videos, err := c.RecentUploads(context.Background(), "https://www.youtube.com/@breakthrough", cutoff)
	if err != nil {
		t.Fatalf("RecentUploads error: %v", err)
	}

	if len(videos) != 1 {
		t.Fatalf("expected 1 recent video, got %d", len(videos))
	}
	if videos[0].ID != "abc123" {
		t.Fatalf("unexpected video id: %s", videos[0].ID)
	}
	if videos[0].URL != "https://www.youtube.com/watch?v=abc123" {
		t.Fatalf("unexpected video url: %s", videos[0].URL)
	}
	if videos[0].RawDate != "2023-09-14T10:00:00Z" {
		t.Fatalf("raw date must keep the platform timestamp: %s", videos[0].RawDate)
	}
}

func TestRecentUploadsRejectsNonHandleURL(t *testing.T) {
	t.Parallel()

	c := NewCatalog(http.DefaultClient, "test-key", nil)
	_, err := c.RecentUploads(context.Background(), "https://www.youtube.com/channel/UC123", time.Now())
	if !errors.Is(err, domain.ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

func TestRecentUploadsCredentialRejection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"keyInvalid"}`, http.StatusForbidden)
	}))
	defer server.Close()

	c := NewCatalog(server.Client(), "bad-key", nil)
	c.apiURL = server.URL

	_, err := c.RecentUploads(context.Background(), "https://www.youtube.com/@breakthrough", time.Now())
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestChannelScanner(t *testing.T) {
	t.Parallel()

	server := newFakeAPI(t)
	defer server.Close()

	c := NewCatalog(server.Client(), "test-key", nil)
	c.apiURL = server.URL

	sc := NewChannelScanner(c, nil)
	if sc.Format() != domain.FormatYouTube {
		t.Fatalf("unexpected format %q", sc.Format())
	}

	src := domain.Source{
		Name:   "Breakthrough News",
		URL:    "https://www.youtube.com/@breakthrough",
		Kind:   domain.KindVideoChannel,
		Format: domain.FormatYouTube,
		Type:   "news",
	}
	articles, err := sc.Scan(context.Background(), scanner.Request{
		Source: src,
		Cutoff: time.Date(2023, time.September, 8, 0, 0, 0, 0, time.UTC),
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	a := articles[0]
	if a.Source != "Breakthrough News" || a.Format != domain.FormatYouTube {
		t.Fatalf("source fields not copied: %+v", a)
	}
	if a.PublishedAt.IsZero() {
		t.Fatal("expected canonical timestamp to be set")
	}
}
