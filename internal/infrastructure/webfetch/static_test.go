package webfetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"MediaScanner/internal/domain"
)

func TestStaticFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("expected browser user-agent, got %q", ua)
		}
		_, _ = w.Write([]byte(`<html><body><script>track()</script><p>Visible</p><p>text</p></body></html>`))
	}))
	defer server.Close()

	f := NewStaticFetcher(server.Client(), nil)
	got, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if got.Text != "Visible text" {
		t.Fatalf("unexpected text: %q", got.Text)
	}
	if len(got.Links) != 0 {
		t.Fatalf("static fetch must not harvest links: %v", got.Links)
	}
}

func TestStaticFetchNon2xx(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	f := NewStaticFetcher(server.Client(), nil)
	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}
