package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"MediaScanner/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Scan.Lookback() != 7*24*time.Hour {
		t.Fatalf("unexpected default lookback: %v", cfg.Scan.Lookback())
	}
	if cfg.Scan.MaxArticles != 10 {
		t.Fatalf("unexpected default max articles: %d", cfg.Scan.MaxArticles)
	}
	if cfg.LLM.Model != "llama3.1" {
		t.Fatalf("unexpected default model: %s", cfg.LLM.Model)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
logging:
  level: debug
scan:
  lookbackWeeks: 2
  maxArticles: 5
llm:
  model: mistral
sources:
  - name: Progressive International
    url: https://progressive.international
    kind: page
    format: webpage
    type: news
  - name: Breakthrough News
    url: https://www.youtube.com/@BreakThroughNews
    kind: video-channel
    format: youtube
    type: news
  - name: Future Feed
    url: https://example.com/feed
    format: podcast
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MEDIA_SCANNER_CONFIG", path)
	t.Setenv("OLLAMA_MODEL", "gemma3")
	t.Setenv("YOUTUBE_API_KEY", "secret")

	cfg := Load()

	if cfg.Scan.LookbackWeeks != 2 || cfg.Scan.MaxArticles != 5 {
		t.Fatalf("file overrides not applied: %+v", cfg.Scan)
	}
	// Env wins over file.
	if cfg.LLM.Model != "gemma3" {
		t.Fatalf("env override not applied: %s", cfg.LLM.Model)
	}
	if cfg.YouTube.APIKey != "secret" {
		t.Fatalf("api key not applied")
	}

	sources := cfg.DomainSources()
	if len(sources) != 3 {
		t.Fatalf("expected 3 sources (unknown formats stay loadable), got %d", len(sources))
	}
	if sources[1].Format != domain.FormatYouTube || sources[1].Kind != domain.KindVideoChannel {
		t.Fatalf("unexpected second source: %+v", sources[1])
	}
	if sources[2].Format != "podcast" {
		t.Fatalf("future formats must survive loading: %+v", sources[2])
	}
}
