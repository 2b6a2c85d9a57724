package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"MediaScanner/internal/domain"
	"MediaScanner/internal/scanner"
)

type stubScanner struct {
	format   domain.SourceFormat
	articles []domain.Article
	err      error
	requests []scanner.Request
}

func (s *stubScanner) Format() domain.SourceFormat { return s.format }

func (s *stubScanner) Scan(_ context.Context, req scanner.Request) ([]domain.Article, error) {
	s.requests = append(s.requests, req)
	return s.articles, s.err
}

type stubClassifier struct {
	label string
	err   error
}

func (c *stubClassifier) Classify(_ context.Context, _, _ string) (string, error) {
	return c.label, c.err
}

type stubTranscripts struct {
	text string
	err  error
}

func (t *stubTranscripts) Transcript(_ context.Context, _ string) (string, error) {
	return t.text, t.err
}

type stubSummarizer struct{ summary string }

func (s *stubSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	return s.summary, nil
}

type stubNotifier struct{ digests []string }

func (n *stubNotifier) PublishDigest(_ context.Context, digest string) error {
	n.digests = append(n.digests, digest)
	return nil
}

func webSource(name string) domain.Source {
	return domain.Source{
		Name:   name,
		URL:    "https://example.com/blog",
		Kind:   domain.KindPage,
		Format: domain.FormatWebpage,
		Type:   "news",
	}
}

func TestProcessSourcesEndToEnd(t *testing.T) {
	t.Parallel()

	published := time.Date(2023, time.September, 13, 0, 0, 0, 0, time.UTC)
	web := &stubScanner{format: domain.FormatWebpage, articles: []domain.Article{{
		Source:      "Example Blog",
		Type:        "news",
		Format:      domain.FormatWebpage,
		Title:       "One article",
		URL:         "https://example.com/blog/post",
		RawDate:     "2 days ago",
		PublishedAt: published,
	}}}

	reg := scanner.NewRegistry()
	reg.Register(web)

	notifier := &stubNotifier{}
	p := NewPipeline(PipelineDeps{
		Registry:   reg,
		Classifier: &stubClassifier{label: "Europe"},
		Notifier:   notifier,
	}, Options{Limit: 5})

	got, err := p.ProcessSources(context.Background(), []domain.Source{webSource("Example Blog")})
	if err != nil {
		t.Fatalf("ProcessSources error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].URL != "https://example.com/blog/post" {
		t.Fatalf("unexpected url %s", got[0].URL)
	}
	if !got[0].PublishedAt.Equal(published) {
		t.Fatalf("unexpected published at %v", got[0].PublishedAt)
	}
	if got[0].Region != "Europe" {
		t.Fatalf("expected region to be filled, got %q", got[0].Region)
	}
	if len(web.requests) != 1 || web.requests[0].Limit != 5 {
		t.Fatalf("unexpected scan request: %+v", web.requests)
	}
	if len(notifier.digests) != 1 || !strings.Contains(notifier.digests[0], "One article") {
		t.Fatalf("digest not published: %v", notifier.digests)
	}
}

func TestProcessSourcesSkipsUnknownFormat(t *testing.T) {
	t.Parallel()

	web := &stubScanner{format: domain.FormatWebpage}
	reg := scanner.NewRegistry()
	reg.Register(web)

	p := NewPipeline(PipelineDeps{Registry: reg}, Options{})

	exotic := domain.Source{Name: "Future Feed", URL: "x", Format: "podcast"}
	got, err := p.ProcessSources(context.Background(), []domain.Source{exotic})
	if err != nil {
		t.Fatalf("unknown format must not fail the batch: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestProcessSourcesIsolatesSourceFailures(t *testing.T) {
	t.Parallel()

	failing := &stubScanner{format: domain.FormatWebpage, err: domain.ErrTimeout}
	healthy := &stubScanner{format: domain.FormatYouTube, articles: []domain.Article{{
		Source: "Channel", Format: domain.FormatYouTube,
		Title: "Video", URL: "https://www.youtube.com/watch?v=abc",
	}}}

	reg := scanner.NewRegistry()
	reg.Register(failing)
	reg.Register(healthy)

	p := NewPipeline(PipelineDeps{Registry: reg}, Options{})

	got, err := p.ProcessSources(context.Background(), []domain.Source{
		webSource("Broken Blog"),
		{Name: "Channel", URL: "https://www.youtube.com/@c", Format: domain.FormatYouTube},
	})
	if err != nil {
		t.Fatalf("per-source failure must not fail the batch: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Video" {
		t.Fatalf("expected the healthy source's record, got %+v", got)
	}
}

func TestProcessSourcesAbortsOnServiceUnavailable(t *testing.T) {
	t.Parallel()

	web := &stubScanner{format: domain.FormatWebpage, articles: []domain.Article{{
		Source: "Blog", Format: domain.FormatWebpage, Title: "Post", URL: "https://example.com/p",
	}}}
	reg := scanner.NewRegistry()
	reg.Register(web)

	p := NewPipeline(PipelineDeps{
		Registry:   reg,
		Classifier: &stubClassifier{err: domain.ErrServiceUnavailable},
	}, Options{})

	_, err := p.ProcessSources(context.Background(), []domain.Source{webSource("Blog")})
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected batch abort, got %v", err)
	}
}

func TestProcessSourcesSummarizesVideos(t *testing.T) {
	t.Parallel()

	yt := &stubScanner{format: domain.FormatYouTube, articles: []domain.Article{{
		Source: "Channel", Format: domain.FormatYouTube,
		Title: "Video", URL: "https://www.youtube.com/watch?v=abc",
	}}}
	reg := scanner.NewRegistry()
	reg.Register(yt)

	p := NewPipeline(PipelineDeps{
		Registry:    reg,
		Transcripts: &stubTranscripts{text: strings.Repeat("word ", 200)},
		Summarizer:  &stubSummarizer{summary: "Short summary."},
	}, Options{Summaries: true})

	got, err := p.ProcessSources(context.Background(), []domain.Source{
		{Name: "Channel", URL: "https://www.youtube.com/@c", Format: domain.FormatYouTube},
	})
	if err != nil {
		t.Fatalf("ProcessSources error: %v", err)
	}
	if len(got) != 1 || got[0].Summary != "Short summary." {
		t.Fatalf("expected summary to be filled, got %+v", got)
	}
}

func TestProcessSourcesMissingTranscriptIsNotFatal(t *testing.T) {
	t.Parallel()

	yt := &stubScanner{format: domain.FormatYouTube, articles: []domain.Article{{
		Source: "Channel", Format: domain.FormatYouTube,
		Title: "Video", URL: "https://www.youtube.com/watch?v=abc",
	}}}
	reg := scanner.NewRegistry()
	reg.Register(yt)

	p := NewPipeline(PipelineDeps{
		Registry:    reg,
		Transcripts: &stubTranscripts{err: domain.ErrNotAvailable},
		Summarizer:  &stubSummarizer{summary: "unused"},
	}, Options{Summaries: true})

	got, err := p.ProcessSources(context.Background(), []domain.Source{
		{Name: "Channel", URL: "https://www.youtube.com/@c", Format: domain.FormatYouTube},
	})
	if err != nil {
		t.Fatalf("ProcessSources error: %v", err)
	}
	if len(got) != 1 || got[0].Summary != "" {
		t.Fatalf("expected record without summary, got %+v", got)
	}
}
