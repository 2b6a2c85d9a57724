// Package webscan implements the "webpage" scan strategy: rendered
// fetch, LLM-driven structured extraction, then date normalization.
package webscan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"MediaScanner/internal/dates"
	"MediaScanner/internal/domain"
	"MediaScanner/internal/ports"
	"MediaScanner/internal/scanner"
)

// Scanner turns one webpage source into article records.
type Scanner struct {
	fetcher   ports.PageFetcher
	extractor ports.ArticleExtractor
	now       func() time.Time
	logger    *slog.Logger
}

var _ scanner.Scanner = (*Scanner)(nil)

// NewScanner wires the rendered fetcher and the extraction engine.
func NewScanner(fetcher ports.PageFetcher, extractor ports.ArticleExtractor, log *slog.Logger) *Scanner {
	return &Scanner{fetcher: fetcher, extractor: extractor, now: time.Now, logger: log}
}

// Format identifies the strategy inside the registry.
func (s *Scanner) Format() domain.SourceFormat {
	return domain.FormatWebpage
}

// Scan fetches the page, extracts records and normalizes each RawDate.
// A date that fails to normalize leaves PublishedAt zero; the record is
// kept, it just drops out of any date-filtered view downstream.
func (s *Scanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	content, err := s.fetcher.Fetch(ctx, req.Source.URL)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", req.Source.Name, err)
	}

	articles, err := s.extractor.Extract(ctx, req.Source, content, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", req.Source.Name, err)
	}

	now := s.now().UTC()
	for i := range articles {
		published, ok := dates.Normalize(articles[i].RawDate, now)
		if !ok {
			if s.logger != nil {
				s.logger.Warn("unparseable article date",
					"source", req.Source.Name, "title", articles[i].Title, "raw_date", articles[i].RawDate)
			}
			continue
		}
		articles[i].PublishedAt = published
	}

	if s.logger != nil {
		s.logger.Debug("webpage scan done", "source", req.Source.Name, "articles", len(articles))
	}
	return articles, nil
}
