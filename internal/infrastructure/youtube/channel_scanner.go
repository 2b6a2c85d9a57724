package youtube

import (
	"context"
	"fmt"
	"log/slog"

	"MediaScanner/internal/domain"
	"MediaScanner/internal/ports"
	"MediaScanner/internal/scanner"
)

// ChannelScanner is the "youtube" scan strategy: one record per recent
// upload, RawDate taken from the platform's own publish timestamp.
type ChannelScanner struct {
	catalog ports.VideoCatalog
	logger  *slog.Logger
}

var _ scanner.Scanner = (*ChannelScanner)(nil)

// NewChannelScanner wires the metadata catalog.
func NewChannelScanner(catalog ports.VideoCatalog, log *slog.Logger) *ChannelScanner {
	return &ChannelScanner{catalog: catalog, logger: log}
}

// Format identifies the strategy inside the registry.
func (s *ChannelScanner) Format() domain.SourceFormat {
	return domain.FormatYouTube
}

// Scan lists the channel's uploads within the recency window and maps
// them onto article records.
func (s *ChannelScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	videos, err := s.catalog.RecentUploads(ctx, req.Source.URL, req.Cutoff)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", req.Source.Name, err)
	}

	articles := make([]domain.Article, 0, len(videos))
	for _, v := range videos {
		articles = append(articles, domain.Article{
			Source:      req.Source.Name,
			Type:        req.Source.Type,
			Format:      req.Source.Format,
			Title:       v.Title,
			URL:         v.URL,
			RawDate:     v.RawDate,
			PublishedAt: v.PublishedAt,
		})
		if req.Limit > 0 && len(articles) == req.Limit {
			break
		}
	}

	if s.logger != nil {
		s.logger.Debug("channel scan done", "source", req.Source.Name, "videos", len(articles))
	}
	return articles, nil
}
