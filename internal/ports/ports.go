package ports

import (
	"context"
	"time"

	"MediaScanner/internal/domain"
)

// PageFetcher retrieves a page and reduces it to cleaned content.
// Implementations differ only in how they obtain the markup (plain GET
// vs a rendered browser session).
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (domain.PageContent, error)
}

// TranscriptProvider produces a flat transcript string for a video URL.
// Both strategies (transcript service, browser automation) satisfy it.
type TranscriptProvider interface {
	Transcript(ctx context.Context, videoURL string) (string, error)
}

// Completer is the generation service boundary. Low temperature keeps
// the two prompting components deterministic enough to validate.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

// ArticleExtractor recovers structured article records from augmented
// page content. Output is best-effort and may be empty.
type ArticleExtractor interface {
	Extract(ctx context.Context, src domain.Source, content domain.PageContent, limit int) ([]domain.Article, error)
}

// RegionClassifier assigns one label from the fixed region set given
// only a title and a source name.
type RegionClassifier interface {
	Classify(ctx context.Context, title, sourceName string) (string, error)
}

// Summarizer produces a short prose summary of transcript or page text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// VideoCatalog lists a channel's recent uploads via the metadata service.
type VideoCatalog interface {
	RecentUploads(ctx context.Context, channelURL string, cutoff time.Time) ([]domain.Video, error)
}

// Notifier publishes the finished digest to an outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}
