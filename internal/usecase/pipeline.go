package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"MediaScanner/internal/domain"
	"MediaScanner/internal/ports"
	"MediaScanner/internal/scanner"
)

// Options bound one batch run.
type Options struct {
	// Lookback limits youtube channel scans to recent uploads.
	Lookback time.Duration
	// Limit caps extracted records per source.
	Limit int
	// Summaries enables transcript summarization for video records.
	Summaries bool
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Registry    *scanner.Registry
	Classifier  ports.RegionClassifier
	Transcripts ports.TranscriptProvider
	Summarizer  ports.Summarizer
	Notifier    ports.Notifier
	Logger      *slog.Logger
}

// Pipeline routes each source to its scan strategy and assembles the
// uniform output records. Sources are processed sequentially; one
// source's failure never blocks the next. Only environment-level
// failures (generation service unreachable, credentials rejected)
// abort the batch.
type Pipeline struct {
	registry    *scanner.Registry
	classifier  ports.RegionClassifier
	transcripts ports.TranscriptProvider
	summarizer  ports.Summarizer
	notifier    ports.Notifier
	opts        Options
	logger      *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps, opts Options) *Pipeline {
	if opts.Lookback <= 0 {
		opts.Lookback = 7 * 24 * time.Hour
	}
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	return &Pipeline{
		registry:    deps.Registry,
		classifier:  deps.Classifier,
		transcripts: deps.Transcripts,
		summarizer:  deps.Summarizer,
		notifier:    deps.Notifier,
		opts:        opts,
		logger:      deps.Logger,
	}
}

// ProcessSources runs the whole batch and returns every record it could
// assemble. On an environment failure the records collected so far are
// returned together with the error.
func (p *Pipeline) ProcessSources(ctx context.Context, sources []domain.Source) ([]domain.Article, error) {
	if p.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	cutoff := time.Now().UTC().Add(-p.opts.Lookback)
	p.debug("batch start", "sources", len(sources), "cutoff", cutoff.Format(time.RFC3339))

	var collected []domain.Article
	for _, src := range sources {
		articles, err := p.processSource(ctx, src, cutoff)
		if err != nil {
			if errors.Is(err, domain.ErrServiceUnavailable) {
				return collected, fmt.Errorf("batch aborted at source %s: %w", src.Name, err)
			}
			p.warn("source skipped", "source", src.Name, "error", err)
			continue
		}
		collected = append(collected, articles...)
	}

	p.debug("batch done", "articles", len(collected))

	if p.notifier != nil && len(collected) > 0 {
		if err := p.notifier.PublishDigest(ctx, buildDigest(collected)); err != nil {
			p.warn("digest publish failed", "error", err)
		}
	}
	return collected, nil
}

func (p *Pipeline) processSource(ctx context.Context, src domain.Source, cutoff time.Time) ([]domain.Article, error) {
	strategy, err := p.registry.Resolve(src.Format)
	if err != nil {
		// Heterogeneous rosters may carry future formats; skipping is
		// the contract, failing the batch is not.
		p.warn("unsupported source format", "source", src.Name, "format", src.Format)
		return nil, nil
	}

	p.debug("process source", "source", src.Name, "format", src.Format)

	articles, err := strategy.Scan(ctx, scanner.Request{
		Source: src,
		Cutoff: cutoff,
		Limit:  p.opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	kept := make([]domain.Article, 0, len(articles))
	for _, article := range articles {
		if !article.Valid() {
			p.warn("dropping invalid record", "source", src.Name, "title", article.Title)
			continue
		}
		if err := p.enrich(ctx, &article); err != nil {
			return kept, err
		}
		kept = append(kept, article)
	}
	return kept, nil
}

// enrich fills region and, for video records, a transcript summary.
// Data-quality problems degrade to absent fields; only environment
// failures propagate.
func (p *Pipeline) enrich(ctx context.Context, article *domain.Article) error {
	if p.classifier != nil {
		region, err := p.classifier.Classify(ctx, article.Title, article.Source)
		if err != nil {
			if errors.Is(err, domain.ErrServiceUnavailable) {
				return err
			}
			p.warn("region classification failed", "title", article.Title, "error", err)
		} else {
			article.Region = region
		}
	}

	if p.opts.Summaries && article.Format == domain.FormatYouTube &&
		p.transcripts != nil && p.summarizer != nil {
		transcript, err := p.transcripts.Transcript(ctx, article.URL)
		if err != nil {
			if errors.Is(err, domain.ErrNotAvailable) {
				p.debug("no transcript", "url", article.URL)
				return nil
			}
			p.warn("transcript fetch failed", "url", article.URL, "error", err)
			return nil
		}
		summary, err := p.summarizer.Summarize(ctx, transcript)
		if err != nil {
			if errors.Is(err, domain.ErrServiceUnavailable) {
				return err
			}
			p.warn("summarization failed", "url", article.URL, "error", err)
			return nil
		}
		article.Summary = summary
	}
	return nil
}

func buildDigest(articles []domain.Article) string {
	var formatted string
	for _, a := range articles {
		line := fmt.Sprintf("- %s", a.Title)
		if a.Region != "" {
			line += fmt.Sprintf(" [%s]", a.Region)
		}
		line += "\n" + a.URL + "\n"
		if !a.PublishedAt.IsZero() {
			line += a.PublishedAt.Format("2006-01-02") + "\n"
		}
		if a.Summary != "" {
			line += a.Summary + "\n"
		}
		formatted += line + "\n"
	}
	return formatted
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
