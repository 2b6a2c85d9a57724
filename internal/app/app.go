package app

import (
	"context"
	"log/slog"

	"MediaScanner/internal/config"
	"MediaScanner/internal/domain"
	"MediaScanner/internal/extract"
	"MediaScanner/internal/infrastructure/llm"
	"MediaScanner/internal/infrastructure/telegram"
	"MediaScanner/internal/infrastructure/transcript"
	"MediaScanner/internal/infrastructure/webfetch"
	"MediaScanner/internal/infrastructure/webscan"
	"MediaScanner/internal/infrastructure/youtube"
	"MediaScanner/internal/logging"
	"MediaScanner/internal/ports"
	"MediaScanner/internal/scanner"
	"MediaScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	completer := llm.NewOllamaClient(cfg.LLM)
	extractor := extract.NewExtractor(completer, baseLogger.With("component", "extractor"))
	classifier := extract.NewClassifier(completer, baseLogger.With("component", "classifier"))
	summarizer := extract.NewSummarizer(completer, baseLogger.With("component", "summarizer"))

	fetcher := webfetch.NewRenderedFetcher(baseLogger.With("component", "fetcher.rendered"))
	catalog := youtube.NewCatalog(nil, cfg.YouTube.APIKey, baseLogger.With("component", "youtube.catalog"))

	registry := scanner.NewRegistry()
	registry.Register(webscan.NewScanner(fetcher, extractor, baseLogger.With("component", "scanner.webpage")))
	registry.Register(youtube.NewChannelScanner(catalog, baseLogger.With("component", "scanner.youtube")))

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Registry:    registry,
		Classifier:  classifier,
		Transcripts: transcript.NewDirectProvider(nil, baseLogger.With("component", "transcript.direct")),
		Summarizer:  summarizer,
		Notifier:    notifier,
		Logger:      baseLogger.With("component", "pipeline"),
	}, usecase.Options{
		Lookback:  cfg.Scan.Lookback(),
		Limit:     cfg.Scan.MaxArticles,
		Summaries: cfg.Scan.Summaries,
	})

	return &Application{cfg: cfg, pipeline: pipeline, logger: baseLogger}
}

// Run executes one batch over the configured sources.
func (a *Application) Run(ctx context.Context) ([]domain.Article, error) {
	if a.pipeline == nil {
		return nil, nil
	}
	return a.pipeline.ProcessSources(ctx, a.cfg.DomainSources())
}
