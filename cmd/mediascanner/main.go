package main

import (
	"context"
	"os"

	"MediaScanner/internal/app"
	"MediaScanner/internal/config"
	"MediaScanner/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)

	articles, err := application.Run(ctx)
	if err != nil {
		logger.Error("batch failed", "error", err, "collected", len(articles))
		os.Exit(1)
	}

	for _, a := range articles {
		logger.Info("article",
			"source", a.Source,
			"title", a.Title,
			"url", a.URL,
			"region", a.Region,
			"published_at", a.PublishedAt)
	}
}
