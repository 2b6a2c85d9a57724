package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"MediaScanner/internal/ports"
)

const summaryTemperature = 0.1

// minSummaryWords guards against summarizing texts shorter than the
// summary itself would be.
const minSummaryWords = 120

const summarySystem = `You are an expert summarizer. Your task is to provide a concise, neutral summary of the following text.
The summary should be approximately 100 words and capture the main points and arguments.
Provide only the summary text, without any introductory phrases like "Here is the summary:".`

// Summarizer produces a short neutral prose summary of a transcript or
// page text.
type Summarizer struct {
	completer ports.Completer
	logger    *slog.Logger
}

var _ ports.Summarizer = (*Summarizer)(nil)

// NewSummarizer wires the generation client.
func NewSummarizer(completer ports.Completer, log *slog.Logger) *Summarizer {
	return &Summarizer{completer: completer, logger: log}
}

// Summarize returns a ~100-word summary, or an empty string when the
// text is too short to summarize meaningfully.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if len(strings.Fields(text)) < minSummaryWords {
		if s.logger != nil {
			s.logger.Debug("text too short to summarize", "words", len(strings.Fields(text)))
		}
		return "", nil
	}

	user := fmt.Sprintf("TRANSCRIPT:\n%q\n\nSUMMARY:", text)
	reply, err := s.completer.Complete(ctx, summarySystem, user, summaryTemperature)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
