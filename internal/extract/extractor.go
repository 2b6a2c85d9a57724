// Package extract drives the generation service with constrained
// prompts: structured article extraction from page content, region
// classification of titles, and short prose summaries.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"MediaScanner/internal/domain"
	"MediaScanner/internal/ports"
)

// extractionTemperature keeps output predictable enough to validate.
const extractionTemperature = 0.1

const extractionSystemTemplate = `You are an expert web content extractor. Your task is to identify articles or posts from the provided text content.
The text content contains the main body of the webpage, followed by a section titled "%[4]s" which lists all unique, absolute URLs found on the page, one per line.

For each article, extract its title, its full URL, and its publication date string.
The publication date can be in various formats (e.g., "2 days ago", "Yesterday", "September 1, 2023", "2023-09-01", "Published: 2023-08-10").

**Crucially, when extracting the URL for an article, you MUST find it from the "%[4]s" section.** Match the title or context of the article to the most relevant URL provided in that section. Do NOT try to infer URLs directly from the main text or create them. If an article cannot be confidently matched to a URL in the list, do not include it.

Return the results as a JSON array of objects. Each object must have 'source', 'type', 'format', 'title', 'url', 'raw_date' fields.
The source is %[1]q, the type is %[2]q, and the format is %[3]q.

If no articles are found, return an empty JSON array [].
Limit your extraction to the first %[5]d distinct articles you find.

Example Output Format:
[
  {
    "source": %[1]q,
    "type": %[2]q,
    "format": %[3]q,
    "title": "How to Use Ollama Locally",
    "url": "https://ollama.com/blog/local-ollama-guide",
    "raw_date": "2023-10-26"
  }
]`

// Extractor recovers article records from augmented page text via the
// generation service. Its output is treated as untrusted input: every
// record is validated for required fields and URL grounding before it
// leaves this component.
type Extractor struct {
	completer ports.Completer
	logger    *slog.Logger
}

var _ ports.ArticleExtractor = (*Extractor)(nil)

// NewExtractor wires the generation client.
func NewExtractor(completer ports.Completer, log *slog.Logger) *Extractor {
	return &Extractor{completer: completer, logger: log}
}

type rawArticle struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	RawDate string `json:"raw_date"`
}

// Extract prompts the model with the augmented text and parses its
// reply. A malformed reply yields zero records and a log line, never an
// error; only a failure to reach the service propagates.
func (e *Extractor) Extract(ctx context.Context, src domain.Source, content domain.PageContent, limit int) ([]domain.Article, error) {
	system := fmt.Sprintf(extractionSystemTemplate,
		src.Name, src.Type, string(src.Format), domain.LinksMarker, limit)
	user := "Extract article details from this content:\n\nContent:\n" + content.Augmented()

	e.debug("invoking extraction", "source", src.Name, "context_chars", len(user))

	reply, err := e.completer.Complete(ctx, system, user, extractionTemperature)
	if err != nil {
		return nil, fmt.Errorf("extract articles for %s: %w", src.Name, err)
	}

	parsed, err := parseReply(reply)
	if err != nil {
		e.warn("unparseable extraction reply", "source", src.Name, "error", err)
		return nil, nil
	}

	articles := make([]domain.Article, 0, len(parsed))
	for _, raw := range parsed {
		if raw.Title == "" || raw.URL == "" || raw.RawDate == "" {
			e.warn("dropping incomplete record", "source", src.Name, "title", raw.Title, "url", raw.URL)
			continue
		}
		if !content.HasLink(raw.URL) {
			e.warn("dropping ungrounded url", "source", src.Name, "url", raw.URL)
			continue
		}
		articles = append(articles, domain.Article{
			Source:  src.Name,
			Type:    src.Type,
			Format:  src.Format,
			Title:   raw.Title,
			URL:     raw.URL,
			RawDate: raw.RawDate,
		})
		if limit > 0 && len(articles) == limit {
			break
		}
	}
	return articles, nil
}

// parseReply recovers a JSON article list from a model reply that may
// wrap it in prose. Tries the whole reply, then the outermost array
// slice, then a single bare object.
func parseReply(reply string) ([]rawArticle, error) {
	trimmed := strings.TrimSpace(reply)
	if trimmed == "" {
		return nil, fmt.Errorf("empty reply: %w", domain.ErrMalformedOutput)
	}

	var list []rawArticle
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		return list, nil
	}

	if start, end := strings.Index(trimmed, "["), strings.LastIndex(trimmed, "]"); start >= 0 && end > start {
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &list); err == nil {
			return list, nil
		}
	}

	if start, end := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}"); start >= 0 && end > start {
		var single rawArticle
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &single); err == nil {
			return []rawArticle{single}, nil
		}
	}

	return nil, fmt.Errorf("no recoverable JSON: %w", domain.ErrMalformedOutput)
}

func (e *Extractor) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func (e *Extractor) warn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}
