package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"MediaScanner/internal/domain"
	"MediaScanner/internal/ports"
)

// classificationTemperature is zero: the reply must be a single label.
const classificationTemperature = 0.0

const regionSystemTemplate = `You are an expert news editor with deep geopolitical knowledge. Your task is to categorize a news article based ONLY on its title and source.

You MUST choose exactly one category from the following list:
%s

- 'Global': Use for articles involving multiple distinct regions (e.g., a US-China summit, a UN resolution).
- 'North America': For the United States and Canada.
- 'Latin America & Caribbean': For countries in Central and South America, and the Caribbean.
- 'Europe': For European countries, including the UK and the European Union as an entity.
- 'Africa': For countries on the African continent.
- 'Russia': For articles primarily about Russia.
- 'West Asia (Middle East)': For countries like Lebanon, Iran, Saudi Arabia, Palestine, etc.
- 'Central Asia': For Kazakhstan, Uzbekistan, etc.
- 'South Asia': For India, Pakistan, Bangladesh, Sri Lanka.
- 'Southeast Asia': For countries like Vietnam, Thailand, Indonesia, Malaysia, Philippines.
- 'Singapore': Use ONLY for articles specifically about Singapore.
- 'East Asia': For Japan, South Korea, North Korea.
- 'China': For articles primarily about China.
- 'Oceania': For Australia, New Zealand, Pacific Islands.
- 'Unknown': Use ONLY if you cannot determine the region with confidence.

Analyze the geographic entities (countries, cities, regions) mentioned in the title. The source can also be a strong clue.

Your response MUST BE ONLY the category name and nothing else. Do not add explanations or any extra text.`

// Classifier assigns one region label to an article given its title and
// source name. Title plus source is deliberately the entire signal; the
// article body never reaches this prompt.
type Classifier struct {
	completer ports.Completer
	system    string
	logger    *slog.Logger
}

var _ ports.RegionClassifier = (*Classifier)(nil)

// NewClassifier builds the classifier with the fixed label set baked
// into its system prompt.
func NewClassifier(completer ports.Completer, log *slog.Logger) *Classifier {
	return &Classifier{
		completer: completer,
		system:    fmt.Sprintf(regionSystemTemplate, strings.Join(domain.Regions, ", ")),
		logger:    log,
	}
}

// Classify returns a member of the fixed region set. Out-of-vocabulary
// replies degrade to "Unknown" with a warning; only transport failures
// surface as errors, so callers can tell "could not ask" apart from an
// honest Unknown.
func (c *Classifier) Classify(ctx context.Context, title, sourceName string) (string, error) {
	user := fmt.Sprintf("Title: %q\nSource: %q\n\nCategory:", title, sourceName)

	reply, err := c.completer.Complete(ctx, c.system, user, classificationTemperature)
	if err != nil {
		return "", fmt.Errorf("classify %q: %w", title, err)
	}

	label := strings.TrimSpace(reply)
	if !domain.ValidRegion(label) {
		if c.logger != nil {
			c.logger.Warn("invalid region label from model", "title", title, "label", label)
		}
		return domain.RegionUnknown, nil
	}
	return label, nil
}
