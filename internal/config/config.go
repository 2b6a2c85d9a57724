package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"MediaScanner/internal/domain"
)

const (
	configPathEnv    = "MEDIA_SCANNER_CONFIG"
	llmEndpointEnv   = "OLLAMA_ENDPOINT"
	llmModelEnv      = "OLLAMA_MODEL"
	youtubeKeyEnv    = "YOUTUBE_API_KEY"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Scan          ScanConfig         `yaml:"scan"`
	LLM           LLMConfig          `yaml:"llm"`
	YouTube       YouTubeConfig      `yaml:"youtube"`
	Notifications NotificationConfig `yaml:"notifications"`
	Sources       []SourceConfig     `yaml:"sources"`
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ScanConfig bounds one batch run.
type ScanConfig struct {
	LookbackWeeks int  `yaml:"lookbackWeeks"`
	MaxArticles   int  `yaml:"maxArticles"`
	Summaries     bool `yaml:"summaries"`
}

// Lookback converts the configured window into a duration.
func (s ScanConfig) Lookback() time.Duration {
	weeks := s.LookbackWeeks
	if weeks <= 0 {
		weeks = 1
	}
	return time.Duration(weeks) * 7 * 24 * time.Hour
}

// LLMConfig defines how to contact the generation service.
type LLMConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// RequestTimeout converts the configured timeout into a duration.
// Local models answer slowly, so the default is generous.
func (l LLMConfig) RequestTimeout() time.Duration {
	if l.TimeoutSeconds <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// YouTubeConfig carries the Data API credential, passed through opaquely.
type YouTubeConfig struct {
	APIKey string `yaml:"apiKey"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send digests.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SourceConfig describes a single origin to poll.
type SourceConfig struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Kind   string `yaml:"kind"`
	Format string `yaml:"format"`
	Type   string `yaml:"type"`
}

// DomainSources maps the configured roster onto domain descriptors.
// Formats are not filtered here: the router skips unknown formats with
// a warning, so shared rosters with future formats stay loadable.
func (c Config) DomainSources() []domain.Source {
	sources := make([]domain.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		if s.Name == "" || s.URL == "" {
			log.Printf("config: skipping source with missing name or url: %+v", s)
			continue
		}
		sources = append(sources, domain.Source{
			Name:   s.Name,
			URL:    s.URL,
			Kind:   domain.SourceKind(s.Kind),
			Format: domain.SourceFormat(s.Format),
			Type:   s.Type,
		})
	}
	return sources
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(llmEndpointEnv); v != "" {
		c.LLM.Endpoint = v
	}
	if v := os.Getenv(llmModelEnv); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(youtubeKeyEnv); v != "" {
		c.YouTube.APIKey = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Scan.LookbackWeeks != 0 {
		base.Scan.LookbackWeeks = override.Scan.LookbackWeeks
	}
	if override.Scan.MaxArticles != 0 {
		base.Scan.MaxArticles = override.Scan.MaxArticles
	}
	if override.Scan.Summaries {
		base.Scan.Summaries = true
	}

	if override.LLM.Endpoint != "" {
		base.LLM.Endpoint = override.LLM.Endpoint
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.TimeoutSeconds != 0 {
		base.LLM.TimeoutSeconds = override.LLM.TimeoutSeconds
	}

	if override.YouTube.APIKey != "" {
		base.YouTube = override.YouTube
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Scan:    ScanConfig{LookbackWeeks: 1, MaxArticles: 10},
		LLM: LLMConfig{
			Endpoint: "http://localhost:11434",
			Model:    "llama3.1",
		},
		Sources: []SourceConfig{
			{
				Name:   "Think BRICs",
				URL:    "https://thinkbrics.substack.com/archive",
				Kind:   "page",
				Format: "webpage",
				Type:   "news",
			},
		},
	}
}
