// Package llm implements the generation-service boundary against a
// local Ollama-compatible endpoint.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"MediaScanner/internal/config"
	"MediaScanner/internal/domain"
	"MediaScanner/internal/ports"
)

// OllamaClient talks to the /api/generate endpoint. Local models answer
// slowly, so the client carries a generous request timeout.
type OllamaClient struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

var _ ports.Completer = (*OllamaClient)(nil)

// NewOllamaClient builds a client from configuration.
func NewOllamaClient(cfg config.LLMConfig) *OllamaClient {
	return &OllamaClient{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout()},
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	System  string         `json:"system,omitempty"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Complete sends one non-streaming generation request and returns the
// raw reply text. Transport failures wrap ErrServiceUnavailable so the
// pipeline can tell "could not ask" apart from bad model output.
func (c *OllamaClient) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	if c.model == "" || c.endpoint == "" {
		return "", fmt.Errorf("ollama client misconfigured: %w", domain.ErrServiceUnavailable)
	}

	body, err := json.Marshal(generateRequest{
		Model:   c.model,
		System:  system,
		Prompt:  user,
		Stream:  false,
		Options: map[string]any{"temperature": temperature},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate: %w: %w", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("generate: %s: %s: %w",
			resp.Status, strings.TrimSpace(string(payload)), domain.ErrServiceUnavailable)
	}

	var reply generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	return reply.Response, nil
}
