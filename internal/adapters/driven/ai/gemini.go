package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
)

// Ensure GeminiGenerator implements TextGenerator
var _ driven.TextGenerator = (*GeminiGenerator)(nil)

// GeminiGenerator implements TextGenerator using Google's Gemini API
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiGenerator creates a new Gemini text generator.
// baseURL is only set when pointing at a proxy or a test server.
func NewGeminiGenerator(apiKey, model, baseURL string, timeout time.Duration) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", domain.ErrMissingAPIKey)
	}

	if model == "" {
		model = "gemini-2.0-flash"
	}

	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Generate sends a single-turn prompt and returns the response text
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned no text")
	}
	return text, nil
}

// Model returns the model name being used
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Close releases resources held by the generator
func (g *GeminiGenerator) Close() error {
	return nil
}
