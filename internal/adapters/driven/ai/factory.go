package ai

import (
	"fmt"

	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates AI services based on configuration
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateTextGenerator creates a text generator from settings,
// rate limited when settings ask for it
func (f *Factory) CreateTextGenerator(settings *domain.LLMSettings) (driven.TextGenerator, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	model := settings.Model
	if model == "" {
		model = settings.Provider.DefaultModel()
	}

	var (
		gen driven.TextGenerator
		err error
	)
	switch settings.Provider {
	case domain.AIProviderGemini:
		gen, err = NewGeminiGenerator(settings.APIKey, model, settings.BaseURL, settings.Timeout)
	case domain.AIProviderOpenAI:
		gen, err = NewOpenAIGenerator(settings.APIKey, model, settings.BaseURL, settings.Timeout)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewRateLimitedGenerator(gen, settings.RequestsPerMinute), nil
}
