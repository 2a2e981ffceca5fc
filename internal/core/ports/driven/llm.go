package driven

import (
	"context"
)

// TextGenerator is the external reasoning service: text in, text out.
// The core depends on nothing else about the provider.
type TextGenerator interface {
	// Generate sends a prompt and returns the raw completion text
	Generate(ctx context.Context, prompt string) (string, error)

	// Model returns the model name being used
	Model() string

	// Close releases resources held by the generator
	Close() error
}

// SummaryCache stores successful document summaries keyed by URL.
// A miss returns ok=false with a nil error.
type SummaryCache interface {
	Get(ctx context.Context, url string) (summary string, ok bool, err error)
	Set(ctx context.Context, url string, summary string) error
}
