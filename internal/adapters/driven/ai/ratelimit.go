package ai

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
)

// Ensure RateLimitedGenerator implements TextGenerator
var _ driven.TextGenerator = (*RateLimitedGenerator)(nil)

// RateLimitedGenerator caps the request rate of another generator.
// Callers wait for a token; a cancelled context returns its error.
type RateLimitedGenerator struct {
	next    driven.TextGenerator
	limiter *rate.Limiter
}

// NewRateLimitedGenerator wraps next with a requestsPerMinute limit.
// A non-positive limit returns next unchanged.
func NewRateLimitedGenerator(next driven.TextGenerator, requestsPerMinute int) driven.TextGenerator {
	if requestsPerMinute <= 0 {
		return next
	}
	every := time.Minute / time.Duration(requestsPerMinute)
	return &RateLimitedGenerator{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(every), 1),
	}
}

func (g *RateLimitedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return g.next.Generate(ctx, prompt)
}

func (g *RateLimitedGenerator) Model() string {
	return g.next.Model()
}

func (g *RateLimitedGenerator) Close() error {
	return g.next.Close()
}
