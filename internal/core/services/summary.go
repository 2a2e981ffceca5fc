package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
	"github.com/custodia-labs/docfinder/internal/core/ports/driving"
)

// Ensure summaryService implements SummaryService
var _ driving.SummaryService = (*summaryService)(nil)

// DefaultSummaryChars bounds the document text sent for summarization
const DefaultSummaryChars = 8000

const summaryInstruction = "Please provide a concise, 2-3 sentence summary of the following document content:\n\n"

// SummaryServiceConfig holds dependencies for the SummaryService
type SummaryServiceConfig struct {
	Fetcher   driven.DocumentFetcher
	Generator driven.TextGenerator
	Cache     driven.SummaryCache // optional
	Logger    *zap.Logger
	MaxChars  int

	// Policy, when set, is applied before the cache so a link restricted
	// after it was summarized is not served from cache.
	Policy *domain.LinkPolicy
}

// summaryService implements the SummaryService interface
type summaryService struct {
	fetcher   driven.DocumentFetcher
	generator driven.TextGenerator
	cache     driven.SummaryCache
	logger    *zap.Logger
	maxChars  int
	policy    *domain.LinkPolicy
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(cfg SummaryServiceConfig) driving.SummaryService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = DefaultSummaryChars
	}
	return &summaryService{
		fetcher:   cfg.Fetcher,
		generator: cfg.Generator,
		cache:     cfg.Cache,
		logger:    cfg.Logger,
		maxChars:  cfg.MaxChars,
		policy:    cfg.Policy,
	}
}

// Summarize fetches url and summarizes its text. Rejected links and
// fetch failures return the fetcher's reason without calling the
// reasoning service.
func (s *summaryService) Summarize(ctx context.Context, url string) string {
	if s.policy != nil {
		if verdict := s.policy.Classify(url); verdict != domain.LinkAllowed {
			s.logger.Info("document not summarized",
				zap.String("url", url),
				zap.String("verdict", string(verdict)))
			return domain.RejectedResult(verdict).Message()
		}
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, url)
		if err != nil {
			s.logger.Warn("summary cache read failed", zap.String("url", url), zap.Error(err))
		} else if ok {
			s.logger.Debug("summary cache hit", zap.String("url", url))
			return cached
		}
	}

	result := s.fetcher.Fetch(ctx, url)
	if !result.OK() {
		s.logger.Info("document not summarized",
			zap.String("url", url),
			zap.String("status", string(statusOf(result))))
		return result.Message()
	}

	summary, ok := s.summarize(ctx, result.Text)
	if ok && s.cache != nil {
		if err := s.cache.Set(ctx, url, summary); err != nil {
			s.logger.Warn("summary cache write failed", zap.String("url", url), zap.Error(err))
		}
	}
	return summary
}

// SummarizeText summarizes already-extracted text
func (s *summaryService) SummarizeText(ctx context.Context, text string) string {
	summary, _ := s.summarize(ctx, text)
	return summary
}

// summarize returns the summary and whether it came from the reasoning
// service. Failures come back as a user-facing message.
func (s *summaryService) summarize(ctx context.Context, text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ReasonEmpty, false
	}

	prompt := summaryInstruction + truncateRunes(text, s.maxChars)
	summary, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("summarization failed", zap.Error(err))
		return domain.ReasonErrorPrefix + err.Error(), false
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		s.logger.Warn("reasoning service returned an empty summary")
		return domain.ReasonErrorPrefix + "empty response from reasoning service", false
	}
	return summary, true
}

func statusOf(r *domain.FetchResult) domain.FetchStatus {
	if r == nil {
		return domain.FetchFailed
	}
	return r.Status
}
