package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
	"github.com/custodia-labs/docfinder/internal/core/ports/driving"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// SearchServiceConfig holds dependencies for the SearchService
type SearchServiceConfig struct {
	Store     driven.CatalogStore
	Extractor *IntentExtractor
	Filters   *FilterBuilder
	Logger    *zap.Logger
	Limit     int
}

// searchService implements the SearchService interface
type searchService struct {
	catalog   *catalogSearcher
	extractor *IntentExtractor
	logger    *zap.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(cfg SearchServiceConfig) driving.SearchService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &searchService{
		catalog:   newCatalogSearcher(cfg.Store, cfg.Filters, cfg.Limit, cfg.Logger),
		extractor: cfg.Extractor,
		logger:    cfg.Logger,
	}
}

// Search extracts an intent from a single query and runs it. A
// conversational reply is not useful here, so the raw query terms are
// searched instead.
func (s *searchService) Search(ctx context.Context, query string) ([]*domain.DocumentRecord, error) {
	ext := s.extractor.Extract(ctx, query, nil)

	intent := ext.Intent
	if ext.Kind == domain.ExtractionConversation {
		intent = domain.KeywordIntent(query)
	}
	return s.catalog.search(ctx, intent)
}

// SearchIntent runs an already-structured intent
func (s *searchService) SearchIntent(ctx context.Context, intent domain.Intent) ([]*domain.DocumentRecord, error) {
	return s.catalog.search(ctx, intent)
}

// catalogSearcher is the filter-then-query step shared by chat and search
type catalogSearcher struct {
	store   driven.CatalogStore
	filters *FilterBuilder
	limit   int
	logger  *zap.Logger
}

func newCatalogSearcher(store driven.CatalogStore, filters *FilterBuilder, limit int, logger *zap.Logger) *catalogSearcher {
	if filters == nil {
		filters = NewFilterBuilder(nil)
	}
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	return &catalogSearcher{store: store, filters: filters, limit: limit, logger: logger}
}

// search never queries the store with an empty predicate
func (c *catalogSearcher) search(ctx context.Context, intent domain.Intent) ([]*domain.DocumentRecord, error) {
	start := time.Now()

	predicate := c.filters.Build(intent)
	if predicate.IsEmpty() {
		return []*domain.DocumentRecord{}, nil
	}

	records, err := c.store.Query(ctx, predicate, c.limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	if records == nil {
		records = []*domain.DocumentRecord{}
	}

	c.logger.Debug("catalog search",
		zap.Int("clauses", len(predicate.Clauses)),
		zap.Int("results", len(records)),
		zap.Duration("took", time.Since(start)))
	return records, nil
}
