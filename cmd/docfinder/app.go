package main

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/custodia-labs/docfinder/internal/adapters/driven/ai"
	"github.com/custodia-labs/docfinder/internal/adapters/driven/fetcher"
	"github.com/custodia-labs/docfinder/internal/adapters/driven/gormstore"
	"github.com/custodia-labs/docfinder/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/docfinder/internal/adapters/driven/redis"
	"github.com/custodia-labs/docfinder/internal/adapters/driven/sqlite"
	"github.com/custodia-labs/docfinder/internal/config"
	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
	"github.com/custodia-labs/docfinder/internal/core/ports/driving"
	"github.com/custodia-labs/docfinder/internal/core/services"
	"github.com/custodia-labs/docfinder/internal/normalisers"
	"github.com/custodia-labs/docfinder/internal/postprocessors"
)

// app holds every adapter and service built from one Config
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	catalog     driven.CatalogStore
	redisClient *goredis.Client            // nil when caching is disabled
	cache       *redisadapter.SummaryCache // nil when caching is disabled
	generator   driven.TextGenerator

	chat    driving.ChatService
	search  driving.SearchService
	summary driving.SummaryService
}

// newApp connects the catalog, the optional cache and the reasoning
// service, then builds the services on top of them.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	// ===== Catalog =====
	catalog, err := openCatalog(ctx, cfg.Catalog)
	if err != nil {
		return nil, err
	}
	a.catalog = catalog
	logger.Info("catalog connected", zap.String("backend", string(cfg.Catalog.Backend)))

	// ===== Summary cache (optional) =====
	if cfg.Cache.RedisURL != "" {
		client, err := redisadapter.Connect(ctx, cfg.Cache.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redisClient = client
		a.cache = redisadapter.NewSummaryCache(client, cfg.Cache.TTL)
		logger.Info("summary cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	}

	// ===== Reasoning service =====
	generator, err := ai.NewFactory().CreateTextGenerator(&cfg.LLM)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}
	if generator == nil {
		a.Close()
		return nil, fmt.Errorf("reasoning service is not configured for provider %s", cfg.LLM.Provider)
	}
	a.generator = generator
	logger.Info("reasoning service ready",
		zap.String("provider", string(cfg.LLM.Provider)),
		zap.String("model", generator.Model()))

	a.buildServices()
	return a, nil
}

// buildServices wires the core services over the connected adapters
func (a *app) buildServices() {
	cfg := a.cfg

	extractor := services.NewIntentExtractor(services.IntentExtractorConfig{
		Generator:       a.generator,
		Vocabulary:      cfg.Vocabulary,
		Logger:          a.logger.Named("intent"),
		MaxHistoryTurns: cfg.Assistant.HistoryTurns,
	})
	filters := services.NewFilterBuilder(cfg.Vocabulary)

	a.chat = services.NewChatService(services.ChatServiceConfig{
		Store:     a.catalog,
		Extractor: extractor,
		Filters:   filters,
		Logger:    a.logger.Named("chat"),
		Limit:     cfg.Assistant.ResultLimit,
	})
	a.search = services.NewSearchService(services.SearchServiceConfig{
		Store:     a.catalog,
		Extractor: extractor,
		Filters:   filters,
		Logger:    a.logger.Named("search"),
		Limit:     cfg.Assistant.ResultLimit,
	})

	registry := normalisers.DefaultRegistry()
	cleaner := postprocessors.DefaultPipeline()
	a.logger.Debug("document extraction configured",
		zap.Any("kinds", registry.Kinds()),
		zap.Strings("cleanup", cleaner.List()))

	docFetcher := fetcher.New(fetcher.Config{
		Policy:    cfg.Policy,
		Registry:  registry,
		Logger:    a.logger.Named("fetcher"),
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.Fetch.Timeout,
		MaxBytes:  cfg.Fetch.MaxBytes,
		Cleaner:   cleaner,
	})

	summaryCfg := services.SummaryServiceConfig{
		Fetcher:   docFetcher,
		Generator: a.generator,
		Logger:    a.logger.Named("summary"),
		MaxChars:  cfg.Assistant.SummaryMaxChars,
		Policy:    &cfg.Policy,
	}
	// A nil *SummaryCache in the interface would defeat the service's nil check
	if a.cache != nil {
		summaryCfg.Cache = a.cache
	}
	a.summary = services.NewSummaryService(summaryCfg)
}

// cachePinger returns the cache as a readiness check, or nil
func (a *app) cachePinger() interface{ Ping(context.Context) error } {
	if a.cache == nil {
		return nil
	}
	return a.cache
}

// Close releases every connection the app opened
func (a *app) Close() error {
	var errs []error
	if a.generator != nil {
		errs = append(errs, a.generator.Close())
	}
	if a.redisClient != nil {
		errs = append(errs, a.redisClient.Close())
	}
	if a.catalog != nil {
		errs = append(errs, a.catalog.Close())
	}
	return errors.Join(errs...)
}

// postgresConfig maps catalog settings onto the connection config shared
// by the postgres and gorm backends
func postgresConfig(cfg config.CatalogConfig) postgres.Config {
	pgCfg := postgres.DefaultConfig(cfg.DatabaseURL)
	pgCfg.StatementTimeout = cfg.StatementTimeout
	pgCfg.MaxOpenConns = cfg.MaxOpenConns
	pgCfg.MaxIdleConns = cfg.MaxIdleConns
	pgCfg.ConnMaxLifetime = cfg.ConnMaxLifetime
	pgCfg.ConnMaxIdleTime = cfg.ConnMaxIdleTime
	return pgCfg
}

// openCatalog opens the configured catalog backend
func openCatalog(ctx context.Context, cfg config.CatalogConfig) (driven.CatalogStore, error) {
	switch cfg.Backend {
	case domain.CatalogPostgres:
		db, err := postgres.Connect(ctx, postgresConfig(cfg))
		if err != nil {
			return nil, err
		}
		return postgres.NewCatalogStore(db), nil
	case domain.CatalogGorm:
		store, err := gormstore.Open(ctx, postgresConfig(cfg))
		if err != nil {
			return nil, err
		}
		return store, nil
	case domain.CatalogSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidBackend, cfg.Backend)
	}
}
