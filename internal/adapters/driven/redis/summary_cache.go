package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SummaryCache = (*SummaryCache)(nil)

const (
	// summaryPrefix namespaces summary keys
	summaryPrefix = "summary:"

	// DefaultSummaryTTL is how long a summary stays cached
	DefaultSummaryTTL = 24 * time.Hour
)

// SummaryCache implements driven.SummaryCache using Redis.
// Keys are hashed so arbitrary URLs stay within key-size limits.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a new Redis-backed SummaryCache
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &SummaryCache{client: client, ttl: ttl}
}

// Connect parses a redis:// URL and verifies the server is reachable
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Get returns the cached summary for url
func (c *SummaryCache) Get(ctx context.Context, url string) (string, bool, error) {
	summary, err := c.client.Get(ctx, summaryKey(url)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get summary: %w", err)
	}
	return summary, true, nil
}

// Set stores a summary for url with the cache TTL
func (c *SummaryCache) Set(ctx context.Context, url string, summary string) error {
	if err := c.client.Set(ctx, summaryKey(url), summary, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set summary: %w", err)
	}
	return nil
}

// Ping checks if Redis is reachable
func (c *SummaryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func summaryKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return summaryPrefix + hex.EncodeToString(sum[:])
}
