// Package fetcher downloads linked documents and hands them to the
// normaliser registry.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentFetcher = (*HTTPFetcher)(nil)

const (
	// DefaultUserAgent is a desktop browser string; some document hosts
	// refuse obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	DefaultTimeout = 20 * time.Second

	// DefaultMaxBytes caps a downloaded document body
	DefaultMaxBytes = 20 << 20

	maxRedirects = 10
)

// Config configures the HTTPFetcher
type Config struct {
	Policy    domain.LinkPolicy
	Registry  driven.NormaliserRegistry
	Logger    *zap.Logger
	UserAgent string
	Timeout   time.Duration
	MaxBytes  int64

	// Cleaner post-processes extracted text; nil leaves it as extracted
	Cleaner driven.TextPipeline

	// Client overrides the HTTP client; Timeout and redirects are then
	// the caller's responsibility.
	Client *http.Client
}

// HTTPFetcher implements driven.DocumentFetcher over HTTP(S)
type HTTPFetcher struct {
	policy    domain.LinkPolicy
	registry  driven.NormaliserRegistry
	logger    *zap.Logger
	userAgent string
	maxBytes  int64
	cleaner   driven.TextPipeline
	client    *http.Client
}

// New creates a new HTTPFetcher
func New(cfg Config) *HTTPFetcher {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		}
	}

	return &HTTPFetcher{
		policy:    cfg.Policy,
		registry:  cfg.Registry,
		logger:    cfg.Logger,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBytes,
		cleaner:   cfg.Cleaner,
		client:    cfg.Client,
	}
}

// Fetch classifies rawURL, downloads it, and extracts plain text.
// The policy check happens before any network access.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) *domain.FetchResult {
	if verdict := f.policy.Classify(rawURL); verdict != domain.LinkAllowed {
		f.logger.Info("link rejected by policy",
			zap.String("url", rawURL),
			zap.String("verdict", string(verdict)))
		return domain.RejectedResult(verdict)
	}

	body, contentType, err := f.download(ctx, rawURL)
	if err != nil {
		f.logger.Warn("document fetch failed", zap.String("url", rawURL), zap.Error(err))
		return domain.FailedResult(err)
	}

	normaliser := f.registry.Resolve(contentType, rawURL)
	if normaliser == nil {
		return domain.FailedResult(fmt.Errorf("no extractor for content type %q", contentType))
	}
	kind := normaliser.Kind()

	text, err := normaliser.Normalise(body)
	if err != nil {
		f.logger.Warn("text extraction failed",
			zap.String("url", rawURL),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return domain.FailedResult(err)
	}

	if f.cleaner != nil {
		text = f.cleaner.Process(text)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.EmptyResult()
	}

	f.logger.Debug("document fetched",
		zap.String("url", rawURL),
		zap.String("kind", string(kind)),
		zap.Int("bytes", len(body)),
		zap.Int("chars", len(text)))

	return &domain.FetchResult{
		Status:      domain.FetchOK,
		Text:        text,
		ContentKind: kind,
	}
}

func (f *HTTPFetcher) download(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("%d %s for url: %s", resp.StatusCode, http.StatusText(resp.StatusCode), rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, "", errors.New("document exceeds size limit")
	}

	return body, resp.Header.Get("Content-Type"), nil
}
