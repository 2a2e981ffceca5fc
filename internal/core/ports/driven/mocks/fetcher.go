package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

// MockDocumentFetcher returns canned results keyed by URL
type MockDocumentFetcher struct {
	mu      sync.Mutex
	results map[string]*domain.FetchResult
	calls   []string
}

// NewMockDocumentFetcher creates a new MockDocumentFetcher
func NewMockDocumentFetcher() *MockDocumentFetcher {
	return &MockDocumentFetcher{results: make(map[string]*domain.FetchResult)}
}

// SetResult registers the result returned for url
func (m *MockDocumentFetcher) SetResult(url string, result *domain.FetchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[url] = result
}

// SetText registers plain document text for url
func (m *MockDocumentFetcher) SetText(url, text string) {
	m.SetResult(url, &domain.FetchResult{Status: domain.FetchOK, Text: text, ContentKind: domain.ContentHTML})
}

func (m *MockDocumentFetcher) Fetch(ctx context.Context, url string) *domain.FetchResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, url)
	if r, ok := m.results[url]; ok {
		return r
	}
	return &domain.FetchResult{Status: domain.FetchFailed, Reason: domain.ReasonErrorPrefix + "404 Not Found"}
}

// Calls returns the URLs fetched so far
func (m *MockDocumentFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}
