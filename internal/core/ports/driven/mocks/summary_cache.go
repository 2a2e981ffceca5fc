package mocks

import (
	"context"
	"sync"
)

// MockSummaryCache is an in-memory SummaryCache for testing
type MockSummaryCache struct {
	mu      sync.Mutex
	entries map[string]string

	// GetErr and SetErr, when set, are returned from Get and Set
	GetErr error
	SetErr error
}

// NewMockSummaryCache creates a new MockSummaryCache
func NewMockSummaryCache() *MockSummaryCache {
	return &MockSummaryCache{entries: make(map[string]string)}
}

func (m *MockSummaryCache) Get(ctx context.Context, url string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	s, ok := m.entries[url]
	return s, ok, nil
}

func (m *MockSummaryCache) Set(ctx context.Context, url string, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.entries[url] = summary
	return nil
}

// Len returns the number of cached summaries
func (m *MockSummaryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
