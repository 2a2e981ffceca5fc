package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

// MockCatalogStore is an in-memory CatalogStore that evaluates predicates
// with domain.Predicate.Matches.
type MockCatalogStore struct {
	mu      sync.RWMutex
	records []*domain.DocumentRecord

	// Err, when set, is returned from Query
	Err error

	// Queries records every predicate passed to Query
	Queries []domain.Predicate
}

// NewMockCatalogStore creates a new MockCatalogStore holding records
func NewMockCatalogStore(records ...*domain.DocumentRecord) *MockCatalogStore {
	return &MockCatalogStore{records: records}
}

// Add appends records to the catalog
func (m *MockCatalogStore) Add(records ...*domain.DocumentRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
}

func (m *MockCatalogStore) Query(ctx context.Context, p domain.Predicate, limit int) ([]*domain.DocumentRecord, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, p)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]*domain.DocumentRecord, 0)
	if p.IsEmpty() {
		return results, nil
	}
	for _, r := range m.records {
		if limit > 0 && len(results) >= limit {
			break
		}
		if p.Matches(r) {
			results = append(results, r)
		}
	}
	return results, nil
}

// QueryCount returns how many times Query was called
func (m *MockCatalogStore) QueryCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Queries)
}

func (m *MockCatalogStore) Ping(ctx context.Context) error {
	return m.Err
}

func (m *MockCatalogStore) Close() error {
	return nil
}
