package postgres

import (
	"context"

	"github.com/custodia-labs/docfinder/internal/adapters/driven/catalogsql"
	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore implements driven.CatalogStore over content_repo using
// ILIKE matches with bound parameters.
type CatalogStore struct {
	db *DB
}

// NewCatalogStore creates a new CatalogStore
func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// Query returns at most limit records matching p.
// Rows are released on every exit path by catalogsql.
func (s *CatalogStore) Query(ctx context.Context, p domain.Predicate, limit int) ([]*domain.DocumentRecord, error) {
	return catalogsql.Postgres.Query(ctx, s.db, p, limit)
}

// Ping checks if the database is reachable
func (s *CatalogStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the connection pool
func (s *CatalogStore) Close() error {
	return s.db.Close()
}
