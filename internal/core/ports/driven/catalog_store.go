package driven

import (
	"context"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

// CatalogStore reads document records from the content_repo catalog.
// Implementations must bind every predicate parameter and never
// interpolate literals into query text. An empty predicate yields no
// records without contacting the backend.
type CatalogStore interface {
	// Query returns at most limit records matching the predicate.
	// Ordering is storage order.
	Query(ctx context.Context, p domain.Predicate, limit int) ([]*domain.DocumentRecord, error)

	// Ping verifies the catalog backend is reachable
	Ping(ctx context.Context) error

	// Close releases the backend connection pool
	Close() error
}
