package driving

import (
	"context"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

// SearchService handles single-shot document search
type SearchService interface {
	// Search extracts an intent from the query and returns matching records.
	// The result is never nil on success.
	Search(ctx context.Context, query string) ([]*domain.DocumentRecord, error)

	// SearchIntent runs an already structured intent against the catalog
	SearchIntent(ctx context.Context, intent domain.Intent) ([]*domain.DocumentRecord, error)
}
