package driven

import (
	"context"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

// DocumentFetcher retrieves a linked document and normalizes it to plain text.
// Policy rejections, network failures and empty extractions are reported
// through the result status, never as errors; the returned text is not
// truncated.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) *domain.FetchResult
}
