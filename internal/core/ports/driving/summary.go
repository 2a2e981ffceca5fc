package driving

import (
	"context"
)

// SummaryService produces short prose summaries of linked documents.
// Both methods always return displayable text: failures and policy
// rejections come back as descriptive messages, not errors.
type SummaryService interface {
	// Summarize fetches the document behind url and summarizes it
	Summarize(ctx context.Context, url string) string

	// SummarizeText summarizes already normalized document text
	SummarizeText(ctx context.Context, text string) string
}
