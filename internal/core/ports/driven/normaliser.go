package driven

import "github.com/custodia-labs/docfinder/internal/core/domain"

// Normaliser turns a downloaded document body into plain text.
type Normaliser interface {
	// Kind names the content family this normaliser extracts
	Kind() domain.ContentKind

	// Accepts reports whether a response belongs to this normaliser.
	// Both arguments arrive lowercased: contentType is the media type
	// without parameters and path is the URL path. Either may be empty.
	Accepts(contentType, path string) bool

	// Normalise extracts plain text from content
	Normalise(content []byte) (string, error)

	// Priority orders normalisers that accept the same response
	// (higher wins). Fallbacks sit below 10.
	Priority() int
}

// NormaliserRegistry picks the normaliser for a fetched response
type NormaliserRegistry interface {
	// Register adds a normaliser
	Register(normaliser Normaliser)

	// Resolve returns the highest priority normaliser accepting the
	// response, or nil when none does.
	Resolve(contentType, rawURL string) Normaliser

	// Kinds lists registered content kinds, highest priority first
	Kinds() []domain.ContentKind
}
