// Package normalisers turns fetched document bytes into plain text.
package normalisers

import (
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry resolves responses to normalisers by priority.
// Normalisers are kept sorted, highest priority first; equal priorities
// keep registration order.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a normaliser.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, normaliser)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// Resolve returns the first normaliser, by priority, that accepts the
// response. A URL that does not parse contributes an empty path.
func (r *Registry) Resolve(contentType, rawURL string) driven.Normaliser {
	contentType = mediaType(contentType)
	path := ""
	if u, err := url.Parse(rawURL); err == nil {
		path = strings.ToLower(u.Path)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.normalisers {
		if n.Accepts(contentType, path) {
			return n
		}
	}
	return nil
}

// Kinds lists the registered content kinds, highest priority first.
func (r *Registry) Kinds() []domain.ContentKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[domain.ContentKind]bool)
	var kinds []domain.ContentKind
	for _, n := range r.normalisers {
		if !seen[n.Kind()] {
			seen[n.Kind()] = true
			kinds = append(kinds, n.Kind())
		}
	}
	return kinds
}

// mediaType lowercases a Content-Type header and drops its parameters.
func mediaType(contentType string) string {
	contentType = strings.ToLower(contentType)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType)
}

// DefaultRegistry creates a registry with the built-in normalisers.
// HTML accepts everything, so every fetch has an extractor.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(&PDFNormaliser{})
	r.Register(&HTMLNormaliser{})

	return r
}
