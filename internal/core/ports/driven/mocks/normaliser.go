package mocks

import (
	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
)

// MockNormaliser is a scripted Normaliser. It accepts every response
// unless AcceptsFn says otherwise.
type MockNormaliser struct {
	KindValue     domain.ContentKind
	PriorityValue int
	AcceptsFn     func(contentType, path string) bool
	NormaliseFn   func(content []byte) (string, error)

	// Calls counts Normalise invocations
	Calls int
}

func NewMockNormaliser(kind domain.ContentKind) *MockNormaliser {
	return &MockNormaliser{KindValue: kind, PriorityValue: 50}
}

func (m *MockNormaliser) Kind() domain.ContentKind {
	return m.KindValue
}

func (m *MockNormaliser) Accepts(contentType, path string) bool {
	if m.AcceptsFn != nil {
		return m.AcceptsFn(contentType, path)
	}
	return true
}

func (m *MockNormaliser) Normalise(content []byte) (string, error) {
	m.Calls++
	if m.NormaliseFn != nil {
		return m.NormaliseFn(content)
	}
	return string(content), nil
}

func (m *MockNormaliser) Priority() int {
	return m.PriorityValue
}

// ResolveCall records the arguments of one Resolve call
type ResolveCall struct {
	ContentType string
	URL         string
}

// MockNormaliserRegistry resolves every response to a single normaliser
type MockNormaliserRegistry struct {
	normaliser driven.Normaliser

	// Resolved records every Resolve call
	Resolved []ResolveCall
}

// NewMockNormaliserRegistry returns a registry resolving to n; a nil n
// makes every Resolve miss.
func NewMockNormaliserRegistry(n driven.Normaliser) *MockNormaliserRegistry {
	return &MockNormaliserRegistry{normaliser: n}
}

func (m *MockNormaliserRegistry) Register(normaliser driven.Normaliser) {
	m.normaliser = normaliser
}

func (m *MockNormaliserRegistry) Resolve(contentType, rawURL string) driven.Normaliser {
	m.Resolved = append(m.Resolved, ResolveCall{ContentType: contentType, URL: rawURL})
	return m.normaliser
}

func (m *MockNormaliserRegistry) Kinds() []domain.ContentKind {
	if m.normaliser == nil {
		return nil
	}
	return []domain.ContentKind{m.normaliser.Kind()}
}
