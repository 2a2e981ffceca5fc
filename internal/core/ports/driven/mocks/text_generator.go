package mocks

import (
	"context"
	"sync"
)

// MockTextGenerator is a scripted TextGenerator for testing.
// Responses are returned in order; the last one repeats once exhausted.
type MockTextGenerator struct {
	mu        sync.Mutex
	responses []string
	prompts   []string

	// Err, when set, is returned instead of a response
	Err error

	// GenerateFn overrides the scripted responses when set
	GenerateFn func(ctx context.Context, prompt string) (string, error)
}

// NewMockTextGenerator creates a generator replying with responses in order
func NewMockTextGenerator(responses ...string) *MockTextGenerator {
	return &MockTextGenerator{responses: responses}
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp, nil
}

// Prompts returns every prompt received so far
func (m *MockTextGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// LastPrompt returns the most recent prompt or ""
func (m *MockTextGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

func (m *MockTextGenerator) Model() string {
	return "mock-model"
}

func (m *MockTextGenerator) Close() error {
	return nil
}
