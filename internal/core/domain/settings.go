package domain

import "time"

// AIProvider identifies the text generation provider
type AIProvider string

const (
	AIProviderGemini AIProvider = "gemini"
	AIProviderOpenAI AIProvider = "openai"
)

// LLMSettings configures the reasoning service
type LLMSettings struct {
	Provider AIProvider    `json:"provider"`
	Model    string        `json:"model"`
	APIKey   string        `json:"-"` // Never serialize to JSON
	BaseURL  string        `json:"base_url,omitempty"`
	Timeout  time.Duration `json:"timeout"`

	// RequestsPerMinute caps outbound generation calls; 0 disables limiting
	RequestsPerMinute int `json:"requests_per_minute"`
}

// IsConfigured returns true if LLM settings are properly configured
func (l *LLMSettings) IsConfigured() bool {
	if l == nil || l.Provider == "" {
		return false
	}
	return l.APIKey != ""
}

// DefaultModel returns the model used when none is configured
func (p AIProvider) DefaultModel() string {
	switch p {
	case AIProviderGemini:
		return "gemini-2.0-flash"
	case AIProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return ""
	}
}

// IsValid returns true if this is a known provider
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// CatalogBackend selects the catalog store implementation
type CatalogBackend string

const (
	CatalogPostgres CatalogBackend = "postgres" // database/sql + lib/pq
	CatalogGorm     CatalogBackend = "gorm"     // ORM over PostgreSQL
	CatalogSQLite   CatalogBackend = "sqlite"   // embedded single-file database
)

// IsValid returns true if this is a known backend
func (b CatalogBackend) IsValid() bool {
	switch b {
	case CatalogPostgres, CatalogGorm, CatalogSQLite:
		return true
	default:
		return false
	}
}
