package domain

import "strings"

// Role identifies the author of a conversation turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label returns the prompt label for the role.
// Anything that is not the user is rendered as the assistant.
func (r Role) Label() string {
	if r == RoleUser {
		return "User"
	}
	return "Assistant"
}

// ChatTurn is one caller-supplied message of prior conversation.
// History is never stored server-side; callers resend it on every request.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Intent is the structured search request derived from a user query
type Intent struct {
	Product  *string  `json:"product"`
	DocType  *string  `json:"docType"`
	Keywords []string `json:"keywords"`
}

// IsEmpty returns true when no search parameter is set
func (i Intent) IsEmpty() bool {
	return i.ProductValue() == "" && i.DocTypeValue() == "" && len(i.nonBlankKeywords()) == 0
}

// ProductValue returns the trimmed product or ""
func (i Intent) ProductValue() string {
	if i.Product == nil {
		return ""
	}
	return strings.TrimSpace(*i.Product)
}

// DocTypeValue returns the trimmed document type or ""
func (i Intent) DocTypeValue() string {
	if i.DocType == nil {
		return ""
	}
	return strings.TrimSpace(*i.DocType)
}

func (i Intent) nonBlankKeywords() []string {
	var out []string
	for _, k := range i.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// KeywordIntent builds the fail-soft intent for a raw query:
// no product, no document type, lowercase whitespace-split tokens.
func KeywordIntent(query string) Intent {
	return Intent{
		Keywords: strings.Fields(strings.ToLower(query)),
	}
}

// ExtractionKind distinguishes a structured intent from a conversational reply
type ExtractionKind string

const (
	ExtractionIntent       ExtractionKind = "intent"
	ExtractionConversation ExtractionKind = "conversation"
)

// Extraction is the result of one intent extraction call
type Extraction struct {
	Kind    ExtractionKind
	Intent  Intent
	Message string // conversational text when Kind is ExtractionConversation

	// Degraded is set when the reasoning service failed or replied with
	// malformed JSON and the intent was derived from the raw query.
	Degraded bool
}

// ResponseType is the chat response discriminator
type ResponseType string

const (
	ResponseDocuments    ResponseType = "documents"
	ResponseConversation ResponseType = "conversation"
)

// ChatResponse is the body returned by the chat endpoint
type ChatResponse struct {
	Type    ResponseType      `json:"type"`
	Message string            `json:"message"`
	Data    []*DocumentRecord `json:"data"`
}

// StrPtr returns a pointer to s, or nil for a blank string
func StrPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
