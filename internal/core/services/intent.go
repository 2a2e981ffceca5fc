package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
)

const (
	// DefaultHistoryTurns bounds how many prior turns go into the prompt
	DefaultHistoryTurns = 10

	// maxHistoryLine bounds each rendered history line
	maxHistoryLine = 300
)

// fileFormats are tokens that describe a file format, not a document type
var fileFormats = map[string]bool{
	"pdf": true, "doc": true, "docx": true, "ppt": true, "pptx": true,
	"xls": true, "xlsx": true, "mp4": true, "html": true, "txt": true,
}

// IntentExtractorConfig holds dependencies for the IntentExtractor
type IntentExtractorConfig struct {
	Generator       driven.TextGenerator
	Vocabulary      *domain.Vocabulary
	Logger          *zap.Logger
	MaxHistoryTurns int
}

// IntentExtractor turns a natural-language query into search parameters
// using the reasoning service. It never fails: when the service errors or
// replies with malformed JSON the query degrades to a keyword search.
type IntentExtractor struct {
	generator       driven.TextGenerator
	vocab           *domain.Vocabulary
	logger          *zap.Logger
	maxHistoryTurns int
}

// NewIntentExtractor creates a new IntentExtractor
func NewIntentExtractor(cfg IntentExtractorConfig) *IntentExtractor {
	if cfg.Vocabulary == nil {
		cfg.Vocabulary = domain.DefaultVocabulary()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MaxHistoryTurns <= 0 {
		cfg.MaxHistoryTurns = DefaultHistoryTurns
	}
	return &IntentExtractor{
		generator:       cfg.Generator,
		vocab:           cfg.Vocabulary,
		logger:          cfg.Logger,
		maxHistoryTurns: cfg.MaxHistoryTurns,
	}
}

// Extract interprets query in the context of history (oldest first)
func (e *IntentExtractor) Extract(ctx context.Context, query string, history []domain.ChatTurn) domain.Extraction {
	prompt := e.BuildPrompt(query, history)

	reply, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		e.logger.Warn("intent extraction failed, falling back to keywords",
			zap.Error(fmt.Errorf("%w: %v", domain.ErrUpstream, err)))
		return e.fallback(query)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		e.logger.Warn("reasoning service returned an empty reply, falling back to keywords")
		return e.fallback(query)
	}

	intent, status := parseIntentReply(reply)
	switch status {
	case replyMalformed:
		e.logger.Warn("reasoning service returned malformed JSON, falling back to keywords",
			zap.String("reply", truncateRunes(reply, 200)))
		return e.fallback(query)
	case replyConversation:
		return domain.Extraction{
			Kind:    domain.ExtractionConversation,
			Message: stripCodeFences(reply),
		}
	}

	intent = e.normalise(query, intent)
	e.logger.Debug("extracted intent",
		zap.String("product", intent.ProductValue()),
		zap.String("doc_type", intent.DocTypeValue()),
		zap.Strings("keywords", intent.Keywords))

	return domain.Extraction{Kind: domain.ExtractionIntent, Intent: intent}
}

func (e *IntentExtractor) fallback(query string) domain.Extraction {
	return domain.Extraction{
		Kind:     domain.ExtractionIntent,
		Intent:   domain.KeywordIntent(query),
		Degraded: true,
	}
}

// normalise applies the extraction rules deterministically on top of the
// model's answer: canonical names, file formats as keywords, and no
// keywords when the whole query names a product.
func (e *IntentExtractor) normalise(query string, intent domain.Intent) domain.Intent {
	if p, ok := e.vocab.Lookup(intent.ProductValue()); ok {
		intent.Product = domain.StrPtr(p.Name)
	}

	if dt := intent.DocTypeValue(); dt != "" {
		if fileFormats[strings.ToLower(dt)] {
			intent.Keywords = append(intent.Keywords, strings.ToLower(dt))
			intent.DocType = nil
		} else {
			intent.DocType = domain.StrPtr(e.vocab.CanonicalDocType(dt))
		}
	}

	if p, ok := e.vocab.Lookup(query); ok {
		if intent.Product == nil {
			intent.Product = domain.StrPtr(p.Name)
		}
		intent.Keywords = nil
	}

	return intent
}

// BuildPrompt renders the fixed extraction instruction for a query
func (e *IntentExtractor) BuildPrompt(query string, history []domain.ChatTurn) string {
	var sb strings.Builder

	sb.WriteString("You are WSM Content Assistant, a friendly, conversational expert on software product documentation.\n")
	sb.WriteString("Your job is to turn the user's latest message into a search of the document catalog. ")
	sb.WriteString("Use the conversation history to understand context: if the user first asks for \"case studies for Product A\" ")
	sb.WriteString("and then says \"what about Product B\", they still want case studies, now for Product B.\n\n")

	sb.WriteString("Known products (acronyms in parentheses):\n")
	for _, p := range e.vocab.Products {
		if len(p.Acronyms) > 0 {
			fmt.Fprintf(&sb, "- %s (%s)\n", p.Name, strings.Join(p.Acronyms, ", "))
		} else {
			fmt.Fprintf(&sb, "- %s\n", p.Name)
		}
	}

	sb.WriteString("\nKnown document types:\n")
	for _, dt := range e.vocab.DocTypes {
		fmt.Fprintf(&sb, "- %s\n", dt)
	}

	sb.WriteString("\nRules:\n")
	sb.WriteString("1. If you have enough information to search, reply ONLY with one JSON object: ")
	sb.WriteString(`{"product": string or null, "docType": string or null, "keywords": [string, ...]}` + "\n")
	sb.WriteString("2. Use the canonical product name and document type from the lists above.\n")
	sb.WriteString("3. If the message is exactly a product name or one of its acronyms, set \"product\" and leave \"keywords\" empty.\n")
	sb.WriteString("4. File formats such as \"PDF\" are keywords, never document types.\n")
	sb.WriteString("5. If the request is too vague even with the history, ask a short clarifying question in plain text.\n")
	sb.WriteString("6. If the user is just chatting, reply naturally in plain text without JSON.\n")

	if rendered := e.renderHistory(history); rendered != "" {
		sb.WriteString("\nConversation history:\n")
		sb.WriteString(rendered)
	}

	fmt.Fprintf(&sb, "\nUser's latest message: %q\n", query)
	return sb.String()
}

// renderHistory keeps the most recent turns, one line each: the role label
// and the first line of the content.
func (e *IntentExtractor) renderHistory(history []domain.ChatTurn) string {
	start := 0
	if len(history) > e.maxHistoryTurns {
		start = len(history) - e.maxHistoryTurns
	}

	var sb strings.Builder
	for _, turn := range history[start:] {
		line := strings.TrimSpace(turn.Content)
		if i := strings.IndexAny(line, "\r\n"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", turn.Role.Label(), truncateRunes(line, maxHistoryLine))
	}
	return sb.String()
}

type replyStatus int

const (
	replyIntent replyStatus = iota
	replyConversation
	replyMalformed
)

// parseIntentReply classifies a model reply. A reply without any JSON
// object is conversation; an object that does not parse is malformed; a
// parsed object with no usable key is conversation.
func parseIntentReply(reply string) (domain.Intent, replyStatus) {
	obj := extractJSONObject(stripCodeFences(reply))
	if obj == "" {
		return domain.Intent{}, replyConversation
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return domain.Intent{}, replyMalformed
	}

	intent := domain.Intent{
		Product:  domain.StrPtr(rawString(raw, "product")),
		DocType:  domain.StrPtr(rawString(raw, "docType", "doc_type", "document_type")),
		Keywords: rawKeywords(raw["keywords"]),
	}
	if intent.IsEmpty() {
		return domain.Intent{}, replyConversation
	}
	return intent, replyIntent
}

// rawString returns the first non-null string value among keys.
// The literal strings "null" and "none" count as absent.
func rawString(raw map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			continue
		}
		s = strings.TrimSpace(s)
		switch strings.ToLower(s) {
		case "", "null", "none":
			continue
		}
		return s
	}
	return ""
}

// rawKeywords accepts a JSON array of strings or a comma-separated string
func rawKeywords(v json.RawMessage) []string {
	if len(v) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(v, &list); err != nil {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil
		}
		list = strings.Split(s, ",")
	}

	var out []string
	for _, k := range list {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// stripCodeFences removes markdown code fence lines (``` or ```json)
func stripCodeFences(s string) string {
	if !strings.Contains(s, "```") {
		return strings.TrimSpace(s)
	}
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// extractJSONObject returns the first balanced {...} span in s.
// Braces inside JSON string literals are ignored.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	// Unbalanced: hand back the tail so the caller reports it as malformed
	return s[start:]
}

// truncateRunes cuts s to at most n characters without splitting a rune
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
