package postprocessors

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TextPipeline = (*Pipeline)(nil)

// Pipeline implements TextPipeline.
// It chains cleanup processors in order over extracted document text.
type Pipeline struct {
	mu         sync.RWMutex
	processors []driven.TextProcessor
	sorted     bool
}

// NewPipeline creates a new text pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		processors: make([]driven.TextProcessor, 0),
	}
}

// Add adds a processor to the pipeline.
// Processors are sorted by Order() before processing.
func (p *Pipeline) Add(processor driven.TextProcessor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processors = append(p.processors, processor)
	p.sorted = false
}

// Process applies all processors in order.
func (p *Pipeline) Process(text string) string {
	for _, proc := range p.ordered() {
		text = proc.Process(text)
	}
	return text
}

func (p *Pipeline) ordered() []driven.TextProcessor {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.sorted {
		sort.SliceStable(p.processors, func(i, j int) bool {
			return p.processors[i].Order() < p.processors[j].Order()
		})
		p.sorted = true
	}

	processors := make([]driven.TextProcessor, len(p.processors))
	copy(processors, p.processors)
	return processors
}

// List returns processor names in order.
func (p *Pipeline) List() []string {
	processors := p.ordered()
	names := make([]string, len(processors))
	for i, proc := range processors {
		names[i] = proc.Name()
	}
	return names
}

// DefaultPipeline creates a pipeline with the default processors.
func DefaultPipeline() *Pipeline {
	p := NewPipeline()
	p.Add(NewControlCharStripper())
	p.Add(NewWhitespaceNormalizer())
	p.Add(NewDeduplicator(DefaultDeduplicatorConfig()))
	return p
}

// ControlCharStripper removes characters PDF and HTML extraction leave
// behind: NULs and other control codes, replacement characters, byte
// order marks and zero-width spaces. Newlines and tabs survive.
type ControlCharStripper struct{}

// Verify interface compliance
var _ driven.TextProcessor = (*ControlCharStripper)(nil)

// NewControlCharStripper creates a new control character stripper.
func NewControlCharStripper() *ControlCharStripper {
	return &ControlCharStripper{}
}

// Process drops invisible and control characters.
func (c *ControlCharStripper) Process(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\t', '\r':
			return r
		case '\uFFFD', '\uFEFF', '\u200B', '\u200C', '\u200D', '\u2060':
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}

// Name returns the processor name.
func (c *ControlCharStripper) Name() string {
	return "control-char-stripper"
}

// Order returns 0 - stripping runs first.
func (c *ControlCharStripper) Order() int {
	return 0
}

// WhitespaceNormalizer normalizes whitespace in text.
type WhitespaceNormalizer struct{}

// Verify interface compliance
var _ driven.TextProcessor = (*WhitespaceNormalizer)(nil)

// NewWhitespaceNormalizer creates a new whitespace normalizer.
func NewWhitespaceNormalizer() *WhitespaceNormalizer {
	return &WhitespaceNormalizer{}
}

// Process collapses runs of spaces and tabs within each line, trims lines
// and keeps at most one blank line between paragraphs.
func (w *WhitespaceNormalizer) Process(text string) string {
	// Normalize line endings
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")

	// Remove excessive blank lines
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(text)
}

// Name returns the processor name.
func (w *WhitespaceNormalizer) Name() string {
	return "whitespace-normalizer"
}

// Order returns 10 - runs after stripping, before deduplication.
func (w *WhitespaceNormalizer) Order() int {
	return 10
}

// DeduplicatorConfig configures the deduplicator.
type DeduplicatorConfig struct {
	// MinDuplicateLength is the minimum sentence length to check for duplicates
	MinDuplicateLength int
}

// DefaultDeduplicatorConfig returns sensible defaults.
func DefaultDeduplicatorConfig() DeduplicatorConfig {
	return DeduplicatorConfig{
		MinDuplicateLength: 30,
	}
}

// Deduplicator removes repeated sentences, typically page headers and
// footers that PDF extraction emits once per page.
type Deduplicator struct {
	config DeduplicatorConfig
}

// Verify interface compliance
var _ driven.TextProcessor = (*Deduplicator)(nil)

// NewDeduplicator creates a new deduplicator with the given config.
func NewDeduplicator(config DeduplicatorConfig) *Deduplicator {
	return &Deduplicator{config: config}
}

// Process keeps the first occurrence of each sentence. Sentences shorter
// than MinDuplicateLength are always kept.
func (d *Deduplicator) Process(text string) string {
	segments := splitSentences(text)
	if len(segments) <= 1 {
		return text
	}

	seen := make(map[string]bool)
	var b strings.Builder
	b.Grow(len(text))

	for _, seg := range segments {
		// Normalize for comparison
		normalized := strings.ToLower(strings.TrimSpace(seg))
		if len(normalized) >= d.config.MinDuplicateLength {
			if seen[normalized] {
				continue
			}
			seen[normalized] = true
		}
		b.WriteString(seg)
	}

	return strings.TrimSpace(b.String())
}

// Name returns the processor name.
func (d *Deduplicator) Name() string {
	return "deduplicator"
}

// Order returns 20 - deduplication compares normalized whitespace.
func (d *Deduplicator) Order() int {
	return 20
}

// splitSentences cuts text after sentence punctuation followed by a space
// and after newlines. Each segment keeps its trailing separator so that
// joining all segments restores the input.
func splitSentences(text string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			segments = append(segments, text[start:i+1])
			start = i + 1
		case '.', '!', '?':
			if i+1 < len(text) && text[i+1] == ' ' {
				segments = append(segments, text[start:i+2])
				start = i + 2
				i++
			}
		}
	}
	if start < len(text) {
		segments = append(segments, text[start:])
	}
	return segments
}
