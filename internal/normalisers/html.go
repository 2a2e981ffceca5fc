package normalisers

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

// skippedElements never contribute visible document text
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"nav":      true,
	"footer":   true,
	"header":   true,
	"template": true,
	"iframe":   true,
	"svg":      true,
}

// HTMLNormaliser extracts visible text from HTML pages.
// It is also the fallback for untyped or unknown content.
type HTMLNormaliser struct{}

// Normalise parses content and joins its text nodes with single spaces,
// so adjacent inline elements never run together.
func (n *HTMLNormaliser) Normalise(content []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var parts []string
	collectText(doc, &parts)
	return strings.Join(parts, " "), nil
}

func (n *HTMLNormaliser) Kind() domain.ContentKind {
	return domain.ContentHTML
}

// Accepts every response; anything not claimed by a more specific
// normaliser is treated as HTML.
func (n *HTMLNormaliser) Accepts(contentType, path string) bool {
	return true
}

func (n *HTMLNormaliser) Priority() int {
	return 5
}

func collectText(node *html.Node, parts *[]string) {
	switch node.Type {
	case html.ElementNode:
		if skippedElements[node.Data] {
			return
		}
	case html.TextNode:
		if text := strings.Join(strings.Fields(node.Data), " "); text != "" {
			*parts = append(*parts, text)
		}
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}

	for c := node.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
