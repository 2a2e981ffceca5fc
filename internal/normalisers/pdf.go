package normalisers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

// PDFNormaliser extracts plain text page by page
type PDFNormaliser struct{}

// Normalise concatenates the plain text of every page, separated by a
// space. Pages that fail to decode are skipped; a document that cannot
// be opened at all is an error.
func (n *PDFNormaliser) Normalise(content []byte) (text string, err error) {
	// The parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString(" ")
	}

	return strings.TrimSpace(sb.String()), nil
}

func (n *PDFNormaliser) Kind() domain.ContentKind {
	return domain.ContentPDF
}

// Accepts a content type mentioning pdf, or a .pdf path whatever the
// server claims the type is.
func (n *PDFNormaliser) Accepts(contentType, path string) bool {
	return strings.Contains(contentType, "pdf") || strings.HasSuffix(path, ".pdf")
}

func (n *PDFNormaliser) Priority() int {
	return 80
}
