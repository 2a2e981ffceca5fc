package services

import (
	"strings"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

// DefaultResultLimit caps the number of records returned per search
const DefaultResultLimit = 10

// keywordFields are the free-text columns each keyword is matched against
var keywordFields = []domain.Field{
	domain.FieldTitle,
	domain.FieldDescription,
	domain.FieldKeywords,
}

// docTypeFields covers catalogs where type metadata is missing or
// inconsistent: the type is also looked for in the free-text columns.
var docTypeFields = []domain.Field{
	domain.FieldDocType,
	domain.FieldTitle,
	domain.FieldDescription,
	domain.FieldKeywords,
}

// FilterBuilder turns an intent into a catalog predicate
type FilterBuilder struct {
	vocab *domain.Vocabulary
}

// NewFilterBuilder creates a FilterBuilder using vocab for acronym widening
func NewFilterBuilder(vocab *domain.Vocabulary) *FilterBuilder {
	if vocab == nil {
		vocab = domain.DefaultVocabulary()
	}
	return &FilterBuilder{vocab: vocab}
}

// Build creates the predicate for an intent.
//
// Clause groups are AND-combined: one product clause (the product or any
// of its acronyms), one document type clause, and one clause per keyword.
// An intent with nothing set yields an empty predicate, which callers
// must treat as zero results.
func (f *FilterBuilder) Build(intent domain.Intent) domain.Predicate {
	var b domain.PredicateBuilder

	if product := intent.ProductValue(); product != "" {
		b.Add(f.productClause(&b, product))
	}

	if docType := intent.DocTypeValue(); docType != "" {
		b.AnyOf(docType, docTypeFields...)
	}

	for _, kw := range intent.Keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		b.AnyOf(kw, keywordFields...)
	}

	return b.Build()
}

// productClause matches the product value plus every alias known for it.
// Unknown products get no widening.
func (f *FilterBuilder) productClause(b *domain.PredicateBuilder, product string) domain.Clause {
	values := []string{product}
	if p, ok := f.vocab.Lookup(product); ok {
		values = append(values, p.Name)
		values = append(values, p.Acronyms...)
	}

	seen := make(map[string]bool, len(values))
	clause := make(domain.Clause, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		clause = append(clause, domain.Match{Field: domain.FieldProduct, Param: b.Param(v)})
	}
	return clause
}
