package domain

import (
	"fmt"
	"strings"
)

// Product is a canonical product name with its known acronyms
type Product struct {
	Name     string   `yaml:"name" json:"name"`
	Acronyms []string `yaml:"acronyms,omitempty" json:"acronyms"`
}

// Vocabulary is the static catalog vocabulary shared by the intent
// extractor (instruction text) and the filter builder (acronym widening).
// Every product in the instruction comes from Products, so the acronym
// table always has an entry for it, possibly empty.
type Vocabulary struct {
	Products []Product `yaml:"products" json:"products"`
	DocTypes []DocType `yaml:"doc_types" json:"doc_types"`
}

// DefaultVocabulary returns the built-in product and document type lists
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Products: []Product{
			{Name: "ADManager Plus", Acronyms: []string{"ADMP"}},
			{Name: "ADAudit Plus", Acronyms: []string{"ADAP"}},
			{Name: "ADSelfService Plus", Acronyms: []string{"ADSSP"}},
			{Name: "AD360", Acronyms: nil},
			{Name: "Log360", Acronyms: nil},
			{Name: "EventLog Analyzer", Acronyms: []string{"ELA"}},
			{Name: "M365 Manager Plus", Acronyms: []string{"M365MP"}},
			{Name: "Exchange Reporter Plus", Acronyms: []string{"ERP"}},
			{Name: "RecoveryManager Plus", Acronyms: []string{"RMP"}},
			{Name: "DataSecurity Plus", Acronyms: []string{"DSP"}},
			{Name: "SharePoint Manager Plus", Acronyms: []string{"SPMP"}},
			{Name: "Identity360", Acronyms: nil},
			{Name: "Password Manager Pro", Acronyms: []string{"PMP"}},
			{Name: "PAM360", Acronyms: nil},
		},
		DocTypes: AllDocTypes(),
	}
}

// Validate checks the vocabulary invariants
func (v *Vocabulary) Validate() error {
	if v == nil {
		return fmt.Errorf("%w: vocabulary is nil", ErrInvalidInput)
	}
	seen := make(map[string]bool, len(v.Products))
	for i, p := range v.Products {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			return fmt.Errorf("%w: product %d has no name", ErrInvalidInput, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate product %q", ErrInvalidInput, p.Name)
		}
		seen[name] = true
		for _, a := range p.Acronyms {
			if strings.TrimSpace(a) == "" {
				return fmt.Errorf("%w: product %q has a blank acronym", ErrInvalidInput, p.Name)
			}
		}
	}
	for _, dt := range v.DocTypes {
		if strings.TrimSpace(string(dt)) == "" {
			return fmt.Errorf("%w: blank document type", ErrInvalidInput)
		}
	}
	return nil
}

// Lookup finds a product by canonical name or acronym, case-insensitively
func (v *Vocabulary) Lookup(nameOrAcronym string) (*Product, bool) {
	needle := strings.ToLower(strings.TrimSpace(nameOrAcronym))
	if v == nil || needle == "" {
		return nil, false
	}
	for i := range v.Products {
		p := &v.Products[i]
		if strings.ToLower(p.Name) == needle {
			return p, true
		}
	}
	for i := range v.Products {
		p := &v.Products[i]
		for _, a := range p.Acronyms {
			if strings.ToLower(a) == needle {
				return p, true
			}
		}
	}
	return nil, false
}

// Acronyms returns the known acronyms for a canonical product name.
// Unknown products return nil: no widening, exact substring only.
func (v *Vocabulary) Acronyms(product string) []string {
	needle := strings.ToLower(strings.TrimSpace(product))
	if v == nil {
		return nil
	}
	for _, p := range v.Products {
		if strings.ToLower(p.Name) == needle {
			return p.Acronyms
		}
	}
	return nil
}

// IsExactProductMention reports whether the whole query is a product name
// or one of its acronyms.
func (v *Vocabulary) IsExactProductMention(query string) bool {
	_, ok := v.Lookup(query)
	return ok
}

// CanonicalDocType maps a document type to its canonical label,
// case-insensitively. Unknown values are returned trimmed but unchanged.
func (v *Vocabulary) CanonicalDocType(docType string) string {
	trimmed := strings.TrimSpace(docType)
	if v == nil {
		return trimmed
	}
	for _, dt := range v.DocTypes {
		if strings.EqualFold(string(dt), trimmed) {
			return string(dt)
		}
	}
	return trimmed
}
