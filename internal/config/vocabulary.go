package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

// VocabularyFile is the on-disk form of the catalog vocabulary and the
// link policy. Omitted sections fall back to the built-in defaults.
type VocabularyFile struct {
	Products   []domain.Product   `yaml:"products"`
	DocTypes   []domain.DocType   `yaml:"doc_types"`
	LinkPolicy *domain.LinkPolicy `yaml:"link_policy,omitempty"`
}

// LoadVocabularyFile reads and validates a vocabulary file
func LoadVocabularyFile(path string) (*VocabularyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}

	var vf VocabularyFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return nil, fmt.Errorf("parse vocabulary file %s: %w", path, err)
	}
	if err := vf.Vocabulary().Validate(); err != nil {
		return nil, fmt.Errorf("vocabulary file %s: %w", path, err)
	}
	return &vf, nil
}

// Vocabulary returns the file's vocabulary with defaults applied
func (vf *VocabularyFile) Vocabulary() *domain.Vocabulary {
	v := domain.DefaultVocabulary()
	if len(vf.Products) > 0 {
		v.Products = vf.Products
	}
	if len(vf.DocTypes) > 0 {
		v.DocTypes = vf.DocTypes
	}
	return v
}

// DefaultVocabularyFile returns the built-in vocabulary and policy in file form
func DefaultVocabularyFile() *VocabularyFile {
	v := domain.DefaultVocabulary()
	policy := domain.DefaultLinkPolicy()
	return &VocabularyFile{
		Products:   v.Products,
		DocTypes:   v.DocTypes,
		LinkPolicy: &policy,
	}
}

// Marshal renders the file as YAML
func (vf *VocabularyFile) Marshal() ([]byte, error) {
	return yaml.Marshal(vf)
}
