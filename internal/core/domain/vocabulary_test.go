package domain

import (
	"errors"
	"testing"
)

func TestDefaultVocabulary_Valid(t *testing.T) {
	v := DefaultVocabulary()
	if err := v.Validate(); err != nil {
		t.Fatalf("default vocabulary should be valid: %v", err)
	}
	if len(v.DocTypes) != 11 {
		t.Errorf("expected 11 document types, got %d", len(v.DocTypes))
	}
}

func TestVocabulary_Validate(t *testing.T) {
	tests := []struct {
		name  string
		vocab *Vocabulary
	}{
		{"nil", nil},
		{"blank name", &Vocabulary{Products: []Product{{Name: " "}}}},
		{"duplicate", &Vocabulary{Products: []Product{{Name: "Log360"}, {Name: "log360"}}}},
		{"blank acronym", &Vocabulary{Products: []Product{{Name: "Log360", Acronyms: []string{""}}}}},
		{"blank doc type", &Vocabulary{DocTypes: []DocType{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.vocab.Validate()
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestVocabulary_Acronyms(t *testing.T) {
	v := DefaultVocabulary()

	got := v.Acronyms("admanager plus")
	if len(got) != 1 || got[0] != "ADMP" {
		t.Errorf("expected [ADMP], got %v", got)
	}

	if got := v.Acronyms("Log360"); len(got) != 0 {
		t.Errorf("expected no acronyms for Log360, got %v", got)
	}

	if got := v.Acronyms("Unknown Product"); got != nil {
		t.Errorf("expected nil for unknown product, got %v", got)
	}
}

func TestVocabulary_Lookup(t *testing.T) {
	v := DefaultVocabulary()

	p, ok := v.Lookup(" admp ")
	if !ok || p.Name != "ADManager Plus" {
		t.Errorf("expected acronym lookup to find ADManager Plus, got %v %v", p, ok)
	}

	p, ok = v.Lookup("ADAUDIT PLUS")
	if !ok || p.Name != "ADAudit Plus" {
		t.Errorf("expected name lookup to find ADAudit Plus, got %v %v", p, ok)
	}

	if _, ok := v.Lookup(""); ok {
		t.Error("expected empty lookup to fail")
	}
}

func TestVocabulary_IsExactProductMention(t *testing.T) {
	v := DefaultVocabulary()

	tests := []struct {
		query string
		want  bool
	}{
		{"ADManager Plus", true},
		{"admp", true},
		{"  ADMP  ", true},
		{"ADMP datasheet", false},
		{"case studies", false},
	}

	for _, tt := range tests {
		if got := v.IsExactProductMention(tt.query); got != tt.want {
			t.Errorf("IsExactProductMention(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestVocabulary_CanonicalDocType(t *testing.T) {
	v := DefaultVocabulary()

	if got := v.CanonicalDocType("case STUDY"); got != "Case study" {
		t.Errorf("expected Case study, got %q", got)
	}
	if got := v.CanonicalDocType(" whitepaper "); got != "whitepaper" {
		t.Errorf("expected unknown type kept verbatim, got %q", got)
	}
}
