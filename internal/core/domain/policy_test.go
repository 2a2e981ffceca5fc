package domain

import "testing"

func TestLinkPolicy_Classify(t *testing.T) {
	policy := LinkPolicy{
		RestrictedPatterns: []string{"workdrive"},
		AllowedDomains:     []string{"manageengine.com", ".zoho.com"},
	}

	tests := []struct {
		name string
		url  string
		want LinkVerdict
	}{
		{"restricted pattern", "https://workdrive.zoho.com/file/abc", LinkRestricted},
		{"restricted pattern case-insensitive", "https://WorkDrive.example.com/x", LinkRestricted},
		{"allowed exact host", "https://manageengine.com/datasheet.pdf", LinkAllowed},
		{"allowed subdomain", "https://www.manageengine.com/products/ad-manager/", LinkAllowed},
		{"allowed leading dot", "https://download.zoho.com/a.pdf", LinkAllowed},
		{"lookalike domain", "https://evilmanageengine.com/x", LinkUnrecognized},
		{"unlisted domain", "https://example.org/doc", LinkUnrecognized},
		{"non-http scheme", "file:///etc/passwd", LinkUnrecognized},
		{"garbage", "not a url", LinkUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Classify(tt.url); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.url, got, tt.want)
			}
		})
	}
}

func TestLinkPolicy_EmptyAllowListAllowsAnyHost(t *testing.T) {
	policy := DefaultLinkPolicy()

	if got := policy.Classify("https://example.org/doc.pdf"); got != LinkAllowed {
		t.Errorf("expected allowed, got %s", got)
	}
	if got := policy.Classify("https://workdrive.zohopublic.com/x"); got != LinkRestricted {
		t.Errorf("expected restricted, got %s", got)
	}
}

func TestRejectedResult(t *testing.T) {
	r := RejectedResult(LinkRestricted)
	if r.Status != FetchRestricted || r.Reason != ReasonRestricted {
		t.Errorf("unexpected restricted result: %+v", r)
	}

	r = RejectedResult(LinkUnrecognized)
	if r.Status != FetchUnrecognized || r.Reason != ReasonUnrecognized {
		t.Errorf("unexpected unrecognized result: %+v", r)
	}
	if r.OK() {
		t.Error("rejected result must not be OK")
	}
}
