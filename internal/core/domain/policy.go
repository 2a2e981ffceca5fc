package domain

import (
	"net/url"
	"strings"
)

// LinkVerdict is the outcome of classifying a document link
type LinkVerdict string

const (
	LinkAllowed      LinkVerdict = "allowed"
	LinkRestricted   LinkVerdict = "restricted"
	LinkUnrecognized LinkVerdict = "unrecognized"
)

// LinkPolicy decides which document links may be fetched.
// Restricted patterns are case-insensitive substrings of the whole URL
// (for example an internal-only sharing domain). AllowedDomains match the
// host exactly or as a parent domain; an empty list allows every host.
type LinkPolicy struct {
	RestrictedPatterns []string `yaml:"restricted_patterns,omitempty" json:"restricted_patterns"`
	AllowedDomains     []string `yaml:"allowed_domains,omitempty" json:"allowed_domains"`
}

// DefaultLinkPolicy rejects internal WorkDrive links and allows any other host
func DefaultLinkPolicy() LinkPolicy {
	return LinkPolicy{
		RestrictedPatterns: []string{"workdrive"},
	}
}

// Classify applies the policy to a raw URL without any network access
func (p LinkPolicy) Classify(rawURL string) LinkVerdict {
	lower := strings.ToLower(strings.TrimSpace(rawURL))
	for _, pattern := range p.RestrictedPatterns {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern != "" && strings.Contains(lower, pattern) {
			return LinkRestricted
		}
	}

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return LinkUnrecognized
	}

	if len(p.AllowedDomains) == 0 {
		return LinkAllowed
	}

	host := strings.ToLower(u.Hostname())
	for _, d := range p.AllowedDomains {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "."))
		if d == "" {
			continue
		}
		if host == d || strings.HasSuffix(host, "."+d) {
			return LinkAllowed
		}
	}
	return LinkUnrecognized
}
