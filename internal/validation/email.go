package validation

import (
	"regexp"
	"strings"

	"tasku/internal/config"
)

// Parts exclude any Unicode separator, vertical tab and BOM as well as \s,
// which only covers ASCII whitespace in RE2.
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}\v\x{FEFF}@]+@[^\s\p{Z}\v\x{FEFF}@]+\.[^\s\p{Z}\v\x{FEFF}@]+$`)

// EmailClassifier decides whether addresses are well formed and whether they
// belong to an institutional domain.
type EmailClassifier struct {
	domains []string
}

var defaultClassifier = NewEmailClassifier()

// NewEmailClassifier creates a classifier for the given domain suffixes.
// Suffixes are matched case-insensitively against the end of the address;
// a missing leading "@" is added. With no domains the defaults are used.
func NewEmailClassifier(domains ...string) *EmailClassifier {
	if len(domains) == 0 {
		domains = config.DefaultInstitutionalDomains
	}
	normalized := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if !strings.HasPrefix(d, "@") {
			d = "@" + d
		}
		normalized = append(normalized, d)
	}
	return &EmailClassifier{domains: normalized}
}

// NewEmailClassifierWithConfig creates a classifier for the configured domains.
func NewEmailClassifierWithConfig(cfg *config.Config) *EmailClassifier {
	if cfg == nil {
		return NewEmailClassifier()
	}
	return NewEmailClassifier(cfg.Validation.InstitutionalDomains...)
}

// IsValid reports whether s looks like local@domain.tld.
func (c *EmailClassifier) IsValid(s string) bool {
	return emailPattern.MatchString(s)
}

// IsInstitutional reports whether s ends with one of the institutional
// domains. It does not check the syntax of s.
func (c *EmailClassifier) IsInstitutional(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range c.domains {
		if strings.HasSuffix(s, d) {
			return true
		}
	}
	return false
}

// Domains returns a copy of the institutional domain suffixes.
func (c *EmailClassifier) Domains() []string {
	return append([]string(nil), c.domains...)
}

// IsValidEmail reports whether s is a syntactically valid address.
func IsValidEmail(s string) bool {
	return defaultClassifier.IsValid(s)
}

// IsInstitutionalEmail reports whether s belongs to a default institutional domain.
func IsInstitutionalEmail(s string) bool {
	return defaultClassifier.IsInstitutional(s)
}
