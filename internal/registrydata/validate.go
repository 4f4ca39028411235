package registrydata

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// Each label: alphanumeric with internal hyphens, 1-63 chars.
var labelRE = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// NormalizeDomain trims, lower-cases and IDN-maps a domain string, then
// validates label-and-dot syntax. Multi-label names are required; a bare TLD
// has no registration record.
func NormalizeDomain(domain string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimSuffix(d, ".")
	if d == "" {
		return "", &ValidationError{Domain: domain, Reason: "empty"}
	}

	if ascii, err := idna.Lookup.ToASCII(d); err == nil {
		d = ascii
	}

	labels := strings.Split(d, ".")
	if len(labels) < 2 {
		return "", &ValidationError{Domain: domain, Reason: "need at least two labels"}
	}
	for _, l := range labels {
		if !labelRE.MatchString(l) {
			return "", &ValidationError{Domain: domain, Reason: "bad label " + quoteLabel(l)}
		}
	}
	return d, nil
}

func quoteLabel(s string) string {
	if len(s) > 64 {
		s = s[:64] + "..."
	}
	return `"` + s + `"`
}
