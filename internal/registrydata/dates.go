package registrydata

import (
	"strings"
	"time"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// dateLayouts, in the order they are attempted. Month-first beats day-first
// for ambiguous numeric dates; unambiguous values (day > 12) fall through to
// the day-first layout.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01-02-2006",
	"02-01-2006",
	"2006.01.02",
	"02.01.2006",
	"2006/01/02",
	"02-Jan-2006",
	"2-Jan-2006",
	"January 02 2006",
}

// normalizeDate converts a registry-supplied date into ISO-8601 UTC when any
// known layout matches. Parsing never discards information: an unparseable
// value is returned verbatim.
func normalizeDate(s string) string {
	v := strings.TrimSpace(s)
	if v == "" {
		return ""
	}
	// Registries occasionally append a zone name or comment after the date.
	if i := strings.IndexByte(v, '('); i > 0 {
		v = strings.TrimSpace(v[:i])
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC().Format(isoMillis)
		}
	}
	return s
}
