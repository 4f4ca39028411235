package registrydata

import (
	"regexp"
	"strings"
)

// normalizeWhoisPayload converts either payload variant into the common
// record shape. Every parse step is best-effort: a field no pattern matches
// is simply absent, never an error.
func normalizeWhoisPayload(domain string, p *whoisPayload) *Record {
	rec := &Record{
		Domain: domain,
		Method: MethodWHOIS,
		Whois:  &WhoisDetail{Server: p.server},
	}

	if p.structured != nil {
		applyStructuredWhois(rec, p.structured)
	} else {
		parseWhoisText(rec, p.raw)
	}
	enrichFromText(rec, p.raw)

	rec.Found = whoisRecordPopulated(rec)
	if p.raw != "" {
		rec.RawData = p.raw
	} else if p.structured != nil {
		rec.RawData = ""
	}
	return rec
}

func applyStructuredWhois(rec *Record, d *whoisParsedData) {
	if d.Registrar != "" {
		rec.Registrar = &Contact{Name: d.Registrar}
	}
	rec.RegistrationDate = normalizeDate(d.CreationDate)
	rec.ExpirationDate = normalizeDate(d.ExpiryDate)
	rec.LastChangedDate = normalizeDate(d.UpdatedDate)
	rec.Status = append(rec.Status, d.Status...)
	for _, ns := range d.NameServers {
		appendNameserver(rec, ns)
	}
	rec.Registrant = structuredContact(d.Registrant)
	rec.AdminContact = structuredContact(d.Admin)
	rec.TechContact = structuredContact(d.Tech)
	if d.DNSSEC != "" {
		rec.DNSSEC = d.DNSSEC
	}
	if d.WhoisServer != "" {
		rec.Whois.Server = d.WhoisServer
	}
}

func structuredContact(d *whoisContactData) *Contact {
	if d == nil {
		return nil
	}
	c := &Contact{
		Name:         redactEmpty(d.Name),
		Organization: redactEmpty(d.Organization),
	}
	if e := redactEmpty(d.Email); e != "" {
		c.Emails = append(c.Emails, e)
	}
	if ph := redactEmpty(d.Phone); ph != "" {
		c.Phones = append(c.Phones, Phone{Number: ph, Type: "voice"})
	}
	if c.empty() {
		return nil
	}
	return c
}

// parseWhoisText is the primary raw-text pass: blank and comment lines are
// skipped, the remainder is split on the first colon, and a synonym
// dictionary routes values into record fields. Scalar fields keep the first
// value seen; statuses are appended without deduplication; nameservers are
// deduplicated case-insensitively.
func parseWhoisText(rec *Record, raw string) {
	for _, line := range strings.Split(raw, "\n") {
		l := strings.TrimSpace(line)
		if l == "" || strings.HasPrefix(l, "%") || strings.HasPrefix(l, ">>") {
			continue
		}
		idx := strings.IndexByte(l, ':')
		if idx <= 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(l[:idx]))
		value := strings.TrimSpace(l[idx+1:])
		if value == "" {
			continue
		}

		switch key {
		case "registrar", "registrar name", "sponsoring registrar":
			if rec.Registrar == nil {
				rec.Registrar = &Contact{Name: value}
			}
		case "registrant organization", "registrant organisation", "org", "organization":
			if v := redactEmpty(value); v != "" {
				ensureContact(&rec.Registrant)
				if rec.Registrant.Organization == "" {
					rec.Registrant.Organization = v
				}
			}
		case "registrant", "registrant name", "registrant contact name":
			if v := redactEmpty(value); v != "" {
				ensureContact(&rec.Registrant)
				if rec.Registrant.Name == "" {
					rec.Registrant.Name = v
				}
			}
		case "registrant email", "registrant contact email":
			if v := redactEmpty(value); v != "" {
				ensureContact(&rec.Registrant)
				rec.Registrant.Emails = appendUnique(rec.Registrant.Emails, v)
			}
		case "admin email", "administrative contact email", "admin contact email":
			if v := redactEmpty(value); v != "" {
				ensureContact(&rec.AdminContact)
				rec.AdminContact.Emails = appendUnique(rec.AdminContact.Emails, v)
			}
		case "tech email", "technical contact email", "tech contact email":
			if v := redactEmpty(value); v != "" {
				ensureContact(&rec.TechContact)
				rec.TechContact.Emails = appendUnique(rec.TechContact.Emails, v)
			}
		case "name server", "nameserver", "name servers", "nserver", "dns":
			appendNameserver(rec, value)
		case "status", "domain status":
			rec.Status = append(rec.Status, value)
		case "creation date", "created", "created on", "created date", "registered", "registered on",
			"registration date", "registration time", "domain registration date":
			if rec.RegistrationDate == "" {
				rec.RegistrationDate = normalizeDate(value)
			}
		case "registry expiry date", "expiry date", "expiration date", "expires", "expires on",
			"expire", "expiration time", "paid-till", "registrar registration expiration date":
			if rec.ExpirationDate == "" {
				rec.ExpirationDate = normalizeDate(value)
			}
		case "updated date", "last updated", "last updated on", "last modified", "modified",
			"changed", "last-update", "domain last updated date":
			if rec.LastChangedDate == "" {
				rec.LastChangedDate = normalizeDate(value)
			}
		case "dnssec":
			if rec.DNSSEC == nil {
				rec.DNSSEC = value
			}
		case "registrar url":
			if rec.Whois.RegistrarURL == "" {
				rec.Whois.RegistrarURL = value
			}
		case "registrar whois server", "whois server", "whois":
			if rec.Whois.Server == "" || rec.Whois.Server == DefaultWhoisReferralServer {
				rec.Whois.Server = value
			}
		}
	}
}

// Enrichment pattern cascades. Per field the first matching pattern wins and
// later patterns are never consulted; registry formats drift, so this table
// needs occasional maintenance.
var (
	createdPatterns = compilePatterns(
		`^\s*creation date[^:]*:\s*(.+)$`,
		`^\s*created(?: on| date)?[^:]*:\s*(.+)$`,
		`^\s*registered(?: on)?[^:]*:\s*(.+)$`,
		`^\s*registration time:\s*(.+)$`,
	)
	expiresPatterns = compilePatterns(
		`^\s*registry expiry date:\s*(.+)$`,
		`^\s*expir(?:y|ation) date[^:]*:\s*(.+)$`,
		`^\s*expires?(?: on)?[^:]*:\s*(.+)$`,
		`^\s*paid-till:\s*(.+)$`,
	)
	updatedPatterns = compilePatterns(
		`^\s*updated date[^:]*:\s*(.+)$`,
		`^\s*last[ -]updated?(?: on| date)?[^:]*:\s*(.+)$`,
		`^\s*(?:last )?modified[^:]*:\s*(.+)$`,
		`^\s*changed[^:]*:\s*(.+)$`,
	)
	nameserverPatterns = compilePatterns(
		`^\s*(?:name server|nameservers?|nserver)[^:]*:\s*(\S+)`,
		`^\s*dns(?:[0-9]+)?\s*:\s*(\S+)`,
	)
	statusPatterns = compilePatterns(
		`^\s*(?:domain )?status[^:]*:\s*(.+)$`,
	)
	registrarPatterns = compilePatterns(
		`^\s*registrar(?: name)?:\s*(.+)$`,
		`^\s*sponsoring registrar[^:]*:\s*(.+)$`,
	)
	registrantPatterns = compilePatterns(
		`^\s*registrant organi[sz]ation:\s*(.+)$`,
		`^\s*registrant(?: name)?:\s*(.+)$`,
		`^\s*holder[^:]*:\s*(.+)$`,
	)
	whoisServerPatterns = compilePatterns(
		`^\s*registrar whois server:\s*(.+)$`,
		`^\s*whois server:\s*(.+)$`,
	)
	registrarURLPatterns = compilePatterns(
		`^\s*registrar url:\s*(.+)$`,
	)
	dataValidationPatterns = compilePatterns(
		`^\s*data validation:\s*(.+)$`,
	)
)

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(`(?im)`+e))
	}
	return out
}

// enrichFromText fills fields still empty after the primary pass by running
// the pattern cascades over the raw text. Used for both payload variants:
// structured backends often omit fields present in the accompanying text.
func enrichFromText(rec *Record, raw string) {
	if raw == "" {
		return
	}

	if rec.RegistrationDate == "" {
		if v := firstMatch(createdPatterns, raw); v != "" {
			rec.RegistrationDate = normalizeDate(v)
		}
	}
	if rec.ExpirationDate == "" {
		if v := firstMatch(expiresPatterns, raw); v != "" {
			rec.ExpirationDate = normalizeDate(v)
		}
	}
	if rec.LastChangedDate == "" {
		if v := firstMatch(updatedPatterns, raw); v != "" {
			rec.LastChangedDate = normalizeDate(v)
		}
	}
	if len(rec.Nameservers) == 0 {
		for _, re := range nameserverPatterns {
			matches := re.FindAllStringSubmatch(raw, -1)
			if len(matches) == 0 {
				continue
			}
			for _, m := range matches {
				appendNameserver(rec, m[1])
			}
			break
		}
	}
	if len(rec.Status) == 0 {
		for _, re := range statusPatterns {
			matches := re.FindAllStringSubmatch(raw, -1)
			if len(matches) == 0 {
				continue
			}
			for _, m := range matches {
				rec.Status = append(rec.Status, strings.TrimSpace(m[1]))
			}
			break
		}
	}
	if rec.Registrar == nil {
		if v := firstMatch(registrarPatterns, raw); v != "" {
			rec.Registrar = &Contact{Name: v}
		}
	}
	if rec.Registrant.empty() {
		if v := redactEmpty(firstMatch(registrantPatterns, raw)); v != "" {
			rec.Registrant = &Contact{Organization: v}
		}
	}
	if rec.Whois.Server == "" || rec.Whois.Server == DefaultWhoisReferralServer {
		if v := firstMatch(whoisServerPatterns, raw); v != "" {
			rec.Whois.Server = v
		}
	}
	if rec.Whois.RegistrarURL == "" {
		if v := firstMatch(registrarURLPatterns, raw); v != "" {
			rec.Whois.RegistrarURL = v
		}
	}
	if rec.Whois.DataValidation == "" {
		if v := firstMatch(dataValidationPatterns, raw); v != "" {
			rec.Whois.DataValidation = v
		}
	}
	if rec.DNSSEC == nil {
		if v := findWhoisValue(raw, []string{"dnssec"}); v != "" {
			rec.DNSSEC = v
		}
	}
}

func firstMatch(patterns []*regexp.Regexp, raw string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// findWhoisValue scans a WHOIS body for the first "Key: value" line matching
// one of keys, case-insensitively.
func findWhoisValue(body string, keys []string) string {
	keySet := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keySet[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}
	for _, line := range strings.Split(body, "\n") {
		l := strings.TrimSpace(line)
		if l == "" {
			continue
		}
		idx := strings.IndexByte(l, ':')
		if idx <= 0 {
			continue
		}
		left := strings.ToLower(strings.TrimSpace(l[:idx]))
		if _, ok := keySet[left]; ok {
			return strings.TrimSpace(l[idx+1:])
		}
	}
	return ""
}

func whoisRecordPopulated(rec *Record) bool {
	return rec.Registrar != nil || !rec.Registrant.empty() ||
		!rec.AdminContact.empty() || !rec.TechContact.empty() ||
		len(rec.Nameservers) > 0 || len(rec.Status) > 0 ||
		rec.RegistrationDate != "" || rec.ExpirationDate != "" ||
		rec.LastChangedDate != "" || rec.DNSSEC != nil
}

func ensureContact(c **Contact) {
	if *c == nil {
		*c = &Contact{}
	}
}

func appendNameserver(rec *Record, ns string) {
	ns = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(ns), "."))
	if ns == "" {
		return
	}
	// Some registries append the glue address after the hostname.
	if i := strings.IndexAny(ns, " \t"); i > 0 {
		ns = ns[:i]
	}
	for _, existing := range rec.Nameservers {
		if existing == ns {
			return
		}
	}
	rec.Nameservers = append(rec.Nameservers, ns)
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if strings.EqualFold(existing, v) {
			return list
		}
	}
	return append(list, v)
}

// redactEmpty drops privacy-redacted placeholder values.
func redactEmpty(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.Contains(strings.ToUpper(s), "REDACTED") {
		return ""
	}
	return s
}
