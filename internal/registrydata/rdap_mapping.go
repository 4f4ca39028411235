package registrydata

import (
	"encoding/json"
	"strings"
)

// normalizeRDAPDomain maps a decoded RDAP domain object into the common
// record shape. The unmodified body is retained as raw data.
func normalizeRDAPDomain(domain string, body []byte, doc *rdapDomain) *Record {
	rec := &Record{
		Domain:  domain,
		Found:   true,
		Method:  MethodRDAP,
		RawData: json.RawMessage(body),
	}

	rec.Status = append(rec.Status, doc.Status...)
	applyEventDates(rec, doc.Events)
	applyEntityContacts(rec, doc.Entities)

	detail := &RDAPDetail{
		Handle:      doc.Handle,
		Conformance: doc.RDAPConformance,
	}
	seen := make(map[string]struct{}, len(doc.Nameservers))
	for _, ns := range doc.Nameservers {
		info := NameserverInfo{
			Name:        strings.ToLower(strings.TrimSuffix(ns.LDHName, ".")),
			UnicodeName: ns.UnicodeName,
			Status:      ns.Status,
		}
		if ns.IPAddresses != nil {
			info.IPAddresses = append(info.IPAddresses, ns.IPAddresses.V4...)
			info.IPAddresses = append(info.IPAddresses, ns.IPAddresses.V6...)
		}
		detail.Nameservers = append(detail.Nameservers, info)
		if info.Name == "" {
			continue
		}
		if _, dup := seen[info.Name]; !dup {
			seen[info.Name] = struct{}{}
			rec.Nameservers = append(rec.Nameservers, info.Name)
		}
	}
	if len(doc.SecureDNS) > 0 {
		detail.SecureDNS = doc.SecureDNS
		rec.DNSSEC = doc.SecureDNS
	}
	rec.RDAP = detail

	return rec
}

// applyEventDates copies registration/expiration/last-changed event dates
// into the record. First match wins per action.
func applyEventDates(rec *Record, events []rdapEvent) {
	for _, ev := range events {
		if ev.EventDate == "" {
			continue
		}
		switch strings.ToLower(ev.EventAction) {
		case "registration":
			if rec.RegistrationDate == "" {
				rec.RegistrationDate = normalizeDate(ev.EventDate)
			}
		case "expiration":
			if rec.ExpirationDate == "" {
				rec.ExpirationDate = normalizeDate(ev.EventDate)
			}
		case "last changed":
			if rec.LastChangedDate == "" {
				rec.LastChangedDate = normalizeDate(ev.EventDate)
			}
		}
	}
}

// applyEntityContacts walks entities depth-first and fills each contact role
// from the first entity carrying it.
func applyEntityContacts(rec *Record, entities []rdapEntity) {
	for _, e := range entities {
		contact := parseVCard(e.VCardArray)
		for _, role := range e.Roles {
			switch strings.ToLower(role) {
			case "registrar":
				if rec.Registrar == nil && !contact.empty() {
					rec.Registrar = contact
				}
			case "registrant":
				if rec.Registrant == nil && !contact.empty() {
					rec.Registrant = contact
				}
			case "administrative":
				if rec.AdminContact == nil && !contact.empty() {
					rec.AdminContact = contact
				}
			case "technical":
				if rec.TechContact == nil && !contact.empty() {
					rec.TechContact = contact
				}
			}
		}
		if len(e.Entities) > 0 {
			applyEntityContacts(rec, e.Entities)
		}
	}
}

// parseVCard interprets the second element of a two-element vcardArray.
// Property entries are [name, params, type, value]; names are matched
// case-insensitively and unrecognized properties are left to the raw payload.
func parseVCard(vcardArray []any) *Contact {
	if len(vcardArray) != 2 {
		return nil
	}
	props, ok := vcardArray[1].([]any)
	if !ok {
		return nil
	}

	c := &Contact{}
	for _, p := range props {
		entry, ok := p.([]any)
		if !ok || len(entry) < 2 {
			continue
		}
		name, ok := entry[0].(string)
		if !ok {
			continue
		}
		value := entry[len(entry)-1]

		switch strings.ToLower(name) {
		case "fn":
			if c.Name == "" {
				c.Name = vcardString(value)
			}
		case "org":
			if c.Organization == "" {
				if seq, ok := value.([]any); ok && len(seq) > 0 {
					c.Organization = vcardString(seq[0])
				} else {
					c.Organization = vcardString(value)
				}
			}
		case "email":
			if v := vcardString(value); v != "" {
				c.Emails = append(c.Emails, v)
			}
		case "tel":
			v := vcardString(value)
			if v == "" {
				continue
			}
			telType := "voice"
			if len(entry) > 2 {
				if params, ok := entry[1].(map[string]any); ok {
					if t := vcardParam(params["type"]); t != "" {
						telType = t
					}
				}
			}
			c.Phones = append(c.Phones, Phone{Number: v, Type: telType})
		case "adr":
			if len(c.Addresses) > 0 {
				continue
			}
			if addr := parseVCardAddress(value); addr != nil {
				c.Addresses = append(c.Addresses, *addr)
			}
		}
	}
	return c
}

// parseVCardAddress reads the seven postal components: PO box, extended
// address, street, locality, region, postal code, country.
func parseVCardAddress(value any) *PostalAddress {
	seq, ok := value.([]any)
	if !ok {
		return nil
	}
	parts := make([]string, 7)
	for i := 0; i < len(seq) && i < 7; i++ {
		parts[i] = vcardString(seq[i])
	}
	addr := &PostalAddress{
		POBox:           parts[0],
		ExtendedAddress: parts[1],
		Street:          parts[2],
		Locality:        parts[3],
		Region:          parts[4],
		PostalCode:      parts[5],
		Country:         parts[6],
	}
	if *addr == (PostalAddress{}) {
		return nil
	}
	return addr
}

// vcardString flattens a jCard value to a display string. Structured values
// (nested arrays) are joined on ", ".
func vcardString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		var parts []string
		for _, el := range t {
			if s := vcardString(el); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// vcardParam reads a parameter value that may be a string or a string list.
func vcardParam(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		for _, el := range t {
			if s, ok := el.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
