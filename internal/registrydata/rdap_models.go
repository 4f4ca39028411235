package registrydata

import "encoding/json"

// Wire shapes for the subset of the RDAP domain object class (RFC 9083) this
// package consumes. Everything not modeled here survives in Record.RawData.

type rdapDomain struct {
	ObjectClassName string           `json:"objectClassName"`
	Handle          string           `json:"handle"`
	LDHName         string           `json:"ldhName"`
	UnicodeName     string           `json:"unicodeName"`
	Status          []string         `json:"status"`
	Events          []rdapEvent      `json:"events"`
	Entities        []rdapEntity     `json:"entities"`
	Nameservers     []rdapNameserver `json:"nameservers"`
	SecureDNS       json.RawMessage  `json:"secureDNS"`
	RDAPConformance []string         `json:"rdapConformance"`
}

type rdapEvent struct {
	EventAction string `json:"eventAction"`
	EventDate   string `json:"eventDate"`
}

type rdapEntity struct {
	Roles      []string     `json:"roles"`
	VCardArray []any        `json:"vcardArray"`
	Entities   []rdapEntity `json:"entities"`
}

type rdapNameserver struct {
	LDHName     string           `json:"ldhName"`
	UnicodeName string           `json:"unicodeName"`
	IPAddresses *rdapNSAddresses `json:"ipAddresses"`
	Status      []string         `json:"status"`
}

type rdapNSAddresses struct {
	V4 []string `json:"v4"`
	V6 []string `json:"v6"`
}
