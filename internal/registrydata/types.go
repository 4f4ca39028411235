package registrydata

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	redis "github.com/go-redis/redis/v7"
)

// Lookup methods reported in records and outcomes.
const (
	MethodRDAP  = "rdap"
	MethodWHOIS = "whois"
)

// Client is the public lookup interface.
type Client interface {
	// LookupDomain resolves a domain's registration record, trying the
	// preferred protocol first and falling back to the other one.
	LookupDomain(ctx context.Context, req LookupRequest) (*Outcome, error)
}

type LookupRequest struct {
	Domain string
	// PreferWhois selects WHOIS as the primary protocol instead of RDAP.
	PreferWhois bool
	// IncludeRaw includes the untouched registry payload in the outcome.
	IncludeRaw bool
}

// Contact is a registration contact extracted from RDAP entities or WHOIS text.
type Contact struct {
	Name         string          `json:"name,omitempty"`
	Organization string          `json:"organization,omitempty"`
	Emails       []string        `json:"emails,omitempty"`
	Phones       []Phone         `json:"phones,omitempty"`
	Addresses    []PostalAddress `json:"addresses,omitempty"`
}

func (c *Contact) empty() bool {
	return c == nil || (c.Name == "" && c.Organization == "" &&
		len(c.Emails) == 0 && len(c.Phones) == 0 && len(c.Addresses) == 0)
}

type Phone struct {
	Number string `json:"number"`
	Type   string `json:"type,omitempty"`
}

// PostalAddress mirrors the seven components of a vCard adr value.
type PostalAddress struct {
	POBox           string `json:"po_box,omitempty"`
	ExtendedAddress string `json:"extended_address,omitempty"`
	Street          string `json:"street,omitempty"`
	Locality        string `json:"locality,omitempty"`
	Region          string `json:"region,omitempty"`
	PostalCode      string `json:"postal_code,omitempty"`
	Country         string `json:"country,omitempty"`
}

// NameserverInfo carries the RDAP nameserver detail.
type NameserverInfo struct {
	Name        string   `json:"name"`
	UnicodeName string   `json:"unicode_name,omitempty"`
	IPAddresses []string `json:"ip_addresses,omitempty"`
	Status      []string `json:"status,omitempty"`
}

// Record is the normalized intermediate shape both protocol clients produce.
// Date fields hold ISO-8601 strings when the source value parsed, otherwise
// the source value verbatim.
type Record struct {
	Domain           string   `json:"domain"`
	Found            bool     `json:"found"`
	Method           string   `json:"method"`
	Status           []string `json:"status,omitempty"`
	Nameservers      []string `json:"nameservers,omitempty"`
	RegistrationDate string   `json:"registration_date,omitempty"`
	ExpirationDate   string   `json:"expiration_date,omitempty"`
	LastChangedDate  string   `json:"last_changed_date,omitempty"`

	Registrar    *Contact `json:"registrar,omitempty"`
	Registrant   *Contact `json:"registrant,omitempty"`
	AdminContact *Contact `json:"admin_contact,omitempty"`
	TechContact  *Contact `json:"tech_contact,omitempty"`

	// DNSSEC is an opaque pass-through: a JSON object for RDAP, a string
	// for WHOIS.
	DNSSEC any `json:"dnssec,omitempty"`

	// RawData is the unmodified source payload (json.RawMessage for RDAP,
	// string for WHOIS), retained for audit and debugging.
	RawData any `json:"raw_data,omitempty"`

	// Protocol-specific detail; at most one is set.
	RDAP  *RDAPDetail  `json:"rdap,omitempty"`
	Whois *WhoisDetail `json:"whois,omitempty"`
}

// RDAPDetail holds fields only the RDAP protocol provides.
type RDAPDetail struct {
	Handle      string           `json:"handle,omitempty"`
	Conformance []string         `json:"conformance,omitempty"`
	Nameservers []NameserverInfo `json:"nameservers,omitempty"`
	SecureDNS   json.RawMessage  `json:"secure_dns,omitempty"`
}

// WhoisDetail holds fields only the WHOIS protocol provides.
type WhoisDetail struct {
	Server         string `json:"server,omitempty"`
	RegistrarURL   string `json:"registrar_url,omitempty"`
	DataValidation string `json:"data_validation,omitempty"`
}

// Outcome is the published result envelope of a dual-protocol lookup.
type Outcome struct {
	LookupID  string `json:"lookup_id"`
	Domain    string `json:"domain"`
	Found     bool   `json:"found"`
	Method    string `json:"method"`
	Timestamp string `json:"timestamp"`

	FallbackUsed        bool   `json:"fallback_used"`
	PrimaryMethodFailed string `json:"primary_method_failed,omitempty"`
	PrimaryMethodError  string `json:"primary_method_error,omitempty"`
	FallbackError       string `json:"fallback_error,omitempty"`

	Status      []string `json:"status,omitempty"`
	Nameservers []string `json:"nameservers,omitempty"`

	RDAP  *RDAPSection  `json:"rdap,omitempty"`
	Whois *WhoisSection `json:"whois,omitempty"`

	RawData any `json:"raw_data,omitempty"`
}

// RDAPSection nests the RDAP-produced registration detail in an Outcome.
type RDAPSection struct {
	Handle           string           `json:"handle,omitempty"`
	Conformance      []string         `json:"conformance,omitempty"`
	RegistrationDate string           `json:"registration_date,omitempty"`
	ExpirationDate   string           `json:"expiration_date,omitempty"`
	LastChangedDate  string           `json:"last_changed_date,omitempty"`
	Registrar        *Contact         `json:"registrar,omitempty"`
	Registrant       *Contact         `json:"registrant,omitempty"`
	AdminContact     *Contact         `json:"admin_contact,omitempty"`
	TechContact      *Contact         `json:"tech_contact,omitempty"`
	Nameservers      []NameserverInfo `json:"nameservers,omitempty"`
	SecureDNS        json.RawMessage  `json:"secure_dns,omitempty"`
}

// WhoisSection nests the WHOIS-produced registration detail in an Outcome.
type WhoisSection struct {
	Server           string   `json:"server,omitempty"`
	RegistrationDate string   `json:"registration_date,omitempty"`
	ExpirationDate   string   `json:"expiration_date,omitempty"`
	LastChangedDate  string   `json:"last_changed_date,omitempty"`
	Registrar        *Contact `json:"registrar,omitempty"`
	Registrant       *Contact `json:"registrant,omitempty"`
	AdminContact     *Contact `json:"admin_contact,omitempty"`
	TechContact      *Contact `json:"tech_contact,omitempty"`
	DNSSEC           string   `json:"dnssec,omitempty"`
	RegistrarURL     string   `json:"registrar_url,omitempty"`
	DataValidation   string   `json:"data_validation,omitempty"`
}

// CacheBackend enumerates supported cache types.
type CacheBackend string

const (
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendRedis  CacheBackend = "redis"
)

type CacheConfig struct {
	Backend CacheBackend
	// RedisKeyPrefix is used for Redis keys when Backend == redis.
	RedisKeyPrefix string
}

type Config struct {
	// Logger defaults to logr.Discard().
	Logger logr.Logger

	Cache CacheConfig
	// Required when Cache.Backend == redis.
	RedisClient redis.UniversalClient

	// HTTPClient serves RDAP queries and WHOIS HTTP backends. Per-call
	// deadlines are applied through request contexts.
	HTTPClient *http.Client
	UserAgent  string

	// RDAPTimeout bounds a single RDAP query. Defaults to 10s.
	RDAPTimeout time.Duration
	// WhoisTimeout bounds a single WHOIS backend or wire query. Defaults to 15s.
	WhoisTimeout time.Duration

	// WhoisBackends is the ordered candidate list of HTTP WHOIS query
	// services, tried before the port-43 wire protocol.
	WhoisBackends []string

	// WhoisFetch performs a raw port-43 WHOIS exchange. Defaults to a
	// domainr/whois backed implementation; injectable for tests.
	WhoisFetch func(ctx context.Context, query, host string) (string, error)

	// Bootstrap resolves RDAP base URLs for registry keys missing from the
	// static table. Defaults to an IANA bootstrap client; injectable for tests.
	Bootstrap BootstrapLookuper
}
