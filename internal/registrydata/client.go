package registrydata

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/openrdap/rdap/bootstrap"
	"github.com/openrdap/rdap/bootstrap/cache"
)

type client struct {
	cfg Config

	rdap  *rdapClient
	whois *whoisClient

	// protocol seams, also used by tests
	rdapLookup  func(ctx context.Context, domain string) (*Record, error)
	whoisLookup func(ctx context.Context, domain string) (*Record, error)

	now   func() time.Time
	newID func() string
}

func NewClient(cfg Config) (Client, error) {
	if cfg.RDAPTimeout <= 0 {
		cfg.RDAPTimeout = 10 * time.Second
	}
	if cfg.WhoisTimeout <= 0 {
		cfg.WhoisTimeout = 15 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "registry-lookup/1.0"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.WhoisFetch == nil {
		cfg.WhoisFetch = whoisFetchAtHost
	}
	if cfg.Bootstrap == nil {
		cfg.Bootstrap = &bootstrap.Client{Cache: cache.NewMemoryCache()}
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = CacheBackendMemory
	}

	var endpointCache Cache
	switch cfg.Cache.Backend {
	case CacheBackendMemory:
		endpointCache = newMemoryCache()
	case CacheBackendRedis:
		if cfg.RedisClient == nil {
			return nil, fmt.Errorf("redis cache backend requires RedisClient")
		}
		endpointCache = newRedisCache(cfg.RedisClient, cfg.Cache.RedisKeyPrefix)
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Cache.Backend)
	}

	res := newResolver(cfg.Logger.WithName("resolver"), endpointCache, cfg.Bootstrap)

	c := &client{
		cfg: cfg,
		rdap: &rdapClient{
			log:      cfg.Logger.WithName("rdap"),
			resolver: res,
			hc:       cfg.HTTPClient,
			ua:       cfg.UserAgent,
			timeout:  cfg.RDAPTimeout,
		},
		whois: &whoisClient{
			log:      cfg.Logger.WithName("whois"),
			resolver: res,
			hc:       cfg.HTTPClient,
			ua:       cfg.UserAgent,
			timeout:  cfg.WhoisTimeout,
			backends: cfg.WhoisBackends,
			fetchRaw: cfg.WhoisFetch,
		},
		now:   time.Now,
		newID: uuid.NewString,
	}
	c.rdapLookup = c.rdap.lookupDomain
	c.whoisLookup = c.whois.lookupDomain
	return c, nil
}

// Orchestration states. A lookup walks
// START -> PRIMARY_ATTEMPT -> (FOUND | FALLBACK_ATTEMPT) -> DONE,
// with the fallback edge also taken when the primary attempt errors.
type lookupState int

const (
	stateStart lookupState = iota
	statePrimaryAttempt
	stateFallbackAttempt
	stateFound
	stateDone
)

func (c *client) LookupDomain(ctx context.Context, req LookupRequest) (*Outcome, error) {
	domain, err := NormalizeDomain(req.Domain)
	if err != nil {
		return nil, err
	}

	id := c.newID()
	log := c.cfg.Logger.WithValues("lookupID", id, "domain", domain)

	primary, fallback := c.rdapLookup, c.whoisLookup
	primaryName, fallbackName := MethodRDAP, MethodWHOIS
	if req.PreferWhois {
		primary, fallback = fallback, primary
		primaryName, fallbackName = fallbackName, primaryName
	}

	var (
		result      *Record
		primaryRec  *Record
		primaryErr  error
		fallbackErr error
		meta        outcomeMeta
	)

	st := stateStart
	for st != stateDone {
		switch st {
		case stateStart:
			st = statePrimaryAttempt

		case statePrimaryAttempt:
			primaryRec, primaryErr = primary(ctx, domain)
			switch {
			case primaryErr != nil:
				log.V(1).Info("primary attempt errored", "method", primaryName, "error", primaryErr.Error())
				meta.primaryFailed = primaryName
				meta.primaryError = primaryErr.Error()
				st = stateFallbackAttempt
			case !primaryRec.Found:
				log.V(1).Info("primary attempt found nothing", "method", primaryName)
				meta.primaryFailed = primaryName
				st = stateFallbackAttempt
			default:
				result = primaryRec
				st = stateFound
			}

		case stateFallbackAttempt:
			var fallbackRec *Record
			fallbackRec, fallbackErr = fallback(ctx, domain)
			switch {
			case fallbackErr != nil && primaryErr != nil:
				return nil, &DualLookupError{
					Domain:       domain,
					PrimaryName:  primaryName,
					PrimaryErr:   primaryErr,
					FallbackName: fallbackName,
					FallbackErr:  fallbackErr,
				}
			case fallbackErr != nil:
				// Keep the primary not-found result, noting the fallback failure.
				meta.fallbackError = fallbackErr.Error()
				result = primaryRec
				st = stateDone
			case fallbackRec.Found:
				meta.fallbackUsed = true
				result = fallbackRec
				st = stateFound
			case primaryRec != nil:
				// Both protocols answered "not found": keep the primary
				// result with whatever partial information it carried.
				result = primaryRec
				st = stateDone
			default:
				// Primary errored, fallback answered "not found".
				meta.fallbackUsed = true
				result = fallbackRec
				st = stateDone
			}

		case stateFound:
			log.V(1).Info("lookup resolved", "method", result.Method, "fallback", meta.fallbackUsed)
			st = stateDone
		}
	}

	return c.publish(result, req, id, meta), nil
}

type outcomeMeta struct {
	fallbackUsed  bool
	primaryFailed string
	primaryError  string
	fallbackError string
}

// publish reshapes the chosen record into the published outcome schema.
func (c *client) publish(rec *Record, req LookupRequest, id string, meta outcomeMeta) *Outcome {
	out := &Outcome{
		LookupID:            id,
		Domain:              rec.Domain,
		Found:               rec.Found,
		Method:              rec.Method,
		Timestamp:           c.now().UTC().Format(time.RFC3339),
		FallbackUsed:        meta.fallbackUsed,
		PrimaryMethodFailed: meta.primaryFailed,
		PrimaryMethodError:  meta.primaryError,
		FallbackError:       meta.fallbackError,
		Status:              rec.Status,
		Nameservers:         rec.Nameservers,
	}

	switch rec.Method {
	case MethodRDAP:
		sec := &RDAPSection{
			RegistrationDate: rec.RegistrationDate,
			ExpirationDate:   rec.ExpirationDate,
			LastChangedDate:  rec.LastChangedDate,
			Registrar:        rec.Registrar,
			Registrant:       rec.Registrant,
			AdminContact:     rec.AdminContact,
			TechContact:      rec.TechContact,
		}
		if rec.RDAP != nil {
			sec.Handle = rec.RDAP.Handle
			sec.Conformance = rec.RDAP.Conformance
			sec.Nameservers = rec.RDAP.Nameservers
			sec.SecureDNS = rec.RDAP.SecureDNS
		}
		out.RDAP = sec
	case MethodWHOIS:
		sec := &WhoisSection{
			RegistrationDate: rec.RegistrationDate,
			ExpirationDate:   rec.ExpirationDate,
			LastChangedDate:  rec.LastChangedDate,
			Registrar:        rec.Registrar,
			Registrant:       rec.Registrant,
			AdminContact:     rec.AdminContact,
			TechContact:      rec.TechContact,
		}
		if s, ok := rec.DNSSEC.(string); ok {
			sec.DNSSEC = s
		}
		if rec.Whois != nil {
			sec.Server = rec.Whois.Server
			sec.RegistrarURL = rec.Whois.RegistrarURL
			sec.DataValidation = rec.Whois.DataValidation
		}
		out.Whois = sec
	}

	if req.IncludeRaw && rec.RawData != nil {
		if s, ok := rec.RawData.(string); !ok || s != "" {
			out.RawData = rec.RawData
		}
	}
	return out
}
