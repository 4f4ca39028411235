package registrydata

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-logr/logr"
	"github.com/openrdap/rdap/bootstrap"
	"golang.org/x/sync/singleflight"
)

// BootstrapLookuper answers IANA RDAP bootstrap questions. Satisfied by
// *bootstrap.Client; injectable for tests.
type BootstrapLookuper interface {
	Lookup(question *bootstrap.Question) (*bootstrap.Answer, error)
}

// resolver maps domains to registry keys and registry keys to endpoints.
// Static tables answer first; RDAP misses degrade to a remote bootstrap
// fetch whose learned bases are kept in the cache for the process lifetime.
type resolver struct {
	log       logr.Logger
	cache     Cache
	bootstrap BootstrapLookuper
	sf        singleflight.Group
}

func newResolver(log logr.Logger, cache Cache, bc BootstrapLookuper) *resolver {
	return &resolver{log: log, cache: cache, bootstrap: bc}
}

// registryKey returns the compound suffix when the last two labels form a
// known pair, otherwise the bare last label. Pure; callers pass a normalized
// domain.
func (r *resolver) registryKey(domain string) string {
	labels := strings.Split(domain, ".")
	if len(labels) >= 3 {
		pair := labels[len(labels)-2] + "." + labels[len(labels)-1]
		if _, ok := compoundSuffixes[pair]; ok {
			return pair
		}
	}
	return labels[len(labels)-1]
}

// rdapBase resolves the RDAP base URL for a domain. ok is false when neither
// the static table nor the bootstrap service knows the registry key; the
// caller is expected to fall back to WHOIS. Bootstrap failures are swallowed
// and logged, never propagated.
func (r *resolver) rdapBase(ctx context.Context, domain string) (base string, ok bool) {
	key := r.registryKey(domain)
	if base, ok := staticRDAPBases[key]; ok {
		return base, true
	}

	cacheKey := "rdapbase:" + key
	if v, found, err := r.cache.Get(cacheKey); err == nil && found {
		return v, true
	}

	v, err, _ := r.sf.Do(cacheKey, func() (any, error) {
		if v, found, err := r.cache.Get(cacheKey); err == nil && found {
			return v, nil
		}
		q := (&bootstrap.Question{
			RegistryType: bootstrap.DNS,
			Query:        domain,
		}).WithContext(ctx)
		answer, err := r.bootstrap.Lookup(q)
		if err != nil {
			return "", err
		}
		if answer == nil || len(answer.URLs) == 0 {
			return "", nil
		}
		b := normalizeBaseURL(pickBootstrapURL(answer.URLs))
		if b == "" {
			return "", nil
		}
		if err := r.cache.Set(cacheKey, b, 0); err != nil {
			r.log.V(1).Info("bootstrap cache write failed", "key", key, "error", err.Error())
		}
		return b, nil
	})
	if err != nil {
		r.log.Info("RDAP bootstrap fetch failed, degrading to WHOIS", "key", key, "error", err.Error())
		return "", false
	}
	base, _ = v.(string)
	return base, base != ""
}

// whoisServer resolves the WHOIS server for a domain. It never returns an
// empty hostname: unknown registry keys get the IANA referral server.
func (r *resolver) whoisServer(domain string) string {
	if s, ok := staticWhoisServers[r.registryKey(domain)]; ok {
		return s
	}
	return DefaultWhoisReferralServer
}

func pickBootstrapURL(urls []*url.URL) *url.URL {
	for _, u := range urls {
		if u != nil && strings.EqualFold(u.Scheme, "https") {
			return u
		}
	}
	if len(urls) > 0 {
		return urls[0]
	}
	return nil
}

func normalizeBaseURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	s := u.String()
	if s == "" {
		return ""
	}
	if !strings.HasSuffix(s, "/") {
		s += "/"
	}
	return s
}
