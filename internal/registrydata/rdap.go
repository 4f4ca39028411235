package registrydata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
)

const rdapAcceptHeader = "application/rdap+json,application/json"

// Registries serve modest payloads; anything past this is suspect.
const rdapMaxBodyBytes = 4 << 20

type rdapClient struct {
	log      logr.Logger
	resolver *resolver
	hc       *http.Client
	ua       string
	timeout  time.Duration
}

// lookupDomain queries the authoritative RDAP endpoint for domain and
// normalizes the response. A 404 is a definitive "not found" result, not an
// error.
func (c *rdapClient) lookupDomain(ctx context.Context, domain string) (*Record, error) {
	domain, err := NormalizeDomain(domain)
	if err != nil {
		return nil, err
	}

	base, ok := c.resolver.rdapBase(ctx, domain)
	if !ok {
		return nil, &LookupError{
			Method: MethodRDAP,
			Kind:   KindNoServer,
			Domain: domain,
			Msg:    fmt.Sprintf("no RDAP server for TLD %q", c.resolver.registryKey(domain)),
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, base+"domain/"+domain, nil)
	if err != nil {
		return nil, &LookupError{Method: MethodRDAP, Kind: KindTransport, Domain: domain, Err: err}
	}
	req.Header.Set("Accept", rdapAcceptHeader)
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &LookupError{Method: MethodRDAP, Kind: KindTimeout, Domain: domain, Err: err}
		}
		return nil, &LookupError{Method: MethodRDAP, Kind: KindTransport, Domain: domain, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.V(1).Info("RDAP reports domain not found", "domain", domain)
		return &Record{Domain: domain, Method: MethodRDAP, Found: false}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LookupError{
			Method: MethodRDAP,
			Kind:   KindHTTPStatus,
			Domain: domain,
			Status: resp.StatusCode,
			Msg:    http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, rdapMaxBodyBytes))
	if err != nil {
		if isTimeout(err) {
			return nil, &LookupError{Method: MethodRDAP, Kind: KindTimeout, Domain: domain, Err: err}
		}
		return nil, &LookupError{Method: MethodRDAP, Kind: KindTransport, Domain: domain, Err: err}
	}

	var doc rdapDomain
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &LookupError{
			Method: MethodRDAP,
			Kind:   KindTransport,
			Domain: domain,
			Err:    fmt.Errorf("malformed RDAP body: %w", err),
		}
	}

	return normalizeRDAPDomain(domain, body, &doc), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
