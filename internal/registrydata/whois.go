package registrydata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	whois "github.com/domainr/whois"
	"github.com/go-logr/logr"
)

const whoisMaxBodyBytes = 1 << 20

type whoisClient struct {
	log      logr.Logger
	resolver *resolver
	hc       *http.Client
	ua       string
	timeout  time.Duration
	backends []string
	// fetchRaw performs a port-43 exchange; injectable for tests.
	fetchRaw func(ctx context.Context, query, host string) (string, error)
}

// whoisPayload is the tagged union of the two response shapes a WHOIS query
// can produce. structured is nil for the raw-text variant; raw may accompany
// a structured payload for enrichment.
type whoisPayload struct {
	structured *whoisParsedData
	raw        string
	server     string
}

// whoisBackendResponse is the JSON envelope of an HTTP WHOIS query service.
type whoisBackendResponse struct {
	ParsedData *whoisParsedData `json:"parsedData"`
	RawData    string           `json:"rawData"`
}

type whoisParsedData struct {
	Domain       string            `json:"domain"`
	Registrar    string            `json:"registrar"`
	CreationDate string            `json:"creationDate"`
	ExpiryDate   string            `json:"expiryDate"`
	UpdatedDate  string            `json:"updatedDate"`
	Status       []string          `json:"status"`
	NameServers  []string          `json:"nameServers"`
	Registrant   *whoisContactData `json:"registrant"`
	Admin        *whoisContactData `json:"admin"`
	Tech         *whoisContactData `json:"tech"`
	DNSSEC       string            `json:"dnssec"`
	WhoisServer  string            `json:"whoisServer"`
}

type whoisContactData struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

// lookupDomain answers from WHOIS. Acquisition is layered: HTTP backend
// candidates, then the port-43 wire protocol, then a synthetic "not
// available" payload so parsing always has input. Only validation can fail.
func (c *whoisClient) lookupDomain(ctx context.Context, domain string) (*Record, error) {
	domain, err := NormalizeDomain(domain)
	if err != nil {
		return nil, err
	}
	server := c.resolver.whoisServer(domain)
	payload := c.fetchPayload(ctx, domain, server)
	return normalizeWhoisPayload(domain, payload), nil
}

func (c *whoisClient) fetchPayload(ctx context.Context, domain, server string) *whoisPayload {
	for _, backend := range c.backends {
		p, err := c.queryBackend(ctx, backend, domain)
		if err != nil {
			c.log.V(1).Info("WHOIS backend failed", "backend", backend, "domain", domain, "error", err.Error())
			continue
		}
		if p.server == "" {
			p.server = server
		}
		return p
	}

	if body, host, err := c.queryWire(ctx, domain, server); err != nil {
		c.log.V(1).Info("WHOIS wire query failed", "server", server, "domain", domain, "error", err.Error())
	} else if strings.TrimSpace(body) != "" {
		return &whoisPayload{raw: body, server: host}
	}

	return &whoisPayload{
		raw:    fmt.Sprintf("No WHOIS data available for %s\n", domain),
		server: server,
	}
}

func (c *whoisClient) queryBackend(ctx context.Context, backend, domain string) (*whoisPayload, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	sep := "?"
	if strings.Contains(backend, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet,
		backend+sep+"domain="+url.QueryEscape(domain), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, whoisMaxBodyBytes))
	if err != nil {
		return nil, err
	}

	var env whoisBackendResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("unrecognizable payload: %w", err)
	}
	if env.ParsedData == nil && strings.TrimSpace(env.RawData) == "" {
		return nil, fmt.Errorf("unrecognizable payload: no parsedData or rawData")
	}

	p := &whoisPayload{structured: env.ParsedData, raw: env.RawData}
	if env.ParsedData != nil {
		p.server = env.ParsedData.WhoisServer
	}
	return p, nil
}

// queryWire performs the port-43 exchange, chasing one IANA referral when
// the resolver only had the default referral server to offer.
func (c *whoisClient) queryWire(ctx context.Context, domain, server string) (body, host string, err error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err = c.fetchRaw(reqCtx, domain, server)
	if err != nil {
		return "", server, err
	}
	host = server

	if server == DefaultWhoisReferralServer {
		refer := strings.TrimSpace(findWhoisValue(body, []string{"refer", "whois"}))
		if refer != "" && !strings.EqualFold(refer, server) {
			referCtx, cancelRefer := context.WithTimeout(ctx, c.timeout)
			defer cancelRefer()
			if b, rerr := c.fetchRaw(referCtx, domain, refer); rerr == nil && strings.TrimSpace(b) != "" {
				return b, refer, nil
			}
			c.log.V(1).Info("WHOIS referral query failed, keeping referral body",
				"refer", refer, "domain", domain)
		}
	}
	return body, host, nil
}

// whoisFetchAtHost performs a WHOIS query at a specific host and returns the
// body as a string.
func whoisFetchAtHost(ctx context.Context, query, host string) (string, error) {
	req, err := whois.NewRequest(query)
	if err != nil {
		return "", err
	}
	req.Host = host
	resp, err := whois.DefaultClient.FetchContext(ctx, req)
	if err != nil {
		return "", err
	}
	return string(resp.Body), nil
}
