package registrydata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/openrdap/rdap/bootstrap"
	"github.com/stretchr/testify/require"
)

// newTestRDAPClient serves RDAP for the .zz registry key from handler. The
// resolver learns the test server's base URL through the spy bootstrap.
func newTestRDAPClient(t *testing.T, handler http.HandlerFunc) *rdapClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	bc := &spyBootstrap{
		fn: func(q *bootstrap.Question) (*bootstrap.Answer, error) {
			u, err := url.Parse(srv.URL)
			require.NoError(t, err)
			return &bootstrap.Answer{URLs: []*url.URL{u}}, nil
		},
	}
	return &rdapClient{
		log:      logr.Discard(),
		resolver: newTestResolver(bc),
		hc:       srv.Client(),
		ua:       "registry-lookup-test/1.0",
		timeout:  5 * time.Second,
	}
}

const rdapDomainBody = `{
  "objectClassName": "domain",
  "rdapConformance": ["rdap_level_0"],
  "handle": "2336799_DOMAIN_ZZ",
  "ldhName": "EXAMPLE.ZZ",
  "status": ["client delete prohibited", "client transfer prohibited"],
  "events": [
    {"eventAction": "registration", "eventDate": "1995-08-14T04:00:00Z"},
    {"eventAction": "registration", "eventDate": "2001-01-01T00:00:00Z"},
    {"eventAction": "expiration", "eventDate": "2026-08-13T04:00:00Z"},
    {"eventAction": "last changed", "eventDate": "2025-08-14T07:01:44Z"},
    {"eventAction": "transfer", "eventDate": "2010-01-01T00:00:00Z"}
  ],
  "entities": [
    {
      "roles": ["registrar"],
      "vcardArray": ["vcard", [
        ["version", {}, "text", "4.0"],
        ["fn", {}, "text", "Example Registrar Inc."],
        ["email", {}, "text", "abuse@registrar.example"],
        ["tel", {"type": ["voice"]}, "uri", "tel:+1.5555550100"]
      ]],
      "entities": [
        {
          "roles": ["abuse"],
          "vcardArray": ["vcard", [
            ["version", {}, "text", "4.0"],
            ["fn", {}, "text", "Abuse Desk"]
          ]]
        }
      ]
    },
    {
      "roles": ["registrant"],
      "vcardArray": ["vcard", [
        ["version", {}, "text", "4.0"],
        ["fn", {}, "text", "Jane Holder"],
        ["org", {}, "text", "Example Org"],
        ["adr", {}, "text", ["", "", "123 Main St", "Springfield", "IL", "62701", "US"]]
      ]]
    },
    {
      "roles": ["technical", "administrative"],
      "vcardArray": ["vcard", [
        ["version", {}, "text", "4.0"],
        ["fn", {}, "text", "Ops Team"],
        ["email", {}, "text", "ops@example.zz"]
      ]]
    }
  ],
  "nameservers": [
    {"objectClassName": "nameserver", "ldhName": "NS1.EXAMPLE.ZZ", "ipAddresses": {"v4": ["192.0.2.1"], "v6": ["2001:db8::1"]}},
    {"objectClassName": "nameserver", "ldhName": "ns1.example.zz."},
    {"objectClassName": "nameserver", "ldhName": "ns2.example.zz", "status": ["active"]}
  ],
  "secureDNS": {"delegationSigned": true, "dsData": [{"keyTag": 370}]}
}`

func TestRDAPLookupDomain(t *testing.T) {
	t.Parallel()

	c := newTestRDAPClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/domain/example.zz", r.URL.Path)
		require.Equal(t, rdapAcceptHeader, r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/rdap+json")
		_, _ = w.Write([]byte(rdapDomainBody))
	})

	rec, err := c.lookupDomain(context.Background(), "Example.ZZ")
	require.NoError(t, err)
	require.True(t, rec.Found)
	require.Equal(t, MethodRDAP, rec.Method)
	require.Equal(t, "example.zz", rec.Domain)

	require.Equal(t, []string{"client delete prohibited", "client transfer prohibited"}, rec.Status)

	// First event per action wins; the transfer event is ignored.
	require.Equal(t, "1995-08-14T04:00:00.000Z", rec.RegistrationDate)
	require.Equal(t, "2026-08-13T04:00:00.000Z", rec.ExpirationDate)
	require.Equal(t, "2025-08-14T07:01:44.000Z", rec.LastChangedDate)

	require.NotNil(t, rec.Registrar)
	require.Equal(t, "Example Registrar Inc.", rec.Registrar.Name)
	require.Equal(t, []string{"abuse@registrar.example"}, rec.Registrar.Emails)
	require.Equal(t, []Phone{{Number: "tel:+1.5555550100", Type: "voice"}}, rec.Registrar.Phones)

	require.NotNil(t, rec.Registrant)
	require.Equal(t, "Jane Holder", rec.Registrant.Name)
	require.Equal(t, "Example Org", rec.Registrant.Organization)
	require.Equal(t, []PostalAddress{{
		Street:     "123 Main St",
		Locality:   "Springfield",
		Region:     "IL",
		PostalCode: "62701",
		Country:    "US",
	}}, rec.Registrant.Addresses)

	// One entity carrying both roles fills both contacts.
	require.NotNil(t, rec.AdminContact)
	require.NotNil(t, rec.TechContact)
	require.Equal(t, "Ops Team", rec.AdminContact.Name)
	require.Equal(t, "Ops Team", rec.TechContact.Name)

	// Summary nameservers are lowercased and deduplicated.
	require.Equal(t, []string{"ns1.example.zz", "ns2.example.zz"}, rec.Nameservers)

	require.NotNil(t, rec.RDAP)
	require.Equal(t, "2336799_DOMAIN_ZZ", rec.RDAP.Handle)
	require.Equal(t, []string{"rdap_level_0"}, rec.RDAP.Conformance)
	require.Len(t, rec.RDAP.Nameservers, 3)
	require.Equal(t, []string{"192.0.2.1", "2001:db8::1"}, rec.RDAP.Nameservers[0].IPAddresses)
	require.NotEmpty(t, rec.RDAP.SecureDNS)
	require.NotNil(t, rec.DNSSEC)

	require.JSONEq(t, rdapDomainBody, string(rec.RawData.(json.RawMessage)))
}

func TestRDAPLookupNotFound(t *testing.T) {
	t.Parallel()

	c := newTestRDAPClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	rec, err := c.lookupDomain(context.Background(), "missing.zz")
	require.NoError(t, err)
	require.False(t, rec.Found)
	require.Equal(t, MethodRDAP, rec.Method)
	require.Equal(t, "missing.zz", rec.Domain)
}

func TestRDAPLookupServerError(t *testing.T) {
	t.Parallel()

	c := newTestRDAPClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.lookupDomain(context.Background(), "example.zz")
	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, KindHTTPStatus, lerr.Kind)
	require.Equal(t, http.StatusInternalServerError, lerr.Status)
}

func TestRDAPLookupTimeout(t *testing.T) {
	t.Parallel()

	c := newTestRDAPClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	})
	c.timeout = 30 * time.Millisecond

	_, err := c.lookupDomain(context.Background(), "example.zz")
	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, KindTimeout, lerr.Kind)
}

func TestRDAPLookupMalformedBody(t *testing.T) {
	t.Parallel()

	c := newTestRDAPClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.lookupDomain(context.Background(), "example.zz")
	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, KindTransport, lerr.Kind)
}

func TestRDAPLookupNoServerForTLD(t *testing.T) {
	t.Parallel()

	c := &rdapClient{
		log:      logr.Discard(),
		resolver: newTestResolver(&spyBootstrap{}),
		hc:       http.DefaultClient,
		timeout:  time.Second,
	}

	_, err := c.lookupDomain(context.Background(), "example.zz")
	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, KindNoServer, lerr.Kind)
	require.Contains(t, lerr.Error(), `"zz"`)
}

func TestRDAPLookupRejectsMalformedDomain(t *testing.T) {
	t.Parallel()

	c := newTestRDAPClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for malformed input")
	})

	_, err := c.lookupDomain(context.Background(), "not a domain")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
