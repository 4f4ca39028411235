package registrydata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "example.com", want: "example.com"},
		{name: "mixed case", in: "Example.COM", want: "example.com"},
		{name: "surrounding whitespace", in: "  example.com \n", want: "example.com"},
		{name: "trailing dot", in: "example.com.", want: "example.com"},
		{name: "subdomain", in: "www.example.co.uk", want: "www.example.co.uk"},
		{name: "unicode maps to punycode", in: "bücher.de", want: "xn--bcher-kva.de"},
		{name: "hyphenated label", in: "my-site.example.org", want: "my-site.example.org"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeDomain(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeDomainRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "whitespace only", in: "   "},
		{name: "single label", in: "localhost"},
		{name: "bare tld", in: "com"},
		{name: "leading hyphen", in: "-bad.example.com"},
		{name: "trailing hyphen", in: "bad-.example.com"},
		{name: "empty label", in: "example..com"},
		{name: "leading dot", in: ".example.com"},
		{name: "space inside", in: "exa mple.com"},
		{name: "underscore", in: "bad_label.example.com"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NormalizeDomain(tc.in)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.in, verr.Domain)
		})
	}
}
