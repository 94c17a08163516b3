package whois

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdapsnipe/rdapsnipe/internal/rdap"
)

// fakeFetcher is an in-memory fetcher keyed by host, so tests never touch
// the network even though domainr/whois itself only speaks real TCP/43.
type fakeFetcher struct {
	byHost map[string]string
	err    error
}

func (f *fakeFetcher) Fetch(ctx context.Context, query, host string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.byHost[host], nil
}

func TestProbeAvailableViaNoMatch(t *testing.T) {
	c := &Client{
		fetch:   &fakeFetcher{byHost: map[string]string{"whois.nic.xx": "No match for FOO.XX"}},
		timeout: time.Second,
		hosts:   map[string]string{"xx": "whois.nic.xx"},
	}
	out := c.Probe(context.Background(), "foo.xx")
	assert.Equal(t, rdap.StatusAvailable, out.Status)
}

func TestProbeTakenExtractsRegistrar(t *testing.T) {
	body := "Domain Name: EXAMPLE.COM\nRegistrar: Example Registrar Inc.\nRegistry Expiry Date: 2030-01-02T03:04:05Z\n"
	c := &Client{
		fetch:   &fakeFetcher{byHost: map[string]string{"whois.verisign-grs.com": body}},
		timeout: time.Second,
		hosts:   map[string]string{"com": "whois.verisign-grs.com"},
	}
	out := c.Probe(context.Background(), "example.com")
	require.Equal(t, rdap.StatusTaken, out.Status)
	assert.Equal(t, "Example Registrar Inc.", out.Registrar)
	require.NotNil(t, out.ExpirationDate)
}

func TestProbeUnknownTLDUsesIANAReferral(t *testing.T) {
	c := &Client{
		fetch: &fakeFetcher{byHost: map[string]string{
			ianaHost:         "whois: whois.nic.zz",
			"whois.nic.zz": "No entries found for domain",
		}},
		timeout: time.Second,
		hosts:   map[string]string{},
	}
	out := c.Probe(context.Background(), "foo.zz")
	assert.Equal(t, rdap.StatusAvailable, out.Status)
}

func TestClassifyUnknownWhenAmbiguous(t *testing.T) {
	out := classify("foo.com", "This server does not recognize that request.")
	assert.Equal(t, rdap.StatusError, out.Status)
	assert.False(t, out.ErrorRetriable)
}

func TestParseReferralReturnsFirstMatchingLine(t *testing.T) {
	host, err := parseReferral("% IANA WHOIS server\nrefer:       whois.example-refer.net\nwhois:        whois.example.net\n")
	require.NoError(t, err)
	assert.Equal(t, "whois.example-refer.net", host)
}
