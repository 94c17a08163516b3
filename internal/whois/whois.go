// Package whois implements the fallback WHOIS Client: TLD→host routing,
// IANA referral discovery, TCP/43 transport via domainr/whois, and
// heuristic text classification. This path is used by the interactive
// checker only — the snipe engine never falls back to WHOIS (its value is
// deterministic, machine-parseable RDAP).
package whois

import (
	"context"
	"strings"
	"time"

	"github.com/domainr/whois"

	"github.com/rdapsnipe/rdapsnipe/internal/rdap"
)

const ianaHost = "whois.iana.org"

// builtinHosts is the small, well-known TLD->WHOIS-host table consulted
// before falling back to an IANA referral lookup.
var builtinHosts = map[string]string{
	"com": "whois.verisign-grs.com",
	"net": "whois.verisign-grs.com",
	"org": "whois.pir.org",
	"io": "whois.nic.io",
	"ai": "whois.nic.ai",
	"co": "whois.nic.co",
	"me": "whois.nic.me",
	"xyz": "whois.nic.xyz",
	"tech": "whois.nic.tech",
	"app": "whois.nic.google",
	"dev": "whois.nic.google",
}

// fetcher abstracts the raw TCP/43 round trip so tests can substitute a
// fake transport instead of dialing real sockets.
type fetcher interface {
	Fetch(ctx context.Context, query, host string) (string, error)
}

type domainrFetcher struct{}

func (domainrFetcher) Fetch(ctx context.Context, query, host string) (string, error) {
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

// Client is the WHOIS fallback client.
type Client struct {
	fetch fetcher
	timeout time.Duration
	hosts map[string]string
}

// NewClient builds a WHOIS client backed by the real TCP/43 transport.
func NewClient(timeout time.Duration) *Client {
	return &Client{fetch: domainrFetcher{}, timeout: timeout, hosts: builtinHosts}
}

// Probe resolves a WHOIS host for fqdn's TLD (built-in table, else an IANA
// referral lookup), queries it, and heuristically classifies the response
// text.
func (c *Client) Probe(ctx context.Context, fqdn string) rdap.Outcome {
	tld := tldOf(fqdn)
	if tld == "" {
		return errOutcome(fqdn, "malformed fqdn, no tld")
	}

	host, err := c.resolveHost(ctx, tld)
	if err != nil {
		return errOutcome(fqdn, "whois host discovery failed: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.fetch.Fetch(ctx, fqdn, host)
	if err != nil {
		return errOutcomeRetriable(fqdn, "whois query failed: "+err.Error())
	}

	return classify(fqdn, body)
}

func (c *Client) resolveHost(ctx context.Context, tld string) (string, error) {
	if host, ok := c.hosts[tld]; ok {
		return host, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	body, err := c.fetch.Fetch(ctx, tld, ianaHost)
	if err != nil {
		return "", err
	}
	return parseReferral(body)
}

// parseReferral scans a whois.iana.org response for a "whois:" or "refer:"
// line naming the authoritative host for a TLD.
func parseReferral(body string) (string, error) {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		for _, prefix := range []string{"whois:", "refer:"} {
			if strings.HasPrefix(lower, prefix) {
				value := strings.TrimSpace(line[len(prefix):])
				fields := strings.Fields(value)
				if len(fields) > 0 {
					return fields[0], nil
				}
			}
		}
	}
	return "", errNoReferral
}

func tldOf(fqdn string) string {
	idx := strings.LastIndex(fqdn, ".")
	if idx < 0 || idx == len(fqdn)-1 {
		return ""
	}
	return fqdn[idx+1:]
}

func errOutcome(fqdn, message string) rdap.Outcome {
	return rdap.Outcome{Status: rdap.StatusError, FQDN: fqdn, ErrorMessage: message, ErrorRetriable: false}
}

func errOutcomeRetriable(fqdn, message string) rdap.Outcome {
	return rdap.Outcome{Status: rdap.StatusError, FQDN: fqdn, ErrorMessage: message, ErrorRetriable: true}
}
