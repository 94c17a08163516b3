package rdap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rdapsnipe/rdapsnipe/internal/errtypes"
)

const userAgent = "rdapsnipe/1.0 (+https://github.com/rdapsnipe/rdapsnipe)"

// Client is the RDAP client. A single instance is
// constructed once per Checker and shared across all goroutines; its
// underlying http.Client's Transport.MaxIdleConnsPerHost is sized to the
// configured concurrency to amortize TLS cost across a sweep.
type Client struct {
	httpClient *http.Client
	timeout time.Duration
	expiringDays int
}

// NewClient builds an RDAP client. concurrency sizes the per-host idle
// connection pool; timeout bounds every individual request (10s
// interactive / 15s snipe); expiringDays is the "soon" threshold used to
// refine Taken into ExpiringSoon/Expired.
func NewClient(concurrency int, timeout time.Duration, expiringDays int) *Client {
	if concurrency < 1 {
		concurrency = 1
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost: concurrency,
		IdleConnTimeout: 90 * time.Second,
	}
	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		timeout: timeout,
		expiringDays: expiringDays,
	}
}

// Probe performs the RDAP GET and classifies the response: a 404 means
// available, a 200 with a non-empty body means taken (further refined into
// expiring-soon/expired via the parsed expiration date) and a 200 with an
// empty body means available, and anything else (other 2xx codes included)
// becomes a retriable-or-not Error outcome.
func (c *Client) Probe(ctx context.Context, fqdn string) Outcome {
	url, ok := QueryURL(fqdn)
	if !ok {
		return Outcome{
			Status: StatusError,
			FQDN: fqdn,
			ErrorMessage: "no rdap registry entry for tld",
			ErrorRetriable: false,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errorOutcome(fqdn, err.Error(), 0, false)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rdap+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A context deadline surfaces here as a url.Error wrapping
		// context.DeadlineExceeded; treat all transport-level failures
		// as retriable network errors.
		return errorOutcome(fqdn, err.Error(), 0, true)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Outcome{Status: StatusAvailable, FQDN: fqdn}
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return errorOutcome(fqdn, err.Error(), resp.StatusCode, true)
		}
		return c.classifyBody(fqdn, body)
	case resp.StatusCode == http.StatusTooManyRequests:
		return errorOutcome(fqdn, "rate limited by registry", resp.StatusCode, true)
	case resp.StatusCode >= 500:
		return errorOutcome(fqdn, fmt.Sprintf("registry server error %d", resp.StatusCode), resp.StatusCode, true)
	default:
		return errorOutcome(fqdn, fmt.Sprintf("unexpected rdap status %d", resp.StatusCode), resp.StatusCode, false)
	}
}

func errorOutcome(fqdn, message string, statusCode int, retriable bool) Outcome {
	return Outcome{
		Status: StatusError,
		FQDN: fqdn,
		ErrorMessage: message,
		ErrorRetriable: retriable,
		ErrorStatusCode: statusCode,
	}
}

func (c *Client) classifyBody(fqdn string, body []byte) Outcome {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return Outcome{
			Status: StatusError,
			FQDN: fqdn,
			ErrorMessage: (&errtypes.Error{Kind: errtypes.KindParse, Message: err.Error()}).Error(),
			ErrorRetriable: false,
		}
	}

	out := Outcome{
		FQDN: fqdn,
		RDAPStatus: resp.Status,
		Nameservers: extractNameservers(resp.Nameservers),
		Registrar: extractRegistrar(resp.Entities),
	}

	expiration := extractExpiration(resp.Events)
	out.ExpirationDate = expiration

	nonEmpty := len(resp.Status) > 0 || len(resp.Entities) > 0 || len(resp.Events) > 0 || len(resp.Nameservers) > 0
	if !nonEmpty {
		out.Status = StatusAvailable
		return out
	}

	out.Status = StatusTaken
	if expiration != nil {
		days := daysUntil(*expiration)
		out.DaysUntilExpiry = &days
		switch {
		case days <= 0:
			out.Status = StatusExpired
		case days <= int64(c.expiringDays):
			out.Status = StatusExpiringSoon
		}
	}
	return out
}

func daysUntil(t time.Time) int64 {
	return int64(time.Until(t).Hours() / 24)
}

func extractExpiration(events []event) *time.Time {
	for _, e := range events {
		if e.EventAction != "expiration" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, e.EventDate)
		if err != nil {
			continue
		}
		return &parsed
	}
	return nil
}

func extractNameservers(ns []nameserver) []string {
	if len(ns) == 0 {
		return nil
	}
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		if n.LDHName != "" {
			out = append(out, n.LDHName)
		}
	}
	return out
}

// extractRegistrar finds the entity whose roles include "registrar" and
// pulls the vCard FN property's string value out of vcardArray[1][*]:
// vcardArray = ["vcard", [["fn", {}, "text", "<name>"], ...]]
func extractRegistrar(entities []entity) string {
	for _, e := range entities {
		if !hasRole(e.Roles, "registrar") {
			continue
		}
		if name := fnFromVCard(e.VCardArray); name != "" {
			return name
		}
	}
	return ""
}

func hasRole(roles []string, want string) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}

func fnFromVCard(vcardArray []any) string {
	if len(vcardArray) != 2 {
		return ""
	}
	properties, ok := vcardArray[1].([]any)
	if !ok {
		return ""
	}
	for _, p := range properties {
		prop, ok := p.([]any)
		if !ok || len(prop) < 4 {
			continue
		}
		name, ok := prop[0].(string)
		if !ok || name != "fn" {
			continue
		}
		if value, ok := prop[3].(string); ok {
			return value
		}
	}
	return ""
}
