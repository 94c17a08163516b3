// Package rdap implements the RDAP registry map and RDAP client: a static
// TLD→base-URL table and the HTTP client that queries it, classifies the
// response, and extracts expiration, registrar and nameserver data.
package rdap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// registryMap is the static TLD → RDAP base URL table. Centralizing it
// here lets both the interactive checker and the snipe engine agree on
// exactly the same set of supported TLDs; unknown TLDs are a first-class
// "not found", never an exception.
var registryMap = map[string]string{
	"com": "https://rdap.verisign.com/com/v1/",
	"net": "https://rdap.verisign.com/net/v1/",
	"org": "https://rdap.org.org/",
	"io": "https://rdap.nic.io/",
	"ai": "https://rdap.nic.ai/",
	"tech": "https://rdap.nic.tech/",
	"app": "https://rdap.nic.google/",
	"dev": "https://rdap.nic.google/",
	"xyz": "https://rdap.nic.xyz/",
	"co": "https://rdap.nic.co/",
	"me": "https://rdap.nic.me/",
}

// Base returns the RDAP base URL for a lowercase TLD (without leading dot).
// ok is false for TLDs absent from the map.
func Base(tld string) (url string, ok bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	url, ok = registryMap[tld]
	return
}

// QueryURL builds the full RDAP domain query URL for a fully-qualified
// domain name, e.g. "example.com" -> "https://rdap.verisign.com/com/v1/domain/example.com".
func QueryURL(fqdn string) (string, bool) {
	idx := strings.LastIndex(fqdn, ".")
	if idx < 0 || idx == len(fqdn)-1 {
		return "", false
	}
	tld := fqdn[idx+1:]
	base, ok := Base(tld)
	if !ok {
		return "", false
	}
	return base + "domain/" + fqdn, true
}

// Supported reports whether the registry map has an entry for tld.
func Supported(tld string) bool {
	_, ok := Base(tld)
	return ok
}

// registryMu guards registryMap against concurrent mutation by
// RefreshFromIANABootstrap while Base/QueryURL/Supported are in use.
var registryMu sync.RWMutex

// iana bootstrap file format: a top-level "services" array, each entry a
// 2-tuple of [tlds..., rdap base urls...].
const ianaBootstrapURL = "https://data.iana.org/rdap/dns.json"

type ianaBootstrap struct {
	Services []ianaService `json:"services"`
}

type ianaService [][]string

func (b *ianaBootstrap) asMap() (map[string]string, error) {
	if b == nil || len(b.Services) == 0 {
		return nil, errors.New("rdap bootstrap: services list is empty")
	}
	m := make(map[string]string, len(b.Services)*2)
	for _, svc := range b.Services {
		if len(svc) != 2 || len(svc[1]) == 0 {
			return nil, fmt.Errorf("rdap bootstrap: malformed service entry %+v", svc)
		}
		for _, tld := range svc[0] {
			m[tld] = svc[1][0]
		}
	}
	return m, nil
}

// RefreshFromIANABootstrap fetches the live IANA RDAP bootstrap file and
// merges its TLD->base-URL entries over the built-in static map, so newly
// delegated or re-hosted TLDs become queryable without a code change.
// Every bootstrap entry overwrites any static entry for the same TLD;
// static entries the bootstrap does not list are kept.
func RefreshFromIANABootstrap(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ianaBootstrapURL, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var boot ianaBootstrap
	if err := json.Unmarshal(body, &boot); err != nil {
		return fmt.Errorf("rdap bootstrap: decode: %w", err)
	}
	fresh, err := boot.asMap()
	if err != nil {
		return err
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	for tld, base := range fresh {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		registryMap[tld] = base
	}
	return nil
}
