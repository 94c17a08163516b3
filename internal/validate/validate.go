// Package validate implements the minimal structural boundary check
// treated as an external-collaborator contract: length and character
// rules only. TLD whitelisting, blocked-word lists, and a suggestion
// engine are out of scope here.
package validate

import (
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/rdapsnipe/rdapsnipe/internal/errtypes"
)

// Name is the normalized, validated result of Validate.
type Name struct {
	Original string
	Name string
	TLD string
	FQDN string
	// ICANNDelegated is true when TLD appears in the public suffix list's
	// ICANN section. A syntactically valid TLD that is false here is still
	// accepted by Validate, but is unlikely to resolve through the RDAP or
	// WHOIS registries this module knows about, so callers use it as a
	// diagnostic signal rather than a rejection reason.
	ICANNDelegated bool
}

const maxTotalLength = 253
const maxLabelLength = 63

// Validate normalizes and structurally validates a bare "name.tld" string,
// trimming whitespace and lowercasing.
// It returns a *errtypes.Error with Kind KindValidation on rejection, never
// a panic.
func Validate(raw string) (Name, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return Name{}, errtypes.Validation("empty domain name")
	}
	if len(trimmed) > maxTotalLength {
		return Name{}, errtypes.Validation("domain exceeds maximum length")
	}

	idx := strings.LastIndex(trimmed, ".")
	if idx <= 0 || idx == len(trimmed)-1 {
		return Name{}, errtypes.Validation("domain must be of the form name.tld")
	}
	name := trimmed[:idx]
	tld := trimmed[idx+1:]

	if err := validateLabelChain(name); err != nil {
		return Name{}, err
	}
	icann, ok := isValidTLD(tld)
	if !ok {
		return Name{}, errtypes.Validation("tld must match [a-z]{2,63}")
	}

	fqdn := name + "." + tld
	return Name{Original: raw, Name: name, TLD: tld, FQDN: fqdn, ICANNDelegated: icann}, nil
}

// validateLabelChain checks every dot-separated label of the name portion
// (everything before the TLD) for length and hyphen-placement rules, and
// rejects empty labels (the "a..b.com" case).
func validateLabelChain(name string) error {
	labels := strings.Split(name, ".")
	for _, label := range labels {
		if label == "" {
			return errtypes.Validation("empty label between dots")
		}
		if len(label) > maxLabelLength {
			return errtypes.Validation("label exceeds 63 characters")
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return errtypes.Validation("label has leading or trailing hyphen")
		}
		if strings.Contains(label, "--") {
			return errtypes.Validation("label has adjacent hyphens")
		}
		for _, r := range label {
			if !isASCIILower(r) && !isASCIIDigit(r) && r != '-' {
				return errtypes.Validation("label contains invalid character")
			}
		}
	}
	return nil
}

// isValidTLD reports whether tld passes the structural shape check, and
// whether it is additionally ICANN-delegated per the public suffix list.
// A syntactically valid TLD unknown to the list still passes (the list is
// not authoritative for brand-new or sandboxed TLDs used in tests), with
// icann false so callers can log or branch on the distinction.
func isValidTLD(tld string) (icann bool, valid bool) {
	if len(tld) < 2 || len(tld) > 63 {
		return false, false
	}
	for _, r := range tld {
		if !isASCIILower(r) {
			return false, false
		}
	}
	_, icann = publicsuffix.PublicSuffix(tld)
	return icann, true
}

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
