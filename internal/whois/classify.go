package whois

import (
	"errors"
	"strings"
	"time"

	"github.com/rdapsnipe/rdapsnipe/internal/rdap"
)

var errNoReferral = errors.New("no whois/refer line found in iana response")

var availableMarkers = []string{
	"no match", "not found", "no entries found", "domain not found",
	"not registered", "available for registration",
}

var takenMarkers = []string{
	"registrar:", "creation date:", "created:", "registered:",
	"name server:", "nameserver:", "domain status:", "status:",
}

// dateLayouts are the tolerant date formats accepted when extracting
// creation/expiration dates from free-text WHOIS output.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05 UTC",
	"02-Jan-2006",
	"02.01.2006",
}

// classify applies the heuristic text classification rules: an
// availability marker with no taken marker present means Available; any
// taken marker means Taken (with best-effort registrar/date extraction);
// otherwise Unknown, represented as a non-retriable Error.
func classify(fqdn, body string) rdap.Outcome {
	lower := strings.ToLower(body)

	hasTaken := containsAny(lower, takenMarkers)
	hasAvailable := containsAny(lower, availableMarkers)

	if hasAvailable && !hasTaken {
		return rdap.Outcome{Status: rdap.StatusAvailable, FQDN: fqdn}
	}

	if hasTaken {
		out := rdap.Outcome{Status: rdap.StatusTaken, FQDN: fqdn}
		out.Registrar = extractField(body, "registrar:")
		if expiration := extractDate(body, []string{"registry expiry date:", "expiration date:", "expiry date:"}); expiration != nil {
			out.ExpirationDate = expiration
			days := int64(time.Until(*expiration).Hours() / 24)
			out.DaysUntilExpiry = &days
		}
		return out
	}

	return rdap.Outcome{
		Status: rdap.StatusError,
		FQDN: fqdn,
		ErrorMessage: "whois response did not match any known pattern",
		ErrorRetriable: false,
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// extractField returns the trimmed value of the first "Key: value" line
// (case-insensitive key match) in body, or "" if absent.
func extractField(body, key string) string {
	lowerKey := strings.ToLower(key)
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), lowerKey) {
			return strings.TrimSpace(trimmed[len(key):])
		}
	}
	return ""
}

// extractDate tries each candidate key and each tolerant layout in turn.
func extractDate(body string, keys []string) *time.Time {
	for _, key := range keys {
		value := extractField(body, key)
		if value == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return &t
			}
		}
	}
	return nil
}
