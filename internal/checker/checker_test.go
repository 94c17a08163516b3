package checker

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdapsnipe/rdapsnipe/internal/metrics"
	"github.com/rdapsnipe/rdapsnipe/internal/rdap"
)

type stubProber struct {
	outcome rdap.Outcome
	calls   int
}

func (s *stubProber) Probe(ctx context.Context, fqdn string) rdap.Outcome {
	s.calls++
	return s.outcome
}

func TestCheckRDAPOnlyWhenNonError(t *testing.T) {
	rdapStub := &stubProber{outcome: rdap.Outcome{Status: rdap.StatusAvailable, FQDN: "foo.com"}}
	whoisStub := &stubProber{}

	c := New(Config{EnableRDAP: true, EnableWHOIS: true, ConcurrentChecks: 4}, rdapStub, whoisStub, metrics.New(), nil)
	result, err := c.Check(context.Background(), "foo.com")
	require.NoError(t, err)

	assert.Equal(t, StatusAvailable, result.Status)
	assert.Equal(t, MethodRDAP, result.Method)
	assert.Equal(t, 1, rdapStub.calls)
	assert.Equal(t, 0, whoisStub.calls, "whois must not be invoked when rdap succeeds")
}

func TestCheckFallsBackToWHOISOnRDAPError(t *testing.T) {
	rdapStub := &stubProber{outcome: rdap.Outcome{Status: rdap.StatusError, ErrorMessage: "registry server error 500", ErrorStatusCode: 500}}
	whoisStub := &stubProber{outcome: rdap.Outcome{Status: rdap.StatusAvailable}}

	c := New(Config{EnableRDAP: true, EnableWHOIS: true, ConcurrentChecks: 4}, rdapStub, whoisStub, metrics.New(), nil)
	result, err := c.Check(context.Background(), "foo.com")
	require.NoError(t, err)

	assert.Equal(t, StatusAvailable, result.Status)
	assert.Equal(t, MethodWHOIS, result.Method)
	assert.Equal(t, 1, whoisStub.calls)
}

func TestCheckRDAPAvailabilitySuggestingErrorShortCircuits(t *testing.T) {
	rdapStub := &stubProber{outcome: rdap.Outcome{Status: rdap.StatusError, ErrorMessage: "not found", ErrorStatusCode: 404}}
	whoisStub := &stubProber{}

	c := New(Config{EnableRDAP: true, EnableWHOIS: true, ConcurrentChecks: 4}, rdapStub, whoisStub, metrics.New(), nil)
	result, err := c.Check(context.Background(), "foo.com")
	require.NoError(t, err)

	assert.Equal(t, StatusAvailable, result.Status)
	assert.Equal(t, MethodRDAP, result.Method)
	assert.Equal(t, 0, whoisStub.calls)
}

func TestCheckBothFailReturnsUnknown(t *testing.T) {
	rdapStub := &stubProber{outcome: rdap.Outcome{Status: rdap.StatusError, ErrorMessage: "server error", ErrorStatusCode: 503}}
	whoisStub := &stubProber{outcome: rdap.Outcome{Status: rdap.StatusError, ErrorMessage: "ambiguous response"}}

	c := New(Config{EnableRDAP: true, EnableWHOIS: true, ConcurrentChecks: 4}, rdapStub, whoisStub, metrics.New(), nil)
	result, err := c.Check(context.Background(), "foo.com")
	require.NoError(t, err)

	assert.Equal(t, StatusUnknown, result.Status)
	assert.Equal(t, MethodUnknown, result.Method)
	assert.Equal(t, "all checking methods failed", result.ErrorMessage)
}

func TestCheckRejectsInvalidName(t *testing.T) {
	c := New(Config{EnableRDAP: true, ConcurrentChecks: 1}, &stubProber{}, &stubProber{}, metrics.New(), nil)
	_, err := c.Check(context.Background(), "invalid")
	assert.Error(t, err)
}

func TestAvailabilityStatusString(t *testing.T) {
	assert.Equal(t, "available", StatusAvailable.String())
	assert.Equal(t, "taken", StatusTaken.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
	assert.Equal(t, "error", StatusError.String())
}

func TestCheckLogsWhenTLDNotICANNDelegated(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rdapStub := &stubProber{outcome: rdap.Outcome{Status: rdap.StatusAvailable}}
	whoisStub := &stubProber{}
	c := New(Config{EnableRDAP: true, ConcurrentChecks: 1}, rdapStub, whoisStub, metrics.New(), log)

	_, err := c.Check(context.Background(), "foo.zzqxtestbogus")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "not in the icann public suffix list")
}
