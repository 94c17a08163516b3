package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAccepts(t *testing.T) {
	for _, raw := range []string{"example.com", "sub.example.com", "test-domain.org"} {
		t.Run(raw, func(t *testing.T) {
			n, err := Validate(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, n.FQDN)
		})
	}
}

func TestValidateRejects(t *testing.T) {
	for _, raw := range []string{"", "invalid", "-invalid.com", "invalid-.com", "a..b.com", "a--b.com"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Validate(raw)
			require.Error(t, err)
		})
	}
}

func TestValidateAcceptsSingleInternalHyphen(t *testing.T) {
	// "a--b.com" is rejected by the adjacent-hyphen rule wherever the "--"
	// sits (see TestValidateRejects); a single internal hyphen is accepted.
	// This is a regression guard documenting the exact accept/reject line.
	n, err := Validate("a-b.com")
	require.NoError(t, err)
	assert.Equal(t, "a-b.com", n.FQDN)
}

func TestValidateSetsICANNDelegatedForKnownTLD(t *testing.T) {
	n, err := Validate("example.com")
	require.NoError(t, err)
	assert.True(t, n.ICANNDelegated)
}

func TestValidateAcceptsUnknownTLDButLeavesICANNDelegatedFalse(t *testing.T) {
	n, err := Validate("example.zzqxtestbogus")
	require.NoError(t, err)
	assert.False(t, n.ICANNDelegated)
}

func TestValidateNormalizesCaseAndWhitespace(t *testing.T) {
	n, err := Validate("EXAMPLE.COM ")
	require.NoError(t, err)
	assert.Equal(t, "example.com", n.FQDN)

	n2, err := Validate(n.FQDN)
	require.NoError(t, err)
	assert.Equal(t, n.FQDN, n2.FQDN)
}
