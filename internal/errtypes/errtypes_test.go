package errtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAvailabilitySuggesting(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want bool
	}{
		{"404 status", Network("not found", 404, false), true},
		{"no match text", DomainCheck("foo.xx", "whois", "No match for FOO.XX"), true},
		{"available text", DomainCheck("foo.xx", "whois", "domain is available"), true},
		{"unrelated network error", Network("connection reset", 0, true), false},
		{"server error", Network("server error", 500, true), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.IsAvailabilitySuggesting())
		})
	}
}

func TestIsAvailabilitySuggestingNilSafe(t *testing.T) {
	var e *Error
	assert.False(t, e.IsAvailabilitySuggesting())
}

func TestErrorMessageFormat(t *testing.T) {
	e := DomainCheck("example.com", "rdap", "boom")
	assert.Contains(t, e.Error(), "example.com")
	assert.Contains(t, e.Error(), "rdap")
	assert.Contains(t, e.Error(), "domain_check")
}

func TestParseTruncatesLongContent(t *testing.T) {
	huge := make([]byte, 4096)
	for i := range huge {
		huge[i] = 'x'
	}
	e := Parse("bad json", string(huge))
	assert.Less(t, len(e.Content), len(huge))
	assert.Contains(t, e.Content, "truncated")
}
