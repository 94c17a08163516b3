package extract

import (
	"strings"
	"testing"
)

func TestFromLineFindsDomainAmongFields(t *testing.T) {
	if got := FromLine("notes, example.com, more notes"); got != "example.com" {
		t.Errorf("FromLine = %q, want example.com", got)
	}
}

func TestFromLineReturnsEmptyWhenNoneMatch(t *testing.T) {
	if got := FromLine("just some text, no domain here"); got != "" {
		t.Errorf("FromLine = %q, want empty", got)
	}
}

func TestFromReaderCollectsInOrderSkippingBlankLines(t *testing.T) {
	input := "a.com\nskip this\nb.net\n\nc.io\n"
	got, err := FromReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("FromReader error: %v", err)
	}
	want := []string{"a.com", "b.net", "c.io"}
	if len(got) != len(want) {
		t.Fatalf("FromReader = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FromReader[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
