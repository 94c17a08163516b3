// Package enum implements the name-space enumerators:
// deterministic, indexable, resumable iterators over full N-letter
// strings, pronounceable 4-letter patterns, curated 5-letter words, and
// 6-letter phonetic patterns. Every enumerator satisfies the Enumerator
// interface so the snipe engine can drive any of them interchangeably.
package enum

// Enumerator is the uniform contract every name-space generator exposes.
type Enumerator interface {
	// Total is the size of the enumerator's declared domain.
	Total() uint64
	// CurrentIndex is the cursor position; 0 initially.
	CurrentIndex() uint64
	// SetIndex restores position for resume; it clamps to Total and is
	// idempotent.
	SetIndex(i uint64)
	// NextBatch returns up to n names starting at the cursor and advances
	// it; it returns fewer than n only when the enumerator is exhausted.
	NextBatch(n int) []string
	// IsExhausted reports whether CurrentIndex has reached Total.
	IsExhausted() bool
}

// Charset selects the alphabet used by the Full enumerator.
type Charset int

const (
	CharsetLetters Charset = iota
	CharsetAlphanumeric
)

func (c Charset) chars() []byte {
	switch c {
	case CharsetAlphanumeric:
		return alphanumericChars
	default:
		return letterChars
	}
}

var letterChars = []byte("abcdefghijklmnopqrstuvwxyz")
var alphanumericChars = []byte("abcdefghijklmnopqrstuvwxyz0123456789")

func clampIndex(i, total uint64) uint64 {
	if i > total {
		return total
	}
	return i
}
