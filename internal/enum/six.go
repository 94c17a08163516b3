package enum

// sixPattern names one of the two disjoint 6-letter phonetic patterns.
type sixPattern int

const (
	sixPatternCVCVCV sixPattern = iota
	sixPatternVCVCVC
)

var sixVowels = []byte("aeio")
var sixConsonants = []byte("bcdfghlmnprstw")

// SixLetterEnumerator generates pronounceable 6-letter names across the
// CVCVCV and VCVCVC patterns, routed by prefix-sum index ranges. It
// deliberately avoids the full 26^6 space, instead restricting to a
// 14-consonant/4-vowel alphabet to keep the output pronounceable.
type SixLetterEnumerator struct {
	patternSize uint64
	total       uint64

	patternIdx int
	withinIdx  uint64
}

// NewSixLetterEnumerator builds the fixed two-bucket enumerator. Each
// bucket contributes consonants^3 * vowels^3 entries.
func NewSixLetterEnumerator() *SixLetterEnumerator {
	c := uint64(len(sixConsonants))
	v := uint64(len(sixVowels))
	size := c * c * c * v * v * v
	return &SixLetterEnumerator{patternSize: size, total: size * 2}
}

func (g *SixLetterEnumerator) Total() uint64 { return g.total }

func (g *SixLetterEnumerator) CurrentIndex() uint64 {
	return uint64(g.patternIdx)*g.patternSize + g.withinIdx
}

func (g *SixLetterEnumerator) SetIndex(i uint64) {
	i = clampIndex(i, g.total)
	if i < g.patternSize {
		g.patternIdx = 0
		g.withinIdx = i
		return
	}
	remaining := i - g.patternSize
	if remaining < g.patternSize {
		g.patternIdx = 1
		g.withinIdx = remaining
		return
	}
	g.patternIdx = 2
	g.withinIdx = 0
}

func (g *SixLetterEnumerator) IsExhausted() bool {
	return g.patternIdx >= 2
}

func (g *SixLetterEnumerator) NextBatch(n int) []string {
	batch := make([]string, 0, n)
	for len(batch) < n && !g.IsExhausted() {
		if g.withinIdx >= g.patternSize {
			g.patternIdx++
			g.withinIdx = 0
			continue
		}
		name, ok := g.generateForPattern(sixPattern(g.patternIdx), g.withinIdx)
		g.withinIdx++
		if !ok {
			continue
		}
		batch = append(batch, name)
	}
	return batch
}

func (g *SixLetterEnumerator) generateForPattern(p sixPattern, index uint64) (string, bool) {
	c := uint64(len(sixConsonants))
	v := uint64(len(sixVowels))

	switch p {
	case sixPatternCVCVCV:
		i0, rem := index/(v*c*v*c*v), index%(v*c*v*c*v)
		i1, rem := rem/(c*v*c*v), rem%(c*v*c*v)
		i2, rem := rem/(v*c*v), rem%(v*c*v)
		i3, rem := rem/(c*v), rem%(c*v)
		i4, i5 := rem/v, rem%v
		if i0 >= c || i2 >= c || i4 >= c || i1 >= v || i3 >= v || i5 >= v {
			return "", false
		}
		return string([]byte{
			sixConsonants[i0], sixVowels[i1], sixConsonants[i2],
			sixVowels[i3], sixConsonants[i4], sixVowels[i5],
		}), true
	case sixPatternVCVCVC:
		i0, rem := index/(c*v*c*v*c), index%(c*v*c*v*c)
		i1, rem := rem/(v*c*v*c), rem%(v*c*v*c)
		i2, rem := rem/(c*v*c), rem%(c*v*c)
		i3, rem := rem/(v*c), rem%(v*c)
		i4, i5 := rem/c, rem%c
		if i1 >= c || i3 >= c || i5 >= c || i0 >= v || i2 >= v || i4 >= v {
			return "", false
		}
		return string([]byte{
			sixVowels[i0], sixConsonants[i1], sixVowels[i2],
			sixConsonants[i3], sixVowels[i4], sixConsonants[i5],
		}), true
	default:
		return "", false
	}
}

var _ Enumerator = (*SixLetterEnumerator)(nil)
