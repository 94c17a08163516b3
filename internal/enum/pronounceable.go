package enum

// pronounceablePattern names one of the seven disjoint pattern buckets
// that together cover the four-letter pronounceable name space.
type pronounceablePattern int

const (
	patternCVCV pronounceablePattern = iota
	patternCVCC
	patternCCVC
	patternCVVC
	patternVCVC
	patternPrefixBased
	patternSuffixBased
)

var pronounceableVowels = []byte("aeiou")
var pronounceableConsonants = []byte("bcdfghjklmnprstvwxyz")

// valuablePrefixes/valuableSuffixes are the 20-entry tables backing
// the Prefix-based/Suffix-based buckets.
var valuablePrefixes = []string{
	"go", "my", "ai", "be", "we", "up", "on", "in", "to", "do",
	"no", "so", "hi", "ok", "io", "ex", "re", "co", "un", "de",
}

var valuableSuffixes = []string{
	"ly", "io", "ai", "go", "up", "it", "me", "us", "fy", "oo",
	"er", "ed", "en", "ey", "ie", "ty", "by", "ry", "ny", "xy",
}

// PronounceableEnumerator generates pronounceable 4-letter names across
// the seven pattern buckets, routed by prefix-sum index ranges.
type PronounceableEnumerator struct {
	patterns []pronounceablePattern
	sizes []uint64
	total uint64

	patternIdx int
	withinIdx uint64
}

// NewPronounceableEnumerator builds the fixed seven-bucket enumerator.
func NewPronounceableEnumerator() *PronounceableEnumerator {
	patterns := []pronounceablePattern{
		patternCVCV, patternCVCC, patternCCVC, patternCVVC, patternVCVC,
		patternPrefixBased, patternSuffixBased,
	}
	sizes := make([]uint64, len(patterns))
	var total uint64
	for i, p := range patterns {
		sizes[i] = patternSize(p)
		total += sizes[i]
	}
	return &PronounceableEnumerator{patterns: patterns, sizes: sizes, total: total}
}

func patternSize(p pronounceablePattern) uint64 {
	c := uint64(len(pronounceableConsonants))
	v := uint64(len(pronounceableVowels))
	switch p {
	case patternCVCV:
		return c * v * c * v
	case patternCVCC:
		return c * v * c * c
	case patternCCVC:
		return c * c * v * c
	case patternCVVC:
		return c * v * v * c
	case patternVCVC:
		return v * c * v * c
	case patternPrefixBased:
		return uint64(len(valuablePrefixes)) * 26 * 26
	case patternSuffixBased:
		return 26 * 26 * uint64(len(valuableSuffixes))
	default:
		return 0
	}
}

func (g *PronounceableEnumerator) Total() uint64 { return g.total }

func (g *PronounceableEnumerator) CurrentIndex() uint64 {
	var idx uint64
	for i := 0; i < g.patternIdx && i < len(g.sizes); i++ {
		idx += g.sizes[i]
	}
	return idx + g.withinIdx
}

func (g *PronounceableEnumerator) SetIndex(i uint64) {
	i = clampIndex(i, g.total)
	remaining := i
	for idx, size := range g.sizes {
		if remaining < size {
			g.patternIdx = idx
			g.withinIdx = remaining
			return
		}
		remaining -= size
	}
	g.patternIdx = len(g.patterns)
	g.withinIdx = 0
}

func (g *PronounceableEnumerator) IsExhausted() bool {
	return g.patternIdx >= len(g.patterns)
}

func (g *PronounceableEnumerator) NextBatch(n int) []string {
	batch := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for len(batch) < n && !g.IsExhausted() {
		size := g.sizes[g.patternIdx]
		if g.withinIdx >= size {
			g.patternIdx++
			g.withinIdx = 0
			continue
		}
		name, ok := generateForPattern(g.patterns[g.patternIdx], g.withinIdx)
		g.withinIdx++
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		batch = append(batch, name)
	}
	return batch
}

func generateForPattern(p pronounceablePattern, index uint64) (string, bool) {
	c := uint64(len(pronounceableConsonants))
	v := uint64(len(pronounceableVowels))

	switch p {
	case patternCVCV:
		i0, rem := index/(v*c*v), index%(v*c*v)
		i1, rem := rem/(c*v), rem%(c*v)
		i2, i3 := rem/v, rem%v
		return string([]byte{pronounceableConsonants[i0], pronounceableVowels[i1], pronounceableConsonants[i2], pronounceableVowels[i3]}), true
	case patternCVCC:
		i0, rem := index/(v*c*c), index%(v*c*c)
		i1, rem := rem/(c*c), rem%(c*c)
		i2, i3 := rem/c, rem%c
		return string([]byte{pronounceableConsonants[i0], pronounceableVowels[i1], pronounceableConsonants[i2], pronounceableConsonants[i3]}), true
	case patternCCVC:
		i0, rem := index/(c*v*c), index%(c*v*c)
		i1, rem := rem/(v*c), rem%(v*c)
		i2, i3 := rem/c, rem%c
		return string([]byte{pronounceableConsonants[i0], pronounceableConsonants[i1], pronounceableVowels[i2], pronounceableConsonants[i3]}), true
	case patternCVVC:
		i0, rem := index/(v*v*c), index%(v*v*c)
		i1, rem := rem/(v*c), rem%(v*c)
		i2, i3 := rem/c, rem%c
		return string([]byte{pronounceableConsonants[i0], pronounceableVowels[i1], pronounceableVowels[i2], pronounceableConsonants[i3]}), true
	case patternVCVC:
		i0, rem := index/(c*v*c), index%(c*v*c)
		i1, rem := rem/(v*c), rem%(v*c)
		i2, i3 := rem/c, rem%c
		return string([]byte{pronounceableVowels[i0], pronounceableConsonants[i1], pronounceableVowels[i2], pronounceableConsonants[i3]}), true
	case patternPrefixBased:
		prefixCount := uint64(len(valuablePrefixes))
		prefixIdx, rem := index/(26*26), index%(26*26)
		c1, c2 := rem/26, rem%26
		if prefixIdx >= prefixCount {
			return "", false
		}
		return valuablePrefixes[prefixIdx] + string([]byte{'a' + byte(c1), 'a' + byte(c2)}), true
	case patternSuffixBased:
		suffixCount := uint64(len(valuableSuffixes))
		charIdx, suffixIdx := index/suffixCount, index%suffixCount
		c1, c2 := charIdx/26, charIdx%26
		if c1 >= 26 {
			return "", false
		}
		return string([]byte{'a' + byte(c1), 'a' + byte(c2)}) + valuableSuffixes[suffixIdx], true
	default:
		return "", false
	}
}

var _ Enumerator = (*PronounceableEnumerator)(nil)
