package enum

// FullEnumerator is the "Full N-letter" variant: a base-|Σ| positional
// encoding over the given Charset and length. DomainAt(i) is the i-th
// word in lexicographic order; Total = |Σ|^length.
type FullEnumerator struct {
	charset Charset
	length  int
	current uint64
	total   uint64
}

// NewFullEnumerator builds a Full enumerator for names of the given length
// over the given charset.
func NewFullEnumerator(length int, charset Charset) *FullEnumerator {
	base := uint64(len(charset.chars()))
	total := pow(base, uint64(length))
	return &FullEnumerator{charset: charset, length: length, total: total}
}

func pow(base, exp uint64) uint64 {
	result := uint64(1)
	for i := uint64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func (g *FullEnumerator) Total() uint64        { return g.total }
func (g *FullEnumerator) CurrentIndex() uint64 { return g.current }

func (g *FullEnumerator) SetIndex(i uint64) {
	g.current = clampIndex(i, g.total)
}

func (g *FullEnumerator) IsExhausted() bool {
	return g.current >= g.total
}

// DomainAt decodes index into the name it represents, or ("", false) if
// index is out of range.
func (g *FullEnumerator) DomainAt(index uint64) (string, bool) {
	if index >= g.total {
		return "", false
	}
	chars := g.charset.chars()
	base := uint64(len(chars))
	out := make([]byte, g.length)
	n := index
	for i := g.length - 1; i >= 0; i-- {
		out[i] = chars[n%base]
		n /= base
	}
	return string(out), true
}

func (g *FullEnumerator) NextBatch(n int) []string {
	batch := make([]string, 0, n)
	for len(batch) < n {
		name, ok := g.DomainAt(g.current)
		if !ok {
			break
		}
		batch = append(batch, name)
		g.current++
	}
	return batch
}

// ProgressPercent mirrors the reference generator's convenience accessor.
func (g *FullEnumerator) ProgressPercent() float64 {
	if g.total == 0 {
		return 100.0
	}
	return float64(g.current) / float64(g.total) * 100.0
}

// Remaining is the count of names not yet produced.
func (g *FullEnumerator) Remaining() uint64 {
	if g.current >= g.total {
		return 0
	}
	return g.total - g.current
}

var _ Enumerator = (*FullEnumerator)(nil)
