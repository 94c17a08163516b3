package enum

import "testing"

func TestSixLetterEnumeratorTotalMatchesPatternMath(t *testing.T) {
	g := NewSixLetterEnumerator()
	want := uint64(14*14*14) * uint64(4*4*4) * 2
	if g.Total() != want {
		t.Fatalf("Total() = %d, want %d", g.Total(), want)
	}
	if g.Total() <= 100_000 || g.Total() >= 500_000 {
		t.Fatalf("Total() = %d, expected to fall in (100_000, 500_000)", g.Total())
	}
}

func TestSixLetterEnumeratorFirstBatch(t *testing.T) {
	g := NewSixLetterEnumerator()
	batch := g.NextBatch(5)
	if len(batch) != 5 {
		t.Fatalf("NextBatch(5) returned %d names", len(batch))
	}
	for _, name := range batch {
		if len(name) != 6 {
			t.Errorf("name %q has length %d, want 6", name, len(name))
		}
		for _, ch := range name {
			if ch < 'a' || ch > 'z' {
				t.Errorf("name %q contains non-lowercase rune %q", name, ch)
			}
		}
	}
}

func TestSixLetterEnumeratorResume(t *testing.T) {
	g := NewSixLetterEnumerator()
	g.SetIndex(1234)
	if g.CurrentIndex() != 1234 {
		t.Fatalf("CurrentIndex() = %d, want 1234", g.CurrentIndex())
	}
	batch := g.NextBatch(1)
	if len(batch) != 1 {
		t.Fatalf("NextBatch(1) returned %d names", len(batch))
	}
}

func TestSixLetterEnumeratorSecondPatternBoundary(t *testing.T) {
	g := NewSixLetterEnumerator()
	g.SetIndex(g.patternSize)
	if g.patternIdx != 1 || g.withinIdx != 0 {
		t.Fatalf("SetIndex(patternSize) landed at patternIdx=%d withinIdx=%d, want 1,0", g.patternIdx, g.withinIdx)
	}
	batch := g.NextBatch(1)
	if len(batch) != 1 {
		t.Fatalf("expected one name from second pattern, got %d", len(batch))
	}
	if batch[0][0] != sixVowels[0] && !containsByte(sixVowels, batch[0][0]) {
		t.Errorf("first char of VCVCVC-pattern name %q is not a vowel", batch[0])
	}
}

func TestSixLetterEnumeratorExhaustsAtTotal(t *testing.T) {
	g := NewSixLetterEnumerator()
	g.SetIndex(g.Total())
	if !g.IsExhausted() {
		t.Fatal("expected exhausted at total")
	}
	if batch := g.NextBatch(10); len(batch) != 0 {
		t.Fatalf("NextBatch after exhaustion returned %d names, want 0", len(batch))
	}
}
