package enum

import "testing"

func TestPronounceableEnumeratorTotal(t *testing.T) {
	g := NewPronounceableEnumerator()
	want := uint64(20*5*20*5 + 20*5*20*20 + 20*20*5*20 + 20*5*5*20 + 5*20*5*20 + 20*26*26 + 26*26*20)
	if g.Total() != want {
		t.Fatalf("Total() = %d, want %d", g.Total(), want)
	}
}

func TestPronounceableEnumeratorProducesFourLetterNames(t *testing.T) {
	g := NewPronounceableEnumerator()
	batch := g.NextBatch(500)
	for _, name := range batch {
		if len(name) != 4 {
			t.Errorf("name %q has length %d, want 4", name, len(name))
		}
		for _, ch := range name {
			if ch < 'a' || ch > 'z' {
				t.Errorf("name %q contains non-lowercase rune %q", name, ch)
			}
		}
	}
}

func TestPronounceableEnumeratorNoDuplicatesWithinBatch(t *testing.T) {
	g := NewPronounceableEnumerator()
	batch := g.NextBatch(1000)
	seen := make(map[string]struct{}, len(batch))
	for _, name := range batch {
		if _, dup := seen[name]; dup {
			t.Errorf("duplicate name %q in single batch", name)
		}
		seen[name] = struct{}{}
	}
}

func TestPronounceableEnumeratorSetIndexRoutesToCorrectBucket(t *testing.T) {
	g := NewPronounceableEnumerator()
	firstBucketSize := g.sizes[0]

	g.SetIndex(firstBucketSize)
	if g.patternIdx != 1 || g.withinIdx != 0 {
		t.Fatalf("SetIndex(bucket boundary) landed at patternIdx=%d withinIdx=%d, want 1,0", g.patternIdx, g.withinIdx)
	}
}

func TestPronounceableEnumeratorExhaustsAtTotal(t *testing.T) {
	g := NewPronounceableEnumerator()
	g.SetIndex(g.Total())
	if !g.IsExhausted() {
		t.Fatalf("expected exhausted at total")
	}
	if batch := g.NextBatch(10); len(batch) != 0 {
		t.Fatalf("NextBatch after exhaustion returned %d names, want 0", len(batch))
	}
}

func TestPronounceableEnumeratorResumeMatchesFreshCursor(t *testing.T) {
	g1 := NewPronounceableEnumerator()
	g1.NextBatch(50)
	idx := g1.CurrentIndex()

	g2 := NewPronounceableEnumerator()
	g2.SetIndex(idx)
	if g2.CurrentIndex() != idx {
		t.Fatalf("CurrentIndex() after SetIndex = %d, want %d", g2.CurrentIndex(), idx)
	}
}

func TestPrefixAndSuffixPatternsUseValuableTables(t *testing.T) {
	name, ok := generateForPattern(patternPrefixBased, 0)
	if !ok {
		t.Fatal("generateForPattern(prefix, 0) not ok")
	}
	if name[:2] != valuablePrefixes[0] {
		t.Errorf("prefix pattern index 0 = %q, want prefix %q", name, valuablePrefixes[0])
	}

	suffixCount := uint64(len(valuableSuffixes))
	name, ok = generateForPattern(patternSuffixBased, 0)
	if !ok {
		t.Fatal("generateForPattern(suffix, 0) not ok")
	}
	if name[2:] != valuableSuffixes[0] {
		t.Errorf("suffix pattern index 0 = %q, want suffix %q", name, valuableSuffixes[0])
	}
	_ = suffixCount
}
