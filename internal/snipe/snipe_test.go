package snipe

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rdapsnipe/rdapsnipe/internal/rdap"
)

type fakeProber struct {
	byFQDN map[string]rdap.Outcome
	calls  int
}

func (f *fakeProber) Probe(ctx context.Context, fqdn string) rdap.Outcome {
	f.calls++
	if out, ok := f.byFQDN[fqdn]; ok {
		return out
	}
	return rdap.Outcome{Status: rdap.StatusTaken, FQDN: fqdn}
}

func TestRunCompletesSmallSweepAndClassifiesBuckets(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")

	prober := &fakeProber{byFQDN: map[string]rdap.Outcome{
		"aa.com": {Status: rdap.StatusAvailable, FQDN: "aa.com"},
	}}

	cfg := Config{
		Mode:         ModeFull,
		Length:       2,
		TLDs:         []string{"com"},
		Concurrency:  4,
		BatchSize:    50,
		SaveInterval: 10,
		RateLimitMs:  1,
		StatePath:    statePath,
	}

	engine, err := NewEngine(cfg, prober)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := engine.Run(ctx, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !st.Completed {
		t.Fatal("expected sweep to complete")
	}
	if st.CheckedCount != 26*26 {
		t.Errorf("CheckedCount = %d, want %d", st.CheckedCount, 26*26)
	}
	if len(st.Available) != 1 || st.Available[0].FullDomain != "aa.com" {
		t.Errorf("Available = %+v, want one entry aa.com", st.Available)
	}
}

func TestRunRespectsContextCancellation(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")

	prober := &fakeProber{byFQDN: map[string]rdap.Outcome{}}
	cfg := Config{
		Mode:         ModeFull,
		Length:       3,
		TLDs:         []string{"com"},
		Concurrency:  4,
		BatchSize:    10,
		SaveInterval: 1,
		RateLimitMs:  1,
		StatePath:    statePath,
	}

	engine, err := NewEngine(cfg, prober)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, err := engine.Run(ctx, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.Completed {
		t.Fatal("expected sweep not to report completed when cancelled immediately")
	}
}

func TestResumeEngineStartsFromSavedCursor(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")

	prober := &fakeProber{byFQDN: map[string]rdap.Outcome{}}
	cfg := Config{
		Mode:         ModeFull,
		Length:       2,
		TLDs:         []string{"com"},
		Concurrency:  4,
		BatchSize:    5,
		SaveInterval: 1,
		RateLimitMs:  1,
		StatePath:    statePath,
	}

	engine, err := NewEngine(cfg, prober)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	engine.enumer.SetIndex(20)
	engine.st.UpdateProgress(20, 20, 0)
	if err := engine.st.Save(statePath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	resumed, err := ResumeEngine(cfg, prober)
	if err != nil {
		t.Fatalf("ResumeEngine: %v", err)
	}
	if resumed.enumer.CurrentIndex() != 20 {
		t.Errorf("resumed enumerator CurrentIndex = %d, want 20", resumed.enumer.CurrentIndex())
	}
	if resumed.State().CurrentIndex != 20 {
		t.Errorf("resumed state CurrentIndex = %d, want 20", resumed.State().CurrentIndex)
	}
}

func TestNewEngineRequiresAtLeastOneTLD(t *testing.T) {
	_, err := NewEngine(Config{Length: 2}, &fakeProber{})
	if err == nil {
		t.Fatal("expected error when no TLDs configured")
	}
}

func TestRunPropagatesSaveErrorOnContextCancellation(t *testing.T) {
	prober := &fakeProber{byFQDN: map[string]rdap.Outcome{}}
	cfg := Config{
		Mode:         ModeFull,
		Length:       3,
		TLDs:         []string{"com"},
		Concurrency:  4,
		BatchSize:    10,
		SaveInterval: 1,
		RateLimitMs:  1,
		// A directory as the state path makes every Save call fail: the
		// temp file is created in the parent directory, but renaming it
		// over a path that is itself a directory fails.
		StatePath: t.TempDir(),
	}

	engine, err := NewEngine(cfg, prober)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = engine.Run(ctx, nil)
	if err == nil {
		t.Fatal("expected Run to propagate the save error on cancellation")
	}
}

func TestRunBatchBoundsConcurrencyToConfiguredGate(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")

	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0
	prober := &trackingProber{onProbe: func() {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		mu.Lock()
		inFlight--
		mu.Unlock()
	}}

	cfg := Config{
		Mode:         ModeFull,
		Length:       2,
		TLDs:         []string{"com"},
		Concurrency:  3,
		BatchSize:    50,
		SaveInterval: 1000,
		RateLimitMs:  1,
		StatePath:    statePath,
	}
	engine, err := NewEngine(cfg, prober)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	tasks := make([]checkTask, 0, 30)
	for i := 0; i < 30; i++ {
		tasks = append(tasks, checkTask{name: "x", tld: "com"})
	}
	engine.runBatch(context.Background(), tasks)

	mu.Lock()
	defer mu.Unlock()
	if maxInFlight > 3 {
		t.Errorf("observed %d concurrent probes, want at most 3 (the configured gate)", maxInFlight)
	}
}

type trackingProber struct {
	onProbe func()
}

func (p *trackingProber) Probe(ctx context.Context, fqdn string) rdap.Outcome {
	p.onProbe()
	return rdap.Outcome{Status: rdap.StatusTaken, FQDN: fqdn}
}
