// Package metrics holds the lock-free counters recorded by the checker;
// the snipe and recheck engines do not record into it. A Metrics value is always
// constructed explicitly and passed in by the caller — never reached
// through a package-level singleton — so independent engines in the same
// test binary never share counters.
package metrics

import "sync/atomic"

// Metrics is safe for concurrent use. Every field is a 64-bit atomic
// counter updated with relaxed add/load semantics: readers see a
// monotonically non-decreasing value per counter but may observe
// cross-counter skew, matching the relaxed concurrency model the checker
// and snipe engine run under.
type Metrics struct {
	domainsChecked atomic.Int64
	errorsEncountered atomic.Int64
	totalCheckTimeNs atomic.Int64
	apiCallsMade atomic.Int64
}

// New returns a fresh, zeroed Metrics handle.
func New() *Metrics {
	return &Metrics{}
}

// RecordCheck increments the completed-check counter and adds the elapsed
// duration (nanoseconds) to the running total.
func (m *Metrics) RecordCheck(elapsedNs int64) {
	m.domainsChecked.Add(1)
	m.totalCheckTimeNs.Add(elapsedNs)
}

// RecordError increments the terminal-error counter.
func (m *Metrics) RecordError() {
	m.errorsEncountered.Add(1)
}

// RecordAPICall increments the outbound-request counter (RDAP or WHOIS).
func (m *Metrics) RecordAPICall() {
	m.apiCallsMade.Add(1)
}

// Snapshot is a point-in-time, per-counter-consistent read.
type Snapshot struct {
	DomainsChecked int64
	ErrorsEncountered int64
	TotalCheckTimeNs int64
	APICallsMade int64
}

// Snapshot reads all counters. Each individual read is atomic; the set of
// four reads is not a single atomic transaction.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		DomainsChecked: m.domainsChecked.Load(),
		ErrorsEncountered: m.errorsEncountered.Load(),
		TotalCheckTimeNs: m.totalCheckTimeNs.Load(),
		APICallsMade: m.apiCallsMade.Load(),
	}
}

// AvgCheckTimeMs returns the mean check latency in milliseconds, or 0 when
// no checks have completed yet.
func (s Snapshot) AvgCheckTimeMs() float64 {
	if s.DomainsChecked == 0 {
		return 0
	}
	return float64(s.TotalCheckTimeNs) / float64(s.DomainsChecked) / 1e6
}
