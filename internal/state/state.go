// Package state implements durable scan-state persistence for resumable
// sweeps: a JSON document tracking cursor position, found domains, and
// running counters, written atomically so a crash or kill mid-save can
// never corrupt the file a resume reads back.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rdapsnipe/rdapsnipe/internal/errtypes"
)

// SnipedDomain records one domain the sweep classified as available,
// expiring soon, or expired.
type SnipedDomain struct {
	Domain string `json:"domain"`
	TLD string `json:"tld"`
	FullDomain string `json:"full_domain"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	DaysUntilExpiry *int64 `json:"days_until_expiry,omitempty"`
	Registrar string `json:"registrar,omitempty"`
	FoundAt time.Time `json:"found_at"`
}

// FailedDomain records one domain whose check could not be classified.
type FailedDomain struct {
	Domain string `json:"domain"`
	TLD string `json:"tld"`
	Message string `json:"message"`
	FailedAt time.Time `json:"failed_at"`
}

// ScanState is the persistent record of a sweep, sufficient to resume it
// exactly where it left off.
type ScanState struct {
	ScanID string `json:"scan_id"`
	Length int `json:"length"`
	TLDs []string `json:"tlds"`
	CurrentIndex uint64 `json:"current_index"`
	TotalCombinations uint64 `json:"total_combinations"`
	Available []SnipedDomain `json:"available"`
	ExpiringSoon []SnipedDomain `json:"expiring_soon"`
	Expired []SnipedDomain `json:"expired"`
	Errors []FailedDomain `json:"errors"`
	CheckedCount uint64 `json:"checked_count"`
	ErrorCount uint64 `json:"error_count"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdateTimes []time.Time `json:"update_times"`
	Completed bool `json:"completed"`
}

// New creates a fresh ScanState for a sweep over the given length/TLDs.
func New(length int, tlds []string, totalCombinations uint64) *ScanState {
	now := time.Now().UTC()
	return &ScanState{
		ScanID: fmt.Sprintf("scan_%d_%s", length, now.Format("20060102_150405")),
		Length: length,
		TLDs: tlds,
		TotalCombinations: totalCombinations,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Load reads a ScanState from path. Fields added after a state file was
// written (Expired, Errors, UpdateTimes) default to their zero value,
// keeping old state files loadable.
func Load(path string) (*ScanState, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errtypes.IO(err.Error(), path).Wrap(err)
	}
	var s ScanState
	if err := json.Unmarshal(content, &s); err != nil {
		return nil, errtypes.Parse(err.Error(), string(content))
	}
	return &s, nil
}

// Save writes the state to path atomically: it serializes to a temp file
// in the same directory, fsyncs it, then renames it over path so a
// concurrent reader or a crash mid-write never observes a partial file.
func (s *ScanState) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errtypes.IO(err.Error(), dir).Wrap(err)
	}

	content, err := json.MarshalIndent(s, "", " ")
	if err != nil {
		return errtypes.Internal(fmt.Sprintf("failed to serialize scan state: %v", err))
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errtypes.IO(err.Error(), dir).Wrap(err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errtypes.IO(err.Error(), tmpPath).Wrap(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errtypes.IO(err.Error(), tmpPath).Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errtypes.IO(err.Error(), tmpPath).Wrap(err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errtypes.IO(err.Error(), path).Wrap(err)
	}
	return nil
}

// DefaultPath mirrors the reference generator's convention for the
// default state file location for a given candidate length.
func DefaultPath(length int) string {
	return filepath.Join("output", fmt.Sprintf("snipe_%dletter.json", length))
}

// AddAvailable appends a domain to the available bucket and bumps
// UpdatedAt.
func (s *ScanState) AddAvailable(d SnipedDomain) {
	s.Available = append(s.Available, d)
	s.touch()
}

// AddExpiring appends a domain to the expiring-soon bucket and bumps
// UpdatedAt.
func (s *ScanState) AddExpiring(d SnipedDomain) {
	s.ExpiringSoon = append(s.ExpiringSoon, d)
	s.touch()
}

// AddExpired appends a domain to the expired bucket and bumps UpdatedAt.
func (s *ScanState) AddExpired(d SnipedDomain) {
	s.Expired = append(s.Expired, d)
	s.touch()
}

// AddError appends a failed domain check and bumps UpdatedAt.
func (s *ScanState) AddError(d FailedDomain) {
	s.Errors = append(s.Errors, d)
	s.touch()
}

// UpdateProgress records the new cursor position and running counters.
func (s *ScanState) UpdateProgress(index, checked, errorCount uint64) {
	s.CurrentIndex = index
	s.CheckedCount = checked
	s.ErrorCount = errorCount
	s.touch()
}

// MarkCompleted flags the sweep as finished.
func (s *ScanState) MarkCompleted() {
	s.Completed = true
	s.touch()
}

// touch bumps UpdatedAt only. UpdateTimes is reserved for the recheck
// engine's own append-once-per-pass history and is never touched here.
func (s *ScanState) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// ProgressPercent is CurrentIndex/TotalCombinations as a percentage.
func (s *ScanState) ProgressPercent() float64 {
	if s.TotalCombinations == 0 {
		return 100.0
	}
	return float64(s.CurrentIndex) / float64(s.TotalCombinations) * 100.0
}

// Elapsed is the time since the sweep started.
func (s *ScanState) Elapsed() time.Duration {
	return time.Since(s.StartedAt)
}

// EstimateRemaining projects the time left based on the observed rate,
// or nil if no progress has been made yet.
func (s *ScanState) EstimateRemaining() *time.Duration {
	if s.CurrentIndex == 0 {
		return nil
	}
	elapsed := s.Elapsed()
	elapsedSeconds := elapsed.Seconds()
	if elapsedSeconds < 1 {
		elapsedSeconds = 1
	}
	rate := float64(s.CurrentIndex) / elapsedSeconds

	var remaining uint64
	if s.TotalCombinations > s.CurrentIndex {
		remaining = s.TotalCombinations - s.CurrentIndex
	}
	if rate <= 0 {
		return nil
	}
	seconds := float64(remaining) / rate
	d := time.Duration(seconds * float64(time.Second))
	return &d
}

// SortExpiringSoonByExpiration orders the expiring-soon bucket by
// expiration date ascending; entries with no known expiration sort last,
// and fqdn is the tiebreaker.
func (s *ScanState) SortExpiringSoonByExpiration() {
	sort.SliceStable(s.ExpiringSoon, func(i, j int) bool {
			a, b := s.ExpiringSoon[i], s.ExpiringSoon[j]
			if a.ExpirationDate == nil && b.ExpirationDate == nil {
				return a.FullDomain < b.FullDomain
			}
			if a.ExpirationDate == nil {
				return false
			}
			if b.ExpirationDate == nil {
				return true
			}
			if a.ExpirationDate.Equal(*b.ExpirationDate) {
				return a.FullDomain < b.FullDomain
			}
			return a.ExpirationDate.Before(*b.ExpirationDate)
		})
}
