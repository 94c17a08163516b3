// Package session implements the interactive session controller: it
// accumulates results across multiple generate-check rounds of the
// interactive path so a caller can avoid re-suggesting names already
// known to be taken.
package session

import (
	"time"

	"github.com/rdapsnipe/rdapsnipe/internal/checker"
)

// FailedCheck records a check that could not be classified.
type FailedCheck struct {
	FQDN string
	Message string
}

// Session accumulates results across rounds of interactive generation and
// checking. It is not safe for concurrent use; callers drive rounds
// sequentially.
type Session struct {
	Available []checker.Result
	Taken []checker.Result
	Errors []FailedCheck
	RoundCount int
	TotalTime time.Duration
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// AddRoundResults appends one round's results into the accumulated
// buckets and bumps RoundCount/TotalTime. candidates is accepted for
// symmetry with the generator's batch shape even though results already
// carry their own FQDN.
func (s *Session) AddRoundResults(candidates []string, results []checker.Result, elapsed time.Duration) {
	_ = candidates
	for _, r := range results {
		switch r.Status {
		case checker.StatusAvailable:
			s.Available = append(s.Available, r)
		case checker.StatusTaken:
			s.Taken = append(s.Taken, r)
		default:
			s.Errors = append(s.Errors, FailedCheck{FQDN: r.FQDN, Message: r.ErrorMessage})
		}
	}
	s.RoundCount++
	s.TotalTime += elapsed
}

// TakenNames returns the unique bare names (not FQDNs) of domains found
// taken, suitable as an avoid-list fed back into the next generation
// round.
func (s *Session) TakenNames() map[string]struct{} {
	names := make(map[string]struct{}, len(s.Taken))
	for _, r := range s.Taken {
		names[bareName(r.FQDN)] = struct{}{}
	}
	return names
}

func bareName(fqdn string) string {
	for i := 0; i < len(fqdn); i++ {
		if fqdn[i] == '.' {
			return fqdn[:i]
		}
	}
	return fqdn
}
