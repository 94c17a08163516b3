// Package recheck implements the recheck engine: it re-probes every
// domain a prior sweep classified as available, expiring soon, or
// expired, and applies the transition table that keeps a state file
// honest as registrations change over time.
package recheck

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"

	"github.com/rdapsnipe/rdapsnipe/internal/rdap"
	"github.com/rdapsnipe/rdapsnipe/internal/state"
)

// Prober is satisfied by *rdap.Client.
type Prober interface {
	Probe(ctx context.Context, fqdn string) rdap.Outcome
}

// Report tallies the transitions a recheck pass applied.
type Report struct {
	CheckedExpiring int
	CheckedAvailable int
	CheckedExpired int

	ExpiringToAvailable int
	ExpiringStillSoon int
	ExpiringToExpired int
	ExpiringNoLonger int
	ExpiringErrorsKept int

	AvailableStillAvailable int
	AvailableToExpiring int
	AvailableNoLongerFree int
	AvailableErrorsKept int

	ExpiredToAvailable int
	ExpiredToExpiring int
	ExpiredStillExpired int
	ExpiredRenewed int
	ExpiredErrorsKept int

	Errors *multierror.Error
}

type entry struct {
	domain state.SnipedDomain
	out rdap.Outcome
	err error
}

// Recheck re-probes every domain across the three source buckets,
// mutates state in place according to the transition table, sorts
// expiring_soon by expiration, and saves to statePath.
func Recheck(ctx context.Context, st *state.ScanState, prober Prober, statePath string, thresholdDays int, concurrency int64) (*Report, error) {
	if concurrency < 1 {
		concurrency = 10
	}

	srcExpiring := st.ExpiringSoon
	srcAvailable := st.Available
	srcExpired := st.Expired

	st.ExpiringSoon = nil
	st.Available = nil
	st.Expired = nil

	report := &Report{}
	gate := semaphore.NewWeighted(concurrency)

	expiringResults := probeAll(ctx, gate, prober, srcExpiring)
	availableResults := probeAll(ctx, gate, prober, srcAvailable)
	expiredResults := probeAll(ctx, gate, prober, srcExpired)

	report.CheckedExpiring = len(expiringResults)
	report.CheckedAvailable = len(availableResults)
	report.CheckedExpired = len(expiredResults)

	for _, e := range expiringResults {
		applyFromExpiring(st, report, e, thresholdDays)
	}
	for _, e := range availableResults {
		applyFromAvailable(st, report, e, thresholdDays)
	}
	for _, e := range expiredResults {
		applyFromExpired(st, report, e, thresholdDays)
	}

	st.SortExpiringSoonByExpiration()
	now := time.Now().UTC()
	st.UpdatedAt = now
	st.UpdateTimes = append(st.UpdateTimes, now)

	if err := st.Save(statePath); err != nil {
		report.Errors = multierror.Append(report.Errors, err)
	}

	return report, report.Errors.ErrorOrNil()
}

func probeAll(ctx context.Context, gate *semaphore.Weighted, prober Prober, domains []state.SnipedDomain) []entry {
	results := make([]entry, len(domains))
	var wg sync.WaitGroup
	for i, d := range domains {
		wg.Add(1)
		go func(i int, d state.SnipedDomain) {
			defer wg.Done()
			if err := gate.Acquire(ctx, 1); err != nil {
				results[i] = entry{domain: d, err: err}
				return
			}
			defer gate.Release(1)
			out := prober.Probe(ctx, d.FullDomain)
			results[i] = entry{domain: d, out: out}
		}(i, d)
	}
	wg.Wait()
	return results
}

func updateDomain(d state.SnipedDomain, out rdap.Outcome) state.SnipedDomain {
	d.ExpirationDate = out.ExpirationDate
	d.DaysUntilExpiry = out.DaysUntilExpiry
	if out.Registrar != "" {
		d.Registrar = out.Registrar
	}
	return d
}

func applyFromExpiring(st *state.ScanState, report *Report, e entry, thresholdDays int) {
	if e.out.Status == rdap.StatusError || e.err != nil {
		report.Errors = multierror.Append(report.Errors, domainErr(e))
		st.ExpiringSoon = append(st.ExpiringSoon, e.domain)
		report.ExpiringErrorsKept++
		return
	}

	switch e.out.Status {
	case rdap.StatusAvailable:
		st.Available = append(st.Available, updateDomain(e.domain, e.out))
		report.ExpiringToAvailable++
	case rdap.StatusExpired:
		st.Expired = append(st.Expired, updateDomain(e.domain, e.out))
		report.ExpiringToExpired++
	case rdap.StatusExpiringSoon:
		st.ExpiringSoon = append(st.ExpiringSoon, updateDomain(e.domain, e.out))
		report.ExpiringStillSoon++
	default:
		if e.out.DaysUntilExpiry != nil && *e.out.DaysUntilExpiry > 0 && int(*e.out.DaysUntilExpiry) <= thresholdDays {
			st.ExpiringSoon = append(st.ExpiringSoon, updateDomain(e.domain, e.out))
			report.ExpiringStillSoon++
			return
		}
		report.ExpiringNoLonger++
	}
}

func applyFromAvailable(st *state.ScanState, report *Report, e entry, thresholdDays int) {
	if e.out.Status == rdap.StatusError || e.err != nil {
		report.Errors = multierror.Append(report.Errors, domainErr(e))
		st.Available = append(st.Available, e.domain)
		report.AvailableErrorsKept++
		return
	}

	switch e.out.Status {
	case rdap.StatusAvailable:
		st.Available = append(st.Available, updateDomain(e.domain, e.out))
		report.AvailableStillAvailable++
	case rdap.StatusExpiringSoon:
		st.ExpiringSoon = append(st.ExpiringSoon, updateDomain(e.domain, e.out))
		report.AvailableToExpiring++
	default:
		if e.out.DaysUntilExpiry != nil && *e.out.DaysUntilExpiry > 0 && int(*e.out.DaysUntilExpiry) <= thresholdDays {
			st.ExpiringSoon = append(st.ExpiringSoon, updateDomain(e.domain, e.out))
			report.AvailableToExpiring++
			return
		}
		report.AvailableNoLongerFree++
	}
}

func applyFromExpired(st *state.ScanState, report *Report, e entry, thresholdDays int) {
	if e.out.Status == rdap.StatusError || e.err != nil {
		report.Errors = multierror.Append(report.Errors, domainErr(e))
		st.Expired = append(st.Expired, e.domain)
		report.ExpiredErrorsKept++
		return
	}

	switch e.out.Status {
	case rdap.StatusAvailable:
		st.Available = append(st.Available, updateDomain(e.domain, e.out))
		report.ExpiredToAvailable++
	case rdap.StatusExpired:
		st.Expired = append(st.Expired, updateDomain(e.domain, e.out))
		report.ExpiredStillExpired++
	case rdap.StatusExpiringSoon:
		st.ExpiringSoon = append(st.ExpiringSoon, updateDomain(e.domain, e.out))
		report.ExpiredToExpiring++
	default:
		if e.out.DaysUntilExpiry != nil && *e.out.DaysUntilExpiry > 0 && int(*e.out.DaysUntilExpiry) <= thresholdDays {
			st.ExpiringSoon = append(st.ExpiringSoon, updateDomain(e.domain, e.out))
			report.ExpiredToExpiring++
			return
		}
		report.ExpiredRenewed++
	}
}

func domainErr(e entry) error {
	if e.err != nil {
		return e.err
	}
	msg := e.out.ErrorMessage
	if msg == "" {
		msg = "recheck probe failed"
	}
	return &recheckError{domain: e.domain.FullDomain, message: msg}
}

type recheckError struct {
	domain string
	message string
}

func (e *recheckError) Error() string {
	return e.domain + ": " + e.message
}
