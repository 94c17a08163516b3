// Package snipe implements the snipe engine: a
// resumable, bounded-concurrency sweep across a name-space enumerator
// crossed with a TLD list, classifying every candidate through the RDAP
// checker and persisting progress as it goes.
package snipe

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"golang.org/x/sync/semaphore"

	"github.com/rdapsnipe/rdapsnipe/internal/enum"
	"github.com/rdapsnipe/rdapsnipe/internal/errtypes"
	"github.com/rdapsnipe/rdapsnipe/internal/rdap"
	"github.com/rdapsnipe/rdapsnipe/internal/state"
)

// Mode selects which name-space enumerator drives the sweep.
type Mode int

const (
	ModeFull Mode = iota
	ModePronounceable
	ModeWords
	ModeSix
)

// Config controls one sweep run.
type Config struct {
	Mode Mode
	Length int
	Charset enum.Charset
	TLDs []string
	Concurrency int64
	BatchSize int
	SaveInterval uint64
	RateLimitMs int
	ExpiringDays int
	StatePath string
}

func (c Config) withDefaults() Config {
	if c.Length == 0 {
		c.Length = 4
	}
	if c.Concurrency < 1 {
		c.Concurrency = 10
	}
	if c.BatchSize < 1 {
		c.BatchSize = 100
	}
	if c.SaveInterval == 0 {
		c.SaveInterval = 1000
	}
	if c.RateLimitMs == 0 {
		c.RateLimitMs = 200
	}
	if c.ExpiringDays == 0 {
		c.ExpiringDays = 30
	}
	if c.StatePath == "" {
		c.StatePath = state.DefaultPath(c.Length)
	}
	return c
}

// Prober is satisfied by *rdap.Client. The snipe engine is RDAP-only —
// its value comes from deterministic, machine-parseable responses, unlike
// the brittle WHOIS fallback used on the interactive path.
type Prober interface {
	Probe(ctx context.Context, fqdn string) rdap.Outcome
}

// Progress is reported to the caller-supplied callback after each batch.
type Progress struct {
	CurrentIndex uint64
	Total uint64
	Checked uint64
	Errors uint64
	Available int
	ExpiringSoon int
	Expired int
	PercentDone float64
	ThroughputPerS float64
	ETA *time.Duration
}

// Engine drives one sweep to completion or cancellation.
type Engine struct {
	cfg Config
	enumer enum.Enumerator
	prober Prober
	st *state.ScanState
	limiter ratelimit.Limiter
	lastSave uint64
	startTime time.Time
}

func newEnumerator(cfg Config) enum.Enumerator {
	switch cfg.Mode {
	case ModePronounceable:
		return enum.NewPronounceableEnumerator()
	case ModeWords:
		return enum.NewWordEnumerator()
	case ModeSix:
		return enum.NewSixLetterEnumerator()
	default:
		return enum.NewFullEnumerator(cfg.Length, cfg.Charset)
	}
}

// NewEngine creates a fresh sweep state and enumerator.
func NewEngine(cfg Config, prober Prober) (*Engine, error) {
	cfg = cfg.withDefaults()
	if len(cfg.TLDs) == 0 {
		return nil, errtypes.Config("at least one tld is required")
	}
	enumer := newEnumerator(cfg)
	st := state.New(cfg.Length, cfg.TLDs, enumer.Total())
	return &Engine{
		cfg: cfg,
		enumer: enumer,
		prober: prober,
		st: st,
		limiter: ratelimit.New(rateFromMs(cfg.RateLimitMs)),
		startTime: time.Now(),
	}, nil
}

// ResumeEngine loads a prior state file and positions the enumerator at
// its saved cursor.
func ResumeEngine(cfg Config, prober Prober) (*Engine, error) {
	cfg = cfg.withDefaults()
	st, err := state.Load(cfg.StatePath)
	if err != nil {
		return nil, err
	}
	enumer := newEnumerator(cfg)
	enumer.SetIndex(st.CurrentIndex)
	return &Engine{
		cfg: cfg,
		enumer: enumer,
		prober: prober,
		st: st,
		limiter: ratelimit.New(rateFromMs(cfg.RateLimitMs)),
		lastSave: st.CheckedCount,
		startTime: time.Now(),
	}, nil
}

func rateFromMs(ms int) int {
	if ms <= 0 {
		return 1
	}
	perSecond := 1000 / ms
	if perSecond < 1 {
		perSecond = 1
	}
	return perSecond
}

// State returns the engine's current (mutable) scan state.
func (e *Engine) State() *state.ScanState { return e.st }

type checkTask struct {
	name string
	tld string
}

type checkResult struct {
	task checkTask
	out rdap.Outcome
}

// Run drives the sweep to completion or until ctx is cancelled, invoking
// onProgress after every batch. On return, the final state has already
// been saved.
func (e *Engine) Run(ctx context.Context, onProgress func(Progress)) (*state.ScanState, error) {
	for {
		if ctx.Err() != nil {
			if err := e.save(); err != nil {
				return e.st, err
			}
			return e.st, nil
		}
		if e.enumer.IsExhausted() {
			e.st.MarkCompleted()
			if err := e.st.Save(e.cfg.StatePath); err != nil {
				return e.st, err
			}
			return e.st, nil
		}

		e.limiter.Take()

		names := e.enumer.NextBatch(e.cfg.BatchSize)
		if len(names) == 0 {
			e.st.MarkCompleted()
			if err := e.save(); err != nil {
				return e.st, err
			}
			return e.st, nil
		}

		tasks := make([]checkTask, 0, len(names)*len(e.cfg.TLDs))
		for _, name := range names {
			for _, tld := range e.cfg.TLDs {
				tasks = append(tasks, checkTask{name: name, tld: tld})
			}
		}

		results := e.runBatch(ctx, tasks)
		e.applyResults(results)

		e.st.UpdateProgress(e.enumer.CurrentIndex(), e.st.CheckedCount, e.st.ErrorCount)

		if onProgress != nil {
			onProgress(e.progress())
		}

		if e.st.CheckedCount-e.lastSave >= e.cfg.SaveInterval {
			if err := e.save(); err != nil {
				return e.st, err
			}
		}
	}
}

func (e *Engine) runBatch(ctx context.Context, tasks []checkTask) []checkResult {
	gate := semaphore.NewWeighted(e.cfg.Concurrency)
	resultsCh := make(chan checkResult, len(tasks))
	var wg sync.WaitGroup

	for _, task := range tasks {
		if err := gate.Acquire(ctx, 1); err != nil {
			resultsCh <- checkResult{task: task, out: rdap.Outcome{
				Status: rdap.StatusError,
				FQDN: task.name + "." + task.tld,
				ErrorMessage: err.Error(),
				ErrorRetriable: true,
			}}
			continue
		}
		wg.Add(1)
		go func(task checkTask) {
			defer wg.Done()
			defer gate.Release(1)
			fqdn := task.name + "." + task.tld
			out := e.prober.Probe(ctx, fqdn)
			resultsCh <- checkResult{task: task, out: out}
		}(task)
	}

	wg.Wait()
	close(resultsCh)

	results := make([]checkResult, 0, len(tasks))
	for r := range resultsCh {
		results = append(results, r)
	}
	return results
}

func (e *Engine) applyResults(results []checkResult) {
	for _, r := range results {
		e.st.CheckedCount++
		fqdn := r.task.name + "." + r.task.tld
		switch r.out.Status {
		case rdap.StatusAvailable:
			e.st.AddAvailable(toSnipedDomain(r.task, fqdn, r.out))
		case rdap.StatusExpiringSoon:
			e.st.AddExpiring(toSnipedDomain(r.task, fqdn, r.out))
		case rdap.StatusExpired:
			e.st.AddExpired(toSnipedDomain(r.task, fqdn, r.out))
		case rdap.StatusTaken:
			// live and taken: counted but not stored
		default:
			e.st.ErrorCount++
			e.st.AddError(state.FailedDomain{
					Domain: r.task.name,
					TLD: r.task.tld,
					Message: r.out.ErrorMessage,
					FailedAt: time.Now().UTC(),
				})
		}
	}
}

func toSnipedDomain(task checkTask, fqdn string, out rdap.Outcome) state.SnipedDomain {
	return state.SnipedDomain{
		Domain: task.name,
		TLD: task.tld,
		FullDomain: fqdn,
		ExpirationDate: out.ExpirationDate,
		DaysUntilExpiry: out.DaysUntilExpiry,
		Registrar: out.Registrar,
		FoundAt: time.Now().UTC(),
	}
}

func (e *Engine) save() error {
	if err := e.st.Save(e.cfg.StatePath); err != nil {
		return err
	}
	e.lastSave = e.st.CheckedCount
	return nil
}

func (e *Engine) progress() Progress {
	elapsed := time.Since(e.startTime).Seconds()
	var throughput float64
	if elapsed > 0 {
		throughput = float64(e.st.CheckedCount) / elapsed
	}
	return Progress{
		CurrentIndex: e.enumer.CurrentIndex(),
		Total: e.enumer.Total(),
		Checked: e.st.CheckedCount,
		Errors: e.st.ErrorCount,
		Available: len(e.st.Available),
		ExpiringSoon: len(e.st.ExpiringSoon),
		Expired: len(e.st.Expired),
		PercentDone: e.st.ProgressPercent(),
		ThroughputPerS: throughput,
		ETA: e.st.EstimateRemaining(),
	}
}

var _ Prober = (*rdap.Client)(nil)
