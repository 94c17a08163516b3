// Package checker implements the Availability Checker: the per-domain
// oracle used by the interactive check path. The snipe and recheck engines
// do not go through it; they call the rdap client directly. It owns the
// RDAP→WHOIS fallback order, the concurrency gate, in-flight request
// de-duplication, and metrics wiring.
package checker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/rdapsnipe/rdapsnipe/internal/errtypes"
	"github.com/rdapsnipe/rdapsnipe/internal/logging"
	"github.com/rdapsnipe/rdapsnipe/internal/metrics"
	"github.com/rdapsnipe/rdapsnipe/internal/rdap"
	"github.com/rdapsnipe/rdapsnipe/internal/validate"
	"github.com/rdapsnipe/rdapsnipe/internal/whois"
)

// Method records which oracle produced a Result.
type Method int

const (
	MethodUnknown Method = iota
	MethodRDAP
	MethodWHOIS
)

func (m Method) String() string {
	switch m {
	case MethodRDAP:
		return "rdap"
	case MethodWHOIS:
		return "whois"
	default:
		return "unknown"
	}
}

// AvailabilityStatus is the coarse interactive-path status. The snipe
// engine uses rdap.Status directly instead, since it needs the
// ExpiringSoon/Expired refinement that this coarse enum intentionally
// omits (kept snipe-internal by design).
type AvailabilityStatus int

const (
	StatusAvailable AvailabilityStatus = iota
	StatusTaken
	StatusUnknown
	StatusError
)

func (s AvailabilityStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusTaken:
		return "taken"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of Check for the interactive path.
type Result struct {
	FQDN string
	Status AvailabilityStatus
	Method Method
	ErrorMessage string
	RDAP *rdap.Outcome
}

// RDAPProber and WHOISProber are satisfied by rdap.Client and
// whois.Client respectively; declaring them as interfaces here lets tests
// substitute stub probers without touching the network.
type RDAPProber interface {
	Probe(ctx context.Context, fqdn string) rdap.Outcome
}

type WHOISProber interface {
	Probe(ctx context.Context, fqdn string) rdap.Outcome
}

// Config controls which oracles are consulted and how much concurrency is
// permitted, mirroring the original CheckConfig fields.
type Config struct {
	EnableRDAP bool
	EnableWHOIS bool
	ConcurrentChecks int64
}

// Checker is the Availability Checker. It is safe for concurrent use.
type Checker struct {
	cfg Config
	rdapC RDAPProber
	whoisC WHOISProber
	gate *semaphore.Weighted
	sf singleflight.Group
	metrics *metrics.Metrics
	log *slog.Logger
}

// New builds a Checker. logger may be nil, in which case slog.Default() is
// used.
func New(cfg Config, rdapC RDAPProber, whoisC WHOISProber, m *metrics.Metrics, logger *slog.Logger) *Checker {
	if cfg.ConcurrentChecks < 1 {
		cfg.ConcurrentChecks = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		cfg: cfg,
		rdapC: rdapC,
		whoisC: whoisC,
		gate: semaphore.NewWeighted(cfg.ConcurrentChecks),
		metrics: m,
		log: logger,
	}
}

// Check classifies a single candidate fqdn through the RDAP→WHOIS
// fallback algorithm. Check validates fqdn itself before any probe, so
// callers may pass raw user input.
func (c *Checker) Check(ctx context.Context, fqdn string) (Result, error) {
	name, err := validate.Validate(fqdn)
	if err != nil {
		return Result{FQDN: fqdn, Status: StatusError, ErrorMessage: err.Error()}, err
	}
	if !name.ICANNDelegated {
		c.log.Debug("tld not in the icann public suffix list, registry lookup may fail", "fqdn", fqdn, "tld", name.TLD)
	}

	if err := c.gate.Acquire(ctx, 1); err != nil {
		return Result{}, err
	}
	defer c.gate.Release(1)

	start := time.Now()
	correlationID := uuid.NewString()

	v, err, _ := c.sf.Do(fqdn, func() (any, error) {
			return c.probeAll(ctx, fqdn, correlationID), nil
		})

	elapsed := time.Since(start)
	if c.metrics != nil {
		c.metrics.RecordCheck(int64(elapsed))
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError()
		}
		return Result{}, err
	}

	result := v.(Result)
	if result.Status == StatusError && c.metrics != nil {
		c.metrics.RecordError()
	}
	c.log.Debug("check complete", "probe", logging.ProbeFields(correlationID, fqdn, result.Method.String(),
		slog.String("status", result.Status.String()),
		slog.Int64("elapsed_ms", elapsed.Milliseconds()),
	))
	return result, nil
}

func (c *Checker) probeAll(ctx context.Context, fqdn, correlationID string) Result {
	if c.cfg.EnableRDAP && rdap.Supported(tldOf(fqdn)) {
		if c.metrics != nil {
			c.metrics.RecordAPICall()
		}
		out := c.rdapC.Probe(ctx, fqdn)
		c.log.Debug("rdap probe", "probe", logging.ProbeFields(correlationID, fqdn, "rdap",
			slog.String("status", out.Status.String()),
		))
		if out.Status != rdap.StatusError {
			return Result{FQDN: fqdn, Status: coarseStatus(out.Status), Method: MethodRDAP, RDAP: &out}
		}
		if suggestsAvailable(out) {
			return Result{FQDN: fqdn, Status: StatusAvailable, Method: MethodRDAP, RDAP: &out}
		}
	}

	if c.cfg.EnableWHOIS && c.whoisC != nil {
		if c.metrics != nil {
			c.metrics.RecordAPICall()
		}
		out := c.whoisC.Probe(ctx, fqdn)
		c.log.Debug("whois probe", "probe", logging.ProbeFields(correlationID, fqdn, "whois",
			slog.String("status", out.Status.String()),
		))
		if out.Status != rdap.StatusError {
			return Result{FQDN: fqdn, Status: coarseStatus(out.Status), Method: MethodWHOIS, RDAP: &out}
		}
		if suggestsAvailable(out) {
			return Result{FQDN: fqdn, Status: StatusAvailable, Method: MethodWHOIS, RDAP: &out}
		}
	}

	return Result{
		FQDN: fqdn,
		Status: StatusUnknown,
		Method: MethodUnknown,
		ErrorMessage: "all checking methods failed",
	}
}

// suggestsAvailable wraps an rdap.Outcome's error fields in the shared
// errtypes predicate. The Checker applies this at the fallback-decision
// level for both oracles, including an availability-suggesting RDAP
// error; this is distinct from the RDAP client's own classify step, which
// never consults message text since it has a crisp 404 signal.
func suggestsAvailable(out rdap.Outcome) bool {
	e := &errtypes.Error{
		Kind: errtypes.KindDomainCheck,
		Message: out.ErrorMessage,
		StatusCode: out.ErrorStatusCode,
	}
	return e.IsAvailabilitySuggesting()
}

func coarseStatus(s rdap.Status) AvailabilityStatus {
	switch s {
	case rdap.StatusAvailable:
		return StatusAvailable
	case rdap.StatusTaken, rdap.StatusExpiringSoon, rdap.StatusExpired:
		return StatusTaken
	default:
		return StatusUnknown
	}
}

func tldOf(fqdn string) string {
	for i := len(fqdn) - 1; i >= 0; i-- {
		if fqdn[i] == '.' {
			return fqdn[i+1:]
		}
	}
	return ""
}

// Compile-time checks that rdap.Client and whois.Client satisfy the
// RDAPProber/WHOISProber interfaces; both already implement
// Probe(ctx, fqdn) with the right signature, so no adapter type is needed.
var (
	_ RDAPProber = (*rdap.Client)(nil)
	_ WHOISProber = (*whois.Client)(nil)
)
