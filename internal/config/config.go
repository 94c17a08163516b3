// Package config holds the typed, flag-populated configuration structs
// for each CLI subcommand. No environment variable or file-based
// configuration is read. Defaults come from the Default*Config
// constructors; cobra/pflag flag bindings in cmd/rdapsnipe override some
// fields, and fields without a flag keep their default.
package config

import "time"

// SnipeConfig configures the `snipe` subcommand.
type SnipeConfig struct {
	Mode string // "full" (default), "pronounceable", "words", "six"
	Length int
	TLDs []string
	Concurrency int64
	BatchSize int
	SaveIntervalN uint64
	RateLimitMs int
	ExpiringDays int
	StatePath string
	Resume bool
	ConfigFile string // reserved, unimplemented; logged as unsupported if non-empty
}

// DefaultSnipeConfig sets the same batch-oriented defaults the sweep
// loop's rate limiter and save cadence are tuned against.
func DefaultSnipeConfig() SnipeConfig {
	return SnipeConfig{
		Mode: "full",
		Length: 4,
		TLDs: []string{"com"},
		Concurrency: 10,
		BatchSize: 100,
		SaveIntervalN: 1000,
		RateLimitMs: 200,
		ExpiringDays: 30,
	}
}

// RecheckConfig configures the `recheck` subcommand.
type RecheckConfig struct {
	StatePaths []string
	ExpiringDays int
	Concurrency int64
}

// DefaultRecheckConfig uses the same concurrent_checks=10 default as
// DefaultCheckConfig, for the recheck pass's own concurrency gate.
func DefaultRecheckConfig() RecheckConfig {
	return RecheckConfig{
		ExpiringDays: 30,
		Concurrency: 10,
	}
}

// CheckConfig configures the `check` subcommand and the underlying
// Checker of the interactive path.
type CheckConfig struct {
	ConcurrentChecks int64
	Timeout time.Duration
	EnableRDAP bool
	EnableWHOIS bool
	DetailedInfo bool
	RetryAttempts int
	RateLimit int
	ConnectionPoolSize int
}

// DefaultCheckConfig sets the interactive checker's baseline tuning:
// concurrent_checks=10, timeout=30s, enable_rdap/enable_whois=true,
// retry_attempts=3, rate_limit=60, connection_pool_size=10.
func DefaultCheckConfig() CheckConfig {
	return CheckConfig{
		ConcurrentChecks: 10,
		Timeout: 30 * time.Second,
		EnableRDAP: true,
		EnableWHOIS: true,
		DetailedInfo: false,
		RetryAttempts: 3,
		RateLimit: 60,
		ConnectionPoolSize: 10,
	}
}
