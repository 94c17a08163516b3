// Package errtypes defines the module's error taxonomy. The validator, the
// state store and the snipe engine's config check return values of this
// single type, so callers can switch on Kind instead of string-matching.
// RDAP and WHOIS probe failures travel as rdap.Outcome error fields, to
// which the checker applies this package's availability predicate.
package errtypes

import (
	"fmt"
	"strings"
)

// Kind classifies an Error without naming a Go type per kind.
type Kind int

const (
	// KindConfig marks a fatal, missing or invalid setup problem.
	KindConfig Kind = iota
	// KindValidation marks a structurally invalid input name.
	KindValidation
	// KindNetwork marks a transport failure, optionally carrying a status code.
	KindNetwork
	// KindTimeout marks an operation that exceeded its deadline.
	KindTimeout
	// KindParse marks a registry response that could not be understood.
	KindParse
	// KindDomainCheck marks a high-level check failure naming domain and method.
	KindDomainCheck
	// KindIO marks a file read/write/rename failure.
	KindIO
	// KindRateLimit marks a 429 response; no retry-after value is recorded.
	KindRateLimit
	// KindInternal marks a violated invariant; always fatal, never swallowed.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindParse:
		return "parse"
	case KindDomainCheck:
		return "domain_check"
	case KindIO:
		return "io"
	case KindRateLimit:
		return "rate_limit"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the single concrete error type used across the module.
type Error struct {
	Kind       Kind
	Message    string
	Domain     string // fqdn, when the error concerns a specific domain
	Method     string // "rdap", "whois", "" when not check-specific
	StatusCode int    // HTTP status, 0 when not applicable
	Path       string // file path, for Io errors
	Content    string // offending content, for Parse errors (may be truncated)
	Retriable  bool
	cause      error
}

func (e *Error) Error() string {
	switch {
	case e.Domain != "" && e.Method != "":
		return fmt.Sprintf("%s: %s (%s, %s)", e.Kind, e.Message, e.Domain, e.Method)
	case e.Domain != "":
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Domain)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.cause }

// IsRetriable reports whether the caller may reasonably retry this error
// (at the recheck level; single-run retries are not attempted).
func (e *Error) IsRetriable() bool { return e.Retriable }

// IsAvailabilitySuggesting implements the availability heuristic. The
// checker applies it as a fallback-decision signal to both RDAP- and
// WHOIS-sourced Error outcomes; it is never consulted inside RDAP's own
// classify step, which has a crisp 404 signal and never needs to fall
// back to message-text heuristics.
func (e *Error) IsAvailabilitySuggesting() bool {
	if e == nil {
		return false
	}
	if e.StatusCode == 404 {
		return true
	}
	lower := strings.ToLower(e.Message)
	for _, needle := range []string{"not found", "no match", "available"} {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}

func Config(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Network(message string, statusCode int, retriable bool) *Error {
	return &Error{Kind: KindNetwork, Message: message, StatusCode: statusCode, Retriable: retriable}
}

func Timeout(message string) *Error {
	return &Error{Kind: KindTimeout, Message: message, Retriable: true}
}

func Parse(message, content string) *Error {
	const maxContent = 2048
	if len(content) > maxContent {
		content = content[:maxContent] + "...(truncated)"
	}
	return &Error{Kind: KindParse, Message: message, Content: content}
}

func DomainCheck(domain, method, message string) *Error {
	return &Error{Kind: KindDomainCheck, Message: message, Domain: domain, Method: method}
}

func IO(message, path string) *Error {
	return &Error{Kind: KindIO, Message: message, Path: path}
}

func RateLimit(message string, retryAfterHint bool) *Error {
	return &Error{Kind: KindRateLimit, Message: message, Retriable: true}
}

func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

// Wrap attaches a cause to an existing Error without changing its Kind.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}
