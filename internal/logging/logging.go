// Package logging constructs the one *slog.Logger used across the module.
// It is built once in main and passed explicitly to the subcommand
// handlers and the Checker constructor — never fetched from a
// package-level global — per the "no singleton" design note. The snipe
// and recheck engines take no logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	slogcommon "github.com/samber/slog-common"
)

// Options controls the logger's verbosity and output stream.
type Options struct {
	Debug  bool
	Output io.Writer
}

// New builds a text-handler logger at Info level (or Debug when
// Options.Debug is set), writing to Options.Output (stderr by default).
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// ProbeFields builds the structured field set attached to every per-domain
// probe log line, correlating a single fqdn's RDAP→WHOIS fallback path
// across concurrent goroutines via correlationID. It is logged as a single
// grouped attribute (slog.Any("probe", fields)) so handlers that flatten
// attribute maps (every handler slog-common targets) render one coherent
// object per probe instead of loose top-level keys.
func ProbeFields(correlationID, fqdn, method string, extra ...slog.Attr) map[string]any {
	attrs := []slog.Attr{
		slog.String("correlation_id", correlationID),
		slog.String("fqdn", fqdn),
		slog.String("method", method),
	}
	attrs = append(attrs, extra...)
	return slogcommon.AttrsToMap(attrs...)
}
