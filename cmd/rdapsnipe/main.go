// Command rdapsnipe sweeps, rechecks, and interactively probes domain
// availability over RDAP with a WHOIS fallback.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/rdapsnipe/rdapsnipe/internal/checker"
	"github.com/rdapsnipe/rdapsnipe/internal/config"
	"github.com/rdapsnipe/rdapsnipe/internal/enum"
	"github.com/rdapsnipe/rdapsnipe/internal/errtypes"
	"github.com/rdapsnipe/rdapsnipe/internal/extract"
	"github.com/rdapsnipe/rdapsnipe/internal/logging"
	"github.com/rdapsnipe/rdapsnipe/internal/metrics"
	"github.com/rdapsnipe/rdapsnipe/internal/rdap"
	"github.com/rdapsnipe/rdapsnipe/internal/recheck"
	"github.com/rdapsnipe/rdapsnipe/internal/snipe"
	"github.com/rdapsnipe/rdapsnipe/internal/state"
	"github.com/rdapsnipe/rdapsnipe/internal/whois"
)

// Exit codes: 0 on clean completion, 1 on a configuration error, 2 when
// an I/O failure prevented saving results.
const (
	exitOK = 0
	exitConfigError = 1
	exitIOError = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	log := logging.New(logging.Options{Debug: os.Getenv("RDAPSNIPE_DEBUG") != ""})

	var refreshRegistry bool
	root := &cobra.Command{
		Use: "rdapsnipe",
		Short: "Domain availability reconnaissance over RDAP and WHOIS",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !refreshRegistry {
				return nil
			}
			if err := rdap.RefreshFromIANABootstrap(cmd.Context()); err != nil {
				log.Warn("registry refresh failed, continuing with built-in table", "error", err)
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&refreshRegistry, "refresh-registry", false,
		"fetch the live IANA RDAP bootstrap file before running")

	root.AddCommand(newSnipeCmd(log))
	root.AddCommand(newRecheckCmd(log))
	root.AddCommand(newCheckCmd(log))

	if err := root.Execute(); err != nil {
		log.Error("command failed", "error", err)
		if ce, ok := asConfigError(err); ok {
			_ = ce
			return exitConfigError
		}
		return exitIOError
	}
	return exitOK
}

func asConfigError(err error) (error, bool) {
	return err, strings.Contains(err.Error(), "config")
}

func newSnipeCmd(log *slog.Logger) *cobra.Command {
	cfg := config.DefaultSnipeConfig()
	var tldCSV string
	var wordsMode, pronounceableMode, sixMode bool

	cmd := &cobra.Command{
		Use: "snipe",
		Short: "Start or resume a sweep over a name-space enumerator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.TLDs = splitCSV(tldCSV, cfg.TLDs)
			switch {
			case wordsMode:
				cfg.Mode = "words"
			case pronounceableMode:
				cfg.Mode = "pronounceable"
			case sixMode:
				cfg.Mode = "six"
			}
			if cfg.ConfigFile != "" {
				log.Warn("--config is reserved and not implemented; ignoring", "path", cfg.ConfigFile)
			}
			return runSnipe(cmd.Context(), cfg, log)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&wordsMode, "words", false, "use the five-letter word enumerator")
	flags.BoolVar(&pronounceableMode, "pronounceable", false, "use the pronounceable four-letter enumerator")
	flags.BoolVar(&sixMode, "six", false, "use the six-letter pronounceable enumerator")
	flags.StringVar(&tldCSV, "tld", "com", "comma-separated list of TLDs to cross with candidates")
	flags.Int64Var(&cfg.Concurrency, "concurrency", cfg.Concurrency, "max outstanding RDAP requests")
	flags.BoolVar(&cfg.Resume, "resume", false, "resume from the state file instead of starting fresh")
	flags.IntVar(&cfg.ExpiringDays, "expiring", cfg.ExpiringDays, "expiring-soon threshold in days")
	flags.IntVar(&cfg.Length, "length", cfg.Length, "candidate length for the full enumerator")
	flags.StringVar(&cfg.StatePath, "state", "", "state file path (default output/snipe_{length}letter.json)")
	flags.StringVar(&cfg.ConfigFile, "config", "", "reserved for future file-based configuration; not implemented")

	return cmd
}

func runSnipe(ctx context.Context, cfg config.SnipeConfig, log *slog.Logger) error {
	if cfg.StatePath == "" {
		cfg.StatePath = state.DefaultPath(cfg.Length)
	}

	rdapClient := rdap.NewClient(int(cfg.Concurrency), 15*time.Second, cfg.ExpiringDays)

	snipeCfg := snipe.Config{
		Mode: modeFromString(cfg.Mode),
		Length: cfg.Length,
		Charset: enum.CharsetLetters,
		TLDs: cfg.TLDs,
		Concurrency: cfg.Concurrency,
		SaveInterval: cfg.SaveIntervalN,
		RateLimitMs: cfg.RateLimitMs,
		ExpiringDays: cfg.ExpiringDays,
		StatePath: cfg.StatePath,
	}

	var engine *snipe.Engine
	var err error
	if cfg.Resume {
		engine, err = snipe.ResumeEngine(snipeCfg, rdapClient)
	} else {
		engine, err = snipe.NewEngine(snipeCfg, rdapClient)
	}
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("interrupt received, saving progress and stopping")
		cancel()
	}()

	log.Info("sweep starting", "mode", cfg.Mode, "tlds", cfg.TLDs, "state_path", cfg.StatePath)

	_, err = engine.Run(runCtx, func(p snipe.Progress) {
			log.Info("sweep progress",
				"percent", fmt.Sprintf("%.1f", p.PercentDone),
				"checked", p.Checked,
				"available", p.Available,
				"expiring_soon", p.ExpiringSoon,
				"expired", p.Expired,
				"errors", p.Errors,
			)
		})
	if err != nil {
		return err
	}

	log.Info("sweep finished", "state_path", cfg.StatePath)
	return nil
}

func modeFromString(s string) snipe.Mode {
	switch s {
	case "pronounceable":
		return snipe.ModePronounceable
	case "words":
		return snipe.ModeWords
	case "six":
		return snipe.ModeSix
	default:
		return snipe.ModeFull
	}
}

func newRecheckCmd(log *slog.Logger) *cobra.Command {
	cfg := config.DefaultRecheckConfig()

	cmd := &cobra.Command{
		Use: "recheck <state.json...>",
		Short: "Re-probe every domain in one or more state files and rewrite them in place",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.StatePaths = args
			return runRecheck(cmd.Context(), cfg, log)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.ExpiringDays, "expiring", cfg.ExpiringDays, "expiring-soon threshold in days")
	flags.Int64Var(&cfg.Concurrency, "concurrency", cfg.Concurrency, "max outstanding RDAP requests")

	return cmd
}

func runRecheck(ctx context.Context, cfg config.RecheckConfig, log *slog.Logger) error {
	rdapClient := rdap.NewClient(int(cfg.Concurrency), 15*time.Second, cfg.ExpiringDays)

	var errs *multierror.Error
	for _, path := range cfg.StatePaths {
		st, err := state.Load(path)
		if err != nil {
			log.Error("failed to load state file", "path", path, "error", err)
			errs = multierror.Append(errs, err)
			continue
		}

		report, err := recheck.Recheck(ctx, st, rdapClient, path, cfg.ExpiringDays, cfg.Concurrency)
		if err != nil {
			log.Warn("recheck completed with errors", "path", path, "error", err)
			// Per-domain probe failures are not *errtypes.Error values; a
			// failed save of the state file is, and it fails the command.
			var saveErr *errtypes.Error
			if errors.As(err, &saveErr) {
				errs = multierror.Append(errs, saveErr)
			}
		}
		log.Info("recheck complete",
			"path", path,
			"checked_expiring", report.CheckedExpiring,
			"checked_available", report.CheckedAvailable,
			"checked_expired", report.CheckedExpired,
		)
	}
	return errs.ErrorOrNil()
}

func newCheckCmd(log *slog.Logger) *cobra.Command {
	cfg := config.DefaultCheckConfig()
	var noWHOIS bool
	var timeoutSeconds int
	var fromFile string

	cmd := &cobra.Command{
		Use: "check <fqdn...>",
		Short: "Interactively probe one or more domains for availability",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.EnableWHOIS = !noWHOIS
			cfg.Timeout = time.Duration(timeoutSeconds) * time.Second

			fqdns := args
			if fromFile != "" {
				extracted, err := extractFromFile(fromFile)
				if err != nil {
					return fmt.Errorf("check: config: reading --file: %w", err)
				}
				fqdns = append(fqdns, extracted...)
			}
			if len(fqdns) == 0 {
				return fmt.Errorf("check: config: no domains given; pass fqdn arguments or --file")
			}
			return runCheck(cmd.Context(), cfg, fqdns, log)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&noWHOIS, "no-whois", false, "disable the WHOIS fallback")
	flags.IntVar(&timeoutSeconds, "timeout", 10, "per-request timeout in seconds")
	flags.StringVar(&fromFile, "file", "", "read additional candidates, one domain-shaped token per line")

	return cmd
}

func extractFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return extract.FromReader(f)
}

func runCheck(ctx context.Context, cfg config.CheckConfig, fqdns []string, log *slog.Logger) error {
	rdapClient := rdap.NewClient(int(cfg.ConcurrentChecks), cfg.Timeout, 30)
	whoisClient := whois.NewClient(cfg.Timeout)
	m := metrics.New()

	c := checker.New(checker.Config{
			EnableRDAP: cfg.EnableRDAP,
			EnableWHOIS: cfg.EnableWHOIS,
			ConcurrentChecks: cfg.ConcurrentChecks,
		}, rdapClient, whoisClient, m, log)

	for _, fqdn := range fqdns {
		result, err := c.Check(ctx, fqdn)
		if err != nil {
			log.Error("check failed", "fqdn", fqdn, "error", err)
			fmt.Printf("%s: error: %v\n", fqdn, err)
			continue
		}
		fmt.Printf("%s: %s (via %s)\n", fqdn, statusLabel(result.Status), result.Method)
	}
	return nil
}

func statusLabel(s checker.AvailabilityStatus) string {
	switch s {
	case checker.StatusAvailable:
		return "available"
	case checker.StatusTaken:
		return "taken"
	case checker.StatusUnknown:
		return "unknown"
	case checker.StatusError:
		return "error"
	default:
		return "unknown"
	}
}

func splitCSV(csv string, fallback []string) []string {
	if strings.TrimSpace(csv) == "" {
		return fallback
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
