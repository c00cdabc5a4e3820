package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/message"

	"gamerena/internal/combat"
	"gamerena/internal/config"
	"gamerena/internal/report"
	"gamerena/internal/roster"
	"gamerena/internal/telemetry"
	"gamerena/internal/util"
)

type options struct {
	tuning   string
	roster   string
	out      string
	lang     string
	logLevel string
	otel     string
	seed     int64
	n        int
	workers  int
	events   bool
	pause    bool
	quiet    bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, env config.Env) (options, error) {
	var o options
	fs := flag.NewFlagSet("gamerena", flag.ContinueOnError)
	fs.StringVar(&o.tuning, "tuning", env.TuningPath, "tuning yaml file")
	fs.StringVar(&o.roster, "roster", "", "roster file with one name@team per line (default stdin)")
	fs.StringVar(&o.out, "out", "", "write the JSON result (single) or summary (batch) to this file")
	fs.StringVar(&o.lang, "lang", "en", "language tag for number formatting")
	fs.StringVar(&o.logLevel, "log-level", env.LogLevel, "debug, info, warn or error")
	fs.StringVar(&o.otel, "otel-endpoint", env.OTelEndpoint, "OTLP/HTTP endpoint; empty disables tracing")
	fs.Int64Var(&o.seed, "seed", env.Seed, "combat seed; 0 picks a random one")
	fs.IntVar(&o.n, "n", 1, "number of simulations")
	fs.IntVar(&o.workers, "workers", env.Workers, "parallel simulations in batch mode")
	fs.BoolVar(&o.events, "events", false, "record the event log into the JSON output")
	fs.BoolVar(&o.pause, "pause", false, "wait for Enter before the match starts")
	fs.BoolVar(&o.quiet, "quiet", false, "do not narrate the match")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.n < 1 {
		return o, fmt.Errorf("-n must be at least 1, got %d", o.n)
	}
	o.workers = max(o.workers, 1)
	return o, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	opts, err := parseFlags(args, env)
	if err != nil {
		return err
	}
	lvl, err := config.ParseLogLevel(opts.logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	shutdown, err := telemetry.Setup(ctx, "gamerena", opts.otel)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("tracing shutdown", "err", err)
		}
	}()

	cfg, err := config.LoadTuning(opts.tuning)
	if err != nil {
		return err
	}
	slog.Info("tuning loaded", "path", opts.tuning, "skills", len(cfg.Skills))

	entries, err := readRoster(opts.roster, stdin)
	if err != nil {
		return err
	}

	if opts.seed == 0 {
		if opts.seed, err = util.NewSeed(); err != nil {
			return err
		}
	}

	p := report.Printer(opts.lang)
	if opts.n > 1 {
		return runBatch(ctx, opts, &cfg, entries, p, stdout)
	}
	return runSingle(ctx, opts, &cfg, entries, p, stdin, stdout)
}

func readRoster(path string, stdin io.Reader) ([]roster.Entry, error) {
	r := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening roster: %w", err)
		}
		defer f.Close()
		r = f
	}
	rs, err := roster.Parse(r)
	if err != nil {
		return nil, err
	}
	for _, le := range rs.Skipped {
		slog.Warn("roster line skipped", "line", le.Line, "text", le.Text, "err", le.Err)
	}
	slog.Info("roster read", "entries", len(rs.Entries), "skipped", len(rs.Skipped))
	return rs.Entries, nil
}

// register adds every entry to a. Rejected entries are logged with log and
// skipped.
func register(a *combat.Arena, entries []roster.Entry, log *slog.Logger) int {
	n := 0
	for _, e := range entries {
		if _, err := a.Register(e.Team, e.Name); err != nil {
			log.Warn("registration rejected", "line", e.Line, "name", e.Name, "code", combat.GetCode(err), "err", err)
			continue
		}
		n++
	}
	return n
}

func runSingle(ctx context.Context, opts options, cfg *config.Tuning, entries []roster.Entry, p *message.Printer, stdin io.Reader, stdout io.Writer) error {
	a := combat.NewArena(cfg, util.New(opts.seed))
	if register(a, entries, slog.Default()) == 0 {
		return errors.New("no participants registered")
	}

	fmt.Fprintf(stdout, "Seed: %d\n", opts.seed)
	if err := report.Render(stdout, p, a.Teams(), report.LevelStats); err != nil {
		return err
	}
	if opts.pause {
		p.Fprintf(stdout, "Press Enter to start...\n")
		if _, err := bufio.NewReader(stdin).ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("waiting for start: %w", err)
		}
	}

	var events []combat.Event
	var narr *report.Narrator
	if !opts.quiet {
		narr = report.NewNarrator(stdout, p)
	}
	a.Emit = func(ev combat.Event) {
		if opts.events {
			events = append(events, ev)
		}
		if narr != nil {
			narr.Emit(ev)
		}
	}

	rep, err := a.Run(ctx)
	if err != nil {
		return fmt.Errorf("running match: %w", err)
	}
	if narr != nil && narr.Err() != nil {
		return fmt.Errorf("narrating: %w", narr.Err())
	}

	if err := report.Render(stdout, p, a.Teams(), report.LevelScore); err != nil {
		return err
	}
	if err := report.Standings(stdout, p, a.Entities()); err != nil {
		return err
	}
	switch {
	case rep.Aborted:
		p.Fprintf(stdout, "Match aborted after %d turns.\n", rep.Turns)
	case rep.HasWinner:
		p.Fprintf(stdout, "Winner: %s after %d turns (t=%.2f).\n", rep.WinnerName, rep.Turns, rep.Clock)
	default:
		p.Fprintf(stdout, "No winner after %d turns.\n", rep.Turns)
	}

	if opts.out == "" {
		return nil
	}
	data, err := report.MarshalPretty(report.NewMatch(opts.seed, rep, a.Teams(), events))
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if err := os.WriteFile(opts.out, data, 0o644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	slog.Info("result written", "path", opts.out)
	return nil
}

// runBatch plays opts.n independent matches of the same roster, run i using
// seed opts.seed+i.
func runBatch(ctx context.Context, opts options, cfg *config.Tuning, entries []roster.Entry, p *message.Printer, stdout io.Writer) error {
	// per-run registration and results are too chatty below warn
	runLog := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	var mu sync.Mutex
	batch := report.NewBatch(opts.seed)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers)
	for i := 0; i < opts.n; i++ {
		g.Go(func() error {
			a := combat.NewArena(cfg, util.New(opts.seed+int64(i)))
			a.SetLogger(runLog)
			// every run sees the same rejections; report them once
			regLog := discard
			if i == 0 {
				regLog = runLog
			}
			if register(a, entries, regLog) == 0 {
				return errors.New("no participants registered")
			}
			rep, err := a.Run(gctx)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			mu.Lock()
			batch.Add(rep)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	batch.Finish()

	fmt.Fprintf(stdout, "Seed: %d\n", opts.seed)
	p.Fprintf(stdout, "Batch of %d runs: avg %.1f turns, %d without winner\n", batch.Runs, batch.AvgTurns, batch.NoWinner)
	for _, team := range slices.Sorted(maps.Keys(batch.WinRate)) {
		p.Fprintf(stdout, "    %s: %d wins (%.1f%%)\n", team, batch.Wins[team], batch.WinRate[team]*100)
	}

	if opts.out == "" {
		return nil
	}
	data, err := report.MarshalPretty(batch)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	if err := os.WriteFile(opts.out, data, 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	slog.Info("summary written", "path", opts.out, "runs", batch.Runs)
	return nil
}
