// ABOUTME: CLI entry point for the ashe interactive shell with terminal crash recovery
// ABOUTME: Loads config, wires terminal, signals, history and prompt, then runs the read/execute loop

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/ashe-go/internal/config"
	"github.com/mauromedda/ashe-go/internal/history"
	"github.com/mauromedda/ashe-go/internal/jobs"
	"github.com/mauromedda/ashe-go/internal/log"
	"github.com/mauromedda/ashe-go/internal/prompt"
	"github.com/mauromedda/ashe-go/internal/quote"
	"github.com/mauromedda/ashe-go/pkg/tui/input"
	"github.com/mauromedda/ashe-go/pkg/tui/lineedit"
	"github.com/mauromedda/ashe-go/pkg/tui/signals"
	"github.com/mauromedda/ashe-go/pkg/tui/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("ashe %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	status, err := run(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(status)
}

// run loads the configuration and dispatches to one-shot or interactive mode.
func run(args cliArgs) (int, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return 1, fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return 1, fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cfg, args)

	closeLog, err := setupLogging(cfg, args.verbose)
	if err != nil {
		return 1, err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	mon := jobs.NewMonitor()
	exec := &jobs.Executor{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr, Monitor: mon}

	if args.command != "" {
		return exec.Run(ctx, args.command)
	}
	return interactive(ctx, cfg, mon, exec)
}

// applyFlags overrides file and environment settings with CLI flags.
func applyFlags(cfg *config.Settings, args cliArgs) {
	if args.prompt != "" {
		cfg.Prompt = args.prompt
	}
	if args.histFile != "" {
		cfg.HistoryFile = config.ExpandHome(args.histFile)
	}
	if args.verbose {
		cfg.LogLevel = "debug"
	}
}

// setupLogging applies the configured level and redirects output to the log
// file, if any. The returned func closes the file.
func setupLogging(cfg *config.Settings, verbose bool) (func(), error) {
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn("config: %v", err)
	}
	log.SetLevel(lvl)
	if verbose {
		log.SetLevel(log.LevelDebug)
	}

	if cfg.LogFile == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	prev := log.SetOutput(f)
	return func() {
		log.SetOutput(prev)
		f.Close()
	}, nil
}

// interactive runs the prompt loop on the controlling terminal until EOF,
// exit, or a termination signal.
func interactive(ctx context.Context, cfg *config.Settings, mon *jobs.Monitor, exec *jobs.Executor) (int, error) {
	term := terminal.NewProcessTerminal(os.Stdin, os.Stdout)
	if !term.IsTerminal() {
		return 1, errors.New("standard input is not a terminal; use -c to run a command")
	}
	defer terminal.RestoreOnPanic(term)
	exec.TTY = os.Stdin

	hist := history.New(cfg.HistoryLimit)
	if err := hist.Load(cfg.HistoryFile); err != nil {
		log.Warn("history: %v", err)
	}
	defer func() {
		if err := hist.Save(cfg.HistoryFile); err != nil {
			log.Warn("history: %v", err)
		}
	}()

	coord := signals.New(mon.Notify)
	coord.Start()
	defer coord.Stop()

	in := input.NewStdinBuffer(os.Stdin)
	defer in.Stop()

	exp := prompt.NewExpander(mon.Jobs)
	sess := lineedit.NewSession(lineedit.Options{
		Terminal:       term,
		Input:          in,
		Signals:        coord,
		History:        hist,
		Quoter:         quote.Quoter{},
		Prompt:         prompt.New(exp, cfg.Prompt, cfg.PromptColor),
		MaxCommandSize: cfg.MaxCommandSize,
	})
	defer sess.Close()

	if cfg.ShowWelcome() {
		fmt.Fprint(os.Stdout, prompt.Welcome(exp, ""))
	}

	sh := &shell{out: os.Stdout, hist: hist, mon: mon}

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(loopCtx)
	g.Go(guarded(term, func() error {
		return mon.Run(gctx)
	}))
	g.Go(guarded(term, func() error {
		defer cancel()
		return loop(gctx, sess, sh, exec)
	}))
	if err := g.Wait(); err != nil {
		return 1, err
	}
	return sh.status, nil
}

// guarded wraps fn for an errgroup: a panic restores the terminal and is
// returned as an error, so the deferred history save still runs.
func guarded(term terminal.Terminal, fn func() error) func() error {
	return func() (err error) {
		defer terminal.RecoverGoroutine(term, &err)
		return fn()
	}
}

// loop reads and executes commands. It returns nil on EOF, exit, or
// cancellation.
func loop(ctx context.Context, sess *lineedit.Session, sh *shell, exec *jobs.Executor) error {
	for {
		line, err := sess.ReadLine(ctx)
		switch {
		case errors.Is(err, lineedit.ErrEOF):
			fmt.Fprintln(sh.out, "exit")
			return nil
		case ctx.Err() != nil:
			return nil
		case err != nil:
			return err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		if sh.builtin(line) {
			if sh.exit {
				return nil
			}
			continue
		}

		status, err := exec.Run(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Error("%v", err)
			sh.status = 127
			continue
		}
		sh.status = status
		log.Debug("exit status %d", status)
	}
}
