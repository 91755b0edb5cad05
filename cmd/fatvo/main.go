// Command fatvo is a terminal front-end for an Uzbek-language assistant.
// Questions typed in Latin script are sent in Cyrillic; answers come back
// in Latin with the Cyrillic original as a caption.
//
// Usage:
//
//	OPENAI_API_KEY=sk-... OPENAI_ASSISTANT_ID=asst_... fatvo [flags]
//
// Credentials may also come from a .env file or .streamlit/secrets.toml.
// Run with --help for the full flag list.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fwojciec/fatvo"
	"github.com/fwojciec/fatvo/agent"
	bt "github.com/fwojciec/fatvo/bubbletea"
	"github.com/fwojciec/fatvo/config"
	"github.com/fwojciec/fatvo/openai"
	"github.com/fwojciec/fatvo/session"
	"github.com/fwojciec/fatvo/translit"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const verifyTimeout = 15 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fatvo: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.NewFlagSet("fatvo")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := openai.New(cfg.APIKey, cfg.AssistantID,
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithPollInterval(cfg.PollInterval),
		openai.WithLogger(logger),
	)
	if cfg.Verify {
		vctx, cancel := context.WithTimeout(ctx, verifyTimeout)
		err := client.Verify(vctx)
		cancel()
		if err != nil {
			return fmt.Errorf("verify credentials: %w", err)
		}
		logger.Info("credentials verified", "assistant_id", cfg.AssistantID)
	}

	store := session.NewStore(client, session.WithTTL(cfg.SessionTTL), session.WithLogger(logger))
	s := store.New()
	ag := agent.New(translit.Uzbek(translit.WithLogger(logger)), client,
		agent.WithTimeout(cfg.RunTimeout),
		agent.WithLogger(logger),
	)
	turn := func(ctx context.Context, input string, p fatvo.Presenter) error {
		return ag.Turn(ctx, s, input, p)
	}
	logger.Info("starting", "session_id", s.ID(), "base_url", cfg.BaseURL, "run_timeout", cfg.RunTimeout)

	g, gctx := errgroup.WithContext(ctx)
	tuiCtx, quit := context.WithCancel(gctx)
	defer quit()
	g.Go(func() error {
		// The janitor stops when the TUI exits.
		defer quit()
		if err := bt.Run(tuiCtx, bt.New(turn, s, fatvo.DefaultTheme())); err != nil {
			return fmt.Errorf("TUI: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return store.Run(tuiCtx, session.DefaultSweepInterval)
	})
	return g.Wait()
}

// openLog opens the log file. The TUI owns the terminal, so logs never go
// to stderr.
func openLog(cfg config.Config) (*slog.Logger, func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}
