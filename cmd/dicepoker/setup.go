package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/dicepoker/internal/config"
	"github.com/lox/dicepoker/internal/ledger"
	"github.com/lox/dicepoker/internal/simulator"
)

// loadConfig reads the configuration file and applies command line overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.UI.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	}), nil
}

// openLogFile appends to path, the TUI owns the terminal.
func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// openLedger opens the round history unless path is empty.
func openLedger(ctx context.Context, path string, logger *log.Logger) (*ledger.Ledger, error) {
	if path == "" {
		return nil, nil
	}
	return ledger.Open(ctx, path, quartz.NewReal(), logger)
}

// signalContext is cancelled on interrupt signals.
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		logger.Debug("Shutting down")
	}()
	return ctx, cancel
}

// seedOrNow returns seed, or a time based seed when it is zero.
func seedOrNow(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func strategyEnum() string {
	return strings.Join(simulator.StrategyNames(), ",")
}

// StrategyFlags are the table decisions shared by the headless commands.
type StrategyFlags struct {
	Strategy string `default:"pairs" enum:"${strategies}" help:"Hold strategy (${enum})"`
	Wager    int    `help:"Main wager (defaults to the configured default wager)"`
	OneRoll  bool   `help:"Place the one-roll side bet every round"`
	AllRed   bool   `help:"Place the all-red side bet every round"`
	Seed     int64  `help:"RNG seed (0 for random)"`
}

func (f StrategyFlags) player(cfg *config.Config) (simulator.Player, error) {
	s, err := simulator.ParseStrategy(f.Strategy)
	if err != nil {
		return simulator.Player{}, err
	}
	wager := f.Wager
	if wager == 0 {
		wager = cfg.Betting.DefaultWager
	}
	return simulator.Player{Strategy: s, Wager: wager, OneRoll: f.OneRoll, AllRed: f.AllRed}, nil
}
