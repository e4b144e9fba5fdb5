package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/lox/dicepoker/internal/round"
	"github.com/lox/dicepoker/internal/simulator"
)

// SimulateCmd plays rounds as fast as possible.
type SimulateCmd struct {
	StrategyFlags

	Rounds      int           `short:"n" default:"10000" help:"Number of rounds to simulate"`
	Sessions    int           `default:"0" help:"Independent sessions (0 = one per CPU)"`
	Parallelism int           `default:"0" help:"Sessions run at once (0 = all)"`
	Credit      int           `help:"Starting credit per session (0 = effectively unlimited)"`
	Timeout     time.Duration `default:"10m" help:"Give up after this long"`
	Record      bool          `help:"Record every round in the ledger"`
}

func (cmd *SimulateCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg.UI.LogLevel)
	if err != nil {
		return err
	}
	player, err := cmd.player(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, cmd.Timeout)
	defer cancelTimeout()

	opts := cfg.Options()
	if cmd.Record {
		l, err := openLedger(ctx, cfg.Storage.LedgerFile, logger)
		if err != nil {
			return err
		}
		if l != nil {
			defer func() { _ = l.Close() }()
			opts = append(opts, round.WithMonitor(l.Monitor(ctx, "simulate")))
		}
	}

	sessions := cmd.Sessions
	if sessions <= 0 {
		sessions = runtime.NumCPU()
	}
	seed := seedOrNow(cmd.Seed)

	logger.Info("Starting simulation", "rounds", cmd.Rounds, "sessions", sessions,
		"strategy", player.Strategy.Name(), "wager", player.Wager, "seed", seed)
	start := time.Now()

	report, err := simulator.Run(ctx, simulator.Config{
		Rounds:      cmd.Rounds,
		Sessions:    sessions,
		Parallelism: cmd.Parallelism,
		Seed:        seed,
		Wager:       player.Wager,
		OneRoll:     player.OneRoll,
		AllRed:      player.AllRed,
		Credit:      cmd.Credit,
		Strategy:    player.Strategy,
		Step:        1 / float64(cfg.UI.FPS),
		Options:     opts,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.WriteSummary(os.Stdout, report)
	fmt.Printf("Seed: %d, wall time: %s\n", seed, time.Since(start).Round(time.Millisecond))
	return nil
}
