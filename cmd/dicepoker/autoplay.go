package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/coder/quartz"

	"github.com/lox/dicepoker/internal/randutil"
	"github.com/lox/dicepoker/internal/round"
	"github.com/lox/dicepoker/internal/runner"
)

// AutoplayCmd plays in real time and logs every round.
type AutoplayCmd struct {
	StrategyFlags

	Rounds int  `short:"n" default:"10" help:"Rounds to play (0 = until interrupted)"`
	Credit int  `help:"Starting credit (defaults to the configured starting credit)"`
	FPS    int  `help:"Frame rate (overrides config)"`
	Record bool `help:"Record every round in the ledger"`
}

func (cmd *AutoplayCmd) Run(g *Globals) error {
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

	opts := cfg.Options()
	if cmd.Record {
		l, err := openLedger(ctx, cfg.Storage.LedgerFile, logger)
		if err != nil {
			return err
		}
		if l != nil {
			defer func() { _ = l.Close() }()
			opts = append(opts, round.WithMonitor(l.Monitor(ctx, "autoplay")))
		}
	}

	credit := cmd.Credit
	if credit == 0 {
		credit = cfg.Betting.StartingCredit
	}
	fps := cmd.FPS
	if fps == 0 {
		fps = cfg.UI.FPS
	}
	seed := seedOrNow(cmd.Seed)

	machine := round.New(logger, randutil.New(seed), credit, opts...)
	r := runner.New(quartz.NewReal(), machine, player, runner.Config{FPS: fps, Rounds: cmd.Rounds}, logger)

	logger.Info("Starting autoplay", "strategy", player.Strategy.Name(), "wager", player.Wager,
		"credit", credit, "fps", fps, "seed", seed)
	err = r.Run(ctx)
	switch {
	case errors.Is(err, round.ErrInsufficientCredit):
		logger.Warn("Stopped: out of credit")
	case ctx.Err() != nil:
		logger.Info("Interrupted")
	case err != nil:
		return fmt.Errorf("autoplay failed: %w", err)
	}

	fmt.Printf("Played %d rounds, credit %d -> %d (seed %d)\n", r.Played(), credit, machine.Credit(), seed)
	return nil
}
