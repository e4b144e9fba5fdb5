package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/dicepoker/internal/randutil"
	"github.com/lox/dicepoker/internal/round"
	"github.com/lox/dicepoker/internal/save"
	"github.com/lox/dicepoker/internal/tui"
)

// PlayCmd runs the interactive table.
type PlayCmd struct {
	Seed     int64  `help:"RNG seed (0 for random)"`
	SaveFile string `help:"Save file path (overrides config)"`
	LogFile  string `help:"Log file path (overrides config)"`
	NoLedger bool   `help:"Do not record rounds in the ledger"`
	NoColor  bool   `help:"Disable colors"`
}

func (cmd *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if cmd.SaveFile != "" {
		cfg.Storage.SaveFile = cmd.SaveFile
	}
	if cmd.LogFile != "" {
		cfg.UI.LogFile = cmd.LogFile
	}
	if cmd.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logFile, err := openLogFile(cfg.UI.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	logger, err := newLogger(logFile, cfg.UI.LogLevel)
	if err != nil {
		return err
	}

	store := save.NewStore(cfg.Storage.SaveFile, save.State{
		Credit:   cfg.Betting.StartingCredit,
		Settings: save.Settings{ShowKeyLegend: cfg.ShowKeyLegend()},
	}, logger)
	state, err := store.LoadOrInit()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	opts := cfg.Options()
	if !cmd.NoLedger {
		l, err := openLedger(ctx, cfg.Storage.LedgerFile, logger)
		if err != nil {
			return err
		}
		if l != nil {
			defer func() { _ = l.Close() }()
			opts = append(opts, round.WithMonitor(l.Monitor(ctx, "play")))
		}
	}

	seed := seedOrNow(cmd.Seed)
	logger.Info("Starting game", "credit", state.Credit, "seed", seed, "save", store.Path())

	machine := round.New(logger, randutil.New(seed), state.Credit, opts...)
	model := tui.New(machine, store, state.Settings, tui.Options{
		FPS:          cfg.UI.FPS,
		Wager:        cfg.Betting.DefaultWager,
		WagerStep:    cfg.Betting.WagerStep,
		BigWagerStep: cfg.Betting.BigWagerStep,
	}, logger)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	// The model saves on quit; an interrupt skips it.
	if err := store.Save(save.State{Credit: machine.Credit(), Settings: model.Settings()}); err != nil {
		return err
	}
	logger.Info("Game closed", "credit", machine.Credit(), "rounds", machine.Round())
	return nil
}
