package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/dicepoker/internal/hand"
	"github.com/lox/dicepoker/internal/ledger"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)
	winStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4"))
	lossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// HistoryCmd prints the most recent rounds and lifetime totals.
type HistoryCmd struct {
	Limit int `short:"n" default:"20" help:"Number of rounds to show"`
}

func (cmd *HistoryCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg.UI.LogLevel)
	if err != nil {
		return err
	}
	if cfg.Storage.LedgerFile == "" {
		return fmt.Errorf("no ledger file configured")
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	l, err := openLedger(ctx, cfg.Storage.LedgerFile, logger)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	entries, err := l.Recent(ctx, cmd.Limit)
	if err != nil {
		return err
	}
	totals, err := l.Totals(ctx)
	if err != nil {
		return err
	}
	writeHistory(os.Stdout, entries, totals)
	return nil
}

func writeHistory(w io.Writer, entries []ledger.Entry, totals ledger.Totals) {
	fmt.Fprintln(w, titleStyle.Render("Recent rounds"))
	if len(entries) == 0 {
		fmt.Fprintln(w, "No rounds recorded yet.")
	}
	for _, e := range entries {
		net := fmt.Sprintf("%+6d", e.Net())
		if e.Net() >= 0 {
			net = winStyle.Render(net)
		} else {
			net = lossStyle.Render(net)
		}
		fmt.Fprintf(w, "%s  %-8s #%-4d wager %-5d %s -> %s  %-10s %s  credit %d\n",
			e.Recorded.Local().Format("2006-01-02 15:04"), e.Session, e.Round, e.Wager,
			e.OpeningFaces, e.FinalFaces, e.FinalHand.Category.Label(), net, e.Credit)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Totals"))
	fmt.Fprintf(w, "Rounds: %d, wins: %d, best payout: %d\n", totals.Rounds, totals.Wins, totals.BestPayout)
	fmt.Fprintf(w, "Staked: %d, returned: %d, net: %+d\n", totals.Staked, totals.Returned, totals.Net)
	for _, c := range append([]hand.Category{hand.None}, hand.Categories...) {
		if n := totals.ByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", c.Label(), n)
		}
	}
}
