package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/dicepoker/internal/config"
	"github.com/lox/dicepoker/internal/hand"
	"github.com/lox/dicepoker/internal/ledger"
	"github.com/lox/dicepoker/internal/round"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn")
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	_, err = newLogger(&buf, "loud")
	assert.Error(t, err)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dicepoker.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`ui {
  log_level = "error"
}
`), 0o644))

	cfg, err := loadConfig(&Globals{Config: path})
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.UI.LogLevel)

	cfg, err = loadConfig(&Globals{Config: path, LogLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.UI.LogLevel)

	_, err = loadConfig(&Globals{Config: path, LogLevel: "verbose"})
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestStrategyFlagsPlayer(t *testing.T) {
	cfg := config.Default()

	p, err := StrategyFlags{Strategy: "all", OneRoll: true}.player(cfg)
	require.NoError(t, err)
	assert.Equal(t, "all", p.Strategy.Name())
	assert.Equal(t, cfg.Betting.DefaultWager, p.Wager)
	assert.True(t, p.OneRoll)

	p, err = StrategyFlags{Strategy: "none", Wager: 50}.player(cfg)
	require.NoError(t, err)
	assert.Equal(t, 50, p.Wager)

	_, err = StrategyFlags{Strategy: "martingale"}.player(cfg)
	assert.Error(t, err)
}

func TestSeedOrNow(t *testing.T) {
	assert.Equal(t, int64(7), seedOrNow(7))
	assert.NotZero(t, seedOrNow(0))
}

func TestWriteHistory(t *testing.T) {
	entries := []ledger.Entry{{
		ID:       "0abc",
		Session:  "play",
		Recorded: time.Date(2025, 3, 4, 5, 6, 0, 0, time.Local),
		Result: round.Result{
			Round:        3,
			Wager:        20,
			OpeningFaces: hand.Faces{2, 2, 5, 1, 3},
			FinalFaces:   hand.Faces{2, 2, 5, 5, 5},
			FinalHand:    hand.Hand{Category: hand.FullHouse, Multiplier: 5},
			Payout:       100,
			Credit:       330,
		},
	}}
	totals := ledger.Totals{
		Rounds:     1,
		Staked:     20,
		Returned:   100,
		Net:        80,
		Wins:       1,
		BestPayout: 100,
		ByCategory: map[hand.Category]int{hand.FullHouse: 1},
	}

	var buf bytes.Buffer
	writeHistory(&buf, entries, totals)
	out := buf.String()

	assert.Contains(t, out, "2025-03-04 05:06")
	assert.Contains(t, out, "2 2 5 1 3 -> 2 2 5 5 5")
	assert.Contains(t, out, "full house")
	assert.Contains(t, out, "+80")
	assert.Contains(t, out, "credit 330")
	assert.Contains(t, out, "Staked: 20, returned: 100, net: +80")
}

func TestWriteHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	writeHistory(&buf, nil, ledger.Totals{})
	assert.Contains(t, buf.String(), "No rounds recorded yet.")
}
