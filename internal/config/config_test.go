package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/dicepoker/internal/dice"
	"github.com/lox/dicepoker/internal/hand"
	"github.com/lox/dicepoker/internal/round"
)

func TestDefaultMatchesPackageDefaults(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, dice.DefaultParams(), cfg.Params())
	assert.Equal(t, dice.DefaultTable(), cfg.TableGeometry())
	assert.Equal(t, round.DefaultRules(), cfg.Rules())
	assert.Equal(t, 250, cfg.Betting.StartingCredit)
	assert.True(t, cfg.ShowKeyLegend())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dicepoker.hcl")
	src := `
physics {
  gravity       = 1800
  tumble_chance = 0
}

payouts {
  straight = 4
}

betting {
  starting_credit = 1000
  max_wager       = 500
  red_faces       = [1, 4, 6]
}

ui {
  log_level       = "debug"
  show_key_legend = false
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	p := cfg.Params()
	assert.Equal(t, 1800.0, p.Gravity)
	assert.Equal(t, 0.0, p.TumbleChance, "explicit zero is kept")
	assert.Equal(t, dice.DefaultParams().Bounce, p.Bounce)

	r := cfg.Rules()
	assert.Equal(t, 4, r.Payouts[hand.Straight])
	assert.Equal(t, 10, r.Payouts[hand.FiveKind])
	assert.Equal(t, 500, r.MaxWager)
	assert.Equal(t, 10, r.MinWager)
	assert.True(t, r.RedFaces.Contains(6))
	assert.Equal(t, 15, r.AllRedMultiplier)

	assert.Equal(t, 1000, cfg.Betting.StartingCredit)
	assert.Equal(t, 10, cfg.Betting.DefaultWager)
	assert.Equal(t, "debug", cfg.UI.LogLevel)
	assert.Equal(t, 60, cfg.UI.FPS)
	assert.False(t, cfg.ShowKeyLegend())
	assert.Equal(t, "dice_save.json", cfg.Storage.SaveFile)
	assert.Equal(t, dice.DefaultTable(), cfg.TableGeometry())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`physics {`), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Parse([]byte(`physics { gravity = "heavy" }`), "typed.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")

	_, err = Parse([]byte(`unknown { }`), "unknown.hcl")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"bounce out of range", `physics { bounce = 1.5 }`, "physics"},
		{"tiny table", `table { width = 100 }`, "table"},
		{"negative payout", `payouts { full_house = -1 }`, "betting"},
		{"bad red face", `betting { red_faces = [0, 4] }`, "red_faces"},
		{"inverted wager bounds", `betting {
  min_wager = 100
  max_wager = 50
}`, "betting"},
		{"default wager out of bounds", `betting { default_wager = 5 }`, "default wager"},
		{"fps", `ui { fps = 1000 }`, "fps"},
		{"log level", `ui { log_level = "loud" }`, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.src), "test.hcl")
			require.NoError(t, err)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestOptionsBuildMachine(t *testing.T) {
	cfg, err := Parse([]byte(`betting {
  min_wager = 20
  side_bet_min = 7
}`), "test.hcl")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Betting.DefaultWager, "default wager follows the minimum")
	assert.Len(t, cfg.Options(), 3)
	assert.Equal(t, 7, cfg.Rules().SideBetStake(20))
}
