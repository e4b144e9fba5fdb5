// Package config loads the dicepoker HCL configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/dicepoker/internal/dice"
	"github.com/lox/dicepoker/internal/hand"
	"github.com/lox/dicepoker/internal/round"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "dicepoker.hcl"

// Config represents the complete game configuration. Every block is optional.
type Config struct {
	Physics *PhysicsConfig `hcl:"physics,block"`
	Table   *TableConfig   `hcl:"table,block"`
	Payouts *PayoutsConfig `hcl:"payouts,block"`
	Betting *BettingConfig `hcl:"betting,block"`
	Storage *StorageConfig `hcl:"storage,block"`
	UI      *UIConfig      `hcl:"ui,block"`
}

// PhysicsConfig tunes the roll simulation.
type PhysicsConfig struct {
	Gravity        float64  `hcl:"gravity,optional"`
	Bounce         float64  `hcl:"bounce,optional"`
	Friction       float64  `hcl:"friction,optional"`
	AirDrag        float64  `hcl:"air_drag,optional"`
	SpinDrag       float64  `hcl:"spin_drag,optional"`
	ImpactSpinDamp *float64 `hcl:"impact_spin_damp,optional"`
	RestEpsilon    float64  `hcl:"rest_epsilon,optional"`
	RestFrames     int      `hcl:"rest_frames,optional"`
	RestTolerance  *float64 `hcl:"rest_tolerance,optional"`
	TumbleChance   *float64 `hcl:"tumble_chance,optional"`
	LaunchVX       float64  `hcl:"launch_vx,optional"`
	LaunchVY       float64  `hcl:"launch_vy,optional"`
	LaunchSpin     float64  `hcl:"launch_spin,optional"`
	MaxStep        float64  `hcl:"max_step,optional"`
}

// TableConfig sizes the play area in pixels.
type TableConfig struct {
	Width   float64 `hcl:"width,optional"`
	FloorY  float64 `hcl:"floor_y,optional"`
	DieSize float64 `hcl:"die_size,optional"`
}

// PayoutsConfig sets the main wager multiplier per hand.
type PayoutsConfig struct {
	ThreeKind *int `hcl:"three_kind,optional"`
	Straight  *int `hcl:"straight,optional"`
	FullHouse *int `hcl:"full_house,optional"`
	FourKind  *int `hcl:"four_kind,optional"`
	FiveKind  *int `hcl:"five_kind,optional"`
}

// BettingConfig contains the wager and side bet terms.
type BettingConfig struct {
	StartingCredit    int     `hcl:"starting_credit,optional"`
	DefaultWager      int     `hcl:"default_wager,optional"`
	MinWager          int     `hcl:"min_wager,optional"`
	MaxWager          int     `hcl:"max_wager,optional"`
	WagerStep         int     `hcl:"wager_step,optional"`
	BigWagerStep      int     `hcl:"big_wager_step,optional"`
	SideBetRate       float64 `hcl:"side_bet_rate,optional"`
	SideBetMin        int     `hcl:"side_bet_min,optional"`
	OneRollMultiplier int     `hcl:"one_roll_multiplier,optional"`
	AllRedMultiplier  int     `hcl:"all_red_multiplier,optional"`
	RedFaces          []int   `hcl:"red_faces,optional"`
}

// StorageConfig names the files the game writes.
type StorageConfig struct {
	SaveFile   string `hcl:"save_file,optional"`
	LedgerFile string `hcl:"ledger_file,optional"`
}

// UIConfig contains terminal interface settings.
type UIConfig struct {
	FPS           int    `hcl:"fps,optional"`
	LogLevel      string `hcl:"log_level,optional"`
	LogFile       string `hcl:"log_file,optional"`
	ShowKeyLegend *bool  `hcl:"show_key_legend,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	p := dice.DefaultParams()
	t := dice.DefaultTable()
	r := round.DefaultRules()
	showLegend := true

	return &Config{
		Physics: &PhysicsConfig{
			Gravity:        p.Gravity,
			Bounce:         p.Bounce,
			Friction:       p.Friction,
			AirDrag:        p.AirDrag,
			SpinDrag:       p.SpinDrag,
			ImpactSpinDamp: &p.ImpactSpinDamp,
			RestEpsilon:    p.RestEpsilon,
			RestFrames:     p.RestFrames,
			RestTolerance:  &p.RestTolerance,
			TumbleChance:   &p.TumbleChance,
			LaunchVX:       p.LaunchVX,
			LaunchVY:       p.LaunchVY,
			LaunchSpin:     p.LaunchSpin,
			MaxStep:        p.MaxStep,
		},
		Table: &TableConfig{
			Width:   t.Width,
			FloorY:  t.FloorY,
			DieSize: t.DieSize,
		},
		Payouts: payoutsFrom(r.Payouts),
		Betting: &BettingConfig{
			StartingCredit:    250,
			DefaultWager:      10,
			MinWager:          r.MinWager,
			MaxWager:          r.MaxWager,
			WagerStep:         10,
			BigWagerStep:      100,
			SideBetRate:       r.SideBetRate,
			SideBetMin:        r.SideBetMin,
			OneRollMultiplier: r.OneRollMultiplier,
			AllRedMultiplier:  r.AllRedMultiplier,
			RedFaces:          r.RedFaces.Faces(),
		},
		Storage: &StorageConfig{
			SaveFile:   "dice_save.json",
			LedgerFile: "dicepoker.db",
		},
		UI: &UIConfig{
			FPS:           60,
			LogLevel:      "info",
			LogFile:       "dicepoker.log",
			ShowKeyLegend: &showLegend,
		},
	}
}

func payoutsFrom(p hand.Payouts) *PayoutsConfig {
	get := func(c hand.Category) *int {
		v := p[c]
		return &v
	}
	return &PayoutsConfig{
		ThreeKind: get(hand.ThreeKind),
		Straight:  get(hand.Straight),
		FullHouse: get(hand.FullHouse),
		FourKind:  get(hand.FourKind),
		FiveKind:  get(hand.FiveKind),
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills anything unset from the defaults.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults(Default())
	return &config, nil
}

func (c *Config) applyDefaults(d *Config) {
	if c.Physics == nil {
		c.Physics = d.Physics
	} else {
		orFloat(&c.Physics.Gravity, d.Physics.Gravity)
		orFloat(&c.Physics.Bounce, d.Physics.Bounce)
		orFloat(&c.Physics.Friction, d.Physics.Friction)
		orFloat(&c.Physics.AirDrag, d.Physics.AirDrag)
		orFloat(&c.Physics.SpinDrag, d.Physics.SpinDrag)
		orPtr(&c.Physics.ImpactSpinDamp, d.Physics.ImpactSpinDamp)
		orFloat(&c.Physics.RestEpsilon, d.Physics.RestEpsilon)
		orInt(&c.Physics.RestFrames, d.Physics.RestFrames)
		orPtr(&c.Physics.RestTolerance, d.Physics.RestTolerance)
		orPtr(&c.Physics.TumbleChance, d.Physics.TumbleChance)
		orFloat(&c.Physics.LaunchVX, d.Physics.LaunchVX)
		orFloat(&c.Physics.LaunchVY, d.Physics.LaunchVY)
		orFloat(&c.Physics.LaunchSpin, d.Physics.LaunchSpin)
		orFloat(&c.Physics.MaxStep, d.Physics.MaxStep)
	}

	if c.Table == nil {
		c.Table = d.Table
	} else {
		orFloat(&c.Table.Width, d.Table.Width)
		orFloat(&c.Table.FloorY, d.Table.FloorY)
		orFloat(&c.Table.DieSize, d.Table.DieSize)
	}

	if c.Payouts == nil {
		c.Payouts = d.Payouts
	} else {
		orPtr(&c.Payouts.ThreeKind, d.Payouts.ThreeKind)
		orPtr(&c.Payouts.Straight, d.Payouts.Straight)
		orPtr(&c.Payouts.FullHouse, d.Payouts.FullHouse)
		orPtr(&c.Payouts.FourKind, d.Payouts.FourKind)
		orPtr(&c.Payouts.FiveKind, d.Payouts.FiveKind)
	}

	if c.Betting == nil {
		c.Betting = d.Betting
	} else {
		b, db := c.Betting, d.Betting
		orInt(&b.StartingCredit, db.StartingCredit)
		orInt(&b.MinWager, db.MinWager)
		orInt(&b.MaxWager, db.MaxWager)
		if b.DefaultWager == 0 {
			b.DefaultWager = b.MinWager
		}
		orInt(&b.WagerStep, db.WagerStep)
		orInt(&b.BigWagerStep, db.BigWagerStep)
		orFloat(&b.SideBetRate, db.SideBetRate)
		orInt(&b.SideBetMin, db.SideBetMin)
		orInt(&b.OneRollMultiplier, db.OneRollMultiplier)
		orInt(&b.AllRedMultiplier, db.AllRedMultiplier)
		if len(b.RedFaces) == 0 {
			b.RedFaces = db.RedFaces
		}
	}

	if c.Storage == nil {
		c.Storage = d.Storage
	} else {
		orString(&c.Storage.SaveFile, d.Storage.SaveFile)
		orString(&c.Storage.LedgerFile, d.Storage.LedgerFile)
	}

	if c.UI == nil {
		c.UI = d.UI
	} else {
		orInt(&c.UI.FPS, d.UI.FPS)
		orString(&c.UI.LogLevel, d.UI.LogLevel)
		orString(&c.UI.LogFile, d.UI.LogFile)
		orPtr(&c.UI.ShowKeyLegend, d.UI.ShowKeyLegend)
	}
}

func orFloat(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

func orInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func orString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

func orPtr[T any](v **T, def *T) {
	if *v == nil {
		*v = def
	}
}

// Params converts the physics block.
func (c *Config) Params() dice.Params {
	p := c.Physics
	return dice.Params{
		Gravity:        p.Gravity,
		Bounce:         p.Bounce,
		Friction:       p.Friction,
		AirDrag:        p.AirDrag,
		SpinDrag:       p.SpinDrag,
		ImpactSpinDamp: *p.ImpactSpinDamp,
		RestEpsilon:    p.RestEpsilon,
		RestFrames:     p.RestFrames,
		RestTolerance:  *p.RestTolerance,
		TumbleChance:   *p.TumbleChance,
		LaunchVX:       p.LaunchVX,
		LaunchVY:       p.LaunchVY,
		LaunchSpin:     p.LaunchSpin,
		MaxStep:        p.MaxStep,
	}
}

func (c *Config) TableGeometry() dice.Table {
	return dice.Table{
		Width:   c.Table.Width,
		FloorY:  c.Table.FloorY,
		DieSize: c.Table.DieSize,
	}
}

// Rules converts the payouts and betting blocks. Invalid red faces are
// dropped here and reported by Validate.
func (c *Config) Rules() round.Rules {
	b := c.Betting
	return round.Rules{
		Payouts: hand.Payouts{
			hand.ThreeKind: *c.Payouts.ThreeKind,
			hand.Straight:  *c.Payouts.Straight,
			hand.FullHouse: *c.Payouts.FullHouse,
			hand.FourKind:  *c.Payouts.FourKind,
			hand.FiveKind:  *c.Payouts.FiveKind,
		},
		MinWager:          b.MinWager,
		MaxWager:          b.MaxWager,
		SideBetRate:       b.SideBetRate,
		SideBetMin:        b.SideBetMin,
		OneRollMultiplier: b.OneRollMultiplier,
		AllRedMultiplier:  b.AllRedMultiplier,
		RedFaces:          hand.NewFaceSet(b.RedFaces...),
	}
}

// Options returns the round options for this configuration.
func (c *Config) Options() []round.Option {
	return []round.Option{
		round.WithRules(c.Rules()),
		round.WithParams(c.Params()),
		round.WithTable(c.TableGeometry()),
	}
}

// ShowKeyLegend is the configured default for the key legend setting.
func (c *Config) ShowKeyLegend() bool {
	return c.UI.ShowKeyLegend == nil || *c.UI.ShowKeyLegend
}

// Validate validates the configuration. It expects defaults to have been
// applied, as Load and Parse do.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("physics: %w", err)
	}
	if err := c.TableGeometry().Validate(); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if _, err := hand.ParseFaceSet(c.Betting.RedFaces); err != nil {
		return fmt.Errorf("betting: red_faces: %w", err)
	}
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("betting: %w", err)
	}

	b := c.Betting
	if b.StartingCredit < 0 {
		return fmt.Errorf("betting: starting credit cannot be negative")
	}
	if b.DefaultWager < b.MinWager || b.DefaultWager > b.MaxWager {
		return fmt.Errorf("betting: default wager %d is outside %d..%d", b.DefaultWager, b.MinWager, b.MaxWager)
	}
	if b.WagerStep <= 0 || b.BigWagerStep <= 0 {
		return fmt.Errorf("betting: wager steps must be positive")
	}

	if c.UI.FPS < 1 || c.UI.FPS > 240 {
		return fmt.Errorf("ui: fps must be between 1 and 240, got %d", c.UI.FPS)
	}
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("ui: invalid log level: %s", c.UI.LogLevel)
	}
	return nil
}

