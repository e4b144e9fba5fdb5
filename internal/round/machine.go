// Package round runs a dice-poker round: two physical rolls with a hold step
// between them, scored against the payout table and two side bets.
package round

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/dicepoker/internal/dice"
	"github.com/lox/dicepoker/internal/hand"
	"github.com/lox/dicepoker/internal/randutil"
)

const (
	// HoldSlideDuration is how long a die takes to move in or out of its slot.
	HoldSlideDuration = 0.22
	// PresentSlideDuration is how long the final dice take to reach the slots.
	PresentSlideDuration = 0.26
)

// Option configures a Machine during creation.
type Option func(*machineConfig)

type machineConfig struct {
	rules   Rules
	params  dice.Params
	table   dice.Table
	monitor Monitor
}

func WithRules(rules Rules) Option {
	return func(c *machineConfig) { c.rules = rules }
}

func WithParams(params dice.Params) Option {
	return func(c *machineConfig) { c.params = params }
}

func WithTable(table dice.Table) Option {
	return func(c *machineConfig) { c.table = table }
}

// WithMonitor attaches monitors. Repeated calls accumulate.
func WithMonitor(monitors ...Monitor) Option {
	return func(c *machineConfig) {
		c.monitor = NewMultiMonitor(append([]Monitor{c.monitor}, monitors...)...)
	}
}

// Machine owns the five dice, the credit balance and the round phase. It is
// not safe for concurrent use; one goroutine drives it frame by frame.
type Machine struct {
	logger  *log.Logger
	rules   Rules
	engine  *dice.Engine
	eval    *hand.Evaluator
	layout  Layout
	monitor Monitor

	dice     [hand.Size]*dice.Die
	heldFrom [hand.Size]dice.Vec2

	phase  Phase
	credit int
	round  int
	clock  time.Duration // simulated time in the current round

	wager        int
	oneRollStake int
	allRedStake  int

	openingFaces  hand.Faces
	opening       *hand.Hand
	oneRollPayout int

	last *Result
}

// New creates a machine in the betting phase with the given balance. The rng
// is the only source of randomness, so a seed and a sequence of requests and
// frame deltas replays a session exactly.
func New(logger *log.Logger, rng randutil.Source, credit int, opts ...Option) *Machine {
	cfg := machineConfig{
		rules:  DefaultRules(),
		params: dice.DefaultParams(),
		table:  dice.DefaultTable(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.monitor == nil {
		cfg.monitor = NullMonitor{}
	}

	m := &Machine{
		logger:  logger.WithPrefix("round"),
		rules:   cfg.rules,
		engine:  dice.NewEngine(cfg.params, cfg.table, rng),
		eval:    hand.NewEvaluator(cfg.rules.Payouts),
		layout:  NewLayout(cfg.table),
		monitor: cfg.monitor,
		phase:   Betting,
		credit:  credit,
	}
	for i := range m.dice {
		m.dice[i] = dice.NewDie(i, m.layout.Home[i], i+1)
	}
	return m
}

func (m *Machine) Phase() Phase { return m.phase }

func (m *Machine) Credit() int { return m.credit }

func (m *Machine) Rules() Rules { return m.rules }

func (m *Machine) Layout() Layout { return m.layout }

func (m *Machine) Table() dice.Table { return m.engine.Table() }

// Round is the number of rounds started so far.
func (m *Machine) Round() int { return m.round }

// SideBetStake is the cost of one side bet on the given wager.
func (m *Machine) SideBetStake(wager int) int { return m.rules.SideBetStake(wager) }

// OpeningHand is the hand of the first roll of the current round, or nil
// before it has settled.
func (m *Machine) OpeningHand() *hand.Hand {
	if m.opening == nil {
		return nil
	}
	h := *m.opening
	return &h
}

// LastResult is the most recently completed round, or nil.
func (m *Machine) LastResult() *Result {
	if m.last == nil {
		return nil
	}
	r := *m.last
	return &r
}

// Faces returns the current face of every die.
func (m *Machine) Faces() hand.Faces {
	var f hand.Faces
	for i, d := range m.dice {
		f[i] = d.Face
	}
	return f
}

// RequestStart begins a round from betting or finished. The wager and the
// stake of every enabled side bet are deducted up front; on any error nothing
// changes.
func (m *Machine) RequestStart(wager int, oneRoll, allRed bool) error {
	if !m.phase.CanStart() {
		return fmt.Errorf("%w: cannot start a round while %s", ErrInvalidTransition, m.phase)
	}
	stake := m.rules.SideBetStake(wager)
	var oneRollStake, allRedStake int
	if oneRoll {
		oneRollStake = stake
	}
	if allRed {
		allRedStake = stake
	}
	total := wager + oneRollStake + allRedStake
	if total > m.credit {
		return fmt.Errorf("%w: round costs %d, balance is %d", ErrInsufficientCredit, total, m.credit)
	}
	if wager < m.rules.MinWager || wager > m.rules.MaxWager {
		return fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidWager, wager, m.rules.MinWager, m.rules.MaxWager)
	}

	m.credit -= total
	m.round++
	m.clock = 0
	m.wager = wager
	m.oneRollStake = oneRollStake
	m.allRedStake = allRedStake
	m.opening = nil
	m.oneRollPayout = 0
	m.last = nil

	for i, d := range m.dice {
		d.Hold = false
		m.engine.Launch(d, m.layout.Launch[i])
	}
	m.setPhase(Rolling1)

	m.logger.Debug("Round started", "round", m.round, "wager", wager,
		"oneRoll", oneRollStake, "allRed", allRedStake, "credit", m.credit)
	m.monitor.OnRoundStart(m.round, wager, m.credit)
	return nil
}

// ToggleHold flips the hold flag of die i and slides it into its slot or
// back to where it was held from. It is ignored while that die is sliding.
func (m *Machine) ToggleHold(i int) error {
	if m.phase != Hold {
		return fmt.Errorf("%w: cannot hold while %s", ErrInvalidTransition, m.phase)
	}
	if i < 0 || i >= hand.Size {
		return fmt.Errorf("%w: %d", ErrNoSuchDie, i)
	}
	d := m.dice[i]
	if d.Tweening() {
		return fmt.Errorf("%w: die %d", ErrDieBusy, i)
	}

	d.Hold = !d.Hold
	if d.Hold {
		m.heldFrom[i] = d.Pos
		d.SlideTo(m.layout.Slots[i], HoldSlideDuration, dice.Parked)
	} else {
		d.SlideTo(m.heldFrom[i], HoldSlideDuration, dice.Free)
	}
	m.logger.Debug("Hold toggled", "die", i, "hold", d.Hold)
	return nil
}

// RequestReroll throws every die that is not held. Held dice keep their face
// and are parked, or finish their slide into the slot first.
func (m *Machine) RequestReroll() error {
	if m.phase != Hold {
		return fmt.Errorf("%w: cannot reroll while %s", ErrInvalidTransition, m.phase)
	}
	for i, d := range m.dice {
		if d.Hold {
			m.engine.Freeze(d)
			if !d.Tweening() {
				d.Park()
			}
			continue
		}
		m.engine.Launch(d, m.layout.Launch[i])
	}
	m.setPhase(Rolling2)
	return nil
}

// Tick advances the dice and the round by dt seconds. Non-positive deltas are
// ignored and long frames are capped to the physics step.
func (m *Machine) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	dt = min(dt, m.engine.Params().MaxStep)

	switch m.phase {
	case Rolling1, Rolling2:
		m.clock += time.Duration(dt * float64(time.Second))
		for _, d := range m.dice {
			m.engine.Advance(d, dt)
		}
		m.engine.Collide(m.dice[:])
		if m.allRevealed() {
			if m.phase == Rolling1 {
				m.resolveOpening()
			} else {
				m.resolveFinal()
			}
		}
	case Presenting:
		m.advanceSlides(dt)
		if !m.anySliding() {
			m.setPhase(Finished)
		}
	default:
		m.advanceSlides(dt)
	}
}

func (m *Machine) resolveOpening() {
	faces := m.Faces()
	h := m.eval.Evaluate(faces)
	m.openingFaces = faces
	m.opening = &h
	if m.oneRollStake > 0 && h.Wins() {
		m.oneRollPayout = m.oneRollStake * m.rules.OneRollMultiplier
		m.credit += m.oneRollPayout
	}
	m.logger.Debug("Opening hand", "round", m.round, "faces", faces.String(),
		"hand", h.Category, "oneRollPayout", m.oneRollPayout)
	m.monitor.OnOpeningHand(m.round, faces, h, m.oneRollPayout)
	m.setPhase(Hold)
}

func (m *Machine) resolveFinal() {
	faces := m.Faces()
	h := m.eval.Evaluate(faces)

	r := Result{
		Round:         m.round,
		Wager:         m.wager,
		OneRollStake:  m.oneRollStake,
		AllRedStake:   m.allRedStake,
		OpeningFaces:  m.openingFaces,
		OneRollPayout: m.oneRollPayout,
		FinalFaces:    faces,
		FinalHand:     h,
		AllRed:        m.rules.RedFaces.All(faces),
		Elapsed:       m.clock,
	}
	if m.opening != nil {
		r.OpeningHand = *m.opening
	}
	if h.Wins() {
		r.Payout = m.wager * h.Multiplier
		m.credit += r.Payout
	}
	if m.allRedStake > 0 && r.AllRed {
		r.AllRedPayout = m.allRedStake * m.rules.AllRedMultiplier
		m.credit += r.AllRedPayout
	}
	r.Credit = m.credit
	m.last = &r

	m.logger.Info("Round complete", "round", r.Round, "faces", faces.String(),
		"hand", h.Category, "payout", r.Payout, "allRedPayout", r.AllRedPayout,
		"net", r.Net(), "credit", r.Credit)
	m.monitor.OnRoundComplete(r)

	for i, d := range m.dice {
		d.SlideTo(m.layout.Slots[i], PresentSlideDuration, dice.Parked)
	}
	m.setPhase(Presenting)
}

func (m *Machine) advanceSlides(dt float64) {
	for _, d := range m.dice {
		if d.Tweening() {
			m.engine.Advance(d, dt)
		}
	}
}

func (m *Machine) allRevealed() bool {
	for _, d := range m.dice {
		if !d.Revealed {
			return false
		}
	}
	return true
}

func (m *Machine) anySliding() bool {
	for _, d := range m.dice {
		if d.Tweening() {
			return true
		}
	}
	return false
}

func (m *Machine) setPhase(p Phase) {
	if p == m.phase {
		return
	}
	m.logger.Debug("Phase change", "from", m.phase, "to", p, "round", m.round)
	m.phase = p
}
