// Package runner drives a round machine in real time from a clock ticker.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/dicepoker/internal/round"
	"github.com/lox/dicepoker/internal/simulator"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

var errDone = errors.New("runner: done")

// Config controls the frame loop.
type Config struct {
	FPS    int
	Rounds int // stop after this many rounds; 0 runs until cancelled
}

// Runner ticks a machine once per frame and lets a player act before each
// tick, the same order the simulator uses.
type Runner struct {
	clock    quartz.Clock
	machine  *round.Machine
	player   simulator.Player
	interval time.Duration
	step     float64
	rounds   int
	logger   *log.Logger

	played    int
	lastRound int
	frames    int
}

func New(clock quartz.Clock, machine *round.Machine, player simulator.Player, cfg Config, logger *log.Logger) *Runner {
	fps := cfg.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Runner{
		clock:    clock,
		machine:  machine,
		player:   player,
		interval: time.Second / time.Duration(fps),
		step:     1 / float64(fps),
		rounds:   cfg.Rounds,
		logger:   logger.WithPrefix("runner"),
	}
}

// Waiter waits for a started runner to stop.
type Waiter struct {
	w quartz.Waiter
}

// Wait blocks until the runner has played its rounds, the context is
// cancelled, or a frame fails. Finishing the configured rounds is not an error.
func (w Waiter) Wait() error {
	if err := w.w.Wait(); err != nil && !errors.Is(err, errDone) {
		return err
	}
	return nil
}

// Start registers the frame ticker and returns immediately.
func (r *Runner) Start(ctx context.Context) Waiter {
	r.logger.Debug("Starting frame loop", "interval", r.interval, "rounds", r.rounds)
	return Waiter{w: r.clock.TickerFunc(ctx, r.interval, r.frame, "runner")}
}

// Run starts the runner and waits for it to stop.
func (r *Runner) Run(ctx context.Context) error {
	return r.Start(ctx).Wait()
}

// Played returns the number of rounds completed so far.
func (r *Runner) Played() int { return r.played }

func (r *Runner) frame() error {
	r.frames++
	if err := r.player.Act(r.machine); err != nil {
		if errors.Is(err, round.ErrInsufficientCredit) {
			r.logger.Info("Out of credit", "rounds", r.played, "credit", r.machine.Credit())
		}
		return fmt.Errorf("frame %d: %w", r.frames, err)
	}
	r.machine.Tick(r.step)

	if r.machine.Phase() == round.Finished && r.machine.Round() != r.lastRound {
		r.lastRound = r.machine.Round()
		r.played++
		if res := r.machine.LastResult(); res != nil {
			r.logger.Info("Round played", "round", res.Round, "hand", res.FinalHand.Category,
				"net", res.Net(), "credit", res.Credit, "frames", r.frames)
		}
		if r.rounds > 0 && r.played >= r.rounds {
			return errDone
		}
	}
	return nil
}
