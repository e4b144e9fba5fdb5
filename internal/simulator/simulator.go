// Package simulator plays rounds headless at a fixed time step.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/dicepoker/internal/hand"
	"github.com/lox/dicepoker/internal/randutil"
	"github.com/lox/dicepoker/internal/round"
	"github.com/lox/dicepoker/internal/statistics"
)

const (
	// DefaultStep is one 60 Hz frame.
	DefaultStep = 1.0 / 60
	// DefaultTickLimit bounds the frames a single round may take.
	DefaultTickLimit = 60 * 60
	// DefaultCredit is large enough that a session never runs dry at the
	// default wager.
	DefaultCredit = 1_000_000
)

// ErrRoundStalled is returned when a round does not finish within the tick limit.
var ErrRoundStalled = errors.New("simulator: round did not finish")

// Config holds configuration for running simulations.
type Config struct {
	Rounds      int // total across all sessions
	Sessions    int
	Parallelism int // concurrent sessions; 0 means one per session
	Seed        int64
	Wager       int
	OneRoll     bool
	AllRed      bool
	Credit      int
	Strategy    Strategy
	Step        float64
	TickLimit   int
	Options     []round.Option
	Logger      *log.Logger
}

func (c *Config) applyDefaults() {
	if c.Sessions <= 0 {
		c.Sessions = 1
	}
	if c.Strategy == nil {
		c.Strategy = Pairs{}
	}
	if c.Step <= 0 {
		c.Step = DefaultStep
	}
	if c.TickLimit <= 0 {
		c.TickLimit = DefaultTickLimit
	}
	if c.Credit <= 0 {
		c.Credit = DefaultCredit
	}
	if c.Wager <= 0 {
		c.Wager = round.DefaultRules().MinWager
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
}

// SessionResult describes one independent session.
type SessionResult struct {
	Seed   int64
	Rounds int
	Credit int
	Busted bool // stopped early for lack of credit
}

// Report is the outcome of a simulation run.
type Report struct {
	Strategy string
	Stats    *statistics.Statistics
	Sessions []SessionResult
}

// Run plays cfg.Rounds rounds split across cfg.Sessions independent
// sessions. Session i is seeded with cfg.Seed+i, and results are merged in
// session order so a seed always yields the same report.
func Run(ctx context.Context, cfg Config) (Report, error) {
	cfg.applyDefaults()
	if cfg.Rounds <= 0 {
		return Report{}, fmt.Errorf("rounds must be positive, got %d", cfg.Rounds)
	}

	perSession := cfg.Rounds / cfg.Sessions
	remainder := cfg.Rounds % cfg.Sessions

	stats := make([]*statistics.Statistics, cfg.Sessions)
	sessions := make([]SessionResult, cfg.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Parallelism > 0 {
		g.SetLimit(cfg.Parallelism)
	}
	for i := range cfg.Sessions {
		rounds := perSession
		if i < remainder {
			rounds++
		}
		seed := cfg.Seed + int64(i)

		g.Go(func() error {
			s := newSession(cfg, i, seed)
			st, res, err := s.play(ctx, rounds)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i, seed, err)
			}
			stats[i], sessions[i] = st, res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	total := statistics.New()
	for _, st := range stats {
		total.Merge(st)
	}
	if total.Rounds > 0 {
		if err := total.Validate(); err != nil {
			return Report{}, fmt.Errorf("statistics validation failed: %w", err)
		}
	}

	return Report{
		Strategy: cfg.Strategy.Name(),
		Stats:    total,
		Sessions: sessions,
	}, nil
}

type session struct {
	seed      int64
	machine   *round.Machine
	player    Player
	step      float64
	tickLimit int
	logger    *log.Logger
}

func newSession(cfg Config, index int, seed int64) *session {
	logger := cfg.Logger.With("session", index)
	return &session{
		seed:    seed,
		machine: round.New(logger, randutil.New(seed), cfg.Credit, cfg.Options...),
		player: Player{
			Strategy: cfg.Strategy,
			Wager:    cfg.Wager,
			OneRoll:  cfg.OneRoll,
			AllRed:   cfg.AllRed,
		},
		step:      cfg.Step,
		tickLimit: cfg.TickLimit,
		logger:    logger,
	}
}

func (s *session) play(ctx context.Context, rounds int) (*statistics.Statistics, SessionResult, error) {
	stats := statistics.New()
	res := SessionResult{Seed: s.seed}

	for range rounds {
		if err := ctx.Err(); err != nil {
			return nil, res, err
		}
		r, err := s.playRound()
		if errors.Is(err, round.ErrInsufficientCredit) {
			s.logger.Info("Session out of credit", "rounds", res.Rounds, "credit", s.machine.Credit())
			res.Busted = true
			break
		}
		if err != nil {
			return nil, res, err
		}
		stats.Add(r)
		res.Rounds++
	}
	res.Credit = s.machine.Credit()
	return stats, res, nil
}

// playRound drives the machine until the next round is finished.
func (s *session) playRound() (round.Result, error) {
	start := s.machine.Round()
	for range s.tickLimit {
		if s.machine.Phase() == round.Finished && s.machine.Round() > start {
			return *s.machine.LastResult(), nil
		}
		if err := s.player.Act(s.machine); err != nil {
			return round.Result{}, err
		}
		s.machine.Tick(s.step)
	}
	return round.Result{}, fmt.Errorf("%w: round %d still %s after %d ticks",
		ErrRoundStalled, start+1, s.machine.Phase(), s.tickLimit)
}

// WriteSummary prints a summary of the report.
func WriteSummary(w io.Writer, r Report) {
	stats := r.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS (%s strategy) ===\n", r.Strategy)
	fmt.Fprintf(w, "Rounds played: %d over %d session(s)\n", stats.Rounds, len(r.Sessions))
	for i, s := range r.Sessions {
		if s.Busted {
			fmt.Fprintf(w, "Session %d (seed %d) ran out of credit after %d rounds\n", i, s.Seed, s.Rounds)
		}
	}

	fmt.Fprintf(w, "\n=== NET PER ROUND (in wagers) ===\n")
	fmt.Fprintf(w, "Mean: %.4f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== RETURN ===\n")
	fmt.Fprintf(w, "Staked: %d, returned: %d, RTP: %.2f%%\n", stats.Staked, stats.Returned, stats.RTP()*100)
	fmt.Fprintf(w, "Main bet: %d, one-roll: %d, all-red: %d\n",
		stats.MainReturned, stats.OneRollReturned, stats.AllRedReturned)
	fmt.Fprintf(w, "Winning rounds: %d (%.1f%%), best payout %d\n",
		stats.Wins, pct(stats.Wins, stats.Rounds), stats.MaxPayout)
	if stats.OneRollBets > 0 {
		fmt.Fprintf(w, "One-roll hits: %d/%d (%.1f%%)\n",
			stats.OneRollHits, stats.OneRollBets, pct(stats.OneRollHits, stats.OneRollBets))
	}
	if stats.AllRedBets > 0 {
		fmt.Fprintf(w, "All-red hits: %d/%d (%.1f%%)\n",
			stats.AllRedHits, stats.AllRedBets, pct(stats.AllRedHits, stats.AllRedBets))
	}

	fmt.Fprintf(w, "\n=== HANDS ===\n")
	fmt.Fprintf(w, "%-12s %8s %8s\n", "hand", "opening", "final")
	for _, c := range append([]hand.Category{hand.None}, hand.Categories...) {
		fmt.Fprintf(w, "%-12s %7.2f%% %7.2f%%\n", c,
			pct(stats.Openings[c], stats.Rounds), stats.CategoryRate(c)*100)
	}
	fmt.Fprintf(w, "\nSimulated rolling time: %s\n", stats.Elapsed)
}

func pct(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of) * 100
}
