// Package statistics accumulates outcome statistics over many rounds.
package statistics

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/lox/dicepoker/internal/hand"
	"github.com/lox/dicepoker/internal/round"
)

// Statistics tracks round outcomes. Per-round values are net results in
// units of the main wager, so sessions with different wagers are comparable.
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // sum of squares for the variance
	Values  []float64 // every per-round value, for median and percentiles

	// Credit accounting across all bets.
	Staked          int
	Returned        int
	MainReturned    int
	OneRollReturned int
	AllRedReturned  int

	Wins       int // rounds whose final hand paid
	MaxPayout  int
	Categories map[hand.Category]int
	Openings   map[hand.Category]int

	OneRollBets int
	OneRollHits int
	AllRedBets  int
	AllRedHits  int

	Elapsed time.Duration // simulated rolling time
}

func New() *Statistics {
	return &Statistics{
		Categories: map[hand.Category]int{},
		Openings:   map[hand.Category]int{},
	}
}

// Add incorporates one completed round.
func (s *Statistics) Add(r round.Result) {
	if s.Categories == nil {
		s.Categories = map[hand.Category]int{}
	}
	if s.Openings == nil {
		s.Openings = map[hand.Category]int{}
	}

	v := 0.0
	if r.Wager > 0 {
		v = float64(r.Net()) / float64(r.Wager)
	}
	s.Rounds++
	s.SumNet += v
	s.SumNet2 += v * v
	s.Values = append(s.Values, v)

	s.Staked += r.Staked()
	s.Returned += r.Returned()
	s.MainReturned += r.Payout
	s.OneRollReturned += r.OneRollPayout
	s.AllRedReturned += r.AllRedPayout

	if r.FinalHand.Wins() {
		s.Wins++
	}
	s.MaxPayout = max(s.MaxPayout, r.Payout)
	s.Categories[r.FinalHand.Category]++
	s.Openings[r.OpeningHand.Category]++

	if r.OneRollStake > 0 {
		s.OneRollBets++
		if r.OneRollPayout > 0 {
			s.OneRollHits++
		}
	}
	if r.AllRedStake > 0 {
		s.AllRedBets++
		if r.AllRedPayout > 0 {
			s.AllRedHits++
		}
	}
	s.Elapsed += r.Elapsed
}

// Merge folds other into s. Values are appended in other's order.
func (s *Statistics) Merge(other *Statistics) {
	if s.Categories == nil {
		s.Categories = map[hand.Category]int{}
	}
	if s.Openings == nil {
		s.Openings = map[hand.Category]int{}
	}
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Staked += other.Staked
	s.Returned += other.Returned
	s.MainReturned += other.MainReturned
	s.OneRollReturned += other.OneRollReturned
	s.AllRedReturned += other.AllRedReturned
	s.Wins += other.Wins
	s.MaxPayout = max(s.MaxPayout, other.MaxPayout)
	for c, n := range other.Categories {
		s.Categories[c] += n
	}
	for c, n := range other.Openings {
		s.Openings[c] += n
	}
	s.OneRollBets += other.OneRollBets
	s.OneRollHits += other.OneRollHits
	s.AllRedBets += other.AllRedBets
	s.AllRedHits += other.AllRedHits
	s.Elapsed += other.Elapsed
}

// Mean returns the mean net result per round in wagers.
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(s.Variance(), 0))
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median per-round value.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at p in [0, 1], interpolating between ranks.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// RTP is the return to player: credit returned per credit staked.
func (s *Statistics) RTP() float64 {
	if s.Staked == 0 {
		return 0
	}
	return float64(s.Returned) / float64(s.Staked)
}

// CategoryRate returns the share of rounds whose final hand was c.
func (s *Statistics) CategoryRate(c hand.Category) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Categories[c]) / float64(s.Rounds)
}

// IsLedgerBalanced checks that the per-bet returns add up to the total.
func (s *Statistics) IsLedgerBalanced() bool {
	return s.Returned == s.MainReturned+s.OneRollReturned+s.AllRedReturned
}

// Validate checks the internal consistency of the counters.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: returned=%d, main=%d, oneRoll=%d, allRed=%d",
			s.Returned, s.MainReturned, s.OneRollReturned, s.AllRedReturned)
	}
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)", len(s.Values), s.Rounds)
	}
	if s.Wins > s.Rounds {
		return fmt.Errorf("wins (%d) exceed rounds (%d)", s.Wins, s.Rounds)
	}
	total := 0
	for _, n := range s.Categories {
		total += n
	}
	if total != s.Rounds {
		return fmt.Errorf("category total (%d) does not match rounds (%d)", total, s.Rounds)
	}
	if s.OneRollHits > s.OneRollBets || s.AllRedHits > s.AllRedBets {
		return fmt.Errorf("side bet hits exceed bets placed")
	}
	return nil
}
