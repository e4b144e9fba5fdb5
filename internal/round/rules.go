package round

import (
	"fmt"
	"math"

	"github.com/lox/dicepoker/internal/hand"
)

// Rules are the betting terms of a round.
type Rules struct {
	Payouts hand.Payouts

	MinWager int
	MaxWager int

	// SideBetRate and SideBetMin price each side bet as
	// max(SideBetMin, ceil(wager*SideBetRate)).
	SideBetRate float64
	SideBetMin  int

	OneRollMultiplier int
	AllRedMultiplier  int
	RedFaces          hand.FaceSet
}

func DefaultRules() Rules {
	return Rules{
		Payouts:           hand.DefaultPayouts(),
		MinWager:          10,
		MaxWager:          9999,
		SideBetRate:       0.10,
		SideBetMin:        5,
		OneRollMultiplier: 5,
		AllRedMultiplier:  15,
		RedFaces:          hand.DefaultRed,
	}
}

// SideBetStake is the cost of one side bet on the given wager.
func (r Rules) SideBetStake(wager int) int {
	return max(r.SideBetMin, int(math.Ceil(float64(wager)*r.SideBetRate)))
}

func (r Rules) Validate() error {
	if err := r.Payouts.Validate(); err != nil {
		return err
	}
	if r.MinWager < 1 {
		return fmt.Errorf("minimum wager must be at least 1, got %d", r.MinWager)
	}
	if r.MaxWager < r.MinWager {
		return fmt.Errorf("maximum wager %d is below minimum %d", r.MaxWager, r.MinWager)
	}
	if r.SideBetRate < 0 {
		return fmt.Errorf("side bet rate cannot be negative, got %v", r.SideBetRate)
	}
	if r.SideBetMin < 0 {
		return fmt.Errorf("side bet minimum cannot be negative, got %d", r.SideBetMin)
	}
	if r.OneRollMultiplier < 0 || r.AllRedMultiplier < 0 {
		return fmt.Errorf("side bet multipliers cannot be negative")
	}
	if r.RedFaces == 0 {
		return fmt.Errorf("red faces cannot be empty")
	}
	return nil
}
