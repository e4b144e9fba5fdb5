package simulator

import (
	"fmt"
	"slices"

	"github.com/lox/dicepoker/internal/hand"
)

// Strategy decides which dice to hold after the opening roll.
type Strategy interface {
	Name() string
	// Hold returns the indices of the dice to keep.
	Hold(faces hand.Faces, opening hand.Hand) []int
}

// Pairs keeps made straights and full houses, and otherwise holds every die
// whose face appears more than once.
type Pairs struct{}

func (Pairs) Name() string { return "pairs" }

func (Pairs) Hold(faces hand.Faces, opening hand.Hand) []int {
	switch opening.Category {
	case hand.Straight, hand.FullHouse, hand.FiveKind:
		return []int{0, 1, 2, 3, 4}
	}

	var counts [7]int
	for _, f := range faces {
		counts[f]++
	}
	var held []int
	for i, f := range faces {
		if counts[f] >= 2 {
			held = append(held, i)
		}
	}
	return held
}

// None rerolls every die.
type None struct{}

func (None) Name() string                     { return "none" }
func (None) Hold(hand.Faces, hand.Hand) []int { return nil }

// All stands on the opening hand.
type All struct{}

func (All) Name() string                     { return "all" }
func (All) Hold(hand.Faces, hand.Hand) []int { return []int{0, 1, 2, 3, 4} }

var strategies = []Strategy{Pairs{}, None{}, All{}}

// StrategyNames lists the strategies ParseStrategy accepts.
func StrategyNames() []string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.Name()
	}
	return names
}

// ParseStrategy looks a strategy up by name.
func ParseStrategy(name string) (Strategy, error) {
	i := slices.IndexFunc(strategies, func(s Strategy) bool { return s.Name() == name })
	if i < 0 {
		return nil, fmt.Errorf("unknown strategy %q (want one of %v)", name, StrategyNames())
	}
	return strategies[i], nil
}
