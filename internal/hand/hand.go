// Package hand scores five dice faces against the dice-poker payout table.
package hand

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Size is the number of dice in a hand.
const Size = 5

// Faces is one face value (1..6) per die.
type Faces [Size]int

func (f Faces) String() string {
	parts := make([]string, len(f))
	for i, v := range f {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

// Category is the scored combination of a hand.
type Category string

const (
	None      Category = "none"
	ThreeKind Category = "three_kind"
	Straight  Category = "straight"
	FullHouse Category = "full_house"
	FourKind  Category = "four_kind"
	FiveKind  Category = "five_kind"
)

// Categories lists the paying categories from lowest to highest.
var Categories = []Category{ThreeKind, Straight, FullHouse, FourKind, FiveKind}

// Label is the category for display, e.g. "full house".
func (c Category) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

// Hand is a category with the multiplier it pays on the main wager.
type Hand struct {
	Category   Category `json:"category"`
	Multiplier int      `json:"multiplier"`
}

func (h Hand) Wins() bool { return h.Multiplier > 0 }

// Classify ranks five faces. Priority: five of a kind, four of a kind, full
// house, straight (1-5 or 2-6), three of a kind. Faces outside 1..6 make the
// hand None.
func Classify(faces Faces) Category {
	var counts [7]int
	for _, f := range faces {
		if f < 1 || f > 6 {
			return None
		}
		counts[f]++
	}

	groups := make([]int, 0, Size)
	for _, c := range counts[1:] {
		if c > 0 {
			groups = append(groups, c)
		}
	}
	slices.SortFunc(groups, func(a, b int) int { return b - a })

	switch {
	case groups[0] == 5:
		return FiveKind
	case groups[0] == 4:
		return FourKind
	case groups[0] == 3 && groups[1] == 2:
		return FullHouse
	case len(groups) == Size && (counts[1] == 0 || counts[6] == 0):
		// Five distinct faces from six values miss exactly one; a straight
		// misses either end.
		return Straight
	case groups[0] == 3:
		return ThreeKind
	}
	return None
}

// Payouts maps categories to their multiplier on the main wager.
type Payouts map[Category]int

func DefaultPayouts() Payouts {
	return Payouts{
		ThreeKind: 1,
		Straight:  3,
		FullHouse: 5,
		FourKind:  7,
		FiveKind:  10,
	}
}

func (p Payouts) Validate() error {
	for c, m := range p {
		if !slices.Contains(Categories, c) {
			return fmt.Errorf("unknown hand category %q", c)
		}
		if m < 0 {
			return fmt.Errorf("payout for %s cannot be negative, got %d", c, m)
		}
	}
	return nil
}

// Evaluator scores hands against a payout table.
type Evaluator struct {
	payouts Payouts
}

func NewEvaluator(payouts Payouts) *Evaluator {
	return &Evaluator{payouts: maps.Clone(payouts)}
}

// Evaluate classifies faces and looks up the multiplier. None always pays 0.
func (e *Evaluator) Evaluate(faces Faces) Hand {
	c := Classify(faces)
	if c == None {
		return Hand{Category: None}
	}
	return Hand{Category: c, Multiplier: e.payouts[c]}
}

func (e *Evaluator) Payouts() Payouts { return maps.Clone(e.payouts) }
