package simulator

import (
	"fmt"

	"github.com/lox/dicepoker/internal/round"
)

// Player makes the decisions a person would make at the table. Act is called
// once per frame before the machine is ticked, so a headless run and a
// real-time run with the same step and seed play identical rounds.
type Player struct {
	Strategy Strategy
	Wager    int
	OneRoll  bool
	AllRed   bool
}

// Act starts a round when one can be started and applies the hold strategy
// once the opening hand is known. Other phases need nothing from the player.
func (p Player) Act(m *round.Machine) error {
	switch m.Phase() {
	case round.Betting, round.Finished:
		return m.RequestStart(p.Wager, p.OneRoll, p.AllRed)
	case round.Hold:
		opening := m.OpeningHand()
		if opening == nil {
			return fmt.Errorf("%w: no opening hand in hold phase", round.ErrInvalidTransition)
		}
		for _, i := range p.Strategy.Hold(m.Faces(), *opening) {
			if err := m.ToggleHold(i); err != nil {
				return err
			}
		}
		return m.RequestReroll()
	}
	return nil
}
