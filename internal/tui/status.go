package tui

import (
	"errors"
	"fmt"

	"github.com/lox/dicepoker/internal/round"
)

// Status returns the status line and the sticky result line for a snapshot.
// The result line is only set once the final hand is known.
func Status(s round.Snapshot) (status, result string) {
	switch s.Phase {
	case round.Rolling1:
		status = "Rolling..."
	case round.Hold:
		status = holdStatus(s)
	case round.Rolling2:
		status = "Rolling final..."
	case round.Presenting:
		status = "Resolving..."
	}
	if s.Last != nil && (s.Phase == round.Presenting || s.Phase == round.Finished) {
		result = ResultLine(*s.Last)
	}
	return status, result
}

func holdStatus(s round.Snapshot) string {
	switch {
	case s.OneRollStake > 0 && s.OneRollPayout > 0 && s.Opening != nil:
		return fmt.Sprintf("Opening hand %s! One Roll pays %d.", s.Opening.Category.Label(), s.OneRollPayout)
	case s.OneRollStake > 0:
		return "Opening hand misses One Roll side bet."
	default:
		return "Hold dice with 1-5, then Roll Again."
	}
}

// ResultLine describes how a round paid out.
func ResultLine(r round.Result) string {
	line := "No winning hand."
	if r.FinalHand.Wins() {
		line = fmt.Sprintf("Final hand: %s! Payout %d.", r.FinalHand.Category.Label(), r.Payout)
	}
	if r.AllRedStake > 0 {
		if r.AllRedPayout > 0 {
			line += fmt.Sprintf(" All Red pays %d.", r.AllRedPayout)
		} else {
			line += " All Red side bet lost."
		}
	}
	return line
}

// startError turns a refused start into a message for the player. The side
// bets are blamed when the wager alone would have been covered.
func startError(err error, wagerCovered bool) string {
	switch {
	case errors.Is(err, round.ErrInsufficientCredit) && wagerCovered:
		return "Insufficient credit for wager and side bets."
	case errors.Is(err, round.ErrInsufficientCredit):
		return "Insufficient credit for wager."
	case errors.Is(err, round.ErrInvalidWager):
		return "Wager is outside the table limits."
	default:
		return err.Error()
	}
}
