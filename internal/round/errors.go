package round

import "errors"

var (
	// ErrInsufficientCredit means the wager plus side-bet stakes exceed the balance.
	ErrInsufficientCredit = errors.New("round: insufficient credit")
	// ErrInvalidTransition means the request is not valid in the current phase.
	ErrInvalidTransition = errors.New("round: invalid transition")
	// ErrInvalidWager means the wager is outside the configured bounds.
	ErrInvalidWager = errors.New("round: invalid wager")
	// ErrNoSuchDie means a die index outside 0..4.
	ErrNoSuchDie = errors.New("round: no such die")
	// ErrDieBusy means the die is still sliding and the toggle was ignored.
	ErrDieBusy = errors.New("round: die is sliding")
)
