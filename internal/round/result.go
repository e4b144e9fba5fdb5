package round

import (
	"time"

	"github.com/lox/dicepoker/internal/hand"
)

// Result is the settled outcome of one round.
type Result struct {
	Round int `json:"round"`

	Wager        int `json:"wager"`
	OneRollStake int `json:"one_roll_stake"`
	AllRedStake  int `json:"all_red_stake"`

	OpeningFaces  hand.Faces `json:"opening_faces"`
	OpeningHand   hand.Hand  `json:"opening_hand"`
	OneRollPayout int        `json:"one_roll_payout"`

	FinalFaces hand.Faces `json:"final_faces"`
	FinalHand  hand.Hand  `json:"final_hand"`
	Payout     int        `json:"payout"`

	AllRed       bool `json:"all_red"`
	AllRedPayout int  `json:"all_red_payout"`

	// Credit is the balance after every payout of the round.
	Credit int `json:"credit"`

	// Elapsed is simulated time from start to final settle.
	Elapsed time.Duration `json:"elapsed"`
}

// Staked is everything deducted at round start.
func (r Result) Staked() int {
	return r.Wager + r.OneRollStake + r.AllRedStake
}

// Returned is everything paid back during the round.
func (r Result) Returned() int {
	return r.Payout + r.OneRollPayout + r.AllRedPayout
}

// Net is the change in credit caused by the round.
func (r Result) Net() int {
	return r.Returned() - r.Staked()
}
