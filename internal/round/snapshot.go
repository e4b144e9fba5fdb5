package round

import (
	"github.com/lox/dicepoker/internal/dice"
	"github.com/lox/dicepoker/internal/hand"
)

// DieView is the read-only state of one die for rendering.
type DieView struct {
	Index    int
	Pos      dice.Vec2
	Angle    float64
	Face     int
	Revealed bool
	Hold     bool
	Parked   bool
	Motion   dice.Motion
	Progress float64 // slide progress in [0, 1]; 1 when not sliding
}

// Snapshot is everything a front end needs to draw one frame.
type Snapshot struct {
	Phase  Phase
	Credit int
	Round  int

	Wager        int
	OneRollStake int
	AllRedStake  int

	Dice          [hand.Size]DieView
	Opening       *hand.Hand
	OneRollPayout int
	Last          *Result
}

func (m *Machine) Dice() [hand.Size]DieView {
	var out [hand.Size]DieView
	for i, d := range m.dice {
		v := DieView{
			Index:    d.Index,
			Pos:      d.Pos,
			Angle:    d.Angle,
			Face:     d.Face,
			Revealed: d.Revealed,
			Hold:     d.Hold,
			Parked:   d.Parked(),
			Motion:   d.Motion(),
			Progress: 1,
		}
		if s := d.Slide(); s != nil {
			v.Progress = s.Progress()
		}
		out[i] = v
	}
	return out
}

func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Phase:         m.phase,
		Credit:        m.credit,
		Round:         m.round,
		Wager:         m.wager,
		OneRollStake:  m.oneRollStake,
		AllRedStake:   m.allRedStake,
		Dice:          m.Dice(),
		Opening:       m.OpeningHand(),
		OneRollPayout: m.oneRollPayout,
		Last:          m.LastResult(),
	}
}
