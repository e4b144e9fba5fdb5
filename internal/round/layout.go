package round

import (
	"github.com/lox/dicepoker/internal/dice"
	"github.com/lox/dicepoker/internal/hand"
)

const (
	launchX0      = 220
	launchSpacing = 120
	launchY       = 100

	slotPadding = 14
	slotGap     = 18
	slotTop     = 110
)

// Layout holds the fixed positions dice are thrown from, rest at between
// rounds and slide into.
type Layout struct {
	Launch   [hand.Size]dice.Vec2
	Home     [hand.Size]dice.Vec2
	Slots    [hand.Size]dice.Vec2 // slot centres
	SlotSize float64
}

// NewLayout places five slots of die size plus padding, centred horizontally
// in a row whose top edge is at y=110.
func NewLayout(t dice.Table) Layout {
	var l Layout
	l.SlotSize = t.DieSize + slotPadding
	total := hand.Size*l.SlotSize + (hand.Size-1)*slotGap
	x0 := float64(int((t.Width - total) / 2))
	for i := range hand.Size {
		x := float64(launchX0 + i*launchSpacing)
		l.Launch[i] = dice.V(x, launchY)
		l.Home[i] = dice.V(x, t.Ground())
		l.Slots[i] = dice.V(
			x0+float64(i)*(l.SlotSize+slotGap)+l.SlotSize/2,
			slotTop+l.SlotSize/2,
		)
	}
	return l
}
