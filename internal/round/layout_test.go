package round

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/dicepoker/internal/dice"
)

func TestNewLayoutDefaultTable(t *testing.T) {
	l := NewLayout(dice.DefaultTable())

	assert.Equal(t, 94.0, l.SlotSize)
	assert.Equal(t, dice.V(276, 157), l.Slots[0])
	assert.Equal(t, dice.V(724, 157), l.Slots[4])
	assert.Equal(t, dice.V(220, 100), l.Launch[0])
	assert.Equal(t, dice.V(700, 100), l.Launch[4])
	assert.Equal(t, dice.V(460, 430), l.Home[2])
}

func TestPhaseHelpers(t *testing.T) {
	assert.True(t, Betting.CanStart())
	assert.True(t, Finished.CanStart())
	assert.False(t, Hold.CanStart())
	assert.True(t, Rolling2.Rolling())
	assert.False(t, Presenting.Rolling())
	assert.Equal(t, "presenting", Presenting.String())
}

func TestRulesValidate(t *testing.T) {
	assert.NoError(t, DefaultRules().Validate())

	r := DefaultRules()
	r.MaxWager = 5
	assert.Error(t, r.Validate())

	r = DefaultRules()
	r.RedFaces = 0
	assert.Error(t, r.Validate())
}
