package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, EaseOutCubic(0))
	assert.Equal(t, 1.0, EaseOutCubic(1))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-12)
	assert.Equal(t, 0.0, EaseOutCubic(-3))
	assert.Equal(t, 1.0, EaseOutCubic(7))
}

func TestSlideStep(t *testing.T) {
	s := NewSlide(V(0, 0), V(100, -200), 0.2, Parked)

	pos, done := s.Step(0.1)
	assert.False(t, done)
	assert.InDelta(t, 87.5, pos.X, 1e-9)
	assert.InDelta(t, -175, pos.Y, 1e-9)
	assert.InDelta(t, 0.5, s.Progress(), 1e-12)

	pos, done = s.Step(0.15)
	assert.True(t, done)
	assert.Equal(t, V(100, -200), pos)
	assert.Equal(t, 1.0, s.Progress())
}

func TestSlideHasMinimumDuration(t *testing.T) {
	s := NewSlide(V(1, 1), V(2, 2), 0, Free)
	assert.Equal(t, minSlideDuration, s.Duration)

	pos, done := s.Step(frame)
	assert.True(t, done)
	assert.Equal(t, V(2, 2), pos)
}

func TestSlideAppliesPostMotion(t *testing.T) {
	e := newTestEngine(1)
	tests := []struct {
		name string
		then Motion
	}{
		{"into a slot", Parked},
		{"back to the table", Free},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDie(0, V(10, 10), 3)
			d.Park()
			d.SlideTo(V(50, 90), 0.22, tt.then)
			assert.True(t, d.Tweening())

			e.Advance(d, 0.1)
			assert.True(t, d.Tweening())
			assert.NotEqual(t, V(50, 90), d.Pos)

			e.Advance(d, 0.2)
			assert.Equal(t, tt.then, d.Motion())
			assert.Equal(t, V(50, 90), d.Pos)
			assert.Nil(t, d.Slide())
			assert.Equal(t, 3, d.Face)
		})
	}
}
