package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSeparatesClosingPair(t *testing.T) {
	const radius = 40.0
	tests := []struct {
		name   string
		a, b   Vec2
		va, vb Vec2
	}{
		{"head on", V(100, 100), V(150, 100), V(200, 0), V(-200, 0)},
		{"one at rest", V(100, 100), V(130, 120), V(300, 100), V(0, 0)},
		{"vertical stack", V(300, 300), V(300, 360), V(0, 400), V(0, -50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Die{Pos: tt.a, Vel: tt.va}
			b := &Die{Index: 1, Pos: tt.b, Vel: tt.vb}

			Resolve([]*Die{a, b}, radius, 0.35)

			assert.GreaterOrEqual(t, b.Pos.Minus(a.Pos).Magnitude(), 2*radius-1e-9)

			da := a.Vel.Minus(tt.va)
			db := b.Vel.Minus(tt.vb)
			assert.InDelta(t, 0, da.X+db.X, 1e-9)
			assert.InDelta(t, 0, da.Y+db.Y, 1e-9)
			assert.False(t, da.IsZero(), "closing pair must exchange impulse")

			n := b.Pos.Minus(a.Pos)
			assert.GreaterOrEqual(t, b.Vel.Minus(a.Vel).Dot(n), -1e-9, "pair must no longer be closing")
		})
	}
}

func TestResolveSeparatingPairKeepsVelocity(t *testing.T) {
	a := &Die{Pos: V(100, 100), Vel: V(-50, 0)}
	b := &Die{Pos: V(140, 100), Vel: V(50, 0)}

	Resolve([]*Die{a, b}, 40, 0.35)

	assert.Equal(t, V(-50, 0), a.Vel)
	assert.Equal(t, V(50, 0), b.Vel)
	assert.InDelta(t, 60, a.Pos.X, 1e-9)
	assert.InDelta(t, 180, b.Pos.X, 1e-9)
}

func TestResolveSkipsCoincidentCentres(t *testing.T) {
	a := &Die{Pos: V(100, 100), Vel: V(10, 0)}
	b := &Die{Pos: V(100, 100), Vel: V(-10, 0)}

	Resolve([]*Die{a, b}, 40, 0.35)

	assert.Equal(t, V(100, 100), a.Pos)
	assert.Equal(t, V(100, 100), b.Pos)
	assert.Equal(t, V(10, 0), a.Vel)
}

func TestResolveIgnoresDistantDice(t *testing.T) {
	a := &Die{Pos: V(0, 0), Vel: V(100, 0)}
	b := &Die{Pos: V(80, 0), Vel: V(-100, 0)}

	Resolve([]*Die{a, b}, 40, 0.35)

	assert.Equal(t, V(0, 0), a.Pos)
	assert.Equal(t, V(100, 0), a.Vel)
}

func TestEngineCollideSkipsParkedAndTweening(t *testing.T) {
	e := newTestEngine(1)
	free := NewDie(0, V(500, 400), 1)
	parked := NewDie(1, V(510, 400), 2)
	parked.Park()
	sliding := NewDie(2, V(490, 400), 3)
	sliding.SlideTo(V(300, 157), 0.2, Parked)

	e.Collide([]*Die{free, parked, sliding})

	assert.Equal(t, V(500, 400), free.Pos)
	assert.Equal(t, V(510, 400), parked.Pos)
	assert.Equal(t, V(490, 400), sliding.Pos)
}
