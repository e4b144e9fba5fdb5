package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/dicepoker/internal/randutil"
)

const frame = 1.0 / 60

func newTestEngine(seed int64) *Engine {
	return NewEngine(DefaultParams(), DefaultTable(), randutil.New(seed))
}

// rollUntilRevealed steps a free die and returns the number of ticks taken,
// or -1 if it did not settle within limit.
func rollUntilRevealed(e *Engine, d *Die, dt float64, limit int) int {
	for tick := 1; tick <= limit; tick++ {
		e.Advance(d, dt)
		if d.Revealed {
			return tick
		}
	}
	return -1
}

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())
	require.NoError(t, DefaultTable().Validate())
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero gravity", func(p *Params) { p.Gravity = 0 }},
		{"bounce of one", func(p *Params) { p.Bounce = 1 }},
		{"no air drag bound", func(p *Params) { p.AirDrag = 1.2 }},
		{"zero rest frames", func(p *Params) { p.RestFrames = 0 }},
		{"tumble above one", func(p *Params) { p.TumbleChance = 1.5 }},
		{"zero max step", func(p *Params) { p.MaxStep = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestLaunchResetsDie(t *testing.T) {
	e := newTestEngine(1)
	d := NewDie(0, V(300, 430), 6)
	d.SlideTo(V(300, 157), 0.2, Parked)

	e.Launch(d, V(220, 100))

	assert.Equal(t, Free, d.Motion())
	assert.Nil(t, d.Slide())
	assert.False(t, d.Revealed)
	assert.Zero(t, d.RestCount)
	assert.Equal(t, V(220, 100), d.Pos)
	assert.GreaterOrEqual(t, d.Face, 1)
	assert.LessOrEqual(t, d.Face, 6)
	assert.GreaterOrEqual(t, d.Vel.Y, 0.0)
}

func TestRollTerminates(t *testing.T) {
	table := DefaultTable()
	for seed := int64(0); seed < 300; seed++ {
		e := newTestEngine(seed)
		d := NewDie(0, Vec2{}, 1)
		x := 220 + float64(seed%5)*120
		e.Launch(d, V(x, 100))

		ticks := rollUntilRevealed(e, d, frame, 600)
		require.NotEqual(t, -1, ticks, "seed %d never settled", seed)
		assert.InDelta(t, table.Ground(), d.Pos.Y, DefaultParams().RestTolerance, "seed %d", seed)
	}
}

func TestRollTerminatesFromExtremeLaunches(t *testing.T) {
	p := DefaultParams()
	launches := []struct {
		name string
		pos  Vec2
		vel  Vec2
		spin float64
	}{
		{"hard left", V(220, 100), V(-p.LaunchVX, p.LaunchVY), -p.LaunchSpin},
		{"hard right", V(700, 100), V(p.LaunchVX, p.LaunchVY), p.LaunchSpin},
		{"straight drop", V(500, 100), V(0, 0), 0},
		{"into the wall fast", V(900, 100), V(2000, -800), 1500},
		{"from the top of the screen", V(500, -300), V(150, 0), 300},
	}
	for _, tt := range launches {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(99)
			d := NewDie(0, tt.pos, 3)
			d.Revealed = false
			d.Vel = tt.vel
			d.Spin = tt.spin

			ticks := rollUntilRevealed(e, d, frame, 600)
			require.NotEqual(t, -1, ticks)
			assert.Zero(t, d.Spin)
			assert.Contains(t, []float64{0, 90, 180, 270}, d.Angle)
		})
	}
}

func TestSmallStepsNeverSinkBelowFloor(t *testing.T) {
	e := newTestEngine(5)
	table := e.Table()
	d := NewDie(0, Vec2{}, 1)
	e.Launch(d, V(500, 100))

	dt := 1.0 / 240
	settled := false
	for tick := 0; tick < 4*600; tick++ {
		e.Advance(d, dt)
		require.LessOrEqual(t, d.Pos.Y, table.Ground())
		require.GreaterOrEqual(t, d.Pos.X, table.LeftWall())
		require.LessOrEqual(t, d.Pos.X, table.RightWall())
		if d.Revealed {
			settled = true
			break
		}
	}
	assert.True(t, settled)
}

func TestFaceIsFinalOnceRevealed(t *testing.T) {
	e := newTestEngine(11)
	d := NewDie(0, Vec2{}, 1)
	e.Launch(d, V(460, 100))
	require.NotEqual(t, -1, rollUntilRevealed(e, d, frame, 600))

	face, angle := d.Face, d.Angle
	for i := 0; i < 500; i++ {
		e.Advance(d, frame)
	}
	assert.Equal(t, face, d.Face)
	assert.Equal(t, angle, d.Angle)
	assert.True(t, d.Revealed)
}

func TestTumbleOnlyWhileUnrevealed(t *testing.T) {
	p := DefaultParams()
	p.TumbleChance = 1
	e := NewEngine(p, DefaultTable(), randutil.New(3))
	d := NewDie(0, Vec2{}, 1)
	e.Launch(d, V(460, 100))

	changed := false
	last := d.Face
	for !d.Revealed {
		e.Advance(d, frame)
		if d.Face != last {
			changed = true
		}
		last = d.Face
	}
	assert.True(t, changed, "a certain tumble should redraw the face at least once")

	for i := 0; i < 100; i++ {
		e.Advance(d, frame)
		assert.Equal(t, last, d.Face)
	}
}

func TestRestCounterResetsWhenMoving(t *testing.T) {
	e := newTestEngine(2)
	d := NewDie(0, V(500, e.Table().Ground()), 1)
	d.Revealed = false
	d.RestCount = 10
	d.Vel = V(500, 0)

	e.Integrate(d, frame)
	assert.Zero(t, d.RestCount)
}

func TestWallReflection(t *testing.T) {
	e := newTestEngine(2)
	table := e.Table()
	d := NewDie(0, V(table.LeftWall()+1, 200), 1)
	d.Revealed = false
	d.Vel = V(-600, 0)
	d.Spin = 100

	e.Integrate(d, frame)

	assert.Equal(t, table.LeftWall(), d.Pos.X)
	assert.Greater(t, d.Vel.X, 0.0)
	assert.InDelta(t, 600*0.35*0.995, d.Vel.X, 1e-9)
}

func TestAdvanceDispatchesOnMotion(t *testing.T) {
	e := newTestEngine(4)

	parked := NewDie(0, V(300, 157), 5)
	parked.Park()
	parked.Vel = V(100, 100)
	e.Advance(parked, frame)
	assert.Equal(t, V(300, 157), parked.Pos)

	sliding := NewDie(1, V(300, 430), 2)
	sliding.Vel = V(50, -50)
	sliding.SlideTo(V(300, 157), 0.1, Parked)
	for i := 0; i < 10; i++ {
		e.Advance(sliding, frame)
	}
	assert.Equal(t, Parked, sliding.Motion())
	assert.Equal(t, V(300, 157), sliding.Pos)
	assert.Equal(t, V(50, -50), sliding.Vel)
	assert.Equal(t, 2, sliding.Face)
}

func TestFreezeCommitsDie(t *testing.T) {
	e := newTestEngine(8)
	d := NewDie(0, V(400, 430), 4)
	d.Revealed = false
	d.Vel = V(10, 10)
	d.Spin = 90

	e.Freeze(d)

	assert.True(t, d.Revealed)
	assert.True(t, d.Vel.IsZero())
	assert.Zero(t, d.Spin)
	assert.Equal(t, 4, d.Face)
	assert.Contains(t, []float64{0, 90, 180, 270}, d.Angle)
}

func TestSameSeedSameRoll(t *testing.T) {
	run := func() (Vec2, int, int) {
		e := newTestEngine(1234)
		d := NewDie(0, Vec2{}, 1)
		e.Launch(d, V(340, 100))
		ticks := rollUntilRevealed(e, d, frame, 600)
		return d.Pos, d.Face, ticks
	}
	pos1, face1, ticks1 := run()
	pos2, face2, ticks2 := run()
	assert.Equal(t, pos1, pos2)
	assert.Equal(t, face1, face2)
	assert.Equal(t, ticks1, ticks2)
}
