package dice

import (
	"math"

	"github.com/lox/dicepoker/internal/randutil"
)

// Motion says what drives a die's position this frame.
type Motion uint8

const (
	// Free dice are integrated by the physics step.
	Free Motion = iota
	// Tweening dice follow a Slide; physics is suspended.
	Tweening
	// Parked dice sit in a slot and do not move.
	Parked
)

func (m Motion) String() string {
	switch m {
	case Free:
		return "free"
	case Tweening:
		return "tweening"
	case Parked:
		return "parked"
	default:
		return "unknown"
	}
}

// Die is one die's kinematic state plus its face bookkeeping.
type Die struct {
	Index int
	Pos   Vec2
	Vel   Vec2
	Angle float64 // degrees
	Spin  float64 // degrees per second
	Face  int

	// Revealed is set once the die has settled and Face is final for the
	// current roll. Only Launch clears it.
	Revealed  bool
	RestCount int
	Hold      bool

	motion Motion
	slide  *Slide
}

// NewDie returns a settled die resting at pos.
func NewDie(index int, pos Vec2, face int) *Die {
	return &Die{Index: index, Pos: pos, Face: face, Revealed: true}
}

func (d *Die) Motion() Motion { return d.motion }

// Slide returns the active slide, or nil unless the die is tweening.
func (d *Die) Slide() *Slide { return d.slide }

// Parked reports whether the die sits in a slot.
func (d *Die) Parked() bool { return d.motion == Parked }

// Tweening reports whether a slide is in flight.
func (d *Die) Tweening() bool { return d.motion == Tweening }

// SlideTo starts a slide from the current position. The die is tweening until
// the slide completes, then takes the motion given by then.
func (d *Die) SlideTo(to Vec2, duration float64, then Motion) {
	d.slide = NewSlide(d.Pos, to, duration, then)
	d.motion = Tweening
}

// Park stops the die where it is.
func (d *Die) Park() {
	d.slide = nil
	d.motion = Parked
}

// Release hands the die back to physics where it is.
func (d *Die) Release() {
	d.slide = nil
	d.motion = Free
}

// Engine advances dice on a table. It owns no dice; callers pass them in.
type Engine struct {
	params Params
	table  Table
	rng    randutil.Source
}

func NewEngine(params Params, table Table, rng randutil.Source) *Engine {
	return &Engine{params: params, table: table, rng: rng}
}

func (e *Engine) Params() Params { return e.params }

func (e *Engine) Table() Table { return e.table }

// Launch throws the die from at with a fresh random velocity, spin and face.
func (e *Engine) Launch(d *Die, at Vec2) {
	p := e.params
	d.Pos = at
	d.Vel = V(
		randutil.Uniform(e.rng, -p.LaunchVX, p.LaunchVX),
		randutil.Uniform(e.rng, 0, p.LaunchVY),
	)
	d.Angle = randutil.Uniform(e.rng, 0, 360)
	d.Spin = randutil.Uniform(e.rng, -p.LaunchSpin, p.LaunchSpin)
	d.Revealed = false
	d.RestCount = 0
	d.Face = randutil.Face(e.rng)
	d.Release()
}

// Freeze commits a die that is kept out of a roll: it counts as revealed with
// its current face, stops moving and snaps square.
func (e *Engine) Freeze(d *Die) {
	d.Revealed = true
	d.Vel = Vec2{}
	d.Spin = 0
	d.Angle = randutil.QuarterTurn(e.rng)
}

// Advance moves the die one frame according to its motion.
func (e *Engine) Advance(d *Die, dt float64) {
	if dt <= 0 {
		return
	}
	switch d.motion {
	case Free:
		e.Integrate(d, dt)
	case Tweening:
		pos, done := d.slide.Step(dt)
		d.Pos = pos
		if done {
			d.motion = d.slide.Then
			d.slide = nil
		}
	}
}

// Integrate runs one physics step on a free die: gravity, walls, drag, floor,
// rest detection and face commitment.
func (e *Engine) Integrate(d *Die, dt float64) {
	p := e.params
	t := e.table

	d.Vel.Y += p.Gravity * dt
	d.Pos = d.Pos.Plus(d.Vel.Times(dt))

	switch {
	case d.Pos.X < t.LeftWall():
		d.Pos.X = t.LeftWall()
		if d.Vel.X < 0 {
			e.impactX(d)
		}
	case d.Pos.X > t.RightWall():
		d.Pos.X = t.RightWall()
		if d.Vel.X > 0 {
			e.impactX(d)
		}
	}

	d.Vel = d.Vel.Times(p.AirDrag)
	d.Spin *= p.SpinDrag
	d.Angle = math.Mod(d.Angle+d.Spin*dt, 360)

	ground := t.Ground()
	if d.Pos.Y > ground {
		d.Pos.Y = ground
		if d.Vel.Y > 0 {
			d.Vel.Y = -d.Vel.Y * p.Bounce
			d.Vel.X *= p.Friction
			d.Spin *= p.ImpactSpinDamp
		}
	}

	if e.atRest(d) {
		d.RestCount++
	} else {
		d.RestCount = 0
	}

	if !d.Revealed && d.RestCount >= p.RestFrames {
		d.Revealed = true
		d.Face = randutil.Face(e.rng)
		d.Spin = 0
		d.Angle = randutil.QuarterTurn(e.rng)
	}

	if !d.Revealed && randutil.Chance(e.rng, p.TumbleChance) {
		d.Face = randutil.Face(e.rng)
	}
}

func (e *Engine) impactX(d *Die) {
	d.Vel.X = -d.Vel.X * e.params.Bounce
	d.Vel.Y *= e.params.Friction
	d.Spin *= e.params.ImpactSpinDamp
}

func (e *Engine) atRest(d *Die) bool {
	eps := e.params.RestEpsilon
	return math.Abs(d.Vel.X) < eps &&
		math.Abs(d.Vel.Y) < eps &&
		d.Pos.Y >= e.table.Ground()-e.params.RestTolerance
}

// Collide resolves overlaps among the free dice in the slice.
func (e *Engine) Collide(dice []*Die) {
	free := make([]*Die, 0, len(dice))
	for _, d := range dice {
		if d.motion == Free {
			free = append(free, d)
		}
	}
	Resolve(free, e.table.Radius(), e.params.Bounce)
}
