package dice

import (
	"fmt"
	"math"
)

// Params are the tuning constants of the roll simulation. None of them carry
// meaning beyond the feel of the animation; they only need to keep every roll
// terminating.
type Params struct {
	Gravity        float64 // px/s^2
	Bounce         float64 // coefficient of restitution, 0 < e < 1
	Friction       float64 // tangential damping applied on each impact
	AirDrag        float64 // linear velocity factor per frame
	SpinDrag       float64 // angular velocity factor per frame
	ImpactSpinDamp float64 // spin factor applied on each impact
	RestEpsilon    float64 // px/s; both velocity components must be below it
	RestFrames     int     // consecutive resting frames before the face is committed
	RestTolerance  float64 // px above the ground still counted as touching it
	TumbleChance   float64 // per-frame face redraw probability while unrevealed

	LaunchVX   float64 // launch vx drawn from [-LaunchVX, LaunchVX)
	LaunchVY   float64 // launch vy drawn from [0, LaunchVY)
	LaunchSpin float64 // launch spin drawn from [-LaunchSpin, LaunchSpin)

	MaxStep float64 // seconds; longer frames are capped
}

func DefaultParams() Params {
	return Params{
		Gravity:        2200,
		Bounce:         0.35,
		Friction:       0.86,
		AirDrag:        0.995,
		SpinDrag:       0.99,
		ImpactSpinDamp: 0.75,
		RestEpsilon:    35,
		RestFrames:     18,
		RestTolerance:  0.1,
		TumbleChance:   0.07,
		LaunchVX:       240,
		LaunchVY:       90,
		LaunchSpin:     600,
		MaxStep:        1.0 / 60,
	}
}

// Validate rejects constants that would let a die bounce or slide forever.
func (p Params) Validate() error {
	if p.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %v", p.Gravity)
	}
	if p.Bounce <= 0 || p.Bounce >= 1 {
		return fmt.Errorf("bounce must be in (0, 1), got %v", p.Bounce)
	}
	if p.Friction <= 0 || p.Friction > 1 {
		return fmt.Errorf("friction must be in (0, 1], got %v", p.Friction)
	}
	if p.AirDrag <= 0 || p.AirDrag > 1 {
		return fmt.Errorf("air drag must be in (0, 1], got %v", p.AirDrag)
	}
	if p.SpinDrag <= 0 || p.SpinDrag > 1 {
		return fmt.Errorf("spin drag must be in (0, 1], got %v", p.SpinDrag)
	}
	if p.ImpactSpinDamp < 0 || p.ImpactSpinDamp > 1 {
		return fmt.Errorf("impact spin damping must be in [0, 1], got %v", p.ImpactSpinDamp)
	}
	if p.RestEpsilon <= 0 {
		return fmt.Errorf("rest epsilon must be positive, got %v", p.RestEpsilon)
	}
	if p.RestFrames < 1 {
		return fmt.Errorf("rest frames must be at least 1, got %d", p.RestFrames)
	}
	if p.RestTolerance < 0 {
		return fmt.Errorf("rest tolerance cannot be negative, got %v", p.RestTolerance)
	}
	if p.TumbleChance < 0 || p.TumbleChance > 1 {
		return fmt.Errorf("tumble chance must be in [0, 1], got %v", p.TumbleChance)
	}
	if p.LaunchVX < 0 || p.LaunchVY < 0 || p.LaunchSpin < 0 {
		return fmt.Errorf("launch ranges cannot be negative")
	}
	if p.MaxStep <= 0 {
		return fmt.Errorf("max step must be positive, got %v", p.MaxStep)
	}
	return nil
}

// Table is the playing surface. The floor line is where the dice land; y grows
// downwards so the ground is above the floor line by half a die.
type Table struct {
	Width   float64
	FloorY  float64
	DieSize float64
}

func DefaultTable() Table {
	return Table{Width: 1000, FloorY: 470, DieSize: 80}
}

// Ground is the y of a resting die's centre.
func (t Table) Ground() float64 { return t.FloorY - t.DieSize/2 }

func (t Table) LeftWall() float64 { return t.DieSize / 2 }

func (t Table) RightWall() float64 { return t.Width - t.DieSize/2 }

// Radius is the bounding circle of a die at any rotation.
func (t Table) Radius() float64 { return t.DieSize / 2 * math.Sqrt2 }

func (t Table) Validate() error {
	if t.DieSize <= 0 {
		return fmt.Errorf("die size must be positive, got %v", t.DieSize)
	}
	if t.Width < t.DieSize*5 {
		return fmt.Errorf("table width %v cannot fit five dice of size %v", t.Width, t.DieSize)
	}
	if t.FloorY <= t.DieSize {
		return fmt.Errorf("floor line %v leaves no room above it", t.FloorY)
	}
	return nil
}
