package dice

import "math"

const minSlideDuration = 0.001

// Slide is a cosmetic eased move between two points. It only produces
// positions; velocity, spin and face of the die it drives are left alone.
type Slide struct {
	From     Vec2
	To       Vec2
	Elapsed  float64
	Duration float64
	Then     Motion // motion the die takes once the slide completes
}

func NewSlide(from, to Vec2, duration float64, then Motion) *Slide {
	return &Slide{
		From:     from,
		To:       to,
		Duration: math.Max(minSlideDuration, duration),
		Then:     then,
	}
}

// Step advances the slide by dt and returns the eased position. Once done it
// returns exactly To.
func (s *Slide) Step(dt float64) (Vec2, bool) {
	s.Elapsed += dt
	t := s.Elapsed / s.Duration
	if t >= 1 {
		return s.To, true
	}
	return s.From.Lerp(s.To, EaseOutCubic(t)), false
}

// Progress is elapsed/duration clamped to [0,1].
func (s *Slide) Progress() float64 {
	return clamp(s.Elapsed/s.Duration, 0, 1)
}

// EaseOutCubic maps 0..1 onto 0..1, fast at the start and settling at the end.
func EaseOutCubic(t float64) float64 {
	t = clamp(t, 0, 1)
	return 1 - math.Pow(1-t, 3)
}
