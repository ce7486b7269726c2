package wheel

import (
	"math"
	"time"
)

// Options configures how far and how long a spin runs.
type Options struct {
	MinSpins float64       // whole turns, at least
	MaxSpins float64       // whole turns, at most (before the fractional stop)
	Duration time.Duration // wall-clock length of the animation
}

// DefaultOptions returns 5 to 10 turns over three seconds.
func DefaultOptions() Options {
	return Options{MinSpins: 5, MaxSpins: 10, Duration: 3 * time.Second}
}

// Distance maps two uniform draws in [0, 1) to a total rotation:
// between MinSpins and MaxSpins whole turns plus a uniformly random
// final offset in [0, 2π).
func (o Options) Distance(u1, u2 float64) float64 {
	turns := o.MinSpins + u1*(o.MaxSpins-o.MinSpins)
	return turns*TwoPi + u2*TwoPi
}

// EaseOut is the cubic ease-out curve 1 - (1-p)³, with p clamped to
// [0, 1].
func EaseOut(p float64) float64 {
	p = clamp01(p)
	q := 1 - p
	return 1 - q*q*q
}

// Progress returns elapsed/d clamped to [0, 1]. A non-positive d is
// already complete.
func Progress(elapsed, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return clamp01(float64(elapsed) / float64(d))
}

func clamp01(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Spin is the wheel's rotation and, while Spinning, the animation that
// is moving it. The zero value is an idle wheel at rotation 0.
type Spin struct {
	Spinning bool
	Rotation float64   // current rotation, read by the painter
	Start    float64   // rotation when the spin began
	Distance float64   // total rotation to add by the end
	Started  time.Time // when the spin began
}

// Begin starts a spin over n active entries, adding distance radians
// from the current rotation. It refuses, returning s unchanged and
// false, when there is nothing to spin or a spin is already running.
func (s Spin) Begin(n int, at time.Time, distance float64) (Spin, bool) {
	if n <= 0 || s.Spinning {
		return s, false
	}
	return Spin{
		Spinning: true,
		Rotation: s.Rotation,
		Start:    s.Rotation,
		Distance: distance,
		Started:  at,
	}, true
}

// Advance moves the spin to time now. Progress is always measured from
// Started, so skipped or late frames do not drift. When the duration
// has elapsed the rotation is fixed at exactly Start+Distance, the spin
// goes idle and settled is true; this happens once per spin.
func (s Spin) Advance(now time.Time, d time.Duration) (next Spin, settled bool) {
	if !s.Spinning {
		return s, false
	}
	p := Progress(now.Sub(s.Started), d)
	if p >= 1 {
		return Spin{Rotation: s.Start + s.Distance}, true
	}
	s.Rotation = s.Start + s.Distance*EaseOut(p)
	return s, false
}

// Halt stops any spin where it is, without settling.
func (s Spin) Halt() Spin {
	return Spin{Rotation: s.Rotation}
}
