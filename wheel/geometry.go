// Package wheel is the wheel engine: it lays the active entries out as
// equal sectors around a circle, animates a spin toward a random stop,
// and reads the winner off the final rotation.
//
// Angles are radians measured from the positive x axis and increase
// clockwise on screen, where y grows downward. Sector i of n covers
// [i*s + rotation, (i+1)*s + rotation) with s = 2π/n. The pointer is
// fixed straight up, at PointerAngle. Painting and winner selection
// both go through SectorAt, so what is under the pointer on screen is
// what wins.
package wheel

import (
	"math"

	"github.com/elizafairlady/go-wheel/draw"
	"github.com/elizafairlady/go-wheel/theme"
)

const (
	TwoPi = 2 * math.Pi

	// PointerAngle is where the pointer sits: straight up.
	PointerAngle = 3 * math.Pi / 2
)

// SegmentAngle returns the angular width of each of n sectors.
func SegmentAngle(n int) float64 {
	if n <= 0 {
		return 0
	}
	return TwoPi / float64(n)
}

// Normalize maps a into [0, 2π). Non-finite input yields 0.
func Normalize(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// a tiny negative remainder can round up to exactly 2π
	if a >= TwoPi {
		a = 0
	}
	return a
}

// PointerOffset returns the sector-local angle under the pointer for
// the given rotation.
func PointerOffset(rotation float64) float64 {
	return Normalize(PointerAngle - rotation)
}

// SectorIndex returns which of n equal sectors a sector-local angle in
// [0, 2π) falls in, clamped to [0, n-1]. It returns 0 when n < 1 or the
// angle is not finite.
func SectorIndex(angle float64, n int) int {
	if n < 1 || math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	i := int(math.Floor(angle / SegmentAngle(n)))
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// SectorAt returns the index of the sector drawn at screen angle a
// when the wheel is at rotation.
func SectorAt(rotation, a float64, n int) int {
	return SectorIndex(Normalize(a-rotation), n)
}

// Geometry returns the wheel's center and radius within bounds. The
// radius is never negative.
func Geometry(bounds draw.Rectangle, th *theme.Theme) (draw.Point, int) {
	c := bounds.Center()
	r := min(bounds.Dx(), bounds.Dy())/2 - th.Margin
	if r < 0 {
		r = 0
	}
	return c, r
}
