// Package draw holds the drawing vocabulary shared by the wheel and its
// display backends: integer points and rectangles, packed colors, and the
// Canvas interface. Three canvases are provided: Raster (an in-memory
// image encoded as PNG), Device (a Plan 9 /dev/draw connection) and
// Recorder (an op log used by tests).
package draw

import "math"

// Point is a location in the integer grid.
type Point struct {
	X, Y int
}

// ZP is the zero point.
var ZP Point

// Pt returns the point (x, y).
func Pt(x, y int) Point {
	return Point{x, y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// In reports whether p is in r.
func (p Point) In(r Rectangle) bool {
	return r.Min.X <= p.X && p.X < r.Max.X &&
		r.Min.Y <= p.Y && p.Y < r.Max.Y
}

// Polar returns the point at distance rad from p along angle a.
// Angles are in radians, 0 along +x, increasing clockwise on screen.
func (p Point) Polar(rad, a float64) Point {
	return Point{
		X: p.X + int(math.Round(rad*math.Cos(a))),
		Y: p.Y + int(math.Round(rad*math.Sin(a))),
	}
}

// Angle returns the screen angle of q seen from p, in [0, 2π).
func (p Point) Angle(q Point) float64 {
	a := math.Atan2(float64(q.Y-p.Y), float64(q.X-p.X))
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(float64(q.X-p.X), float64(q.Y-p.Y))
}

// Rectangle is a rectangle in the integer grid.
type Rectangle struct {
	Min, Max Point
}

// ZR is the zero rectangle.
var ZR Rectangle

// Rect returns the rectangle with corners (x0, y0) and (x1, y1).
// The corners don't need to be in any particular order.
func Rect(x0, y0, x1, y1 int) Rectangle {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rectangle{Point{x0, y0}, Point{x1, y1}}
}

// Dx returns the width of r.
func (r Rectangle) Dx() int {
	return r.Max.X - r.Min.X
}

// Dy returns the height of r.
func (r Rectangle) Dy() int {
	return r.Max.Y - r.Min.Y
}

// Center returns the midpoint of r.
func (r Rectangle) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Empty reports whether r contains no points.
func (r Rectangle) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Inset returns r shrunk by n pixels.
func (r Rectangle) Inset(n int) Rectangle {
	if r.Dx() < 2*n {
		r.Min.X = (r.Min.X + r.Max.X) / 2
		r.Max.X = r.Min.X
	} else {
		r.Min.X += n
		r.Max.X -= n
	}
	if r.Dy() < 2*n {
		r.Min.Y = (r.Min.Y + r.Max.Y) / 2
		r.Max.Y = r.Min.Y
	} else {
		r.Min.Y += n
		r.Max.Y -= n
	}
	return r
}
