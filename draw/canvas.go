package draw

// Font selects a label face. Backends without font support approximate
// the size and ignore weight.
type Font struct {
	Size float64 // pixel height
	Bold bool
}

// Canvas is the surface the wheel paints on.
//
// Angles are radians measured from the positive x axis and increase
// clockwise on screen, because y grows downward. Every backend honors
// this one convention so that what is drawn under the pointer is what
// the selection math picks.
type Canvas interface {
	// Bounds returns the drawable area.
	Bounds() Rectangle

	// Fill paints the whole canvas.
	Fill(col Color)

	// FillEllipse fills an ellipse centered at c with semi-axes a and b.
	FillEllipse(c Point, a, b int, col Color)

	// FillArc fills the pie slice of the circle of radius r centered
	// at c that starts at angle alpha and sweeps phi radians.
	FillArc(c Point, r int, alpha, phi float64, col Color)

	// Line draws a segment from p0 to p1 with thickness 1+2*thick.
	Line(p0, p1 Point, thick int, col Color)

	// FillPoly fills the closed polygon through p.
	FillPoly(p []Point, col Color)

	// String draws s centered on p, its baseline rotated by angle.
	String(p Point, angle float64, f Font, s string, col Color)

	// Flush makes everything drawn so far visible.
	Flush() error
}
