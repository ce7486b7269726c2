package wheel

import (
	"github.com/elizafairlady/go-wheel/draw"
	"github.com/elizafairlady/go-wheel/entry"
	"github.com/elizafairlady/go-wheel/theme"
)

// Paint draws the wheel for active at rotation onto c. It depends only
// on its arguments, so painting twice with the same inputs issues the
// same calls. It does not flush.
func Paint(c draw.Canvas, th *theme.Theme, active []entry.Entry, rotation float64) {
	b := c.Bounds()
	center, r := Geometry(b, th)
	c.Fill(th.Background)
	if r <= 0 {
		return
	}

	n := len(active)
	if n == 0 {
		c.FillEllipse(center, r, r, th.Placeholder)
		c.String(center, 0, th.PromptFont, th.EmptyMessage, th.Prompt)
		return
	}

	s := SegmentAngle(n)
	for i := range active {
		c.FillArc(center, r, float64(i)*s+rotation, s, th.Color(i))
	}
	if n > 1 {
		for i := range active {
			c.Line(center, center.Polar(float64(r), float64(i)*s+rotation), th.StrokeW, th.Stroke)
		}
	}
	lr := float64(r) * th.LabelRadius
	for i, e := range active {
		a := float64(i)*s + rotation + s/2
		c.String(center.Polar(lr, a), a, th.LabelFont, e.Label, th.Label)
	}

	c.FillEllipse(center, th.HubRadius, th.HubRadius, th.Hub)
	paintPointer(c, th, center, r)
}

// paintPointer draws the fixed pointer above the rim, tip down.
func paintPointer(c draw.Canvas, th *theme.Theme, center draw.Point, r int) {
	tip := draw.Pt(center.X, center.Y-r)
	top := tip.Y - th.PointerLen
	c.FillPoly([]draw.Point{
		tip,
		draw.Pt(center.X-th.PointerHalf, top),
		draw.Pt(center.X+th.PointerHalf, top),
	}, th.Pointer)
}
