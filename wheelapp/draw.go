package wheelapp

import (
	"github.com/elizafairlady/go-wheel/draw"
	ui "github.com/elizafairlady/go-wheel/libui"
	"github.com/elizafairlady/go-wheel/theme"
	"github.com/elizafairlady/go-wheel/wheel"
)

const (
	bannerInset  = 16
	bannerHeight = 44
)

// Drawer returns the draw function for th.
func Drawer(th *theme.Theme) ui.Drawer {
	return func(model any, c draw.Canvas) {
		Draw(th, model.(Model), c)
	}
}

// Draw renders the model.
// This is a pure function - never mutates model.
func Draw(th *theme.Theme, m Model, c draw.Canvas) {
	wheel.Paint(c, th, m.Active(), m.Spin.Rotation)
	if m.Winner != "" && !m.Spin.Spinning {
		drawBanner(th, c, m.Winner)
	}
}

// drawBanner announces the winner in a strip across the bottom.
func drawBanner(th *theme.Theme, c draw.Canvas, winner string) {
	r := BannerRect(c.Bounds())
	c.FillPoly([]draw.Point{
		r.Min,
		draw.Pt(r.Max.X, r.Min.Y),
		r.Max,
		draw.Pt(r.Min.X, r.Max.Y),
	}, th.Banner)
	c.String(r.Center(), 0, th.BannerFont, "Winner: "+winner, th.BannerText)
}

// BannerRect is where the winner banner goes within bounds.
func BannerRect(b draw.Rectangle) draw.Rectangle {
	return draw.Rect(
		b.Min.X+bannerInset, b.Max.Y-bannerInset-bannerHeight,
		b.Max.X-bannerInset, b.Max.Y-bannerInset,
	)
}
