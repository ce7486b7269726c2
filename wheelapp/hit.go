package wheelapp

import (
	"github.com/elizafairlady/go-wheel/draw"
	"github.com/elizafairlady/go-wheel/theme"
	"github.com/elizafairlady/go-wheel/wheel"
)

// HitHub reports whether (x, y) is on the hub, which acts as the spin
// button. Manual hit-testing against the same geometry Draw uses.
func HitHub(b draw.Rectangle, th *theme.Theme, x, y int) bool {
	c, r := wheel.Geometry(b, th)
	if r <= 0 {
		return false
	}
	return c.Dist(draw.Pt(x, y)) <= float64(th.HubRadius)
}

// HitBanner reports whether (x, y) is on the winner banner.
func HitBanner(b draw.Rectangle, x, y int) bool {
	return draw.Pt(x, y).In(BannerRect(b))
}
