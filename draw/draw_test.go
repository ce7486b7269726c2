package draw

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const halfPi = math.Pi / 2

func TestRect(t *testing.T) {
	r := Rect(10, 20, 0, 0)
	assert.Equal(t, Pt(0, 0), r.Min)
	assert.Equal(t, Pt(10, 20), r.Max)
	assert.Equal(t, 10, r.Dx())
	assert.Equal(t, 20, r.Dy())
	assert.Equal(t, Pt(5, 10), r.Center())
	assert.False(t, r.Empty())
	assert.True(t, Rect(3, 3, 3, 9).Empty())
	assert.Equal(t, Rect(2, 2, 8, 18), r.Inset(2))
}

func TestPointPolarAndAngle(t *testing.T) {
	c := Pt(100, 100)
	tests := []struct {
		a    float64
		want Point
	}{
		{0, Pt(150, 100)},
		{halfPi, Pt(100, 150)}, // clockwise: a quarter turn points down
		{math.Pi, Pt(50, 100)},
		{3 * halfPi, Pt(100, 50)},
	}
	for _, tc := range tests {
		got := c.Polar(50, tc.a)
		assert.Equal(t, tc.want, got, "Polar(50, %v)", tc.a)
		assert.InDelta(t, tc.a, c.Angle(got), 1e-9)
		assert.InDelta(t, 50, c.Dist(got), 1e-9)
	}
}

func TestColorComponents(t *testing.T) {
	c := RGB(0xFF, 0x6B, 0x6B)
	assert.Equal(t, Color(0xFF6B6BFF), c)
	r, g, b, a := c.Components()
	assert.Equal(t, []uint8{0xFF, 0x6B, 0x6B, 0xFF}, []uint8{r, g, b, a})

	rr, gg, bb, aa := c.RGBA()
	assert.Equal(t, uint32(0xFFFF), rr)
	assert.Equal(t, uint32(0x6B6B), gg)
	assert.Equal(t, uint32(0x6B6B), bb)
	assert.Equal(t, uint32(0xFFFF), aa)

	_, _, _, aa = DTransparent.RGBA()
	assert.Zero(t, aa)
}

func colorAt(r *Raster, p Point) Color {
	c := color.NRGBAModel.Convert(r.Image().At(p.X, p.Y)).(color.NRGBA)
	return RGB(c.R, c.G, c.B)
}

func TestRasterFillArcIsClockwise(t *testing.T) {
	r := NewRaster(200, 200)
	r.Fill(DWhite)
	// Quarter from 0 to π/2 sweeps the lower right on screen.
	r.FillArc(Pt(100, 100), 80, 0, halfPi, DRed)

	assert.Equal(t, DRed, colorAt(r, Pt(140, 140)))
	assert.Equal(t, DWhite, colorAt(r, Pt(140, 60)))
	assert.Equal(t, DWhite, colorAt(r, Pt(60, 140)))
}

func TestRasterShapes(t *testing.T) {
	r := NewRaster(100, 100)
	assert.Equal(t, Rect(0, 0, 100, 100), r.Bounds())
	r.Fill(DBlack)
	r.FillEllipse(Pt(50, 50), 10, 10, DWhite)
	r.FillPoly([]Point{{0, 0}, {30, 0}, {0, 30}}, DRed)
	r.Line(Pt(60, 90), Pt(99, 90), 1, DBlue)
	r.String(Pt(50, 80), 0, Font{Size: 12, Bold: true}, "x", DWhite)
	require.NoError(t, r.Flush())

	assert.Equal(t, DWhite, colorAt(r, Pt(50, 50)))
	assert.Equal(t, DRed, colorAt(r, Pt(5, 5)))
	assert.Equal(t, DBlue, colorAt(r, Pt(80, 90)))
	assert.Equal(t, DBlack, colorAt(r, Pt(95, 5)))
}

func TestRasterEncodePNG(t *testing.T) {
	r := NewRaster(16, 8)
	r.Fill(DGreyblue)

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(Rect(0, 0, 10, 10))
	var c Canvas = rec
	c.Fill(DWhite)
	c.FillArc(Pt(5, 5), 4, 0, 1, DRed)
	pts := []Point{{1, 1}, {2, 2}, {3, 1}}
	c.FillPoly(pts, DBlack)
	pts[0] = Pt(9, 9)
	require.NoError(t, c.Flush())

	require.Len(t, rec.Ops, 3)
	assert.Equal(t, 1, rec.Flushes)
	arcs := rec.Kind(OpFillArc)
	require.Len(t, arcs, 1)
	assert.Equal(t, 4, arcs[0].A)
	assert.Equal(t, Pt(1, 1), rec.Kind(OpFillPoly)[0].Points[0], "points are copied")

	rec.Reset()
	assert.Empty(t, rec.Ops)
	assert.Zero(t, rec.Flushes)
}
