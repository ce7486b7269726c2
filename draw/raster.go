package draw

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Raster is a Canvas backed by an in-memory RGBA image.
type Raster struct {
	dc    *gg.Context
	faces map[Font]font.Face
}

var _ Canvas = (*Raster)(nil)

// NewRaster returns a w×h raster canvas cleared to transparent.
func NewRaster(w, h int) *Raster {
	return &Raster{
		dc:    gg.NewContext(w, h),
		faces: make(map[Font]font.Face),
	}
}

// Bounds returns the raster's rectangle, anchored at the origin.
func (r *Raster) Bounds() Rectangle {
	return Rect(0, 0, r.dc.Width(), r.dc.Height())
}

// Fill paints every pixel with col.
func (r *Raster) Fill(col Color) {
	r.dc.SetColor(col)
	r.dc.Clear()
}

// FillEllipse fills an ellipse centered at c.
func (r *Raster) FillEllipse(c Point, a, b int, col Color) {
	r.dc.SetColor(col)
	r.dc.DrawEllipse(float64(c.X), float64(c.Y), float64(a), float64(b))
	r.dc.Fill()
}

// FillArc fills a pie slice. gg shares the clockwise screen convention,
// so the angles pass through unchanged.
func (r *Raster) FillArc(c Point, rad int, alpha, phi float64, col Color) {
	x, y := float64(c.X), float64(c.Y)
	r.dc.SetColor(col)
	r.dc.NewSubPath()
	r.dc.MoveTo(x, y)
	r.dc.DrawArc(x, y, float64(rad), alpha, alpha+phi)
	r.dc.ClosePath()
	r.dc.Fill()
}

// Line strokes a segment.
func (r *Raster) Line(p0, p1 Point, thick int, col Color) {
	r.dc.SetColor(col)
	r.dc.SetLineWidth(float64(1 + 2*thick))
	r.dc.DrawLine(float64(p0.X), float64(p0.Y), float64(p1.X), float64(p1.Y))
	r.dc.Stroke()
}

// FillPoly fills a closed polygon.
func (r *Raster) FillPoly(p []Point, col Color) {
	if len(p) == 0 {
		return
	}
	r.dc.SetColor(col)
	r.dc.NewSubPath()
	for _, q := range p {
		r.dc.LineTo(float64(q.X), float64(q.Y))
	}
	r.dc.ClosePath()
	r.dc.Fill()
}

// String draws s centered on p and rotated by angle.
func (r *Raster) String(p Point, angle float64, f Font, s string, col Color) {
	if s == "" {
		return
	}
	x, y := float64(p.X), float64(p.Y)
	r.dc.Push()
	defer r.dc.Pop()
	r.dc.SetFontFace(r.face(f))
	r.dc.SetColor(col)
	r.dc.RotateAbout(angle, x, y)
	r.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

// Flush is a no-op; the image is always current.
func (r *Raster) Flush() error { return nil }

// Image returns the backing image. It is shared, not copied.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the current image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("draw: encode png: %w", err)
	}
	return nil
}

func (r *Raster) face(f Font) font.Face {
	if face, ok := r.faces[f]; ok {
		return face
	}
	size := f.Size
	if size <= 0 {
		size = 13
	}
	face := truetype.NewFace(goFont(f.Bold), &truetype.Options{Size: size})
	r.faces[f] = face
	return face
}

var (
	fontOnce    sync.Once
	fontRegular *truetype.Font
	fontBold    *truetype.Font
)

// goFont parses the embedded Go fonts once. They are known-good TTF
// data, so a parse failure is a broken build.
func goFont(bold bool) *truetype.Font {
	fontOnce.Do(func() {
		var err error
		if fontRegular, err = truetype.Parse(goregular.TTF); err != nil {
			panic(fmt.Sprintf("draw: parse goregular: %v", err))
		}
		if fontBold, err = truetype.Parse(gobold.TTF); err != nil {
			panic(fmt.Sprintf("draw: parse gobold: %v", err))
		}
	})
	if bold {
		return fontBold
	}
	return fontRegular
}
