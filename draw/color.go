package draw

// Color is a packed 0xRRGGBBAA value, the form /dev/draw uses for
// solid-color images.
type Color uint32

// Standard colors.
const (
	DOpaque      Color = 0xFFFFFFFF
	DTransparent Color = 0x00000000
	DBlack       Color = 0x000000FF
	DWhite       Color = 0xFFFFFFFF
	DRed         Color = 0xFF0000FF
	DGreen       Color = 0x00FF00FF
	DBlue        Color = 0x0000FFFF
	DPaleyellow  Color = 0xFFFFAAFF
	DGreyblue    Color = 0x005DBBFF

	DAcmeYellow Color = 0xFFFFEAFF // warm cream background
	DAcmeBorder Color = 0x888888FF
	DAcmeText   Color = 0x333333FF
	DAcmeDim    Color = 0x999999FF

	DNotacolor Color = 0xFFFFFF00
)

// RGB returns an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | 0xFF)
}

// Components returns the 8-bit red, green, blue and alpha values.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBA implements color.Color. The stored components are taken as
// straight alpha and premultiplied here.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8, a8 := c.Components()
	a = uint32(a8) * 0x101
	r = uint32(r8) * 0x101 * a / 0xFFFF
	g = uint32(g8) * 0x101 * a / 0xFFFF
	b = uint32(b8) * 0x101 * a / 0xFFFF
	return
}
