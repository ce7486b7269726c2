package draw

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/multierr"
)

// Device is a Canvas that speaks the /dev/draw message protocol.
// Messages are buffered and written in one piece by Flush, since the
// draw device wants whole messages per write.
type Device struct {
	w       io.Writer
	closers []io.Closer
	screen  int // image id of the window
	r       Rectangle
	nextID  int
	colors  map[Color]int
	buf     []byte
	err     error
}

var _ Canvas = (*Device)(nil)

// Glyph cell used for labels; the device has no font loaded, so each
// rune is drawn as a filled box of this size.
const (
	glyphW = 7
	glyphH = 13
)

// NewDevice returns a device canvas that writes messages to w and draws
// onto image id screen covering r.
func NewDevice(w io.Writer, screen int, r Rectangle) *Device {
	return &Device{
		w:      w,
		screen: screen,
		r:      r,
		nextID: screen + 1,
		colors: make(map[Color]int),
	}
}

// OpenDevice opens a new connection on /dev/draw and returns a device
// canvas for the connection's screen image.
func OpenDevice() (*Device, error) {
	ctl, err := os.OpenFile("/dev/draw/new", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("draw: open /dev/draw/new: %w", err)
	}

	// 12 fields, each 11 characters wide followed by a blank:
	// n, image id, chan, repl, r (4), clipr (4).
	buf := make([]byte, 12*12)
	n, err := ctl.Read(buf)
	if err != nil {
		ctl.Close()
		return nil, fmt.Errorf("draw: read /dev/draw/new: %w", err)
	}
	if n < 12*12 {
		ctl.Close()
		return nil, fmt.Errorf("draw: short read from /dev/draw/new: got %d bytes", n)
	}

	field := func(i int) int { return atoi(string(buf[i*12 : i*12+11])) }
	id := field(0)
	r := Rect(field(4), field(5), field(6), field(7))

	dataPath := fmt.Sprintf("/dev/draw/%d/data", id)
	data, err := os.OpenFile(dataPath, os.O_RDWR, 0)
	if err != nil {
		ctl.Close()
		return nil, fmt.Errorf("draw: open %s: %w", dataPath, err)
	}

	d := NewDevice(data, field(1), r)
	d.closers = []io.Closer{data, ctl}
	return d, nil
}

// Close releases the connection, if the device owns one.
func (d *Device) Close() error {
	var err error
	for _, c := range d.closers {
		err = multierr.Append(err, c.Close())
	}
	d.closers = nil
	return err
}

// Err returns the first write error seen, if any.
func (d *Device) Err() error {
	return d.err
}

func (d *Device) Bounds() Rectangle { return d.r }

func (d *Device) Fill(col Color) {
	d.fillRect(d.r, col)
}

func (d *Device) FillEllipse(c Point, a, b int, col Color) {
	d.ellipse('E', c, a, b, 0, col, 0, 0)
}

// FillArc converts to the device's convention: integer degrees,
// counterclockwise with y up. Negating both angles keeps the slice where
// the clockwise radians put it.
func (d *Device) FillArc(c Point, r int, alpha, phi float64, col Color) {
	a := -int(math.Round(alpha * 180 / math.Pi))
	p := -int(math.Round(phi * 180 / math.Pi))
	d.ellipse('E', c, r, r, 0, col, a|1<<31, p)
}

func (d *Device) Line(p0, p1 Point, thick int, col Color) {
	src := d.colorImage(col)
	// 'L' dstid[4] p0[2*4] p1[2*4] end0[4] end1[4] radius[4] srcid[4] sp[2*4]
	a := d.msg(1 + 4 + 2*4 + 2*4 + 4 + 4 + 4 + 4 + 2*4)
	a[0] = 'L'
	bplong(a[1:], uint32(d.screen))
	bplong(a[5:], uint32(p0.X))
	bplong(a[9:], uint32(p0.Y))
	bplong(a[13:], uint32(p1.X))
	bplong(a[17:], uint32(p1.Y))
	bplong(a[21:], 0) // Endsquare
	bplong(a[25:], 0)
	bplong(a[29:], uint32(thick))
	bplong(a[33:], uint32(src))
	bplong(a[37:], 0)
	bplong(a[41:], 0)
}

func (d *Device) FillPoly(pp []Point, col Color) {
	if len(pp) == 0 {
		return
	}
	src := d.colorImage(col)

	t := make([]byte, len(pp)*6)
	u := 0
	ox, oy := 0, 0
	for _, p := range pp {
		u += addcoord(t[u:], ox, p.X)
		ox = p.X
		u += addcoord(t[u:], oy, p.Y)
		oy = p.Y
	}

	// 'P' dstid[4] n[2] wind[4] ignore[2*4] srcid[4] sp[2*4] dp[2*2*n]
	a := d.msg(1 + 4 + 2 + 4 + 4 + 4 + 4 + 2*4 + u)
	a[0] = 'P'
	bplong(a[1:], uint32(d.screen))
	bpshort(a[5:], uint16(len(pp)-1))
	bplong(a[7:], 0) // wind: nonzero
	bplong(a[11:], 0)
	bplong(a[15:], 0)
	bplong(a[19:], uint32(src))
	bplong(a[23:], 0)
	bplong(a[27:], 0)
	copy(a[31:], t[:u])
}

// String draws s unrotated as a row of glyph boxes centered on p.
func (d *Device) String(p Point, angle float64, f Font, s string, col Color) {
	n := 0
	for range s {
		n++
	}
	if n == 0 {
		return
	}
	x := p.X - n*glyphW/2
	y := p.Y - glyphH/2
	for _, ch := range s {
		if ch != ' ' {
			d.fillRect(Rect(x+1, y+2, x+glyphW-1, y+glyphH-2), col)
		}
		x += glyphW
	}
}

// Flush sends the buffered messages followed by a visible flush.
func (d *Device) Flush() error {
	d.buf = append(d.buf, 'v')
	if d.err == nil {
		_, d.err = d.w.Write(d.buf)
	}
	d.buf = d.buf[:0]
	if d.err != nil {
		return fmt.Errorf("draw: flush: %w", d.err)
	}
	return nil
}

func (d *Device) fillRect(r Rectangle, col Color) {
	src := d.colorImage(col)
	// 'd' dstid[4] srcid[4] maskid[4] dstr[4*4] srcp[2*4] maskp[2*4]
	a := d.msg(1 + 4 + 4 + 4 + 4*4 + 2*4 + 2*4)
	a[0] = 'd'
	bplong(a[1:], uint32(d.screen))
	bplong(a[5:], uint32(src))
	bplong(a[9:], uint32(src))
	bplong(a[13:], uint32(r.Min.X))
	bplong(a[17:], uint32(r.Min.Y))
	bplong(a[21:], uint32(r.Max.X))
	bplong(a[25:], uint32(r.Max.Y))
	bplong(a[29:], 0)
	bplong(a[33:], 0)
	bplong(a[37:], 0)
	bplong(a[41:], 0)
}

func (d *Device) ellipse(cmd byte, c Point, xr, yr, thick int, col Color, alpha, phi int) {
	src := d.colorImage(col)
	// cmd dstid[4] srcid[4] c[2*4] a[4] b[4] thick[4] sp[2*4] alpha[4] phi[4]
	a := d.msg(1 + 4 + 4 + 2*4 + 4 + 4 + 4 + 2*4 + 4 + 4)
	a[0] = cmd
	bplong(a[1:], uint32(d.screen))
	bplong(a[5:], uint32(src))
	bplong(a[9:], uint32(c.X))
	bplong(a[13:], uint32(c.Y))
	bplong(a[17:], uint32(xr))
	bplong(a[21:], uint32(yr))
	bplong(a[25:], uint32(thick))
	bplong(a[29:], 0)
	bplong(a[33:], 0)
	bplong(a[37:], uint32(alpha))
	bplong(a[41:], uint32(phi))
}

// colorImage returns the id of a 1x1 replicated image of col,
// allocating it on first use.
func (d *Device) colorImage(col Color) int {
	if id, ok := d.colors[col]; ok {
		return id
	}
	id := d.nextID
	d.nextID++
	d.colors[col] = id

	// 'b' id[4] screenid[4] refresh[1] chan[4] repl[1] r[4*4] clipr[4*4] color[4]
	a := d.msg(1 + 4 + 4 + 1 + 4 + 1 + 4*4 + 4*4 + 4)
	a[0] = 'b'
	bplong(a[1:], uint32(id))
	bplong(a[5:], 0) // no screen
	a[9] = 0         // Refnone
	bplong(a[10:], rgba32)
	a[14] = 1 // replicate
	bplong(a[15:], 0)
	bplong(a[19:], 0)
	bplong(a[23:], 1)
	bplong(a[27:], 1)
	bplong(a[31:], 0x80000000)
	bplong(a[35:], 0x80000000)
	bplong(a[39:], 0x7FFFFFFF)
	bplong(a[43:], 0x7FFFFFFF)
	bplong(a[47:], uint32(col))
	return id
}

// r8g8b8a8 channel descriptor.
const rgba32 = 0x38281808

// msg reserves n bytes at the end of the message buffer.
func (d *Device) msg(n int) []byte {
	off := len(d.buf)
	d.buf = append(d.buf, make([]byte, n)...)
	return d.buf[off : off+n]
}

// addcoord appends a compressed coordinate delta to buf and returns
// the number of bytes written.
func addcoord(buf []byte, oldx, newx int) int {
	dx := newx - oldx
	// does dx fit in 7 signed bits?
	if uint(dx-(-0x40)) <= 0x7F {
		buf[0] = byte(dx) & 0x7F
		return 1
	}
	buf[0] = 0x80 | byte(newx&0x7F)
	buf[1] = byte(newx >> 7)
	buf[2] = byte(newx >> 15)
	return 3
}

func bplong(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}

func bpshort(b []byte, v uint16) {
	binary.LittleEndian.PutUint16(b, v)
}

func atoi(s string) int {
	n := 0
	neg := false
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	if i < len(s) && s[i] == '-' {
		neg = true
		i++
	}
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n
}
