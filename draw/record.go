package draw

// OpKind names a recorded drawing operation.
type OpKind string

const (
	OpFill        OpKind = "fill"
	OpFillEllipse OpKind = "fillellipse"
	OpFillArc     OpKind = "fillarc"
	OpLine        OpKind = "line"
	OpFillPoly    OpKind = "fillpoly"
	OpString      OpKind = "string"
)

// Op is one recorded drawing call. Only the fields that apply to Kind
// are set.
type Op struct {
	Kind   OpKind
	Color  Color
	Center Point
	A, B   int // radius, or semi-axes for ellipses
	Alpha  float64
	Phi    float64
	Points []Point
	Thick  int
	Angle  float64
	Font   Font
	Text   string
}

// Recorder is a Canvas that remembers what was drawn instead of
// producing pixels.
type Recorder struct {
	R       Rectangle
	Ops     []Op
	Flushes int
}

var _ Canvas = (*Recorder)(nil)

// NewRecorder returns a recorder with the given bounds.
func NewRecorder(r Rectangle) *Recorder {
	return &Recorder{R: r}
}

// Reset forgets all recorded ops.
func (r *Recorder) Reset() {
	r.Ops = nil
	r.Flushes = 0
}

// Kind returns the recorded ops of one kind, in order.
func (r *Recorder) Kind(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) Bounds() Rectangle { return r.R }

func (r *Recorder) Fill(col Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Color: col})
}

func (r *Recorder) FillEllipse(c Point, a, b int, col Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillEllipse, Center: c, A: a, B: b, Color: col})
}

func (r *Recorder) FillArc(c Point, rad int, alpha, phi float64, col Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillArc, Center: c, A: rad, B: rad, Alpha: alpha, Phi: phi, Color: col})
}

func (r *Recorder) Line(p0, p1 Point, thick int, col Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Points: []Point{p0, p1}, Thick: thick, Color: col})
}

func (r *Recorder) FillPoly(p []Point, col Color) {
	pts := append([]Point(nil), p...)
	r.Ops = append(r.Ops, Op{Kind: OpFillPoly, Points: pts, Color: col})
}

func (r *Recorder) String(p Point, angle float64, f Font, s string, col Color) {
	r.Ops = append(r.Ops, Op{Kind: OpString, Center: p, Angle: angle, Font: f, Text: s, Color: col})
}

func (r *Recorder) Flush() error {
	r.Flushes++
	return nil
}
