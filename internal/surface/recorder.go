package surface

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// OpKind identifies a recorded drawing command
type OpKind int

const (
	OpClear OpKind = iota
	OpPolyline
	OpRect
	OpText
	OpArc
)

// Op is one recorded drawing command
type Op struct {
	Kind      OpKind
	Points    []Point
	Rect      Rect
	Stroke    Stroke
	Fill      drawing.Color
	Text      string
	At        Point
	TextStyle TextStyle
	Center    Point
	Radius    float64
	Start     float64
	End       float64
}

// Recorder is a headless Surface that keeps every command it receives.
type Recorder struct {
	ops []Op
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear(rect Rect) {
	r.ops = append(r.ops, Op{Kind: OpClear, Rect: rect})
}

func (r *Recorder) StrokePolyline(points []Point, stroke Stroke) {
	pts := make([]Point, len(points))
	copy(pts, points)
	r.ops = append(r.ops, Op{Kind: OpPolyline, Points: pts, Stroke: copyStroke(stroke)})
}

func (r *Recorder) FillRect(rect Rect, fill drawing.Color) {
	r.ops = append(r.ops, Op{Kind: OpRect, Rect: rect, Fill: fill})
}

func (r *Recorder) FillText(text string, at Point, style TextStyle) {
	r.ops = append(r.ops, Op{Kind: OpText, Text: text, At: at, TextStyle: style})
}

func (r *Recorder) StrokeArc(center Point, radius, startAngle, endAngle float64, stroke Stroke, fill drawing.Color) {
	r.ops = append(r.ops, Op{
		Kind:   OpArc,
		Center: center,
		Radius: radius,
		Start:  startAngle,
		End:    endAngle,
		Stroke: copyStroke(stroke),
		Fill:   fill,
	})
}

// Ops returns all commands recorded since the last Take or Reset
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Take returns the recorded commands and starts a new recording
func (r *Recorder) Take() []Op {
	ops := r.ops
	r.ops = nil
	return ops
}

// Reset discards all recorded commands
func (r *Recorder) Reset() {
	r.ops = nil
}

// Polylines returns only the polyline commands
func (r *Recorder) Polylines() []Op {
	return r.filter(OpPolyline)
}

// Arcs returns only the arc commands
func (r *Recorder) Arcs() []Op {
	return r.filter(OpArc)
}

// Texts returns the text of every text command in order
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Segments counts line segments across all polylines
func (r *Recorder) Segments() int {
	n := 0
	for _, op := range r.Polylines() {
		if len(op.Points) > 1 {
			n += len(op.Points) - 1
		}
	}
	return n
}

func (r *Recorder) filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Replay issues ops against another surface in order
func Replay(ops []Op, dst Surface) {
	for _, op := range ops {
		switch op.Kind {
		case OpClear:
			dst.Clear(op.Rect)
		case OpPolyline:
			dst.StrokePolyline(op.Points, op.Stroke)
		case OpRect:
			dst.FillRect(op.Rect, op.Fill)
		case OpText:
			dst.FillText(op.Text, op.At, op.TextStyle)
		case OpArc:
			dst.StrokeArc(op.Center, op.Radius, op.Start, op.End, op.Stroke, op.Fill)
		}
	}
}

func copyStroke(s Stroke) Stroke {
	if s.Dash != nil {
		dash := make([]float64, len(s.Dash))
		copy(dash, s.Dash)
		s.Dash = dash
	}
	return s
}
