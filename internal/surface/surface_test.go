package surface

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func drawSample(s Surface) {
	s.Clear(Rect{X: 0, Y: 0, W: 200, H: 100})
	s.StrokePolyline([]Point{{10, 90}, {100, 10}, {190, 50}}, Stroke{Color: drawing.ColorBlue, Width: 2})
	s.StrokePolyline([]Point{{10, 10}, {190, 10}}, Stroke{Color: drawing.ColorRed, Width: 1, Dash: []float64{5, 5}})
	s.FillRect(Rect{X: 20, Y: 20, W: 12, H: 12}, drawing.ColorGreen)
	s.FillText("Day 1", Point{X: 100, Y: 50}, TextStyle{Color: drawing.ColorBlack, Size: 10, Align: AlignCenter})
	s.StrokeArc(Point{X: 100, Y: 10}, 6, 0, 2*math.Pi, Stroke{Color: drawing.ColorWhite, Width: 2}, drawing.ColorBlue)
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	drawSample(rec)

	if got := len(rec.Ops()); got != 6 {
		t.Fatalf("Expected 6 ops, got %d", got)
	}
	if got := rec.Segments(); got != 3 {
		t.Errorf("Expected 3 segments, got %d", got)
	}
	if texts := rec.Texts(); len(texts) != 1 || texts[0] != "Day 1" {
		t.Errorf("Expected texts [Day 1], got %v", texts)
	}
	if got := len(rec.Arcs()); got != 1 {
		t.Errorf("Expected 1 arc, got %d", got)
	}

	ops := rec.Take()
	if len(ops) != 6 || len(rec.Ops()) != 0 {
		t.Errorf("Take should hand over all ops and start fresh, got %d taken and %d left", len(ops), len(rec.Ops()))
	}
}

func TestRecorder_CopiesInput(t *testing.T) {
	rec := NewRecorder()
	pts := []Point{{0, 0}, {1, 1}}
	dash := []float64{4, 2}
	rec.StrokePolyline(pts, Stroke{Dash: dash})

	pts[0].X = 99
	dash[0] = 99

	op := rec.Polylines()[0]
	if op.Points[0].X != 0 {
		t.Error("Recorder should not alias caller points")
	}
	if op.Stroke.Dash[0] != 4 {
		t.Error("Recorder should not alias caller dash pattern")
	}
}

func TestReplay(t *testing.T) {
	src := NewRecorder()
	drawSample(src)

	dst := NewRecorder()
	Replay(src.Ops(), dst)

	if len(dst.Ops()) != len(src.Ops()) {
		t.Fatalf("Expected %d replayed ops, got %d", len(src.Ops()), len(dst.Ops()))
	}
	for i := range src.Ops() {
		if src.Ops()[i].Kind != dst.Ops()[i].Kind {
			t.Errorf("Op %d kind mismatch: %v vs %v", i, src.Ops()[i].Kind, dst.Ops()[i].Kind)
		}
	}
}

func TestNewImage(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		format  string
		prefix  []byte
		wantErr bool
	}{
		{name: "go-chart png", backend: BackendGoChart, format: "png", prefix: pngMagic},
		{name: "go-chart svg", backend: BackendGoChart, format: "svg", prefix: []byte("<svg")},
		{name: "gg png", backend: BackendGG, format: "png", prefix: pngMagic},
		{name: "gg svg unsupported", backend: BackendGG, format: "svg", wantErr: true},
		{name: "unknown backend", backend: "cairo", format: "png", wantErr: true},
		{name: "unknown format", backend: BackendGoChart, format: "bmp", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewImage(tt.backend, tt.format, 200, 100)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewImage failed: %v", err)
			}

			drawSample(img)

			var buf bytes.Buffer
			if err := img.Save(&buf); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), tt.prefix) {
				head := buf.String()
				if len(head) > 16 {
					head = head[:16]
				}
				t.Errorf("Unexpected output header %q", strings.TrimSpace(head))
			}
		})
	}
}

func TestNewImage_ClampsCollapsedSize(t *testing.T) {
	img, err := NewImage(BackendGG, "png", 0, -5)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	var buf bytes.Buffer
	if err := img.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}

func TestCanvas_TextUsesStyleSize(t *testing.T) {
	c := NewCanvas(200, 100)
	if c.ttf == nil {
		t.Fatal("Expected default font to be loaded")
	}

	c.FillText("Day 63", Point{X: 10, Y: 20}, TextStyle{Color: drawing.ColorBlack, Size: 11})
	small, _ := c.dc.MeasureString("Day 63")
	c.FillText("Day 63", Point{X: 10, Y: 60}, TextStyle{Color: drawing.ColorBlack, Size: 22})
	large, _ := c.dc.MeasureString("Day 63")

	if !(large > small*1.5) {
		t.Errorf("Expected text at size 22 to be wider than at 11, got %.1f vs %.1f", large, small)
	}
	if len(c.faces) != 2 {
		t.Errorf("Expected 2 cached faces, got %d", len(c.faces))
	}

	c.FillText("Day 63", Point{X: 10, Y: 90}, TextStyle{Color: drawing.ColorBlack, Size: 11})
	again, _ := c.dc.MeasureString("Day 63")
	if again != small {
		t.Errorf("Expected same width for the same size, got %.1f vs %.1f", again, small)
	}
}
