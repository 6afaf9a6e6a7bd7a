package surface

import (
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
)

// Canvas is a raster Surface backed by a gg drawing context
type Canvas struct {
	dc    *gg.Context
	ttf   *truetype.Font
	faces map[float64]font.Face
	size  float64
}

// NewCanvas creates a white raster canvas
func NewCanvas(width, height int) *Canvas {
	width, height = clampSize(width, height)
	dc := gg.NewContext(width, height)
	dc.SetColor(drawing.ColorWhite)
	dc.Clear()
	c := &Canvas{dc: dc, faces: map[float64]font.Face{}}
	// without the default font gg keeps its built-in face
	if f, err := chart.GetDefaultFont(); err == nil {
		c.ttf = f
	}
	return c
}

func (c *Canvas) Clear(rect Rect) {
	c.FillRect(rect, drawing.ColorWhite)
}

func (c *Canvas) StrokePolyline(points []Point, stroke Stroke) {
	if len(points) < 2 {
		return
	}
	c.applyStroke(stroke)
	c.dc.NewSubPath()
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.Stroke()
}

func (c *Canvas) FillRect(rect Rect, fill drawing.Color) {
	c.dc.SetColor(fill)
	c.dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
	c.dc.Fill()
}

func (c *Canvas) FillText(text string, at Point, style TextStyle) {
	c.dc.SetColor(style.Color)
	c.setFontSize(style.Size)
	var ax float64
	switch style.Align {
	case AlignCenter:
		ax = 0.5
	case AlignRight:
		ax = 1
	}
	c.dc.DrawStringAnchored(text, at.X, at.Y, ax, 0)
}

func (c *Canvas) StrokeArc(center Point, radius, startAngle, endAngle float64, stroke Stroke, fill drawing.Color) {
	c.dc.NewSubPath()
	c.dc.DrawArc(center.X, center.Y, radius, startAngle, endAngle)
	if fill.A > 0 {
		c.dc.SetColor(fill)
		c.dc.FillPreserve()
	}
	c.applyStroke(stroke)
	c.dc.Stroke()
}

// Save encodes the canvas as PNG
func (c *Canvas) Save(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// setFontSize selects the go-chart default font at size points, using the
// same DPI as the go-chart backend so both render labels alike.
func (c *Canvas) setFontSize(size float64) {
	if c.ttf == nil || size <= 0 || size == c.size {
		return
	}
	face, ok := c.faces[size]
	if !ok {
		face = truetype.NewFace(c.ttf, &truetype.Options{Size: size, DPI: chart.DefaultDPI})
		c.faces[size] = face
	}
	c.dc.SetFontFace(face)
	c.size = size
}

func (c *Canvas) applyStroke(stroke Stroke) {
	c.dc.SetColor(stroke.Color)
	c.dc.SetLineWidth(stroke.Width)
	c.dc.SetDash(stroke.Dash...)
}
