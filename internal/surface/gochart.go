package surface

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartRenderer adapts a go-chart renderer (PNG or SVG) to Surface
type ChartRenderer struct {
	r      chart.Renderer
	width  int
	height int
}

// NewChartRenderer creates a go-chart backed surface for "png" or "svg" output
func NewChartRenderer(format string, width, height int) (*ChartRenderer, error) {
	var provider chart.RendererProvider
	switch strings.ToLower(format) {
	case "png", "":
		provider = chart.PNG
	case "svg":
		provider = chart.SVG
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	width, height = clampSize(width, height)
	r, err := provider(width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s renderer: %w", format, err)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load default font: %w", err)
	}
	r.SetFont(font)

	return &ChartRenderer{r: r, width: width, height: height}, nil
}

func (c *ChartRenderer) Clear(rect Rect) {
	c.FillRect(rect, drawing.ColorWhite)
}

func (c *ChartRenderer) StrokePolyline(points []Point, stroke Stroke) {
	if len(points) < 2 {
		return
	}
	c.applyStroke(stroke)
	c.r.MoveTo(px(points[0].X), px(points[0].Y))
	for _, p := range points[1:] {
		c.r.LineTo(px(p.X), px(p.Y))
	}
	c.r.Stroke()
}

func (c *ChartRenderer) FillRect(rect Rect, fill drawing.Color) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(drawing.ColorTransparent)
	c.r.SetStrokeWidth(0)
	c.r.MoveTo(px(rect.X), px(rect.Y))
	c.r.LineTo(px(rect.X+rect.W), px(rect.Y))
	c.r.LineTo(px(rect.X+rect.W), px(rect.Y+rect.H))
	c.r.LineTo(px(rect.X), px(rect.Y+rect.H))
	c.r.Close()
	c.r.Fill()
}

func (c *ChartRenderer) FillText(text string, at Point, style TextStyle) {
	c.r.SetFontColor(style.Color)
	c.r.SetFontSize(style.Size)
	x := at.X
	switch style.Align {
	case AlignCenter:
		x -= float64(c.r.MeasureText(text).Width()) / 2
	case AlignRight:
		x -= float64(c.r.MeasureText(text).Width())
	}
	c.r.Text(text, px(x), px(at.Y))
}

func (c *ChartRenderer) StrokeArc(center Point, radius, startAngle, endAngle float64, stroke Stroke, fill drawing.Color) {
	c.applyStroke(stroke)
	c.r.SetFillColor(fill)
	c.r.MoveTo(px(center.X+radius*math.Cos(startAngle)), px(center.Y+radius*math.Sin(startAngle)))
	c.r.ArcTo(px(center.X), px(center.Y), radius, radius, startAngle, endAngle-startAngle)
	if fill.A > 0 {
		c.r.FillStroke()
		return
	}
	c.r.Stroke()
}

// Save encodes the drawn image
func (c *ChartRenderer) Save(w io.Writer) error {
	return c.r.Save(w)
}

func (c *ChartRenderer) applyStroke(stroke Stroke) {
	c.r.SetStrokeColor(stroke.Color)
	c.r.SetStrokeWidth(stroke.Width)
	c.r.SetStrokeDashArray(stroke.Dash)
}

func px(v float64) int {
	return int(math.Round(v))
}

func clampSize(width, height int) (int, int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}
