package charts

import (
	"math"

	"forecastchart/internal/metrics"
	"forecastchart/internal/models"
	"forecastchart/internal/surface"
)

const (
	gridLines      = 4
	legendSwatch   = 12
	legendSpacing  = 160
	labelGap       = 8
	HistoricalName = "Historical Data"
)

// NoHighlight marks a frame without a selected sample
const NoHighlight = -1

// Frame describes one complete picture of the chart
type Frame struct {
	Canvas           Canvas
	State            *models.ChartState
	HistoricalReveal float64
	ForecastReveal   float64
	// Highlight is the selected sample index, or NoHighlight. Only static
	// frames draw it.
	Highlight int
	Animated  bool
}

// StaticFrame is a fully revealed frame with an optional highlight
func StaticFrame(canvas Canvas, state *models.ChartState, highlight int) Frame {
	return Frame{
		Canvas:           canvas,
		State:            state,
		HistoricalReveal: 1,
		ForecastReveal:   1,
		Highlight:        highlight,
	}
}

// AnimatedFrame is a partially revealed frame without highlight
func AnimatedFrame(canvas Canvas, state *models.ChartState, reveal Reveal) Frame {
	return Frame{
		Canvas:           canvas,
		State:            state,
		HistoricalReveal: reveal.Historical,
		ForecastReveal:   reveal.Forecast,
		Highlight:        NoHighlight,
		Animated:         true,
	}
}

// Pipeline draws frames onto a surface
type Pipeline struct {
	surface surface.Surface
	theme   Theme
	format  func(float64) string
	metrics *metrics.Metrics
}

// NewPipeline creates a render pipeline
func NewPipeline(s surface.Surface, theme Theme, format func(float64) string, m *metrics.Metrics) *Pipeline {
	return &Pipeline{surface: s, theme: theme, format: format, metrics: m}
}

// Render clears the surface and draws a complete frame. It returns false
// when the canvas has no drawable area and nothing was drawn.
func (p *Pipeline) Render(f Frame) bool {
	if !f.Canvas.Drawable() {
		p.metrics.FrameSkipped()
		return false
	}

	m := MapperFor(f.Canvas, f.State)
	p.surface.Clear(surface.Rect{X: 0, Y: 0, W: f.Canvas.Width, H: f.Canvas.Height})
	p.DrawGrid(m)

	if f.State != nil {
		p.DrawSeries(m, f.State.Historical, p.theme.HistoricalStyle(), f.HistoricalReveal)

		var join *ScreenPoint
		if last, ok := f.State.Historical.Last(); ok {
			pt := m.Point(last)
			join = &pt
		}
		p.DrawSeries(m, f.State.Forecast, p.theme.ForecastStyle(join), f.ForecastReveal)

		p.DrawDivider(m, f.State)
		p.DrawLegend(f.Canvas, f.State)

		if !f.Animated && f.Highlight != NoHighlight {
			if sample, ok := f.State.SampleAt(f.Highlight); ok {
				p.DrawHighlight(m, m.Point(sample))
			}
		}
	}

	if f.Animated {
		p.metrics.FrameDrawn(metrics.ModeAnimated)
	} else {
		p.metrics.FrameDrawn(metrics.ModeStatic)
	}
	return true
}

// DrawGrid draws evenly spaced horizontal reference lines from the top to
// the bottom of the plot, each labeled with the value at its height.
func (p *Pipeline) DrawGrid(m Mapper) {
	c := m.Canvas()
	d := m.Domain()
	stroke := surface.Stroke{Color: p.theme.Grid, Width: 1}

	for i := 0; i < gridLines; i++ {
		frac := float64(i) / float64(gridLines-1)
		y := c.Top() + frac*c.PlotHeight()
		p.surface.StrokePolyline([]surface.Point{
			{X: c.Padding, Y: y},
			{X: c.Padding + c.PlotWidth(), Y: y},
		}, stroke)

		label := p.format(d.Max - frac*d.Span())
		p.surface.FillText(label, surface.Point{X: c.Padding - labelGap, Y: y + p.theme.FontSize/3}, p.theme.text(surface.AlignRight))
	}
}

// DrawSeries strokes a polyline through the first floor(len*reveal) samples
// and returns the points drawn. A zero reveal or an empty series draws nothing.
func (p *Pipeline) DrawSeries(m Mapper, series models.Series, style SeriesStyle, reveal float64) []ScreenPoint {
	pts := VisiblePoints(m, series, reveal)
	if len(pts) == 0 {
		return nil
	}
	if style.Join != nil {
		pts = append([]ScreenPoint{*style.Join}, pts...)
	}
	if len(pts) < 2 {
		return pts
	}

	line := make([]surface.Point, len(pts))
	for i, pt := range pts {
		line[i] = surface.Point{X: pt.X, Y: pt.Y}
	}
	p.surface.StrokePolyline(line, style.Stroke)
	return pts
}

// VisiblePoints places the revealed prefix of a series
func VisiblePoints(m Mapper, series models.Series, reveal float64) []ScreenPoint {
	n := RevealCount(len(series), reveal)
	pts := make([]ScreenPoint, 0, n)
	for _, s := range series[:n] {
		pts = append(pts, m.Point(s))
	}
	return pts
}

// RevealCount is floor(length * reveal) clamped to [0, length]
func RevealCount(length int, reveal float64) int {
	if math.IsNaN(reveal) || reveal <= 0 {
		return 0
	}
	if reveal >= 1 {
		return length
	}
	n := int(math.Floor(float64(length) * reveal))
	if n > length {
		return length
	}
	return n
}

// DrawDivider draws the dashed vertical boundary at the last historical index
func (p *Pipeline) DrawDivider(m Mapper, state *models.ChartState) {
	if len(state.Historical) == 0 {
		return
	}
	x := DividerX(m, state)
	c := m.Canvas()
	p.surface.StrokePolyline([]surface.Point{
		{X: x, Y: c.Top()},
		{X: x, Y: c.Bottom()},
	}, surface.Stroke{Color: p.theme.Divider, Width: 1, Dash: p.theme.DividerDash})
}

// DividerX is the x position of the historical/forecast boundary
func DividerX(m Mapper, state *models.ChartState) float64 {
	return m.IndexToX(len(state.Historical) - 1)
}

// DrawLegend draws the two series swatches and labels above the plot
func (p *Pipeline) DrawLegend(c Canvas, state *models.ChartState) {
	y := math.Max(c.Padding/2, legendSwatch)
	entries := []struct {
		label string
		kind  models.SampleKind
	}{
		{HistoricalName, models.Historical},
		{state.ForecastLabel(), models.Forecast},
	}

	for i, e := range entries {
		x := c.Padding + float64(i)*legendSpacing
		p.surface.FillRect(surface.Rect{X: x, Y: y - legendSwatch + 2, W: legendSwatch, H: legendSwatch}, p.theme.ColorFor(e.kind))
		p.surface.FillText(e.label, surface.Point{X: x + legendSwatch + 6, Y: y}, p.theme.text(surface.AlignLeft))
	}
}

// DrawHighlight draws a vertical guide through the point and a marker on it
func (p *Pipeline) DrawHighlight(m Mapper, pt ScreenPoint) {
	c := m.Canvas()
	p.surface.StrokePolyline([]surface.Point{
		{X: pt.X, Y: c.Top()},
		{X: pt.X, Y: c.Bottom()},
	}, surface.Stroke{Color: p.theme.Guide, Width: 1})

	p.surface.StrokeArc(
		surface.Point{X: pt.X, Y: pt.Y},
		p.theme.MarkerRadius,
		0, 2*math.Pi,
		surface.Stroke{Color: p.theme.MarkerRing, Width: 2},
		p.theme.ColorFor(pt.Sample.Kind),
	)
}
