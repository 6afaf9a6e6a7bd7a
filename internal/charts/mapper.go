package charts

import (
	"math"

	"forecastchart/internal/models"
)

const (
	// domainMargin widens the value domain on each end, relative to the extreme value
	domainMargin = 0.01
	// fallbackSpan replaces a zero-width value domain
	fallbackSpan = 1.0
)

// Canvas holds the pixel metrics of the drawing surface
type Canvas struct {
	Width   float64
	Height  float64
	Padding float64
}

// Drawable reports whether the canvas has a positive area
func (c Canvas) Drawable() bool {
	return c.Width >= 1 && c.Height >= 1
}

// PlotWidth is the horizontal extent between the paddings, never below one pixel
func (c Canvas) PlotWidth() float64 {
	return math.Max(c.Width-2*c.Padding, 1)
}

// PlotHeight is the vertical extent between the paddings, never below one pixel
func (c Canvas) PlotHeight() float64 {
	return math.Max(c.Height-2*c.Padding, 1)
}

// Top is the y coordinate of the plot's upper edge
func (c Canvas) Top() float64 {
	return c.Padding
}

// Bottom is the y coordinate of the plot's lower edge
func (c Canvas) Bottom() float64 {
	return c.Padding + c.PlotHeight()
}

// ValueDomain is the vertical value range mapped onto the plot
type ValueDomain struct {
	Min float64
	Max float64
}

// Span returns Max - Min
func (d ValueDomain) Span() float64 {
	return d.Max - d.Min
}

// NewValueDomain computes the domain over all given series, widened by 1% at
// each end. An empty or zero-width domain is replaced by a fixed span around
// its center so that Max > Min always holds.
func NewValueDomain(series ...models.Series) ValueDomain {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, sample := range s {
			lo = math.Min(lo, sample.Value)
			hi = math.Max(hi, sample.Value)
		}
	}
	if math.IsInf(lo, 1) {
		return ValueDomain{Min: 0, Max: fallbackSpan}
	}

	d := ValueDomain{
		Min: lo - math.Abs(lo)*domainMargin,
		Max: hi + math.Abs(hi)*domainMargin,
	}
	if !(d.Max > d.Min) {
		center := (lo + hi) / 2
		d = ValueDomain{Min: center - fallbackSpan/2, Max: center + fallbackSpan/2}
	}
	return d
}

// ScreenPoint is a sample placed in pixel space. It lives for one frame.
type ScreenPoint struct {
	X      float64
	Y      float64
	Sample models.Sample
}

// Mapper converts sample indices and values to pixel coordinates
type Mapper struct {
	canvas Canvas
	count  int
	domain ValueDomain
}

// NewMapper creates a mapper for count samples spread over the canvas
func NewMapper(canvas Canvas, count int, domain ValueDomain) Mapper {
	return Mapper{canvas: canvas, count: count, domain: domain}
}

// MapperFor builds the mapper of a chart state on a canvas
func MapperFor(canvas Canvas, state *models.ChartState) Mapper {
	if state == nil {
		return NewMapper(canvas, 0, NewValueDomain())
	}
	return NewMapper(canvas, state.Len(), NewValueDomain(state.Historical, state.Forecast))
}

// Canvas returns the metrics the mapper was built with
func (m Mapper) Canvas() Canvas {
	return m.canvas
}

// Domain returns the value domain
func (m Mapper) Domain() ValueDomain {
	return m.domain
}

// Count returns the number of samples on the x axis
func (m Mapper) Count() int {
	return m.count
}

// IndexToX maps [0, count-1] linearly onto [padding, width-padding].
// A single sample sits at the horizontal midpoint.
func (m Mapper) IndexToX(i int) float64 {
	if m.count <= 1 {
		return m.canvas.Padding + m.canvas.PlotWidth()/2
	}
	return m.canvas.Padding + float64(i)/float64(m.count-1)*m.canvas.PlotWidth()
}

// ValueToY maps [min, max] onto [height-padding, padding]; larger values sit higher.
func (m Mapper) ValueToY(v float64) float64 {
	span := m.domain.Span()
	if !(span > 0) {
		return m.canvas.Padding + m.canvas.PlotHeight()/2
	}
	return m.canvas.Padding + (m.domain.Max-v)/span*m.canvas.PlotHeight()
}

// Point places a sample
func (m Mapper) Point(s models.Sample) ScreenPoint {
	return ScreenPoint{X: m.IndexToX(s.Index), Y: m.ValueToY(s.Value), Sample: s}
}

// NearestIndex resolves a horizontal pixel position to the closest sample
// index, clamped to [0, count-1]. It returns -1 when there are no samples.
func (m Mapper) NearestIndex(x float64) int {
	switch {
	case m.count == 0:
		return -1
	case m.count == 1:
		return 0
	}
	step := m.canvas.PlotWidth() / float64(m.count-1)
	index := int(math.Round((x - m.canvas.Padding) / step))
	if index < 0 {
		return 0
	}
	if index > m.count-1 {
		return m.count - 1
	}
	return index
}
