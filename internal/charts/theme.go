package charts

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"forecastchart/internal/models"
	"forecastchart/internal/surface"
)

// Theme holds the colors and stroke settings of a chart
type Theme struct {
	Historical   drawing.Color
	Forecast     drawing.Color
	Grid         drawing.Color
	Divider      drawing.Color
	Guide        drawing.Color
	Label        drawing.Color
	MarkerRing   drawing.Color
	LineWidth    float64
	ForecastDash []float64
	DividerDash  []float64
	FontSize     float64
	MarkerRadius float64
}

// DefaultTheme returns the standard chart palette
func DefaultTheme() Theme {
	return Theme{
		Historical:   drawing.Color{R: 51, G: 102, B: 204, A: 255}, // Blue
		Forecast:     drawing.Color{R: 253, G: 126, B: 20, A: 255}, // Orange
		Grid:         drawing.Color{R: 222, G: 226, B: 230, A: 255},
		Divider:      drawing.Color{R: 108, G: 117, B: 125, A: 255},
		Guide:        drawing.Color{R: 108, G: 117, B: 125, A: 160},
		Label:        drawing.Color{R: 52, G: 58, B: 64, A: 255},
		MarkerRing:   drawing.ColorWhite,
		LineWidth:    2,
		ForecastDash: []float64{5, 5},
		DividerDash:  []float64{3, 3},
		FontSize:     11,
		MarkerRadius: 6,
	}
}

// SeriesStyle controls how one series polyline is stroked. When Join is set
// the polyline starts from that point before the first revealed sample.
type SeriesStyle struct {
	Stroke surface.Stroke
	Join   *ScreenPoint
}

// HistoricalStyle is a solid stroke in the historical color
func (t Theme) HistoricalStyle() SeriesStyle {
	return SeriesStyle{Stroke: surface.Stroke{Color: t.Historical, Width: t.LineWidth}}
}

// ForecastStyle is a dashed stroke in the forecast color joined to the
// given point, normally the last historical sample.
func (t Theme) ForecastStyle(join *ScreenPoint) SeriesStyle {
	return SeriesStyle{
		Stroke: surface.Stroke{Color: t.Forecast, Width: t.LineWidth, Dash: t.ForecastDash},
		Join:   join,
	}
}

// ColorFor returns the series color of a sample kind
func (t Theme) ColorFor(kind models.SampleKind) drawing.Color {
	switch kind {
	case models.Forecast:
		return t.Forecast
	case models.Historical:
		return t.Historical
	default:
		return t.Label
	}
}

func (t Theme) text(align surface.Align) surface.TextStyle {
	return surface.TextStyle{Color: t.Label, Size: t.FontSize, Align: align}
}
