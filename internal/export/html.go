package export

import (
	"bytes"
	"fmt"
	"strconv"

	"forecastchart/internal/charts"
	"forecastchart/internal/models"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// missing marks a gap in an echarts line series
const missing = "-"

// HTMLOptions sizes and colors the interactive page
type HTMLOptions struct {
	Width  int
	Height int
	Theme  *charts.Theme
}

// RenderHTML builds a standalone echarts page of state with the historical
// series solid and the forecast series dashed, joined at the last historical
// day and split by a vertical mark line.
func RenderHTML(state *models.ChartState, o HTMLOptions) ([]byte, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if state.Len() == 0 {
		return nil, charts.ErrNoState
	}
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 400
	}
	theme := charts.DefaultTheme()
	if o.Theme != nil {
		theme = *o.Theme
	}

	title := state.Label
	if title == "" {
		title = state.ForecastLabel()
	}

	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     types.ThemeWesteros,
			Width:     fmt.Sprintf("%dpx", o.Width),
			Height:    fmt.Sprintf("%dpx", o.Height),
		}),
		echarts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: state.ForecastLabel(),
		}),
		echarts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		echarts.WithXAxisOpts(opts.XAxis{
			Name: "Day",
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name:  "Value",
			Scale: opts.Bool(true),
		}),
		echarts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
	)

	days, hist, fc := lineSeries(state)
	forecastOpts := []echarts.SeriesOpts{
		echarts.WithLineStyleOpts(opts.LineStyle{
			Color: hexColor(theme.Forecast),
			Width: float32(theme.LineWidth),
			Type:  "dashed",
		}),
		echarts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(theme.Forecast)}),
	}
	if n := len(state.Historical); n > 0 && len(state.Forecast) > 0 {
		forecastOpts = append(forecastOpts,
			echarts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
				Name:  "Forecast start",
				XAxis: days[n-1],
			}),
			echarts.WithMarkLineStyleOpts(opts.MarkLineStyle{
				Symbol: []string{"none", "none"},
				LineStyle: &opts.LineStyle{
					Color: hexColor(theme.Divider),
					Type:  "dashed",
				},
			}),
		)
	}

	line.SetXAxis(days).
		AddSeries(charts.HistoricalName, hist,
			echarts.WithLineStyleOpts(opts.LineStyle{
				Color: hexColor(theme.Historical),
				Width: float32(theme.LineWidth),
			}),
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(theme.Historical)}),
		).
		AddSeries(state.ForecastLabel(), fc, forecastOpts...)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render html chart: %w", err)
	}
	return buf.Bytes(), nil
}

// lineSeries lays both series over one shared day axis. The forecast series
// repeats the last historical value so the two lines meet.
func lineSeries(state *models.ChartState) ([]string, []opts.LineData, []opts.LineData) {
	total := state.Len()
	days := make([]string, total)
	hist := make([]opts.LineData, total)
	fc := make([]opts.LineData, total)

	for i := 0; i < total; i++ {
		days[i] = strconv.Itoa(i + 1)
		hist[i] = opts.LineData{Value: missing}
		fc[i] = opts.LineData{Value: missing}
	}
	for _, s := range state.Historical {
		hist[s.Index] = opts.LineData{Value: s.Value}
	}
	if last, ok := state.Historical.Last(); ok && len(state.Forecast) > 0 {
		fc[last.Index] = opts.LineData{Value: last.Value}
	}
	for _, s := range state.Forecast {
		fc[s.Index] = opts.LineData{Value: s.Value}
	}
	return days, hist, fc
}

func hexColor(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
