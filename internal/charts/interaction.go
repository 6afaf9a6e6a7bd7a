package charts

import (
	"fmt"

	"forecastchart/internal/metrics"
	"forecastchart/internal/models"
	"forecastchart/internal/surface"
)

// DefaultTooltipOffset lifts the tooltip above the highlighted point
const DefaultTooltipOffset = 40

// Tooltip is the content shown for a hovered sample
type Tooltip struct {
	Day   int
	Label string
	Value string
	Kind  models.SampleKind
}

// Text renders the tooltip as three lines
func (t Tooltip) Text() string {
	return fmt.Sprintf("Day %d\n%s\n%s", t.Day, t.Label, t.Value)
}

// TooltipSink is the host overlay that displays tooltips
type TooltipSink interface {
	Show(tip Tooltip, at surface.Point)
	Hide()
}

// view is what the interaction layer needs from the chart owner
type view interface {
	Animating() bool
	State() *models.ChartState
	Mapper() Mapper
	redraw(highlight int)
}

// Interaction turns pointer events into highlighted redraws and tooltips
type Interaction struct {
	view    view
	sink    TooltipSink
	offset  float64
	format  func(float64) string
	metrics *metrics.Metrics
	active  int
}

func newInteraction(v view, sink TooltipSink, offset float64, format func(float64) string, m *metrics.Metrics) *Interaction {
	if sink == nil {
		sink = nopSink{}
	}
	return &Interaction{view: v, sink: sink, offset: offset, format: format, metrics: m, active: NoHighlight}
}

// Active returns the highlighted index, or NoHighlight
func (in *Interaction) Active() int {
	return in.active
}

// Move handles a pointer move at x. It is a no-op while the reveal
// animation runs or when there are no samples.
func (in *Interaction) Move(x float64) bool {
	if in.view.Animating() {
		in.metrics.PointerIgnored(metrics.IgnoredAnimating)
		return false
	}
	state := in.view.State()
	if state.Len() == 0 {
		in.metrics.PointerIgnored(metrics.IgnoredEmpty)
		return false
	}

	m := in.view.Mapper()
	index := m.NearestIndex(x)
	sample, ok := state.SampleAt(index)
	if !ok {
		return false
	}

	in.active = index
	in.view.redraw(index)
	in.sink.Show(in.tooltipFor(state, sample), surface.Point{
		X: m.IndexToX(index),
		Y: m.ValueToY(sample.Value) - in.offset,
	})
	return true
}

// Leave hides the tooltip and redraws without a highlight. Like Move it is
// a no-op while the reveal animation runs.
func (in *Interaction) Leave() {
	if in.view.Animating() {
		in.metrics.PointerIgnored(metrics.IgnoredAnimating)
		return
	}
	in.reset()
	if in.view.State() == nil {
		return
	}
	in.view.redraw(NoHighlight)
}

// reset drops the highlight and hides the tooltip without redrawing
func (in *Interaction) reset() {
	in.active = NoHighlight
	in.sink.Hide()
}

func (in *Interaction) tooltipFor(state *models.ChartState, s models.Sample) Tooltip {
	tip := Tooltip{Day: s.Index + 1, Value: in.format(s.Value), Kind: s.Kind}
	switch s.Kind {
	case models.Historical:
		tip.Label = "Historical"
	case models.Forecast:
		tip.Label = state.ForecastLabel()
	}
	return tip
}

type nopSink struct{}

func (nopSink) Show(Tooltip, surface.Point) {}
func (nopSink) Hide() {}
