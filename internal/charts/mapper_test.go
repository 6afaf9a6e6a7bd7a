package charts

import (
	"math"
	"testing"

	"forecastchart/internal/models"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

var testCanvas = Canvas{Width: 800, Height: 400, Padding: 50}

func TestMapper_IndexToX(t *testing.T) {
	for _, count := range []int{2, 3, 10, 75} {
		m := NewMapper(testCanvas, count, ValueDomain{Min: 0, Max: 1})

		if got := m.IndexToX(0); !near(got, testCanvas.Padding) {
			t.Errorf("count=%d: IndexToX(0) = %v, want %v", count, got, testCanvas.Padding)
		}
		if got := m.IndexToX(count - 1); !near(got, testCanvas.Width-testCanvas.Padding) {
			t.Errorf("count=%d: IndexToX(last) = %v, want %v", count, got, testCanvas.Width-testCanvas.Padding)
		}
		for i := 1; i < count; i++ {
			if m.IndexToX(i) < m.IndexToX(i-1) {
				t.Errorf("count=%d: IndexToX not monotonic at %d", count, i)
			}
		}
	}
}

func TestMapper_SingleSampleMidpoint(t *testing.T) {
	m := NewMapper(testCanvas, 1, ValueDomain{Min: 0, Max: 1})
	if got := m.IndexToX(0); !near(got, 400) {
		t.Errorf("Expected horizontal midpoint 400, got %v", got)
	}
}

func TestMapper_ValueToY(t *testing.T) {
	d := ValueDomain{Min: 148.5, Max: 156.55}
	m := NewMapper(testCanvas, 10, d)

	if got := m.ValueToY(d.Max); !near(got, testCanvas.Padding) {
		t.Errorf("ValueToY(max) = %v, want %v", got, testCanvas.Padding)
	}
	if got := m.ValueToY(d.Min); !near(got, testCanvas.Height-testCanvas.Padding) {
		t.Errorf("ValueToY(min) = %v, want %v", got, testCanvas.Height-testCanvas.Padding)
	}

	prev := math.Inf(1)
	for v := d.Min; v <= d.Max; v += 0.25 {
		y := m.ValueToY(v)
		if y > prev {
			t.Errorf("ValueToY not non-increasing at %v", v)
		}
		prev = y
	}
}

func TestMapper_DegenerateDomainMidpoint(t *testing.T) {
	m := NewMapper(testCanvas, 10, ValueDomain{Min: 5, Max: 5})
	if got := m.ValueToY(5); !near(got, 200) {
		t.Errorf("Expected vertical midpoint 200, got %v", got)
	}
}

func TestNewValueDomain(t *testing.T) {
	tests := []struct {
		name   string
		series []models.Series
		want   ValueDomain
	}{
		{
			name:   "expanded one percent",
			series: []models.Series{models.NewChartState("", "", []float64{100, 200}, nil).Historical},
			want:   ValueDomain{Min: 99, Max: 202},
		},
		{
			name: "union of both series",
			series: func() []models.Series {
				s := models.NewChartState("", "", []float64{150}, []float64{100})
				return []models.Series{s.Historical, s.Forecast}
			}(),
			want: ValueDomain{Min: 99, Max: 151.5},
		},
		{
			name:   "all zero falls back to fixed span",
			series: []models.Series{models.NewChartState("", "", []float64{0, 0, 0}, nil).Historical},
			want:   ValueDomain{Min: -0.5, Max: 0.5},
		},
		{
			name:   "empty",
			series: nil,
			want:   ValueDomain{Min: 0, Max: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewValueDomain(tt.series...)
			if !near(got.Min, tt.want.Min) || !near(got.Max, tt.want.Max) {
				t.Errorf("NewValueDomain = %+v, want %+v", got, tt.want)
			}
			if !(got.Max > got.Min) {
				t.Errorf("Domain must satisfy Max > Min, got %+v", got)
			}
		})
	}
}

func TestMapper_NearestIndexAtSamplePositions(t *testing.T) {
	for _, count := range []int{2, 7, 75, 500} {
		m := NewMapper(testCanvas, count, ValueDomain{Min: 0, Max: 1})
		for i := 0; i < count; i++ {
			if got := m.NearestIndex(m.IndexToX(i)); got != i {
				t.Errorf("count=%d: NearestIndex(IndexToX(%d)) = %d", count, i, got)
			}
		}
	}
}

func TestMapper_NearestIndexClamps(t *testing.T) {
	m := NewMapper(testCanvas, 10, ValueDomain{Min: 0, Max: 1})

	if got := m.NearestIndex(-500); got != 0 {
		t.Errorf("Expected clamp to 0, got %d", got)
	}
	if got := m.NearestIndex(5000); got != 9 {
		t.Errorf("Expected clamp to 9, got %d", got)
	}
	if got := NewMapper(testCanvas, 0, ValueDomain{}).NearestIndex(100); got != -1 {
		t.Errorf("Expected -1 without samples, got %d", got)
	}
	if got := NewMapper(testCanvas, 1, ValueDomain{}).NearestIndex(700); got != 0 {
		t.Errorf("Expected 0 for a single sample, got %d", got)
	}
}

func TestCanvas_CollapsedPlotClamped(t *testing.T) {
	c := Canvas{Width: 60, Height: 40, Padding: 50}
	if c.PlotWidth() != 1 || c.PlotHeight() != 1 {
		t.Errorf("Expected 1px plot, got %vx%v", c.PlotWidth(), c.PlotHeight())
	}
	if (Canvas{Width: 0, Height: 10}).Drawable() {
		t.Error("Zero width canvas should not be drawable")
	}
}
