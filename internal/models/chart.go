package models

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
)

// SampleKind classifies a sample as observed history or model output
type SampleKind int

const (
	Historical SampleKind = iota
	Forecast
)

// String returns the lower-case name used in JSON documents
func (k SampleKind) String() string {
	switch k {
	case Historical:
		return "historical"
	case Forecast:
		return "forecast"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k SampleKind) MarshalText() ([]byte, error) {
	switch k {
	case Historical, Forecast:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unknown sample kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *SampleKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "historical":
		*k = Historical
	case "forecast":
		*k = Forecast
	default:
		return fmt.Errorf("unknown sample kind %q", string(text))
	}
	return nil
}

// Sample is one data point of a chart
type Sample struct {
	Index int        `json:"index"`
	Value float64    `json:"value"`
	Kind  SampleKind `json:"kind"`
}

// Series is an ordered run of samples; slice order equals index order
type Series []Sample

// Values returns the raw values of the series
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, sample := range s {
		out[i] = sample.Value
	}
	return out
}

// Last returns the final sample of the series
func (s Series) Last() (Sample, bool) {
	if len(s) == 0 {
		return Sample{}, false
	}
	return s[len(s)-1], true
}

// ChartState is the complete data for one analysis run. It is replaced
// wholesale when new data arrives and never patched in place.
type ChartState struct {
	Label      string `json:"label"`
	ModelName  string `json:"model_name"`
	Historical Series `json:"historical"`
	Forecast   Series `json:"forecast"`
}

// NewChartState builds a state from plain value slices, assigning contiguous
// indices with the forecast continuing after the last historical index.
func NewChartState(label, modelName string, historical, forecast []float64) *ChartState {
	state := &ChartState{
		Label:      label,
		ModelName:  modelName,
		Historical: make(Series, 0, len(historical)),
		Forecast:   make(Series, 0, len(forecast)),
	}
	for i, v := range historical {
		state.Historical = append(state.Historical, Sample{Index: i, Value: v, Kind: Historical})
	}
	offset := len(historical)
	for i, v := range forecast {
		state.Forecast = append(state.Forecast, Sample{Index: offset + i, Value: v, Kind: Forecast})
	}
	return state
}

// Len returns the number of samples across both series
func (cs *ChartState) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.Historical) + len(cs.Forecast)
}

// SampleAt returns the sample at a global index
func (cs *ChartState) SampleAt(index int) (Sample, bool) {
	if cs == nil || index < 0 || index >= cs.Len() {
		return Sample{}, false
	}
	if index < len(cs.Historical) {
		return cs.Historical[index], true
	}
	return cs.Forecast[index-len(cs.Historical)], true
}

// ForecastLabel is the display name of the forecast series
func (cs *ChartState) ForecastLabel() string {
	name := strings.TrimSpace(cs.ModelName)
	if name == "" {
		return "Forecast"
	}
	return name + " Forecast"
}

// ValidationError describes why a chart state cannot be rendered
type ValidationError struct {
	Field  string
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid chart state: %s[%d]: %s", e.Field, e.Index, e.Reason)
}

// Validate checks that indices are contiguous from zero across both series,
// kinds match their series, and all values are finite.
func (cs *ChartState) Validate() error {
	if cs == nil {
		return &ValidationError{Field: "state", Reason: "nil chart state"}
	}
	next := 0
	check := func(field string, series Series, kind SampleKind) error {
		for i, s := range series {
			if s.Index != next {
				return &ValidationError{Field: field, Index: i, Reason: fmt.Sprintf("expected index %d, got %d", next, s.Index)}
			}
			if s.Kind != kind {
				return &ValidationError{Field: field, Index: i, Reason: fmt.Sprintf("expected kind %s, got %s", kind, s.Kind)}
			}
			if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
				return &ValidationError{Field: field, Index: i, Reason: "value is not finite"}
			}
			next++
		}
		return nil
	}
	if err := check("historical", cs.Historical, Historical); err != nil {
		return err
	}
	return check("forecast", cs.Forecast, Forecast)
}

// DecodeChartState reads a JSON chart document. Samples without an explicit
// kind take the kind of the series they appear in.
func DecodeChartState(r io.Reader) (*ChartState, error) {
	var doc struct {
		Label      string `json:"label"`
		ModelName  string `json:"model_name"`
		Historical []struct {
			Index *int    `json:"index"`
			Value float64 `json:"value"`
		} `json:"historical"`
		Forecast []struct {
			Index *int    `json:"index"`
			Value float64 `json:"value"`
		} `json:"forecast"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode chart state: %w", err)
	}

	state := &ChartState{Label: doc.Label, ModelName: doc.ModelName}
	for i, p := range doc.Historical {
		idx := i
		if p.Index != nil {
			idx = *p.Index
		}
		state.Historical = append(state.Historical, Sample{Index: idx, Value: p.Value, Kind: Historical})
	}
	for i, p := range doc.Forecast {
		idx := len(doc.Historical) + i
		if p.Index != nil {
			idx = *p.Index
		}
		state.Forecast = append(state.Forecast, Sample{Index: idx, Value: p.Value, Kind: Forecast})
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}
	return state, nil
}
