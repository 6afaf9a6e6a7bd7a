package export

import (
	"encoding/json"

	"forecastchart/internal/charts"
	"forecastchart/internal/surface"
)

// TooltipState is a headless tooltip overlay that remembers what it shows
type TooltipState struct {
	Visible bool           `json:"visible"`
	Day     int            `json:"day,omitempty"`
	Label   string         `json:"label,omitempty"`
	Value   string         `json:"value,omitempty"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Tip     charts.Tooltip `json:"-"`
}

// Show implements charts.TooltipSink
func (t *TooltipState) Show(tip charts.Tooltip, at surface.Point) {
	*t = TooltipState{
		Visible: true,
		Day:     tip.Day,
		Label:   tip.Label,
		Value:   tip.Value,
		X:       at.X,
		Y:       at.Y,
		Tip:     tip,
	}
}

// Hide implements charts.TooltipSink
func (t *TooltipState) Hide() {
	*t = TooltipState{}
}

// JSON encodes the overlay state
func (t *TooltipState) JSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}
