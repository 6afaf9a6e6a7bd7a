// Package surface defines the 2-D drawing capability the chart core draws
// against, plus the backends that implement it.
package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Point is a pixel position
type Point struct {
	X float64
	Y float64
}

// Rect is an axis aligned pixel rectangle
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Stroke describes how a line is drawn. A nil Dash draws a solid line.
type Stroke struct {
	Color drawing.Color
	Width float64
	Dash  []float64
}

// Align is the horizontal anchoring of text relative to its position
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle describes how text is filled
type TextStyle struct {
	Color drawing.Color
	Size  float64
	Align Align
}

// Surface is the drawing capability supplied by the host.
type Surface interface {
	// Clear resets the given region to the background.
	Clear(r Rect)
	StrokePolyline(points []Point, stroke Stroke)
	FillRect(r Rect, fill drawing.Color)
	// FillText draws text with its baseline at the given point.
	FillText(text string, at Point, style TextStyle)
	// StrokeArc outlines an arc between two angles in radians, filling
	// the enclosed area first when fill is not transparent.
	StrokeArc(center Point, radius, startAngle, endAngle float64, stroke Stroke, fill drawing.Color)
}

// Image is a surface that can be encoded to an output stream
type Image interface {
	Surface
	Save(w io.Writer) error
}

// Backend names accepted by NewImage
const (
	BackendGoChart = "gochart"
	BackendGG      = "gg"
)

// NewImage creates an encodable surface for a backend and output format
func NewImage(backend, format string, width, height int) (Image, error) {
	switch strings.ToLower(backend) {
	case BackendGoChart, "":
		return NewChartRenderer(format, width, height)
	case BackendGG:
		if f := strings.ToLower(format); f != "" && f != "png" {
			return nil, fmt.Errorf("backend %s does not support format %s", backend, format)
		}
		return NewCanvas(width, height), nil
	default:
		return nil, fmt.Errorf("unsupported render backend: %s", backend)
	}
}
