// Package metrics exposes Prometheus instruments for the chart core.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Frame modes
const (
	ModeAnimated = "animated"
	ModeStatic   = "static"
)

// Animation run outcomes
const (
	RunStarted   = "started"
	RunCompleted = "completed"
	RunRestarted = "restarted"
	RunCancelled = "cancelled"
)

// Reasons a pointer event is dropped
const (
	IgnoredAnimating = "animating"
	IgnoredEmpty     = "empty"
)

// Metrics holds all Prometheus metrics for the chart core. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	FramesTotal          *prometheus.CounterVec // labels: mode
	FramesSkipped        prometheus.Counter
	AnimationRuns        *prometheus.CounterVec // labels: outcome
	AnimationFrames      prometheus.Histogram
	PointerEventsIgnored *prometheus.CounterVec // labels: reason

	registry *prometheus.Registry
}

// New creates the metrics on a private registry
func New() *Metrics {
	m := &Metrics{
		FramesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chart_frames_total",
			Help: "Frames drawn by the render pipeline",
		}, []string{"mode"}),
		FramesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chart_frames_skipped_total",
			Help: "Frames skipped because the canvas had no drawable area",
		}),
		AnimationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chart_animation_runs_total",
			Help: "Reveal animation lifecycle events",
		}, []string{"outcome"}),
		AnimationFrames: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chart_animation_frames",
			Help:    "Refresh callbacks consumed by a completed reveal animation",
			Buckets: []float64{5, 10, 20, 34, 50, 100},
		}),
		PointerEventsIgnored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chart_pointer_events_ignored_total",
			Help: "Pointer events dropped by the interaction gate",
		}, []string{"reason"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.FramesTotal,
		m.FramesSkipped,
		m.AnimationRuns,
		m.AnimationFrames,
		m.PointerEventsIgnored,
	)
	return m
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// FrameDrawn counts one completed frame
func (m *Metrics) FrameDrawn(mode string) {
	if m == nil {
		return
	}
	m.FramesTotal.WithLabelValues(mode).Inc()
}

// FrameSkipped counts one frame dropped for a collapsed canvas
func (m *Metrics) FrameSkipped() {
	if m == nil {
		return
	}
	m.FramesSkipped.Inc()
}

// AnimationEvent counts an animation lifecycle event
func (m *Metrics) AnimationEvent(outcome string) {
	if m == nil {
		return
	}
	m.AnimationRuns.WithLabelValues(outcome).Inc()
}

// AnimationFinished records a completed run and the callbacks it took
func (m *Metrics) AnimationFinished(frames int) {
	if m == nil {
		return
	}
	m.AnimationRuns.WithLabelValues(RunCompleted).Inc()
	m.AnimationFrames.Observe(float64(frames))
}

// PointerIgnored counts a dropped pointer event
func (m *Metrics) PointerIgnored(reason string) {
	if m == nil {
		return
	}
	m.PointerEventsIgnored.WithLabelValues(reason).Inc()
}

// WriteText writes all metrics in the Prometheus text exposition format
func (m *Metrics) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
